package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLoc = time.FixedZone("UTC+7", 7*3600)

func tableFromMaps(columns []string, rows ...map[string]string) *Table {
	t := &Table{Header: append([]string(nil), columns...)}
	for _, m := range rows {
		row := make([]string, len(columns))
		for i, c := range columns {
			row[i] = m[c]
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func testExportTable(rows ...map[string]string) *Table {
	return tableFromMaps(exportColumns, rows...)
}

func testInsideTable(rows ...map[string]string) *Table {
	base := map[string]string{"KhoGui": "1", "KhoNhan": "2", "KhoHienTai": "3"}
	filled := make([]map[string]string, 0, len(rows))
	for _, m := range rows {
		merged := map[string]string{}
		for k, v := range base {
			merged[k] = v
		}
		for k, v := range m {
			merged[k] = v
		}
		filled = append(filled, merged)
	}
	return tableFromMaps(insideColumns, filled...)
}

// TestTable_RenameColumns verifies source labels map to canonical names and
// unmapped labels pass through unchanged.
func TestTable_RenameColumns(t *testing.T) {
	table := &Table{Header: []string{"Mã đơn", "Kho gửi", "TG nhận kiện", "Cột lạ"}}

	table.RenameColumns(insideColumnRenames)

	assert.Equal(t, []string{"MaDH", "KhoGui", "TGNhanKien", "Cột lạ"}, table.Header)
}

// TestNormalize_LeftJoin verifies the join keeps every export row, fans out
// over multiple inside rows, and leaves inside fields absent when unmatched.
func TestNormalize_LeftJoin(t *testing.T) {
	export := testExportTable(
		map[string]string{"MaDH": "A", "TrangThai": "Lưu kho"},
		map[string]string{"MaDH": "B", "TrangThai": "Đang giao hàng"},
	)
	inside := testInsideTable(
		map[string]string{"MaDH": "A", "MaKien": "A-1", "TGNhanKien": "01/08/2026 08:30:00", "TrangThaiLuanChuyen": "Đã nhận"},
		map[string]string{"MaDH": "A", "MaKien": "A-2"},
	)

	merged, err := NewNormalizer(testLoc).Normalize(export, inside)
	require.NoError(t, err)

	// Left join never drops rows.
	require.GreaterOrEqual(t, len(merged), 2)
	require.Len(t, merged, 3)

	assert.Equal(t, "A-1", merged[0].ParcelID())
	assert.Equal(t, "Đã nhận", merged[0].RoutingState())
	require.NotNil(t, merged[0].ReceivedAtFacility())
	assert.Equal(t,
		time.Date(2026, 8, 1, 8, 30, 0, 0, testLoc),
		merged[0].ReceivedAtFacility().In(testLoc))

	assert.Equal(t, "A-2", merged[1].ParcelID())
	assert.Nil(t, merged[1].ReceivedAtFacility())

	assert.Nil(t, merged[2].Inside)
	assert.Equal(t, "B", merged[2].ShipmentID)
}

// TestNormalize_NilToken verifies the export feed's placeholder becomes a
// proper absent value before anything reads it.
func TestNormalize_NilToken(t *testing.T) {
	export := testExportTable(map[string]string{
		"MaDH":        "A",
		"KhoTra":      "<nil>",
		"GhiChuGHN":   "<nil>",
		"ThoiGianTao": "<nil>",
	})

	merged, err := NewNormalizer(testLoc).Normalize(export, testInsideTable())
	require.NoError(t, err)
	require.Len(t, merged, 1)

	assert.Empty(t, merged[0].ReturnWarehouse)
	assert.Empty(t, merged[0].CarrierNote)
	assert.Nil(t, merged[0].CreatedAt)
}

// TestNormalize_ExportTimestamps verifies parsing and zone localization of
// export lifecycle timestamps.
func TestNormalize_ExportTimestamps(t *testing.T) {
	export := testExportTable(map[string]string{
		"MaDH":               "A",
		"ThoiGianTao":        "2026-08-20 10:00:00",
		"ThoiGianKetThucLay": "2026-08-21T09:15:00",
		"TGKetThucTra":       "22/08/2026",
	})

	merged, err := NewNormalizer(testLoc).Normalize(export, testInsideTable())
	require.NoError(t, err)
	require.Len(t, merged, 1)

	r := merged[0]
	require.NotNil(t, r.CreatedAt)
	assert.Equal(t, time.Date(2026, 8, 20, 10, 0, 0, 0, testLoc), *r.CreatedAt)
	require.NotNil(t, r.PickupCompletedAt)
	assert.Equal(t, time.Date(2026, 8, 21, 9, 15, 0, 0, testLoc), *r.PickupCompletedAt)
	require.NotNil(t, r.ReturnCompletedAt)
	assert.Equal(t, time.Date(2026, 8, 22, 0, 0, 0, 0, testLoc), *r.ReturnCompletedAt)
	assert.Nil(t, r.DeliveryCompletedAt)
}

// TestNormalize_MalformedTimestamp verifies malformed-but-present values fail
// loudly instead of being nulled out.
func TestNormalize_MalformedTimestamp(t *testing.T) {
	export := testExportTable(map[string]string{
		"MaDH":        "A",
		"ThoiGianTao": "not a date",
	})

	_, err := NewNormalizer(testLoc).Normalize(export, testInsideTable())
	assert.ErrorIs(t, err, ErrMalformedTimestamp)
}

// TestNormalize_WarehouseCoercion verifies numeric coercion of the inside
// warehouse columns, including the float rendering spreadsheets produce.
func TestNormalize_WarehouseCoercion(t *testing.T) {
	inside := testInsideTable(map[string]string{
		"MaDH":   "A",
		"KhoGui": "1528.0",
	})
	export := testExportTable(map[string]string{"MaDH": "A"})

	merged, err := NewNormalizer(testLoc).Normalize(export, inside)
	require.NoError(t, err)
	require.NotNil(t, merged[0].Inside)
	assert.Equal(t, 1528, merged[0].Inside.SendingWarehouse)
}

// TestNormalize_TypeConversionError verifies non-numeric warehouse ids abort
// the transform.
func TestNormalize_TypeConversionError(t *testing.T) {
	inside := testInsideTable(map[string]string{
		"MaDH":   "A",
		"KhoGui": "kho trung tâm",
	})

	_, err := NewNormalizer(testLoc).Normalize(testExportTable(), inside)
	assert.ErrorIs(t, err, ErrTypeConversion)
}

// TestNormalize_MissingColumn verifies a required column missing from either
// feed aborts the whole transform.
func TestNormalize_MissingColumn(t *testing.T) {
	t.Run("Export", func(t *testing.T) {
		export := tableFromMaps([]string{"MaDH", "TrangThai"})
		_, err := NewNormalizer(testLoc).Normalize(export, testInsideTable())
		assert.ErrorIs(t, err, ErrMissingColumn)
	})

	t.Run("Inside", func(t *testing.T) {
		inside := tableFromMaps([]string{"MaDH"})
		_, err := NewNormalizer(testLoc).Normalize(testExportTable(), inside)
		assert.ErrorIs(t, err, ErrMissingColumn)
	})
}
