package adapters

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"backlog-reporter/internal/features/backlog/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWriteBacklogCSV verifies the BOM, the fixed column order, and the
// field formatting of the backlog export.
func TestWriteBacklogCSV(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	n0 := time.Date(2026, 8, 27, 9, 0, 0, 0, loc)
	deadline := n0.Add(120 * time.Hour)
	journey := 90 * time.Hour

	rows := []domain.ComposedRecord{{
		CategorizedRecord: domain.CategorizedRecord{
			MergedRecord: domain.MergedRecord{
				ExportRecord: domain.ExportRecord{
					ShipmentID:        "DH001",
					Status:            domain.StatusDeliveryFailed,
					PickupWarehouse:   "1001",
					CurrentWarehouse:  "2002",
					DeliveryWarehouse: "2002",
					CarrierNote:       "khách hẹn lại",
					PickupAttempts:    "1",
					DeliveryAttempts:  "2",
					ReturnAttempts:    "0",
				},
				Inside: &domain.InsideProjection{
					ParcelID:     "K-1",
					RoutingState: "Đã nhận",
				},
			},
			Category: domain.CategoryDelivery,
			N0:       &n0,
			Deadline: &deadline,
			Aging:    30 * time.Hour,
		},
		Channel:          domain.ChannelShopee,
		FullJourneyAging: &journey,
		ReportDate:       "2026-08-31",
		DaysAging:        1,
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteBacklogCSV(&buf, rows))

	payload := buf.Bytes()
	assert.True(t, bytes.HasPrefix(payload, []byte{0xEF, 0xBB, 0xBF}))

	records, err := csv.NewReader(bytes.NewReader(payload[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, backlogColumns, records[0])
	assert.Equal(t, []string{
		"2026-08-31", "DH001", "1001", "2002", "2002",
		"Giao hàng không thành công", "khách hẹn lại", "1", "2", "0",
		"Shopee", "Kho giao",
		"2026-08-27T09:00:00+07:00", "2026-09-01T09:00:00+07:00",
		"30h0m0s", "1", "90h0m0s", "Đã nhận", "K-1",
	}, records[1])
}

// TestWriteBacklogCSV_AbsentValues verifies undefined instants and durations
// serialize as empty cells.
func TestWriteBacklogCSV_AbsentValues(t *testing.T) {
	rows := []domain.ComposedRecord{{
		CategorizedRecord: domain.CategorizedRecord{
			MergedRecord: domain.MergedRecord{ExportRecord: domain.ExportRecord{
				ShipmentID: "DH002",
			}},
			Category: domain.CategoryPickup,
			Aging:    domain.AgingSentinel,
		},
		Channel:    domain.ChannelOthers,
		ReportDate: "2026-08-31",
		DaysAging:  417,
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteBacklogCSV(&buf, rows))

	records, err := csv.NewReader(bytes.NewReader(buf.Bytes()[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	byColumn := map[string]string{}
	for i, col := range backlogColumns {
		byColumn[col] = records[1][i]
	}
	assert.Empty(t, byColumn["N0"])
	assert.Empty(t, byColumn["N+"])
	assert.Empty(t, byColumn["Aging_ToanTrinh"])
	assert.Empty(t, byColumn["MaKien"])
	assert.Equal(t, "9999h0m0s", byColumn["Aging"])
}

// TestWriteInventoryCSV verifies the inventory export's column set, and that
// the free-text note column is dropped.
func TestWriteInventoryCSV(t *testing.T) {
	rows := []domain.InventoryRecord{{
		ComposedRecord: domain.ComposedRecord{
			CategorizedRecord: domain.CategorizedRecord{
				MergedRecord: domain.MergedRecord{ExportRecord: domain.ExportRecord{
					ShipmentID:       "DH001",
					Status:           domain.StatusDeliveryFailed,
					DeliveryAttempts: "2",
					Note:             "nội bộ, không xuất",
				}},
				Category: domain.CategoryDelivery,
			},
			Channel:    domain.ChannelLazada,
			ReportDate: "2026-08-31",
		},
		RedeliveryState: domain.RedeliveryMistaken,
		ArrivalDate:     "2026-08-27",
		ArrivalTime:     "09:00",
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteInventoryCSV(&buf, rows))

	payload := buf.String()
	assert.True(t, strings.HasPrefix(payload, "\xEF\xBB\xBF"))
	assert.NotContains(t, payload, "nội bộ, không xuất")

	records, err := csv.NewReader(strings.NewReader(payload[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, inventoryColumns, records[0])
	assert.Equal(t, []string{
		"2026-08-31", "DH001", "", "", "",
		"Giao hàng không thành công", "", "2", "Lazada", "Giao lỗi",
		"2026-08-27", "09:00",
	}, records[1])
}
