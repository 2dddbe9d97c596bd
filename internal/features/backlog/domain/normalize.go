package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// nilToken is the export feed's literal placeholder for "no value".
const nilToken = "<nil>"

// insideColumnRenames maps the internal feed's source labels to the canonical
// field names used everywhere downstream.
var insideColumnRenames = map[string]string{
	"Mã đơn":               "MaDH",
	"Mã kiện":              "MaKien",
	"Kho gửi":              "KhoGui",
	"Kho nhận":             "KhoNhan",
	"Kho hiện tại":         "KhoHienTai",
	"TG đóng kiện":         "TGDongKien",
	"TG cập nhật":          "TGCapNhat",
	"TG nhận kiện":         "TGNhanKien",
	"TG kết thúc":          "TGKetThuc",
	"Trạng thái":           "TrangThaiLuanChuyen",
	"Số đơn":               "SoDon",
	"Khối lượng":           "KhoiLuong",
	"Mã niêm phong đóng":   "MaNiemPhongDong",
	"Mã niêm phong nhận":   "MaNiemPhongNhan",
	"Hình thức đóng gói":   "HinhThucDongGoi",
	"Hình thức vận chuyển": "HinhThucVanChuyen",
	"Ghi chú":              "GhiChu",
}

// insideTimeLayout is the internal feed's timestamp format.
const insideTimeLayout = "02/01/2006 15:04:05"

// exportTimeLayouts are tried in order for the export feed, whose timestamp
// cells are not uniformly formatted.
var exportTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006",
}

var exportColumns = []string{
	"MaDH", "MaKH", "TrangThai",
	"KhoLay", "KhoGiao", "KhoTra", "KhoHienTai",
	"GhiChuGHN", "GhiChu",
	"SoLanLay", "SoLanGiao", "SoLanTra",
	"ThoiGianTao", "ThoiGianTaoChuyenDoi", "ThoiGianKetThucLay",
	"ThoiGianGiaoLanDau", "ThoiGianKetThucGiao",
	"ThoiGianGiaoHangMongMuon", "TGKetThucTra",
}

var insideColumns = []string{
	"MaDH", "MaKien",
	"KhoGui", "KhoNhan", "KhoHienTai",
	"TGDongKien", "TGCapNhat", "TGNhanKien", "TGKetThuc",
	"TrangThaiLuanChuyen",
}

// Normalizer reshapes and type-coerces the two raw tables into one merged
// record set. All parsed instants are localized to its zone.
type Normalizer struct {
	loc *time.Location
}

// NewNormalizer creates a Normalizer anchored to the given time zone.
func NewNormalizer(loc *time.Location) *Normalizer {
	return &Normalizer{loc: loc}
}

// Normalize renames and parses both tables, then left-joins export rows with
// the inside projection on shipment id. An inside feed with several rows per
// shipment fans the join out; that is accepted here and deduplicated later.
func (n *Normalizer) Normalize(export, inside *Table) ([]MergedRecord, error) {
	inside.RenameColumns(insideColumnRenames)

	insideRecs, err := n.parseInside(inside)
	if err != nil {
		return nil, fmt.Errorf("inside feed: %w", err)
	}
	exportRecs, err := n.parseExport(export)
	if err != nil {
		return nil, fmt.Errorf("export feed: %w", err)
	}

	byShipment := make(map[string][]InsideProjection, len(insideRecs))
	for _, ir := range insideRecs {
		byShipment[ir.ShipmentID] = append(byShipment[ir.ShipmentID], InsideProjection{
			ParcelID:           ir.ParcelID,
			SendingWarehouse:   ir.SendingWarehouse,
			ReceivingWarehouse: ir.ReceivingWarehouse,
			ReceivedAt:         ir.ReceivedAt,
			RoutingState:       ir.RoutingState,
		})
	}

	merged := make([]MergedRecord, 0, len(exportRecs))
	for _, er := range exportRecs {
		matches := byShipment[er.ShipmentID]
		if len(matches) == 0 {
			merged = append(merged, MergedRecord{ExportRecord: er})
			continue
		}
		for i := range matches {
			merged = append(merged, MergedRecord{ExportRecord: er, Inside: &matches[i]})
		}
	}
	return merged, nil
}

// columnIndexes resolves every required column, failing with ErrMissingColumn
// on the first absent one.
func columnIndexes(t *Table, required []string) (map[string]int, error) {
	idx := make(map[string]int, len(required))
	for _, name := range required {
		i := t.ColumnIndex(name)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		idx[name] = i
	}
	return idx, nil
}

func (n *Normalizer) parseInside(t *Table) ([]InsideRecord, error) {
	idx, err := columnIndexes(t, insideColumns)
	if err != nil {
		return nil, err
	}

	recs := make([]InsideRecord, 0, len(t.Rows))
	for rowNum, row := range t.Rows {
		rec := InsideRecord{
			ShipmentID:   t.Cell(row, idx["MaDH"]),
			ParcelID:     t.Cell(row, idx["MaKien"]),
			RoutingState: t.Cell(row, idx["TrangThaiLuanChuyen"]),
		}

		for name, dst := range map[string]*int{
			"KhoGui":     &rec.SendingWarehouse,
			"KhoNhan":    &rec.ReceivingWarehouse,
			"KhoHienTai": &rec.CurrentWarehouse,
		} {
			v, err := parseWarehouseID(t.Cell(row, idx[name]))
			if err != nil {
				return nil, fmt.Errorf("row %d, column %s: %w", rowNum+1, name, err)
			}
			*dst = v
		}

		for name, dst := range map[string]**time.Time{
			"TGDongKien": &rec.SealedAt,
			"TGCapNhat":  &rec.UpdatedAt,
			"TGNhanKien": &rec.ReceivedAt,
			"TGKetThuc":  &rec.ClosedAt,
		} {
			ts, err := n.parseInstant(t.Cell(row, idx[name]), []string{insideTimeLayout})
			if err != nil {
				return nil, fmt.Errorf("row %d, column %s: %w", rowNum+1, name, err)
			}
			*dst = ts
		}

		recs = append(recs, rec)
	}
	return recs, nil
}

func (n *Normalizer) parseExport(t *Table) ([]ExportRecord, error) {
	idx, err := columnIndexes(t, exportColumns)
	if err != nil {
		return nil, err
	}

	// The export feed writes its "no value" placeholder into any column, so
	// strip it before anything else reads cells.
	cell := func(row []string, name string) string {
		v := t.Cell(row, idx[name])
		if v == nilToken {
			return ""
		}
		return v
	}

	recs := make([]ExportRecord, 0, len(t.Rows))
	for rowNum, row := range t.Rows {
		rec := ExportRecord{
			ShipmentID:        cell(row, "MaDH"),
			CustomerCode:      cell(row, "MaKH"),
			Status:            ShipmentStatus(cell(row, "TrangThai")),
			PickupWarehouse:   cell(row, "KhoLay"),
			DeliveryWarehouse: cell(row, "KhoGiao"),
			ReturnWarehouse:   cell(row, "KhoTra"),
			CurrentWarehouse:  cell(row, "KhoHienTai"),
			CarrierNote:       cell(row, "GhiChuGHN"),
			Note:              cell(row, "GhiChu"),
			PickupAttempts:    cell(row, "SoLanLay"),
			DeliveryAttempts:  cell(row, "SoLanGiao"),
			ReturnAttempts:    cell(row, "SoLanTra"),
		}

		for name, dst := range map[string]**time.Time{
			"ThoiGianTao":              &rec.CreatedAt,
			"ThoiGianTaoChuyenDoi":     &rec.CreatedConvertedAt,
			"ThoiGianKetThucLay":       &rec.PickupCompletedAt,
			"ThoiGianGiaoLanDau":       &rec.FirstDeliveryAt,
			"ThoiGianKetThucGiao":      &rec.DeliveryCompletedAt,
			"ThoiGianGiaoHangMongMuon": &rec.DesiredDeliveryAt,
			"TGKetThucTra":             &rec.ReturnCompletedAt,
		} {
			ts, err := n.parseInstant(cell(row, name), exportTimeLayouts)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %s: %w", rowNum+1, name, err)
			}
			*dst = ts
		}

		recs = append(recs, rec)
	}
	return recs, nil
}

// parseInstant localizes a timestamp cell to the fixed zone. Empty cells are
// absent, not errors; malformed ones fail loudly so upstream corruption is
// not masked.
func (n *Normalizer) parseInstant(value string, layouts []string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range layouts {
		if ts, err := time.ParseInLocation(layout, value, n.loc); err == nil {
			return &ts, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrMalformedTimestamp, value)
}

// parseWarehouseID coerces a warehouse id cell to an integer. Spreadsheet
// exports sometimes render ids as floats, so "1528.0" is accepted.
func parseWarehouseID(value string) (int, error) {
	value = strings.TrimSpace(value)
	if v, err := strconv.Atoi(value); err == nil {
		return v, nil
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil && f == float64(int(f)) {
		return int(f), nil
	}
	return 0, fmt.Errorf("%w: %q is not a warehouse id", ErrTypeConversion, value)
}
