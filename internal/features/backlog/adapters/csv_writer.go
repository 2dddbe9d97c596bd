package adapters

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"backlog-reporter/internal/features/backlog/domain"
)

// utf8BOM prefixes both exports so spreadsheet tools pick up UTF-8 and the
// Vietnamese headers render correctly.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// backlogColumns is the fixed, ordered column set of the backlog export.
var backlogColumns = []string{
	"NgayHienTai", "MaDH", "KhoLay", "KhoHienTai", "KhoGiao",
	"TrangThai", "GhiChuGHN", "SoLanLay", "SoLanGiao", "SoLanTra",
	"Ecommerces", "LoaiBacklog", "N0", "N+", "Aging", "Days_Aging",
	"Aging_ToanTrinh", "TrangThaiLuanChuyen", "MaKien",
}

// inventoryColumns is the fixed, ordered column set of the inventory export.
// The free-text note column is deliberately absent.
var inventoryColumns = []string{
	"NgayHienTai", "MaDH", "KhoLay", "KhoHienTai", "KhoGiao",
	"TrangThai", "GhiChuGHN", "SoLanGiao", "Ecommerces", "LoaiXuLy",
	"N_ve_kho", "H_ve_kho",
}

// WriteBacklogCSV serializes the backlog table as delimiter-separated text
// with a UTF-8 byte-order mark and one header row.
func WriteBacklogCSV(w io.Writer, rows []domain.ComposedRecord) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(backlogColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i := range rows {
		r := &rows[i]
		record := []string{
			r.ReportDate,
			r.ShipmentID,
			r.PickupWarehouse,
			r.CurrentWarehouse,
			r.DeliveryWarehouse,
			string(r.Status),
			r.CarrierNote,
			r.PickupAttempts,
			r.DeliveryAttempts,
			r.ReturnAttempts,
			r.Channel,
			string(r.Category),
			csvInstant(r.N0),
			csvInstant(r.Deadline),
			r.Aging.String(),
			fmt.Sprint(r.DaysAging),
			csvDuration(r.FullJourneyAging),
			r.RoutingState(),
			r.ParcelID(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteInventoryCSV serializes the inventory table in the same shape.
func WriteInventoryCSV(w io.Writer, rows []domain.InventoryRecord) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(inventoryColumns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i := range rows {
		r := &rows[i]
		record := []string{
			r.ReportDate,
			r.ShipmentID,
			r.PickupWarehouse,
			r.CurrentWarehouse,
			r.DeliveryWarehouse,
			string(r.Status),
			r.CarrierNote,
			r.DeliveryAttempts,
			r.Channel,
			string(r.RedeliveryState),
			r.ArrivalDate,
			r.ArrivalTime,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func csvInstant(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func csvDuration(d *time.Duration) string {
	if d == nil {
		return ""
	}
	return d.String()
}
