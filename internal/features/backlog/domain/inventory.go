package domain

import (
	"strings"
	"time"
)

const (
	arrivalDateLayout = "2006-01-02"
	arrivalTimeLayout = "15:04"
	// carrierNoteDateLayout is the textual date form carriers write into
	// delivery notes.
	carrierNoteDateLayout = "02/01/2006"
)

// DeriveInventory restricts the composed table to delivery-backlog rows not
// currently mid-delivery and classifies each by redelivery state. The
// reference instant is split into date and time display fields; the free-text
// note is dropped from the final output by the exporter.
func DeriveInventory(composed []ComposedRecord, now time.Time) []InventoryRecord {
	today := now.Format(carrierNoteDateLayout)

	var out []InventoryRecord
	for i := range composed {
		row := &composed[i]
		if row.Category != CategoryDelivery || row.Status == StatusDelivering {
			continue
		}
		inv := InventoryRecord{
			ComposedRecord:  *row,
			RedeliveryState: redeliveryState(row, today),
		}
		if row.N0 != nil {
			inv.ArrivalDate = row.N0.Format(arrivalDateLayout)
			inv.ArrivalTime = row.N0.Format(arrivalTimeLayout)
		}
		out = append(out, inv)
	}
	return out
}

func redeliveryState(row *ComposedRecord, today string) RedeliveryState {
	if row.FirstDeliveryAt == nil {
		return RedeliveryNever
	}
	if row.CarrierNote != "" && strings.Contains(row.CarrierNote, today) {
		return RedeliveryMistaken
	}
	return RedeliveryNotYet
}
