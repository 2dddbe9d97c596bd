package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testComposedDelivery(status ShipmentStatus) ComposedRecord {
	n0 := time.Date(2026, 8, 27, 14, 45, 0, 0, testLoc)
	return ComposedRecord{
		CategorizedRecord: CategorizedRecord{
			MergedRecord: MergedRecord{ExportRecord: ExportRecord{
				ShipmentID:      "A",
				Status:          status,
				FirstDeliveryAt: instantAt(-48 * time.Hour),
			}},
			Category: CategoryDelivery,
			N0:       &n0,
		},
		ReportDate: "2026-08-31",
	}
}

// TestDeriveInventory_Filter verifies only delivery-backlog rows outside the
// transient in-delivery status make the sub-report.
func TestDeriveInventory_Filter(t *testing.T) {
	inDelivery := testComposedDelivery(StatusDelivering)
	stuck := testComposedDelivery(StatusDeliveryFailed)
	otherQueue := testComposedDelivery(StatusDeliveryFailed)
	otherQueue.Category = CategoryPickup

	got := DeriveInventory([]ComposedRecord{inDelivery, stuck, otherQueue}, testNow)

	require.Len(t, got, 1)
	assert.Equal(t, StatusDeliveryFailed, got[0].Status)
	assert.Equal(t, CategoryDelivery, got[0].Category)
}

// TestDeriveInventory_RedeliveryStates verifies the three-way classification
// and its precedence.
func TestDeriveInventory_RedeliveryStates(t *testing.T) {
	today := testNow.Format("02/01/2006")

	t.Run("NeverDelivered", func(t *testing.T) {
		rec := testComposedDelivery(StatusDeliveryFailed)
		rec.FirstDeliveryAt = nil
		// Never-delivered wins even when the note mentions today.
		rec.CarrierNote = "giao " + today

		got := DeriveInventory([]ComposedRecord{rec}, testNow)
		require.Len(t, got, 1)
		assert.Equal(t, RedeliveryNever, got[0].RedeliveryState)
	})

	t.Run("MistakenDeliveryToday", func(t *testing.T) {
		rec := testComposedDelivery(StatusDeliveryFailed)
		rec.CarrierNote = "khách hẹn " + today + " nhận lại"

		got := DeriveInventory([]ComposedRecord{rec}, testNow)
		require.Len(t, got, 1)
		assert.Equal(t, RedeliveryMistaken, got[0].RedeliveryState)
	})

	t.Run("NoteWithoutToday", func(t *testing.T) {
		rec := testComposedDelivery(StatusDeliveryFailed)
		rec.CarrierNote = "khách hẹn 01/01/2020"

		got := DeriveInventory([]ComposedRecord{rec}, testNow)
		require.Len(t, got, 1)
		assert.Equal(t, RedeliveryNotYet, got[0].RedeliveryState)
	})

	t.Run("NoNote", func(t *testing.T) {
		rec := testComposedDelivery(StatusDeliveryFailed)

		got := DeriveInventory([]ComposedRecord{rec}, testNow)
		require.Len(t, got, 1)
		assert.Equal(t, RedeliveryNotYet, got[0].RedeliveryState)
	})
}

// TestDeriveInventory_ArrivalSplit verifies the reference instant splits into
// date and time display fields, staying empty when undefined.
func TestDeriveInventory_ArrivalSplit(t *testing.T) {
	rec := testComposedDelivery(StatusDeliveryFailed)

	got := DeriveInventory([]ComposedRecord{rec}, testNow)
	require.Len(t, got, 1)
	assert.Equal(t, "2026-08-27", got[0].ArrivalDate)
	assert.Equal(t, "14:45", got[0].ArrivalTime)

	rec.N0 = nil
	got = DeriveInventory([]ComposedRecord{rec}, testNow)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].ArrivalDate)
	assert.Empty(t, got[0].ArrivalTime)
}
