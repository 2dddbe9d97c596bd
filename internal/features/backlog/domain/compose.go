package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// reportDateLayout is the snapshot stamp put on every composed row.
const reportDateLayout = "2006-01-02"

// Composer unions the categorized subsets into the final backlog table.
type Composer struct {
	classifier *ChannelClassifier
}

// NewComposer creates a Composer using the given channel classifier.
func NewComposer(classifier *ChannelClassifier) *Composer {
	return &Composer{classifier: classifier}
}

// Compose tags every categorized record with its channel, full-journey aging
// and report date, drops exact duplicates, and rounds aging to whole days.
// A record legitimately appears once per matched category; only rows equal in
// every field collapse. now must already be localized to the report zone.
func (c *Composer) Compose(records []CategorizedRecord, now time.Time) []ComposedRecord {
	reportDate := now.Format(reportDateLayout)

	out := make([]ComposedRecord, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i := range records {
		row := ComposedRecord{
			CategorizedRecord: records[i],
			Channel:           c.classifier.Classify(records[i].CustomerCode),
			FullJourneyAging:  c.fullJourneyAging(&records[i].MergedRecord, now),
			ReportDate:        reportDate,
			DaysAging:         roundToDays(records[i].Aging),
		}
		key := composedKey(&row)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, row)
	}
	return out
}

// fullJourneyAging measures now − true creation instant. Tracked e-commerce
// shipments were created on the partner's side first, so their converted
// creation time is the honest start of the journey.
func (c *Composer) fullJourneyAging(r *MergedRecord, now time.Time) *time.Duration {
	ref := r.CreatedAt
	if c.classifier.IsTracked(r.CustomerCode) {
		ref = r.CreatedConvertedAt
	}
	if ref == nil {
		return nil
	}
	d := now.Sub(*ref)
	return &d
}

// roundToDays rounds a signed aging to whole days, ties away from zero.
func roundToDays(aging time.Duration) int {
	return int(math.Round(aging.Hours() / 24))
}

// composedKey serializes every field of a composed row so exact duplicates
// produced by the join fan-out collapse to one row.
func composedKey(r *ComposedRecord) string {
	parts := []string{
		r.ShipmentID, r.CustomerCode, string(r.Status),
		r.PickupWarehouse, r.DeliveryWarehouse, r.ReturnWarehouse, r.CurrentWarehouse,
		r.CarrierNote, r.Note,
		r.PickupAttempts, r.DeliveryAttempts, r.ReturnAttempts,
		keyInstant(r.CreatedAt), keyInstant(r.CreatedConvertedAt),
		keyInstant(r.PickupCompletedAt), keyInstant(r.FirstDeliveryAt),
		keyInstant(r.DeliveryCompletedAt), keyInstant(r.DesiredDeliveryAt),
		keyInstant(r.ReturnCompletedAt),
		keyInside(r.Inside),
		string(r.Category), keyInstant(r.N0), keyInstant(r.Deadline), r.Aging.String(),
		r.Channel, keyDuration(r.FullJourneyAging), r.ReportDate,
		fmt.Sprint(r.DaysAging),
	}
	return strings.Join(parts, "\x1f")
}

func keyInstant(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

func keyDuration(d *time.Duration) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func keyInside(p *InsideProjection) string {
	if p == nil {
		return ""
	}
	return strings.Join([]string{
		p.ParcelID,
		fmt.Sprint(p.SendingWarehouse),
		fmt.Sprint(p.ReceivingWarehouse),
		keyInstant(p.ReceivedAt),
		p.RoutingState,
	}, "\x1e")
}
