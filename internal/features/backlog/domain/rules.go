package domain

import "time"

// Category tags which operational queue a shipment currently sits in. A
// shipment can sit in several queues at once; categories are independent
// tags, never a partition.
type Category string

const (
	CategoryDelivery        Category = "Kho giao"
	CategoryReturn          Category = "Kho trả"
	CategoryPickup          Category = "Kho lấy"
	CategoryTransport       Category = "Kho lấy luân chuyển"
	CategoryReturnTransport Category = "Kho giao luân chuyển"
)

// SLA offsets per category. The transporting offsets are the hub-city values;
// the city-dependent variant was retired and only the hub branch is live.
const (
	offsetDelivery        = 120 * time.Hour
	offsetReturn          = 72 * time.Hour
	offsetPickup          = 72 * time.Hour
	offsetTransport       = 12 * time.Hour
	offsetReturnTransport = 36 * time.Hour
)

// redeliveryGrace is how long an awaiting-redelivery shipment may sit after a
// completed delivery attempt before it counts as delivery backlog.
const redeliveryGrace = 24 * time.Hour

// categoryRule is one backlog queue: who belongs in it and which instant
// starts its SLA clock.
type categoryRule struct {
	category   Category
	offset     time.Duration
	match      func(r *MergedRecord, now time.Time) bool
	refInstant func(r *MergedRecord) *time.Time
}

// RulesEngine evaluates every category rule over a merged record set and
// stamps each match with its deadline and aging.
type RulesEngine struct {
	classifier *ChannelClassifier
	rules      []categoryRule
}

// NewRulesEngine builds the engine over the given channel classifier, which
// decides the creation instant used by the pickup queue.
func NewRulesEngine(classifier *ChannelClassifier) *RulesEngine {
	e := &RulesEngine{classifier: classifier}
	e.rules = []categoryRule{
		{
			category: CategoryDelivery,
			offset:   offsetDelivery,
			match:    matchDelivery,
			refInstant: func(r *MergedRecord) *time.Time {
				// A parcel handled inside one facility is ready when its
				// pickup finished; one transferred in is ready on arrival.
				if r.PickupWarehouse == r.CurrentWarehouse {
					return r.PickupCompletedAt
				}
				return r.ReceivedAtFacility()
			},
		},
		{
			category: CategoryReturn,
			offset:   offsetReturn,
			match:    matchReturn,
			refInstant: func(r *MergedRecord) *time.Time {
				if r.CurrentWarehouse == r.DeliveryWarehouse {
					return r.DeliveryCompletedAt
				}
				return r.ReceivedAtFacility()
			},
		},
		{
			category: CategoryPickup,
			offset:   offsetPickup,
			match:    matchPickup,
			refInstant: func(r *MergedRecord) *time.Time {
				if e.classifier.IsTracked(r.CustomerCode) {
					return r.CreatedConvertedAt
				}
				return r.CreatedAt
			},
		},
		{
			category: CategoryTransport,
			offset:   offsetTransport,
			match:    matchTransport,
			refInstant: func(r *MergedRecord) *time.Time {
				return r.PickupCompletedAt
			},
		},
		{
			category: CategoryReturnTransport,
			offset:   offsetReturnTransport,
			match:    matchReturnTransport,
			refInstant: func(r *MergedRecord) *time.Time {
				return r.DeliveryCompletedAt
			},
		},
	}
	return e
}

// Categorize returns one CategorizedRecord per (record, matched category)
// pair. Records matching nothing contribute nothing.
func (e *RulesEngine) Categorize(records []MergedRecord, now time.Time) []CategorizedRecord {
	var out []CategorizedRecord
	for i := range records {
		r := &records[i]
		for _, rule := range e.rules {
			if !rule.match(r, now) {
				continue
			}
			n0 := rule.refInstant(r)
			deadline := ComputeDeadline(n0, rule.offset)
			out = append(out, CategorizedRecord{
				MergedRecord: *r,
				Category:     rule.category,
				N0:           n0,
				Deadline:     deadline,
				Aging:        ComputeAging(now, deadline),
			})
		}
	}
	return out
}

func statusIn(s ShipmentStatus, set ...ShipmentStatus) bool {
	for _, c := range set {
		if s == c {
			return true
		}
	}
	return false
}

func matchDelivery(r *MergedRecord, now time.Time) bool {
	if statusIn(r.Status, StatusDelivering, StatusDeliveryFailed) {
		return true
	}
	if statusIn(r.Status, StatusStored, StatusPickupSucceeded, StatusInTransit) &&
		r.DeliveryWarehouse == r.CurrentWarehouse {
		return true
	}
	return r.Status == StatusAwaitRedelivery &&
		r.DeliveryCompletedAt != nil &&
		now.Sub(*r.DeliveryCompletedAt) > redeliveryGrace
}

func matchReturn(r *MergedRecord, _ time.Time) bool {
	if statusIn(r.Status, StatusReturning, StatusReturnFailed) {
		return true
	}
	if !statusIn(r.Status, StatusRedirectedReturn, StatusInTransitReturn) {
		return false
	}
	if r.ReturnWarehouse != "" {
		return r.ReturnWarehouse == r.CurrentWarehouse
	}
	return r.PickupWarehouse == r.CurrentWarehouse
}

func matchPickup(r *MergedRecord, _ time.Time) bool {
	if r.CurrentWarehouse != r.PickupWarehouse {
		return false
	}
	if statusIn(r.Status, StatusAwaitingPickup, StatusPickingUp, StatusPickupFailed) {
		return true
	}
	return r.Status == StatusCreated && r.PickupCompletedAt == nil
}

func matchTransport(r *MergedRecord, _ time.Time) bool {
	if statusIn(r.Status, StatusPickupSucceeded, StatusStored) &&
		r.DeliveryWarehouse != r.CurrentWarehouse {
		return true
	}
	return r.Status == StatusInTransit && r.PickupWarehouse != r.DeliveryWarehouse
}

func matchReturnTransport(r *MergedRecord, _ time.Time) bool {
	if !statusIn(r.Status, StatusRedirectedReturn, StatusAwaitingReturn, StatusInTransitReturn) {
		return false
	}
	if r.ReturnWarehouse == "" {
		return r.PickupWarehouse != r.CurrentWarehouse
	}
	return r.ReturnWarehouse != r.CurrentWarehouse
}
