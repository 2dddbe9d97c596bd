package domain

import "time"

// ShipmentStatus is the delivery-state label carried by the export feed.
type ShipmentStatus string

const (
	StatusCreated           ShipmentStatus = "Tạo thành công"
	StatusAwaitingPickup    ShipmentStatus = "Chờ lấy hàng"
	StatusPickingUp         ShipmentStatus = "Đang lấy hàng"
	StatusPickupFailed      ShipmentStatus = "Lấy hàng không thành công"
	StatusPickupSucceeded   ShipmentStatus = "Lấy hàng thành công"
	StatusStored            ShipmentStatus = "Lưu kho"
	StatusInTransit         ShipmentStatus = "Đang trung chuyển hàng"
	StatusDelivering        ShipmentStatus = "Đang giao hàng"
	StatusDeliveryFailed    ShipmentStatus = "Giao hàng không thành công"
	StatusAwaitRedelivery   ShipmentStatus = "Chờ giao lại"
	StatusReturning         ShipmentStatus = "Đang hoàn hàng"
	StatusReturnFailed      ShipmentStatus = "Hoàn hàng không thành công"
	StatusRedirectedReturn  ShipmentStatus = "Chuyển hoàn"
	StatusAwaitingReturn    ShipmentStatus = "Chờ chuyển hoàn"
	StatusInTransitReturn   ShipmentStatus = "Đang trung chuyển hàng hoàn"
)

// ExportRecord is one shipment row from the external export feed. Lifecycle
// timestamps are nil when the feed carried no value.
type ExportRecord struct {
	ShipmentID        string         `json:"shipment_id"`
	CustomerCode      string         `json:"customer_code"`
	Status            ShipmentStatus `json:"status"`
	PickupWarehouse   string         `json:"pickup_warehouse"`
	DeliveryWarehouse string         `json:"delivery_warehouse"`
	ReturnWarehouse   string         `json:"return_warehouse"`
	CurrentWarehouse  string         `json:"current_warehouse"`
	CarrierNote       string         `json:"carrier_note"`
	Note              string         `json:"note"`
	PickupAttempts    string         `json:"pickup_attempts"`
	DeliveryAttempts  string         `json:"delivery_attempts"`
	ReturnAttempts    string         `json:"return_attempts"`

	CreatedAt          *time.Time `json:"created_at"`
	CreatedConvertedAt *time.Time `json:"created_converted_at"`
	PickupCompletedAt  *time.Time `json:"pickup_completed_at"`
	FirstDeliveryAt    *time.Time `json:"first_delivery_at"`
	DeliveryCompletedAt *time.Time `json:"delivery_completed_at"`
	DesiredDeliveryAt  *time.Time `json:"desired_delivery_at"`
	ReturnCompletedAt  *time.Time `json:"return_completed_at"`
}

// InsideRecord is one parcel custody event from the internal feed, after
// column renaming and type coercion.
type InsideRecord struct {
	ShipmentID         string     `json:"shipment_id"`
	ParcelID           string     `json:"parcel_id"`
	SendingWarehouse   int        `json:"sending_warehouse"`
	ReceivingWarehouse int        `json:"receiving_warehouse"`
	CurrentWarehouse   int        `json:"current_warehouse"`
	SealedAt           *time.Time `json:"sealed_at"`
	UpdatedAt          *time.Time `json:"updated_at"`
	ReceivedAt         *time.Time `json:"received_at"`
	ClosedAt           *time.Time `json:"closed_at"`
	RoutingState       string     `json:"routing_state"`
}

// InsideProjection is the slice of an InsideRecord that survives the join
// into the merged record set.
type InsideProjection struct {
	ParcelID           string     `json:"parcel_id"`
	SendingWarehouse   int        `json:"sending_warehouse"`
	ReceivingWarehouse int        `json:"receiving_warehouse"`
	ReceivedAt         *time.Time `json:"received_at"`
	RoutingState       string     `json:"routing_state"`
}

// MergedRecord is the left join of an export row with one matching inside
// row. Inside is nil when the shipment had no inside row; that is valid, not
// an error.
type MergedRecord struct {
	ExportRecord
	Inside *InsideProjection `json:"inside"`
}

// ParcelID returns the parcel id from the inside feed, empty when unmatched.
func (r *MergedRecord) ParcelID() string {
	if r.Inside == nil {
		return ""
	}
	return r.Inside.ParcelID
}

// ReceivedAtFacility returns the inside feed's received-at-facility instant,
// nil when unmatched or absent.
func (r *MergedRecord) ReceivedAtFacility() *time.Time {
	if r.Inside == nil {
		return nil
	}
	return r.Inside.ReceivedAt
}

// RoutingState returns the inside feed's routing-state label, empty when
// unmatched.
func (r *MergedRecord) RoutingState() string {
	if r.Inside == nil {
		return ""
	}
	return r.Inside.RoutingState
}

// CategorizedRecord is a merged record that matched one backlog category,
// with that category's SLA clock applied.
type CategorizedRecord struct {
	MergedRecord
	Category Category      `json:"category"`
	N0       *time.Time    `json:"n0"`
	Deadline *time.Time    `json:"deadline"`
	Aging    time.Duration `json:"aging"`
}

// ComposedRecord is a categorized record in the final backlog table.
type ComposedRecord struct {
	CategorizedRecord
	Channel          string         `json:"channel"`
	FullJourneyAging *time.Duration `json:"full_journey_aging"`
	ReportDate       string         `json:"report_date"`
	DaysAging        int            `json:"days_aging"`
}

// RedeliveryState tags how a stuck delivery-backlog parcel should be handled.
type RedeliveryState string

const (
	RedeliveryNotYet   RedeliveryState = "Chưa giao lại"
	RedeliveryNever    RedeliveryState = "Chưa giao lần nào"
	RedeliveryMistaken RedeliveryState = "Giao lỗi"
)

// InventoryRecord is a delivery-backlog row in the inventory sub-report.
type InventoryRecord struct {
	ComposedRecord
	RedeliveryState RedeliveryState `json:"redelivery_state"`
	ArrivalDate     string          `json:"arrival_date"`
	ArrivalTime     string          `json:"arrival_time"`
}

// Report is one computed result set, kept for the lifetime of an upload
// session.
type Report struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Backlog     []ComposedRecord  `json:"backlog"`
	Inventory   []InventoryRecord `json:"inventory"`
}
