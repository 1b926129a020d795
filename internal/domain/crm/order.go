package crm

import "strings"

// OrderStatus represents the production state of an order
type OrderStatus string

const (
	OrderStatusAwaitingLink    OrderStatus = "awaiting_link"
	OrderStatusReadyToSchedule OrderStatus = "ready_to_schedule"
	OrderStatusScheduled       OrderStatus = "scheduled" // "On Press"
	OrderStatusCompleted       OrderStatus = "completed"
	OrderStatusCancelled       OrderStatus = "cancelled"
	OrderStatusShipped         OrderStatus = "shipped"
)

// ParseOrderStatus maps free-text status cells onto the order vocabulary.
// Matching is substring containment in a fixed precedence order: ready,
// then schedule/press, then complete/shipped, then cancel; the first match
// wins. Anything unrecognized falls back to awaiting_link. The precedence
// means "Shipped Complete" reads as completed even though it also says
// nothing about cancellation, and "cancelled - customer request" reads as
// cancelled.
func ParseOrderStatus(raw string) OrderStatus {
	s := NormalizeStatus(raw)
	switch {
	case strings.Contains(s, "ready"):
		return OrderStatusReadyToSchedule
	case strings.Contains(s, "schedule"), strings.Contains(s, "press"):
		return OrderStatusScheduled
	case strings.Contains(s, "complete"), strings.Contains(s, "shipped"):
		return OrderStatusCompleted
	case strings.Contains(s, "cancel"):
		return OrderStatusCancelled
	default:
		return OrderStatusAwaitingLink
	}
}

// ValidOrderStatus reports whether s is a member of the order vocabulary
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusAwaitingLink, OrderStatusReadyToSchedule, OrderStatusScheduled,
		OrderStatusCompleted, OrderStatusCancelled, OrderStatusShipped:
		return true
	}
	return false
}

// Order is the typed projection of a row in the Orders sheet
type Order struct {
	ID              string      `json:"id"`
	CourseID        string      `json:"course_id"`
	Status          OrderStatus `json:"status"`
	Details         string      `json:"details"`
	TrackingNumber  string      `json:"tracking_number"`
	ShippingCarrier string      `json:"shipping_carrier"`
	CreatedAt       string      `json:"created_at"`
	ProductionLink  string      `json:"production_link"`
	JobNumber       string      `json:"job_number"`
	RowIndex        int         `json:"row_index"`
}

// OrderFromRow projects a sheet row into an Order, normalizing the raw
// status cell through ParseOrderStatus
func OrderFromRow(row Row, rowIndex int) Order {
	return Order{
		ID:              row.StringAt(0),
		CourseID:        row.StringAt(1),
		Status:          ParseOrderStatus(row.StringAt(2)),
		Details:         row.StringAt(3),
		TrackingNumber:  row.StringAt(4),
		ShippingCarrier: row.StringAt(5),
		CreatedAt:       row.StringAt(6),
		ProductionLink:  row.StringAt(7),
		JobNumber:       row.StringAt(8),
		RowIndex:        rowIndex,
	}
}

// Row serializes the order back into its positional sheet shape. The status
// cell is written in its canonical form, so a round trip normalizes
// free-text statuses.
func (o Order) Row() Row {
	return StringsRow(o.ID, o.CourseID, string(o.Status), o.Details,
		o.TrackingNumber, o.ShippingCarrier, o.CreatedAt, o.ProductionLink, o.JobNumber)
}
