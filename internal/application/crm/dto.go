package crm

import (
	"time"

	"github.com/starterbox/backend/internal/domain/crm"
)

// Snapshot is the published view of all six sheets, replaced atomically
// on every successful refresh. Readers always see one coherent sync.
type Snapshot struct {
	Customers []crm.Customer      `json:"customers"`
	Products  []crm.Product       `json:"products"`
	Orders    []crm.Order         `json:"orders"`
	Invoices  []crm.Invoice       `json:"invoices"`
	Mockups   []crm.Mockup        `json:"mockups"`
	Samples   []crm.SampleRequest `json:"samples"`
	LastSync  time.Time           `json:"last_sync"`
}

// CreateOrderResult reports the ids minted for a new order and its
// linked invoice
type CreateOrderResult struct {
	OrderID   string `json:"order_id"`
	InvoiceID string `json:"invoice_id"`
	CourseID  string `json:"course_id"`
}

// OrderUpdate carries a partial order mutation; nil fields are left
// untouched
type OrderUpdate struct {
	Status          *string `json:"status,omitempty"`
	Details         *string `json:"details,omitempty"`
	TrackingNumber  *string `json:"tracking_number,omitempty"`
	ShippingCarrier *string `json:"shipping_carrier,omitempty"`
	ProductionLink  *string `json:"production_link,omitempty"`
	JobNumber       *string `json:"job_number,omitempty"`
}
