package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	appcrm "github.com/starterbox/backend/internal/application/crm"
	"github.com/starterbox/backend/internal/domain/crm"
)

// CRMFacade is the slice of the domain facade serving the typed views
// and write operations
type CRMFacade interface {
	Snapshot() appcrm.Snapshot
	Refresh(ctx context.Context) error
	CreateOrder(ctx context.Context, customerName, details string, total float64) (*appcrm.CreateOrderResult, error)
	UpdateOrderPartial(ctx context.Context, orderID string, updates appcrm.OrderUpdate) error
	UpdateOrderStatus(ctx context.Context, orderID string, status crm.OrderStatus) error
	AddSampleRequest(ctx context.Context, customerName, address, items string) (*crm.SampleRequest, error)
}

// CRMHandler exposes the mapped entity collections and the facade's
// write operations
type CRMHandler struct {
	BaseHandler
	facade CRMFacade
}

// NewCRMHandler creates a CRM handler
func NewCRMHandler(facade CRMFacade) *CRMHandler {
	return &CRMHandler{facade: facade}
}

// RegisterRoutes registers CRM routes
func (h *CRMHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/crm")
	{
		group.GET("/customers", h.ListCustomers)
		group.GET("/products", h.ListProducts)
		group.GET("/orders", h.ListOrders)
		group.GET("/invoices", h.ListInvoices)
		group.GET("/mockups", h.ListMockups)
		group.GET("/samples", h.ListSamples)
		group.POST("/refresh", h.Refresh)
		group.POST("/orders", h.CreateOrder)
		group.PATCH("/orders/:id", h.UpdateOrder)
		group.PUT("/orders/:id/status", h.UpdateOrderStatus)
		group.POST("/samples", h.CreateSampleRequest)
	}
}

type createOrderRequest struct {
	CustomerName string  `json:"customer_name" binding:"required"`
	Details      string  `json:"details" binding:"required"`
	Total        float64 `json:"total" binding:"min=0"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type createSampleRequest struct {
	CustomerName string `json:"customer_name" binding:"required"`
	Address      string `json:"address" binding:"required"`
	Items        string `json:"items" binding:"required"`
}

// snapshot refreshes lazily so the first read after boot sees data
func (h *CRMHandler) snapshot(c *gin.Context) (appcrm.Snapshot, bool) {
	snap := h.facade.Snapshot()
	if snap.LastSync.IsZero() {
		if err := h.facade.Refresh(c.Request.Context()); err != nil {
			h.HandleError(c, err)
			return appcrm.Snapshot{}, false
		}
		snap = h.facade.Snapshot()
	}
	return snap, true
}

// ListCustomers returns the published customers
func (h *CRMHandler) ListCustomers(c *gin.Context) {
	if snap, ok := h.snapshot(c); ok {
		h.Success(c, gin.H{"customers": snap.Customers, "last_sync": snap.LastSync})
	}
}

// ListProducts returns the published products
func (h *CRMHandler) ListProducts(c *gin.Context) {
	if snap, ok := h.snapshot(c); ok {
		h.Success(c, gin.H{"products": snap.Products, "last_sync": snap.LastSync})
	}
}

// ListOrders returns the published orders
func (h *CRMHandler) ListOrders(c *gin.Context) {
	if snap, ok := h.snapshot(c); ok {
		h.Success(c, gin.H{"orders": snap.Orders, "last_sync": snap.LastSync})
	}
}

// ListInvoices returns the published invoices
func (h *CRMHandler) ListInvoices(c *gin.Context) {
	if snap, ok := h.snapshot(c); ok {
		h.Success(c, gin.H{"invoices": snap.Invoices, "last_sync": snap.LastSync})
	}
}

// ListMockups returns the published mockups
func (h *CRMHandler) ListMockups(c *gin.Context) {
	if snap, ok := h.snapshot(c); ok {
		h.Success(c, gin.H{"mockups": snap.Mockups, "last_sync": snap.LastSync})
	}
}

// ListSamples returns the published sample requests
func (h *CRMHandler) ListSamples(c *gin.Context) {
	if snap, ok := h.snapshot(c); ok {
		h.Success(c, gin.H{"samples": snap.Samples, "last_sync": snap.LastSync})
	}
}

// Refresh re-reads all sheets and republishes the snapshot
func (h *CRMHandler) Refresh(c *gin.Context) {
	if err := h.facade.Refresh(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"last_sync": h.facade.Snapshot().LastSync})
}

// CreateOrder creates an order plus its linked invoice
func (h *CRMHandler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid order payload: "+err.Error())
		return
	}

	result, err := h.facade.CreateOrder(c.Request.Context(), req.CustomerName, req.Details, req.Total)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// UpdateOrder merges a partial update into an order. An unknown id is
// a no-op by design, so the response is 200 either way.
func (h *CRMHandler) UpdateOrder(c *gin.Context) {
	var req appcrm.OrderUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid update payload: "+err.Error())
		return
	}

	if err := h.facade.UpdateOrderPartial(c.Request.Context(), c.Param("id"), req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"id": c.Param("id")})
}

// UpdateOrderStatus sets an order's status to a vocabulary value
func (h *CRMHandler) UpdateOrderStatus(c *gin.Context) {
	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid status payload: "+err.Error())
		return
	}

	if err := h.facade.UpdateOrderStatus(c.Request.Context(), c.Param("id"), crm.OrderStatus(req.Status)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"id": c.Param("id"), "status": req.Status})
}

// CreateSampleRequest logs a new sample request
func (h *CRMHandler) CreateSampleRequest(c *gin.Context) {
	var req createSampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid sample payload: "+err.Error())
		return
	}

	sample, err := h.facade.AddSampleRequest(c.Request.Context(), req.CustomerName, req.Address, req.Items)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sample)
}

var _ CRMFacade = (*appcrm.Service)(nil)
