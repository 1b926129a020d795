package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	appcrm "github.com/starterbox/backend/internal/application/crm"
	"github.com/starterbox/backend/internal/domain/crm"
	"github.com/starterbox/backend/internal/infrastructure/sheets"
)

// SheetFacade is the slice of the domain facade the sheet surface needs
// for the operations that trigger a snapshot reload
type SheetFacade interface {
	ImportToSheet(ctx context.Context, sheetName, csvText string) (int, error)
	ResetData(ctx context.Context) error
}

// SheetHandler exposes the raw sheet surface: positional rows in, rows
// out. The typed views live under /crm.
type SheetHandler struct {
	BaseHandler
	store  *sheets.Store
	facade SheetFacade
}

// NewSheetHandler creates a sheet handler
func NewSheetHandler(store *sheets.Store, facade SheetFacade) *SheetHandler {
	return &SheetHandler{store: store, facade: facade}
}

// RegisterRoutes registers sheet routes
func (h *SheetHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/sheets")
	{
		group.GET("", h.ListSheets)
		group.GET("/:name/rows", h.GetRows)
		group.POST("/:name/rows", h.AppendRow)
		group.PUT("/:name/rows/:index", h.UpdateRow)
		group.POST("/:name/import", h.Import)
		group.POST("/reset", h.Reset)
	}
}

type appendRowRequest struct {
	Row crm.Row `json:"row" binding:"required"`
}

type importRequest struct {
	CSV string `json:"csv" binding:"required"`
}

// ListSheets returns the known sheet names
func (h *SheetHandler) ListSheets(c *gin.Context) {
	h.Success(c, gin.H{"sheets": sheets.SheetNames()})
}

// GetRows returns a sheet's headers and rows
func (h *SheetHandler) GetRows(c *gin.Context) {
	name := c.Param("name")

	rows, err := h.store.GetRows(c.Request.Context(), name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	headers, err := h.store.Headers(c.Request.Context(), name)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{
		"name":    name,
		"headers": headers,
		"rows":    rows,
	})
}

// AppendRow appends one row to a sheet
func (h *SheetHandler) AppendRow(c *gin.Context) {
	var req appendRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid row payload: "+err.Error())
		return
	}

	if err := h.store.AppendRow(c.Request.Context(), c.Param("name"), req.Row); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, gin.H{"appended": true})
}

// UpdateRow replaces the row at the given index
func (h *SheetHandler) UpdateRow(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		h.BadRequest(c, "Row index must be an integer")
		return
	}

	var req appendRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid row payload: "+err.Error())
		return
	}

	if err := h.store.UpdateRow(c.Request.Context(), c.Param("name"), index, req.Row); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"updated": true, "index": index})
}

// Import bulk-imports CSV text into a sheet and reports the appended
// row count
func (h *SheetHandler) Import(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid import payload: "+err.Error())
		return
	}

	count, err := h.facade.ImportToSheet(c.Request.Context(), c.Param("name"), req.CSV)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"imported": count})
}

// Reset discards all sheet data and restores seed defaults
func (h *SheetHandler) Reset(c *gin.Context) {
	if err := h.facade.ResetData(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"reset": true})
}

// guard against interface drift
var _ SheetFacade = (*appcrm.Service)(nil)
