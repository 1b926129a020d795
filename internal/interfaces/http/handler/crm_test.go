package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appcrm "github.com/starterbox/backend/internal/application/crm"
	"github.com/starterbox/backend/internal/infrastructure/sheets"
	"github.com/starterbox/backend/internal/interfaces/http/dto"
)

func newCRMTestServer(t *testing.T) (*gin.Engine, *appcrm.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := sheets.NewStore(sheets.NewMemorySlot(), zap.NewNop())
	require.NoError(t, store.Initialize(context.Background()))
	facade := appcrm.NewService(store, zap.NewNop(), appcrm.WithSettleDelay(0))

	engine := gin.New()
	api := engine.Group("/api/v1")
	NewCRMHandler(facade).RegisterRoutes(api)
	return engine, facade
}

func TestCRMHandler_Collections(t *testing.T) {
	t.Run("lists refresh lazily on a cold facade", func(t *testing.T) {
		engine, _ := newCRMTestServer(t)

		w, resp := doJSON(t, engine, http.MethodGet, "/api/v1/crm/customers", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		data := resp.Data.(map[string]any)
		assert.Len(t, data["customers"], 3)
		assert.NotEmpty(t, data["last_sync"])
	})

	t.Run("orders carry normalized statuses", func(t *testing.T) {
		engine, _ := newCRMTestServer(t)

		_, resp := doJSON(t, engine, http.MethodGet, "/api/v1/crm/orders", nil)
		orders := resp.Data.(map[string]any)["orders"].([]any)
		require.Len(t, orders, 3)

		first := orders[0].(map[string]any)
		assert.Equal(t, "scheduled", first["status"])
	})

	t.Run("every collection endpoint answers", func(t *testing.T) {
		engine, _ := newCRMTestServer(t)

		for _, path := range []string{"products", "invoices", "mockups", "samples"} {
			w, resp := doJSON(t, engine, http.MethodGet, "/api/v1/crm/"+path, nil)
			assert.Equal(t, http.StatusOK, w.Code, path)
			assert.True(t, resp.Success, path)
		}
	})
}

func TestCRMHandler_Refresh(t *testing.T) {
	engine, facade := newCRMTestServer(t)

	w, resp := doJSON(t, engine, http.MethodPost, "/api/v1/crm/refresh", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	assert.False(t, facade.Snapshot().LastSync.IsZero())
}

func TestCRMHandler_CreateOrder(t *testing.T) {
	t.Run("creates an order with linked invoice", func(t *testing.T) {
		engine, facade := newCRMTestServer(t)

		w, resp := doJSON(t, engine, http.MethodPost, "/api/v1/crm/orders", gin.H{
			"customer_name": "Pine Valley",
			"details":       "500 scorecards",
			"total":         1200,
		})
		assert.Equal(t, http.StatusCreated, w.Code)

		data := resp.Data.(map[string]any)
		assert.Equal(t, "C-001", data["course_id"])
		assert.Equal(t, "INV-"+data["order_id"].(string), data["invoice_id"])

		snap := facade.Snapshot()
		assert.Len(t, snap.Orders, 4)
		assert.Len(t, snap.Invoices, 4)
	})

	t.Run("missing fields map to 400", func(t *testing.T) {
		engine, _ := newCRMTestServer(t)

		w, resp := doJSON(t, engine, http.MethodPost, "/api/v1/crm/orders", gin.H{
			"customer_name": "Pine Valley",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
	})
}

func TestCRMHandler_UpdateOrder(t *testing.T) {
	t.Run("applies a partial update", func(t *testing.T) {
		engine, facade := newCRMTestServer(t)
		require.NoError(t, facade.Refresh(context.Background()))

		w, _ := doJSON(t, engine, http.MethodPatch, "/api/v1/crm/orders/1002", gin.H{
			"tracking_number": "1Z777CC30345678906",
		})
		assert.Equal(t, http.StatusOK, w.Code)

		for _, o := range facade.Snapshot().Orders {
			if o.ID == "1002" {
				assert.Equal(t, "1Z777CC30345678906", o.TrackingNumber)
			}
		}
	})

	t.Run("unknown id still answers 200", func(t *testing.T) {
		engine, facade := newCRMTestServer(t)
		require.NoError(t, facade.Refresh(context.Background()))

		w, resp := doJSON(t, engine, http.MethodPatch, "/api/v1/crm/orders/9999", gin.H{
			"details": "never applied",
		})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, resp.Success)
	})
}

func TestCRMHandler_UpdateOrderStatus(t *testing.T) {
	t.Run("sets a vocabulary status", func(t *testing.T) {
		engine, facade := newCRMTestServer(t)
		require.NoError(t, facade.Refresh(context.Background()))

		w, _ := doJSON(t, engine, http.MethodPut, "/api/v1/crm/orders/1002/status", gin.H{
			"status": "scheduled",
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects values outside the vocabulary", func(t *testing.T) {
		engine, facade := newCRMTestServer(t)
		require.NoError(t, facade.Refresh(context.Background()))

		w, resp := doJSON(t, engine, http.MethodPut, "/api/v1/crm/orders/1002/status", gin.H{
			"status": "lost",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidInput, resp.Error.Code)
	})
}

func TestCRMHandler_CreateSampleRequest(t *testing.T) {
	engine, facade := newCRMTestServer(t)

	w, resp := doJSON(t, engine, http.MethodPost, "/api/v1/crm/samples", gin.H{
		"customer_name": "Pebble Creek Links",
		"address":       "17 Mile Drive",
		"items":         "Yardage book sample",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	data := resp.Data.(map[string]any)
	assert.Equal(t, "New", data["status"])
	assert.Len(t, facade.Snapshot().Samples, 2)
}
