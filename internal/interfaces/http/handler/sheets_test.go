package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appcrm "github.com/starterbox/backend/internal/application/crm"
	"github.com/starterbox/backend/internal/infrastructure/sheets"
	"github.com/starterbox/backend/internal/interfaces/http/dto"
)

func newSheetTestServer(t *testing.T) (*gin.Engine, *sheets.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := sheets.NewStore(sheets.NewMemorySlot(), zap.NewNop())
	require.NoError(t, store.Initialize(context.Background()))
	facade := appcrm.NewService(store, zap.NewNop(), appcrm.WithSettleDelay(0))

	engine := gin.New()
	api := engine.Group("/api/v1")
	NewSheetHandler(store, facade).RegisterRoutes(api)
	return engine, store
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, dto.Response) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestSheetHandler_ListSheets(t *testing.T) {
	engine, _ := newSheetTestServer(t)

	w, resp := doJSON(t, engine, http.MethodGet, "/api/v1/sheets", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]any)
	assert.Len(t, data["sheets"], 6)
}

func TestSheetHandler_GetRows(t *testing.T) {
	t.Run("returns headers and rows", func(t *testing.T) {
		engine, _ := newSheetTestServer(t)

		w, resp := doJSON(t, engine, http.MethodGet, "/api/v1/sheets/Products/rows", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		data := resp.Data.(map[string]any)
		headers := data["headers"].([]any)
		assert.Equal(t, "SKU", headers[0])
		assert.Len(t, data["rows"], 4)
	})

	t.Run("unknown sheet maps to 404", func(t *testing.T) {
		engine, _ := newSheetTestServer(t)

		w, resp := doJSON(t, engine, http.MethodGet, "/api/v1/sheets/Ledger/rows", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	})
}

func TestSheetHandler_AppendRow(t *testing.T) {
	engine, store := newSheetTestServer(t)

	w, resp := doJSON(t, engine, http.MethodPost, "/api/v1/sheets/Products/rows", gin.H{
		"row": []any{"TW-001", "Golf Towel", "Accessories", 9.5, 900},
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, resp.Success)

	rows, err := store.GetRows(context.Background(), sheets.SheetProducts)
	require.NoError(t, err)
	assert.Len(t, rows, 5)
	assert.Equal(t, "TW-001", rows[4].StringAt(0))
}

func TestSheetHandler_UpdateRow(t *testing.T) {
	t.Run("replaces the target row", func(t *testing.T) {
		engine, store := newSheetTestServer(t)

		w, _ := doJSON(t, engine, http.MethodPut, "/api/v1/sheets/Products/rows/0", gin.H{
			"row": []any{"SC-001", "Classic Scorecard", "Scorecards", 0.5, 11000},
		})
		assert.Equal(t, http.StatusOK, w.Code)

		rows, err := store.GetRows(context.Background(), sheets.SheetProducts)
		require.NoError(t, err)
		assert.InDelta(t, 0.5, rows[0].NumberAt(3), 0.001)
	})

	t.Run("out-of-range index maps to 400", func(t *testing.T) {
		engine, _ := newSheetTestServer(t)

		w, resp := doJSON(t, engine, http.MethodPut, "/api/v1/sheets/Products/rows/99", gin.H{
			"row": []any{"X"},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeIndexOutOfRange, resp.Error.Code)
	})

	t.Run("non-integer index maps to 400", func(t *testing.T) {
		engine, _ := newSheetTestServer(t)

		w, _ := doJSON(t, engine, http.MethodPut, "/api/v1/sheets/Products/rows/first", gin.H{
			"row": []any{"X"},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSheetHandler_Import(t *testing.T) {
	t.Run("reports appended row count", func(t *testing.T) {
		engine, _ := newSheetTestServer(t)

		w, resp := doJSON(t, engine, http.MethodPost, "/api/v1/sheets/Products/import", gin.H{
			"csv": "SKU,Name\nHT-001,Bucket Hat,Apparel,18.00,400\nTW-001,Golf Towel,Accessories,9.50,900",
		})
		assert.Equal(t, http.StatusOK, w.Code)

		data := resp.Data.(map[string]any)
		assert.Equal(t, float64(2), data["imported"])
	})

	t.Run("missing csv maps to 400", func(t *testing.T) {
		engine, _ := newSheetTestServer(t)

		w, _ := doJSON(t, engine, http.MethodPost, "/api/v1/sheets/Products/import", gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSheetHandler_Reset(t *testing.T) {
	engine, store := newSheetTestServer(t)

	_, _ = doJSON(t, engine, http.MethodPost, "/api/v1/sheets/Products/rows", gin.H{
		"row": []any{"TW-001", "Golf Towel", "Accessories", 9.5, 900},
	})

	w, resp := doJSON(t, engine, http.MethodPost, "/api/v1/sheets/reset", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)

	rows, err := store.GetRows(context.Background(), sheets.SheetProducts)
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}
