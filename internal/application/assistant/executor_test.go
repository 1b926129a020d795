package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appcrm "github.com/starterbox/backend/internal/application/crm"
	"github.com/starterbox/backend/internal/infrastructure/mailproxy"
	"github.com/starterbox/backend/internal/infrastructure/sheets"
)

// fakeMail is a canned MailReader
type fakeMail struct {
	accounts []mailproxy.Account
	messages []mailproxy.Message
	query    string
	err      error
}

func (f *fakeMail) ListAccounts(ctx context.Context) ([]mailproxy.Account, error) {
	return f.accounts, f.err
}

func (f *fakeMail) ListMessages(ctx context.Context, accountID, query string, maxResults int) (*mailproxy.MessageList, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.query = query
	if maxResults > 0 && maxResults < len(f.messages) {
		return &mailproxy.MessageList{Messages: f.messages[:maxResults]}, nil
	}
	return &mailproxy.MessageList{Messages: f.messages}, nil
}

func newTestExecutor(t *testing.T, mail MailReader) *Executor {
	t.Helper()
	store := sheets.NewStore(sheets.NewMemorySlot(), zap.NewNop())
	require.NoError(t, store.Initialize(context.Background()))

	facade := appcrm.NewService(store, zap.NewNop(), appcrm.WithSettleDelay(0))
	require.NoError(t, facade.Refresh(context.Background()))

	return NewExecutor(facade, mail, zap.NewNop())
}

func TestExecutor_LogNewOrder(t *testing.T) {
	exec := newTestExecutor(t, nil)

	result := exec.Execute(context.Background(), ToolLogNewOrder, map[string]any{
		"customerName":     "Pine Valley",
		"itemsDescription": "500 Scorecards",
		"estimatedTotal":   float64(225),
	})

	assert.Equal(t, true, result["success"])
	assert.NotEmpty(t, result["orderId"])
	assert.Contains(t, result["message"], "Pine Valley")

	snap := exec.facade.Snapshot()
	assert.Len(t, snap.Orders, 4)
	assert.Len(t, snap.Invoices, 4)
}

func TestExecutor_CheckSheetStatus(t *testing.T) {
	t.Run("pending invoices", func(t *testing.T) {
		exec := newTestExecutor(t, nil)

		result := exec.Execute(context.Background(), ToolCheckSheetStatus, map[string]any{
			"queryType": "PENDING_INVOICES",
		})

		// Seed has two unpaid invoices, 225 + 682.50
		assert.Equal(t, 2, result["count"])
		assert.InDelta(t, 907.5, result["total"].(float64), 0.001)
	})

	t.Run("recent orders", func(t *testing.T) {
		exec := newTestExecutor(t, nil)

		result := exec.Execute(context.Background(), ToolCheckSheetStatus, map[string]any{
			"queryType": "RECENT_ORDERS",
		})

		assert.Equal(t, 3, result["count"])
		assert.Len(t, result["orders"], 3)
	})

	t.Run("unknown query type", func(t *testing.T) {
		exec := newTestExecutor(t, nil)

		result := exec.Execute(context.Background(), ToolCheckSheetStatus, map[string]any{
			"queryType": "EVERYTHING",
		})
		assert.Contains(t, result, "error")
	})
}

func TestExecutor_FindGolfCourse(t *testing.T) {
	t.Run("matches case-insensitively", func(t *testing.T) {
		exec := newTestExecutor(t, nil)

		result := exec.Execute(context.Background(), ToolFindGolfCourse, map[string]any{
			"name": "augusta",
		})

		assert.Equal(t, true, result["found"])
		course := result["course"].(map[string]any)
		assert.Equal(t, "C-002", course["id"])
	})

	t.Run("reports a structured miss", func(t *testing.T) {
		exec := newTestExecutor(t, nil)

		result := exec.Execute(context.Background(), ToolFindGolfCourse, map[string]any{
			"name": "St Andrews",
		})

		assert.Equal(t, false, result["found"])
		assert.NotEmpty(t, result["message"])
	})
}

func TestExecutor_LogSampleRequest(t *testing.T) {
	exec := newTestExecutor(t, nil)

	result := exec.Execute(context.Background(), ToolLogSampleRequest, map[string]any{
		"customerName": "Pebble Creek Links",
		"address":      "17 Mile Drive",
		"items":        "Yardage book sample",
	})

	assert.Equal(t, true, result["success"])
	assert.NotEmpty(t, result["sampleId"])
	assert.Len(t, exec.facade.Snapshot().Samples, 2)
}

func TestExecutor_LookupProduct(t *testing.T) {
	t.Run("matches by name", func(t *testing.T) {
		exec := newTestExecutor(t, nil)

		result := exec.Execute(context.Background(), ToolLookupProduct, map[string]any{
			"searchTerm": "scorecard",
		})

		assert.Equal(t, true, result["found"])
		product := result["product"].(map[string]any)
		assert.Equal(t, "SC-001", product["sku"])
	})

	t.Run("matches by SKU", func(t *testing.T) {
		exec := newTestExecutor(t, nil)

		result := exec.Execute(context.Background(), ToolLookupProduct, map[string]any{
			"searchTerm": "PN-001",
		})

		assert.Equal(t, true, result["found"])
	})

	t.Run("reports a structured miss", func(t *testing.T) {
		exec := newTestExecutor(t, nil)

		result := exec.Execute(context.Background(), ToolLookupProduct, map[string]any{
			"searchTerm": "umbrella",
		})

		assert.Equal(t, false, result["found"])
	})
}

func TestExecutor_GetInvoiceDetails(t *testing.T) {
	t.Run("accepts bare and prefixed ids", func(t *testing.T) {
		exec := newTestExecutor(t, nil)

		for _, id := range []string{"1001", "INV-1001"} {
			result := exec.Execute(context.Background(), ToolGetInvoiceDetails, map[string]any{
				"invoiceId": id,
			})
			require.Equal(t, true, result["found"], "id %s", id)
			invoice := result["invoice"].(map[string]any)
			assert.Equal(t, "INV-1001", invoice["id"])
			assert.Equal(t, "Pine Valley Golf Club", invoice["customer"])
		}
	})

	t.Run("reports a structured miss", func(t *testing.T) {
		exec := newTestExecutor(t, nil)

		result := exec.Execute(context.Background(), ToolGetInvoiceDetails, map[string]any{
			"invoiceId": "INV-4040",
		})
		assert.Equal(t, false, result["found"])
	})
}

func TestExecutor_CheckRecentEmails(t *testing.T) {
	t.Run("returns summaries from the first account", func(t *testing.T) {
		mail := &fakeMail{
			accounts: []mailproxy.Account{{ID: "acc-1", Email: "ops@starterbox.test"}},
			messages: []mailproxy.Message{
				{From: "sam@pinevalleygc.test", Subject: "Reorder", IsRead: false},
				{From: "dana@augustaridge.test", Subject: "Proof OK", IsRead: true},
			},
		}
		exec := newTestExecutor(t, mail)

		result := exec.Execute(context.Background(), ToolCheckRecentEmails, map[string]any{})
		assert.Equal(t, true, result["success"])
		assert.Equal(t, 2, result["count"])
	})

	t.Run("filters unread only", func(t *testing.T) {
		mail := &fakeMail{
			accounts: []mailproxy.Account{{ID: "acc-1"}},
			messages: []mailproxy.Message{
				{Subject: "Reorder", IsRead: false},
				{Subject: "Proof OK", IsRead: true},
			},
		}
		exec := newTestExecutor(t, mail)

		result := exec.Execute(context.Background(), ToolCheckRecentEmails, map[string]any{
			"unreadOnly": true,
		})
		assert.Equal(t, 1, result["count"])
	})

	t.Run("degrades without a configured proxy", func(t *testing.T) {
		exec := newTestExecutor(t, nil)

		result := exec.Execute(context.Background(), ToolCheckRecentEmails, map[string]any{})
		assert.Contains(t, result, "error")
	})

	t.Run("degrades with no connected accounts", func(t *testing.T) {
		exec := newTestExecutor(t, &fakeMail{})

		result := exec.Execute(context.Background(), ToolCheckRecentEmails, map[string]any{})
		assert.Contains(t, result, "error")
	})
}

func TestExecutor_SearchCustomerEmails(t *testing.T) {
	t.Run("searches by customer name", func(t *testing.T) {
		mail := &fakeMail{
			accounts: []mailproxy.Account{{ID: "acc-1"}},
			messages: []mailproxy.Message{{Subject: "Scorecard reorder"}},
		}
		exec := newTestExecutor(t, mail)

		result := exec.Execute(context.Background(), ToolSearchCustomerEmails, map[string]any{
			"customerName": "Pine Valley",
		})

		assert.Equal(t, true, result["success"])
		assert.Equal(t, "Pine Valley", mail.query)
	})

	t.Run("relays proxy failures as structured errors", func(t *testing.T) {
		exec := newTestExecutor(t, &fakeMail{err: errors.New("proxy down")})

		result := exec.Execute(context.Background(), ToolSearchCustomerEmails, map[string]any{
			"customerName": "Pine Valley",
		})
		assert.Contains(t, result, "error")
	})
}

func TestExecutor_UnknownTool(t *testing.T) {
	exec := newTestExecutor(t, nil)

	result := exec.Execute(context.Background(), "reboot_production_press", nil)
	assert.Equal(t, "Unknown function", result["error"])
}
