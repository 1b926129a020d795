package assistant

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	appcrm "github.com/starterbox/backend/internal/application/crm"
	"github.com/starterbox/backend/internal/domain/crm"
	"github.com/starterbox/backend/internal/infrastructure/mailproxy"
)

// Facade is the slice of the domain facade the assistant can reach
type Facade interface {
	Snapshot() appcrm.Snapshot
	CreateOrder(ctx context.Context, customerName, details string, total float64) (*appcrm.CreateOrderResult, error)
	AddSampleRequest(ctx context.Context, customerName, address, items string) (*crm.SampleRequest, error)
}

// MailReader is the slice of the mail proxy the email tools need
type MailReader interface {
	ListAccounts(ctx context.Context) ([]mailproxy.Account, error)
	ListMessages(ctx context.Context, accountID, query string, maxResults int) (*mailproxy.MessageList, error)
}

// Executor runs tool calls against the facade. Results are plain
// structured records the model can narrate; raw sheet rows never leave
// this layer.
type Executor struct {
	facade Facade
	mail   MailReader // nil when no proxy is configured
	logger *zap.Logger
}

// NewExecutor creates a tool executor. mail may be nil; the email tools
// then degrade to a "not configured" result instead of failing the chat.
func NewExecutor(facade Facade, mail MailReader, logger *zap.Logger) *Executor {
	return &Executor{facade: facade, mail: mail, logger: logger}
}

// Execute dispatches one tool call. Tool-level failures come back as a
// structured error result, not a Go error; the model is expected to
// relay them to the user.
func (e *Executor) Execute(ctx context.Context, name string, args map[string]any) map[string]any {
	e.logger.Debug("executing assistant tool", zap.String("tool", name))

	var result map[string]any
	switch name {
	case ToolLogNewOrder:
		result = e.logNewOrder(ctx, args)
	case ToolCheckSheetStatus:
		result = e.checkSheetStatus(args)
	case ToolFindGolfCourse:
		result = e.findGolfCourse(args)
	case ToolLogSampleRequest:
		result = e.logSampleRequest(ctx, args)
	case ToolLookupProduct:
		result = e.lookupProduct(args)
	case ToolGetInvoiceDetails:
		result = e.getInvoiceDetails(args)
	case ToolCheckRecentEmails:
		result = e.checkRecentEmails(ctx, args)
	case ToolSearchCustomerEmails:
		result = e.searchCustomerEmails(ctx, args)
	default:
		result = map[string]any{"error": "Unknown function"}
	}
	return result
}

func (e *Executor) logNewOrder(ctx context.Context, args map[string]any) map[string]any {
	customerName := stringArg(args, "customerName")
	items := stringArg(args, "itemsDescription")
	total := numberArg(args, "estimatedTotal", 0)

	created, err := e.facade.CreateOrder(ctx, customerName, items, total)
	if err != nil {
		e.logger.Error("assistant order creation failed", zap.Error(err))
		return map[string]any{"error": err.Error()}
	}
	return map[string]any{
		"success": true,
		"message": fmt.Sprintf("Order logged for %s: %s - $%.2f", customerName, items, total),
		"orderId": created.OrderID,
		"invoiceId": created.InvoiceID,
	}
}

func (e *Executor) checkSheetStatus(args map[string]any) map[string]any {
	snap := e.facade.Snapshot()

	switch stringArg(args, "queryType") {
	case "PENDING_INVOICES":
		var total float64
		summaries := make([]map[string]any, 0, 5)
		count := 0
		for _, inv := range snap.Invoices {
			if inv.Status != crm.InvoiceStatusUnpaid {
				continue
			}
			count++
			total += inv.Amount
			if len(summaries) < 5 {
				summaries = append(summaries, invoiceSummary(inv, snap.Customers))
			}
		}
		return map[string]any{
			"type":     "PENDING_INVOICES",
			"count":    count,
			"total":    total,
			"invoices": summaries,
		}

	case "RECENT_ORDERS":
		summaries := make([]map[string]any, 0, 5)
		for i := len(snap.Orders) - 1; i >= 0 && len(summaries) < 5; i-- {
			o := snap.Orders[i]
			summaries = append(summaries, map[string]any{
				"id":      o.ID,
				"status":  string(o.Status),
				"details": o.Details,
				"date":    o.CreatedAt,
			})
		}
		return map[string]any{
			"type":   "RECENT_ORDERS",
			"count":  len(snap.Orders),
			"orders": summaries,
		}

	case "SAMPLE_REQUESTS":
		summaries := make([]map[string]any, 0, 5)
		for _, s := range snap.Samples {
			if len(summaries) == 5 {
				break
			}
			summaries = append(summaries, map[string]any{
				"id":       s.ID,
				"customer": s.CustomerName,
				"items":    s.ItemsRequested,
				"status":   string(s.Status),
			})
		}
		return map[string]any{
			"type":    "SAMPLE_REQUESTS",
			"count":   len(snap.Samples),
			"samples": summaries,
		}
	}
	return map[string]any{"error": "Unknown query type"}
}

func (e *Executor) findGolfCourse(args map[string]any) map[string]any {
	needle := strings.ToLower(stringArg(args, "name"))
	for _, c := range e.facade.Snapshot().Customers {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			return map[string]any{
				"found": true,
				"course": map[string]any{
					"id":      c.ID,
					"name":    c.Name,
					"address": fmt.Sprintf("%s, %s, %s %s", c.Address, c.City, c.State, c.Zip),
					"contact": c.ContactName,
					"email":   c.Email,
					"phone":   c.Phone,
				},
			}
		}
	}
	return map[string]any{"found": false, "message": "Golf course not found in database"}
}

func (e *Executor) logSampleRequest(ctx context.Context, args map[string]any) map[string]any {
	customerName := stringArg(args, "customerName")
	address := stringArg(args, "address")
	items := stringArg(args, "items")

	sample, err := e.facade.AddSampleRequest(ctx, customerName, address, items)
	if err != nil {
		e.logger.Error("assistant sample request failed", zap.Error(err))
		return map[string]any{"error": err.Error()}
	}
	return map[string]any{
		"success":  true,
		"message":  fmt.Sprintf("Sample request logged for %s at %s", customerName, address),
		"sampleId": sample.ID,
	}
}

func (e *Executor) lookupProduct(args map[string]any) map[string]any {
	needle := strings.ToLower(stringArg(args, "searchTerm"))
	for _, p := range e.facade.Snapshot().Products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.SKU), needle) {
			return map[string]any{
				"found": true,
				"product": map[string]any{
					"name":  p.Name,
					"sku":   p.SKU,
					"price": p.Price,
					"stock": p.Stock,
				},
			}
		}
	}
	return map[string]any{"found": false, "message": "Product not found in inventory"}
}

func (e *Executor) getInvoiceDetails(args map[string]any) map[string]any {
	invoiceID := stringArg(args, "invoiceId")
	snap := e.facade.Snapshot()

	for _, inv := range snap.Invoices {
		if inv.ID != invoiceID && inv.ID != "INV-"+invoiceID {
			continue
		}
		summary := invoiceSummary(inv, snap.Customers)
		summary["paymentUrl"] = inv.PaymentURL
		summary["date"] = inv.CreatedAt
		return map[string]any{"found": true, "invoice": summary}
	}
	return map[string]any{"found": false, "message": "Invoice not found"}
}

func (e *Executor) checkRecentEmails(ctx context.Context, args map[string]any) map[string]any {
	if e.mail == nil {
		return mailNotConfigured()
	}
	maxResults := int(numberArg(args, "maxResults", 10))
	if maxResults > 25 {
		maxResults = 25
	}
	unreadOnly := boolArg(args, "unreadOnly")

	accountID, errResult := e.firstAccount(ctx)
	if errResult != nil {
		return errResult
	}

	list, err := e.mail.ListMessages(ctx, accountID, "", maxResults)
	if err != nil {
		return map[string]any{"error": "Failed to fetch emails", "message": err.Error()}
	}

	emails := make([]map[string]any, 0, len(list.Messages))
	for _, m := range list.Messages {
		if unreadOnly && m.IsRead {
			continue
		}
		emails = append(emails, emailSummary(m))
	}
	return map[string]any{
		"success":    true,
		"count":      len(emails),
		"unreadOnly": unreadOnly,
		"emails":     emails,
	}
}

func (e *Executor) searchCustomerEmails(ctx context.Context, args map[string]any) map[string]any {
	if e.mail == nil {
		return mailNotConfigured()
	}
	customerName := stringArg(args, "customerName")
	maxResults := int(numberArg(args, "maxResults", 20))

	accountID, errResult := e.firstAccount(ctx)
	if errResult != nil {
		return errResult
	}

	list, err := e.mail.ListMessages(ctx, accountID, customerName, maxResults)
	if err != nil {
		return map[string]any{"error": "Failed to search emails", "message": err.Error()}
	}

	emails := make([]map[string]any, 0, len(list.Messages))
	for _, m := range list.Messages {
		emails = append(emails, emailSummary(m))
	}
	return map[string]any{
		"success":      true,
		"customerName": customerName,
		"count":        len(emails),
		"emails":       emails,
	}
}

func (e *Executor) firstAccount(ctx context.Context) (string, map[string]any) {
	accounts, err := e.mail.ListAccounts(ctx)
	if err != nil {
		return "", map[string]any{"error": "Failed to fetch email accounts", "message": err.Error()}
	}
	if len(accounts) == 0 {
		return "", map[string]any{
			"error":   "No mail accounts connected",
			"message": "Please connect a mail account first.",
		}
	}
	return accounts[0].ID, nil
}

func invoiceSummary(inv crm.Invoice, customers []crm.Customer) map[string]any {
	customerName := "Unknown"
	for _, c := range customers {
		if c.ID == inv.CourseID {
			customerName = c.Name
			break
		}
	}
	return map[string]any{
		"id":       inv.ID,
		"customer": customerName,
		"amount":   inv.Amount,
		"status":   string(inv.Status),
	}
}

func emailSummary(m mailproxy.Message) map[string]any {
	return map[string]any{
		"from":    m.From,
		"subject": m.Subject,
		"date":    m.Date,
		"snippet": m.Snippet,
		"isRead":  m.IsRead,
	}
}

func mailNotConfigured() map[string]any {
	return map[string]any{
		"error":   "Mail proxy not configured",
		"message": "Email features are disabled on this deployment.",
	}
}

func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func numberArg(args map[string]any, key string, fallback float64) float64 {
	switch v := args[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return fallback
}

func boolArg(args map[string]any, key string) bool {
	v, _ := args[key].(bool)
	return v
}
