package assistant

import "google.golang.org/genai"

// Tool names the model can call
const (
	ToolLogNewOrder          = "log_new_order"
	ToolCheckSheetStatus     = "check_sheet_status"
	ToolFindGolfCourse       = "find_golf_course"
	ToolLogSampleRequest     = "log_sample_request"
	ToolLookupProduct        = "lookup_product"
	ToolGetInvoiceDetails    = "get_invoice_details"
	ToolCheckRecentEmails    = "check_recent_emails"
	ToolSearchCustomerEmails = "search_customer_emails"
)

// refreshAfter lists the tools whose execution mutates sheet data; the
// chat response flags these so the caller can reload its view
var refreshAfter = map[string]bool{
	ToolLogNewOrder:      true,
	ToolLogSampleRequest: true,
}

func toolDeclarations() []*genai.FunctionDeclaration {
	return []*genai.FunctionDeclaration{
		{
			Name:        ToolLogNewOrder,
			Description: "Log a new order row into the 'Orders' sheet. Use this when the user confirms an order. It automatically creates an invoice entry as well.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"customerName":     {Type: genai.TypeString, Description: "Name of the golf course or customer"},
					"itemsDescription": {Type: genai.TypeString, Description: "Summary of items (e.g., '500 Scorecards, 100 Pencils')"},
					"estimatedTotal":   {Type: genai.TypeNumber, Description: "Total value of the order"},
				},
				Required: []string{"customerName", "itemsDescription", "estimatedTotal"},
			},
		},
		{
			Name:        ToolCheckSheetStatus,
			Description: "Check the status of pending invoices, recent production orders, or sample requests from the sheets.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"queryType": {
						Type:        genai.TypeString,
						Enum:        []string{"PENDING_INVOICES", "RECENT_ORDERS", "SAMPLE_REQUESTS"},
						Description: "What kind of data to retrieve from the sheets",
					},
				},
				Required: []string{"queryType"},
			},
		},
		{
			Name:        ToolFindGolfCourse,
			Description: "Search the 'Customers' sheet for a specific golf course to get their ID, address, and contact details.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name": {Type: genai.TypeString, Description: "Name of the golf course"},
				},
				Required: []string{"name"},
			},
		},
		{
			Name:        ToolLogSampleRequest,
			Description: "Add a new row to the 'Samples' sheet.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"customerName": {Type: genai.TypeString},
					"address":      {Type: genai.TypeString},
					"items":        {Type: genai.TypeString},
				},
				Required: []string{"customerName", "address", "items"},
			},
		},
		{
			Name:        ToolLookupProduct,
			Description: "Search the 'Products' sheet to check stock levels, pricing, or SKU for a specific item.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"searchTerm": {Type: genai.TypeString, Description: "Product name or SKU (e.g. 'Pencils', 'Scorecards', 'SC-001')"},
				},
				Required: []string{"searchTerm"},
			},
		},
		{
			Name:        ToolGetInvoiceDetails,
			Description: "Get specific details for an invoice by its ID to see amount, status, or customer.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"invoiceId": {Type: genai.TypeString, Description: "The Invoice ID (e.g., '1001' or 'INV-1001')"},
				},
				Required: []string{"invoiceId"},
			},
		},
		{
			Name:        ToolCheckRecentEmails,
			Description: "Check recent emails from connected mail accounts. Returns subject, sender, date, and preview. Useful for 'check my email' or 'any new messages'.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"maxResults": {Type: genai.TypeNumber, Description: "Number of emails to retrieve (default 10, max 25)"},
					"unreadOnly": {Type: genai.TypeBoolean, Description: "If true, only show unread emails (default false)"},
				},
			},
		},
		{
			Name:        ToolSearchCustomerEmails,
			Description: "Find all emails related to a specific golf course customer by searching their name or email address.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"customerName": {Type: genai.TypeString, Description: "Name of the golf course to search for"},
					"maxResults":   {Type: genai.TypeNumber, Description: "Number of emails to retrieve (default 20)"},
				},
				Required: []string{"customerName"},
			},
		},
	}
}
