package sheets

import "github.com/starterbox/backend/internal/domain/crm"

// Canonical sheet names. The store is created with exactly these six sheets
// and no operation ever adds or removes one.
const (
	SheetCustomers = "Customers"
	SheetProducts  = "Products"
	SheetOrders    = "Orders"
	SheetInvoices  = "Invoices"
	SheetMockups   = "Mockups"
	SheetSamples   = "Samples"
)

// SheetNames lists the six sheets in their canonical order
func SheetNames() []string {
	return []string{SheetCustomers, SheetProducts, SheetOrders, SheetInvoices, SheetMockups, SheetSamples}
}

// DefaultSeed returns the factory-default sheet collection used on first run
// and after a reset. Header order fixes each sheet's positional layout; the
// mappers in domain/crm read columns by these positions.
func DefaultSeed() map[string]Sheet {
	return map[string]Sheet{
		SheetCustomers: {
			Headers: []string{"ID", "Name", "Address", "City", "State", "Zip", "Phone", "Email", "Website", "Contact Name"},
			Rows: []crm.Row{
				crm.StringsRow("C-001", "Pine Valley Golf Club", "1 Clubhouse Dr", "Pine Valley", "NJ", "08021", "(856) 555-0101", "proshop@pinevalleygc.test", "pinevalleygc.test", "Sam Court"),
				crm.StringsRow("C-002", "Augusta Ridge Country Club", "2604 Washington Rd", "Augusta", "GA", "30904", "(706) 555-0147", "events@augustaridge.test", "augustaridge.test", "Dana Fairway"),
				crm.StringsRow("C-003", "Pebble Creek Links", "17 Mile Drive", "Monterey", "CA", "93953", "(831) 555-0190", "shop@pebblecreeklinks.test", "pebblecreeklinks.test", "Lee Greens"),
			},
		},
		SheetProducts: {
			Headers: []string{"SKU", "Name", "Category", "Price", "Stock"},
			Rows: []crm.Row{
				{crm.String("SC-001"), crm.String("Classic Scorecard"), crm.String("Scorecards"), crm.Number(0.45), crm.Number(12000)},
				{crm.String("SC-002"), crm.String("Yardage Book"), crm.String("Scorecards"), crm.Number(2.25), crm.Number(3500)},
				{crm.String("PN-001"), crm.String("Hex Pencil"), crm.String("Accessories"), crm.Number(0.12), crm.Number(50000)},
				{crm.String("TE-001"), crm.String("Wooden Tee 2.75\""), crm.String("Accessories"), crm.Number(0.05), crm.Number(80000)},
			},
		},
		SheetOrders: {
			Headers: []string{"ID", "Course ID", "Status", "Details", "Tracking Number", "Shipping Carrier", "Created At", "Production Link", "Job Number"},
			Rows: []crm.Row{
				crm.StringsRow("1001", "C-001", "On Press", "500 Classic Scorecards", "", "", "2026-07-18", "https://press.test/jobs/1001", "JOB-1001"),
				crm.StringsRow("1002", "C-002", "awaiting_link", "250 Yardage Books, 1000 Pencils", "", "", "2026-08-02", "", "JOB-1002"),
				crm.StringsRow("1003", "C-003", "Shipped Complete", "2000 Tees", "1Z999AA10123456784", "UPS", "2026-06-30", "https://press.test/jobs/1003", "JOB-1003"),
			},
		},
		SheetInvoices: {
			Headers: []string{"ID", "Order ID", "Course ID", "Amount", "Status", "PDF URL", "Payment URL", "Created At"},
			Rows: []crm.Row{
				{crm.String("INV-1001"), crm.String("1001"), crm.String("C-001"), crm.Number(225), crm.String("unpaid"), crm.String(""), crm.String("https://pay.test/inv-1001"), crm.String("2026-07-18")},
				{crm.String("INV-1002"), crm.String("1002"), crm.String("C-002"), crm.String("$682.50"), crm.String("unpaid"), crm.String(""), crm.String(""), crm.String("2026-08-02")},
				{crm.String("INV-1003"), crm.String("1003"), crm.String("C-003"), crm.Number(100), crm.String("Paid"), crm.String("https://docs.test/inv-1003.pdf"), crm.String(""), crm.String("2026-06-30")},
			},
		},
		SheetMockups: {
			Headers: []string{"ID", "Course ID", "Type", "Notes", "Status", "Ziflow Link", "Created At"},
			Rows: []crm.Row{
				crm.StringsRow("MCK-001", "C-001", "Scorecard", "Course logo top left, par table inside", "in_review", "https://ziflow.test/m/mck-001", "2026-07-10"),
				crm.StringsRow("MCK-002", "C-002", "Yardage Book", "Hole 12 overhead needs new photo", "revision_needed", "https://ziflow.test/m/mck-002", "2026-07-28"),
			},
		},
		SheetSamples: {
			Headers: []string{"ID", "Customer Name", "Address", "Items Requested", "Status", "Request Date"},
			Rows: []crm.Row{
				crm.StringsRow("SMP-001", "Pebble Creek Links", "17 Mile Drive, Monterey, CA 93953", "Scorecard sample pack", "Sent", "2026-06-12"),
			},
		},
	}
}
