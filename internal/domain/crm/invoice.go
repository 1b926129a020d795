package crm

// InvoiceStatus represents the payment state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusUnpaid    InvoiceStatus = "unpaid"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
	InvoiceStatusVoid      InvoiceStatus = "void"
)

// ParseInvoiceStatus maps a raw status cell to paid or unpaid. Spreadsheet
// operators record payment as "paid", "yes" or "complete"; everything else
// counts as unpaid.
func ParseInvoiceStatus(raw string) InvoiceStatus {
	switch NormalizeStatus(raw) {
	case "paid", "yes", "complete":
		return InvoiceStatusPaid
	default:
		return InvoiceStatusUnpaid
	}
}

// Invoice is the typed projection of a row in the Invoices sheet.
// It references its Order by OrderID and its Customer by CourseID; neither
// reference is enforced by the store.
type Invoice struct {
	ID         string        `json:"id"`
	OrderID    string        `json:"order_id"`
	CourseID   string        `json:"course_id"`
	Amount     float64       `json:"amount"`
	Status     InvoiceStatus `json:"status"`
	PDFURL     string        `json:"pdf_url"`
	PaymentURL string        `json:"payment_url"`
	CreatedAt  string        `json:"created_at"`
	DueDate    string        `json:"due_date"`
	RowIndex   int           `json:"row_index"`
}

// InvoiceFromRow projects a sheet row into an Invoice. The amount column
// tolerates currency formatting; the sheet carries a single date column
// that serves as both created and due date.
func InvoiceFromRow(row Row, rowIndex int) Invoice {
	return Invoice{
		ID:         row.StringAt(0),
		OrderID:    row.StringAt(1),
		CourseID:   row.StringAt(2),
		Amount:     row.NumberAt(3),
		Status:     ParseInvoiceStatus(row.StringAt(4)),
		PDFURL:     row.StringAt(5),
		PaymentURL: row.StringAt(6),
		CreatedAt:  row.StringAt(7),
		DueDate:    row.StringAt(7),
		RowIndex:   rowIndex,
	}
}

// Row serializes the invoice back into its positional sheet shape
func (i Invoice) Row() Row {
	return Row{
		String(i.ID),
		String(i.OrderID),
		String(i.CourseID),
		Number(i.Amount),
		String(string(i.Status)),
		String(i.PDFURL),
		String(i.PaymentURL),
		String(i.CreatedAt),
	}
}
