package crm

// SampleStatus represents the fulfillment state of a sample request
type SampleStatus string

const (
	SampleStatusNew  SampleStatus = "New"
	SampleStatusSent SampleStatus = "Sent"
)

// ParseSampleStatus maps a raw status cell to Sent or New
func ParseSampleStatus(raw string) SampleStatus {
	if NormalizeStatus(raw) == "sent" {
		return SampleStatusSent
	}
	return SampleStatusNew
}

// SampleRequest is the typed projection of a row in the Samples sheet.
// Sample requests reference the customer by free-text name, not id, because
// they are often logged before the course exists in the Customers sheet.
type SampleRequest struct {
	ID             string       `json:"id"`
	CustomerName   string       `json:"customer_name"`
	Address        string       `json:"address"`
	ItemsRequested string       `json:"items_requested"`
	Status         SampleStatus `json:"status"`
	RequestDate    string       `json:"request_date"`
	RowIndex       int          `json:"row_index"`
}

// SampleRequestFromRow projects a sheet row into a SampleRequest
func SampleRequestFromRow(row Row, rowIndex int) SampleRequest {
	return SampleRequest{
		ID:             row.StringAt(0),
		CustomerName:   row.StringAt(1),
		Address:        row.StringAt(2),
		ItemsRequested: row.StringAt(3),
		Status:         ParseSampleStatus(row.StringAt(4)),
		RequestDate:    row.StringAt(5),
		RowIndex:       rowIndex,
	}
}

// Row serializes the sample request back into its positional sheet shape
func (s SampleRequest) Row() Row {
	return StringsRow(s.ID, s.CustomerName, s.Address, s.ItemsRequested,
		string(s.Status), s.RequestDate)
}
