package crm

// Customer is the typed projection of a row in the Customers sheet.
// Customers are the golf courses the rest of the model references by id.
type Customer struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zip         string `json:"zip"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Website     string `json:"website"`
	ContactName string `json:"contact_name"`
	RowIndex    int    `json:"row_index"`
}

// CustomerFromRow projects a sheet row into a Customer. Missing cells map
// to empty strings; the mapping is positional and never fails.
func CustomerFromRow(row Row, rowIndex int) Customer {
	return Customer{
		ID:          row.StringAt(0),
		Name:        row.StringAt(1),
		Address:     row.StringAt(2),
		City:        row.StringAt(3),
		State:       row.StringAt(4),
		Zip:         row.StringAt(5),
		Phone:       row.StringAt(6),
		Email:       row.StringAt(7),
		Website:     row.StringAt(8),
		ContactName: row.StringAt(9),
		RowIndex:    rowIndex,
	}
}

// Row serializes the customer back into its positional sheet shape
func (c Customer) Row() Row {
	return StringsRow(c.ID, c.Name, c.Address, c.City, c.State, c.Zip,
		c.Phone, c.Email, c.Website, c.ContactName)
}
