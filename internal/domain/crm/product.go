package crm

// Product is the typed projection of a row in the Products sheet.
// The SKU in column 0 doubles as the row's id; there is no separate key.
type Product struct {
	SKU      string  `json:"sku"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	RowIndex int     `json:"row_index"`
}

// ProductFromRow projects a sheet row into a Product. The price column
// tolerates currency formatting ("$4.50"); short rows read as zero values.
func ProductFromRow(row Row, rowIndex int) Product {
	return Product{
		SKU:      row.StringAt(0),
		Name:     row.StringAt(1),
		Category: row.StringAt(2),
		Price:    row.NumberAt(3),
		Stock:    int(row.NumberAt(4)),
		RowIndex: rowIndex,
	}
}

// Row serializes the product back into its positional sheet shape
func (p Product) Row() Row {
	return Row{
		String(p.SKU),
		String(p.Name),
		String(p.Category),
		Number(p.Price),
		Number(float64(p.Stock)),
	}
}
