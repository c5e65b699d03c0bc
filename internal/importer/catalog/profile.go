package catalog

// Profile describes the column layout of a product catalog CSV. Adding a new
// layout is just adding a new Profile to the profiles slice.
type Profile struct {
	Name        string
	NameCol     string
	CategoryCol string
	PriceCol    string
	CostCol     string
	StockCol    string
	MinStockCol string
	SupplierCol string
}

// requiredCols returns the column names that must be present for this profile
// to match. Category, stock and supplier columns are optional.
func (p Profile) requiredCols() []string {
	return []string{p.NameCol, p.PriceCol}
}

// profiles is the ordered list of catalog layouts to try during
// auto-detection.
var profiles = []Profile{
	{
		Name:        "indonesia",
		NameCol:     "Nama",
		CategoryCol: "Kategori",
		PriceCol:    "Harga",
		CostCol:     "Harga Pokok",
		StockCol:    "Stok",
		MinStockCol: "Stok Minimum",
		SupplierCol: "Supplier",
	},
	{
		Name:        "english",
		NameCol:     "Name",
		CategoryCol: "Category",
		PriceCol:    "Price",
		CostCol:     "Cost",
		StockCol:    "Stock",
		MinStockCol: "Min Stock",
		SupplierCol: "Supplier",
	},
}
