package seeder

// Row is one candidate record keyed by column name, in the shape the
// bulk loader inserts it.
type Row map[string]any

// Volumes holds the requested record count for each entity. Order item
// volume is derived: every order carries between MinOrderItems and
// MaxOrderItems line items.
type Volumes struct {
	Stores        int
	Customers     int
	Ingredients   int
	MenuItems     int
	Orders        int
	MinOrderItems int
	MaxOrderItems int
}

// LineItem is one planned order line: the menu item, how many, and the
// price captured when the order was generated. The captured price never
// changes afterward, even if the menu item's current price would differ.
type LineItem struct {
	ItemID   int64
	Quantity int
	Price    float64
}

// OrderPlan is the full line-item plan for a single order. Total is
// computed from the plan before the order row is inserted, so the stored
// total always matches the line items that follow it.
type OrderPlan struct {
	Items []LineItem
	Total float64
}

// Result reports a committed run: rows inserted per table and the seed
// that produced them, so the run can be replayed.
type Result struct {
	Counts map[string]int
	Seed   int64
}
