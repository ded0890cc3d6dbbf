package seeder

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"
)

var firstNames = []string{
	"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael", "Linda",
	"David", "Elizabeth", "William", "Barbara", "Richard", "Susan", "Joseph", "Jessica",
	"Thomas", "Sarah", "Charles", "Karen", "Daniel", "Lisa", "Matthew", "Nancy",
	"Anthony", "Betty", "Mark", "Sandra", "Steven", "Ashley", "Andrew", "Emily",
	"Joshua", "Donna", "Kevin", "Michelle", "Brian", "Carol", "George", "Amanda",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson",
	"Thomas", "Taylor", "Moore", "Jackson", "Martin", "Lee", "Perez", "Thompson",
	"White", "Harris", "Sanchez", "Clark", "Ramirez", "Lewis", "Robinson", "Walker",
}

var emailDomains = []string{"gmail.com", "yahoo.com", "outlook.com", "example.com"}

var streets = []string{
	"Main Street", "Oak Avenue", "Maple Drive", "Cedar Lane", "Elm Street",
	"Washington Boulevard", "Park Road", "Lakeview Terrace", "Sunset Drive",
	"Harbor Way", "Mill Road", "Church Street",
}

var cities = []string{
	"Springfield", "Riverton", "Fairview", "Georgetown", "Clinton", "Arlington",
	"Madison", "Salem", "Bristol", "Franklin", "Ashland", "Clayton",
}

var baseIngredients = []string{
	"Tomato", "Cheese", "Pepperoni", "Mushroom", "Basil",
	"Chicken", "Onion", "Peppers", "Olive Oil", "Garlic",
	"Dough", "Sausage", "Spinach", "Feta", "Pineapple",
	"Ham", "Bacon", "Jalapeno", "Corn", "BBQ Sauce",
}

var ingredientGrades = []string{
	"Organic", "Smoked", "Fresh", "Aged", "Roasted", "Imported", "Spicy", "Sweet",
}

var ingredientUnits = []string{"grams", "ml", "pieces"}

var pizzaStyles = []string{
	"Margherita", "Pepperoni Feast", "Hawaiian", "Four Cheese", "Spinach & Feta",
	"BBQ Chicken", "Veggie Delight", "Meat Supreme", "Seafood Special",
}

var menuAdjectives = []string{
	"Rustic", "Golden", "Smoky", "Crispy", "Classic", "Wood-Fired", "Stone-Baked", "Signature",
}

var menuCategories = []string{
	"Classic", "Vegetarian/Vegan", "Gourmet/Special", "Meat Lovers", "Seafood", "Deluxe",
}

var menuSizes = []string{"Small", "Medium", "Large", "Family"}

var orderStatuses = []string{"Pending", "Preparing", "Completed", "Cancelled"}

// guestRate is the fraction of orders placed without a customer account.
const guestRate = 0.10

// DataGenerator produces candidate rows from an explicitly seeded random
// source. Two generators built from the same seed produce identical
// candidates, which makes runs replayable.
type DataGenerator struct {
	rng  *rand.Rand
	seed int64
	now  time.Time
}

func NewDataGenerator(seed int64) *DataGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &DataGenerator{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
		now:  time.Now().UTC(),
	}
}

// Seed reports the seed actually in use, including a time-derived one.
func (g *DataGenerator) Seed() int64 { return g.seed }

// Stores generates n candidate store rows. No parent pools are needed.
func (g *DataGenerator) Stores(n int) []Row {
	rows := make([]Row, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, Row{
			"address":      fmt.Sprintf("%d %s", g.rng.Intn(9899)+100, g.pick(streets)),
			"city":         g.pick(cities),
			"phone_number": g.phone(),
			"opened_at":    g.timestampWithin(10 * 365),
		})
	}
	return rows
}

// Customers generates n candidate customer rows. Emails and phone
// numbers are only plausible here; global uniqueness is the resolver's
// job, not the generator's.
func (g *DataGenerator) Customers(n int) []Row {
	rows := make([]Row, 0, n)
	for i := 0; i < n; i++ {
		first := g.pick(firstNames)
		last := g.pick(lastNames)
		email := fmt.Sprintf("%s.%s%d@%s",
			strings.ToLower(first), strings.ToLower(last), g.rng.Intn(1000), g.pick(emailDomains))
		rows = append(rows, Row{
			"first_name":   first,
			"last_name":    last,
			"email":        email,
			"phone_number": g.phone(),
			"created_at":   g.timestampWithin(365),
		})
	}
	return rows
}

// Ingredients generates n candidate ingredient rows.
func (g *DataGenerator) Ingredients(n int) []Row {
	rows := make([]Row, 0, n)
	for i := 0; i < n; i++ {
		name := g.pick(baseIngredients)
		if g.rng.Intn(2) == 0 {
			name = g.pick(ingredientGrades) + " " + name
		}
		rows = append(rows, Row{
			"name":           name,
			"stock_quantity": float64(g.rng.Intn(491) + 10),
			"unit":           g.pick(ingredientUnits),
		})
	}
	return rows
}

// MenuItems generates n candidate menu item rows. Size is optional and
// occasionally left NULL.
func (g *DataGenerator) MenuItems(n int) []Row {
	rows := make([]Row, 0, n)
	for i := 0; i < n; i++ {
		var size any
		if g.rng.Intn(10) > 0 {
			size = g.pick(menuSizes)
		}
		rows = append(rows, Row{
			"name":     g.pick(menuAdjectives) + " " + g.pick(pizzaStyles),
			"category": g.pick(menuCategories),
			"size":     size,
			"price":    round2(5 + g.rng.Float64()*20),
		})
	}
	return rows
}

// ItemIngredients maps each persisted menu item to 2-6 distinct
// persisted ingredients. Either pool being empty yields no rows.
func (g *DataGenerator) ItemIngredients(itemIDs, ingredientIDs []int64) []Row {
	if len(itemIDs) == 0 || len(ingredientIDs) == 0 {
		return nil
	}

	var rows []Row
	for _, itemID := range itemIDs {
		count := g.rng.Intn(5) + 2
		if count > len(ingredientIDs) {
			count = len(ingredientIDs)
		}
		for _, idx := range g.rng.Perm(len(ingredientIDs))[:count] {
			rows = append(rows, Row{
				"item_id":           itemID,
				"ingredient_id":     ingredientIDs[idx],
				"quantity_required": round2(5 + g.rng.Float64()*295),
			})
		}
	}
	return rows
}

// Orders generates n candidate order rows together with their line-item
// plans. Line items are planned here, before the order is persisted, so
// the stored total_amount is final at insert time and never needs an
// update. Store and menu item pools are required; an empty customer pool
// just means every order is a guest order.
func (g *DataGenerator) Orders(n int, customerIDs, storeIDs, itemIDs []int64, prices map[int64]float64, minItems, maxItems int) ([]Row, []OrderPlan) {
	if len(storeIDs) == 0 || len(itemIDs) == 0 {
		return nil, nil
	}

	rows := make([]Row, 0, n)
	plans := make([]OrderPlan, 0, n)
	for i := 0; i < n; i++ {
		var customerID any
		if len(customerIDs) > 0 && g.rng.Float64() >= guestRate {
			customerID = customerIDs[g.rng.Intn(len(customerIDs))]
		}

		plan := g.planLineItems(itemIDs, prices, minItems, maxItems)
		rows = append(rows, Row{
			"customer_id":     customerID,
			"store_id":        storeIDs[g.rng.Intn(len(storeIDs))],
			"order_timestamp": g.timestampWithin(365),
			"total_amount":    plan.Total,
			"status":          g.pick(orderStatuses),
		})
		plans = append(plans, plan)
	}
	return rows, plans
}

func (g *DataGenerator) planLineItems(itemIDs []int64, prices map[int64]float64, minItems, maxItems int) OrderPlan {
	count := minItems
	if maxItems > minItems {
		count += g.rng.Intn(maxItems - minItems + 1)
	}

	plan := OrderPlan{Items: make([]LineItem, 0, count)}
	for i := 0; i < count; i++ {
		itemID := itemIDs[g.rng.Intn(len(itemIDs))]
		// Price captured at order time drifts -5%..+10% from the menu price.
		captured := round2(prices[itemID] * (1 + (g.rng.Float64()*0.15 - 0.05)))
		quantity := g.rng.Intn(3) + 1
		plan.Items = append(plan.Items, LineItem{ItemID: itemID, Quantity: quantity, Price: captured})
		plan.Total += captured * float64(quantity)
	}
	plan.Total = round2(plan.Total)
	return plan
}

// OrderItems materializes the plans against the order keys returned by
// the loader. Keys and plans correspond positionally; a length mismatch
// means the loader broke its ordering contract.
func (g *DataGenerator) OrderItems(orderIDs []int64, plans []OrderPlan) ([]Row, error) {
	if len(orderIDs) != len(plans) {
		return nil, fmt.Errorf("have %d order keys for %d order plans", len(orderIDs), len(plans))
	}

	var rows []Row
	for i, orderID := range orderIDs {
		for _, item := range plans[i].Items {
			rows = append(rows, Row{
				"order_id":               orderID,
				"item_id":                item.ItemID,
				"quantity":               item.Quantity,
				"price_at_time_of_order": item.Price,
			})
		}
	}
	return rows, nil
}

func (g *DataGenerator) pick(pool []string) string {
	return pool[g.rng.Intn(len(pool))]
}

func (g *DataGenerator) phone() string {
	return fmt.Sprintf("+1-%03d-%03d-%04d", g.rng.Intn(1000), g.rng.Intn(1000), g.rng.Intn(10000))
}

// timestampWithin returns a UTC timestamp uniformly spread over the past
// maxDaysBack days.
func (g *DataGenerator) timestampWithin(maxDaysBack int) time.Time {
	days := g.rng.Intn(maxDaysBack)
	seconds := g.rng.Intn(86400)
	return g.now.AddDate(0, 0, -days).Add(-time.Duration(seconds) * time.Second)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
