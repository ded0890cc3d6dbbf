package seeder

import (
	"errors"
	"testing"
)

func TestOrderPlacesParentsFirst(t *testing.T) {
	g := NewDependencyGraph()
	g.Add("stores")
	g.Add("customers")
	g.Add("ingredients")
	g.Add("menu_items")
	g.Add("item_ingredients", "menu_items", "ingredients")
	g.Add("orders", "customers", "stores", "menu_items")
	g.Add("order_items", "orders", "menu_items")

	order, err := g.Order()
	if err != nil {
		t.Fatalf("Order() failed: %v", err)
	}
	if len(order) != 7 {
		t.Fatalf("Expected 7 stages in order, got %d: %v", len(order), order)
	}

	position := make(map[string]int, len(order))
	for i, name := range order {
		position[name] = i
	}

	deps := map[string][]string{
		"item_ingredients": {"menu_items", "ingredients"},
		"orders":           {"customers", "stores", "menu_items"},
		"order_items":      {"orders", "menu_items"},
	}
	for child, parents := range deps {
		for _, parent := range parents {
			if position[parent] >= position[child] {
				t.Errorf("Expected %s before %s, got order %v", parent, child, order)
			}
		}
	}
}

func TestOrderIsDeterministic(t *testing.T) {
	build := func() []string {
		g := NewDependencyGraph()
		g.Add("a")
		g.Add("b", "a")
		g.Add("c", "a")
		g.Add("d", "b", "c")
		order, err := g.Order()
		if err != nil {
			t.Fatalf("Order() failed: %v", err)
		}
		return order
	}

	first := build()
	for i := 0; i < 5; i++ {
		next := build()
		for j := range first {
			if first[j] != next[j] {
				t.Fatalf("Expected stable order %v, got %v", first, next)
			}
		}
	}
}

func TestCycleFailsAtConstruction(t *testing.T) {
	g := NewDependencyGraph()
	g.Add("orders", "order_items")
	g.Add("order_items", "orders")

	if _, err := g.Order(); !errors.Is(err, ErrDependencyOrder) {
		t.Errorf("Expected ErrDependencyOrder for a cycle, got %v", err)
	}
}

func TestUndeclaredDependencyFails(t *testing.T) {
	g := NewDependencyGraph()
	g.Add("orders", "stores")

	if _, err := g.Order(); !errors.Is(err, ErrDependencyOrder) {
		t.Errorf("Expected ErrDependencyOrder for undeclared dependency, got %v", err)
	}
}

func TestSelfReferenceIsIgnored(t *testing.T) {
	g := NewDependencyGraph()
	g.Add("categories", "categories")

	order, err := g.Order()
	if err != nil {
		t.Fatalf("Order() failed on self-reference: %v", err)
	}
	if len(order) != 1 || order[0] != "categories" {
		t.Errorf("Expected [categories], got %v", order)
	}
}
