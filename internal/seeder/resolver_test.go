package seeder

import (
	"errors"
	"fmt"
	"testing"
)

func emailRows(values ...string) []Row {
	rows := make([]Row, len(values))
	for i, v := range values {
		rows[i] = Row{"email": v}
	}
	return rows
}

func TestResolveDeduplicatesWithinBatch(t *testing.T) {
	r := NewResolver()
	rows := emailRows("a@x.com", "a@x.com", "a@x.com")

	if err := r.Resolve("customers", rows, []UniqueField{{Column: "email", Mutate: MutateEmail}}); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	seen := make(map[string]bool)
	for _, row := range rows {
		v := row["email"].(string)
		if seen[v] {
			t.Errorf("Duplicate value %q survived resolution", v)
		}
		seen[v] = true
	}
	if rows[0]["email"] != "a@x.com" {
		t.Errorf("Expected first occurrence to keep its value, got %q", rows[0]["email"])
	}
}

func TestResolveChecksKnownValues(t *testing.T) {
	r := NewResolver()
	first := emailRows("a@x.com")
	if err := r.Resolve("customers", first, []UniqueField{{Column: "email", Mutate: MutateEmail}}); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	second := emailRows("a@x.com")
	if err := r.Resolve("customers", second, []UniqueField{{Column: "email", Mutate: MutateEmail}}); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if second[0]["email"] == "a@x.com" {
		t.Error("Expected collision against known values to be mutated")
	}
}

func TestResolveScopesKnownValuesByEntity(t *testing.T) {
	r := NewResolver()
	fields := []UniqueField{{Column: "phone_number", Mutate: MutateSuffix}}

	stores := []Row{{"phone_number": "+1-555-000-0001"}}
	if err := r.Resolve("stores", stores, fields); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	customers := []Row{{"phone_number": "+1-555-000-0001"}}
	if err := r.Resolve("customers", customers, fields); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if customers[0]["phone_number"] != "+1-555-000-0001" {
		t.Errorf("Expected store and customer phones to be independent constraints, got %q", customers[0]["phone_number"])
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	run := func() []string {
		r := NewResolver()
		rows := emailRows("a@x.com", "a@x.com", "b@x.com", "a@x.com", "b@x.com")
		if err := r.Resolve("customers", rows, []UniqueField{{Column: "email", Mutate: MutateEmail}}); err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		out := make([]string, len(rows))
		for i, row := range rows {
			out[i] = row["email"].(string)
		}
		return out
	}

	first := run()
	second := run()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Expected identical resolution, got %v vs %v", first, second)
		}
	}
}

func TestResolveExhaustionFailsLoudly(t *testing.T) {
	r := NewResolver()
	rows := emailRows("a@x.com", "a@x.com")
	// A mutator that never changes anything can never resolve the collision.
	stuck := func(value string, token int) string { return value }

	err := r.Resolve("customers", rows, []UniqueField{{Column: "email", Mutate: stuck}})
	if !errors.Is(err, ErrUniquenessExhausted) {
		t.Fatalf("Expected ErrUniquenessExhausted, got %v", err)
	}

	var ue *UniquenessError
	if !errors.As(err, &ue) {
		t.Fatalf("Expected a UniquenessError, got %T", err)
	}
	if ue.Entity != "customers" || ue.Column != "email" {
		t.Errorf("Expected failure on customers.email, got %s.%s", ue.Entity, ue.Column)
	}
}

func TestResolveHighCollisionBatch(t *testing.T) {
	r := NewResolver()
	values := make([]string, 200)
	for i := range values {
		values[i] = "popular@x.com"
	}

	rows := emailRows(values...)
	if err := r.Resolve("customers", rows, []UniqueField{{Column: "email", Mutate: MutateEmail}}); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	seen := make(map[string]bool)
	for _, row := range rows {
		v := row["email"].(string)
		if seen[v] {
			t.Fatalf("Duplicate %q committed from high-collision batch", v)
		}
		seen[v] = true
	}
}

func TestResolveRejectsNonStringUniqueColumn(t *testing.T) {
	r := NewResolver()
	rows := []Row{{"email": 42}}

	err := r.Resolve("customers", rows, []UniqueField{{Column: "email", Mutate: MutateEmail}})
	if err == nil {
		t.Fatal("Expected an error for a non-string unique column")
	}
}

func TestMutators(t *testing.T) {
	if got := MutateEmail("jane.doe@x.com", 7); got != "jane.doe+7@x.com" {
		t.Errorf("MutateEmail: got %q", got)
	}
	if got := MutateEmail("not-an-email", 7); got != "not-an-email+7" {
		t.Errorf("MutateEmail without domain: got %q", got)
	}
	if got := MutateSuffix("+1-555-000-0001", 12); got != "+1-555-000-0001-12" {
		t.Errorf("MutateSuffix: got %q", got)
	}
}

func TestResolveEmptyBatch(t *testing.T) {
	r := NewResolver()
	if err := r.Resolve("customers", nil, []UniqueField{{Column: "email", Mutate: MutateEmail}}); err != nil {
		t.Errorf("Resolve of empty batch failed: %v", err)
	}
}

func BenchmarkResolveLargeBatch(b *testing.B) {
	rows := make([]Row, 10000)
	for i := range rows {
		rows[i] = Row{"email": fmt.Sprintf("user%d@x.com", i%1000)}
	}
	fields := []UniqueField{{Column: "email", Mutate: MutateEmail}}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r := NewResolver()
		batch := make([]Row, len(rows))
		for j, row := range rows {
			batch[j] = Row{"email": row["email"]}
		}
		if err := r.Resolve("customers", batch, fields); err != nil {
			b.Fatal(err)
		}
	}
}
