package seeder

import (
	"context"
	"fmt"
)

// State tracks where a run is in its lifecycle. Committed and RolledBack
// are terminal.
type State int

const (
	StateIdle State = iota
	StateGenerating
	StateResolving
	StatePersisting
	StateCommitting
	StateCommitted
	StateRollingBack
	StateRolledBack
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateGenerating:
		return "generating"
	case StateResolving:
		return "resolving"
	case StatePersisting:
		return "persisting"
	case StateCommitting:
		return "committing"
	case StateCommitted:
		return "committed"
	case StateRollingBack:
		return "rolling back"
	case StateRolledBack:
		return "rolled back"
	}
	return "unknown"
}

// stage is one entity's generate -> resolve -> persist step.
type stage struct {
	name      string
	table     string
	pk        string
	columns   []string
	dependsOn []string
	unique    []UniqueField
	generate  func(p *Pipeline) ([]Row, error)
	// after runs once the stage's rows are persisted, with the returned
	// keys, for stages whose output feeds later generation beyond the
	// key pool itself.
	after func(p *Pipeline, rows []Row, keys []int64)
}

// Pipeline drives the stages in the topological order implied by the
// schema's foreign keys. A stage never starts before everything it
// depends on has been persisted on the run's transaction, and the keys a
// stage may reference are exactly the keys earlier stages returned.
type Pipeline struct {
	gen      *DataGenerator
	resolver *Resolver
	vols     Volumes
	stages   []*stage

	pools  map[string][]int64
	prices map[int64]float64
	plans  []OrderPlan

	state State
}

// NewPipeline validates the stage graph and fixes the execution order.
// An unorderable graph fails here, before any generation begins.
func NewPipeline(gen *DataGenerator, vols Volumes) (*Pipeline, error) {
	if vols.MinOrderItems < 1 || vols.MaxOrderItems < vols.MinOrderItems {
		return nil, fmt.Errorf("invalid line items per order: min %d, max %d", vols.MinOrderItems, vols.MaxOrderItems)
	}

	p := &Pipeline{
		gen:      gen,
		resolver: NewResolver(),
		vols:     vols,
		pools:    make(map[string][]int64),
		prices:   make(map[int64]float64),
		state:    StateIdle,
	}

	declared := p.declareStages()
	graph := NewDependencyGraph()
	for _, st := range declared {
		graph.Add(st.name, st.dependsOn...)
	}
	order, err := graph.Order()
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*stage, len(declared))
	for _, st := range declared {
		byName[st.name] = st
	}
	for _, name := range order {
		p.stages = append(p.stages, byName[name])
	}
	return p, nil
}

func (p *Pipeline) declareStages() []*stage {
	return []*stage{
		{
			name:    "stores",
			table:   "stores",
			pk:      "store_id",
			columns: []string{"address", "city", "phone_number", "opened_at"},
			unique:  []UniqueField{{Column: "phone_number", Mutate: MutateSuffix}},
			generate: func(p *Pipeline) ([]Row, error) {
				return p.gen.Stores(p.vols.Stores), nil
			},
		},
		{
			name:    "customers",
			table:   "customers",
			pk:      "customer_id",
			columns: []string{"first_name", "last_name", "email", "phone_number", "created_at"},
			unique: []UniqueField{
				{Column: "email", Mutate: MutateEmail},
				{Column: "phone_number", Mutate: MutateSuffix},
			},
			generate: func(p *Pipeline) ([]Row, error) {
				return p.gen.Customers(p.vols.Customers), nil
			},
		},
		{
			name:    "ingredients",
			table:   "ingredients",
			pk:      "ingredient_id",
			columns: []string{"name", "stock_quantity", "unit"},
			unique:  []UniqueField{{Column: "name", Mutate: MutateSuffix}},
			generate: func(p *Pipeline) ([]Row, error) {
				return p.gen.Ingredients(p.vols.Ingredients), nil
			},
		},
		{
			name:    "menu_items",
			table:   "menu_items",
			pk:      "item_id",
			columns: []string{"name", "category", "size", "price"},
			generate: func(p *Pipeline) ([]Row, error) {
				return p.gen.MenuItems(p.vols.MenuItems), nil
			},
			after: func(p *Pipeline, rows []Row, keys []int64) {
				for i, key := range keys {
					p.prices[key] = rows[i]["price"].(float64)
				}
			},
		},
		{
			name:      "item_ingredients",
			table:     "item_ingredients",
			pk:        "", // composite identity, no surrogate key
			columns:   []string{"item_id", "ingredient_id", "quantity_required"},
			dependsOn: []string{"menu_items", "ingredients"},
			generate: func(p *Pipeline) ([]Row, error) {
				return p.gen.ItemIngredients(p.pools["menu_items"], p.pools["ingredients"]), nil
			},
		},
		{
			name:      "orders",
			table:     "orders",
			pk:        "order_id",
			columns:   []string{"customer_id", "store_id", "order_timestamp", "total_amount", "status"},
			dependsOn: []string{"customers", "stores", "menu_items"},
			generate: func(p *Pipeline) ([]Row, error) {
				rows, plans := p.gen.Orders(p.vols.Orders,
					p.pools["customers"], p.pools["stores"], p.pools["menu_items"],
					p.prices, p.vols.MinOrderItems, p.vols.MaxOrderItems)
				p.plans = plans
				return rows, nil
			},
		},
		{
			name:      "order_items",
			table:     "order_items",
			pk:        "order_item_id",
			columns:   []string{"order_id", "item_id", "quantity", "price_at_time_of_order"},
			dependsOn: []string{"orders", "menu_items"},
			generate: func(p *Pipeline) ([]Row, error) {
				return p.gen.OrderItems(p.pools["orders"], p.plans)
			},
		},
	}
}

// StageNames reports the execution order, parents first.
func (p *Pipeline) StageNames() []string {
	names := make([]string, len(p.stages))
	for i, st := range p.stages {
		names[i] = st.name
	}
	return names
}

// State reports the run's current lifecycle state.
func (p *Pipeline) State() State { return p.state }

// Run executes every stage in order on the given loader. It must be
// called inside the run's transaction; on success the pipeline is left
// in the committing state and Finish records the transaction outcome.
func (p *Pipeline) Run(ctx context.Context, loader Loader) (*Result, error) {
	counts := make(map[string]int)

	for _, st := range p.stages {
		p.state = StateGenerating
		rows, err := st.generate(p)
		if err != nil {
			return nil, p.fail(st, err)
		}

		p.state = StateResolving
		if err := p.resolver.Resolve(st.name, rows, st.unique); err != nil {
			return nil, p.fail(st, err)
		}

		p.state = StatePersisting
		keys, err := loader.Persist(ctx, st.table, st.columns, rows, st.pk)
		if err != nil {
			return nil, p.fail(st, err)
		}

		if st.pk != "" {
			p.pools[st.name] = append(p.pools[st.name], keys...)
		}
		if st.after != nil {
			st.after(p, rows, keys)
		}
		counts[st.table] = len(rows)
	}

	p.state = StateCommitting
	return &Result{Counts: counts, Seed: p.gen.Seed()}, nil
}

// Finish records the transaction outcome reported by the caller: nil
// means the commit went through, anything else means the run was rolled
// back.
func (p *Pipeline) Finish(err error) {
	if err != nil {
		p.state = StateRolledBack
		return
	}
	if p.state == StateCommitting {
		p.state = StateCommitted
	}
}

func (p *Pipeline) fail(st *stage, err error) error {
	wrapped := &StageError{Stage: st.name, State: p.state, Err: err}
	p.state = StateRollingBack
	return wrapped
}
