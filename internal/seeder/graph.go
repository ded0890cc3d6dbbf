package seeder

import "fmt"

// DependencyGraph orders seeding stages so that every stage runs after
// the stages it takes foreign keys from.
type DependencyGraph struct {
	names []string
	deps  map[string][]string
}

func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		deps: make(map[string][]string),
	}
}

func (g *DependencyGraph) Add(name string, dependsOn ...string) {
	if _, exists := g.deps[name]; !exists {
		g.names = append(g.names, name)
	}
	g.deps[name] = append(g.deps[name], dependsOn...)
}

// Order returns a topological ordering of the added stages, parents
// first. It fails if a dependency was never added or the graph has a
// cycle; both are construction-time defects, not runtime ones.
func (g *DependencyGraph) Order() ([]string, error) {
	visited := make(map[string]bool)
	onPath := make(map[string]bool)
	var order []string

	var visit func(string) error
	visit = func(name string) error {
		if onPath[name] {
			return fmt.Errorf("%w: cycle through %s", ErrDependencyOrder, name)
		}
		if visited[name] {
			return nil
		}

		deps, known := g.deps[name]
		if !known {
			return fmt.Errorf("%w: dependency on undeclared stage %s", ErrDependencyOrder, name)
		}

		onPath[name] = true
		for _, dep := range deps {
			if dep == name {
				continue
			}
			if err := visit(dep); err != nil {
				return err
			}
		}
		onPath[name] = false

		visited[name] = true
		order = append(order, name)
		return nil
	}

	for _, name := range g.names {
		if err := visit(name); err != nil {
			return nil, err
		}
	}

	return order, nil
}
