package di

import (
	"github.com/mrsarm/appctx/errors"
)

// dependencyGraph tracks bean dependencies for ordered start-up.
type dependencyGraph struct {
	nodes map[string]*node
	order []string // registration order, kept for stable sorting
}

type node struct {
	name         string
	dependencies []string
}

func newDependencyGraph() *dependencyGraph {
	return &dependencyGraph{
		nodes: make(map[string]*node),
		order: make([]string, 0),
	}
}

// addNode adds a bean with its dependencies. Beans without dependencies
// keep their registration order (FIFO).
func (g *dependencyGraph) addNode(name string, dependencies []string) {
	g.nodes[name] = &node{
		name:         name,
		dependencies: dependencies,
	}
	g.order = append(g.order, name)
}

// topologicalSort returns beans in dependency order, or a cycle error.
func (g *dependencyGraph) topologicalSort() ([]string, error) {
	visited := make(map[string]bool)
	visiting := make(map[string]bool)
	result := make([]string, 0, len(g.nodes))

	for _, name := range g.order {
		if err := g.visit(name, visited, visiting, nil, &result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (g *dependencyGraph) visit(name string, visited, visiting map[string]bool, path []string, result *[]string) error {
	if visited[name] {
		return nil
	}

	path = append(path, name)

	if visiting[name] {
		return errors.ErrCircularDependency(path)
	}

	node := g.nodes[name]
	if node == nil {
		// Dependency on a name registered elsewhere or optional, skip.
		return nil
	}

	visiting[name] = true

	for _, dep := range node.dependencies {
		if err := g.visit(dep, visited, visiting, path, result); err != nil {
			return err
		}
	}

	visiting[name] = false
	visited[name] = true
	*result = append(*result, name)

	return nil
}
