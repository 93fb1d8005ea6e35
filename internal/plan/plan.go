// Package plan models the statically declared set of publishable packages
// and the dependency order they must be released in.
package plan

// Package identifies one publishable unit.
//
// All fields are declared statically (normally from the release plan file)
// and never mutated at runtime.
type Package struct {
	// Name is the package's registry name.
	Name string

	// Manifest is the path to the package's manifest file.
	Manifest string

	// StageTargets are the directories the vendored source tree is copied
	// into before this package is packaged. May be empty.
	StageTargets []string

	// Excludes are subpaths pruned from each staged copy, relative to the
	// staged tree root.
	Excludes []string

	// DependsOn names the packages that must be published before this one.
	DependsOn []string
}

// PublishPlan is an ordered sequence of packages in dependency order.
//
// Invariant: no package appears before a package it depends on. The plan is
// constructed once at startup, consumed linearly, and never mutated.
type PublishPlan struct {
	packages []Package
	index    map[string]int
}

// NewPlan validates the declared package sequence and builds a PublishPlan.
//
// Validation rejects:
//   - an empty plan, empty names, duplicate names
//   - dependencies on unknown packages or on the package itself
//   - a declared order that places a package before one of its dependencies
//
// When the dependency declarations are cyclic (so no valid order exists),
// the error carries a deterministic cycle witness path. The declared order
// is otherwise preserved as-is: re-sorting it silently would hide mistakes
// in the release recipe.
func NewPlan(packages []Package) (*PublishPlan, error) {
	if len(packages) == 0 {
		return nil, invalidf("no packages")
	}

	index := make(map[string]int, len(packages))
	for i, pkg := range packages {
		if pkg.Name == "" {
			return nil, invalidf("package name is required")
		}
		if _, exists := index[pkg.Name]; exists {
			return nil, invalidf("duplicate package name: %q", pkg.Name)
		}
		if pkg.Manifest == "" {
			return nil, invalidf("package %q has no manifest", pkg.Name)
		}
		index[pkg.Name] = i
	}

	for i, pkg := range packages {
		for _, dep := range pkg.DependsOn {
			depIdx, ok := index[dep]
			if !ok {
				return nil, invalidf("package %q depends on unknown package %q", pkg.Name, dep)
			}
			if dep == pkg.Name {
				return nil, invalidf("package %q depends on itself", pkg.Name)
			}
			if depIdx > i {
				// Either the declared order is wrong, or no valid order
				// exists at all. Prefer the cycle witness when there is one.
				if cycle := findCycle(packages, index); len(cycle) > 0 {
					return nil, cycleError(cycle)
				}
				return nil, invalidf("package %q is ordered before its dependency %q", pkg.Name, dep)
			}
		}
	}

	return &PublishPlan{packages: packages, index: index}, nil
}

// Len returns the number of packages in the plan.
func (p *PublishPlan) Len() int { return len(p.packages) }

// Packages returns the plan's packages in publish order.
//
// The returned slice is a copy; the plan itself stays immutable.
func (p *PublishPlan) Packages() []Package {
	out := make([]Package, len(p.packages))
	copy(out, p.packages)
	return out
}

// findCycle performs a deterministic DFS over the "must publish before"
// edges and extracts one cycle path as a stable witness.
//
// Traversal follows declared plan order, so the same declarations always
// produce the same witness.
func findCycle(packages []Package, index map[string]int) []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)

	// Edge dep -> dependent: dep must be published before the dependent.
	outgoing := make([][]int, len(packages))
	for i, pkg := range packages {
		for _, dep := range pkg.DependsOn {
			d := index[dep]
			outgoing[d] = append(outgoing[d], i)
		}
	}

	color := make([]int, len(packages))
	parent := make([]int, len(packages))
	for i := range parent {
		parent[i] = -1
	}

	var cycle []int

	var dfs func(u int) bool
	dfs = func(u int) bool {
		color[u] = gray
		for _, v := range outgoing[u] {
			if color[v] == white {
				parent[v] = u
				if dfs(v) {
					return true
				}
				continue
			}
			if color[v] == gray {
				// Back-edge u -> v: reconstruct v ... u -> v via parents.
				cycle = append(cycle, v)
				cur := u
				for cur != -1 && cur != v {
					cycle = append(cycle, cur)
					cur = parent[cur]
				}
				cycle = append(cycle, v)
				return true
			}
		}
		color[u] = black
		return false
	}

	for i := range packages {
		if color[i] != white {
			continue
		}
		if dfs(i) {
			break
		}
	}

	if len(cycle) == 0 {
		return nil
	}

	out := make([]string, 0, len(cycle))
	for i := len(cycle) - 1; i >= 0; i-- {
		out = append(out, packages[cycle[i]].Name)
	}
	return out
}
