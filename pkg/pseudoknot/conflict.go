package pseudoknot

import (
	"maps"
	"slices"
)

// ConflictMap is the crossing graph over a set of regions. Regions are stored
// in an arena addressed by Region.ID; removal and merging only change which
// arena entries are present, never the regions themselves.
//
// A ConflictMap is owned by the resolver invocation that built it and is not
// safe for concurrent use.
type ConflictMap struct {
	arena   []Region
	present []bool
	adj     []map[int]struct{} // ID -> IDs of present conflicting regions
}

// NewConflictMap builds the crossing graph of regions. Region IDs are
// reassigned to their arena positions, which matches the IDs produced by
// [CreateRegions].
func NewConflictMap(regions []Region) *ConflictMap {
	m := &ConflictMap{}
	for _, r := range regions {
		m.add(r)
	}
	return m
}

// add appends r to the arena and links it to every present region it crosses.
func (m *ConflictMap) add(r Region) int {
	id := len(m.arena)
	r.ID = id
	m.arena = append(m.arena, r)
	m.present = append(m.present, true)
	m.adj = append(m.adj, make(map[int]struct{}))
	m.link(id)
	return id
}

func (m *ConflictMap) link(id int) {
	r := m.arena[id]
	for other := range m.arena {
		if other == id || !m.present[other] {
			continue
		}
		if Conflicting(r, m.arena[other]) {
			m.adj[id][other] = struct{}{}
			m.adj[other][id] = struct{}{}
		}
	}
}

func (m *ConflictMap) unlink(id int) {
	for other := range m.adj[id] {
		delete(m.adj[other], id)
	}
	clear(m.adj[id])
}

// sortIDs orders region IDs by Begin, then ID.
func (m *ConflictMap) sortIDs(ids []int) []int {
	slices.SortFunc(ids, func(a, b int) int {
		return compareRegions(m.arena[a], m.arena[b])
	})
	return ids
}

// Region returns the region with the given ID, present or not.
func (m *ConflictMap) Region(id int) Region { return m.arena[id] }

// Present reports whether the region is currently part of the graph.
func (m *ConflictMap) Present(id int) bool { return m.present[id] }

// Regions returns the present regions ordered by Begin.
func (m *ConflictMap) Regions() []Region {
	var out []Region
	for id, r := range m.arena {
		if m.present[id] {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, compareRegions)
	return out
}

// ConflictsWith returns the IDs of present regions crossing id, ordered by Begin.
func (m *ConflictMap) ConflictsWith(id int) []int {
	return m.sortIDs(slices.Collect(maps.Keys(m.adj[id])))
}

// ConflictCount returns the number of present regions crossing id.
func (m *ConflictMap) ConflictCount(id int) int { return len(m.adj[id]) }

// HasConflicts reports whether id crosses any present region.
func (m *ConflictMap) HasConflicts(id int) bool {
	return m.present[id] && len(m.adj[id]) > 0
}

// HasAnyConflicts reports whether any two present regions cross.
func (m *ConflictMap) HasAnyConflicts() bool {
	for id := range m.arena {
		if m.HasConflicts(id) {
			return true
		}
	}
	return false
}

// ConflictedRegions returns the IDs of present regions with at least one
// conflict, ordered by Begin.
func (m *ConflictMap) ConflictedRegions() []int {
	var ids []int
	for id := range m.arena {
		if m.HasConflicts(id) {
			ids = append(ids, id)
		}
	}
	return m.sortIDs(ids)
}

// Remove takes a region out of the graph together with its edges.
func (m *ConflictMap) Remove(id int) {
	if !m.present[id] {
		return
	}
	m.unlink(id)
	m.present[id] = false
}

// Restore puts a removed region back and recomputes its edges.
func (m *ConflictMap) Restore(id int) {
	if m.present[id] {
		return
	}
	m.present[id] = true
	m.link(id)
}

// CrossesAny reports whether region id crosses any present region other than
// itself. It works for removed regions too.
func (m *ConflictMap) CrossesAny(id int) bool {
	r := m.arena[id]
	for other, o := range m.arena {
		if other != id && m.present[other] && Conflicting(r, o) {
			return true
		}
	}
	return false
}

// Merge replaces regions a and b with a single region spanning both and
// returns its ID.
func (m *ConflictMap) Merge(a, b int) int {
	merged := mergeRegions(len(m.arena), m.arena[a], m.arena[b])
	m.Remove(a)
	m.Remove(b)
	return m.add(merged)
}

// Simplify merges nested regions that conflict with exactly the same regions,
// since any optimal resolution keeps or drops them together. Merging repeats
// until no candidate pair is left. It returns the number of merges.
func (m *ConflictMap) Simplify() int {
	merges := 0
	for m.simplifyOnce() {
		merges++
	}
	return merges
}

func (m *ConflictMap) simplifyOnce() bool {
	conflicted := m.ConflictedRegions()
	for i, a := range conflicted {
		ra := m.arena[a]
		for _, b := range conflicted[i+1:] {
			rb := m.arena[b]
			if !ra.Contains(rb) && !rb.Contains(ra) {
				continue
			}
			if maps.Equal(m.adj[a], m.adj[b]) {
				m.Merge(a, b)
				return true
			}
		}
	}
	return false
}

// Cliques groups the conflicted regions into connected components of the
// crossing graph. Cliques are ordered by their first endpoint and regions
// within a clique by Begin.
func (m *ConflictMap) Cliques() []Clique {
	var cliques []Clique
	seen := make(map[int]bool)
	for _, start := range m.ConflictedRegions() {
		if seen[start] {
			continue
		}
		var members []Region
		queue := []int{start}
		seen[start] = true
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			members = append(members, m.arena[id])
			for _, next := range m.ConflictsWith(id) {
				if !seen[next] {
					seen[next] = true
					queue = append(queue, next)
				}
			}
		}
		cliques = append(cliques, NewClique(members))
	}
	return cliques
}

// Clique is a connected group of mutually conflicting regions. Resolution
// of one clique never affects another.
type Clique struct {
	regions   []Region
	endpoints []int
	index     map[int]int    // endpoint -> position in endpoints
	bySpan    map[[2]int]int // (Begin, End) -> position in regions
}

// NewClique builds a clique view over regions.
func NewClique(regions []Region) Clique {
	c := Clique{
		regions: slices.Clone(regions),
		index:   make(map[int]int, 2*len(regions)),
		bySpan:  make(map[[2]int]int, len(regions)),
	}
	slices.SortFunc(c.regions, compareRegions)
	for i, r := range c.regions {
		c.bySpan[[2]int{r.Begin, r.End}] = i
		c.endpoints = append(c.endpoints, r.Begin, r.End)
	}
	slices.Sort(c.endpoints)
	c.endpoints = slices.Compact(c.endpoints)
	for i, e := range c.endpoints {
		c.index[e] = i
	}
	return c
}

// Size returns the number of regions in the clique.
func (c Clique) Size() int { return len(c.regions) }

// EndpointCount returns the number of distinct region boundaries.
func (c Clique) EndpointCount() int { return len(c.endpoints) }

// Regions returns the regions ordered by Begin.
func (c Clique) Regions() []Region { return c.regions }

// Endpoint returns the i-th smallest boundary.
func (c Clique) Endpoint(i int) int { return c.endpoints[i] }

// IndexOfEndpoint returns the position of residue e among the boundaries,
// or -1 if e is not a boundary.
func (c Clique) IndexOfEndpoint(e int) int {
	if i, ok := c.index[e]; ok {
		return i
	}
	return -1
}

// FindRegion returns the position of the region spanning exactly
// (begin, end).
func (c Clique) FindRegion(begin, end int) (int, bool) {
	i, ok := c.bySpan[[2]int{begin, end}]
	return i, ok
}

// PairCount returns the number of base pairs over all regions.
func (c Clique) PairCount() int {
	n := 0
	for _, r := range c.regions {
		n += r.Len()
	}
	return n
}
