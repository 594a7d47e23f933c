package graph

import (
	"sort"

	"github.com/graphoid-lang/graphoid/value"
)

// FindNodesByProperty returns every node ID whose Properties[prop]
// equals want, per spec §4.4.3. The first indexThreshold-1 calls for a
// given prop linear-scan; from the indexThreshold'th call on, g builds
// and reuses a secondary index keyed by the property's Display() form,
// transparent to callers and invalidated on any node add/remove/value
// change touching that property.
func (g *Graph) FindNodesByProperty(prop string, want value.Value) []string {
	g.muRest.Lock()
	g.lookupCounts[prop]++
	count := g.lookupCounts[prop]
	idx, indexed := g.indices[prop]
	g.muRest.Unlock()

	if !indexed && count >= indexThreshold {
		idx = g.buildIndex(prop)
		g.muRest.Lock()
		g.indices[prop] = idx
		g.muRest.Unlock()
		indexed = true
	}

	if indexed {
		return append([]string(nil), idx[want.Display()]...)
	}
	return g.scanByProperty(prop, want)
}

// scanByProperty linear-scans every node for Properties[prop] == want.
func (g *Graph) scanByProperty(prop string, want value.Value) []string {
	var out []string
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	for _, id := range g.order {
		n := g.nodes[id]
		if v, ok := n.Properties[prop]; ok && v.Equal(want) {
			out = append(out, id)
		}
	}
	return out
}

// buildIndex scans every node once and groups node IDs by the Display()
// form of their Properties[prop] value.
func (g *Graph) buildIndex(prop string) map[string][]string {
	idx := map[string][]string{}
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	for _, id := range g.order {
		n := g.nodes[id]
		if v, ok := n.Properties[prop]; ok {
			idx[v.Display()] = append(idx[v.Display()], id)
		}
	}
	for k := range idx {
		sort.Strings(idx[k])
	}
	return idx
}

// IndexedProperties returns the properties g currently maintains a
// secondary index over, sorted, for Stats()/explain().
func (g *Graph) IndexedProperties() []string {
	g.muRest.RLock()
	defer g.muRest.RUnlock()
	out := make([]string, 0, len(g.indices))
	for k := range g.indices {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
