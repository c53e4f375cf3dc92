package layout

import (
	"maps"
	"slices"

	"github.com/dizzikim-dev/infraflow-sub006/pkg/spec"
)

// CountCrossings returns the total number of edge crossings for the given
// layer orderings, summed over each pair of consecutive occupied layers.
// Connections spanning more than one rank are counted against the pair of
// layers they connect only when those layers are rank-adjacent.
//
// This is a diagnostic: the barycenter orderer does not consult it, but tests
// and the inspect command use it to report layout quality.
func CountCrossings(ordered map[int][]string, conns []spec.ConnectionSpec) int {
	forward := make(map[string][]string)
	for _, c := range conns {
		forward[c.Source] = append(forward[c.Source], c.Target)
	}

	keys := slices.Sorted(maps.Keys(ordered))
	crossings := 0
	for i := 0; i+1 < len(keys); i++ {
		crossings += CountLayerCrossings(ordered[keys[i]], ordered[keys[i+1]], forward)
	}
	return crossings
}

// CountLayerCrossings counts edge crossings between two adjacent layers using
// a Fenwick tree (binary indexed tree) for O(E log V) performance, where E is
// the number of edges between the layers and V the size of the lower layer.
//
// Two edges (u1,v1) and (u2,v2) cross if and only if:
//
//	pos(u1) < pos(u2) AND pos(v1) > pos(v2)
//
// which is equivalent to counting inversions in the sequence of target
// positions when edges are sorted by source position.
//
// Returns 0 if either layer is empty, as no crossings can exist without edges.
func CountLayerCrossings(upper, lower []string, forward map[string][]string) int {
	if len(upper) == 0 || len(lower) == 0 {
		return 0
	}

	lowerPos := posMap(lower)

	type edge struct{ upper, lower int }
	edges := make([]edge, 0, len(upper)*2)
	for i, id := range upper {
		for _, target := range forward[id] {
			if pos, ok := lowerPos[target]; ok {
				edges = append(edges, edge{i, pos})
			}
		}
	}
	if len(edges) < 2 {
		return 0
	}

	slices.SortFunc(edges, func(a, b edge) int {
		if a.upper != b.upper {
			return a.upper - b.upper
		}
		return a.lower - b.lower
	})

	// Count inversions using a Fenwick tree.
	fenwick := make([]int, len(lower)+1)
	crossings, total := 0, 0
	for _, e := range edges {
		lessOrEqual := 0
		for q := e.lower + 1; q > 0; q -= q & (-q) {
			lessOrEqual += fenwick[q]
		}
		crossings += total - lessOrEqual

		total++
		for idx := e.lower + 1; idx < len(fenwick); idx += idx & (-idx) {
			fenwick[idx]++
		}
	}
	return crossings
}
