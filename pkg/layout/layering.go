package layout

import "github.com/dizzikim-dev/infraflow-sub006/pkg/spec"

// adjacency holds forward and reverse edge lists restricted to connections
// whose endpoints both exist among the input nodes. Dangling connections are
// silently dropped here; they still appear in rendered edge output.
type adjacency struct {
	forward map[string][]string // source -> targets
	reverse map[string][]string // target -> sources
	edges   int                 // count of retained connections
}

func buildAdjacency(nodes []spec.NodeSpec, conns []spec.ConnectionSpec) adjacency {
	known := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		known[n.ID] = true
	}

	adj := adjacency{
		forward: make(map[string][]string, len(nodes)),
		reverse: make(map[string][]string, len(nodes)),
	}
	for _, c := range conns {
		if !known[c.Source] || !known[c.Target] {
			continue
		}
		adj.forward[c.Source] = append(adj.forward[c.Source], c.Target)
		adj.reverse[c.Target] = append(adj.reverse[c.Target], c.Source)
		adj.edges++
	}
	return adj
}

// AssignLayers computes an integer layer (column) for every node: the longest
// path length from any root, with a tier-derived fallback for nodes the
// relaxation never reaches.
//
// # Algorithm
//
// AssignLayers performs a FIFO worklist relaxation:
//  1. Seed every root (no incoming edge) at layer 0, in input order.
//  2. Pop a node at layer L; offer layer L+1 to each forward neighbor.
//  3. Accept an offer only if it is strictly greater than the neighbor's
//     current layer, re-enqueueing the neighbor on acceptance.
//  4. Repeat until the worklist drains.
//
// The strictly-greater rule makes this a longest-path layering: every edge
// reachable from a root points forward by at least one layer, so no two
// connected nodes share a column. The relaxation is a monotonic fixed-point
// computation, so the result is deterministic regardless of visitation order.
//
// # Fallbacks
//
// With zero retained connections every node gets its tier rank as its layer
// (external=0, dmz=1, internal=2, data=3), which yields a sensible
// left-to-right ordering for disconnected node sets. Nodes never reached by
// the relaxation - isolated nodes, or members of a cycle with no entry
// point - receive the same tier-derived fallback.
//
// Offers are capped at len(nodes)-1, the longest path possible in an acyclic
// graph; only a cycle reachable from a root can generate offers beyond that,
// and the cap keeps the relaxation finite for such inputs.
//
// Malformed input never produces an error: dangling connections are dropped
// during adjacency construction and unknown node types resolve through the
// tier default.
func AssignLayers(nodes []spec.NodeSpec, conns []spec.ConnectionSpec) map[string]int {
	adj := buildAdjacency(nodes, conns)
	layers := make(map[string]int, len(nodes))

	if adj.edges == 0 {
		for _, n := range nodes {
			if _, ok := layers[n.ID]; ok {
				continue
			}
			layers[n.ID] = resolveTier(n).Rank()
		}
		return layers
	}

	// Roots are nodes with no incoming retained edge that participate in at
	// least one edge. Nodes isolated from the retained edge set never enter
	// the relaxation and take the tier fallback below, keeping disconnected
	// subsets in tier order next to the connected component.
	maxLayer := len(nodes) - 1
	reached := make(map[string]bool, len(nodes))
	var queue []string
	for _, n := range nodes {
		if len(adj.reverse[n.ID]) == 0 && len(adj.forward[n.ID]) > 0 && !reached[n.ID] {
			layers[n.ID] = 0
			reached[n.ID] = true
			queue = append(queue, n.ID)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, next := range adj.forward[curr] {
			offered := layers[curr] + 1
			if offered > maxLayer {
				continue
			}
			if !reached[next] || offered > layers[next] {
				layers[next] = offered
				reached[next] = true
				queue = append(queue, next)
			}
		}
	}

	// Anything the relaxation missed falls back to its tier rank.
	for _, n := range nodes {
		if !reached[n.ID] {
			layers[n.ID] = resolveTier(n).Rank()
			reached[n.ID] = true
		}
	}
	return layers
}

// groupLayers buckets node IDs by their assigned layer, preserving input
// order within each bucket. The insertion order of layer 0 anchors the
// crossing-minimization pass.
func groupLayers(nodes []spec.NodeSpec, layers map[string]int) map[int][]string {
	grouped := make(map[int][]string)
	seen := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		l := layers[n.ID]
		grouped[l] = append(grouped[l], n.ID)
	}
	return grouped
}
