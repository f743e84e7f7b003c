package analytics

import (
	"sort"

	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/orders"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/enums"
)

// NetworkMode selects the graph the force layout renders.
type NetworkMode string

const (
	// NetworkModeFocused keeps only the counterparties of one selected
	// entity, capped at the top entries by value.
	NetworkModeFocused NetworkMode = "focused"
	// NetworkModeGlobal keeps every node. With a focus it restricts to the
	// focus's direct neighborhood; without one it prunes edges to the
	// top-ranked nodes and backfills so no node is left without an edge.
	NetworkModeGlobal NetworkMode = "global"
)

// IsValid reports whether the mode is a known value.
func (m NetworkMode) IsValid() bool {
	return m == NetworkModeFocused || m == NetworkModeGlobal
}

// NetworkNode is one organization appearing in at least one order. Value is
// its order count.
type NetworkNode struct {
	ID    string                 `json:"id"`
	Kind  enums.OrganizationKind `json:"kind"`
	Value int                    `json:"value"`
}

// NetworkEdge is one unique vendor-buyer pair. Source is always the vendor
// id and Target the buyer id; Weight is the order count between them.
type NetworkEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
}

// Network is the node and edge set fed to the force layout.
type Network struct {
	Nodes []NetworkNode `json:"nodes"`
	Edges []NetworkEdge `json:"edges"`
}

// NetworkOptions selects the mode, the optional focused entity, and the
// node cap (DefaultTopN when zero).
type NetworkOptions struct {
	Mode      NetworkMode
	FocusID   string
	FocusKind enums.OrganizationKind
	Cap       int
}

type nodeKey struct {
	kind enums.OrganizationKind
	id   string
}

// BuildNetwork derives the vendor-buyer graph from the order list. Vendor
// and buyer id spaces are kept apart, so an id appearing on both sides
// yields two nodes.
func BuildNetwork(orderList []orders.Order, opts NetworkOptions) Network {
	if opts.Cap <= 0 {
		opts.Cap = DefaultTopN
	}

	values := make(map[nodeKey]int)
	weights := make(map[[2]string]int)
	for _, order := range orderList {
		vendorID, buyerID := order.VendorOrganizationID, order.BuyerOrganizationID
		if vendorID == "" || buyerID == "" {
			continue
		}
		values[nodeKey{enums.OrganizationKindVendor, vendorID}]++
		values[nodeKey{enums.OrganizationKindBuyer, buyerID}]++
		weights[[2]string{vendorID, buyerID}]++
	}

	switch opts.Mode {
	case NetworkModeFocused:
		return focusedNetwork(values, weights, opts)
	default:
		return globalNetwork(values, weights, opts)
	}
}

func focusedNetwork(values map[nodeKey]int, weights map[[2]string]int, opts NetworkOptions) Network {
	if opts.FocusID == "" {
		return Network{}
	}
	focus := nodeKey{opts.FocusKind, opts.FocusID}
	if _, ok := values[focus]; !ok {
		return Network{}
	}

	neighbors := neighborKeys(weights, focus)
	sortByValue(neighbors, values)
	if len(neighbors) > opts.Cap {
		neighbors = neighbors[:opts.Cap]
	}

	kept := map[nodeKey]struct{}{focus: {}}
	for _, key := range neighbors {
		kept[key] = struct{}{}
	}
	return assemble(values, weights, kept)
}

func globalNetwork(values map[nodeKey]int, weights map[[2]string]int, opts NetworkOptions) Network {
	if opts.FocusID != "" {
		focus := nodeKey{opts.FocusKind, opts.FocusID}
		if _, ok := values[focus]; !ok {
			return Network{}
		}
		kept := map[nodeKey]struct{}{focus: {}}
		for _, key := range neighborKeys(weights, focus) {
			kept[key] = struct{}{}
		}
		return assemble(values, weights, kept)
	}

	all := make([]nodeKey, 0, len(values))
	for key := range values {
		all = append(all, key)
	}
	sortNodeKeys(all, values, weights)

	core := make(map[nodeKey]struct{}, opts.Cap)
	for i, key := range all {
		if i == opts.Cap {
			break
		}
		core[key] = struct{}{}
	}

	network := assemble(values, weights, keySet(all))

	// Prune to edges between top-ranked nodes, then give every orphaned
	// node its single heaviest edge back so the layout has no isolated
	// points.
	var pruned []NetworkEdge
	covered := make(map[nodeKey]struct{})
	for _, edge := range network.Edges {
		source := nodeKey{enums.OrganizationKindVendor, edge.Source}
		target := nodeKey{enums.OrganizationKindBuyer, edge.Target}
		if _, ok := core[source]; !ok {
			continue
		}
		if _, ok := core[target]; !ok {
			continue
		}
		pruned = append(pruned, edge)
		covered[source] = struct{}{}
		covered[target] = struct{}{}
	}

	seen := make(map[[2]string]struct{}, len(pruned))
	for _, edge := range pruned {
		seen[[2]string{edge.Source, edge.Target}] = struct{}{}
	}
	for _, key := range all {
		if _, ok := covered[key]; ok {
			continue
		}
		best, ok := bestEdge(weights, key)
		if !ok {
			continue
		}
		if _, dup := seen[best]; !dup {
			seen[best] = struct{}{}
			pruned = append(pruned, NetworkEdge{Source: best[0], Target: best[1], Weight: weights[best]})
		}
		covered[key] = struct{}{}
		covered[nodeKey{enums.OrganizationKindVendor, best[0]}] = struct{}{}
		covered[nodeKey{enums.OrganizationKindBuyer, best[1]}] = struct{}{}
	}

	sortEdges(pruned)
	network.Edges = pruned
	return network
}

func neighborKeys(weights map[[2]string]int, focus nodeKey) []nodeKey {
	seen := make(map[nodeKey]struct{})
	var neighbors []nodeKey
	for pair := range weights {
		var other nodeKey
		switch {
		case focus.kind == enums.OrganizationKindVendor && pair[0] == focus.id:
			other = nodeKey{enums.OrganizationKindBuyer, pair[1]}
		case focus.kind == enums.OrganizationKindBuyer && pair[1] == focus.id:
			other = nodeKey{enums.OrganizationKindVendor, pair[0]}
		default:
			continue
		}
		if _, ok := seen[other]; !ok {
			seen[other] = struct{}{}
			neighbors = append(neighbors, other)
		}
	}
	return neighbors
}

func bestEdge(weights map[[2]string]int, key nodeKey) ([2]string, bool) {
	var best [2]string
	found := false
	for pair, weight := range weights {
		if key.kind == enums.OrganizationKindVendor && pair[0] != key.id {
			continue
		}
		if key.kind == enums.OrganizationKindBuyer && pair[1] != key.id {
			continue
		}
		if !found || weight > weights[best] || (weight == weights[best] && lessPair(pair, best)) {
			best = pair
			found = true
		}
	}
	return best, found
}

func lessPair(a, b [2]string) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return a[1] < b[1]
}

// sortByValue ranks by value, then kind, then id. Focused mode keeps the
// highest-value counterparties regardless of how connected they are
// elsewhere.
func sortByValue(keys []nodeKey, values map[nodeKey]int) {
	sort.Slice(keys, func(i, j int) bool {
		if values[keys[i]] != values[keys[j]] {
			return values[keys[i]] > values[keys[j]]
		}
		if keys[i].kind != keys[j].kind {
			return keys[i].kind < keys[j].kind
		}
		return keys[i].id < keys[j].id
	})
}

// sortNodeKeys ranks by connection count, then value, then id.
func sortNodeKeys(keys []nodeKey, values map[nodeKey]int, weights map[[2]string]int) {
	connections := make(map[nodeKey]int, len(keys))
	for pair := range weights {
		connections[nodeKey{enums.OrganizationKindVendor, pair[0]}]++
		connections[nodeKey{enums.OrganizationKindBuyer, pair[1]}]++
	}
	sort.Slice(keys, func(i, j int) bool {
		if connections[keys[i]] != connections[keys[j]] {
			return connections[keys[i]] > connections[keys[j]]
		}
		if values[keys[i]] != values[keys[j]] {
			return values[keys[i]] > values[keys[j]]
		}
		if keys[i].kind != keys[j].kind {
			return keys[i].kind < keys[j].kind
		}
		return keys[i].id < keys[j].id
	})
}

func keySet(keys []nodeKey) map[nodeKey]struct{} {
	set := make(map[nodeKey]struct{}, len(keys))
	for _, key := range keys {
		set[key] = struct{}{}
	}
	return set
}

func assemble(values map[nodeKey]int, weights map[[2]string]int, kept map[nodeKey]struct{}) Network {
	nodes := make([]NetworkNode, 0, len(kept))
	for key := range kept {
		nodes = append(nodes, NetworkNode{ID: key.id, Kind: key.kind, Value: values[key]})
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Value != nodes[j].Value {
			return nodes[i].Value > nodes[j].Value
		}
		if nodes[i].Kind != nodes[j].Kind {
			return nodes[i].Kind < nodes[j].Kind
		}
		return nodes[i].ID < nodes[j].ID
	})

	var edges []NetworkEdge
	for pair, weight := range weights {
		if _, ok := kept[nodeKey{enums.OrganizationKindVendor, pair[0]}]; !ok {
			continue
		}
		if _, ok := kept[nodeKey{enums.OrganizationKindBuyer, pair[1]}]; !ok {
			continue
		}
		edges = append(edges, NetworkEdge{Source: pair[0], Target: pair[1], Weight: weight})
	}
	sortEdges(edges)
	return Network{Nodes: nodes, Edges: edges}
}

func sortEdges(edges []NetworkEdge) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Weight != edges[j].Weight {
			return edges[i].Weight > edges[j].Weight
		}
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})
}
