package analytics

import (
	"fmt"
	"testing"

	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/orders"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/enums"
)

func repeatPair(vendorID, buyerID string, n int) []orders.Order {
	var list []orders.Order
	for i := 0; i < n; i++ {
		list = append(list, pairOrder(vendorID, buyerID))
	}
	return list
}

func findNode(network Network, kind enums.OrganizationKind, id string) (NetworkNode, bool) {
	for _, node := range network.Nodes {
		if node.Kind == kind && node.ID == id {
			return node, true
		}
	}
	return NetworkNode{}, false
}

func TestBuildNetworkGlobal(t *testing.T) {
	var orderList []orders.Order
	orderList = append(orderList, repeatPair("V1", "B1", 3)...)
	orderList = append(orderList, repeatPair("V1", "B2", 1)...)
	orderList = append(orderList, repeatPair("V2", "B1", 2)...)

	network := BuildNetwork(orderList, NetworkOptions{Mode: NetworkModeGlobal})
	if len(network.Nodes) != 4 {
		t.Fatalf("expected 4 nodes, got %d", len(network.Nodes))
	}

	v1, ok := findNode(network, enums.OrganizationKindVendor, "V1")
	if !ok || v1.Value != 4 {
		t.Errorf("unexpected V1 node: %+v", v1)
	}
	b1, ok := findNode(network, enums.OrganizationKindBuyer, "B1")
	if !ok || b1.Value != 5 {
		t.Errorf("unexpected B1 node: %+v", b1)
	}

	if len(network.Edges) != 3 {
		t.Fatalf("expected 3 edges, got %d", len(network.Edges))
	}
	if network.Edges[0].Source != "V1" || network.Edges[0].Target != "B1" || network.Edges[0].Weight != 3 {
		t.Errorf("unexpected heaviest edge: %+v", network.Edges[0])
	}
}

func TestBuildNetworkGlobalNoOrphans(t *testing.T) {
	var orderList []orders.Order
	// A dense core plus peripheral vendors that fall outside the ranked
	// top and would lose all edges without backfilling.
	for i := 0; i < 10; i++ {
		orderList = append(orderList, repeatPair(fmt.Sprintf("V%02d", i), "B-hub", 5)...)
	}
	for i := 0; i < 20; i++ {
		orderList = append(orderList, pairOrder(fmt.Sprintf("P%02d", i), fmt.Sprintf("Q%02d", i)))
	}

	network := BuildNetwork(orderList, NetworkOptions{Mode: NetworkModeGlobal, Cap: 11})

	covered := make(map[string]bool)
	for _, edge := range network.Edges {
		covered["vendor:"+edge.Source] = true
		covered["buyer:"+edge.Target] = true
	}
	for _, node := range network.Nodes {
		if !covered[string(node.Kind)+":"+node.ID] {
			t.Errorf("node %s %s has no rendered edge", node.Kind, node.ID)
		}
	}
}

func TestBuildNetworkGlobalWithFocus(t *testing.T) {
	var orderList []orders.Order
	orderList = append(orderList, repeatPair("V1", "B1", 2)...)
	orderList = append(orderList, repeatPair("V1", "B2", 1)...)
	orderList = append(orderList, repeatPair("V9", "B9", 4)...)

	network := BuildNetwork(orderList, NetworkOptions{
		Mode:      NetworkModeGlobal,
		FocusID:   "V1",
		FocusKind: enums.OrganizationKindVendor,
	})

	if len(network.Nodes) != 3 {
		t.Fatalf("expected focus plus 2 neighbors, got %d nodes", len(network.Nodes))
	}
	if _, ok := findNode(network, enums.OrganizationKindVendor, "V9"); ok {
		t.Error("unrelated vendor included in focused neighborhood")
	}
	for _, edge := range network.Edges {
		if edge.Source != "V1" {
			t.Errorf("edge outside the focus neighborhood: %+v", edge)
		}
	}
}

func TestBuildNetworkFocusedCapsByValue(t *testing.T) {
	var orderList []orders.Order
	for i := 0; i < 20; i++ {
		orderList = append(orderList, repeatPair("V1", fmt.Sprintf("B%02d", i), i+1)...)
	}

	network := BuildNetwork(orderList, NetworkOptions{
		Mode:      NetworkModeFocused,
		FocusID:   "V1",
		FocusKind: enums.OrganizationKindVendor,
		Cap:       15,
	})

	if len(network.Nodes) != 16 {
		t.Fatalf("expected focus plus 15 neighbors, got %d nodes", len(network.Nodes))
	}
	if _, ok := findNode(network, enums.OrganizationKindBuyer, "B00"); ok {
		t.Error("lightest neighbor should have been capped out")
	}
	if _, ok := findNode(network, enums.OrganizationKindBuyer, "B19"); !ok {
		t.Error("heaviest neighbor missing")
	}
}

func TestBuildNetworkFocusedRanksByValueNotConnections(t *testing.T) {
	var orderList []orders.Order
	// B1 is worth more to V1 but has a single connection; B2 is worth less
	// yet buys from three vendors. The cap must keep B1.
	orderList = append(orderList, repeatPair("V1", "B1", 5)...)
	orderList = append(orderList, pairOrder("V1", "B2"), pairOrder("V2", "B2"), pairOrder("V3", "B2"))

	network := BuildNetwork(orderList, NetworkOptions{
		Mode:      NetworkModeFocused,
		FocusID:   "V1",
		FocusKind: enums.OrganizationKindVendor,
		Cap:       1,
	})

	if len(network.Nodes) != 2 {
		t.Fatalf("expected focus plus 1 neighbor, got %d nodes", len(network.Nodes))
	}
	if _, ok := findNode(network, enums.OrganizationKindBuyer, "B1"); !ok {
		t.Error("highest-value neighbor displaced by a better-connected one")
	}
	if _, ok := findNode(network, enums.OrganizationKindBuyer, "B2"); ok {
		t.Error("lower-value neighbor kept on connection count")
	}
}

func TestBuildNetworkFocusedRequiresFocus(t *testing.T) {
	network := BuildNetwork([]orders.Order{pairOrder("V1", "B1")}, NetworkOptions{Mode: NetworkModeFocused})
	if len(network.Nodes) != 0 || len(network.Edges) != 0 {
		t.Errorf("expected empty network without a focus, got %+v", network)
	}
}

func TestBuildNetworkEmptyOrders(t *testing.T) {
	network := BuildNetwork(nil, NetworkOptions{Mode: NetworkModeGlobal})
	if len(network.Nodes) != 0 || len(network.Edges) != 0 {
		t.Errorf("expected empty network, got %+v", network)
	}
}

func TestBuildNetworkSkipsEmptyIDs(t *testing.T) {
	withEmptyBuyer := pairOrder("V1", "")
	network := BuildNetwork([]orders.Order{withEmptyBuyer, pairOrder("V1", "B1")}, NetworkOptions{Mode: NetworkModeGlobal})
	if len(network.Nodes) != 2 {
		t.Fatalf("expected orders with an empty side skipped, got %d nodes", len(network.Nodes))
	}
	v1, _ := findNode(network, enums.OrganizationKindVendor, "V1")
	if v1.Value != 1 {
		t.Errorf("expected the empty-side order excluded from counts, got %d", v1.Value)
	}
}
