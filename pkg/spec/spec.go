package spec

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// NodeType is the closed set of semantic element categories the layout layer
// understands. Unknown strings parse to TypeGeneric rather than failing -
// the engine only needs *some* type to resolve a tier.
type NodeType string

const (
	// Security appliances.
	TypeFirewall   NodeType = "firewall"
	TypeIPS        NodeType = "ips"
	TypeWAF        NodeType = "waf"
	TypeVPNGateway NodeType = "vpn-gateway"

	// Network appliances.
	TypeRouter       NodeType = "router"
	TypeSwitch       NodeType = "switch"
	TypeLoadBalancer NodeType = "load-balancer"

	// Compute units.
	TypeServer    NodeType = "server"
	TypeVM        NodeType = "vm"
	TypeContainer NodeType = "container"

	// Storage units.
	TypeDatabase NodeType = "database"
	TypeStorage  NodeType = "storage"

	// Identity / auth.
	TypeAuth NodeType = "auth"

	// Cloud-network constructs.
	TypeVPC    NodeType = "vpc"
	TypeSubnet NodeType = "subnet"

	// Generic endpoints.
	TypeUser     NodeType = "user"
	TypeInternet NodeType = "internet"
	TypeTelecom  NodeType = "telecom"
	TypeGeneric  NodeType = "generic"
)

// validTypes is the membership set for ParseNodeType.
var validTypes = map[NodeType]bool{
	TypeFirewall: true, TypeIPS: true, TypeWAF: true, TypeVPNGateway: true,
	TypeRouter: true, TypeSwitch: true, TypeLoadBalancer: true,
	TypeServer: true, TypeVM: true, TypeContainer: true,
	TypeDatabase: true, TypeStorage: true,
	TypeAuth: true,
	TypeVPC:  true, TypeSubnet: true,
	TypeUser: true, TypeInternet: true, TypeTelecom: true, TypeGeneric: true,
}

// ParseNodeType maps a raw string to a member of the closed NodeType set.
// Unknown or empty strings resolve to TypeGeneric, never an error.
func ParseNodeType(s string) NodeType {
	t := NodeType(s)
	if validTypes[t] {
		return t
	}
	return TypeGeneric
}

// FlowType is the semantic kind of a connection. It is carried through to
// rendering untouched and has no influence on layout geometry.
type FlowType string

const (
	FlowRequest   FlowType = "request"
	FlowResponse  FlowType = "response"
	FlowEncrypted FlowType = "encrypted"
	FlowWAN       FlowType = "wan"
	FlowWireless  FlowType = "wireless"
	FlowTunnel    FlowType = "tunnel"
	FlowGeneric   FlowType = "generic"
)

// =============================================================================
// Tier - Ordered Layout Zones
// =============================================================================

// Tier is one of four ordered zones used both as the layering fallback axis
// and as descriptive metadata on positioned nodes.
type Tier string

const (
	TierExternal Tier = "external"
	TierDMZ      Tier = "dmz"
	TierInternal Tier = "internal"
	TierData     Tier = "data"
)

// Rank returns the left-to-right ordering index of a tier:
// external=0, dmz=1, internal=2, data=3. Unknown tiers rank as internal.
func (t Tier) Rank() int {
	switch t {
	case TierExternal:
		return 0
	case TierDMZ:
		return 1
	case TierInternal:
		return 2
	case TierData:
		return 3
	default:
		return 2
	}
}

// ParseTier maps a raw string to a Tier. The second return value reports
// whether s named a valid tier.
func ParseTier(s string) (Tier, bool) {
	switch Tier(s) {
	case TierExternal, TierDMZ, TierInternal, TierData:
		return Tier(s), true
	}
	return "", false
}

// =============================================================================
// Spec - Abstract Diagram Description
// =============================================================================

// NodeSpec describes one infrastructure element, independent of any rendering
// framework. ID must be unique within a Spec.
type NodeSpec struct {
	ID          string         `json:"id"`
	Type        NodeType       `json:"type"`
	Label       string         `json:"label,omitempty"`
	Tier        Tier           `json:"tier,omitempty"` // explicit override of the computed tier
	Zone        string         `json:"zone,omitempty"` // free-text hint refining tier classification
	Description string         `json:"description,omitempty"`
	Meta        map[string]any `json:"meta,omitempty"` // opaque extra data, never inspected by layout
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n NodeSpec) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// ConnectionSpec describes one directed edge between two node IDs.
// Connections referencing unknown IDs are ignored by layering, not an error.
type ConnectionSpec struct {
	Source   string   `json:"source"`
	Target   string   `json:"target"`
	FlowType FlowType `json:"flowType,omitempty"`
	Label    string   `json:"label,omitempty"`
}

// Spec is the abstract, rendering-agnostic description of a diagram.
// Node IDs have set semantics; the connection list is an ordered sequence
// (order affects generated edge identifiers but not layout).
type Spec struct {
	Nodes       []NodeSpec       `json:"nodes"`
	Connections []ConnectionSpec `json:"connections"`
}

// NodeIndex returns a lookup from node ID to its NodeSpec. When duplicate IDs
// are present the first occurrence wins, matching layout semantics.
func (s Spec) NodeIndex() map[string]NodeSpec {
	idx := make(map[string]NodeSpec, len(s.Nodes))
	for _, n := range s.Nodes {
		if _, ok := idx[n.ID]; !ok {
			idx[n.ID] = n
		}
	}
	return idx
}
