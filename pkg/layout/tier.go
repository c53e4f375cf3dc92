package layout

import (
	"strings"

	"github.com/dizzikim-dev/infraflow-sub006/pkg/spec"
)

// zoneKeyword maps a lower-cased substring of a zone hint to a tier.
// The table is ordered: the first matching keyword wins, so longer or more
// specific keywords must appear before shorter ones that could spuriously
// match inside them (e.g. "internet" before any future "net" entry).
type zoneKeyword struct {
	keyword string
	tier    spec.Tier
}

var zoneKeywords = []zoneKeyword{
	{"external", spec.TierExternal},
	{"internet", spec.TierExternal},
	{"untrust", spec.TierExternal},

	{"aggregation", spec.TierDMZ},
	{"gateway", spec.TierDMZ},
	{"security", spec.TierDMZ},
	{"edge", spec.TierDMZ},
	{"dmz", spec.TierDMZ},

	{"backbone", spec.TierInternal},
	{"internal", spec.TierInternal},
	{"국사", spec.TierInternal}, // carrier central-office zones
	{"app", spec.TierInternal},
	{"vdi", spec.TierInternal},

	{"database", spec.TierData},
	{"storage", spec.TierData},
	{"data", spec.TierData},
	{"db", spec.TierData},
}

// typeTiers is the static fallback mapping from semantic type to tier,
// consulted when no zone keyword matches.
var typeTiers = map[spec.NodeType]spec.Tier{
	spec.TypeUser:     spec.TierExternal,
	spec.TypeInternet: spec.TierExternal,
	spec.TypeTelecom:  spec.TierExternal,

	spec.TypeFirewall:     spec.TierDMZ,
	spec.TypeIPS:          spec.TierDMZ,
	spec.TypeWAF:          spec.TierDMZ,
	spec.TypeVPNGateway:   spec.TierDMZ,
	spec.TypeLoadBalancer: spec.TierDMZ,

	spec.TypeRouter:    spec.TierInternal,
	spec.TypeSwitch:    spec.TierInternal,
	spec.TypeServer:    spec.TierInternal,
	spec.TypeVM:        spec.TierInternal,
	spec.TypeContainer: spec.TierInternal,
	spec.TypeAuth:      spec.TierInternal,
	spec.TypeVPC:       spec.TierInternal,
	spec.TypeSubnet:    spec.TierInternal,

	spec.TypeDatabase: spec.TierData,
	spec.TypeStorage:  spec.TierData,
}

// TierOf classifies a node's semantic type and optional free-text zone hint
// into one of the four ordered tiers.
//
// Priority order:
//  1. A zone hint, lower-cased and matched by substring against the ordered
//     keyword table. First match wins.
//  2. The static type→tier table.
//  3. TierInternal as the safe default for unknown types.
//
// TierOf never fails; every input resolves to a tier.
func TierOf(t spec.NodeType, zone string) spec.Tier {
	if zone != "" {
		z := strings.ToLower(zone)
		for _, kw := range zoneKeywords {
			if strings.Contains(z, kw.keyword) {
				return kw.tier
			}
		}
	}
	if tier, ok := typeTiers[t]; ok {
		return tier
	}
	return spec.TierInternal
}

// resolveTier returns the node's effective tier: an explicit override on the
// spec wins, otherwise the classifier decides.
func resolveTier(n spec.NodeSpec) spec.Tier {
	if tier, ok := spec.ParseTier(string(n.Tier)); ok {
		return tier
	}
	return TierOf(n.Type, n.Zone)
}
