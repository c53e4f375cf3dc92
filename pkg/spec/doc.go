// Package spec defines the abstract, rendering-agnostic description of an
// infrastructure diagram: nodes with semantic types and directed connections.
//
// A Spec is the input to the layout engine (package layout) and the output of
// its reverse converter. The format is JSON with round-trip fidelity:
//
//	{
//	  "nodes": [
//	    {"id": "fw1", "type": "firewall", "label": "Edge FW", "zone": "dmz"},
//	    {"id": "web1", "type": "server"}
//	  ],
//	  "connections": [
//	    {"source": "fw1", "target": "web1", "flowType": "request"}
//	  ]
//	}
//
// Node types form a closed enumeration; unknown types normalize to "generic"
// so a spec produced by a newer host never fails to parse here.
package spec
