package spec

import (
	"github.com/google/uuid"

	"github.com/dizzikim-dev/infraflow-sub006/pkg/errors"
)

// Validate checks a Spec for problems the layout engine would silently paper
// over: empty and duplicate node IDs, and connections referencing unknown IDs.
//
// Layout itself never requires a valid spec - it degrades gracefully - but
// hosts usually want to surface these issues to the user before laying out.
// The first problem found is returned.
func (s Spec) Validate() error {
	seen := make(map[string]bool, len(s.Nodes))
	for i, n := range s.Nodes {
		if n.ID == "" {
			return errors.New(errors.ErrCodeInvalidSpec, "node %d has an empty id", i)
		}
		if seen[n.ID] {
			return errors.New(errors.ErrCodeInvalidSpec, "duplicate node id %q", n.ID)
		}
		seen[n.ID] = true
	}
	for i, c := range s.Connections {
		if c.Source == "" || c.Target == "" {
			return errors.New(errors.ErrCodeInvalidSpec, "connection %d is missing an endpoint", i)
		}
		if !seen[c.Source] {
			return errors.New(errors.ErrCodeInvalidSpec, "connection %d references unknown source %q", i, c.Source)
		}
		if !seen[c.Target] {
			return errors.New(errors.ErrCodeInvalidSpec, "connection %d references unknown target %q", i, c.Target)
		}
	}
	return nil
}

// EnsureIDs assigns a fresh UUID to every node that arrived without an ID.
// This is an ingestion convenience for CLI and HTTP hosts; the layout engine
// itself never generates identifiers. Returns the number of IDs assigned.
func (s *Spec) EnsureIDs() int {
	assigned := 0
	for i := range s.Nodes {
		if s.Nodes[i].ID == "" {
			s.Nodes[i].ID = uuid.NewString()
			assigned++
		}
	}
	return assigned
}
