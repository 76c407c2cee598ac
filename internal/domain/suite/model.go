package suite

import (
	"github.com/ganot/tlink/internal/domain/project"
	"github.com/ganot/tlink/internal/transport"
)

// Suite is a snapshot of a TestLink test suite and the chain of suites that
// owns it. Exactly one of Parent != nil and IsRoot holds; Project is always
// set and is shared by every suite of one chain.
type Suite struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Details    string           `json:"details,omitempty"`
	NodeOrder  string           `json:"node_order"`
	NodeTypeID string           `json:"node_type_id"`
	IsRoot     bool             `json:"is_root"`
	Parent     *Suite           `json:"parent,omitempty"`
	Project    *project.Project `json:"project"`
}

func fromRecord(rec transport.Record) *Suite {
	return &Suite{
		ID:         rec.String("id"),
		Name:       rec.String("name"),
		Details:    rec.String("details"),
		NodeOrder:  rec.String("node_order"),
		NodeTypeID: rec.String("node_type_id"),
	}
}

// Root returns the top suite of the chain.
func (s *Suite) Root() *Suite {
	cur := s
	for cur.Parent != nil {
		cur = cur.Parent
	}
	return cur
}

// Depth is the number of parent links above s.
func (s *Suite) Depth() int {
	depth := 0
	for cur := s.Parent; cur != nil; cur = cur.Parent {
		depth++
	}
	return depth
}

// Path returns suite names from the root down to s.
func (s *Suite) Path() []string {
	names := make([]string, s.Depth()+1)
	i := len(names) - 1
	for cur := s; cur != nil; cur = cur.Parent {
		names[i] = cur.Name
		i--
	}
	return names
}
