package plan

import "github.com/ganot/tlink/internal/transport"

// Plan is a snapshot of a test plan.
type Plan struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Notes     string `json:"notes,omitempty"`
	ProjectID string `json:"testproject_id,omitempty"`
	Active    bool   `json:"is_active"`
	Open      bool   `json:"is_open"`
}

// Usable reports whether results may be reported against the plan.
func (p *Plan) Usable() bool {
	return p.Open && p.Active
}

// Build is a snapshot of one build of a test plan.
type Build struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Notes  string `json:"notes,omitempty"`
	PlanID string `json:"testplan_id,omitempty"`
	Active bool   `json:"is_active"`
	Open   bool   `json:"is_open"`
}

// Usable reports whether results may be reported against the build.
func (b *Build) Usable() bool {
	return b.Open && b.Active
}

func planFromRecord(rec transport.Record) *Plan {
	return &Plan{
		ID:        rec.String("id"),
		Name:      rec.String("name"),
		Notes:     rec.String("notes"),
		ProjectID: rec.String("testproject_id"),
		Active:    rec.Flag("active"),
		Open:      rec.Flag("is_open"),
	}
}

func buildFromRecord(rec transport.Record) *Build {
	return &Build{
		ID:     rec.String("id"),
		Name:   rec.String("name"),
		Notes:  rec.String("notes"),
		PlanID: rec.String("testplan_id"),
		Active: rec.Flag("active"),
		Open:   rec.Flag("is_open"),
	}
}
