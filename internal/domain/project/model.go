package project

import "github.com/ganot/tlink/internal/transport"

// Project is a snapshot of a TestLink test project at fetch time.
type Project struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"is_active"`
	Public bool   `json:"is_public"`
}

// FromRecord maps a raw project record.
func FromRecord(rec transport.Record) *Project {
	return &Project{
		ID:     rec.String("id"),
		Name:   rec.String("name"),
		Active: rec.Flag("active"),
		Public: rec.Flag("is_public"),
	}
}
