package testcase

import (
	"github.com/ganot/tlink/internal/domain/suite"
	"github.com/ganot/tlink/internal/transport"
)

// ExecutionType tells whether a case is run by hand or by a harness.
type ExecutionType string

const (
	ExecutionManual ExecutionType = "manual"
	ExecutionAuto   ExecutionType = "auto"
)

// executionCodeAuto is TestLink's numeric code for automated cases.
const executionCodeAuto = "2"

// ExecutionTypeFromCode maps TestLink's numeric execution type.
func ExecutionTypeFromCode(code string) ExecutionType {
	if code == executionCodeAuto {
		return ExecutionAuto
	}
	return ExecutionManual
}

// Case is a snapshot of one version of a test case with its fully resolved
// suite chain.
type Case struct {
	ID            string        `json:"id"`
	ExternalID    string        `json:"extid"`
	Version       string        `json:"version"`
	Open          bool          `json:"is_open"`
	Active        bool          `json:"is_active"`
	Name          string        `json:"name"`
	Summary       string        `json:"summary,omitempty"`
	Preconditions string        `json:"preconditions,omitempty"`
	ExecutionType ExecutionType `json:"execution_type"`
	Suite         *suite.Suite  `json:"testsuite"`
}

// Selector picks a test case by internal or external id. An empty Version
// selects the latest version.
type Selector struct {
	ID         string
	ExternalID string
	Version    string
}

func fromRecord(rec transport.Record) *Case {
	return &Case{
		ID:            rec.String("testcase_id"),
		ExternalID:    rec.String("full_tc_external_id"),
		Version:       rec.String("version"),
		Active:        rec.Flag("active"),
		Open:          rec.Flag("is_open"),
		Name:          rec.String("name"),
		Summary:       rec.String("summary"),
		Preconditions: rec.String("preconditions"),
		ExecutionType: ExecutionTypeFromCode(rec.String("execution_type")),
	}
}
