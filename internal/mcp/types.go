package mcp

import (
	"time"

	"github.com/ganot/tlink/internal/domain/execution"
	"github.com/ganot/tlink/internal/domain/plan"
	"github.com/ganot/tlink/internal/domain/project"
	"github.com/ganot/tlink/internal/domain/suite"
	"github.com/ganot/tlink/internal/domain/testcase"
)

// Tool inputs.

type ListProjectsParams struct{}

type GetProjectParams struct {
	Name string `json:"name" jsonschema:"test project name"`
}

type GetTestSuiteParams struct {
	ID string `json:"id" jsonschema:"internal test suite id"`
}

type CaseSelectorParams struct {
	ID         string `json:"id,omitempty" jsonschema:"internal test case id"`
	ExternalID string `json:"external_id,omitempty" jsonschema:"external test case id such as auto-1, wins over id"`
	Version    string `json:"version,omitempty" jsonschema:"test case version, latest when omitted"`
}

type FindTestCaseIDParams struct {
	Name    string `json:"name" jsonschema:"test case name"`
	Suite   string `json:"suite" jsonschema:"name of the suite holding the case"`
	Project string `json:"project" jsonschema:"test project name"`
}

type PlanParams struct {
	Project string `json:"project" jsonschema:"test project name"`
	Plan    string `json:"plan" jsonschema:"test plan name"`
}

type LastResultParams struct {
	ID         string `json:"id,omitempty" jsonschema:"internal test case id"`
	ExternalID string `json:"external_id,omitempty" jsonschema:"external test case id such as auto-1, wins over id"`
	Version    string `json:"version,omitempty" jsonschema:"test case version, latest when omitted"`
	Plan       string `json:"plan" jsonschema:"test plan name"`
}

type GetBuildParams struct {
	Project string `json:"project" jsonschema:"test project name"`
	Plan    string `json:"plan" jsonschema:"test plan name"`
	Build   string `json:"build,omitempty" jsonschema:"build name, latest build when omitted"`
}

type GetCustomFieldParams struct {
	ID         string `json:"id,omitempty" jsonschema:"internal test case id"`
	ExternalID string `json:"external_id,omitempty" jsonschema:"external test case id such as auto-1, wins over id"`
	Version    string `json:"version,omitempty" jsonschema:"test case version, latest when omitted"`
	Field string `json:"field" jsonschema:"custom field name"`
}

type ReportResultParams struct {
	ID         string `json:"id,omitempty" jsonschema:"internal test case id"`
	ExternalID string `json:"external_id,omitempty" jsonschema:"external test case id such as auto-1, wins over id"`
	Version    string `json:"version,omitempty" jsonschema:"test case version, latest when omitted"`
	Plan    string `json:"plan" jsonschema:"test plan name"`
	Build   string `json:"build" jsonschema:"build name"`
	Verdict string `json:"verdict" jsonschema:"p, b or f (pass, blocked, fail)"`
	Notes   string `json:"notes,omitempty" jsonschema:"execution notes; omit for a timestamped default, a single space for none"`
}

type ListExecutionsParams struct {
	CaseID string `json:"case_id,omitempty" jsonschema:"only executions of this internal test case id"`
	Plan   string `json:"plan,omitempty" jsonschema:"only executions in this test plan"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of executions, 50 when omitted"`
	Offset int    `json:"offset,omitempty" jsonschema:"offset for pagination"`
}

// Tool outputs.

type ProjectResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
	Public bool   `json:"public"`
}

type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

type SuiteResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Details  string          `json:"details,omitempty"`
	ParentID string          `json:"parent_id,omitempty"`
	IsRoot   bool            `json:"is_root"`
	Depth    int             `json:"depth"`
	Path     []string        `json:"path"`
	Project  ProjectResponse `json:"project"`
}

type CaseResponse struct {
	ID            string        `json:"id"`
	ExternalID    string        `json:"external_id"`
	Version       string        `json:"version"`
	Name          string        `json:"name"`
	Summary       string        `json:"summary,omitempty"`
	Preconditions string        `json:"preconditions,omitempty"`
	ExecutionType string        `json:"execution_type"`
	Open          bool          `json:"open"`
	Active        bool          `json:"active"`
	Suite         SuiteResponse `json:"suite"`
}

type CaseListResponse struct {
	Cases []CaseResponse `json:"cases"`
}

type IDResponse struct {
	ID string `json:"id"`
}

type CustomFieldResponse struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type PlanResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Notes     string `json:"notes,omitempty"`
	ProjectID string `json:"project_id"`
	Active    bool   `json:"active"`
	Open      bool   `json:"open"`
}

type PlanListResponse struct {
	Plans []PlanResponse `json:"plans"`
}

type LastResultResponse struct {
	ExecutionID string `json:"execution_id"`
	Verdict     string `json:"verdict"`
	Notes       string `json:"notes,omitempty"`
	Version     string `json:"version,omitempty"`
}

type BuildResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Notes  string `json:"notes,omitempty"`
	PlanID string `json:"plan_id"`
	Active bool   `json:"active"`
	Open   bool   `json:"open"`
}

type ReportResultResponse struct {
	ExecutionID string `json:"execution_id"`
}

type ExecutionResponse struct {
	ID          string `json:"id"`
	ExecutionID string `json:"execution_id"`
	CaseID      string `json:"case_id"`
	CaseName    string `json:"case_name"`
	ProjectName string `json:"project_name"`
	PlanName    string `json:"plan_name"`
	BuildName   string `json:"build_name"`
	Verdict     string `json:"verdict"`
	Notes       string `json:"notes,omitempty"`
	ReportedAt  string `json:"reported_at"`
}

type ExecutionListResponse struct {
	Executions []ExecutionResponse `json:"executions"`
}

func toProjectResponse(p *project.Project) ProjectResponse {
	if p == nil {
		return ProjectResponse{}
	}
	return ProjectResponse{ID: p.ID, Name: p.Name, Active: p.Active, Public: p.Public}
}

func toSuiteResponse(s *suite.Suite) SuiteResponse {
	if s == nil {
		return SuiteResponse{}
	}
	resp := SuiteResponse{
		ID:      s.ID,
		Name:    s.Name,
		Details: s.Details,
		IsRoot:  s.IsRoot,
		Depth:   s.Depth(),
		Path:    s.Path(),
		Project: toProjectResponse(s.Project),
	}
	if s.Parent != nil {
		resp.ParentID = s.Parent.ID
	}
	return resp
}

func toCaseResponse(tc *testcase.Case) CaseResponse {
	return CaseResponse{
		ID:            tc.ID,
		ExternalID:    tc.ExternalID,
		Version:       tc.Version,
		Name:          tc.Name,
		Summary:       tc.Summary,
		Preconditions: tc.Preconditions,
		ExecutionType: string(tc.ExecutionType),
		Open:          tc.Open,
		Active:        tc.Active,
		Suite:         toSuiteResponse(tc.Suite),
	}
}

func toPlanResponse(p *plan.Plan) PlanResponse {
	return PlanResponse{ID: p.ID, Name: p.Name, Notes: p.Notes, ProjectID: p.ProjectID, Active: p.Active, Open: p.Open}
}

func toBuildResponse(b *plan.Build) BuildResponse {
	return BuildResponse{ID: b.ID, Name: b.Name, Notes: b.Notes, PlanID: b.PlanID, Active: b.Active, Open: b.Open}
}

func toExecutionResponse(e execution.Entry) ExecutionResponse {
	return ExecutionResponse{
		ID:          e.ID,
		ExecutionID: e.ExecutionID,
		CaseID:      e.CaseID,
		CaseName:    e.CaseName,
		ProjectName: e.ProjectName,
		PlanName:    e.PlanName,
		BuildName:   e.BuildName,
		Verdict:     e.Verdict.String(),
		Notes:       e.Notes,
		ReportedAt:  e.ReportedAt.Format(time.RFC3339),
	}
}

func selector(id, externalID, version string) testcase.Selector {
	return testcase.Selector{ID: id, ExternalID: externalID, Version: version}
}
