package mcp

import (
	"context"

	"github.com/ganot/tlink/internal/domain/execution"
	"github.com/ganot/tlink/internal/domain/plan"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerTools(server *sdkmcp.Server, svc Services) {
	// Projects
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List every TestLink test project",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ListProjectsParams) (*sdkmcp.CallToolResult, ProjectListResponse, error) {
		projects, err := svc.Projects.List(ctx)
		if err != nil {
			return nil, ProjectListResponse{}, toolError(err)
		}
		resp := ProjectListResponse{Projects: make([]ProjectResponse, 0, len(projects))}
		for _, p := range projects {
			resp.Projects = append(resp.Projects, toProjectResponse(p))
		}
		return nil, resp, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get a test project by name",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetProjectParams) (*sdkmcp.CallToolResult, ProjectResponse, error) {
		p, err := svc.Projects.GetByName(ctx, in.Name)
		if err != nil {
			return nil, ProjectResponse{}, toolError(err)
		}
		return nil, toProjectResponse(p), nil
	})

	// Suites
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_test_suite",
		Description: "Resolve a test suite and its parent chain up to the owning project",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetTestSuiteParams) (*sdkmcp.CallToolResult, SuiteResponse, error) {
		s, err := svc.Suites.Resolve(ctx, in.ID)
		if err != nil {
			return nil, SuiteResponse{}, toolError(err)
		}
		return nil, toSuiteResponse(s), nil
	})

	// Test cases
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_test_case",
		Description: "Get a test case by internal or external id, with its suite chain and project",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in CaseSelectorParams) (*sdkmcp.CallToolResult, CaseResponse, error) {
		tc, err := svc.Cases.Get(ctx, selector(in.ID, in.ExternalID, in.Version))
		if err != nil {
			return nil, CaseResponse{}, toolError(err)
		}
		return nil, toCaseResponse(tc), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "find_test_case_id",
		Description: "Find the internal id of the test case with this name in a suite of a project",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in FindTestCaseIDParams) (*sdkmcp.CallToolResult, IDResponse, error) {
		id, err := svc.Cases.IDByName(ctx, in.Name, in.Suite, in.Project)
		if err != nil {
			return nil, IDResponse{}, toolError(err)
		}
		return nil, IDResponse{ID: id}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_plan_cases",
		Description: "List the test cases linked to a test plan, in ascending id order",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in PlanParams) (*sdkmcp.CallToolResult, CaseListResponse, error) {
		cases, err := svc.Cases.ForPlan(ctx, in.Project, in.Plan)
		if err != nil {
			return nil, CaseListResponse{}, toolError(err)
		}
		resp := CaseListResponse{Cases: make([]CaseResponse, 0, len(cases))}
		for _, tc := range cases {
			resp.Cases = append(resp.Cases, toCaseResponse(tc))
		}
		return nil, resp, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_custom_field",
		Description: "Read a design-scope custom field of a test case version",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetCustomFieldParams) (*sdkmcp.CallToolResult, CustomFieldResponse, error) {
		tc, err := svc.Cases.Get(ctx, selector(in.ID, in.ExternalID, in.Version))
		if err != nil {
			return nil, CustomFieldResponse{}, toolError(err)
		}
		value, err := svc.Cases.CustomFieldValue(ctx, in.Field, tc)
		if err != nil {
			return nil, CustomFieldResponse{}, toolError(err)
		}
		return nil, CustomFieldResponse{Field: in.Field, Value: value}, nil
	})

	// Plans and builds
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_test_plan",
		Description: "Get a test plan by project and plan name",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in PlanParams) (*sdkmcp.CallToolResult, PlanResponse, error) {
		p, err := svc.Plans.ByName(ctx, in.Project, in.Plan)
		if err != nil {
			return nil, PlanResponse{}, toolError(err)
		}
		return nil, toPlanResponse(p), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_plans",
		Description: "List the test plans of a project",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetProjectParams) (*sdkmcp.CallToolResult, PlanListResponse, error) {
		proj, err := svc.Projects.GetByName(ctx, in.Name)
		if err != nil {
			return nil, PlanListResponse{}, toolError(err)
		}
		plans, err := svc.Plans.ForProject(ctx, proj.ID)
		if err != nil {
			return nil, PlanListResponse{}, toolError(err)
		}
		resp := PlanListResponse{Plans: make([]PlanResponse, 0, len(plans))}
		for _, p := range plans {
			resp.Plans = append(resp.Plans, toPlanResponse(p))
		}
		return nil, resp, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_build",
		Description: "Get a build of a test plan by name, or the latest build when no name is given",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetBuildParams) (*sdkmcp.CallToolResult, BuildResponse, error) {
		var b *plan.Build
		var err error
		if in.Build == "" {
			b, err = svc.Plans.LatestBuild(ctx, in.Project, in.Plan)
		} else {
			b, err = svc.Plans.BuildByName(ctx, in.Project, in.Plan, in.Build)
		}
		if err != nil {
			return nil, BuildResponse{}, toolError(err)
		}
		return nil, toBuildResponse(b), nil
	})

	// Results
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "report_result",
		Description: "Report a pass, blocked or fail verdict for a test case in a plan build. Returns the execution id.",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ReportResultParams) (*sdkmcp.CallToolResult, ReportResultResponse, error) {
		verdict, err := execution.ParseVerdict(in.Verdict)
		if err != nil {
			return nil, ReportResultResponse{}, toolError(err)
		}
		tc, err := svc.Cases.Get(ctx, selector(in.ID, in.ExternalID, in.Version))
		if err != nil {
			return nil, ReportResultResponse{}, toolError(err)
		}
		id, err := svc.Reporter.Report(ctx, execution.ReportRequest{
			Verdict:   verdict,
			Case:      tc,
			Notes:     in.Notes,
			PlanName:  in.Plan,
			BuildName: in.Build,
		})
		if err != nil {
			return nil, ReportResultResponse{}, toolError(err)
		}
		return nil, ReportResultResponse{ExecutionID: id}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_last_result",
		Description: "Get the last execution of a test case in a test plan, across builds",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in LastResultParams) (*sdkmcp.CallToolResult, LastResultResponse, error) {
		tc, err := svc.Cases.Get(ctx, selector(in.ID, in.ExternalID, in.Version))
		if err != nil {
			return nil, LastResultResponse{}, toolError(err)
		}
		last, err := svc.Reporter.LastResult(ctx, in.Plan, tc)
		if err != nil {
			return nil, LastResultResponse{}, toolError(err)
		}
		return nil, LastResultResponse{
			ExecutionID: last.ExecutionID,
			Verdict:     string(last.Verdict),
			Notes:       last.Notes,
			Version:     last.Version,
		}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_executions",
		Description: "List executions reported from this machine, most recent first",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in ListExecutionsParams) (*sdkmcp.CallToolResult, ExecutionListResponse, error) {
		entries, err := svc.History.List(ctx, execution.ListOptions{
			CaseID:   in.CaseID,
			PlanName: in.Plan,
			Limit:    in.Limit,
			Offset:   in.Offset,
		})
		if err != nil {
			return nil, ExecutionListResponse{}, toolError(err)
		}
		resp := ExecutionListResponse{Executions: make([]ExecutionResponse, 0, len(entries))}
		for _, e := range entries {
			resp.Executions = append(resp.Executions, toExecutionResponse(e))
		}
		return nil, resp, nil
	})
}
