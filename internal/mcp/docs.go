package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `tlink reads a TestLink instance and reports test results to it.

Model:
- Project: top-level container. Only active projects accept results.
- Test suite: tree of suites below a project. get_test_suite resolves the chain up to the project.
- Test case: lives in a suite; identified by an internal id or an external id such as auto-1.
- Test plan: groups test cases of a project. Builds belong to a plan.
- Execution: one committed verdict (p, b or f) of a case in a plan build.

Reporting workflow:
1) get_test_case (by external id when you have one).
2) report_result with plan, build and verdict. The project must be active and the
   plan and build active and open; otherwise the call fails before anything is committed.
3) Keep the returned execution_id; list_executions shows what was reported from here.

Docs:
- tlink://docs/index
- tlink://docs/reporting
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "tlink://docs/index",
		Name:        "docs_index",
		Title:       "tlink docs index",
		Description: "Entry point: tools by task and known limitations.",
		Content: `# tlink: Agent Docs Index

## Tools by task

- Browse: ` + "`list_projects`" + `, ` + "`get_project`" + `, ` + "`list_plans`" + `, ` + "`get_test_plan`" + `, ` + "`get_build`" + `, ` + "`list_plan_cases`" + `.
- Inspect a case: ` + "`get_test_case`" + `, ` + "`get_test_suite`" + `, ` + "`get_custom_field`" + `.
- Find a case id from names: ` + "`find_test_case_id`" + ` (suite names must be unique in the project).
- Report: ` + "`report_result`" + `, then ` + "`list_executions`" + `. ` + "`get_last_result`" + ` asks the server for the last verdict of a case in a plan.

## Limitations

- Suite resolution costs one remote call per ancestor plus one to identify the project. Nothing is cached.
- A suite whose parent id cannot be fetched as a suite is treated as a root suite.
- Attachments are not uploaded; keep the execution id for that.
`,
	},
	{
		URI:         "tlink://docs/reporting",
		Name:        "docs_reporting",
		Title:       "Reporting results",
		Description: "Preconditions, notes policy and error codes of report_result.",
		Content: `# Reporting results

## Preconditions (checked in order, nothing is committed on failure)

1. verdict is p (pass), b (blocked) or f (fail); long names are accepted.
2. the case's project is active.
3. the plan exists in that project and is active and open.
4. the build exists in that plan and is active and open.

## Notes

- omitted or empty: "<timestamp> - Test performed automatically"
- a single space: no notes
- anything else: sent as is

## Error codes

- ` + "`INVALID_ARGUMENT`" + `: bad verdict or missing field.
- ` + "`NOT_FOUND`" + `: no build or project with that name.
- ` + "`AMBIGUOUS`" + `: more than one case matched a name lookup.
- ` + "`REMOTE_ERROR`" + `: TestLink refused, or a precondition failed; the message says which.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
