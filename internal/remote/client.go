package remote

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ganot/tlink/internal/transport"
)

// Client issues one TestLink remote procedure per method and returns the
// decoded response without interpreting its error shape.
type Client struct {
	caller transport.Caller
}

// New creates a raw client over caller. The caller is expected to carry the
// developer key (see transport.WithDevKey).
func New(caller transport.Caller) *Client {
	return &Client{caller: caller}
}

func (c *Client) call(ctx context.Context, method string, args map[string]any) (transport.Result, error) {
	raw, err := c.caller.Call(ctx, method, args)
	if err != nil {
		return transport.Result{}, err
	}
	return transport.Decode(raw), nil
}

// CheckDevKey checks that the developer key is known to the service.
func (c *Client) CheckDevKey(ctx context.Context) (transport.Result, error) {
	return c.call(ctx, "checkDevKey", nil)
}

// About returns basic information about the API.
func (c *Client) About(ctx context.Context) (transport.Result, error) {
	return c.call(ctx, "about", nil)
}

// Ping returns the service greeting.
func (c *Client) Ping(ctx context.Context) (string, error) {
	res, err := c.call(ctx, "ping", nil)
	if err != nil {
		return "", err
	}
	return res.Scalar(), nil
}

// GetProjects lists every test project.
func (c *Client) GetProjects(ctx context.Context) (transport.Result, error) {
	return c.call(ctx, "getProjects", nil)
}

// GetTestProjectByName fetches one project by name.
func (c *Client) GetTestProjectByName(ctx context.Context, projectName string) (transport.Result, error) {
	return c.call(ctx, "getTestProjectByName", map[string]any{
		"testprojectname": projectName,
	})
}

// GetProjectTestPlans lists the test plans of a project.
func (c *Client) GetProjectTestPlans(ctx context.Context, projectID string) (transport.Result, error) {
	return c.call(ctx, "getProjectTestPlans", map[string]any{
		"testprojectid": projectID,
	})
}

// GetTestSuiteByID fetches one test suite.
func (c *Client) GetTestSuiteByID(ctx context.Context, suiteID string) (transport.Result, error) {
	return c.call(ctx, "getTestSuiteByID", map[string]any{
		"testsuiteid": suiteID,
	})
}

// GetTestCase fetches a test case by external id or, when externalID is
// empty, by internal id. An empty version selects the latest one.
func (c *Client) GetTestCase(ctx context.Context, caseID, externalID, version string) (transport.Result, error) {
	args := map[string]any{}
	if externalID != "" {
		args["testcaseexternalid"] = externalID
	} else if caseID != "" {
		args["testcaseid"] = caseID
	}
	if version != "" {
		args["version"] = version
	}
	return c.call(ctx, "getTestCase", args)
}

// GetTestCaseIDByName finds test cases by name, optionally narrowed by suite
// and project name. The service answers either a list or a map keyed by
// case id; both come back as a flat record list.
func (c *Client) GetTestCaseIDByName(ctx context.Context, caseName, suiteName, projectName string) (transport.Result, error) {
	args := map[string]any{"testcasename": caseName}
	if suiteName != "" {
		args["testsuitename"] = suiteName
	}
	if projectName != "" {
		args["testprojectname"] = projectName
	}
	res, err := c.call(ctx, "getTestCaseIDByName", args)
	if err != nil {
		return res, err
	}
	if _, keyed := res.Raw.(map[string]any); keyed && res.Err() == nil {
		res.Records = res.Values()
	}
	return res, nil
}

// GetTestCasesForTestPlan lists the test cases linked to a plan, keyed by
// case id.
func (c *Client) GetTestCasesForTestPlan(ctx context.Context, planID string) (transport.Result, error) {
	return c.call(ctx, "getTestCasesForTestPlan", map[string]any{
		"testplanid": planID,
	})
}

// GetTestCaseCustomFieldDesignValue reads a design-scope custom field of a
// test case version.
func (c *Client) GetTestCaseCustomFieldDesignValue(ctx context.Context, externalID, version, projectID, fieldName string) (transport.Result, error) {
	v, err := strconv.Atoi(version)
	if err != nil {
		return transport.Result{}, fmt.Errorf("test case version %q: %w", version, err)
	}
	return c.call(ctx, "getTestCaseCustomFieldDesignValue", map[string]any{
		"testcaseexternalid": externalID,
		"version":            v,
		"testprojectid":      projectID,
		"customfieldname":    fieldName,
		"details":            "value",
	})
}

// GetTestPlanByName fetches a plan by project and plan name.
func (c *Client) GetTestPlanByName(ctx context.Context, projectName, planName string) (transport.Result, error) {
	return c.call(ctx, "getTestPlanByName", map[string]any{
		"testprojectname": projectName,
		"testplanname":    planName,
	})
}

// GetBuildsForTestPlan lists the builds of a plan.
func (c *Client) GetBuildsForTestPlan(ctx context.Context, planID string) (transport.Result, error) {
	return c.call(ctx, "getBuildsForTestPlan", map[string]any{
		"testplanid": planID,
	})
}

// GetLatestBuildForTestPlan returns the build with the highest id in a plan.
func (c *Client) GetLatestBuildForTestPlan(ctx context.Context, planID string) (transport.Result, error) {
	return c.call(ctx, "getLatestBuildForTestPlan", map[string]any{
		"testplanid": planID,
	})
}

// GetLastExecutionResult returns the last execution of a case in a plan,
// across builds.
func (c *Client) GetLastExecutionResult(ctx context.Context, planID, caseID string) (transport.Result, error) {
	return c.call(ctx, "getLastExecutionResult", map[string]any{
		"testplanid": planID,
		"testcaseid": caseID,
	})
}

// ReportTCResult commits a verdict. The success response also carries a
// message field, so callers inspect it themselves rather than using Err.
func (c *Client) ReportTCResult(ctx context.Context, caseID, planID, buildName, status, notes string) (transport.Result, error) {
	return c.call(ctx, "reportTCResult", map[string]any{
		"testcaseid": caseID,
		"testplanid": planID,
		"status":     status,
		"buildname":  buildName,
		"notes":      notes,
	})
}
