package testserver

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/ganot/tlink/internal/transport"
)

// Project, Suite, Case, Plan and Build are the fixture rows of a Fake.
type Project struct {
	ID     string
	Name   string
	Active bool
}

type Suite struct {
	ID       string
	Name     string
	ParentID string
}

type Case struct {
	ID            string
	ExternalID    string
	Version       string
	Name          string
	SuiteID       string
	ExecutionType string
	Active        bool
	CustomFields  map[string]string
}

type Plan struct {
	ID        string
	Name      string
	ProjectID string
	Active    bool
	Open      bool
	CaseIDs   []string
}

type Build struct {
	ID     string
	Name   string
	PlanID string
	Active bool
	Open   bool
}

// Report is one reportTCResult call accepted by a Fake.
type Report struct {
	ExecutionID string
	CaseID      string
	PlanID      string
	BuildName   string
	Status      string
	Notes       string
}

// Fake is an in-memory TestLink answering with the service's response shapes.
// It implements transport.Caller and is safe for concurrent use.
type Fake struct {
	DevKey string

	mu       sync.Mutex
	projects []Project
	suites   map[string]Suite
	cases    []Case
	plans    []Plan
	builds   []Build
	reports  []Report
	calls    map[string]int
	nextExec int
}

var _ transport.Caller = (*Fake)(nil)

// NewFake returns a fake seeded with the Automatique fixture: project 24 with
// suite S1 (7) holding test1 and nested suite S1.1 (8) holding test2, plan
// FullAuto with open build V0.1 and closed build V0.0, and the closed plan
// Archive.
func NewFake(devKey string) *Fake {
	f := &Fake{
		DevKey:   devKey,
		suites:   map[string]Suite{},
		calls:    map[string]int{},
		nextExec: 100,
	}
	f.AddProject(Project{ID: "24", Name: "Automatique", Active: true})
	f.AddProject(Project{ID: "52", Name: "Dormant", Active: false})
	f.AddSuite(Suite{ID: "7", Name: "S1", ParentID: "24"})
	f.AddSuite(Suite{ID: "8", Name: "S1.1", ParentID: "7"})
	f.AddSuite(Suite{ID: "60", Name: "D1", ParentID: "52"})
	f.AddCase(Case{
		ID: "5", ExternalID: "auto-1", Version: "1", Name: "test1", SuiteID: "7",
		ExecutionType: "2", Active: true,
		CustomFields: map[string]string{"AutomaticTestFunction": "Fonction_test1"},
	})
	f.AddCase(Case{
		ID: "6", ExternalID: "auto-2", Version: "2", Name: "test2", SuiteID: "8",
		ExecutionType: "1", Active: true,
	})
	f.AddCase(Case{
		ID: "61", ExternalID: "dor-1", Version: "1", Name: "test1", SuiteID: "60",
		ExecutionType: "2", Active: true,
	})
	f.AddPlan(Plan{ID: "33", Name: "FullAuto", ProjectID: "24", Active: true, Open: true, CaseIDs: []string{"5", "6"}})
	f.AddPlan(Plan{ID: "34", Name: "Archive", ProjectID: "24", Active: true, Open: false, CaseIDs: []string{"5"}})
	f.AddPlan(Plan{ID: "70", Name: "Sleeping", ProjectID: "52", Active: true, Open: true, CaseIDs: []string{"61"}})
	f.AddBuild(Build{ID: "1", Name: "V0.0", PlanID: "33", Active: true, Open: false})
	f.AddBuild(Build{ID: "2", Name: "V0.1", PlanID: "33", Active: true, Open: true})
	f.AddBuild(Build{ID: "3", Name: "V1.0", PlanID: "34", Active: true, Open: true})
	f.AddBuild(Build{ID: "4", Name: "V1.0", PlanID: "70", Active: true, Open: true})
	return f
}

func (f *Fake) AddProject(p Project) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.projects = append(f.projects, p)
}

func (f *Fake) AddSuite(s Suite) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.suites[s.ID] = s
}

func (f *Fake) AddCase(c Case) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cases = append(f.cases, c)
}

func (f *Fake) AddPlan(p Plan) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plans = append(f.plans, p)
}

func (f *Fake) AddBuild(b Build) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.builds = append(f.builds, b)
}

// SetBuildOpen opens or closes every build called name.
func (f *Fake) SetBuildOpen(name string, open bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.builds {
		if f.builds[i].Name == name {
			f.builds[i].Open = open
		}
	}
}

// Calls returns how many times method was invoked.
func (f *Fake) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

// Reports returns the accepted results in commit order.
func (f *Fake) Reports() []Report {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Report(nil), f.reports...)
}

// Call implements transport.Caller.
func (f *Fake) Call(ctx context.Context, method string, args map[string]any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[method]++

	if method != "ping" && method != "about" && f.DevKey != "" && arg(args, transport.DevKeyArg) != f.DevKey {
		return fault(2000, "Can not authenticate client: invalid developer key"), nil
	}

	switch method {
	case "ping":
		return "Hello!", nil
	case "about":
		return " Testlink API Version: 1.0 initially written by Asiel Brumfield\n with contributions by TestLink development Team", nil
	case "checkDevKey":
		return true, nil
	case "getProjects":
		out := make([]any, 0, len(f.projects))
		for _, p := range f.projects {
			out = append(out, projectRecord(p))
		}
		return out, nil
	case "getTestProjectByName":
		name := arg(args, "testprojectname")
		for _, p := range f.projects {
			if p.Name == name {
				return []any{projectRecord(p)}, nil
			}
		}
		return fault(7011, fmt.Sprintf("The Test Project (%s) does not exist", name)), nil
	case "getProjectTestPlans":
		var out []any
		for _, p := range f.plans {
			if p.ProjectID == arg(args, "testprojectid") {
				out = append(out, planRecord(p))
			}
		}
		return emptyString(out), nil
	case "getTestSuiteByID":
		id := arg(args, "testsuiteid")
		s, ok := f.suites[id]
		if !ok {
			return fault(8000, fmt.Sprintf("(getTestSuiteByID) - Test Suite ID (%s) does not exist", id)), nil
		}
		return map[string]any{
			"id": s.ID, "name": s.Name, "details": "", "parent_id": s.ParentID,
			"node_type_id": "2", "node_order": "1", "node_table": "testsuites",
		}, nil
	case "getTestCase":
		return f.getTestCase(args), nil
	case "getTestCaseIDByName":
		return f.getTestCaseIDByName(args), nil
	case "getTestCasesForTestPlan":
		p, ok := f.planByID(arg(args, "testplanid"))
		if !ok {
			return fault(3000, fmt.Sprintf("The Test Plan ID (%s) does not exist", arg(args, "testplanid"))), nil
		}
		if len(p.CaseIDs) == 0 {
			return "", nil
		}
		out := map[string]any{}
		for _, id := range p.CaseIDs {
			out[id] = []any{map[string]any{"tcase_id": id, "testplan_id": p.ID}}
		}
		return out, nil
	case "getTestCaseCustomFieldDesignValue":
		ext := arg(args, "testcaseexternalid")
		for _, c := range f.cases {
			if c.ExternalID == ext {
				return c.CustomFields[arg(args, "customfieldname")], nil
			}
		}
		return fault(5040, fmt.Sprintf("Test Case External ID (%s) does not exist!", ext)), nil
	case "getTestPlanByName":
		project, planName := arg(args, "testprojectname"), arg(args, "testplanname")
		for _, p := range f.plans {
			if p.Name == planName && f.projectName(p.ProjectID) == project {
				return []any{planRecord(p)}, nil
			}
		}
		return fault(3033, fmt.Sprintf("The Test Plan (%s) does not exist on Test Project (%s)", planName, project)), nil
	case "getBuildsForTestPlan":
		var out []any
		for _, b := range f.builds {
			if b.PlanID == arg(args, "testplanid") {
				out = append(out, buildRecord(b))
			}
		}
		return emptyString(out), nil
	case "getLatestBuildForTestPlan":
		var latest *Build
		for i, b := range f.builds {
			if b.PlanID == arg(args, "testplanid") && (latest == nil || atoi(b.ID) > atoi(latest.ID)) {
				latest = &f.builds[i]
			}
		}
		if latest == nil {
			return fault(3031, "(getLatestBuildForTestPlan) - Test plan has no builds"), nil
		}
		return buildRecord(*latest), nil
	case "getLastExecutionResult":
		for i := len(f.reports) - 1; i >= 0; i-- {
			r := f.reports[i]
			if r.PlanID == arg(args, "testplanid") && r.CaseID == arg(args, "testcaseid") {
				return []any{map[string]any{"id": r.ExecutionID, "status": r.Status, "notes": r.Notes, "tcversion_number": "1"}}, nil
			}
		}
		return []any{map[string]any{"id": -1}}, nil
	case "reportTCResult":
		return f.reportTCResult(args), nil
	}
	return nil, fmt.Errorf("server error. requested method %s%s does not exist", transport.MethodPrefix, method)
}

func (f *Fake) getTestCase(args map[string]any) any {
	ext, id := arg(args, "testcaseexternalid"), arg(args, "testcaseid")
	for _, c := range f.cases {
		if (ext != "" && c.ExternalID == ext) || (ext == "" && c.ID == id) {
			return []any{map[string]any{
				"testcase_id":         c.ID,
				"id":                  c.ID + "0",
				"tc_external_id":      c.ExternalID,
				"full_tc_external_id": c.ExternalID,
				"version":             c.Version,
				"name":                c.Name,
				"summary":             "<p>" + c.Name + "</p>",
				"preconditions":       "",
				"execution_type":      c.ExecutionType,
				"active":              boolFlag(c.Active),
				"is_open":             "1",
				"testsuite_id":        c.SuiteID,
			}}
		}
	}
	if ext != "" {
		return fault(5040, fmt.Sprintf("Test Case External ID (%s) does not exist!", ext))
	}
	return fault(5000, fmt.Sprintf("(getTestCase) - Test Case ID (%s) does not exist", id))
}

func (f *Fake) getTestCaseIDByName(args map[string]any) any {
	name, suiteName, projectName := arg(args, "testcasename"), arg(args, "testsuitename"), arg(args, "testprojectname")
	matches := map[string]any{}
	for _, c := range f.cases {
		s := f.suites[c.SuiteID]
		if c.Name != name || (suiteName != "" && s.Name != suiteName) {
			continue
		}
		if projectName != "" && f.projectName(f.rootProject(c.SuiteID)) != projectName {
			continue
		}
		matches[c.ID] = map[string]any{
			"id": c.ID, "name": c.Name, "parent_id": c.SuiteID, "tsuite_name": s.Name, "tc_external_id": c.ExternalID,
		}
	}
	if len(matches) == 0 {
		return fault(5030, fmt.Sprintf("(getTestCaseIDByName) - Cannot find matching test case %s", name))
	}
	if len(matches) == 1 {
		for _, m := range matches {
			return []any{m}
		}
	}
	return matches
}

func (f *Fake) reportTCResult(args map[string]any) any {
	caseID, planID := arg(args, "testcaseid"), arg(args, "testplanid")
	p, ok := f.planByID(planID)
	if !ok {
		return fault(3000, fmt.Sprintf("The Test Plan ID (%s) does not exist", planID))
	}
	linked := false
	for _, id := range p.CaseIDs {
		linked = linked || id == caseID
	}
	if !linked {
		return fault(3030, fmt.Sprintf("Test Case ID (%s) is not linked to Test Plan ID (%s)", caseID, planID))
	}

	f.nextExec++
	execID := strconv.Itoa(f.nextExec)
	f.reports = append(f.reports, Report{
		ExecutionID: execID,
		CaseID:      caseID,
		PlanID:      planID,
		BuildName:   arg(args, "buildname"),
		Status:      arg(args, "status"),
		Notes:       arg(args, "notes"),
	})
	return []any{map[string]any{
		"status": true, "operation": "reportTCResult", "overwrite": false, "message": "Success!", "id": execID,
	}}
}

func (f *Fake) planByID(id string) (Plan, bool) {
	for _, p := range f.plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

func (f *Fake) projectName(id string) string {
	for _, p := range f.projects {
		if p.ID == id {
			return p.Name
		}
	}
	return ""
}

func (f *Fake) rootProject(suiteID string) string {
	id := suiteID
	for {
		s, ok := f.suites[id]
		if !ok {
			return id
		}
		id = s.ParentID
	}
}

func projectRecord(p Project) map[string]any {
	return map[string]any{
		"id": p.ID, "name": p.Name, "prefix": p.Name[:1], "active": boolFlag(p.Active), "is_public": "1",
	}
}

func planRecord(p Plan) map[string]any {
	return map[string]any{
		"id": p.ID, "name": p.Name, "notes": "", "testproject_id": p.ProjectID,
		"active": boolFlag(p.Active), "is_open": boolFlag(p.Open), "is_public": "1",
	}
}

func buildRecord(b Build) map[string]any {
	return map[string]any{
		"id": b.ID, "name": b.Name, "notes": "", "testplan_id": b.PlanID,
		"active": boolFlag(b.Active), "is_open": boolFlag(b.Open),
	}
}

func fault(code int, message string) []any {
	return []any{map[string]any{"code": code, "message": message}}
}

// emptyString mimics the service answering "" instead of an empty list.
func emptyString(list []any) any {
	if len(list) == 0 {
		return ""
	}
	sort.SliceStable(list, func(i, j int) bool {
		return atoi(fmt.Sprint(list[i].(map[string]any)["id"])) < atoi(fmt.Sprint(list[j].(map[string]any)["id"]))
	})
	return list
}

func arg(args map[string]any, key string) string {
	if v, ok := args[key]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return ""
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
