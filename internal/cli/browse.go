package cli

import (
	"strings"

	"github.com/ganot/tlink/internal/domain/plan"
	"github.com/ganot/tlink/internal/domain/testcase"
	"github.com/spf13/cobra"
)

var kvHeader = []string{"FIELD", "VALUE"}

func newPingCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the server answers and accepts the dev key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := rt.withTimeout(cmd.Context())
			defer cancel()
			a, cleanup, err := rt.openApp(ctx, false)
			if err != nil {
				return err
			}
			defer cleanup()

			greeting, err := a.Remote.Ping(ctx)
			if err != nil {
				return err
			}
			res, err := a.Remote.CheckDevKey(ctx)
			if err != nil {
				return err
			}
			if err := res.Err(); err != nil {
				return err
			}
			printLine(rt.out, "%s dev key accepted", greeting)
			return nil
		},
	}
}

func newProjectCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{Use: "project", Short: "Test projects"}

	cmd.AddCommand(&cobra.Command{
		Use:   "get NAME",
		Short: "Show a test project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := rt.withTimeout(cmd.Context())
			defer cancel()
			a, cleanup, err := rt.openApp(ctx, false)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := a.Projects.GetByName(ctx, args[0])
			if err != nil {
				return err
			}
			return rt.render(p, kvHeader, fields(
				"id", p.ID, "name", p.Name, "active", yesNo(p.Active), "public", yesNo(p.Public),
			))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List test projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := rt.withTimeout(cmd.Context())
			defer cancel()
			a, cleanup, err := rt.openApp(ctx, false)
			if err != nil {
				return err
			}
			defer cleanup()

			projects, err := a.Projects.List(ctx)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(projects))
			for _, p := range projects {
				rows = append(rows, []string{p.ID, p.Name, yesNo(p.Active)})
			}
			return rt.render(projects, []string{"ID", "NAME", "ACTIVE"}, rows)
		},
	})
	return cmd
}

func newSuiteCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{Use: "suite", Short: "Test suites"}
	cmd.AddCommand(&cobra.Command{
		Use:   "get ID",
		Short: "Resolve a test suite up to its project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := rt.withTimeout(cmd.Context())
			defer cancel()
			a, cleanup, err := rt.openApp(ctx, false)
			if err != nil {
				return err
			}
			defer cleanup()

			s, err := a.Suites.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			return rt.render(s, kvHeader, fields(
				"id", s.ID,
				"name", s.Name,
				"root", yesNo(s.IsRoot),
				"depth", itoa(s.Depth()),
				"path", strings.Join(s.Path(), " / "),
				"project", s.Project.Name,
			))
		},
	})
	return cmd
}

func newCaseCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{Use: "case", Short: "Test cases"}

	var sel testcase.Selector
	get := &cobra.Command{
		Use:   "get",
		Short: "Show a test case with its suite chain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := rt.withTimeout(cmd.Context())
			defer cancel()
			a, cleanup, err := rt.openApp(ctx, false)
			if err != nil {
				return err
			}
			defer cleanup()

			tc, err := a.Cases.Get(ctx, sel)
			if err != nil {
				return err
			}
			return rt.render(tc, kvHeader, caseFields(tc))
		},
	}
	addSelectorFlags(get, &sel)

	var suiteName, projectName string
	id := &cobra.Command{
		Use:   "id NAME",
		Short: "Find the internal id of a test case by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := rt.withTimeout(cmd.Context())
			defer cancel()
			a, cleanup, err := rt.openApp(ctx, false)
			if err != nil {
				return err
			}
			defer cleanup()

			caseID, err := a.Cases.IDByName(ctx, args[0], suiteName, projectName)
			if err != nil {
				return err
			}
			printLine(rt.out, "%s", caseID)
			return nil
		},
	}
	id.Flags().StringVar(&suiteName, "suite", "", "Name of the suite holding the case")
	id.Flags().StringVar(&projectName, "project", "", "Test project name")
	_ = id.MarkFlagRequired("suite")
	_ = id.MarkFlagRequired("project")

	var listProject, listPlan string
	list := &cobra.Command{
		Use:   "list",
		Short: "List the test cases of a plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := rt.withTimeout(cmd.Context())
			defer cancel()
			a, cleanup, err := rt.openApp(ctx, false)
			if err != nil {
				return err
			}
			defer cleanup()

			cases, err := a.Cases.ForPlan(ctx, listProject, listPlan)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(cases))
			for _, tc := range cases {
				rows = append(rows, []string{tc.ID, tc.ExternalID, tc.Version, tc.Name, string(tc.ExecutionType), strings.Join(tc.Suite.Path(), " / ")})
			}
			return rt.render(cases, []string{"ID", "EXTERNAL ID", "VERSION", "NAME", "EXECUTION", "SUITE"}, rows)
		},
	}
	list.Flags().StringVar(&listProject, "project", "", "Test project name")
	list.Flags().StringVar(&listPlan, "plan", "", "Test plan name")
	_ = list.MarkFlagRequired("project")
	_ = list.MarkFlagRequired("plan")

	var fieldSel testcase.Selector
	field := &cobra.Command{
		Use:   "field NAME",
		Short: "Read a design-scope custom field of a test case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := rt.withTimeout(cmd.Context())
			defer cancel()
			a, cleanup, err := rt.openApp(ctx, false)
			if err != nil {
				return err
			}
			defer cleanup()

			tc, err := a.Cases.Get(ctx, fieldSel)
			if err != nil {
				return err
			}
			value, err := a.Cases.CustomFieldValue(ctx, args[0], tc)
			if err != nil {
				return err
			}
			printLine(rt.out, "%s", value)
			return nil
		},
	}
	addSelectorFlags(field, &fieldSel)

	cmd.AddCommand(get, id, list, field)
	return cmd
}

func addSelectorFlags(cmd *cobra.Command, sel *testcase.Selector) {
	cmd.Flags().StringVar(&sel.ID, "id", "", "Internal test case id")
	cmd.Flags().StringVar(&sel.ExternalID, "external-id", "", "External test case id, wins over --id")
	cmd.Flags().StringVar(&sel.Version, "version", "", "Test case version (latest when omitted)")
	cmd.MarkFlagsOneRequired("id", "external-id")
}

func caseFields(tc *testcase.Case) [][]string {
	return fields(
		"id", tc.ID,
		"external id", tc.ExternalID,
		"version", tc.Version,
		"name", tc.Name,
		"execution", string(tc.ExecutionType),
		"active", yesNo(tc.Active),
		"open", yesNo(tc.Open),
		"suite", strings.Join(tc.Suite.Path(), " / "),
		"project", tc.Suite.Project.Name,
	)
}

func newPlanCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{Use: "plan", Short: "Test plans"}

	var projectName string
	get := &cobra.Command{
		Use:   "get NAME",
		Short: "Show a test plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := rt.withTimeout(cmd.Context())
			defer cancel()
			a, cleanup, err := rt.openApp(ctx, false)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := a.Plans.ByName(ctx, projectName, args[0])
			if err != nil {
				return err
			}
			return rt.render(p, kvHeader, fields(
				"id", p.ID, "name", p.Name, "project id", p.ProjectID, "active", yesNo(p.Active), "open", yesNo(p.Open),
			))
		},
	}
	get.Flags().StringVar(&projectName, "project", "", "Test project name")
	_ = get.MarkFlagRequired("project")

	list := &cobra.Command{
		Use:   "list PROJECT",
		Short: "List the test plans of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := rt.withTimeout(cmd.Context())
			defer cancel()
			a, cleanup, err := rt.openApp(ctx, false)
			if err != nil {
				return err
			}
			defer cleanup()

			proj, err := a.Projects.GetByName(ctx, args[0])
			if err != nil {
				return err
			}
			plans, err := a.Plans.ForProject(ctx, proj.ID)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(plans))
			for _, p := range plans {
				rows = append(rows, []string{p.ID, p.Name, yesNo(p.Active), yesNo(p.Open)})
			}
			return rt.render(plans, []string{"ID", "NAME", "ACTIVE", "OPEN"}, rows)
		},
	}

	cmd.AddCommand(get, list)
	return cmd
}

func newBuildCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{Use: "build", Short: "Builds of a test plan"}

	var projectName, planName string
	get := &cobra.Command{
		Use:   "get [NAME]",
		Short: "Show a build, or the latest build of the plan",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := rt.withTimeout(cmd.Context())
			defer cancel()
			a, cleanup, err := rt.openApp(ctx, false)
			if err != nil {
				return err
			}
			defer cleanup()

			var b *plan.Build
			if len(args) == 0 {
				b, err = a.Plans.LatestBuild(ctx, projectName, planName)
			} else {
				b, err = a.Plans.BuildByName(ctx, projectName, planName, args[0])
			}
			if err != nil {
				return err
			}
			return rt.render(b, kvHeader, fields(
				"id", b.ID, "name", b.Name, "plan id", b.PlanID, "active", yesNo(b.Active), "open", yesNo(b.Open),
			))
		},
	}
	get.Flags().StringVar(&projectName, "project", "", "Test project name")
	get.Flags().StringVar(&planName, "plan", "", "Test plan name")
	_ = get.MarkFlagRequired("project")
	_ = get.MarkFlagRequired("plan")

	cmd.AddCommand(get)
	return cmd
}
