package cli

import (
	"fmt"
	"time"

	"github.com/ganot/tlink/internal/domain/execution"
	"github.com/ganot/tlink/internal/domain/testcase"
	"github.com/ganot/tlink/internal/sqlite"
	"github.com/spf13/cobra"
)

func newReportCmd(rt *runtime) *cobra.Command {
	var (
		sel       testcase.Selector
		planName  string
		buildName string
		verdict   string
		notes     string
		noNotes   bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Report a verdict for a test case and print the execution id",
		Long: `Report a pass (p), blocked (b) or fail (f) verdict for a test case in a
plan build. The case's project must be active and the plan and build active and
open. Without --notes a timestamped default note is sent; --no-notes sends none.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := execution.ParseVerdict(verdict)
			if err != nil {
				return err
			}
			if noNotes {
				notes = execution.BlankNotes
			}

			ctx, cancel := rt.withTimeout(cmd.Context())
			defer cancel()
			a, cleanup, err := rt.openApp(ctx, true)
			if err != nil {
				return err
			}
			defer cleanup()

			tc, err := a.Cases.Get(ctx, sel)
			if err != nil {
				return err
			}
			id, err := a.Reporter.Report(ctx, execution.ReportRequest{
				Verdict:   v,
				Case:      tc,
				Notes:     notes,
				PlanName:  planName,
				BuildName: buildName,
			})
			if err != nil {
				return err
			}
			printLine(rt.out, "%s", id)
			return nil
		},
	}
	addSelectorFlags(cmd, &sel)
	cmd.Flags().StringVar(&planName, "plan", "", "Test plan name")
	cmd.Flags().StringVar(&buildName, "build", "", "Build name")
	cmd.Flags().StringVar(&verdict, "verdict", "", "p, b or f (pass, blocked, fail)")
	cmd.Flags().StringVar(&notes, "notes", "", "Execution notes")
	cmd.Flags().BoolVar(&noNotes, "no-notes", false, "Send no notes at all")
	_ = cmd.MarkFlagRequired("plan")
	_ = cmd.MarkFlagRequired("build")
	_ = cmd.MarkFlagRequired("verdict")
	cmd.MarkFlagsMutuallyExclusive("notes", "no-notes")
	return cmd
}

func newLastCmd(rt *runtime) *cobra.Command {
	var (
		sel      testcase.Selector
		planName string
	)

	cmd := &cobra.Command{
		Use:   "last",
		Short: "Show the last execution of a test case in a plan, as the server knows it",
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
			last, err := a.Reporter.LastResult(ctx, planName, tc)
			if err != nil {
				return err
			}
			return rt.render(last, kvHeader, fields(
				"execution", last.ExecutionID,
				"verdict", last.Verdict.String(),
				"version", last.Version,
				"notes", last.Notes,
			))
		},
	}
	addSelectorFlags(cmd, &sel)
	cmd.Flags().StringVar(&planName, "plan", "", "Test plan name")
	_ = cmd.MarkFlagRequired("plan")
	return cmd
}

func newHistoryCmd(rt *runtime) *cobra.Command {
	var opts execution.ListOptions

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List executions reported from this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if rt.cfg.Journal.Path == "" {
				return fmt.Errorf("execution journal is disabled: set journal.path or TLINK_JOURNAL_PATH")
			}
			if err := ensureDir(rt.cfg.Journal.Path); err != nil {
				return err
			}
			db, err := sqlite.Open(rt.cfg.Journal.Path)
			if err != nil {
				return err
			}
			defer db.Close()

			entries, err := execution.NewHistory(sqlite.NewJournalRepository(db), rt.logger).List(cmd.Context(), opts)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					e.ReportedAt.Local().Format(time.DateTime),
					e.ExecutionID,
					e.CaseExternalID,
					e.CaseName,
					e.PlanName,
					e.BuildName,
					e.Verdict.String(),
				})
			}
			return rt.render(entries, []string{"REPORTED", "EXECUTION", "CASE", "NAME", "PLAN", "BUILD", "VERDICT"}, rows)
		},
	}
	cmd.Flags().StringVar(&opts.CaseID, "case", "", "Only executions of this internal test case id")
	cmd.Flags().StringVar(&opts.PlanName, "plan", "", "Only executions in this test plan")
	cmd.Flags().IntVar(&opts.Limit, "limit", 50, "Max rows")
	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "Rows to skip")
	return cmd
}
