package execution

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ganot/tlink/internal/repository"
	"github.com/google/uuid"
)

// successMessage is the literal message TestLink returns for a committed result.
const successMessage = "Success!"

// Reporter commits test results after checking that the project, plan and
// build accept them.
type Reporter struct {
	results Repository
	plans   PlanFinder
	journal Journal
	logger  *slog.Logger
	now     func() time.Time
}

// NewReporter creates a new reporter. journal may be nil.
func NewReporter(results Repository, plans PlanFinder, journal Journal, logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Reporter{
		results: results,
		plans:   plans,
		journal: journal,
		logger:  logger,
		now:     time.Now,
	}
}

// Report validates req, checks the remote preconditions in order and commits
// the verdict. It returns the execution id that attachments must reference.
func (r *Reporter) Report(ctx context.Context, req ReportRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	proj := req.Case.Suite.Project
	if !proj.Active {
		return "", repository.NewRemoteError("(reportResult) - test project %s is not active", proj.Name)
	}

	p, err := r.plans.ByName(ctx, proj.Name, req.PlanName)
	if err != nil {
		return "", err
	}
	if !p.Usable() {
		return "", repository.NewRemoteError("(reportResult) - test plan %s is not active or not open", req.PlanName)
	}

	b, err := r.plans.BuildByName(ctx, proj.Name, req.PlanName, req.BuildName)
	if err != nil {
		return "", err
	}
	if !b.Usable() {
		return "", repository.NewRemoteError("(reportResult) - build %s is not active or not open", req.BuildName)
	}

	notes := ResolveNotes(req.Notes, r.now())

	res, err := r.results.ReportTCResult(ctx, req.Case.ID, p.ID, req.BuildName, string(req.Verdict), notes)
	if err != nil {
		return "", fmt.Errorf("reporting result for test case %s: %w", req.Case.ID, err)
	}
	rec, ok := res.First()
	if !ok {
		return "", repository.NewRemoteError("(reportResult) - empty response for test case %s", req.Case.ID)
	}
	if msg := rec.String("message"); msg != successMessage {
		return "", &repository.RemoteError{Message: msg}
	}

	executionID := rec.String("id")
	r.logger.Info("result reported",
		"execution_id", executionID,
		"case_id", req.Case.ID,
		"plan", req.PlanName,
		"build", req.BuildName,
		"verdict", req.Verdict.String(),
	)

	r.record(ctx, &Entry{
		ID:             uuid.NewString(),
		ExecutionID:    executionID,
		CaseID:         req.Case.ID,
		CaseExternalID: req.Case.ExternalID,
		CaseName:       req.Case.Name,
		ProjectName:    proj.Name,
		PlanID:         p.ID,
		PlanName:       req.PlanName,
		BuildName:      req.BuildName,
		Verdict:        req.Verdict,
		Notes:          notes,
		ReportedAt:     r.now(),
	})

	return executionID, nil
}

// record keeps the entry in the journal. The result is already committed
// remotely, so a journal failure is only logged.
func (r *Reporter) record(ctx context.Context, entry *Entry) {
	if r.journal == nil {
		return
	}
	if err := r.journal.Log(ctx, entry); err != nil {
		r.logger.Warn("failed to journal execution", "execution_id", entry.ExecutionID, "error", err)
	}
}
