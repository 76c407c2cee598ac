package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ganot/tlink/internal/domain/execution"
	"github.com/google/uuid"
)

// JournalRepository implements execution.Journal for SQLite
type JournalRepository struct {
	db *DB
}

// NewJournalRepository creates a new JournalRepository
func NewJournalRepository(db *DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// Log inserts a committed execution. Logging the same execution id twice is a no-op.
func (r *JournalRepository) Log(ctx context.Context, entry *execution.Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.ReportedAt.IsZero() {
		entry.ReportedAt = time.Now()
	}

	query := `
		INSERT INTO executions (
			id, execution_id, case_id, case_external_id, case_name, project_name,
			plan_id, plan_name, build_name, verdict, notes, reported_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.ExecutionID,
		entry.CaseID,
		nullString(entry.CaseExternalID),
		entry.CaseName,
		entry.ProjectName,
		entry.PlanID,
		entry.PlanName,
		entry.BuildName,
		string(entry.Verdict),
		nullString(entry.Notes),
		entry.ReportedAt.UTC(),
	)
	if isUniqueViolation(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to log execution: %w", err)
	}

	return nil
}

// List returns journaled executions, most recent first
func (r *JournalRepository) List(ctx context.Context, opts execution.ListOptions) ([]execution.Entry, error) {
	query := `
		SELECT
			id, execution_id, case_id, case_external_id, case_name, project_name,
			plan_id, plan_name, build_name, verdict, notes, reported_at
		FROM executions
	`

	var args []any
	var conditions []string

	if opts.CaseID != "" {
		conditions = append(conditions, "case_id = ?")
		args = append(args, opts.CaseID)
	}
	if opts.PlanName != "" {
		conditions = append(conditions, "plan_name = ?")
		args = append(args, opts.PlanName)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY reported_at DESC, rowid DESC"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
		if opts.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, opts.Offset)
		}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list executions: %w", err)
	}
	defer rows.Close()

	var entries []execution.Entry
	for rows.Next() {
		var entry execution.Entry
		var externalID, notes sql.NullString
		var verdict string
		if err := rows.Scan(
			&entry.ID,
			&entry.ExecutionID,
			&entry.CaseID,
			&externalID,
			&entry.CaseName,
			&entry.ProjectName,
			&entry.PlanID,
			&entry.PlanName,
			&entry.BuildName,
			&verdict,
			&notes,
			&entry.ReportedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan execution: %w", err)
		}
		entry.CaseExternalID = externalID.String
		entry.Notes = notes.String
		entry.Verdict = execution.Verdict(verdict)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating execution rows: %w", err)
	}

	return entries, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
