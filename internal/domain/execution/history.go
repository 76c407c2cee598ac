package execution

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ganot/tlink/internal/repository"
)

const defaultHistoryLimit = 50

// History lists journaled executions.
type History struct {
	journal Journal
	logger  *slog.Logger
}

// NewHistory creates a new history service.
func NewHistory(journal Journal, logger *slog.Logger) *History {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &History{journal: journal, logger: logger}
}

// List returns the most recent entries first.
func (h *History) List(ctx context.Context, opts ListOptions) ([]Entry, error) {
	if h.journal == nil {
		return nil, fmt.Errorf("%w: execution journal is disabled", repository.ErrInvalidArgument)
	}
	if opts.Limit <= 0 {
		opts.Limit = defaultHistoryLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	entries, err := h.journal.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("listing executions: %w", err)
	}
	return entries, nil
}
