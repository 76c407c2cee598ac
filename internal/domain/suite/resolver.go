package suite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ganot/tlink/internal/repository"
)

// Resolver builds a suite and its owning chain from TestLink's flat
// parent_id references. Every call walks the chain again; nothing is cached.
type Resolver struct {
	suites   Repository
	projects ProjectGetter
	logger   *slog.Logger
}

// NewResolver creates a new suite resolver.
func NewResolver(suites Repository, projects ProjectGetter, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{suites: suites, projects: projects, logger: logger}
}

// Resolve fetches suite suiteID and, recursively, every suite above it, one
// round trip per level, then the project at the top.
//
// TestLink suites and projects share one node id space and the API offers no
// type lookup. A parent id is therefore taken to be a project exactly when
// resolving it as a suite fails with a service-side error. Any such error
// counts, including one that was transient on a real suite id; that case is
// indistinguishable here and is not hardened against.
func (r *Resolver) Resolve(ctx context.Context, suiteID string) (*Suite, error) {
	res, err := r.suites.GetTestSuiteByID(ctx, suiteID)
	if err != nil {
		return nil, fmt.Errorf("getting test suite %s: %w", suiteID, err)
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	rec, ok := res.First()
	if !ok {
		return nil, repository.NewRemoteError("(getTestSuiteByID) - empty response for test suite %s", suiteID)
	}

	s := fromRecord(rec)
	parentID := rec.String("parent_id")

	parent, err := r.Resolve(ctx, parentID)
	switch {
	case err == nil:
		s.Parent = parent
		s.IsRoot = false
		s.Project = parent.Project
	case notASuite(err):
		proj, perr := r.projects.Get(ctx, parentID)
		if perr != nil {
			return nil, perr
		}
		s.Project = proj
		s.IsRoot = true
		r.logger.Debug("root suite resolved", "suite_id", s.ID, "project_id", proj.ID)
	default:
		return nil, err
	}

	return s, nil
}

func notASuite(err error) bool {
	return repository.IsRemote(err) || errors.Is(err, repository.ErrNotFound)
}
