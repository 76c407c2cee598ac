package execution

import (
	"fmt"
	"strings"

	"github.com/ganot/tlink/internal/repository"
)

// Verdict is the outcome of one test execution, in TestLink's wire encoding.
type Verdict string

const (
	VerdictPass    Verdict = "p"
	VerdictBlocked Verdict = "b"
	VerdictFail    Verdict = "f"
)

// Valid reports whether v is one of the three wire values.
func (v Verdict) Valid() bool {
	switch v {
	case VerdictPass, VerdictBlocked, VerdictFail:
		return true
	}
	return false
}

// String returns the long name of the verdict.
func (v Verdict) String() string {
	switch v {
	case VerdictPass:
		return "pass"
	case VerdictBlocked:
		return "blocked"
	case VerdictFail:
		return "fail"
	}
	return string(v)
}

// ParseVerdict accepts the wire letter or the long name.
func ParseVerdict(s string) (Verdict, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "p", "pass", "passed":
		return VerdictPass, nil
	case "b", "blocked":
		return VerdictBlocked, nil
	case "f", "fail", "failed":
		return VerdictFail, nil
	}
	return "", fmt.Errorf("%w: test result must be 'p', 'f' or 'b', got %q", repository.ErrInvalidArgument, s)
}
