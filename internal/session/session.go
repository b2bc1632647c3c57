// Package session implements the Session Store: ownership, persistence,
// and lexicon bookkeeping for per-session clause sets. Three backends
// are provided: an in-memory map, a file-backed store (one JSON
// document per session, eager-write with atomic rewrite), and a
// database/sql-backed store for deployments that already run a
// relational database for the Performance DB.
package session

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/automenta/mcr/internal/errs"
)

// Session is the Session Store's unit of ownership. Clauses preserve
// insertion order and permit duplicates; ClauseCount always equals
// len(Clauses).
type Session struct {
	ID               string    `json:"id"`
	CreatedAt        time.Time `json:"createdAt"`
	Clauses          []string  `json:"clauses"`
	ActiveStrategyID string    `json:"activeStrategyId,omitempty"`
}

// ClauseCount returns the derived clause count.
func (s *Session) ClauseCount() int { return len(s.Clauses) }

// Store is the Session Store contract. Every method that does I/O may
// block; callers are expected to pass a context-bearing caller above
// this layer for cancellation (the in-memory store needs none).
type Store interface {
	CreateSession(id string) (*Session, error)
	GetSession(id string) (*Session, error)
	DeleteSession(id string) (bool, error)
	ListSessions() ([]*Session, error)
	GetKnowledgeBase(id string) (string, error)
	AddClauses(id string, clauses []string) error
	GetLexiconSummary(id string) (string, error)
	GetActiveStrategy(id string) (string, bool, error)
	SetActiveStrategy(id string, strategyID string) error
}

// NewSessionID generates a client-suggestable-or-generated session ID.
func NewSessionID() string {
	return uuid.NewString()
}

// JoinKnowledgeBase renders a session's clauses as the newline-joined
// text the Coordinator and Reasoner Gateway expect.
func JoinKnowledgeBase(clauses []string) string {
	return strings.Join(clauses, "\n")
}

// SplitClauses implements the "split on periods, trim empties" rule
// AssertRawClauses uses, and is also the Round-trip 1/2 helper:
// SplitClauses(JoinKnowledgeBase(clauses)) == clauses. Every period ends
// a clause, so a clause with a period inside it (a decimal number, a
// quoted string) is split in two and does not round-trip.
func SplitClauses(text string) []string {
	parts := strings.Split(text, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p+".")
	}
	return out
}

// lexiconSummary builds a deterministic, regeneratable structural
// summary of the predicate names and arities used across clauses: free
// text, stable format, no externally-promised schema.
func lexiconSummary(clauses []string) string {
	counts := make(map[string]int) // "name/arity" -> occurrences
	for _, c := range clauses {
		name, arity, ok := predicateShape(c)
		if !ok {
			continue
		}
		key := name + "/" + strconv.Itoa(arity)
		counts[key]++
	}
	if len(counts) == 0 {
		return ""
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteString(" (")
		b.WriteString(strconv.Itoa(counts[k]))
		b.WriteString(")")
	}
	return b.String()
}

// predicateShape extracts a clause's head predicate name and arity
// without requiring a full reasoner parse; this is a structural summary
// only, not a validity check.
func predicateShape(clause string) (string, int, bool) {
	c := strings.TrimSpace(clause)
	c = strings.TrimSuffix(c, ".")
	if idx := strings.Index(c, ":-"); idx >= 0 {
		c = strings.TrimSpace(c[:idx])
	}
	open := strings.Index(c, "(")
	if open < 0 {
		return "", 0, false
	}
	name := strings.TrimSpace(c[:open])
	if name == "" {
		return "", 0, false
	}
	close := strings.LastIndex(c, ")")
	if close < open {
		return "", 0, false
	}
	inner := strings.TrimSpace(c[open+1 : close])
	if inner == "" {
		return name, 0, true
	}
	return name, len(strings.Split(inner, ",")), true
}

// notFound is a convenience constructor shared by every Store impl.
func notFound(id string) error {
	return errs.Newf(errs.SessionNotFound, "no session %q", id)
}
