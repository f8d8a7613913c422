// Package authz evaluates row-level access rules over member rows.
//
// The engine is a pure function of (verified identity, operation, row owner):
// it holds no state of its own and performs no I/O. Data-access code applies
// its decisions either per row (CanAccess) or as a query predicate (Scope).
package authz

import (
	"slices"

	"github.com/rosterlab/memberd/internal/model"
)

// Operation is a row-level action a caller may attempt.
type Operation string

const (
	// OpRead covers row reads and list queries.
	OpRead Operation = "read"
	// OpUpdate covers profile updates. No delete operation exists for any role.
	OpUpdate Operation = "update"
)

// grant describes what a role may do: which operations, and whether the
// grant spans all rows or only the caller's own row.
type grant struct {
	operations []Operation
	allRows    bool
}

// rules is the declarative rule table. Anonymous callers have no entry:
// absence of a grant is absence of access.
var rules = map[model.Role]grant{
	model.RoleMember: {operations: []Operation{OpRead, OpUpdate}, allRows: false},
	model.RoleAdmin:  {operations: []Operation{OpRead, OpUpdate}, allRows: true},
}

// Engine evaluates the rule table for an acting identity.
type Engine struct{}

// NewEngine creates a policy engine.
func NewEngine() *Engine {
	return &Engine{}
}

// CanAccess reports whether identity may perform op on the row owned by
// ownerID. Callers must treat a false result as the row not existing, not
// as a distinct "denied" outcome.
func (e *Engine) CanAccess(identity model.Identity, op Operation, ownerID int64) bool {
	g, ok := rules[identity.Role]
	if !ok {
		return false
	}
	if !slices.Contains(g.operations, op) {
		return false
	}
	return g.allRows || identity.MemberID == ownerID
}

// Scope returns the row-visibility predicate for list queries. The second
// return value is false when the identity may not see any rows at all.
func (e *Engine) Scope(identity model.Identity) (model.AccessScope, bool) {
	g, ok := rules[identity.Role]
	if !ok {
		return model.AccessScope{}, false
	}
	if g.allRows {
		return model.AccessScope{}, true
	}
	ownerID := identity.MemberID
	return model.AccessScope{MemberID: &ownerID}, true
}
