package service

import "SmartDocs/internal/model"

// Decision helpers for the document policy. Pure functions over already
// loaded state, so the policy is testable without a database.

// canRead reports whether u may read/list doc given the document's grants.
// All-employees mode is an unconditional override. Role grants are matched
// against u's current role, not a snapshot taken at grant time.
func canRead(u *model.User, doc *model.Document, grants []model.AccessGrant) bool {
	if u.Role.IsSenior() {
		return true
	}
	if doc.AccessMode == model.AccessAllEmployees {
		return true
	}
	if doc.UserID == u.ID {
		return true
	}
	for _, g := range grants {
		if g.UserID != nil && *g.UserID == u.ID {
			return true
		}
		if g.Role != nil && *g.Role == u.Role {
			return true
		}
	}
	return false
}

// canDelete: senior roles may delete any document, everyone may delete
// their own.
func canDelete(u *model.User, doc *model.Document) bool {
	return u.Role.IsSenior() || doc.UserID == u.ID
}
