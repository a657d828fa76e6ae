package documents

import (
	"context"
	"errors"

	"docrepo-backend/internal/shared/util"
)

// Gate decides fresh-vs-duplicate status for incoming extracted text.
type Gate struct {
	Repo Repo
}

// CheckResult is the outcome of a dedup check. When Duplicate is true, Existing
// identifies the previously stored document; otherwise Fingerprint carries the
// computed hash so the caller can insert without recomputing it.
type CheckResult struct {
	Duplicate   bool
	Existing    Document
	Fingerprint string
}

// Check hashes the text and looks it up in the store.
//
// The lookup and the subsequent insert are not covered by a transaction: two
// concurrent uploads of identical content can both pass the check. This matches
// the single-writer assumption of the surrounding system.
func (g *Gate) Check(ctx context.Context, text string) (CheckResult, error) {
	fingerprint := util.Fingerprint(text)

	existing, err := g.Repo.FindByFingerprint(ctx, fingerprint)
	if err == nil {
		return CheckResult{Duplicate: true, Existing: existing, Fingerprint: fingerprint}, nil
	}
	if errors.Is(err, ErrNotFound) {
		return CheckResult{Fingerprint: fingerprint}, nil
	}
	return CheckResult{}, err
}
