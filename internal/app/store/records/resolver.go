// internal/app/store/records/resolver.go
package records

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// maxDocsPerResolve bounds a single candidate read. No member accumulates
// anywhere near this many documents in one collection; the cap guards
// against pathological data, not normal use.
const maxDocsPerResolve = 500

// Querier is the narrow read surface the resolver needs. The mongo-backed
// Store satisfies it in production; tests substitute a fake.
type Querier interface {
	FindDocs(ctx context.Context, collection string, filter bson.M, limit int64) ([]bson.M, error)
}

// Identity carries the ids a resolution may filter on. MembershipID is
// optional; candidates that need it are skipped when it is empty.
type Identity struct {
	MemberID     string
	MembershipID string
}

func (id Identity) valueFor(field string) string {
	switch field {
	case "memberId":
		return id.MemberID
	case "membershipAssignmentId", "subscriptionId":
		return id.MembershipID
	}
	return ""
}

// Resolver finds a member's records across the candidate locations of a
// record kind.
type Resolver struct {
	q   Querier
	log *zap.Logger
}

func NewResolver(q Querier, log *zap.Logger) *Resolver {
	return &Resolver{q: q, log: log}
}

// Resolve walks the candidate locations for kind in order and returns the
// documents from the first location that has any. Candidates whose filter
// value is unknown are skipped. A read failure on one candidate is logged
// and the next is tried; every location coming back empty is not an error.
// An error surfaces only when every attempted candidate failed.
func (r *Resolver) Resolve(ctx context.Context, kind RecordKind, id Identity) ([]bson.M, error) {
	var firstErr error
	attempted, failed := 0, 0

	for _, loc := range Locations(kind) {
		val := id.valueFor(loc.FilterField)
		if val == "" {
			continue
		}
		attempted++

		docs, err := r.q.FindDocs(ctx, loc.Collection, bson.M{loc.FilterField: val}, maxDocsPerResolve)
		if err != nil {
			failed++
			if firstErr == nil {
				firstErr = err
			}
			r.log.Warn("record location read failed",
				zap.String("kind", string(kind)),
				zap.String("collection", loc.Collection),
				zap.String("filter_field", loc.FilterField),
				zap.Error(err))
			continue
		}
		if len(docs) > 0 {
			return docs, nil
		}
	}

	if attempted > 0 && failed == attempted {
		return nil, fmt.Errorf("resolve %s records: %w", kind, firstErr)
	}
	return []bson.M{}, nil
}
