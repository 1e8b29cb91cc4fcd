// internal/app/store/records/repository.go
package records

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"memberdash/internal/app/derive"
	"memberdash/internal/domain/models"
)

// Write-path sentinel errors. Read failures never surface these; the
// aggregator absorbs them into empty data.
var (
	ErrAlreadyCheckedIn = errors.New("member already has an open check-in")
	ErrNoOpenCheckIn    = errors.New("member has no open check-in today")
	ErrMemberNotFound   = errors.New("member not found")
)

// sourceMobileApp tags attendance documents this service writes.
const sourceMobileApp = "mobile-app"

// Repository is everything the aggregation and feature layers need from
// the backing store. The mongo-backed Store implements it; tests use the
// fake in internal/testutil.
type Repository interface {
	Member(ctx context.Context, memberID string) (models.Member, error)
	Memberships(ctx context.Context, memberID string) ([]models.Membership, error)
	Attendance(ctx context.Context, id Identity) ([]models.AttendanceRecord, error)
	Payments(ctx context.Context, id Identity) ([]models.PaymentRecord, error)

	RegisterCheckIn(ctx context.Context, req CheckInRequest) (models.AttendanceRecord, error)
	RegisterCheckOut(ctx context.Context, memberID string) (models.AttendanceRecord, error)
	CurrentStatus(ctx context.Context, memberID string) (PresenceStatus, error)
	RecordPaymentNotification(ctx context.Context, n PaymentNotification) (string, error)
}

// CheckInRequest identifies who is checking in and where.
type CheckInRequest struct {
	MemberID     string
	MembershipID string
	GymID        string
}

// PresenceStatus says whether the member is inside the gym right now.
type PresenceStatus struct {
	CheckedIn   bool                     `json:"checked_in"`
	CanCheckOut bool                     `json:"can_check_out"`
	Open        *models.AttendanceRecord `json:"open_record,omitempty"`
}

// PaymentNotification is a member-reported payment awaiting back-office
// verification.
type PaymentNotification struct {
	MemberID     string
	MembershipID string
	Amount       float64
	Concept      string
	Method       string
	Reference    string
}

// Store is the mongo-backed Repository.
type Store struct {
	db  *mongo.Database
	res *Resolver
	log *zap.Logger
}

func New(db *mongo.Database, log *zap.Logger) *Store {
	return &Store{db: db, res: NewResolver(mongoQuerier{db}, log), log: log}
}

// mongoQuerier adapts a mongo database to the resolver's read surface.
type mongoQuerier struct {
	db *mongo.Database
}

func (q mongoQuerier) FindDocs(ctx context.Context, collection string, filter bson.M, limit int64) ([]bson.M, error) {
	cur, err := q.db.Collection(collection).Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// updater is the write surface of *mongo.Collection the legacy-fallback
// updates need; tests substitute fakes.
type updater interface {
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
}

// updateFirstMatch applies the update against each collection in order and
// stops at the first one that matches a document. The candidate collections
// mirror the resolver's drift table: a record surfaced from a legacy
// collection must be written back where it lives. Returns the winning
// update's matched count, zero when no collection held the document.
func updateFirstMatch(ctx context.Context, filter, update bson.M, colls ...updater) (int64, error) {
	var firstErr error
	for _, c := range colls {
		res, err := c.UpdateOne(ctx, filter, update)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if res.MatchedCount > 0 {
			return res.MatchedCount, nil
		}
	}
	return 0, firstErr
}

// Member loads a member by its string id.
func (s *Store) Member(ctx context.Context, memberID string) (models.Member, error) {
	var doc bson.M
	err := s.db.Collection("members").FindOne(ctx, bson.M{"_id": memberID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return models.Member{}, ErrMemberNotFound
	}
	if err != nil {
		return models.Member{}, err
	}
	return NormalizeMember(doc), nil
}

// Memberships returns all of a member's memberships, normalized.
func (s *Store) Memberships(ctx context.Context, memberID string) ([]models.Membership, error) {
	docs, err := s.res.Resolve(ctx, KindMembership, Identity{MemberID: memberID})
	if err != nil {
		return nil, err
	}
	list := make([]models.Membership, 0, len(docs))
	for _, d := range docs {
		list = append(list, NormalizeMembership(d))
	}
	return list, nil
}

// Attendance returns the member's attendance records, newest first.
func (s *Store) Attendance(ctx context.Context, id Identity) ([]models.AttendanceRecord, error) {
	docs, err := s.res.Resolve(ctx, KindAttendance, id)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	list := make([]models.AttendanceRecord, 0, len(docs))
	for _, d := range docs {
		list = append(list, NormalizeAttendance(d, now))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Timestamp.After(list[j].Timestamp) })
	return list, nil
}

// Payments returns the member's payment records, normalized. Callers sort
// for display.
func (s *Store) Payments(ctx context.Context, id Identity) ([]models.PaymentRecord, error) {
	docs, err := s.res.Resolve(ctx, KindPayment, id)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	list := make([]models.PaymentRecord, 0, len(docs))
	for _, d := range docs {
		list = append(list, NormalizePayment(d, now))
	}
	return list, nil
}

// RegisterCheckIn appends a check-in for today, rejecting it only while an
// earlier visit is still open; a member who checked out may re-enter the
// same day. The denormalized visit counter is incremented best-effort:
// losing the increment is acceptable, losing the check-in is not.
func (s *Store) RegisterCheckIn(ctx context.Context, req CheckInRequest) (models.AttendanceRecord, error) {
	now := time.Now().UTC()
	today, err := s.todaysRecords(ctx, Identity{MemberID: req.MemberID, MembershipID: req.MembershipID}, now)
	if err != nil {
		return models.AttendanceRecord{}, fmt.Errorf("check today's attendance: %w", err)
	}
	if openCheckInOn(today, now) != nil {
		return models.AttendanceRecord{}, ErrAlreadyCheckedIn
	}

	rec := models.AttendanceRecord{
		ID:           uuid.NewString(),
		MemberID:     req.MemberID,
		MembershipID: req.MembershipID,
		GymID:        req.GymID,
		Timestamp:    now,
		TimeOfDay:    now.Format("15:04"),
		Kind:         models.KindCheckIn,
		Source:       sourceMobileApp,
	}
	doc := bson.M{
		"_id":       rec.ID,
		"memberId":  rec.MemberID,
		"gymId":     rec.GymID,
		"date":      rec.Timestamp,
		"time":      rec.TimeOfDay,
		"type":      rec.Kind,
		"source":    rec.Source,
		"createdAt": now,
	}
	if rec.MembershipID != "" {
		doc["membershipAssignmentId"] = rec.MembershipID
	}
	if _, err := s.db.Collection("attendances").InsertOne(ctx, doc); err != nil {
		return models.AttendanceRecord{}, fmt.Errorf("insert attendance: %w", err)
	}

	if rec.MembershipID != "" {
		matched, err := updateFirstMatch(ctx,
			bson.M{"_id": rec.MembershipID},
			bson.M{"$inc": bson.M{"totalVisits": 1}},
			s.db.Collection("membershipAssignments"),
			s.db.Collection("subscriptions"))
		if err != nil || matched == 0 {
			s.log.Warn("visit counter increment failed",
				zap.String("membership_id", rec.MembershipID),
				zap.Error(err))
		}
	}
	return rec, nil
}

// RegisterCheckOut closes today's open check-in, recording the check-out
// time and the visit duration in minutes.
func (s *Store) RegisterCheckOut(ctx context.Context, memberID string) (models.AttendanceRecord, error) {
	now := time.Now().UTC()
	today, err := s.todaysRecords(ctx, Identity{MemberID: memberID}, now)
	if err != nil {
		return models.AttendanceRecord{}, fmt.Errorf("check today's attendance: %w", err)
	}
	open := openCheckInOn(today, now)
	if open == nil {
		return models.AttendanceRecord{}, ErrNoOpenCheckIn
	}

	out := now.Format("15:04")
	open.CheckOutTime = out
	open.Duration = derive.VisitDuration(open.TimeOfDay, out)

	matched, err := updateFirstMatch(ctx,
		bson.M{"_id": open.ID},
		bson.M{"$set": bson.M{"checkOutTime": out, "duration": open.Duration}},
		s.db.Collection("attendances"),
		s.db.Collection("memberAttendance"))
	if err != nil {
		return models.AttendanceRecord{}, fmt.Errorf("close attendance: %w", err)
	}
	if matched == 0 {
		return models.AttendanceRecord{}, fmt.Errorf("close attendance: record %s not found", open.ID)
	}
	return *open, nil
}

// CurrentStatus reports whether the member has an open check-in today.
func (s *Store) CurrentStatus(ctx context.Context, memberID string) (PresenceStatus, error) {
	now := time.Now().UTC()
	today, err := s.todaysRecords(ctx, Identity{MemberID: memberID}, now)
	if err != nil {
		return PresenceStatus{}, err
	}
	open := openCheckInOn(today, now)
	if open == nil {
		return PresenceStatus{}, nil
	}
	return PresenceStatus{CheckedIn: true, CanCheckOut: true, Open: open}, nil
}

// RecordPaymentNotification appends the member-reported payment and
// returns the receipt id the client shows the member.
func (s *Store) RecordPaymentNotification(ctx context.Context, n PaymentNotification) (string, error) {
	receipt := uuid.NewString()
	doc := bson.M{
		"_id":        receipt,
		"memberId":   n.MemberID,
		"amount":     n.Amount,
		"concept":    n.Concept,
		"method":     n.Method,
		"reference":  n.Reference,
		"status":     "pending_verification",
		"reportedAt": time.Now().UTC(),
	}
	if n.MembershipID != "" {
		doc["membershipAssignmentId"] = n.MembershipID
	}
	if _, err := s.db.Collection("paymentNotifications").InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("record payment notification: %w", err)
	}
	return receipt, nil
}

// EnsureIndexes creates the lookup indexes the resolver depends on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	targets := map[string][]string{
		"membershipAssignments": {"memberId"},
		"subscriptions":         {"memberId"},
		"attendances":           {"memberId", "membershipAssignmentId"},
		"memberAttendance":      {"memberId"},
		"subscriptionPayments":  {"memberId", "subscriptionId"},
		"payments":              {"memberId"},
		"paymentNotifications":  {"memberId"},
	}
	for coll, fields := range targets {
		idx := make([]mongo.IndexModel, 0, len(fields))
		for _, f := range fields {
			idx = append(idx, mongo.IndexModel{Keys: bson.D{{Key: f, Value: 1}}})
		}
		if _, err := s.db.Collection(coll).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("indexes for %s: %w", coll, err)
		}
	}
	return nil
}

func (s *Store) todaysRecords(ctx context.Context, id Identity, now time.Time) ([]models.AttendanceRecord, error) {
	all, err := s.Attendance(ctx, id)
	if err != nil {
		return nil, err
	}
	var today []models.AttendanceRecord
	for _, r := range all {
		if sameDay(r.Timestamp, now) {
			today = append(today, r)
		}
	}
	return today, nil
}

// openCheckInOn returns today's check-in that has not been closed yet.
func openCheckInOn(records []models.AttendanceRecord, now time.Time) *models.AttendanceRecord {
	for i := range records {
		if records[i].Open() && sameDay(records[i].Timestamp, now) {
			return &records[i]
		}
	}
	return nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
