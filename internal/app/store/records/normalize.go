// internal/app/store/records/normalize.go
package records

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"memberdash/internal/domain/models"
)

// DefaultPlan is shown when a membership document carries no plan name.
const DefaultPlan = "Plan Básico"

// defaultConcept labels payments whose documents carry no concept.
const defaultConcept = "Mensualidad"

// NormalizeMembership coalesces the field synonyms the membership
// collections accumulated over time. Normalization never fails: absent or
// unparseable fields fall back to documented defaults.
func NormalizeMembership(doc bson.M) models.Membership {
	m := models.Membership{
		ID:        docID(doc),
		MemberID:  str(doc, "memberId"),
		GymID:     str(doc, "gymId"),
		GymName:   str(doc, "gymName"),
		Plan:      str(doc, "planType", "activityName", "planName"),
		RawStatus: str(doc, "status"),
	}
	if m.Plan == "" {
		m.Plan = DefaultPlan
	}
	if fee, ok := num(doc, "cost", "monthlyAmount", "price"); ok {
		m.MonthlyFee = fee
		m.Cost = &fee
	}
	if paid, ok := num(doc, "paidAmount"); ok {
		m.PaidAmount = &paid
	}
	if debt, ok := num(doc, "totalDebt"); ok {
		m.TotalDebt = debt
	}
	if t, ok := when(doc, "startDate"); ok {
		m.StartDate = t
	}
	if t, ok := when(doc, "endDate"); ok {
		m.EndDate = t
	}
	return m
}

// NormalizeAttendance maps an attendance document to the model. A missing
// timestamp defaults to now; a missing wall-clock time is derived from the
// timestamp; a missing kind defaults to check-in.
func NormalizeAttendance(doc bson.M, now time.Time) models.AttendanceRecord {
	rec := models.AttendanceRecord{
		ID:           docID(doc),
		MemberID:     str(doc, "memberId"),
		MembershipID: str(doc, "membershipAssignmentId", "subscriptionId"),
		GymID:        str(doc, "gymId"),
		TimeOfDay:    str(doc, "time", "hora"),
		Kind:         str(doc, "type"),
		CheckOutTime: str(doc, "checkOutTime"),
		Source:       str(doc, "source"),
	}
	if ts, ok := when(doc, "date", "timestamp"); ok {
		rec.Timestamp = ts
	} else {
		rec.Timestamp = now
	}
	if rec.TimeOfDay == "" {
		rec.TimeOfDay = rec.Timestamp.Format("15:04")
	}
	if rec.Kind == "" {
		rec.Kind = models.KindCheckIn
	}
	if d, ok := num(doc, "duration"); ok {
		rec.Duration = int(d)
	}
	return rec
}

// NormalizePayment maps a payment document to the model. The due date
// falls back from dueDate to the legacy date field and finally to now;
// a missing status means the payment is still pending.
func NormalizePayment(doc bson.M, now time.Time) models.PaymentRecord {
	p := models.PaymentRecord{
		ID:           docID(doc),
		MemberID:     str(doc, "memberId"),
		MembershipID: str(doc, "subscriptionId", "membershipAssignmentId"),
		GymID:        str(doc, "gymId"),
		Concept:      str(doc, "concept"),
		Status:       str(doc, "status"),
		Method:       str(doc, "paymentMethod", "method"),
	}
	if p.Concept == "" {
		p.Concept = defaultConcept
	}
	if p.Status == "" {
		p.Status = models.PaymentPending
	}
	if amt, ok := num(doc, "amount"); ok {
		p.Amount = amt
	}
	if due, ok := when(doc, "dueDate", "date"); ok {
		p.DueDate = due
	} else {
		p.DueDate = now
	}
	if paid, ok := when(doc, "paidDate"); ok {
		p.PaidDate = &paid
	}
	return p
}

// NormalizeMember maps a member document to the model. Spanish field names
// survive from the oldest documents.
func NormalizeMember(doc bson.M) models.Member {
	m := models.Member{
		ID:        docID(doc),
		GymID:     str(doc, "gymId"),
		FirstName: str(doc, "firstName", "nombre"),
		LastName:  str(doc, "lastName", "apellido"),
		Email:     str(doc, "email"),
		Phone:     str(doc, "phone", "telefono"),
		Status:    str(doc, "status"),
	}
	if m.Status == "" {
		m.Status = "active"
	}
	if debt, ok := num(doc, "totalDebt"); ok {
		m.TotalDebt = debt
	}
	if t, ok := when(doc, "createdAt"); ok {
		m.CreatedAt = t
	}
	return m
}

// docID renders a document's _id as a string. The legacy collections mix
// native ObjectIDs with string ids minted by the old mobile backend.
func docID(doc bson.M) string {
	switch v := doc["_id"].(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// str returns the first non-empty string among the given keys.
func str(doc bson.M, keys ...string) string {
	for _, k := range keys {
		if s, ok := doc[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// num returns the first numeric value among the given keys.
func num(doc bson.M, keys ...string) (float64, bool) {
	for _, k := range keys {
		switch v := doc[k].(type) {
		case float64:
			return v, true
		case float32:
			return float64(v), true
		case int:
			return float64(v), true
		case int32:
			return float64(v), true
		case int64:
			return float64(v), true
		}
	}
	return 0, false
}

// when returns the first parseable date among the given keys.
func when(doc bson.M, keys ...string) (time.Time, bool) {
	for _, k := range keys {
		if t, ok := asTime(doc[k]); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// asTime accepts the shapes date fields take in the legacy collections:
// native BSON datetimes, RFC 3339 strings, and bare YYYY-MM-DD strings.
func asTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case primitive.DateTime:
		return t.Time(), true
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}
