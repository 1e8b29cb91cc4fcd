// internal/app/store/records/locations.go
package records

// RecordKind selects which family of documents a resolution targets.
type RecordKind string

const (
	KindMembership RecordKind = "membership"
	KindAttendance RecordKind = "attendance"
	KindPayment    RecordKind = "payment"
)

// Location is one place a record family may live: a collection plus the
// field the lookup identity is filtered on. The backing data was written
// by several generations of the back-office system, so each kind carries
// an ordered list of locations and the first one holding documents wins.
type Location struct {
	Collection  string
	FilterField string
}

// locationsByKind lists candidates newest schema first.
var locationsByKind = map[RecordKind][]Location{
	KindMembership: {
		{Collection: "membershipAssignments", FilterField: "memberId"},
		{Collection: "subscriptions", FilterField: "memberId"},
	},
	KindAttendance: {
		{Collection: "attendances", FilterField: "membershipAssignmentId"},
		{Collection: "attendances", FilterField: "memberId"},
		{Collection: "memberAttendance", FilterField: "memberId"},
	},
	KindPayment: {
		{Collection: "subscriptionPayments", FilterField: "memberId"},
		{Collection: "subscriptionPayments", FilterField: "subscriptionId"},
		{Collection: "payments", FilterField: "memberId"},
	},
}

// Locations returns the ordered candidate list for kind. Unknown kinds
// resolve to nothing.
func Locations(kind RecordKind) []Location {
	return locationsByKind[kind]
}
