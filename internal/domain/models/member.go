// internal/domain/models/member.go
package models

import "time"

// Member represents a gym customer as stored by the back-office system.
//
// Members are created at registration and mutated only by the backend's
// write path; this service treats them as read-only. Identifiers are the
// document-store string ids, not ObjectIDs, because the records were
// written by an external system that keys everything by string id.
type Member struct {
	ID        string    `json:"id"`
	GymID     string    `json:"gym_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Status    string    `json:"status"` // active | inactive
	TotalDebt float64   `json:"total_debt"`
	CreatedAt time.Time `json:"created_at"`
}

// DisplayName returns the member's full name for view-models.
func (m Member) DisplayName() string {
	switch {
	case m.FirstName == "" && m.LastName == "":
		return ""
	case m.LastName == "":
		return m.FirstName
	case m.FirstName == "":
		return m.LastName
	}
	return m.FirstName + " " + m.LastName
}
