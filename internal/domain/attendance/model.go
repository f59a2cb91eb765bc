package attendance

import "github.com/gympro/gympro-client/internal/api"

// Record is one visit. CheckOut stays nil until the member leaves.
type Record struct {
	ID         api.ID  `json:"id"`
	MemberID   api.ID  `json:"memberId"`
	MemberName *string `json:"memberName,omitempty"`
	Date       string  `json:"date"`    // YYYY-MM-DD
	CheckIn    string  `json:"checkIn"` // HH:MM or RFC3339, as sent by the backend
	CheckOut   *string `json:"checkOut,omitempty"`
}

func (r Record) Open() bool { return r.CheckOut == nil || *r.CheckOut == "" }

// Presence is the attendance screen summary for one day.
type Presence struct {
	Active  int
	Present int
	Absent  int
	Rate    int // percent, rounded
}
