package apptdash

import "time"

// Snapshot is the outcome of one ingestion cycle. A new snapshot wholly
// replaces the previous one; it is never merged or updated in place.
type Snapshot struct {
	ID           string         `json:"id"`
	SourceURL    string         `json:"sourceUrl"`
	ContentHash  string         `json:"contentHash"`
	FetchedAt    time.Time      `json:"fetchedAt"`
	Appointments []*Appointment `json:"appointments"`
}

// Len returns the number of appointments in the snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Appointments)
}
