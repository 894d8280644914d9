package apptdash

import "time"

// Stats summarizes a set of appointments for the dashboard header.
type Stats struct {
	TotalAppointments    int    `json:"totalAppointments"`
	TodayAppointments    int    `json:"todayAppointments"`
	PendingConfirmations int    `json:"pendingConfirmations"`
	PopularService       string `json:"popularService"`
}

// dateLayouts are the date formats accepted when counting today's bookings.
// Form responses use whatever the sheet locale produces.
var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"2/1/2006",
	"02/01/2006",
	"2006/01/02",
}

// ComputeStats computes dashboard statistics relative to today.
func ComputeStats(appts []*Appointment, today time.Time) Stats {
	stats := Stats{
		TotalAppointments: len(appts),
		PopularService:    Placeholder,
	}

	counts := make(map[string]int)
	best := 0
	for _, a := range appts {
		if isSameDay(a.Date, today) {
			stats.TodayAppointments++
		}
		if a.Status == StatusPending {
			stats.PendingConfirmations++
		}
		if a.ServiceType == Placeholder || a.ServiceType == "" {
			continue
		}
		counts[a.ServiceType]++
		// Strictly greater keeps the first service seen on ties.
		if counts[a.ServiceType] > best {
			best = counts[a.ServiceType]
			stats.PopularService = a.ServiceType
		}
	}

	return stats
}

func isSameDay(date string, day time.Time) bool {
	y, m, d := day.Date()
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, date)
		if err != nil {
			continue
		}
		ty, tm, td := t.Date()
		if ty == y && tm == m && td == d {
			return true
		}
	}
	return false
}
