package apptdash

import "strings"

// FilterAppointments returns the appointments whose customer name or service
// type contains term, ignoring case. An empty term matches everything.
func FilterAppointments(appts []*Appointment, term string) []*Appointment {
	if term == "" {
		return appts
	}

	needle := strings.ToLower(term)
	out := make([]*Appointment, 0, len(appts))
	for _, a := range appts {
		if strings.Contains(strings.ToLower(a.CustomerName), needle) ||
			strings.Contains(strings.ToLower(a.ServiceType), needle) {
			out = append(out, a)
		}
	}
	return out
}
