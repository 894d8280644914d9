package apptdash

// Placeholder is substituted for any missing or empty extracted field.
const Placeholder = "-"

// Status is the lifecycle state of an appointment.
type Status string

// Status constants.
const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Tone returns the display color associated with the status.
func (s Status) Tone() string {
	switch s {
	case StatusConfirmed:
		return "green"
	case StatusPending:
		return "yellow"
	case StatusCompleted:
		return "blue"
	default:
		return "gray"
	}
}

// Appointment represents one customer booking read from the source sheet.
// All fields except Status are free text copied verbatim from the sheet.
type Appointment struct {
	ID           string `json:"id"`
	CustomerName string `json:"customerName"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	ServiceType  string `json:"serviceType"`
	Status       Status `json:"status"`
	Contact      string `json:"contact"`
}
