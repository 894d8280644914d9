package apptdash

import (
	"strconv"
	"strings"
)

// Column positions in the published form responses sheet.
const (
	colTimestamp = iota
	colName
	colDate
	colTime
	colService
	colContact
)

// ParseAppointments converts a published sheet in CSV form into appointments.
// The first non-empty line is the header and is skipped. Rows without a
// customer name are dropped and the result is ordered newest first, since
// form responses are appended to the bottom of the sheet.
// A payload with no data rows yields an empty, non-nil slice.
func ParseAppointments(payload string) []*Appointment {
	lines := splitLines(payload)
	if len(lines) <= 1 {
		return []*Appointment{}
	}

	rows := lines[1:]
	appts := make([]*Appointment, 0, len(rows))
	for i, line := range rows {
		cols := SplitFields(line)
		appt := &Appointment{
			ID:           "row-" + strconv.Itoa(i) + "-" + column(cols, colTimestamp),
			CustomerName: column(cols, colName),
			Date:         column(cols, colDate),
			Time:         column(cols, colTime),
			ServiceType:  column(cols, colService),
			Status:       StatusConfirmed,
			Contact:      column(cols, colContact),
		}
		if appt.CustomerName == Placeholder {
			continue
		}
		appts = append(appts, appt)
	}

	for i, j := 0, len(appts)-1; i < j; i, j = i+1, j-1 {
		appts[i], appts[j] = appts[j], appts[i]
	}
	return appts
}

// SplitFields splits a CSV line on commas that are not inside a quoted span.
// A comma is a delimiter only when the rest of the line holds an even number
// of quote characters. Quotes are kept; see CleanField.
func SplitFields(line string) []string {
	remaining := strings.Count(line, `"`)

	var fields []string
	start := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			remaining--
		case ',':
			if remaining%2 == 0 {
				fields = append(fields, line[start:i])
				start = i + 1
			}
		}
	}
	return append(fields, line[start:])
}

// CleanField strips one leading and one trailing quote, trims whitespace,
// and substitutes Placeholder for an empty result.
func CleanField(raw string) string {
	s := strings.TrimPrefix(raw, `"`)
	s = strings.TrimSuffix(s, `"`)
	s = strings.TrimSpace(s)
	if s == "" {
		return Placeholder
	}
	return s
}

// column returns the cleaned field at position i, or Placeholder when the
// row is too short.
func column(cols []string, i int) string {
	if i >= len(cols) {
		return Placeholder
	}
	return CleanField(cols[i])
}

// splitLines splits on \n or \r\n and drops blank lines.
func splitLines(payload string) []string {
	var lines []string
	for _, line := range strings.Split(payload, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
