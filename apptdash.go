// Package apptdash provides a dashboard over customer appointments that are
// collected through a form and published as a spreadsheet. It ingests the
// published CSV, keeps the records in memory, filters them, and forwards them
// to a generative model for schedule summaries and free-form questions.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, gin/).
package apptdash
