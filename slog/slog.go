// Package slog provides logging decorators for apptdash services.
package slog
