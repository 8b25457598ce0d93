package domain

import (
	"fmt"
	"time"
)

// Invoices are presented to office staff in Indonesian.
var monthNames = [13]string{
	"",
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// PeriodLabel renders the display label for a billed period, e.g.
// "Januari 2025".
func PeriodLabel(month, year int) string {
	if month < 1 || month > 12 {
		return fmt.Sprintf("%02d %d", month, year)
	}
	return fmt.Sprintf("%s %d", monthNames[month], year)
}

// DateLabel renders a date for printed documents, e.g. "28 Januari 2025".
func DateLabel(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), monthNames[int(t.Month())], t.Year())
}
