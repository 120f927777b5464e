package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"kas/internal/core"
)

var monthNames = [...]string{
	"", "Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// MonthName returns the Indonesian month name, or "Semua" for the
// unfiltered sentinel.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return "Semua"
	}
	return monthNames[month]
}

// parseMonth extracts the month filter from query parameters. Zero
// means no filter; anything outside 1..12 is treated the same way.
func parseMonth(r *http.Request) int {
	v := strings.TrimSpace(r.URL.Query().Get("month"))
	if v == "" {
		return 0
	}
	m, err := strconv.Atoi(v)
	if err != nil || m < 1 || m > 12 {
		return 0
	}
	return m
}

// formatRupiah renders cents as an Indonesian Rupiah string with dot
// thousand separators, e.g. "Rp3.000.000".
func formatRupiah(m core.Money) string {
	cents := m.Cents
	neg := cents < 0
	if neg {
		cents = -cents
	}

	whole := cents / 100
	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	pre := len(digits) % 3
	if pre > 0 {
		b.WriteString(digits[:pre])
	}
	for i := pre; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}

	out := "Rp" + b.String()
	if rem := cents % 100; rem != 0 {
		out += "," + fmt.Sprintf("%02d", rem)
	}
	if neg {
		return "-" + out
	}
	return out
}

// formatDateID renders a date as dd/mm/yyyy for the table view.
func formatDateID(d core.Date) string {
	return d.Format("02/01/2006")
}

// sanitizeInput trims whitespace and strips control characters.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

func currentDateInput() string {
	return time.Now().Format("2006-01-02")
}
