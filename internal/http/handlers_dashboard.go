package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"kas/internal/core"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	month := parseMonth(r)
	view := s.dashboard(r.Context(), month)

	data := struct {
		Month           int
		MonthLabel      string
		Income          string
		Expense         string
		Balance         string
		BalanceNegative bool
		Count           int
	}{
		Month:           month,
		MonthLabel:      MonthName(month),
		Income:          formatRupiah(view.Totals.Income),
		Expense:         formatRupiah(view.Totals.Expense),
		Balance:         formatRupiah(view.Totals.Balance),
		BalanceNegative: view.Totals.Balance.Cents < 0,
		Count:           len(view.Records),
	}
	if err := s.templates.ExecuteTemplate(w, "stats.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Stats template execution failed",
			"error", err, "template", "stats.html", "month", month)
		_, _ = w.Write([]byte(`<div class="error">Gagal memuat ringkasan</div>`))
	}
}

type tableRow struct {
	ID          string
	Date        string
	Allocation  string
	Quantity    int64
	Price       string
	Total       string
	Type        string
	IsIncome    bool
	Description string
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	month := parseMonth(r)
	view := s.dashboard(r.Context(), month)

	data := struct {
		Month      int
		MonthLabel string
		Rows       []tableRow
	}{
		Month:      month,
		MonthLabel: MonthName(month),
	}
	for _, tx := range view.Records {
		data.Rows = append(data.Rows, tableRow{
			ID:          tx.ID,
			Date:        formatDateID(tx.Date),
			Allocation:  tx.Allocation,
			Quantity:    tx.Quantity,
			Price:       formatRupiah(tx.Price),
			Total:       formatRupiah(tx.TotalPrice),
			Type:        string(tx.Type),
			IsIncome:    tx.Type == core.Income,
			Description: tx.Description,
		})
	}
	if err := s.templates.ExecuteTemplate(w, "table.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Table template execution failed",
			"error", err, "template", "table.html", "month", month)
		_, _ = w.Write([]byte(`<div class="error">Gagal memuat tabel</div>`))
	}
}

// handleChartData serves the complete chart configuration as JSON. The
// client hands it to Chart.js untouched, so a theme or filter switch is
// a full rebuild rather than a patch of the previous chart.
func (s *Server) handleChartData(w http.ResponseWriter, r *http.Request) {
	month := parseMonth(r)
	theme := s.session.Theme(r.Context())
	view := s.dashboard(r.Context(), month)

	series := core.GroupByDate(view.Records)
	cfg := core.BuildChartConfig(theme, series)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(cfg); err != nil {
		slog.ErrorContext(r.Context(), "Chart config encode failed", "error", err, "month", month)
	}
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}

	theme, err := s.session.ToggleTheme(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Theme toggle failed", "error", err)
		InternalServerError("Gagal mengganti tema").Write(w)
		return
	}

	NewHTMXResponse().
		TriggerThemeChanged(string(theme)).
		BodyHTML(string(theme)).
		Write(w)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	filename, data, err := s.tx.Export(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Export failed", "error", err)
		http.Error(w, "gagal membuat backup", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}
