package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"kas/internal/config"
	"kas/internal/services"
	"kas/internal/storage"
	"kas/internal/store"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:               "8081",
		DataBackend:        "memory",
		AuthUsername:       "akmal",
		AuthPassword:       "alda",
		CacheTTL:           time.Minute,
		RateLimitPerMinute: 1000,
	}
}

func newTestServer(t *testing.T) (*Server, *services.TransactionService, *services.SessionService) {
	t.Helper()

	adapter := storage.NewMemoryRepository()
	st := store.New()
	tx := services.NewTransactionService(st, adapter)
	session := services.NewSessionService(adapter, "akmal", "alda")

	srv := NewServer(testConfig(), tx, session)
	t.Cleanup(func() {
		_ = srv.Shutdown(context.Background())
	})
	return srv, tx, session
}

func login(t *testing.T, session *services.SessionService) {
	t.Helper()
	if err := session.Login(context.Background(), "akmal", "alda"); err != nil {
		t.Fatalf("login: %v", err)
	}
}

func postForm(srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, r)
	return rec
}

func get(srv *Server, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func validForm() url.Values {
	return url.Values{
		"date":        {"2024-03-01"},
		"allocation":  {"Belanja"},
		"quantity":    {"2"},
		"price":       {"15000"},
		"type":        {"keluar"},
		"description": {"belanja mingguan"},
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv, _, _ := newTestServer(t)

	if rec := get(srv, "/healthz"); rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthz = %d %q", rec.Code, rec.Body.String())
	}
	if rec := get(srv, "/readyz"); rec.Code != http.StatusOK {
		t.Fatalf("readyz = %d", rec.Code)
	}
}

func TestIndexRedirectsWhenLoggedOut(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := get(srv, "/")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("redirect to %q", loc)
	}
}

func TestPartialGetsHXRedirectWhenLoggedOut(t *testing.T) {
	srv, _, _ := newTestServer(t)

	r := httptest.NewRequest(http.MethodGet, "/ui/stats", nil)
	r.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if rec.Header().Get("HX-Redirect") != "/login" {
		t.Fatalf("missing HX-Redirect header")
	}
}

func TestLoginFlow(t *testing.T) {
	srv, _, _ := newTestServer(t)

	bad := postForm(srv, "/login", url.Values{
		"username": {"akmal"},
		"password": {"wrong"},
	})
	if bad.Code != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d, want 401", bad.Code)
	}
	if !strings.Contains(bad.Body.String(), "username atau password salah") {
		t.Fatalf("missing generic failure message: %s", bad.Body.String())
	}

	good := postForm(srv, "/login", url.Values{
		"username": {"akmal"},
		"password": {"alda"},
	})
	if good.Code != http.StatusSeeOther || good.Header().Get("Location") != "/" {
		t.Fatalf("good login: %d -> %q", good.Code, good.Header().Get("Location"))
	}

	index := get(srv, "/")
	if index.Code != http.StatusOK {
		t.Fatalf("index after login = %d", index.Code)
	}
	if !strings.Contains(index.Body.String(), "Kas") {
		t.Fatalf("index missing app shell")
	}
}

func TestSubmitTransaction(t *testing.T) {
	srv, tx, session := newTestServer(t)
	login(t, session)

	rec := postForm(srv, "/transactions", validForm())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	trigger := rec.Header().Get("HX-Trigger")
	if !strings.Contains(trigger, "transaction:saved") {
		t.Fatalf("missing saved trigger: %s", trigger)
	}
	if !strings.Contains(trigger, "Data berhasil ditambahkan!") {
		t.Fatalf("missing success notification: %s", trigger)
	}
	if len(tx.All()) != 1 {
		t.Fatalf("store size = %d", len(tx.All()))
	}
}

func TestSubmitValidationReportsAllFields(t *testing.T) {
	srv, tx, session := newTestServer(t)
	login(t, session)

	rec := postForm(srv, "/transactions", url.Values{
		"date":       {""},
		"allocation": {""},
		"quantity":   {"0"},
		"price":      {"0"},
		"type":       {"transfer"},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}

	body := rec.Body.String()
	for _, msg := range []string{
		"Tanggal harus diisi",
		"Alokasi harus diisi",
		"Jumlah harus lebih dari 0",
		"Harga harus lebih dari 0",
		"Tipe transaksi harus dipilih",
	} {
		if !strings.Contains(body, msg) {
			t.Fatalf("body missing %q: %s", msg, body)
		}
	}
	if len(tx.All()) != 0 {
		t.Fatalf("invalid input reached the store")
	}
}

func TestEditTransaction(t *testing.T) {
	srv, tx, session := newTestServer(t)
	login(t, session)

	postForm(srv, "/transactions", validForm())
	created := tx.All()[0]

	form := validForm()
	form.Set("edit_id", created.ID)
	form.Set("allocation", "Transportasi")
	rec := postForm(srv, "/transactions", form)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "Data berhasil diperbarui!") {
		t.Fatalf("missing update notification")
	}

	all := tx.All()
	if len(all) != 1 || all[0].Allocation != "Transportasi" {
		t.Fatalf("edit not applied: %+v", all)
	}
}

func TestDeleteTransaction(t *testing.T) {
	srv, tx, session := newTestServer(t)
	login(t, session)

	postForm(srv, "/transactions", validForm())
	created := tx.All()[0]

	rec := postForm(srv, "/transactions/delete", url.Values{"id": {created.ID}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "transaction:deleted") {
		t.Fatalf("missing deleted trigger")
	}
	if len(tx.All()) != 0 {
		t.Fatalf("record still present")
	}
}

func TestDeleteMissingTransaction(t *testing.T) {
	srv, _, session := newTestServer(t)
	login(t, session)

	rec := postForm(srv, "/transactions/delete", url.Values{"id": {"ghost"}})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestStatsMonthFilter(t *testing.T) {
	srv, _, session := newTestServer(t)
	login(t, session)

	march := validForm()
	postForm(srv, "/transactions", march)

	april := validForm()
	april.Set("date", "2024-04-10")
	april.Set("type", "masuk")
	april.Set("price", "50000")
	april.Set("quantity", "1")
	postForm(srv, "/transactions", april)

	marchStats := get(srv, "/ui/stats?month=3")
	if marchStats.Code != http.StatusOK {
		t.Fatalf("stats = %d", marchStats.Code)
	}
	body := marchStats.Body.String()
	if !strings.Contains(body, "Maret") {
		t.Fatalf("stats missing month label: %s", body)
	}
	// March holds only the 2 x 15000 expense.
	if !strings.Contains(body, "Rp30.000") {
		t.Fatalf("stats missing march expense total: %s", body)
	}

	allStats := get(srv, "/ui/stats?month=0")
	if !strings.Contains(allStats.Body.String(), "Semua") {
		t.Fatalf("unfiltered stats missing label: %s", allStats.Body.String())
	}
}

func TestTablePartial(t *testing.T) {
	srv, _, session := newTestServer(t)
	login(t, session)
	postForm(srv, "/transactions", validForm())

	rec := get(srv, "/ui/table?month=3")
	if rec.Code != http.StatusOK {
		t.Fatalf("table = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Belanja") || !strings.Contains(body, "01/03/2024") {
		t.Fatalf("table missing row data: %s", body)
	}
	if !strings.Contains(body, "Pengeluaran") {
		t.Fatalf("table missing type badge: %s", body)
	}
}

func TestChartData(t *testing.T) {
	srv, _, session := newTestServer(t)
	login(t, session)
	postForm(srv, "/transactions", validForm())

	rec := get(srv, "/ui/chart-data?month=3")
	if rec.Code != http.StatusOK {
		t.Fatalf("chart-data = %d", rec.Code)
	}

	var cfg struct {
		Type string `json:"type"`
		Data struct {
			Labels   []string `json:"labels"`
			Datasets []struct {
				Label string  `json:"label"`
				Data  []int64 `json:"data"`
			} `json:"datasets"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &cfg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Type != "bar" {
		t.Fatalf("chart type = %q", cfg.Type)
	}
	if len(cfg.Data.Labels) != 1 || cfg.Data.Labels[0] != "2024-03-01" {
		t.Fatalf("labels = %v", cfg.Data.Labels)
	}
	if len(cfg.Data.Datasets) != 2 {
		t.Fatalf("datasets = %d", len(cfg.Data.Datasets))
	}
	if cfg.Data.Datasets[0].Label != "Pemasukan" || cfg.Data.Datasets[1].Label != "Pengeluaran" {
		t.Fatalf("dataset labels: %+v", cfg.Data.Datasets)
	}
	if cfg.Data.Datasets[1].Data[0] != 3000000 {
		t.Fatalf("expense series = %v", cfg.Data.Datasets[1].Data)
	}
}

func TestThemeToggle(t *testing.T) {
	srv, _, session := newTestServer(t)
	login(t, session)

	rec := postForm(srv, "/ui/theme", url.Values{})
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle = %d", rec.Code)
	}
	if rec.Body.String() != "dark" {
		t.Fatalf("body = %q, want dark", rec.Body.String())
	}
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "theme:changed") {
		t.Fatalf("missing theme trigger")
	}

	again := postForm(srv, "/ui/theme", url.Values{})
	if again.Body.String() != "light" {
		t.Fatalf("second toggle = %q, want light", again.Body.String())
	}
}

func TestExportDownload(t *testing.T) {
	srv, _, session := newTestServer(t)
	login(t, session)
	postForm(srv, "/transactions", validForm())

	rec := get(srv, "/export")
	if rec.Code != http.StatusOK {
		t.Fatalf("export = %d", rec.Code)
	}
	disp := rec.Header().Get("Content-Disposition")
	if !strings.Contains(disp, "attachment") || !strings.Contains(disp, "keuangan-backup-") {
		t.Fatalf("content disposition = %q", disp)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), `"allocation": "Belanja"`) {
		t.Fatalf("export missing record: %s", rec.Body.String())
	}
}

func TestDashboardCacheInvalidation(t *testing.T) {
	srv, _, session := newTestServer(t)
	login(t, session)

	before := get(srv, "/ui/stats?month=3")
	if strings.Contains(before.Body.String(), "Rp30.000") {
		t.Fatalf("unexpected totals before insert")
	}

	postForm(srv, "/transactions", validForm())

	after := get(srv, "/ui/stats?month=3")
	if !strings.Contains(after.Body.String(), "Rp30.000") {
		t.Fatalf("stale stats after mutation: %s", after.Body.String())
	}
}

func TestPartialsReport500WhenTemplatesMissing(t *testing.T) {
	srv, _, session := newTestServer(t)
	login(t, session)
	srv.templates = nil

	for _, path := range []string{"/ui/stats", "/ui/table", "/ui/form", "/"} {
		rec := get(srv, path)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("%s = %d, want 500", path, rec.Code)
		}
	}
}

func TestMutationRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitPerMinute = 2

	adapter := storage.NewMemoryRepository()
	st := store.New()
	tx := services.NewTransactionService(st, adapter)
	session := services.NewSessionService(adapter, "akmal", "alda")
	srv := NewServer(cfg, tx, session)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })
	login(t, session)

	// Two mutating requests fit the budget, the third is rejected.
	for i := 0; i < 2; i++ {
		if rec := postForm(srv, "/transactions", validForm()); rec.Code != http.StatusOK {
			t.Fatalf("request %d = %d, want 200", i+1, rec.Code)
		}
	}
	rec := postForm(srv, "/transactions", validForm())
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("third mutation = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "60" {
		t.Fatalf("Retry-After = %q", rec.Header().Get("Retry-After"))
	}
	if !strings.Contains(rec.Body.String(), "Terlalu banyak permintaan") {
		t.Fatalf("body = %q", rec.Body.String())
	}

	// Reads stay unmetered.
	if rec := get(srv, "/ui/stats"); rec.Code != http.StatusOK {
		t.Fatalf("read after limit = %d, want 200", rec.Code)
	}
}
