package trace

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type recordSink struct {
	records []slog.Record
}

func (s *recordSink) Enabled(context.Context, slog.Level) bool { return true }

func (s *recordSink) Handle(_ context.Context, r slog.Record) error {
	s.records = append(s.records, r.Clone())
	return nil
}

func (s *recordSink) WithAttrs([]slog.Attr) slog.Handler { return s }
func (s *recordSink) WithGroup(string) slog.Handler      { return s }

func attrValue(rec slog.Record, key string) (slog.Value, bool) {
	var value slog.Value
	var found bool
	rec.Attrs(func(a slog.Attr) bool {
		if a.Key == key {
			value = a.Value
			found = true
			return false
		}
		return true
	})
	return value, found
}

func TestMiddlewareLogsRequestLifecycle(t *testing.T) {
	sink := &recordSink{}
	old := slog.Default()
	slog.SetDefault(slog.New(sink))
	defer slog.SetDefault(old)

	m := NewMiddleware(func(*http.Request) string { return "1.2.3.4" })
	var seenID string
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = GetRequestID(r.Context())
		w.WriteHeader(http.StatusNotFound)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	if !strings.HasPrefix(seenID, "req_") {
		t.Fatalf("request id = %q", seenID)
	}
	if m.TotalRequests() != 1 {
		t.Fatalf("total requests = %d", m.TotalRequests())
	}
	if len(sink.records) != 2 {
		t.Fatalf("records = %d, want start and completion", len(sink.records))
	}

	done := sink.records[1]
	if done.Level != slog.LevelWarn {
		t.Fatalf("completion level = %v, want warn for 4xx", done.Level)
	}
	if v, ok := attrValue(done, "status_code"); !ok || v.Int64() != http.StatusNotFound {
		t.Fatalf("status_code attr = %v (found=%v)", v, ok)
	}
	if v, ok := attrValue(done, "success"); !ok || v.Bool() {
		t.Fatalf("success attr = %v (found=%v)", v, ok)
	}
	if v, ok := attrValue(done, "client_ip"); !ok || v.String() != "1.2.3.4" {
		t.Fatalf("client_ip attr = %v (found=%v)", v, ok)
	}
	if v, ok := attrValue(done, "request_id"); !ok || v.String() != seenID {
		t.Fatalf("request_id attr = %v (found=%v)", v, ok)
	}
}
