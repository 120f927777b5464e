package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"kas/internal/services"
)

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

type monthOption struct {
	Value int
	Label string
}

func monthOptions() []monthOption {
	opts := []monthOption{{Value: 0, Label: "Semua Bulan"}}
	for m := 1; m <= 12; m++ {
		opts = append(opts, monthOption{Value: m, Label: MonthName(m)})
	}
	return opts
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "path", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	data := struct {
		Theme        string
		Months       []monthOption
		CurrentMonth int
	}{
		Theme:        string(s.session.Theme(r.Context())),
		Months:       monthOptions(),
		CurrentMonth: int(time.Now().Month()),
	}
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if s.session.LoggedIn(r.Context()) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		s.renderLogin(w, r, "", http.StatusOK)

	case http.MethodPost:
		if resp := ParseFormOrFail(r); resp != nil {
			resp.Write(w)
			return
		}
		username := sanitizeInput(r.Form.Get("username"))
		password := r.Form.Get("password")

		err := s.session.Login(r.Context(), username, password)
		if errors.Is(err, services.ErrBadCredentials) {
			s.renderLogin(w, r, err.Error(), http.StatusUnauthorized)
			return
		}
		if err != nil {
			slog.ErrorContext(r.Context(), "Login persistence failed", "error", err)
			s.renderLogin(w, r, "Terjadi kesalahan, coba lagi", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)

	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) renderLogin(w http.ResponseWriter, r *http.Request, errMsg string, status int) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	data := struct {
		Theme string
		Error string
	}{
		Theme: string(s.session.Theme(r.Context())),
		Error: errMsg,
	}
	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, "login.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Login template execution failed", "error", err, "template", "login.html")
	}
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if err := s.session.Logout(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Logout failed", "error", err)
		InternalServerError("Gagal keluar, coba lagi").Write(w)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
