package http

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"kas/internal/core"
	"kas/internal/services"
	"kas/internal/store"
)

// persistWarning is shown when a mutation landed in memory but the
// flush to storage failed.
const persistWarning = "Data tersimpan, tapi gagal ditulis ke penyimpanan"

func (s *Server) handleSubmitTransaction(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	draft := DraftFromForm(r.Form)
	editID := strings.TrimSpace(r.Form.Get("edit_id"))

	tx, err := s.tx.Submit(r.Context(), draft, editID)

	var fieldErrs core.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		NewHTMXResponse().
			Status(http.StatusUnprocessableEntity).
			BodyHTML(renderFieldErrors(fieldErrs)).
			Write(w)
		return

	case errors.Is(err, store.ErrNotFound):
		NotFoundError("Data tidak ditemukan").
			TriggerFormReset().
			Write(w)
		return
	}

	// The flush can fail with the mutation already applied; the views
	// still need refreshing in that case.
	s.invalidateViews()

	message := "Data berhasil ditambahkan!"
	if editID != "" {
		message = "Data berhasil diperbarui!"
	}

	resp := NewHTMXResponse().
		TriggerTransactionSaved(tx.Date.Month()).
		TriggerFormReset()

	var persistErr *services.PersistError
	if errors.As(err, &persistErr) {
		slog.WarnContext(r.Context(), "Transaction saved in memory only",
			"error", persistErr, "transaction_id", tx.ID)
		resp.TriggerErrorNotification(persistWarning)
	} else if err != nil {
		slog.ErrorContext(r.Context(), "Transaction submit failed", "error", err)
		InternalServerError("Gagal menyimpan data").Write(w)
		return
	} else {
		resp.TriggerSuccessNotification(message)
	}
	resp.Write(w)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if resp := RequireDeleteOrPOST(r); resp != nil {
		resp.Write(w)
		return
	}

	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		slog.ErrorContext(r.Context(), "Delete request body parse failed", "error", err)
		BadRequestError("Format permintaan tidak valid").Write(w)
		return
	}
	id := parser.Get("id")
	if id == "" {
		BadRequestError("ID transaksi harus diisi").Write(w)
		return
	}

	deleted, err := s.tx.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		NotFoundError("Data tidak ditemukan").Write(w)
		return
	}

	s.invalidateViews()

	resp := NewHTMXResponse().
		TriggerTransactionDeleted(deleted.Date.Month())

	var persistErr *services.PersistError
	if errors.As(err, &persistErr) {
		slog.WarnContext(r.Context(), "Transaction deleted in memory only",
			"error", persistErr, "transaction_id", id)
		resp.TriggerErrorNotification(persistWarning)
	} else if err != nil {
		slog.ErrorContext(r.Context(), "Transaction delete failed", "error", err, "transaction_id", id)
		InternalServerError("Gagal menghapus data").Write(w)
		return
	} else {
		resp.TriggerSuccessNotification("Data berhasil dihapus!")
	}
	resp.Write(w)
}

// handleForm renders the entry form partial, prefilled when an id is
// given for editing.
func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	data := struct {
		EditID      string
		Date        string
		Allocation  string
		Quantity    string
		Price       string
		Type        string
		Description string
	}{
		Date:     currentDateInput(),
		Quantity: "1",
		Type:     string(core.Expense),
	}

	if id := strings.TrimSpace(r.URL.Query().Get("id")); id != "" {
		for _, tx := range s.tx.All() {
			if tx.ID == id {
				data.EditID = tx.ID
				data.Date = tx.Date.Format("2006-01-02")
				data.Allocation = tx.Allocation
				data.Quantity = strconv.FormatInt(tx.Quantity, 10)
				data.Price = tx.Price.DecimalString()
				data.Type = string(tx.Type)
				data.Description = tx.Description
				break
			}
		}
	}

	if err := s.templates.ExecuteTemplate(w, "form.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Form template execution failed", "error", err, "template", "form.html")
	}
}

func renderFieldErrors(errs core.FieldErrors) string {
	var b strings.Builder
	b.WriteString(`<div class="error"><ul>`)
	for _, fe := range errs {
		b.WriteString("<li>")
		b.WriteString(template.HTMLEscapeString(fe.Message))
		b.WriteString("</li>")
	}
	b.WriteString("</ul></div>")
	return b.String()
}
