package core

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Draft is the untrusted form input for a transaction. Fields arrive as
// strings from the form layer and are validated here into a typed
// Transaction before anything reaches the store.
type Draft struct {
	Date        string
	Allocation  string
	Quantity    string
	Price       string
	Type        string
	Description string
}

// FieldError identifies one failing form field with a message meant to
// be shown inline next to it.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors collects every failing field so the caller can surface
// them all at once, not just the first.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	msgs := make([]string, len(fe))
	for i, e := range fe {
		msgs[i] = e.Field + ": " + e.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Validate checks every field and returns the full list of failures,
// or nil when the draft is acceptable.
func (d Draft) Validate() FieldErrors {
	var errs FieldErrors

	if strings.TrimSpace(d.Date) == "" {
		errs = append(errs, FieldError{Field: "date", Message: "Tanggal harus diisi"})
	} else if _, err := ParseDate(d.Date); err != nil {
		errs = append(errs, FieldError{Field: "date", Message: "Format tanggal tidak valid"})
	}

	if strings.TrimSpace(d.Allocation) == "" {
		errs = append(errs, FieldError{Field: "allocation", Message: "Alokasi harus diisi"})
	}

	qty, qtyErr := strconv.ParseInt(strings.TrimSpace(d.Quantity), 10, 64)
	if qtyErr != nil || qty <= 0 {
		errs = append(errs, FieldError{Field: "quantity", Message: "Jumlah harus lebih dari 0"})
	}

	cents, priceErr := ParseDecimalToCents(d.Price)
	if priceErr != nil {
		errs = append(errs, FieldError{Field: "price", Message: "Harga harus lebih dari 0"})
	} else if qtyErr == nil && qty > 0 && cents > math.MaxInt64/qty {
		// TotalPrice = Quantity * Price must fit in int64 cents.
		errs = append(errs, FieldError{Field: "price", Message: "Total harga terlalu besar"})
	}

	if !TransactionType(strings.TrimSpace(d.Type)).Valid() {
		errs = append(errs, FieldError{Field: "type", Message: "Tipe transaksi harus dipilih"})
	}

	return errs
}

// Transaction builds a typed Transaction from a valid draft. TotalPrice
// is always recomputed from Quantity and Price here; a caller-supplied
// total is never trusted, so the snapshot can not drift from its
// factors at entry time. ID and timestamps are left for the service to
// assign.
func (d Draft) Transaction() (Transaction, error) {
	if errs := d.Validate(); errs != nil {
		return Transaction{}, errs
	}

	date, _ := ParseDate(d.Date)
	qty, _ := strconv.ParseInt(strings.TrimSpace(d.Quantity), 10, 64)
	cents, _ := ParseDecimalToCents(d.Price)
	price := Money{Cents: cents}

	return Transaction{
		Date:        date,
		Allocation:  strings.TrimSpace(d.Allocation),
		Quantity:    qty,
		Price:       price,
		TotalPrice:  price.Mul(qty),
		Type:        TransactionType(strings.TrimSpace(d.Type)),
		Description: strings.TrimSpace(d.Description),
	}, nil
}

// Touch refreshes UpdatedAt, and stamps CreatedAt too when the record
// is brand new.
func (t *Transaction) Touch(now time.Time) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
}
