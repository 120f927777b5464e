package core

import (
	"errors"
	"strings"
	"time"
)

const (
	// Wire values kept as written by the original data files ("masuk" =
	// incoming, "keluar" = outgoing), so existing exports stay readable.
	Income  TransactionType = "masuk"
	Expense TransactionType = "keluar"
)

type (
	TransactionType string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Transaction is the sole persisted entity: one income or expense
	// entry with date, allocation label, quantity, unit price and a
	// total captured at entry time. TotalPrice is a snapshot taken when
	// the record is written; nothing recomputes it on read.
	Transaction struct {
		ID          string          `json:"id"`
		Date        Date            `json:"date"`
		Allocation  string          `json:"allocation"`
		Quantity    int64           `json:"quantity"`
		Price       Money           `json:"price"`
		TotalPrice  Money           `json:"totalPrice"`
		Type        TransactionType `json:"type"`
		Description string          `json:"description"`
		CreatedAt   time.Time       `json:"createdAt"`
		UpdatedAt   time.Time       `json:"updatedAt"`
	}
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrEmptyAllocation = errors.New("empty allocation")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidType     = errors.New("invalid transaction type")
)

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Month returns the calendar month, 1-indexed.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year.
func (d Date) Year() int {
	return d.Time.Year()
}

// String renders the date in its wire form (YYYY-MM-DD).
func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (tt TransactionType) Valid() bool {
	return tt == Income || tt == Expense
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Allocation) == "" {
		return ErrEmptyAllocation
	}
	if t.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if err := t.Price.Validate(); err != nil {
		return err
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}
