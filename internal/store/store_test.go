package store

import (
	"errors"
	"testing"

	"kas/internal/core"
)

func sample(id string) core.Transaction {
	return core.Transaction{
		ID:         id,
		Date:       core.NewDate(2024, 3, 1),
		Allocation: "Food",
		Quantity:   2,
		Price:      core.Money{Cents: 1500000},
		TotalPrice: core.Money{Cents: 3000000},
		Type:       core.Expense,
	}
}

func TestAddAndGet(t *testing.T) {
	s := New()
	if err := s.Add(sample("a")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("len = %d", s.Len())
	}
	got, err := s.Get("a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != sample("a") {
		t.Fatalf("got %+v", got)
	}
}

func TestAddDuplicateID(t *testing.T) {
	s := New()
	_ = s.Add(sample("a"))
	if err := s.Add(sample("a")); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("duplicate add changed size")
	}
}

func TestPutReplacesMatchingRecord(t *testing.T) {
	s := New()
	_ = s.Add(sample("a"))
	_ = s.Add(sample("b"))

	updated := sample("a")
	updated.Allocation = "Transport"
	if err := s.Put(updated); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, _ := s.Get("a")
	if got.Allocation != "Transport" {
		t.Fatalf("allocation = %q", got.Allocation)
	}
	other, _ := s.Get("b")
	if other != sample("b") {
		t.Fatalf("untouched record changed: %+v", other)
	}
}

func TestPutMissing(t *testing.T) {
	s := New()
	if err := s.Put(sample("ghost")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	s := New()
	_ = s.Add(sample("a"))
	if err := s.Remove("a"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("len = %d", s.Len())
	}
	if err := s.Remove("a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAllReturnsCopy(t *testing.T) {
	s := New()
	_ = s.Add(sample("a"))
	all := s.All()
	all[0].Allocation = "mutated"
	got, _ := s.Get("a")
	if got.Allocation != "Food" {
		t.Fatalf("All leaked internal slice")
	}
}

func TestReplace(t *testing.T) {
	s := New()
	_ = s.Add(sample("a"))
	s.Replace([]core.Transaction{sample("x"), sample("y")})
	if s.Len() != 2 {
		t.Fatalf("len = %d", s.Len())
	}
	if _, err := s.Get("a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("old record survived replace")
	}
}
