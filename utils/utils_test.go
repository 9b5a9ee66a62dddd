package utils

import (
	"database/sql"
	"testing"
)

func TestNullStringToStringPtr(t *testing.T) {
	ns := sql.NullString{String: "hello", Valid: true}
	p := NullStringToStringPtr(ns)
	if p == nil || *p != "hello" {
		t.Fatalf("expected pointer to 'hello', got %v", p)
	}

	ns2 := sql.NullString{Valid: false}
	p2 := NullStringToStringPtr(ns2)
	if p2 != nil {
		t.Fatalf("expected nil pointer, got %v", p2)
	}
}

func TestPointerToString(t *testing.T) {
	s := "world"
	if PointerToString(&s) != "world" {
		t.Fatalf("expected 'world'")
	}
	if PointerToString(nil) != "<nil>" {
		t.Fatalf("expected '<nil>' for nil pointer")
	}
}

func TestValidateAndNormalizeRole(t *testing.T) {
	role, ok := ValidateAndNormalizeRole("Customer")
	if !ok || role != "customer" {
		t.Fatalf("expected normalized valid role, got %q %v", role, ok)
	}

	if _, ok := ValidateAndNormalizeRole("merchant"); ok {
		t.Fatalf("'merchant' should not be a valid role")
	}
}

func TestIsValidDriverStatus(t *testing.T) {
	for _, status := range []string{"pending", "approved", "rejected", "Approved"} {
		if !IsValidDriverStatus(status) {
			t.Fatalf("expected %q to be valid", status)
		}
	}
	if IsValidDriverStatus("banned") {
		t.Fatalf("'banned' should not be a valid status")
	}
}

func TestCreatePagination(t *testing.T) {
	p := CreatePagination(25, 2, 10)
	if p.TotalPages != 3 {
		t.Fatalf("expected 3 total pages, got %d", p.TotalPages)
	}
	if p.CurrentPage != 2 || p.PageSize != 10 || p.TotalItems != 25 {
		t.Fatalf("unexpected pagination: %+v", p)
	}

	// Defaults kick in for nonsense input.
	p = CreatePagination(5, 0, -1)
	if p.CurrentPage != 1 || p.PageSize != 10 {
		t.Fatalf("expected defaults, got %+v", p)
	}
}
