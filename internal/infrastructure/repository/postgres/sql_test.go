package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatal("expected sql.ErrNoRows to be not-found")
	}
	if !isNotFound(fmt.Errorf("wrapped: %w", sql.ErrNoRows)) {
		t.Fatal("expected wrapped sql.ErrNoRows to be not-found")
	}
	if isNotFound(errors.New("boom")) {
		t.Fatal("expected arbitrary error to not be not-found")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !isUniqueViolation(&pq.Error{Code: uniqueViolationCode}) {
		t.Fatal("expected 23505 to be a unique violation")
	}
	if isUniqueViolation(&pq.Error{Code: "23503"}) {
		t.Fatal("expected foreign key violation to not match")
	}
	if isUniqueViolation(errors.New("boom")) {
		t.Fatal("expected arbitrary error to not match")
	}
}
