package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestToDomainErrorPassesThrough(t *testing.T) {
	original := NewInvalidState("cannot delete ticket that is currently being worked on")
	mapped := ToDomainError(fmt.Errorf("wrapped: %w", original))
	if mapped.Code != "INVALID_STATE" || mapped.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("unexpected mapping %+v", mapped)
	}
}

func TestToDomainErrorMapsNoRows(t *testing.T) {
	mapped := ToDomainError(pgx.ErrNoRows)
	if mapped.Code != "NOT_FOUND" || mapped.HTTPStatus != http.StatusNotFound {
		t.Fatalf("unexpected mapping %+v", mapped)
	}
}

func TestToDomainErrorDefaultsToInternal(t *testing.T) {
	mapped := ToDomainError(errors.New("connection refused"))
	if mapped.Code != "INTERNAL_ERROR" || mapped.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unexpected mapping %+v", mapped)
	}
}

func TestTaxonomyStatusCodes(t *testing.T) {
	cases := []struct {
		err    error
		code   string
		status int
	}{
		{NewValidationError("bad", nil), "VALIDATION_FAILED", http.StatusBadRequest},
		{NewUnauthorized("no"), "UNAUTHORIZED", http.StatusUnauthorized},
		{NewForbidden("no"), "FORBIDDEN", http.StatusForbidden},
		{NewNotFound("ticket", nil), "NOT_FOUND", http.StatusNotFound},
		{NewInvalidState("no"), "INVALID_STATE", http.StatusBadRequest},
		{NewConflict("dup", nil), "CONFLICT", http.StatusConflict},
	}
	for _, tc := range cases {
		mapped := ToDomainError(tc.err)
		if mapped.Code != tc.code || mapped.HTTPStatus != tc.status {
			t.Fatalf("expected %s/%d, got %s/%d", tc.code, tc.status, mapped.Code, mapped.HTTPStatus)
		}
	}
}
