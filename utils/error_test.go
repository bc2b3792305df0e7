package utils

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"validation", NewValidationError("bad input"), ErrorKindValidation},
		{"not found", NewNotFoundError("missing"), ErrorKindNotFound},
		{"conflict", NewConflictError("duplicate"), ErrorKindConflict},
		{"unauthorized", NewUnauthorizedError("no"), ErrorKindUnauthorized},
		{"forbidden", NewForbiddenError("no"), ErrorKindForbidden},
		{"gorm not found", gorm.ErrRecordNotFound, ErrorKindNotFound},
		{"wrapped gorm not found", fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound), ErrorKindNotFound},
		{"wrapped app error", fmt.Errorf("outer: %w", NewConflictError("inner")), ErrorKindConflict},
		{"plain error", errors.New("boom"), ErrorKindInternal},
		{"nil", nil, ErrorKindInternal},
	}
	for _, tc := range cases {
		if got := KindOf(tc.err); got != tc.want {
			t.Errorf("%s: KindOf = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestErrorRecordNotFoundMessage(t *testing.T) {
	if ErrorRecordNotFound.Error() != "record not found" {
		t.Fatalf("unexpected message: %q", ErrorRecordNotFound.Error())
	}
	if KindOf(ErrorRecordNotFound) != ErrorKindNotFound {
		t.Fatalf("sentinel must be a not-found error")
	}
}
