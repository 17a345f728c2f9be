package student

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{name: "nil error returns empty", err: nil, wantCode: ""},
		{name: "duplicate id", err: fmt.Errorf("add %q: %w", "1", ErrDuplicateID), wantCode: "REC001"},
		{name: "invalid age", err: fmt.Errorf("%w: %q", ErrInvalidAge, "x"), wantCode: "REC002"},
		{name: "not found", err: fmt.Errorf("delete %q: %w", "9", ErrNotFound), wantCode: "REC003"},
		{name: "missing file", err: &fs.PathError{Op: "open", Path: "x.csv", Err: fs.ErrNotExist}, wantCode: "FILE001"},
		{name: "permission", err: &fs.PathError{Op: "open", Path: "x.csv", Err: fs.ErrPermission}, wantCode: "FILE002"},
		{name: "directory", err: errors.New("rename tmp out: is a directory"), wantCode: "FILE003"},
		{name: "connection refused", err: errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), wantCode: "DB001"},
		{name: "missing relation", err: errors.New(`ERROR: relation "students" does not exist (SQLSTATE 42P01)`), wantCode: "DB003"},
		{name: "deadline", err: errors.New("context deadline exceeded"), wantCode: "DB004"},
		{name: "unknown", err: errors.New("something odd"), wantCode: "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError(%v).Code = %q, want %q", tt.err, got.Code, tt.wantCode)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}

	got := FormatUserError(fmt.Errorf("add: %w", ErrDuplicateID))
	want := "A student with this ID already exists (Code: REC001). Choose a different ID"
	if got != want {
		t.Errorf("FormatUserError() = %q, want %q", got, want)
	}
}

func TestIsUserFacing(t *testing.T) {
	if IsUserFacing(nil) {
		t.Error("IsUserFacing(nil) = true, want false")
	}
	if !IsUserFacing(ErrNotFound) {
		t.Error("IsUserFacing(ErrNotFound) = false, want true")
	}
	if IsUserFacing(errors.New("boom")) {
		t.Error("IsUserFacing(boom) = true, want false")
	}
}
