package storage

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JonMunkholm/students/internal/student"
)

func TestFile_LoadMissing(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "sinhvien.csv"))

	_, err := f.Load(context.Background())
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Load() error = %v, want fs.ErrNotExist", err)
	}
}

func TestFile_SaveThenLoad(t *testing.T) {
	ctx := context.Background()
	f := NewFile(filepath.Join(t.TempDir(), "sinhvien.csv"))
	students := []student.Student{
		{ID: "1", Name: "An", Age: 20, Major: "CS"},
		{ID: "2", Name: "Binh", Age: 21, Major: "Math"},
	}

	if err := f.Save(ctx, students); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	res, err := f.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(students, res.Students); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestFile_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewFile(filepath.Join(t.TempDir(), "sinhvien.csv"))
	if err := f.Save(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Save() error = %v, want context.Canceled", err)
	}
}

func TestFile_String(t *testing.T) {
	if got := NewFile("data/sinhvien.csv").String(); got != "data/sinhvien.csv" {
		t.Errorf("String() = %q", got)
	}
}
