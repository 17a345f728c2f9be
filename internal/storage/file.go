package storage

import (
	"context"

	"github.com/JonMunkholm/students/internal/csvio"
	"github.com/JonMunkholm/students/internal/student"
)

// File stores records in a CSV file with an id,name,age,major header.
type File struct {
	Path string
}

// NewFile returns a file backend for path.
func NewFile(path string) *File {
	return &File{Path: path}
}

func (f *File) Load(ctx context.Context) (csvio.Result, error) {
	if err := ctx.Err(); err != nil {
		return csvio.Result{}, err
	}
	return csvio.ReadFile(f.Path)
}

func (f *File) Save(ctx context.Context, students []student.Student) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return csvio.WriteFile(f.Path, students)
}

func (f *File) String() string {
	return f.Path
}
