// Package storage persists the student store.
//
// The CSV file backend is the source of truth. A PostgreSQL backend can be
// attached as a mirror through Mirrored, so every save also refreshes a
// database copy that other tools can query.
package storage

import (
	"context"

	"github.com/JonMunkholm/students/internal/csvio"
	"github.com/JonMunkholm/students/internal/student"
)

// Backend loads and saves the full set of records.
type Backend interface {
	// Load returns every persisted record in insertion order. A missing
	// store is reported as an error wrapping fs.ErrNotExist.
	Load(ctx context.Context) (csvio.Result, error)

	// Save replaces the persisted records with students.
	Save(ctx context.Context, students []student.Student) error

	// String names the backend in console messages and logs.
	String() string
}
