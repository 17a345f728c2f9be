// Package student holds the record model and the in-memory store for the
// student record manager.
//
// This package contains the domain rules only. It knows nothing about files,
// databases or the console, so the same store can back the interactive menu,
// the one-shot CLI commands and tests.
//
// # Store
//
// A [Store] keeps records in insertion order and indexes them by ID:
//
//	s := student.NewStore()
//	_ = s.Add(student.Student{ID: "1", Name: "An", Age: 20, Major: "CS"})
//	matches := s.Search("an")
//
// IDs are unique at all times. Every mutating method either applies its
// change completely or leaves the store untouched and returns an error that
// wraps one of the sentinel errors ([ErrDuplicateID], [ErrInvalidAge],
// [ErrNotFound]).
//
// # Error Messages
//
// [MapError] and [FormatUserError] turn technical errors from this package,
// the persistence layer and the database driver into short console messages
// with a support code. See error_messages.go for the catalogue.
package student
