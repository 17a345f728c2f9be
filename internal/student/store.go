package student

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Store is the ordered in-memory collection of records for one run.
// It is not safe for concurrent use.
type Store struct {
	students []Student
	index    map[string]int // ID -> position in students
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.students)
}

// Has reports whether a record with the given ID exists.
func (s *Store) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Get returns the record with the given ID.
func (s *Store) Get(id string) (Student, bool) {
	i, ok := s.index[id]
	if !ok {
		return Student{}, false
	}
	return s.students[i], true
}

// All returns a copy of every record in insertion order.
func (s *Store) All() []Student {
	out := make([]Student, len(s.students))
	copy(out, s.students)
	return out
}

// Add appends a record. It fails with ErrDuplicateID if the ID is taken.
func (s *Store) Add(st Student) error {
	if s.Has(st.ID) {
		return fmt.Errorf("add %q: %w", st.ID, ErrDuplicateID)
	}
	s.index[st.ID] = len(s.students)
	s.students = append(s.students, st)
	return nil
}

// AddAll appends a batch of records. Either every record is added or none
// is: an ID that already exists in the store, or that appears twice in the
// batch, fails the whole call.
func (s *Store) AddAll(batch []Student) error {
	seen := make(map[string]struct{}, len(batch))
	for _, st := range batch {
		if _, dup := seen[st.ID]; dup || s.Has(st.ID) {
			return fmt.Errorf("add batch %q: %w", st.ID, ErrDuplicateID)
		}
		seen[st.ID] = struct{}{}
	}
	for _, st := range batch {
		s.index[st.ID] = len(s.students)
		s.students = append(s.students, st)
	}
	return nil
}

// Update applies p to the record with the given ID and returns the result.
func (s *Store) Update(id string, p Patch) (Student, error) {
	i, ok := s.index[id]
	if !ok {
		return Student{}, fmt.Errorf("update %q: %w", id, ErrNotFound)
	}
	s.students[i] = p.apply(s.students[i])
	return s.students[i], nil
}

// Delete removes the record with the given ID and returns it.
func (s *Store) Delete(id string) (Student, error) {
	i, ok := s.index[id]
	if !ok {
		return Student{}, fmt.Errorf("delete %q: %w", id, ErrNotFound)
	}
	removed := s.students[i]
	s.students = append(s.students[:i], s.students[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.students); j++ {
		s.index[s.students[j].ID] = j
	}
	return removed, nil
}

// Search returns the records whose name contains keyword, compared with
// Unicode case folding. An empty keyword matches every record.
func (s *Store) Search(keyword string) []Student {
	fold := cases.Fold()
	key := fold.String(CleanText(keyword))

	var found []Student
	for _, st := range s.students {
		if strings.Contains(fold.String(st.Name), key) {
			found = append(found, st)
		}
	}
	return found
}
