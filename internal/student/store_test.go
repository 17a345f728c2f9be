package student

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func seededStore(t *testing.T, students ...Student) *Store {
	t.Helper()
	s := NewStore()
	for _, st := range students {
		if err := s.Add(st); err != nil {
			t.Fatalf("seed Add(%q) error = %v", st.ID, err)
		}
	}
	return s
}

func intPtr(i int) *int { return &i }

var (
	an   = Student{ID: "1", Name: "An", Age: 20, Major: "CS"}
	binh = Student{ID: "2", Name: "Binh", Age: 21, Major: "Math"}
	chi  = Student{ID: "3", Name: "Trần Thị Chi", Age: 19, Major: "Physics"}
)

func TestStore_AddDuplicateLeavesStoreUnchanged(t *testing.T) {
	s := seededStore(t, an)

	err := s.Add(Student{ID: "1", Name: "Other", Age: 30, Major: "Art"})
	if !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("Add() error = %v, want ErrDuplicateID", err)
	}

	if diff := cmp.Diff([]Student{an}, s.All()); diff != "" {
		t.Errorf("store changed after rejected add (-want +got):\n%s", diff)
	}
}

func TestStore_AddKeepsInsertionOrder(t *testing.T) {
	s := seededStore(t, binh, an, chi)

	if diff := cmp.Diff([]Student{binh, an, chi}, s.All()); diff != "" {
		t.Errorf("All() mismatch (-want +got):\n%s", diff)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
}

func TestStore_AllReturnsCopy(t *testing.T) {
	s := seededStore(t, an)

	all := s.All()
	all[0].Name = "Mutated"

	got, _ := s.Get("1")
	if got.Name != "An" {
		t.Errorf("store mutated through All() slice: Name = %q", got.Name)
	}
}

func TestStore_AddAll(t *testing.T) {
	t.Run("appends every record", func(t *testing.T) {
		s := seededStore(t, an)
		if err := s.AddAll([]Student{binh, chi}); err != nil {
			t.Fatalf("AddAll() error = %v", err)
		}
		if diff := cmp.Diff([]Student{an, binh, chi}, s.All()); diff != "" {
			t.Errorf("All() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("existing id rejects whole batch", func(t *testing.T) {
		s := seededStore(t, an)
		err := s.AddAll([]Student{binh, {ID: "1", Name: "Dup", Age: 1, Major: "X"}})
		if !errors.Is(err, ErrDuplicateID) {
			t.Fatalf("AddAll() error = %v, want ErrDuplicateID", err)
		}
		if s.Len() != 1 || s.Has("2") {
			t.Errorf("store changed after rejected batch: %v", s.All())
		}
	})

	t.Run("duplicate inside batch rejects whole batch", func(t *testing.T) {
		s := NewStore()
		err := s.AddAll([]Student{binh, binh})
		if !errors.Is(err, ErrDuplicateID) {
			t.Fatalf("AddAll() error = %v, want ErrDuplicateID", err)
		}
		if s.Len() != 0 {
			t.Errorf("Len() = %d, want 0", s.Len())
		}
	})
}

func TestStore_Update(t *testing.T) {
	tests := []struct {
		name  string
		patch Patch
		want  Student
	}{
		{
			name:  "blank fields keep values",
			patch: Patch{},
			want:  binh,
		},
		{
			name:  "age only",
			patch: Patch{Age: intPtr(22)},
			want:  Student{ID: "2", Name: "Binh", Age: 22, Major: "Math"},
		},
		{
			name:  "all fields",
			patch: Patch{Name: " Bình ", Age: intPtr(23), Major: "Chemistry"},
			want:  Student{ID: "2", Name: "Bình", Age: 23, Major: "Chemistry"},
		},
		{
			name:  "whitespace name is blank",
			patch: Patch{Name: "   ", Major: "Biology"},
			want:  Student{ID: "2", Name: "Binh", Age: 21, Major: "Biology"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := seededStore(t, an, binh)

			got, err := s.Update("2", tt.patch)
			if err != nil {
				t.Fatalf("Update() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Update() result mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]Student{an, tt.want}, s.All()); diff != "" {
				t.Errorf("store mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStore_UpdateUnknownID(t *testing.T) {
	s := seededStore(t, an)

	_, err := s.Update("9", Patch{Name: "Ghost"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update() error = %v, want ErrNotFound", err)
	}
	if diff := cmp.Diff([]Student{an}, s.All()); diff != "" {
		t.Errorf("store changed (-want +got):\n%s", diff)
	}
}

func TestStore_Delete(t *testing.T) {
	s := seededStore(t, an, binh, chi)

	removed, err := s.Delete("2")
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if diff := cmp.Diff(binh, removed); diff != "" {
		t.Errorf("Delete() returned wrong record (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Student{an, chi}, s.All()); diff != "" {
		t.Errorf("store mismatch (-want +got):\n%s", diff)
	}

	// Index must follow the shifted positions.
	got, ok := s.Get("3")
	if !ok || got != chi {
		t.Errorf("Get(3) after delete = %v, %v; want %v", got, ok, chi)
	}
	if err := s.Add(binh); err != nil {
		t.Errorf("re-adding deleted id failed: %v", err)
	}
}

func TestStore_DeleteUnknownID(t *testing.T) {
	s := seededStore(t, an, binh)

	if _, err := s.Delete("42"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete() error = %v, want ErrNotFound", err)
	}
	if diff := cmp.Diff([]Student{an, binh}, s.All()); diff != "" {
		t.Errorf("store changed (-want +got):\n%s", diff)
	}
}

func TestStore_Search(t *testing.T) {
	s := seededStore(t, an, binh, chi)

	tests := []struct {
		keyword string
		want    []Student
	}{
		{keyword: "an", want: []Student{an}},
		{keyword: "AN", want: []Student{an}},
		{keyword: "bin", want: []Student{binh}},
		{keyword: "CHI", want: []Student{chi}},
		{keyword: "trần", want: []Student{chi}},
		{keyword: "TRẦN", want: []Student{chi}},
		{keyword: "zzz", want: nil},
		{keyword: "", want: []Student{an, binh, chi}},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			got := s.Search(tt.keyword)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Search(%q) mismatch (-want +got):\n%s", tt.keyword, diff)
			}
		})
	}
}

func TestStore_Scenario(t *testing.T) {
	s := seededStore(t, an)

	if err := s.Add(Student{ID: "1", Name: "Again", Age: 1, Major: "X"}); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("duplicate add error = %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d after rejected add, want 1", s.Len())
	}

	if err := s.Add(binh); err != nil {
		t.Fatalf("Add(binh) error = %v", err)
	}

	if _, err := s.Update("2", Patch{Age: intPtr(22)}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, _ := s.Get("2")
	want := Student{ID: "2", Name: "Binh", Age: 22, Major: "Math"}
	if got != want {
		t.Errorf("after update got %v, want %v", got, want)
	}

	if _, err := s.Delete("1"); err != nil {
		t.Fatalf("Delete(1) error = %v", err)
	}
	if diff := cmp.Diff([]Student{want}, s.All()); diff != "" {
		t.Errorf("after delete (-want +got):\n%s", diff)
	}

	if found := s.Search("an"); len(found) != 0 {
		t.Errorf("Search(an) = %v, want no match", found)
	}
}
