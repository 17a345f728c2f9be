package console

import (
	"context"
	"fmt"
	"io"
)

// State is the menu loop state.
type State int

const (
	Running State = iota
	Exiting
)

/* ----------------------------------------
	MENU
---------------------------------------- */

type MenuItem struct {
	Key    string
	Label  string
	Action func(ctx context.Context) State
}

type Menu struct {
	Title string
	Items []MenuItem
}

// Lookup returns the item selected by key.
func (m *Menu) Lookup(key string) (MenuItem, bool) {
	for _, item := range m.Items {
		if item.Key == key {
			return item, true
		}
	}
	return MenuItem{}, false
}

// Render prints the title and one numbered line per item.
func (m *Menu) Render(w io.Writer) {
	fmt.Fprintf(w, "\n===== %s =====\n", m.Title)
	for _, item := range m.Items {
		fmt.Fprintf(w, "%s. %s\n", item.Key, item.Label)
	}
}

/* ----------------------------------------
	MENU DEFINITION
---------------------------------------- */

// stay adapts an operation that always returns to the menu.
func stay(fn func(ctx context.Context)) func(ctx context.Context) State {
	return func(ctx context.Context) State {
		fn(ctx)
		return Running
	}
}

func buildMainMenu(a *App) *Menu {
	return &Menu{
		Title: "STUDENT MANAGER",
		Items: []MenuItem{
			{Key: "1", Label: "Add student", Action: stay(a.Add)},
			{Key: "2", Label: "Update student", Action: stay(a.Update)},
			{Key: "3", Label: "Delete student", Action: stay(a.Delete)},
			{Key: "4", Label: "Search students by name", Action: stay(a.Search)},
			{Key: "5", Label: "Show all students", Action: stay(func(context.Context) { a.Display() })},
			{Key: "6", Label: "Import students from " + a.importPath, Action: stay(func(ctx context.Context) { a.Import(ctx, a.importPath) })},
			{Key: "0", Label: "Exit", Action: a.Exit},
		},
	}
}
