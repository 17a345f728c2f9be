// Package console runs the interactive student manager: a numbered menu
// that dispatches to add, update, delete, search, list and import, saving
// the store after every change and once more on exit.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/JonMunkholm/students/internal/csvio"
	"github.com/JonMunkholm/students/internal/logging"
	"github.com/JonMunkholm/students/internal/storage"
	"github.com/JonMunkholm/students/internal/student"
)

// Options configures an App.
type Options struct {
	Backend    storage.Backend
	ImportPath string
	In         io.Reader
	Out        io.Writer
}

// App owns the store for one run.
type App struct {
	store      *student.Store
	backend    storage.Backend
	importPath string
	prompt     *Prompter
	out        io.Writer
	menu       *Menu
}

// New creates an App with an empty store. Call Load or Run to read the
// persisted records.
func New(opts Options) *App {
	a := &App{
		store:      student.NewStore(),
		backend:    opts.Backend,
		importPath: opts.ImportPath,
		prompt:     NewPrompter(opts.In, opts.Out),
		out:        opts.Out,
	}
	a.menu = buildMainMenu(a)
	return a
}

// Store exposes the in-memory records.
func (a *App) Store() *student.Store {
	return a.store
}

// Run loads the store, shows it, and serves the menu until the user exits
// or input ends.
func (a *App) Run(ctx context.Context) error {
	a.Load(ctx)
	fmt.Fprintln(a.out, "\n=== Current students ===")
	a.Display()
	return a.Loop(ctx)
}

// Loop serves the menu. End of input, or input that can no longer be read,
// is handled like the exit choice.
func (a *App) Loop(ctx context.Context) error {
	state := Running
	for state == Running {
		a.menu.Render(a.out)
		choice, err := a.prompt.Ask("Choose an option: ")
		if err != nil {
			if !errors.Is(err, io.EOF) {
				logging.FromContext(ctx).Warn("console input failed, exiting", "error", err)
			}
			fmt.Fprintln(a.out)
			choice = "0"
		}

		item, ok := a.menu.Lookup(choice)
		if !ok {
			fmt.Fprintln(a.out, "Invalid choice.")
			continue
		}
		state = item.Action(ctx)
	}
	return nil
}

// Load replaces the store with the backend's records. A missing store file
// starts an empty list; unreadable rows are reported and skipped.
func (a *App) Load(ctx context.Context) {
	log := logging.WithFields(ctx, "backend", a.backend.String())

	res, err := a.backend.Load(ctx)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintf(a.out, "File %s does not exist; starting with an empty list.\n", a.backend)
		log.Info("store file missing, starting empty")
	case err != nil:
		fmt.Fprintf(a.out, "Could not read %s: %s\n", a.backend, student.FormatUserError(err))
		log.Error("load failed", "error", err, "rows_read", len(res.Students))
	}
	a.reportSkipped(ctx, res.Skipped)

	store := student.NewStore()
	for _, s := range res.Students {
		if err := store.Add(s); err != nil {
			fmt.Fprintf(a.out, "Skipping ID %s: already loaded.\n", s.ID)
			log.Warn("duplicate id in store", "id", s.ID)
		}
	}
	a.store = store
	log.Info("store loaded", "rows", store.Len(), "skipped", len(res.Skipped))
}

// Display prints every record.
func (a *App) Display() {
	RenderTable(a.out, a.store.All())
}

// Add prompts for a new record. The ID is checked before anything else is
// asked, and the age before the major.
func (a *App) Add(ctx context.Context) {
	id, ok := a.ask("Enter ID: ")
	if !ok {
		return
	}
	id = student.CleanText(id)
	if a.store.Has(id) {
		a.reject(ctx, "add", fmt.Errorf("add %q: %w", id, student.ErrDuplicateID))
		return
	}

	name, ok := a.ask("Enter full name: ")
	if !ok {
		return
	}
	ageText, ok := a.ask("Enter age: ")
	if !ok {
		return
	}
	age, err := student.ParseAge(ageText)
	if err != nil {
		a.reject(ctx, "add", err)
		return
	}
	major, ok := a.ask("Enter major: ")
	if !ok {
		return
	}

	s := student.Student{ID: id, Name: student.CleanText(name), Age: age, Major: student.CleanText(major)}
	if err := a.store.Add(s); err != nil {
		a.reject(ctx, "add", err)
		return
	}

	fmt.Fprintln(a.out, "Student added.")
	logging.FromContext(ctx).Info("student added", "id", s.ID)
	a.persist(ctx)
	a.Display()
}

// Update prompts for new values; a blank answer keeps the current one. An
// unparsable age abandons the update before the major is asked, and nothing
// is changed.
func (a *App) Update(ctx context.Context) {
	id, ok := a.ask("Enter the ID of the student to update: ")
	if !ok {
		return
	}
	id = student.CleanText(id)
	current, found := a.store.Get(id)
	if !found {
		a.reject(ctx, "update", fmt.Errorf("update %q: %w", id, student.ErrNotFound))
		return
	}

	name, ok := a.ask(fmt.Sprintf("Enter new name (%s): ", current.Name))
	if !ok {
		return
	}
	ageText, ok := a.ask(fmt.Sprintf("Enter new age (%d): ", current.Age))
	if !ok {
		return
	}
	var age *int
	if ageText != "" {
		n, err := student.ParseAge(ageText)
		if err != nil {
			a.reject(ctx, "update", err)
			return
		}
		age = &n
	}
	major, ok := a.ask(fmt.Sprintf("Enter new major (%s): ", current.Major))
	if !ok {
		return
	}

	if _, err := a.store.Update(id, student.Patch{Name: name, Age: age, Major: major}); err != nil {
		a.reject(ctx, "update", err)
		return
	}

	fmt.Fprintln(a.out, "Student updated.")
	logging.FromContext(ctx).Info("student updated", "id", id)
	a.persist(ctx)
	a.Display()
}

// Delete prompts for an ID and removes that record.
func (a *App) Delete(ctx context.Context) {
	id, ok := a.ask("Enter the ID of the student to delete: ")
	if !ok {
		return
	}
	id = student.CleanText(id)
	if _, err := a.store.Delete(id); err != nil {
		a.reject(ctx, "delete", err)
		return
	}

	fmt.Fprintln(a.out, "Student deleted.")
	logging.FromContext(ctx).Info("student deleted", "id", id)
	a.persist(ctx)
	a.Display()
}

// Search prompts for part of a name and prints the matches.
func (a *App) Search(ctx context.Context) {
	keyword, ok := a.ask("Enter a name to search for: ")
	if !ok {
		return
	}
	a.SearchFor(keyword)
}

// SearchFor prints the records whose name contains keyword, ignoring case,
// and reports how many matched.
func (a *App) SearchFor(keyword string) int {
	found := a.store.Search(keyword)
	if len(found) == 0 {
		fmt.Fprintln(a.out, "No matching students found.")
		return 0
	}
	RenderTable(a.out, found)
	return len(found)
}

// Import adds every new record from a raw or header CSV file and returns
// how many were added. IDs already in the store are skipped. All staged
// records are added together and saved once.
func (a *App) Import(ctx context.Context, path string) int {
	log := logging.WithFields(ctx, "source", path)

	res, err := csvio.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(a.out, "File %s does not exist.\n", path)
		return 0
	}
	if err != nil {
		fmt.Fprintf(a.out, "Could not read %s: %s\n", path, student.FormatUserError(err))
		log.Error("import read failed", "error", err)
		return 0
	}
	a.reportSkipped(ctx, res.Skipped)

	var staged []student.Student
	for _, s := range res.Students {
		if a.store.Has(s.ID) {
			fmt.Fprintf(a.out, "Skipping ID %s: already exists.\n", s.ID)
			continue
		}
		staged = append(staged, s)
	}

	if len(staged) == 0 {
		fmt.Fprintln(a.out, "No new valid students to import.")
		log.Info("import finished", "added", 0, "skipped", len(res.Skipped))
		return 0
	}

	if err := a.store.AddAll(staged); err != nil {
		a.reject(ctx, "import", err)
		return 0
	}

	a.persist(ctx)
	fmt.Fprintf(a.out, "Imported %d new students from %s.\n", len(staged), path)
	log.Info("import finished", "added", len(staged), "skipped", len(res.Skipped))
	a.Display()
	return len(staged)
}

// Exit saves the store one last time and ends the loop.
func (a *App) Exit(ctx context.Context) State {
	a.persist(ctx)
	fmt.Fprintln(a.out, "Goodbye.")
	return Exiting
}

// ask wraps Prompter.Ask; ok is false when no answer can be read.
func (a *App) ask(label string) (string, bool) {
	answer, err := a.prompt.Ask(label)
	if err != nil {
		fmt.Fprintln(a.out)
		return "", false
	}
	return answer, true
}

// persist saves the whole store. Failures are reported and the in-memory
// records are kept as they are.
func (a *App) persist(ctx context.Context) {
	log := logging.WithFields(ctx, "backend", a.backend.String())

	err := a.backend.Save(ctx, a.store.All())
	if err == nil {
		fmt.Fprintf(a.out, "Saved to %s.\n", a.backend)
		log.Debug("store saved", "rows", a.store.Len())
		return
	}

	var mirrorErr *storage.MirrorError
	if errors.As(err, &mirrorErr) {
		fmt.Fprintf(a.out, "Saved, but the copy to %s failed: %s\n",
			strings.Join(mirrorErr.Failed, ", "), student.FormatUserError(mirrorErr.Err))
		log.Warn("mirror save failed", "error", err)
		return
	}

	fmt.Fprintf(a.out, "Could not save to %s: %s\n", a.backend, student.FormatUserError(err))
	log.Error("save failed", "error", err, "rows", a.store.Len())
}

// reject reports a refused operation.
func (a *App) reject(ctx context.Context, op string, err error) {
	fmt.Fprintf(a.out, "Could not %s: %s\n", op, student.FormatUserError(err))

	log := logging.FromContext(ctx)
	if student.IsUserFacing(err) {
		log.Info("operation rejected", "op", op, "error", err)
		return
	}
	log.Error("operation failed", "op", op, "error", err)
}

func (a *App) reportSkipped(ctx context.Context, skipped []csvio.LineError) {
	log := logging.FromContext(ctx)
	for _, e := range skipped {
		fmt.Fprintf(a.out, "Invalid line %d skipped (%v): %s\n", e.Line, e.Err, e.Raw)
		log.Warn("line skipped", "line", e.Line, "error", e.Err)
	}
}
