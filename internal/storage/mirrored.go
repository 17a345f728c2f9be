package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JonMunkholm/students/internal/csvio"
	"github.com/JonMunkholm/students/internal/student"
)

// MirrorError reports mirrors that failed after the primary save succeeded.
type MirrorError struct {
	Failed []string // Backend names
	Err    error    // Joined mirror errors
}

func (e *MirrorError) Error() string {
	return fmt.Sprintf("saved, but mirror %s failed: %v", strings.Join(e.Failed, ", "), e.Err)
}

func (e *MirrorError) Unwrap() error {
	return e.Err
}

// Mirrored saves to Primary and then to every mirror. Loads come from
// Primary only.
type Mirrored struct {
	Primary Backend
	Mirrors []Backend
	Logger  *slog.Logger
}

func (m *Mirrored) Load(ctx context.Context) (csvio.Result, error) {
	return m.Primary.Load(ctx)
}

// Save writes Primary first. If that fails, mirrors are not touched and the
// primary error is returned. Mirror failures are collected into a
// *MirrorError and do not undo the primary save.
func (m *Mirrored) Save(ctx context.Context, students []student.Student) error {
	if err := m.Primary.Save(ctx, students); err != nil {
		return err
	}

	var (
		failed []string
		errs   []error
	)
	for _, mirror := range m.Mirrors {
		if err := mirror.Save(ctx, students); err != nil {
			m.logger().Warn("mirror save failed", "mirror", mirror.String(), "error", err)
			failed = append(failed, mirror.String())
			errs = append(errs, fmt.Errorf("%s: %w", mirror, err))
			continue
		}
		m.logger().Debug("mirror saved", "mirror", mirror.String(), "rows", len(students))
	}

	if len(errs) > 0 {
		return &MirrorError{Failed: failed, Err: errors.Join(errs...)}
	}
	return nil
}

func (m *Mirrored) String() string {
	names := make([]string, 0, len(m.Mirrors))
	for _, mirror := range m.Mirrors {
		names = append(names, mirror.String())
	}
	if len(names) == 0 {
		return m.Primary.String()
	}
	return fmt.Sprintf("%s (mirrored to %s)", m.Primary, strings.Join(names, ", "))
}

func (m *Mirrored) logger() *slog.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return slog.Default()
}
