package workout

import (
	"context"
	"fmt"
	"strings"

	"github.com/meltforce/strain/internal/models"
)

// SetTheme stores the UI theme preference.
func (e *Engine) SetTheme(ctx context.Context, theme string) error {
	theme = strings.TrimSpace(theme)
	if !models.ValidTheme(theme) {
		return fmt.Errorf("theme %q: %w", theme, ErrInvalidInput)
	}
	e.st.Profile.Theme = theme
	return e.persist(ctx, "set theme")
}

// SetProfileName stores the local profile name.
func (e *Engine) SetProfileName(ctx context.Context, name string) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	e.st.Profile.Name = name
	return e.persist(ctx, "set profile name")
}

// Reset deletes the saved document and starts again from the defaults.
func (e *Engine) Reset(ctx context.Context) error {
	if err := e.store.Reset(ctx); err != nil {
		return err
	}
	e.st = e.defaultState()
	e.log.Warn("all data reset")
	return e.persist(ctx, "reset")
}
