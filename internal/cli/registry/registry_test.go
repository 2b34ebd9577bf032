package registry

import (
	"testing"

	cfg "github.com/Tomas-vilte/MateIntake/internal/config"
	"github.com/Tomas-vilte/MateIntake/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

type stubFactory struct {
	name string
}

func (f *stubFactory) CreateCommand(_ *i18n.Translations, _ *cfg.Config) *cli.Command {
	return &cli.Command{Name: f.name}
}

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	trans, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)
	return NewRegistry(&cfg.Config{}, trans)
}

func TestRegistry(t *testing.T) {
	t.Run("should create commands in registration order", func(t *testing.T) {
		registry := newTestRegistry(t)

		require.NoError(t, registry.Register("submit", &stubFactory{name: "submit"}))
		require.NoError(t, registry.Register("validate", &stubFactory{name: "validate"}))
		require.NoError(t, registry.Register("config", &stubFactory{name: "config"}))

		commands := registry.CreateCommands()
		require.Len(t, commands, 3)
		assert.Equal(t, "submit", commands[0].Name)
		assert.Equal(t, "validate", commands[1].Name)
		assert.Equal(t, "config", commands[2].Name)
	})

	t.Run("should reject a duplicate registration", func(t *testing.T) {
		registry := newTestRegistry(t)

		require.NoError(t, registry.Register("submit", &stubFactory{name: "submit"}))
		err := registry.Register("submit", &stubFactory{name: "submit"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "submit")
	})
}
