package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Tomas-vilte/MateIntake/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "construct.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestApply(t *testing.T) {
	t.Run("should replace every occurrence of the token", func(t *testing.T) {
		path := writeFixture(t, "name: __NAME__\nwelcome: Hola __NAME__\n")

		err := Apply([]models.Substitution{
			{Token: "__NAME__", File: path, Value: "demo-lab"},
		})
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "name: demo-lab\nwelcome: Hola demo-lab\n", string(data))
	})

	t.Run("should trim surrounding whitespace from the value", func(t *testing.T) {
		path := writeFixture(t, "version: __VERSION__\n")

		err := Apply([]models.Substitution{
			{Token: "__VERSION__", File: path, Value: "  1.2.3  "},
		})
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "version: 1.2.3\n", string(data))
	})

	t.Run("should tolerate a token that never appears", func(t *testing.T) {
		path := writeFixture(t, "name: fixed\n")

		err := Apply([]models.Substitution{
			{Token: "__MISSING__", File: path, Value: "x"},
		})
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "name: fixed\n", string(data))
	})

	t.Run("should fail when the target file does not exist", func(t *testing.T) {
		err := Apply([]models.Substitution{
			{Token: "__NAME__", File: filepath.Join(t.TempDir(), "missing.yaml"), Value: "x"},
		})
		assert.Error(t, err)
	})

	t.Run("should apply the manifest in order across files", func(t *testing.T) {
		first := writeFixture(t, "a: __A__\n")
		second := filepath.Join(t.TempDir(), "menu.json")
		require.NoError(t, os.WriteFile(second, []byte(`{"name": "__A__"}`), 0644))

		err := Apply([]models.Substitution{
			{Token: "__A__", File: first, Value: "uno"},
			{Token: "__A__", File: second, Value: "dos"},
		})
		require.NoError(t, err)

		dataFirst, _ := os.ReadFile(first)
		dataSecond, _ := os.ReadFile(second)
		assert.Equal(t, "a: uno\n", string(dataFirst))
		assert.Equal(t, `{"name": "dos"}`, string(dataSecond))
	})
}
