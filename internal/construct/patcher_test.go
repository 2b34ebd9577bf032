package construct

import (
	"strings"
	"testing"

	"github.com/Tomas-vilte/MateIntake/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConstruct = `name: __NAME__
version: __VERSION__
installer_type: all
welcome_image: placeholder.png
header_image: placeholder.png
icon_image: placeholder.png
post_install: scripts/post_install.sh
post_install: scripts/post_install.bat
pre_uninstall: scripts/pre_uninstall.sh
extra_files:
  - environment.yml: demo/environment.yml
`

func TestCaptureDuplicateBlocks(t *testing.T) {
	t.Run("should capture every line for a repeated key", func(t *testing.T) {
		lines := CaptureDuplicateBlocks(sampleConstruct, "post_install")

		require.Len(t, lines, 2)
		assert.Equal(t, "post_install: scripts/post_install.sh", lines[0])
		assert.Equal(t, "post_install: scripts/post_install.bat", lines[1])
	})

	t.Run("should preserve original indentation", func(t *testing.T) {
		text := "steps:\n  post_install: a.sh\n  post_install: b.sh\n"
		lines := CaptureDuplicateBlocks(text, "post_install")

		require.Len(t, lines, 2)
		assert.Equal(t, "  post_install: a.sh", lines[0])
	})

	t.Run("should return nothing when the key is absent", func(t *testing.T) {
		assert.Empty(t, CaptureDuplicateBlocks("name: demo\n", "post_install"))
	})
}

func TestParse(t *testing.T) {
	t.Run("should yield an empty mapping for empty text", func(t *testing.T) {
		doc, err := Parse("")
		require.NoError(t, err)

		out, err := doc.Serialize()
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("should fail on malformed yaml", func(t *testing.T) {
		_, err := Parse("name: [unclosed\n")
		assert.Error(t, err)
	})
}

func TestMergeExtraFiles(t *testing.T) {
	newEntries := []models.ExtraFileEntry{
		{Source: "app/logo/demo.png", Dest: "demo/demo.png"},
		{Source: "app/logo/demo.ico", Dest: "demo/demo.ico"},
	}

	t.Run("should append new entries sorted by source", func(t *testing.T) {
		doc, err := Parse(sampleConstruct)
		require.NoError(t, err)

		doc.MergeExtraFiles(newEntries)

		out, err := doc.Serialize()
		require.NoError(t, err)

		icoIdx := strings.Index(out, "app/logo/demo.ico")
		pngIdx := strings.Index(out, "app/logo/demo.png")
		envIdx := strings.Index(out, "environment.yml")
		require.NotEqual(t, -1, icoIdx)
		require.NotEqual(t, -1, pngIdx)
		require.NotEqual(t, -1, envIdx)
		assert.Less(t, icoIdx, pngIdx)
		assert.Less(t, pngIdx, envIdx)
	})

	t.Run("should be idempotent", func(t *testing.T) {
		docOnce, err := Parse(sampleConstruct)
		require.NoError(t, err)
		docOnce.MergeExtraFiles(newEntries)
		once, err := docOnce.Serialize()
		require.NoError(t, err)

		docTwice, err := Parse(sampleConstruct)
		require.NoError(t, err)
		docTwice.MergeExtraFiles(newEntries)
		docTwice.MergeExtraFiles(newEntries)
		twice, err := docTwice.Serialize()
		require.NoError(t, err)

		assert.Equal(t, once, twice)
	})

	t.Run("should skip entries whose source or dest already exists", func(t *testing.T) {
		doc, err := Parse(sampleConstruct)
		require.NoError(t, err)

		doc.MergeExtraFiles([]models.ExtraFileEntry{
			{Source: "environment.yml", Dest: "other/environment.yml"},
			{Source: "other.yml", Dest: "demo/environment.yml"},
		})

		out, err := doc.Serialize()
		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(out, "environment.yml: demo/environment.yml"))
		assert.NotContains(t, out, "other/environment.yml")
		assert.NotContains(t, out, "other.yml")
	})

	t.Run("should create the table when absent", func(t *testing.T) {
		doc, err := Parse("name: demo\n")
		require.NoError(t, err)

		doc.MergeExtraFiles(newEntries)

		out, err := doc.Serialize()
		require.NoError(t, err)
		assert.Contains(t, out, "extra_files:")
		assert.Contains(t, out, "app/logo/demo.png: demo/demo.png")
	})

	t.Run("should preserve non-mapping entries as opaque items", func(t *testing.T) {
		text := "extra_files:\n  - plain_file.txt\n  - environment.yml: demo/environment.yml\n"
		doc, err := Parse(text)
		require.NoError(t, err)

		doc.MergeExtraFiles(newEntries)

		out, err := doc.Serialize()
		require.NoError(t, err)
		assert.Contains(t, out, "- plain_file.txt")

		// Los mappings van primero, los items opacos después.
		assert.Less(t, strings.Index(out, "environment.yml"), strings.Index(out, "plain_file.txt"))
	})
}

func TestRemoveEmptyImageKeys(t *testing.T) {
	t.Run("should drop keys without a provided upload", func(t *testing.T) {
		doc, err := Parse(sampleConstruct)
		require.NoError(t, err)

		doc.RemoveEmptyImageKeys(map[string]bool{"icon_image": true})

		out, err := doc.Serialize()
		require.NoError(t, err)
		assert.NotContains(t, out, "welcome_image")
		assert.NotContains(t, out, "header_image")
		assert.Contains(t, out, "icon_image")
	})
}

func TestSetImageKey(t *testing.T) {
	t.Run("should overwrite an existing key in place", func(t *testing.T) {
		doc, err := Parse(sampleConstruct)
		require.NoError(t, err)

		doc.SetImageKey("icon_image", "app/logo/demo.png")

		out, err := doc.Serialize()
		require.NoError(t, err)
		assert.Contains(t, out, "icon_image: app/logo/demo.png")
		assert.NotContains(t, out, "icon_image: placeholder.png")
	})

	t.Run("should create the key when missing", func(t *testing.T) {
		doc, err := Parse("name: demo\n")
		require.NoError(t, err)

		doc.SetImageKey("icon_image", "app/logo/demo.png")

		out, err := doc.Serialize()
		require.NoError(t, err)
		assert.Contains(t, out, "icon_image: app/logo/demo.png")
	})
}

func TestSerializeRoundTrip(t *testing.T) {
	t.Run("should keep duplicated keys textually identical", func(t *testing.T) {
		doc, err := Parse(sampleConstruct)
		require.NoError(t, err)

		doc.RemoveEmptyImageKeys(map[string]bool{"icon_image": true})
		doc.SetImageKey("icon_image", "app/logo/demo.png")
		doc.MergeExtraFiles([]models.ExtraFileEntry{
			{Source: "app/logo/demo.png", Dest: "demo/demo.png"},
		})

		out, err := doc.Serialize()
		require.NoError(t, err)

		assert.Equal(t, 2, strings.Count(out, "post_install:"))
		assert.Equal(t, 1, strings.Count(out, "pre_uninstall:"))
		assert.Contains(t, out, "post_install: scripts/post_install.sh")
		assert.Contains(t, out, "post_install: scripts/post_install.bat")
		assert.Contains(t, out, "pre_uninstall: scripts/pre_uninstall.sh")
	})

	t.Run("should append captured blocks when the key does not survive serialization", func(t *testing.T) {
		// Documento vacío salvo las claves repetidas: el colapso deja una
		// aparición, que el splice reemplaza por las originales.
		text := "post_install: a.sh\npost_install: b.sh\n"
		doc, err := Parse(text)
		require.NoError(t, err)

		out, err := doc.Serialize()
		require.NoError(t, err)
		assert.Contains(t, out, "post_install: a.sh")
		assert.Contains(t, out, "post_install: b.sh")
		assert.Equal(t, 2, strings.Count(out, "post_install:"))
	})

	t.Run("should preserve author key order", func(t *testing.T) {
		doc, err := Parse("zeta: 1\nalpha: 2\nmiddle: 3\n")
		require.NoError(t, err)

		out, err := doc.Serialize()
		require.NoError(t, err)

		assert.Less(t, strings.Index(out, "zeta"), strings.Index(out, "alpha"))
		assert.Less(t, strings.Index(out, "alpha"), strings.Index(out, "middle"))
	})
}
