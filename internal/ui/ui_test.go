package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateActiveSpinner(t *testing.T) {
	t.Run("should report when no spinner is running", func(t *testing.T) {
		StopActiveSpinner()
		assert.False(t, UpdateActiveSpinner("mensaje"))
	})

	t.Run("should update the message of the running spinner", func(t *testing.T) {
		spin := NewSmartSpinner("inicial")
		spin.Start()
		defer spin.Stop()

		assert.True(t, UpdateActiveSpinner("clonando el repositorio"))
		assert.Contains(t, spin.spinner.Suffix, "clonando el repositorio")
	})

	t.Run("should clear the record once stopped", func(t *testing.T) {
		spin := NewSmartSpinner("inicial")
		spin.Start()
		spin.Stop()

		assert.False(t, UpdateActiveSpinner("mensaje"))
	})
}
