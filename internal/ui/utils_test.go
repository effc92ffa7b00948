package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"empty", "", 10, ""},
		{"short string", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"needs truncation", "hello world", 8, "hello w…"},
		{"one rune", "hello", 1, "…"},
		{"zero max", "hello", 0, "hello"},
		{"multibyte", "ünïcödé", 4, "ünï…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Truncate(tt.input, tt.maxLen))
		})
	}
}

func TestPanel(t *testing.T) {
	t.Run("basic panel", func(t *testing.T) {
		result := NewPanel("Title", "Content").Render()
		assert.Contains(t, result, "Title")
		assert.Contains(t, result, "Content")
	})

	t.Run("panel without title", func(t *testing.T) {
		result := NewPanel("", "Content only").Render()
		assert.Contains(t, result, "Content only")
	})

	t.Run("custom color and width", func(t *testing.T) {
		result := NewPanel("Info", "Details").WithBorderColor(ColorCyan).WithWidth(30).Render()
		assert.Contains(t, result, "Info")
		assert.Contains(t, result, "Details")
	})

	t.Run("error panel", func(t *testing.T) {
		assert.Contains(t, RenderErrorPanel("Error", "boom"), "boom")
	})
}
