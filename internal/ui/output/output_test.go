package output_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/tasks/internal/ui/output"
)

func TestColorProfile_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, output.ColorProfile())
	assert.Equal(t, termenv.Ascii, output.ColorProfileANSI())
}

func TestColorProfileANSI(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	assert.Equal(t, termenv.ANSI, output.ColorProfileANSI())
}

func TestNew_WritesThrough(t *testing.T) {
	var buf bytes.Buffer
	out := output.New(&buf)

	_, _ = out.WriteString("plain")
	assert.Equal(t, "plain", buf.String())
}

func TestNew_NilWriter(t *testing.T) {
	assert.NotNil(t, output.New(nil))
}

func TestColorize(t *testing.T) {
	t.Run("ascii profile strips color", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		out := output.New(&bytes.Buffer{})
		assert.Equal(t, "hello", output.Colorize(out, "#22A06B", "hello"))
	})

	t.Run("ansi profile adds escape codes", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		out := output.NewWithProfile(&bytes.Buffer{}, output.ColorProfileANSI)
		got := output.Colorize(out, "#22A06B", "hello")
		assert.Contains(t, got, "hello")
		assert.NotEqual(t, "hello", got)
	})
}
