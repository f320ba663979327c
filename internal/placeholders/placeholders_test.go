package placeholders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVars(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"none", "plain text", nil},
		{"single", "Say hello to {name}", []string{"name"}},
		{"order of first appearance", "{greeting}, {name}! Bye {name}.", []string{"greeting", "name"}},
		{"underscore and digits", "{first_name} {line2}", []string{"first_name", "line2"}},
		{"leading digit is not a variable", "{2fast}", nil},
		{"unclosed brace ignored", "hello {name", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Vars(tt.text))
		})
	}
}

func TestRender(t *testing.T) {
	out, err := Render("Say {greeting} to {name}", map[string]string{
		"greeting": "hi",
		"name":     "Sam",
	})
	require.NoError(t, err)
	assert.Equal(t, "Say hi to Sam", out)
}

func TestRenderIgnoresExtraValues(t *testing.T) {
	out, err := Render("Hello {name}", map[string]string{
		"name":   "Sam",
		"unused": "x",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello Sam", out)
}

func TestRenderMissingValues(t *testing.T) {
	_, err := Render("{a} {b} {a}", map[string]string{"b": "2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a")
	assert.NotContains(t, err.Error(), "b")
}

func TestRenderRepeatedVariable(t *testing.T) {
	out, err := Render("{name} and {name}", map[string]string{"name": "Sam"})
	require.NoError(t, err)
	assert.Equal(t, "Sam and Sam", out)
}
