package labels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorKnownLabels(t *testing.T) {
	for _, e := range All() {
		assert.Equal(t, e.Color, Color(e.Label), e.Label)
		c, ok := Lookup(e.Label)
		assert.True(t, ok, e.Label)
		assert.Equal(t, e.Color, c)
	}
}

func TestColorFallback(t *testing.T) {
	for _, label := range []string{"", "PER", "ORG", "name", "UNKNOWN-THING"} {
		assert.Equal(t, Fallback, Color(label), label)
		_, ok := Lookup(label)
		assert.False(t, ok, label)
	}
}

func TestAllDeclarationOrder(t *testing.T) {
	all := All()
	require.Len(t, all, Len())
	assert.Equal(t, Entry{"NAME", "#e74c3c"}, all[0])
	assert.Equal(t, Entry{"SURNAME", "#c0392b"}, all[1])
	assert.Equal(t, Entry{"SECRET", "#f44336"}, all[len(all)-1])

	names := Names()
	for i, e := range all {
		assert.Equal(t, e.Label, names[i])
	}

	// Repeated calls keep the same order.
	assert.Equal(t, all, All())
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	all[0].Color = "#000000"
	assert.Equal(t, "#e74c3c", Color("NAME"))
}

func TestLabelsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, n := range Names() {
		assert.False(t, seen[n], "duplicate label %s", n)
		seen[n] = true
	}
	assert.Equal(t, 25, Len())
}

func TestTint(t *testing.T) {
	assert.Equal(t, "#e74c3c22", Tint("#e74c3c"))
	assert.Equal(t, "#88888822", Tint(Fallback))
}

func TestRGB(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b int
		ok      bool
	}{
		{"#e74c3c", 0xe7, 0x4c, 0x3c, true},
		{"#888", 0x88, 0x88, 0x88, true},
		{"#ffffff", 255, 255, 255, true},
		{"e74c3c", 0, 0, 0, false},
		{"#zzzzzz", 0, 0, 0, false},
		{"", 0, 0, 0, false},
	}
	for _, tt := range tests {
		r, g, b, ok := RGB(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.Equal(t, []int{tt.r, tt.g, tt.b}, []int{r, g, b}, tt.in)
		}
	}
}
