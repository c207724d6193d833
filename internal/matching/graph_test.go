package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGraph_Implied(t *testing.T) {
	g := DefaultGraph()

	assert.Equal(t, []string{"JavaScript", "HTML", "CSS", "JSX"}, g.Implied("React"))
	assert.Contains(t, g.Implied("Docker"), "DevOps")
	assert.Nil(t, g.Implied("COBOL"))
}

func TestGraph_ImpliedAbsent(t *testing.T) {
	g := DefaultGraph()

	tests := []struct {
		name     string
		present  []string
		expected []string
	}{
		{
			name:     "single skill expands one hop",
			present:  []string{"React"},
			expected: []string{"JavaScript", "HTML", "CSS", "JSX"},
		},
		{
			name:     "already-present skills excluded",
			present:  []string{"React", "JavaScript", "HTML"},
			expected: []string{"CSS", "JSX"},
		},
		{
			name:     "duplicates across sources collapse",
			present:  []string{"React", "Vue"},
			expected: []string{"JavaScript", "HTML", "CSS", "JSX"},
		},
		{
			name:     "unknown skill yields nothing",
			present:  []string{"COBOL"},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, g.ImpliedAbsent(tt.present))
		})
	}
}

func TestGraph_ImpliedAbsent_OneHopOnly(t *testing.T) {
	g := DefaultGraph()

	// Next.js implies React; React's own implications need a second hop
	// and must not appear.
	implied := g.ImpliedAbsent([]string{"Next.js"})
	assert.Contains(t, implied, "React")
	assert.NotContains(t, implied, "JSX")
}

func TestGraph_ExpandCycleSafe(t *testing.T) {
	g := NewGraph(
		map[string][]string{
			"a": {"b"},
			"b": {"a", "c"},
		},
		nil, nil,
	)

	assert.Equal(t, []string{"a", "b", "c"}, g.expand([]string{"a"}))
}

func TestGraph_Aliases(t *testing.T) {
	g := DefaultGraph()

	assert.Equal(t, []string{"MongoDB", "Express", "React", "Node.js"}, g.AliasComponents("MERN"))
	assert.Nil(t, g.AliasComponents("NOPE"))
	assert.Equal(t, "MERN", g.AliasNames()[0])
}

func TestGraph_AliasGroupFor(t *testing.T) {
	g := DefaultGraph()

	alias, components, ok := g.AliasGroupFor("Express")
	assert.True(t, ok)
	assert.Equal(t, "MERN", alias)
	assert.Contains(t, components, "Node.js")

	_, _, ok = g.AliasGroupFor("COBOL")
	assert.False(t, ok)
}

func TestNewGraph_CopiesInputs(t *testing.T) {
	relationships := map[string][]string{"a": {"b"}}
	g := NewGraph(relationships, nil, nil)

	relationships["a"][0] = "mutated"
	assert.Equal(t, []string{"b"}, g.Implied("a"))
}
