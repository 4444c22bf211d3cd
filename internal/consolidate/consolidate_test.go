package consolidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yacobolo/cssconsolidate/internal/cssparse"
)

func rulesOf(t *testing.T, css string) []cssparse.StyleRule {
	t.Helper()
	return cssparse.NewParser(zap.NewNop()).Parse("test.css", []byte(css)).Rules()
}

func analyze(t *testing.T, css string, mutate func(*Options)) *Analysis {
	t.Helper()
	opts := DefaultOptions()
	opts.Logger = zap.NewNop()
	if mutate != nil {
		mutate(&opts)
	}
	return Analyze(rulesOf(t, css), opts)
}

func TestAnalyzeGroups(t *testing.T) {
	tests := []struct {
		name    string
		css     string
		mutate  func(*Options)
		groups  [][]string
		renames RenameMap
	}{
		{
			name:    "identical bodies group",
			css:     ".person { display: flex; gap: 8px; }\n.picture { gap: 8px; display: flex; }",
			groups:  [][]string{{"person", "picture"}},
			renames: RenameMap{"picture": "person"},
		},
		{
			name:    "escaped names are grouped unescaped",
			css:     ".sm\\:flex { display: flex; }\n.d-flex { display: flex; }",
			groups:  [][]string{{"d-flex", "sm:flex"}},
			renames: RenameMap{"sm:flex": "d-flex"},
		},
		{
			name:    "modifiers must match",
			css:     ".a:hover { color: red; }\n.b { color: red; }",
			renames: RenameMap{},
		},
		{
			name:    "matching modifiers group",
			css:     ".admin-card:hover { color: red; }\n.card:hover { color: red; }",
			groups:  [][]string{{"admin-card", "card"}},
			renames: RenameMap{"admin-card": "card"},
		},
		{
			name:    "contexts never mix",
			css:     ".x { color: red; }\n@media (max-width:600px) { .y { color: red; } }",
			renames: RenameMap{},
		},
		{
			name:    "custom properties are ignored by the signature",
			css:     ".a { color: red; --tone: 1; }\n.b { color: red; }",
			groups:  [][]string{{"a", "b"}},
			renames: RenameMap{"b": "a"},
		},
		{
			name:    "only custom properties never define",
			css:     ".a { --x: 1; }\n.b { --x: 1; }",
			renames: RenameMap{},
		},
		{
			name:    "min properties threshold",
			css:     ".a { color: red; }\n.b { color: red; }",
			mutate:  func(o *Options) { o.MinProperties = 2 },
			renames: RenameMap{},
		},
		{
			name: "chains merge transitively",
			css: `.aa { color: red; }
.bb { color: red; }
.bb:hover { color: blue; }
.cc:hover { color: blue; }`,
			groups:  [][]string{{"aa", "bb", "cc"}},
			renames: RenameMap{"bb": "aa", "cc": "aa"},
		},
		{
			name: "non-clique skipped without transitivity",
			css: `.aa { color: red; }
.bb { color: red; }
.bb:hover { color: blue; }
.cc:hover { color: blue; }`,
			mutate:  func(o *Options) { o.Transitive = false },
			renames: RenameMap{},
		},
		{
			name:    "same name twice is not a group",
			css:     ".a { color: red; }\n.a { color: red; }",
			renames: RenameMap{},
		},
		{
			name:    "nested rules are ignored",
			css:     ".a { color: red; &:hover { color: blue; } }\n.b { color: red; }",
			renames: RenameMap{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := analyze(t, tt.css, tt.mutate)
			var groups [][]string
			for _, g := range a.Groups {
				groups = append(groups, g.Members)
			}
			assert.Equal(t, tt.groups, groups)
			assert.Equal(t, tt.renames, a.Renames)
		})
	}
}

func TestAnalyzeWarnsOnNonClique(t *testing.T) {
	a := analyze(t, ".aa{color:red}.bb{color:red}.bb:hover{color:blue}.cc:hover{color:blue}", func(o *Options) {
		o.Transitive = false
	})
	require.Len(t, a.Warnings, 1)
	assert.Contains(t, a.Warnings[0], "aa and cc never share a definition")
}

func TestGroupRepresentatives(t *testing.T) {
	a := analyze(t, `.zeta { color: red; }
.beta { color: red; }
.zeta:hover { color: blue; }
.beta:hover { color: blue; }`, nil)

	require.Len(t, a.Groups, 1)
	g := a.Groups[0]
	assert.Equal(t, "beta", g.Canonical)
	assert.Len(t, g.Definitions, 4)
	require.Len(t, g.Representatives, 2)
	assert.Equal(t, "beta", g.Representatives[""].Name)
	assert.Equal(t, "beta", g.Representatives[":hover"].Name)
	assert.Equal(t, []string{"zeta"}, g.Aliases())
}

func TestAnalyzeIsStableAfterRename(t *testing.T) {
	a := analyze(t, ".person { display: flex; }\n.person { display: flex; }", nil)
	assert.Empty(t, a.Renames)
	assert.Empty(t, a.Groups)
}

func TestCanonicalName(t *testing.T) {
	excluded := DefaultExcludedPrefixes()
	utility := DefaultUtilityPrefixes()

	tests := []struct {
		name  string
		names []string
		want  string
	}{
		{"shortest", []string{"picture", "person"}, "person"},
		{"scoped prefix loses", []string{"admin-card", "card"}, "card"},
		{"all scoped falls back", []string{"admin-x", "admin-card"}, "admin-x"},
		{"digits lose", []string{"mt2", "spacer"}, "spacer"},
		{"utility wins over length", []string{"row", "flex-row"}, "flex-row"},
		{"lexicographic tie break", []string{"bb", "aa"}, "aa"},
		{"scoped excluded before digits", []string{"admin-box", "box2"}, "box2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalName(tt.names, excluded, utility))
		})
	}
}

func TestRenameMapSorted(t *testing.T) {
	m := RenameMap{"b": "a", "c": "a"}
	assert.Equal(t, []Rename{{Old: "b", New: "a"}, {Old: "c", New: "a"}}, m.Sorted())
}
