package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name string
		list string
		want []string
	}{
		{"single", ".a", []string{".a"}},
		{"plain commas", ".a, .b,.c", []string{".a", " .b", ".c"}},
		{"comma in function", ".a:is(.b, .c), .d", []string{".a:is(.b, .c)", " .d"}},
		{"comma in attribute", `[data-x="1,2"], .d`, []string{`[data-x="1,2"]`, " .d"}},
		{"comma in string", `.a[title='x,y'],.b`, []string{`.a[title='x,y']`, ".b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitList(tt.list))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, ".a .c, .b", Normalize(" .b ,  .a   .c "))
	assert.Equal(t, Normalize(".b,.a"), Normalize(".a, .b"))
	assert.Equal(t, ".a", Normalize(".a, "))
}

func TestClassNames(t *testing.T) {
	tests := []struct {
		sel  string
		want []string
	}{
		{".a .b:hover", []string{"a", "b"}},
		{".x.y:not(.z)", []string{"x", "y", "z"}},
		{`.a[data-x=".b"]`, []string{"a"}},
		{`.a\.b`, []string{"a.b"}},
		{`.sm\:flex:hover`, []string{"sm:flex"}},
		{`.\31 0 .b`, []string{"10", "b"}},
		{"div > p", nil},
	}

	for _, tt := range tests {
		t.Run(tt.sel, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassNames(tt.sel))
		})
	}
}

func TestRename(t *testing.T) {
	renames := map[string]string{"person": "picture", "old": "new", "sm:old": "new", "wide": "md:wide"}

	tests := []struct {
		name     string
		sel      string
		want     string
		replaced []string
	}{
		{"boundary", ".person, .person-detail", ".picture, .person-detail", []string{"person"}},
		{"compound", ".x.old:hover", ".x.new:hover", []string{"old"}},
		{"inside not", ".old:not(.old)", ".new:not(.new)", []string{"old"}},
		{"attribute value untouched", `.old[data-x=".old"]`, `.new[data-x=".old"]`, []string{"old"}},
		{"escaped dot", `.a\.old`, `.a\.old`, nil},
		{"non ascii continuation", ".oldé", ".oldé", nil},
		{"underscore continuation", ".old_x", ".old_x", nil},
		{"no match", ".other", ".other", nil},
		{"escaped source name", `.x, .sm\:old:hover`, ".x, .new:hover", []string{"sm:old"}},
		{"escaped target name", ".wide", `.md\:wide`, []string{"wide"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, replaced := Rename(tt.sel, renames)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.replaced, replaced)

			again, _ := Rename(got, renames)
			assert.Equal(t, got, again, "rename must be idempotent")
		})
	}
}

func TestRenameEmptyMap(t *testing.T) {
	got, replaced := Rename(".a .b", nil)
	assert.Equal(t, ".a .b", got)
	assert.Nil(t, replaced)
}

func TestRemoveClasses(t *testing.T) {
	dead := map[string]bool{"dead": true, "sm:dead": true}

	tests := []struct {
		name    string
		list    string
		want    string
		removed bool
	}{
		{"middle part", ".a, .dead, .b", ".a, .b", true},
		{"only part", ".dead:hover", "", true},
		{"multiline list", ".a,\n  .dead,\n  .b", ".a,\n  .b", true},
		{"descendant use", ".a .dead, .b", ".b", true},
		{"boundary", ".dead-x, .a", ".dead-x, .a", false},
		{"nothing dead", ".a", ".a", false},
		{"escaped dead name", `.a, .sm\:dead`, ".a", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, removed := RemoveClasses(tt.list, dead)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.removed, removed)
		})
	}
}

func TestDecomposeSegment(t *testing.T) {
	tests := []struct {
		part string
		base string
		mods []string
	}{
		{".btn", "btn", nil},
		{".btn:hover", "btn", []string{":hover"}},
		{".btn::before", "btn", []string{"::before"}},
		{".btn:not(.disabled)", "btn", []string{":not(.disabled)"}},
		{".btn.small", "btn", []string{".small"}},
		{".btn#main", "btn", []string{"#main"}},
		{`.btn[data-x="y"]`, "btn", []string{`[data-x="y"]`}},
		{".card img", "card", []string{" img"}},
		{".card .child", "card", []string{" .child"}},
		{".list > li", "list", []string{">li"}},
		{".a + p", "a", []string{"+p"}},
		{".a ~ p", "a", []string{"~p"}},
		{".card:hover .title.big", "card", []string{":hover", " .title.big"}},
		{"  .a  ", "a", nil},
		{".a%b", "a", []string{"%b"}},
		{`.sm\:flex:hover`, "sm:flex", []string{":hover"}},
	}

	for _, tt := range tests {
		t.Run(tt.part, func(t *testing.T) {
			seg, ok := DecomposeSegment(tt.part)
			require.True(t, ok)
			assert.Equal(t, tt.base, seg.Base)
			assert.Equal(t, tt.mods, seg.Modifiers)
		})
	}
}

func TestDecomposeSkipsNonClassSegments(t *testing.T) {
	for _, part := range []string{"div .a", "#x .a", "*", "[data-x] .a", ":root"} {
		_, ok := DecomposeSegment(part)
		assert.False(t, ok, part)
	}

	segs := Decompose(".a, div, .b:hover")
	require.Len(t, segs, 2)
	assert.Equal(t, "a", segs[0].Base)
	assert.Equal(t, "b", segs[1].Base)
	assert.Equal(t, ":hover", segs[1].ModifierSignature())
}

func TestModifierSignatureIsOrderInsensitive(t *testing.T) {
	assert.Equal(t, ModifierSignature([]string{":hover", ".x"}), ModifierSignature([]string{".x", ":hover"}))
	assert.Equal(t, ".x|:hover", ModifierSignature([]string{":hover", ".x"}))
	assert.Equal(t, "", ModifierSignature(nil))
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{`sm\:flex`, "sm:flex"},
		{`w-1\/2`, "w-1/2"},
		{`\31 0`, "10"},
		{`\000031x`, "1x"},
		{`caf\e9`, "café"},
		{`\0`, "\uFFFD"},
		{`trailing\`, `trailing\`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, unescape(tt.in))
		})
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"d-flex", "d-flex"},
		{"sm:flex", `sm\:flex`},
		{"w-1/2", `w-1\/2`},
		{"1col", `\31 col`},
		{"-2x", `-\32 x`},
		{"café", "café"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := escape(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, unescape(got))
		})
	}
}

func TestDedupe(t *testing.T) {
	tests := []struct {
		name    string
		list    string
		want    string
		dropped bool
	}{
		{"renamed pair", ".person, .person", ".person", true},
		{"whitespace differences", ".a  .b,.c, .a .b", ".a  .b, .c", true},
		{"multiline list", ".a,\n  .b,\n  .a", ".a,\n  .b", true},
		{"inside function", ".a:is(.b, .b)", ".a:is(.b, .b)", false},
		{"distinct parts", ".a, .b", ".a, .b", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, dropped := Dedupe(tt.list)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.dropped, dropped)
		})
	}
}
