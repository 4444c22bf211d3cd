package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testRenames = map[string]string{
	"picture":    "person",
	"old":        "new",
	"admin-card": "card",
}

func rewriteScript(t *testing.T, renames map[string]string, in string) string {
	t.Helper()
	r := New(renames, zap.NewNop())
	out, err := Apply("test.jsx", []byte(in), r.Script([]byte(in)))
	require.NoError(t, err)
	return string(out)
}

func TestScript(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "quoted className",
			in:   `<div className="picture small">`,
			want: `<div className="person small">`,
		},
		{
			name: "whitespace preserved",
			in:   "<div className='a  picture\n  b'>",
			want: "<div className='a  person\n  b'>",
		},
		{
			name: "boundary safe",
			in:   `<div className="picture-detail xpicture">`,
			want: `<div className="picture-detail xpicture">`,
		},
		{
			name: "class attribute in markup string",
			in:   `const s = '<div class="old x">';`,
			want: `const s = '<div class="new x">';`,
		},
		{
			name: "template literal",
			in:   "<a className={`picture ${on ? 'old' : 'b'} old-${size} ${y}old`} />",
			want: "<a className={`person ${on ? 'new' : 'b'} old-${size} ${y}old`} />",
		},
		{
			name: "expression strings and object keys",
			in:   `<a className={clsx('old', { picture: on, 'admin-card': off })} />`,
			want: `<a className={clsx('new', { person: on, 'card': off })} />`,
		},
		{
			name: "ternary identifiers are not keys",
			in:   `<a className={on ? picture : other} />`,
			want: `<a className={on ? picture : other} />`,
		},
		{
			name: "comments in expressions",
			in:   "<a className={/* 'old' */ 'picture' // 'old'\n} />",
			want: "<a className={/* 'old' */ 'person' // 'old'\n} />",
		},
		{
			name: "nested template in expression",
			in:   "<a className={cx(`old ${`picture`}`)} />",
			want: "<a className={cx(`new ${`person`}`)} />",
		},
		{
			name: "class list calls",
			in:   `el.classList.add('old', "picture"); $(x).addClass("old"); el.classList.item('old');`,
			want: `el.classList.add('new', "person"); $(x).addClass("new"); el.classList.item('old');`,
		},
		{
			name: "not an attribute",
			in:   `const f = className => 'old'; if (className == 'old') {}`,
			want: `const f = className => 'old'; if (className == 'old') {}`,
		},
		{
			name: "prefixed attribute names",
			in:   `<div data-class="old" myclassName="old">`,
			want: `<div data-class="old" myclassName="old">`,
		},
		{
			name: "plain strings elsewhere are untouched",
			in:   `const label = 'old';`,
			want: `const label = 'old';`,
		},
		{
			name: "unterminated expression",
			in:   `<a className={cx('old'`,
			want: `<a className={cx('new'`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rewriteScript(t, testRenames, tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, rewriteScript(t, testRenames, got), "second pass must be a no-op")
		})
	}
}

func TestScriptEmptyMap(t *testing.T) {
	r := New(nil, zap.NewNop())
	assert.Empty(t, r.Script([]byte(`<div className="old">`)))
	assert.Empty(t, r.HTML([]byte(`<div class="old">`)))
}

func TestScriptMatches(t *testing.T) {
	in := `<div className="a old">`
	matches := New(testRenames, nil).Script([]byte(in))
	require.Len(t, matches, 1)
	assert.Equal(t, "old", matches[0].Old)
	assert.Equal(t, "new", matches[0].New)
	assert.Equal(t, "old", in[matches[0].Span.Start:matches[0].Span.End])
}

func TestHTML(t *testing.T) {
	in := `<!DOCTYPE html>
<div class="old picture" data-class="old"><p CLASS='x old'>old</p><img class=old />
<script>
el.classList.add('old');
</script>
<!-- <b class="old"> --></div>`

	want := `<!DOCTYPE html>
<div class="new person" data-class="old"><p CLASS='x new'>old</p><img class=new />
<script>
el.classList.add('new');
</script>
<!-- <b class="old"> --></div>`

	r := New(testRenames, zap.NewNop())
	out, err := Apply("index.html", []byte(in), r.HTML([]byte(in)))
	require.NoError(t, err)
	assert.Equal(t, want, string(out))

	assert.Empty(t, r.HTML(out))
}

func TestHTMLClassInsideOtherAttribute(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "double quoted title",
			in:   `<div title="a class=picture" class="old">x</div>`,
			want: `<div title="a class=picture" class="new">x</div>`,
		},
		{
			name: "single quoted title",
			in:   `<div title='class="old"' class=picture>x</div>`,
			want: `<div title='class="old"' class=person>x</div>`,
		},
		{
			name: "bare attribute before class",
			in:   `<input disabled class="old"/>`,
			want: `<input disabled class="new"/>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(testRenames, zap.NewNop())
			out, err := Apply("index.html", []byte(tt.in), r.HTML([]byte(tt.in)))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestScriptClasses(t *testing.T) {
	in := `<a className={on ? 'primary' : ''} />
<b className={clsx({active: on}, "x y")} />
el.classList.toggle('open');
const label = 'ignored';`

	assert.Equal(t, []string{"active", "open", "primary", "x", "y"}, ScriptClasses([]byte(in)))
}

func TestHTMLClasses(t *testing.T) {
	in := `<div title="class=nope" class="a b"><script>el.classList.add('c')</script></div>`

	assert.Equal(t, []string{"a", "b", "c"}, HTMLClasses([]byte(in)))
}
