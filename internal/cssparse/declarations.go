package cssparse

import (
	"sort"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Declaration is one normalized property/value pair.
type Declaration struct {
	Property string
	Value    string
}

// Declarations is an ordered property map. Properties keep the position of
// their first insertion; a later Set replaces the value in place.
type Declarations struct {
	list  []Declaration
	index map[string]int
}

// ParseDeclarations normalizes a rule body.
func ParseDeclarations(body string) Declarations {
	var decls Declarations

	lexer := css.NewLexer(parse.NewInputString(body))
	var current strings.Builder
	depth := 0

	for {
		tt, text := lexer.Next()
		switch tt {
		case css.ErrorToken:
			decls.addRaw(current.String())
			return decls
		case css.CommentToken:
			continue
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			if depth > 0 {
				depth--
			}
		case css.SemicolonToken:
			if depth == 0 {
				decls.addRaw(current.String())
				current.Reset()
				continue
			}
		}
		current.Write(text)
	}
}

func (d *Declarations) addRaw(raw string) {
	prop, value, ok := strings.Cut(raw, ":")
	if !ok {
		return
	}
	prop = strings.ToLower(strings.TrimSpace(prop))
	value = NormalizeValue(value)
	if prop == "" || value == "" {
		return
	}
	d.Set(prop, value)
}

// Set stores value for prop, keeping the original position if prop exists.
func (d *Declarations) Set(prop, value string) {
	if d.index == nil {
		d.index = make(map[string]int)
	}
	if i, ok := d.index[prop]; ok {
		d.list[i].Value = value
		return
	}
	d.index[prop] = len(d.list)
	d.list = append(d.list, Declaration{Property: prop, Value: value})
}

// Get returns the value of prop.
func (d Declarations) Get(prop string) (string, bool) {
	i, ok := d.index[prop]
	if !ok {
		return "", false
	}
	return d.list[i].Value, true
}

// Len returns the number of properties, custom properties included.
func (d Declarations) Len() int {
	return len(d.list)
}

// List returns the declarations in insertion order.
func (d Declarations) List() []Declaration {
	out := make([]Declaration, len(d.list))
	copy(out, d.list)
	return out
}

// Clone returns an independent copy.
func (d Declarations) Clone() Declarations {
	var out Declarations
	for _, decl := range d.list {
		out.Set(decl.Property, decl.Value)
	}
	return out
}

// Merge applies other on top of d, last value wins.
func (d *Declarations) Merge(other Declarations) {
	for _, decl := range other.list {
		d.Set(decl.Property, decl.Value)
	}
}

// Equal reports whether both maps hold the same pairs, ignoring order.
func (d Declarations) Equal(other Declarations) bool {
	if len(d.list) != len(other.list) {
		return false
	}
	for _, decl := range d.list {
		v, ok := other.Get(decl.Property)
		if !ok || v != decl.Value {
			return false
		}
	}
	return true
}

// Signature returns the sorted prop:value pairs joined by '|'. Custom
// properties are left out and values are lowercased.
func (d Declarations) Signature() string {
	pairs := d.signaturePairs()
	sort.Strings(pairs)
	return strings.Join(pairs, "|")
}

// SignatureLen returns the number of properties that take part in the signature.
func (d Declarations) SignatureLen() int {
	return len(d.signaturePairs())
}

func (d Declarations) signaturePairs() []string {
	pairs := make([]string, 0, len(d.list))
	for _, decl := range d.list {
		if IsCustomProperty(decl.Property) {
			continue
		}
		pairs = append(pairs, decl.Property+":"+strings.ToLower(decl.Value))
	}
	return pairs
}

// IsCustomProperty reports whether prop is a --custom property.
func IsCustomProperty(prop string) bool {
	return strings.HasPrefix(prop, "--")
}

// NormalizeValue collapses whitespace, writes commas as ", " and removes
// spaces around '/'. Quoted strings are copied unchanged.
func NormalizeValue(value string) string {
	var b strings.Builder
	space, comma, glue := false, false, false

	emit := func(s string) {
		switch {
		case comma:
			b.WriteByte(' ')
		case space && !glue && b.Len() > 0:
			b.WriteByte(' ')
		}
		b.WriteString(s)
		space, comma, glue = false, false, false
	}

	for i := 0; i < len(value); {
		c := value[i]
		switch {
		case isSpace(c):
			space = true
			i++
		case c == ',':
			b.WriteByte(',')
			space, comma, glue = false, true, false
			i++
		case c == '/':
			b.WriteByte('/')
			space, comma, glue = false, false, true
			i++
		case c == '"' || c == '\'':
			end, _ := skipString([]byte(value), i, len(value))
			emit(value[i:end])
			i = end
		default:
			emit(value[i : i+1])
			i++
		}
	}

	return strings.TrimSpace(strings.TrimRight(b.String(), ";"))
}
