package consolidate

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/yacobolo/cssconsolidate/internal/cssparse"
)

// Options controls grouping and naming.
type Options struct {
	// MinProperties is the minimum number of signature properties a
	// definition needs to take part in grouping.
	MinProperties int
	// Transitive merges every connected component. When false, components
	// where some pair of names never shares a bucket are skipped.
	Transitive       bool
	ExcludedPrefixes []string
	UtilityPrefixes  []string
	Logger           *zap.Logger
}

// DefaultOptions returns the stock options.
func DefaultOptions() Options {
	return Options{
		MinProperties:    1,
		Transitive:       true,
		ExcludedPrefixes: DefaultExcludedPrefixes(),
		UtilityPrefixes:  DefaultUtilityPrefixes(),
	}
}

// Group is a family of interchangeable class names.
type Group struct {
	Canonical   string
	Members     []string
	Definitions []Definition
	// Representatives maps each modifier signature to the definition that
	// stands for it, preferring the canonical name's own definition.
	Representatives map[string]Definition
}

// Aliases returns the members that will be renamed.
func (g Group) Aliases() []string {
	aliases := make([]string, 0, len(g.Members)-1)
	for _, m := range g.Members {
		if m != g.Canonical {
			aliases = append(aliases, m)
		}
	}
	return aliases
}

// Analysis is the outcome of grouping a set of rules.
type Analysis struct {
	Definitions int
	Buckets     int
	Candidates  int
	Groups      []Group
	Renames     RenameMap
	Warnings    []string
}

// Analyze extracts definitions from rules, groups them and builds the
// rename map.
func Analyze(rules []cssparse.StyleRule, opts Options) *Analysis {
	defs := ExtractDefinitions(rules)
	a := BuildGroups(defs, opts)
	a.Renames = NewRenameMap(a.Groups)
	return a
}

type bucket struct {
	key   Key
	defs  []int
	names []string
}

// BuildGroups buckets definitions by key and merges buckets that share
// names. Groups are sorted by canonical name.
func BuildGroups(defs []Definition, opts Options) *Analysis {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("consolidate")

	minProps := opts.MinProperties
	if minProps < 1 {
		minProps = 1
	}

	a := &Analysis{Definitions: len(defs)}

	// 1. Exact-key buckets
	index := make(map[Key]*bucket)
	var buckets []*bucket
	for i, d := range defs {
		if d.Rule.Declarations.SignatureLen() < minProps {
			continue
		}
		key := d.Key()
		b, ok := index[key]
		if !ok {
			b = &bucket{key: key}
			index[key] = b
			buckets = append(buckets, b)
		}
		b.defs = append(b.defs, i)
		if !containsString(b.names, d.Name) {
			b.names = append(b.names, d.Name)
		}
	}
	a.Buckets = len(buckets)

	// 2. Union names that share a candidate bucket
	uf := newUnionFind()
	var candidates []*bucket
	for _, b := range buckets {
		if len(b.names) < 2 {
			continue
		}
		candidates = append(candidates, b)
		for _, name := range b.names[1:] {
			uf.union(b.names[0], name)
		}
	}
	a.Candidates = len(candidates)

	// 3. Collect components
	components := make(map[string][]*bucket)
	var roots []string
	for _, b := range candidates {
		root := uf.find(b.names[0])
		if _, ok := components[root]; !ok {
			roots = append(roots, root)
		}
		components[root] = append(components[root], b)
	}

	// 4. Build and name groups
	for _, root := range roots {
		group, warning := buildGroup(defs, components[root], opts)
		if warning != "" {
			log.Warn("Skipping group", zap.String("reason", warning))
			a.Warnings = append(a.Warnings, warning)
			continue
		}
		log.Debug("Found group",
			zap.String("canonical", group.Canonical),
			zap.Strings("members", group.Members))
		a.Groups = append(a.Groups, group)
	}

	sort.Slice(a.Groups, func(i, j int) bool {
		return a.Groups[i].Canonical < a.Groups[j].Canonical
	})

	return a
}

func buildGroup(defs []Definition, buckets []*bucket, opts Options) (Group, string) {
	var members []string
	var idx []int
	for _, b := range buckets {
		for _, name := range b.names {
			if !containsString(members, name) {
				members = append(members, name)
			}
		}
		idx = append(idx, b.defs...)
	}
	sort.Strings(members)
	sort.Ints(idx)

	if !opts.Transitive {
		if a, b, ok := missingPair(members, buckets); ok {
			return Group{}, fmt.Sprintf("%s: %s and %s never share a definition",
				strings.Join(members, ", "), a, b)
		}
	}

	g := Group{
		Canonical:       CanonicalName(members, opts.ExcludedPrefixes, opts.UtilityPrefixes),
		Members:         members,
		Representatives: make(map[string]Definition),
	}
	for _, i := range idx {
		d := defs[i]
		g.Definitions = append(g.Definitions, d)
		rep, ok := g.Representatives[d.ModifierSignature]
		if !ok || (rep.Name != g.Canonical && d.Name == g.Canonical) {
			g.Representatives[d.ModifierSignature] = d
		}
	}
	return g, ""
}

// missingPair returns the first pair of members that never co-occur in a
// bucket.
func missingPair(members []string, buckets []*bucket) (string, string, bool) {
	together := make(map[[2]string]bool)
	for _, b := range buckets {
		for _, x := range b.names {
			for _, y := range b.names {
				together[[2]string{x, y}] = true
			}
		}
	}
	for i, x := range members {
		for _, y := range members[i+1:] {
			if !together[[2]string{x, y}] {
				return x, y, true
			}
		}
	}
	return "", "", false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type unionFind struct {
	parent map[string]string
}

func newUnionFind() *unionFind {
	return &unionFind{parent: make(map[string]string)}
}

func (u *unionFind) find(x string) string {
	p, ok := u.parent[x]
	if !ok {
		u.parent[x] = x
		return x
	}
	if p == x {
		return x
	}
	root := u.find(p)
	u.parent[x] = root
	return root
}

func (u *unionFind) union(a, b string) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[rb] = ra
	}
}
