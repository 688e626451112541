package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knst/site-services/pkg/logger"
)

// Document is the persistent site content tree: sections at the top level,
// scalar fields or fixed sub-item records (card1..card3 etc.) below. Values
// are strings for text/color/size/URL fields; portfolio.projects holds a
// nested array.
type Document map[string]any

// MaxPathDepth is the deepest address the schema uses (section.subitem.field).
const MaxPathDepth = 3

var ErrBadPath = errors.New("invalid content path")

// Path is a validated dot-path address into a Document. Construct via
// ParsePath; the zero value is unusable.
type Path struct {
	segs []string
}

// ParsePath splits and validates a dot-path such as "hero.title" or
// "whyNST.card1.image". Empty segments and addresses deeper than the schema
// ever nests are rejected here; whether the path exists in the schema is a
// separate check (KnownIn).
func ParsePath(raw string) (Path, error) {
	if raw == "" {
		return Path{}, fmt.Errorf("%w: empty", ErrBadPath)
	}
	segs := strings.Split(raw, ".")
	if len(segs) > MaxPathDepth {
		return Path{}, fmt.Errorf("%w: %q exceeds depth %d", ErrBadPath, raw, MaxPathDepth)
	}
	for _, s := range segs {
		if s == "" {
			return Path{}, fmt.Errorf("%w: %q has an empty segment", ErrBadPath, raw)
		}
	}
	return Path{segs: segs}, nil
}

func (p Path) String() string { return strings.Join(p.segs, ".") }

// Section returns the top-level section name the path addresses.
func (p Path) Section() string {
	if len(p.segs) == 0 {
		return ""
	}
	return p.segs[0]
}

// Leaf returns the final field name.
func (p Path) Leaf() string {
	if len(p.segs) == 0 {
		return ""
	}
	return p.segs[len(p.segs)-1]
}

// KnownIn reports whether the path resolves to an editable leaf in d: the
// value exists and is not a sub-record. Used against the schema defaults to
// reject typo'd paths before a write silently lands in a field nothing
// reads, and record addresses before one write flattens a whole section.
func (p Path) KnownIn(d Document) bool {
	v, ok := d.Lookup(p)
	return ok && !IsRecord(v)
}

// IsRecord reports whether v is a nested record rather than a leaf value.
func IsRecord(v any) bool {
	_, ok := asMap(v)
	return ok
}

// Lookup walks the path and returns the value at its leaf.
func (d Document) Lookup(p Path) (any, bool) {
	var cur any = map[string]any(d)
	for _, seg := range p.segs {
		m, ok := cur.(map[string]any)
		if !ok {
			if dm, ok2 := cur.(Document); ok2 {
				m = map[string]any(dm)
			} else {
				return nil, false
			}
		}
		cur, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Set writes value at the path, creating intermediate maps as needed and
// leaving every sibling untouched.
func (d Document) Set(p Path, value any) {
	m := map[string]any(d)
	for _, seg := range p.segs[:len(p.segs)-1] {
		next, ok := m[seg].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[seg] = next
		}
		m = next
	}
	m[p.Leaf()] = value
}

// Clone returns a deep copy; nested maps and slices are copied, scalars shared.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = cloneValue(vv)
		}
		return m
	case Document:
		return map[string]any(t.Clone())
	case []any:
		s := make([]any, len(t))
		for i, vv := range t {
			s[i] = cloneValue(vv)
		}
		return s
	default:
		return v
	}
}

// Merge layers stored values over defaults, recursing into nested records so
// a document persisted by an older schema still resolves every field the
// site dereferences. Stored leaves win; defaults fill everything absent.
// Neither input is mutated.
func Merge(defaults, stored Document) Document {
	if stored == nil {
		return defaults.Clone()
	}
	out := defaults.Clone()
	mergeInto(map[string]any(out), map[string]any(stored))
	return out
}

func mergeInto(dst, src map[string]any) {
	for k, sv := range src {
		sm, srcIsMap := asMap(sv)
		dv, hasDefault := dst[k]
		dm, dstIsMap := asMap(dv)
		if srcIsMap && dstIsMap {
			mergeInto(dm, sm)
			continue
		}
		if hasDefault && (srcIsMap || dstIsMap) {
			// a stored scalar over a default sub-record (or vice versa) would
			// leave that subtree's fields unresolvable; keep the defaults
			logger.Warnf("content: dropping stored value %q, shape differs from defaults", k)
			continue
		}
		if srcIsMap {
			// stored has a record where defaults have nothing
			cp := map[string]any{}
			mergeInto(cp, sm)
			dst[k] = cp
			continue
		}
		dst[k] = cloneValue(sv)
	}
}

func asMap(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case Document:
		return map[string]any(t), true
	default:
		return nil, false
	}
}
