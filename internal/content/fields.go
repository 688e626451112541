package content

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldKind classifies a leaf field by its name so the admin surface can
// validate values before they reach the store. The store itself enforces
// nothing; a *Color field holding garbage would render as garbage.
type FieldKind int

const (
	KindText FieldKind = iota
	KindColor
	KindSize
	KindImage
	KindProjects
)

func (k FieldKind) String() string {
	switch k {
	case KindColor:
		return "color"
	case KindSize:
		return "size"
	case KindImage:
		return "image"
	case KindProjects:
		return "projects"
	}
	return "text"
}

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// KindOf derives the field kind from the leaf name. Naming conventions come
// from the schema: *Color fields hold hex colors, *Size/*Height fields hold
// numeric strings (pixel values), image fields hold URLs.
func KindOf(leaf string) FieldKind {
	switch {
	case leaf == "projects":
		return KindProjects
	case strings.HasSuffix(leaf, "Color"):
		return KindColor
	case strings.HasSuffix(leaf, "Size") || strings.HasSuffix(leaf, "Height"):
		return KindSize
	case leaf == "img" || strings.Contains(strings.ToLower(leaf), "image"):
		return KindImage
	}
	return KindText
}

// ValidateValue checks a proposed value against the kind of the field the
// path addresses. Paths whose default is a sub-record are rejected outright:
// replacing a record with one value would break resolution of every field
// under it. Returns nil when the write is acceptable.
func ValidateValue(p Path, value any) error {
	if dv, ok := Defaults().Lookup(p); ok && IsRecord(dv) {
		return fmt.Errorf("path %q addresses a record, not an editable field", p.String())
	}
	kind := KindOf(p.Leaf())
	if kind == KindProjects {
		if _, ok := value.([]any); !ok {
			return fmt.Errorf("field %q expects an array of projects", p.String())
		}
		return nil
	}
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("field %q expects a string value", p.String())
	}
	switch kind {
	case KindColor:
		if !hexColorRe.MatchString(s) {
			return fmt.Errorf("field %q expects a hex color like #05668D", p.String())
		}
	case KindSize:
		if s == "" {
			return fmt.Errorf("field %q expects a numeric value", p.String())
		}
		for _, r := range s {
			if r < '0' || r > '9' {
				return fmt.Errorf("field %q expects a numeric value, got %q", p.String(), s)
			}
		}
	}
	return nil
}
