// Package layout holds the versioned wire layout tables.
//
// Offsets and widths are data, sourced from these tables and consumed by the
// codec. Decode logic never hard-codes a field position; a table that is
// wrong for one field cannot be patched by shifting another. Tables are
// validated wholesale: total size, field bounds, and region overlap.
package layout

import (
	"fmt"
	"sort"

	"marketwire/internal/schema"
)

// Kind is how the bytes of a field region are interpreted.
type Kind uint8

const (
	KindInt      Kind = iota + 1 // little-endian signed, width 1/2/4/8
	KindUint                     // little-endian unsigned, width 1/2/4/8
	KindASCII                    // fixed-width text, cut at the first NUL
	KindEnum                     // single byte mapped through an enum lookup
	KindReserved                 // padding, never decoded
)

// Field describes one region of a record body.
type Field struct {
	Name   string
	Offset int
	Width  int
	Kind   Kind
}

// Layout is the full description of one (version, record type) pair.
type Layout struct {
	Length int // total record byte length, header included
	Fields []Field
}

// Validate checks the layout invariants: total length addressable by the
// header length byte, every field inside [HeaderSize, Length), legal widths
// per kind, and no overlapping regions.
func (l Layout) Validate() error {
	if l.Length < schema.HeaderSize {
		return fmt.Errorf("layout length %d smaller than header", l.Length)
	}
	if l.Length%schema.LengthUnit != 0 {
		return fmt.Errorf("layout length %d not a multiple of %d", l.Length, schema.LengthUnit)
	}
	if l.Length/schema.LengthUnit > 0xFF {
		return fmt.Errorf("layout length %d not addressable by the header length byte", l.Length)
	}

	for _, f := range l.Fields {
		if f.Name == "" && f.Kind != KindReserved {
			return fmt.Errorf("unnamed field at offset %d", f.Offset)
		}
		if f.Width <= 0 {
			return fmt.Errorf("field %q has width %d", f.Name, f.Width)
		}
		if f.Offset < schema.HeaderSize {
			return fmt.Errorf("field %q overlaps the header", f.Name)
		}
		if f.Offset+f.Width > l.Length {
			return fmt.Errorf("field %q exceeds layout length %d", f.Name, l.Length)
		}
		switch f.Kind {
		case KindInt, KindUint:
			switch f.Width {
			case 1, 2, 4, 8:
			default:
				return fmt.Errorf("numeric field %q has width %d", f.Name, f.Width)
			}
		case KindEnum:
			if f.Width != 1 {
				return fmt.Errorf("enum field %q has width %d", f.Name, f.Width)
			}
		case KindASCII, KindReserved:
		default:
			return fmt.Errorf("field %q has unknown kind %d", f.Name, f.Kind)
		}
	}

	ordered := make([]Field, len(l.Fields))
	copy(ordered, l.Fields)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Offset < ordered[j].Offset })
	for i := 1; i < len(ordered); i++ {
		prev, cur := ordered[i-1], ordered[i]
		if prev.Offset+prev.Width > cur.Offset {
			return fmt.Errorf("fields %q and %q overlap", prev.Name, cur.Name)
		}
	}
	return nil
}

// Field returns the named field descriptor, if present.
func (l Layout) Field(name string) (Field, bool) {
	for _, f := range l.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

type tableKey struct {
	version schema.Version
	rtype   schema.RType
}

// Table maps (schema version, record type) pairs to layouts.
type Table struct {
	layouts  map[tableKey]Layout
	versions map[schema.Version]struct{}
}

// NewTable creates an empty layout table.
func NewTable() *Table {
	return &Table{
		layouts:  make(map[tableKey]Layout),
		versions: make(map[schema.Version]struct{}),
	}
}

// Register validates and adds a layout.
func (t *Table) Register(version schema.Version, rtype schema.RType, l Layout) error {
	if err := l.Validate(); err != nil {
		return fmt.Errorf("layout (v%d, rtype 0x%02X): %w", version, rtype, err)
	}
	key := tableKey{version: version, rtype: rtype}
	if _, ok := t.layouts[key]; ok {
		return fmt.Errorf("layout (v%d, rtype 0x%02X) already registered", version, rtype)
	}
	t.layouts[key] = l
	t.versions[version] = struct{}{}
	return nil
}

// Lookup returns the layout for the pair, if registered.
func (t *Table) Lookup(version schema.Version, rtype schema.RType) (Layout, bool) {
	l, ok := t.layouts[tableKey{version: version, rtype: rtype}]
	return l, ok
}

// HasVersion reports whether any layout is registered under the version.
func (t *Table) HasVersion(version schema.Version) bool {
	_, ok := t.versions[version]
	return ok
}
