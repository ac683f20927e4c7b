// Package types provides the core data structures shared by the extractors.
//
// This package defines Field and Section, the uniform model that container
// tags and PNG text chunks are normalized into, together with format
// detection and the typed errors the decoders return.
package types

import (
	"cmp"
	"encoding/json"
	"slices"
)

// SectionKind is the closed set of provenance groups a Field can come from.
type SectionKind int

const (
	// SectionContainer is a directory of the container's tag block (IFD0, Exif, GPS, ...).
	SectionContainer SectionKind = iota
	// SectionPNGText is an uncompressed Latin-1 tEXt chunk.
	SectionPNGText
	// SectionPNGCompressedText is a zlib-compressed Latin-1 zTXt chunk.
	SectionPNGCompressedText
	// SectionPNGInternationalText is a UTF-8 iTXt chunk.
	SectionPNGInternationalText
)

// Section identifies where a Field was found.
type Section struct {
	Kind SectionKind
	// ID names the directory for SectionContainer; empty otherwise.
	ID string
}

// Fixed sections for the PNG text chunk kinds.
var (
	PNGText              = Section{Kind: SectionPNGText}
	PNGCompressedText    = Section{Kind: SectionPNGCompressedText}
	PNGInternationalText = Section{Kind: SectionPNGInternationalText}
)

// ContainerSection returns the section for a container directory.
func ContainerSection(id string) Section {
	return Section{Kind: SectionContainer, ID: id}
}

// String returns the display label used for ordering and output.
func (s Section) String() string {
	switch s.Kind {
	case SectionPNGText:
		return "PNG tEXt"
	case SectionPNGCompressedText:
		return "PNG zTXt"
	case SectionPNGInternationalText:
		return "PNG iTXt"
	default:
		return s.ID
	}
}

// MarshalText renders the section as its label.
func (s Section) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Field is a single normalized metadata entry.
type Field struct {
	Tag     string  `json:"tag"`
	Section Section `json:"section"`
	Value   string  `json:"value"`
}

// MarshalJSON keeps the wire shape flat: section is emitted as its label.
func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Tag     string `json:"tag"`
		Section string `json:"section"`
		Value   string `json:"value"`
	}{f.Tag, f.Section.String(), f.Value})
}

// CompareFields orders by section label, then tag.
func CompareFields(a, b Field) int {
	if c := cmp.Compare(a.Section.String(), b.Section.String()); c != 0 {
		return c
	}
	return cmp.Compare(a.Tag, b.Tag)
}

// SortFields sorts fields in place by section label, then tag.
// Equal keys keep their relative order.
func SortFields(fields []Field) {
	slices.SortStableFunc(fields, CompareFields)
}
