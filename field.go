package imagescore

import "github.com/simonhull/imagescore/internal/types"

// Field is one normalized metadata entry: a tag, the section it was read
// from, and its display value.
type Field = types.Field

// Section identifies where a field came from.
type Section = types.Section

// SectionKind distinguishes container sections from the PNG text chunks.
type SectionKind = types.SectionKind

// Section kinds.
const (
	SectionContainer            = types.SectionContainer
	SectionPNGText              = types.SectionPNGText
	SectionPNGCompressedText    = types.SectionPNGCompressedText
	SectionPNGInternationalText = types.SectionPNGInternationalText
)

// Fixed sections for the PNG text chunks.
var (
	PNGText              = types.PNGText
	PNGCompressedText    = types.PNGCompressedText
	PNGInternationalText = types.PNGInternationalText
)

// ContainerSection returns the section for a container directory such as
// "IFD0" or "GPS".
func ContainerSection(id string) Section {
	return types.ContainerSection(id)
}

// SortFields sorts fields by section label, then tag. The sort is stable.
func SortFields(fields []Field) {
	types.SortFields(fields)
}
