// Package exiftag turns a container's EXIF block into normalized fields.
//
// The package locates the TIFF block inside the supported containers, walks
// its directories with bounds-checked cursors and hands each validated entry
// to github.com/rwcarlsen/goexif/tiff for value decoding. Tags are labelled
// with goexif's field names and by the directory they were read from.
package exiftag

import (
	"iter"

	"github.com/simonhull/imagescore/internal/types"
)

// Record is one decoded container tag before normalization.
type Record interface {
	// TagName is the tag label, e.g. "DateTimeOriginal".
	TagName() string
	// SectionID names the directory the tag was read from, e.g. "Exif".
	SectionID() string
	// Display is the formatted value with units applied.
	Display() string
}

// Normalize converts records into fields, one per record, in input order.
func Normalize(records iter.Seq[Record]) []types.Field {
	var fields []types.Field
	for r := range records {
		fields = append(fields, types.Field{
			Tag:     r.TagName(),
			Section: types.ContainerSection(r.SectionID()),
			Value:   r.Display(),
		})
	}
	return fields
}

type tagRecord struct {
	name    string
	section string
	display string
}

func (r tagRecord) TagName() string   { return r.name }
func (r tagRecord) SectionID() string { return r.section }
func (r tagRecord) Display() string   { return r.display }
