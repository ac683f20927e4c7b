package exiftag

import (
	"slices"
	"testing"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/simonhull/imagescore/internal/binary"
	"github.com/simonhull/imagescore/internal/types"
)

func TestNormalize(t *testing.T) {
	records := []Record{
		tagRecord{name: "Make", section: SectionIFD0, display: "Canon"},
		tagRecord{name: "ExposureTime", section: SectionExif, display: "1/250 s"},
		tagRecord{name: "Make", section: SectionIFD1, display: "Canon"},
	}

	fields := Normalize(slices.Values(records))
	if len(fields) != len(records) {
		t.Fatalf("got %d fields, want %d", len(fields), len(records))
	}
	for i, r := range records {
		f := fields[i]
		if f.Tag != r.TagName() || f.Value != r.Display() {
			t.Errorf("field %d = %+v, want tag %q value %q", i, f, r.TagName(), r.Display())
		}
		if f.Section != types.ContainerSection(r.SectionID()) {
			t.Errorf("field %d section = %v, want %s", i, f.Section, r.SectionID())
		}
	}
}

func TestNormalize_Empty(t *testing.T) {
	if fields := Normalize(slices.Values([]Record(nil))); len(fields) != 0 {
		t.Errorf("got %d fields, want 0", len(fields))
	}
}

func TestFieldName(t *testing.T) {
	tests := []struct {
		section string
		id      uint16
		want    exif.FieldName
	}{
		{SectionIFD0, 0x010F, exif.Make},
		{SectionIFD0, 0x8769, exif.ExifIFDPointer},
		{SectionIFD0, 0x8825, exif.GPSInfoIFDPointer},
		{SectionIFD0, 0x9C9B, exif.XPTitle},
		{SectionIFD1, 0x0201, exif.ThumbJPEGInterchangeFormat},
		{"IFD2", 0x0100, exif.ImageWidth},
		{SectionExif, 0x9003, exif.DateTimeOriginal},
		{SectionExif, 0xA005, exif.InteroperabilityIFDPointer},
		{SectionGPS, 0x0002, exif.GPSLatitude},
		{SectionGPS, 0x010F, "Tag(0x010f)"},
		{SectionInterop, 0x0001, exif.InteroperabilityIndex},
		{SectionInterop, 0x0002, "Tag(0x0002)"},
		{SectionIFD0, 0xC4A5, "Tag(0xc4a5)"},
	}
	for _, tt := range tests {
		if got := fieldName(tt.section, tt.id); got != tt.want {
			t.Errorf("fieldName(%s, 0x%04x) = %s, want %s", tt.section, tt.id, got, tt.want)
		}
	}
}

func TestChainSection(t *testing.T) {
	if got := chainSection(0); got != SectionIFD0 {
		t.Errorf("chainSection(0) = %s", got)
	}
	if got := chainSection(1); got != SectionIFD1 {
		t.Errorf("chainSection(1) = %s", got)
	}
}

func TestFormatDecimal(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{72, "72"},
		{2.8, "2.8"},
		{1.0 / 3.0, "0.3333"},
		{-0.5, "-0.5"},
	}
	for _, tt := range tests {
		if got := formatDecimal(tt.in); got != tt.want {
			t.Errorf("formatDecimal(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestJoinValues(t *testing.T) {
	if got := joinValues([]string{"1", "2"}, 2); got != "1, 2" {
		t.Errorf("got %q", got)
	}
	if got := joinValues([]string{"1", "2"}, 40); got != "1, 2, ..." {
		t.Errorf("got %q", got)
	}
}

func TestHexValues(t *testing.T) {
	if got := hexValues([]byte{0x01, 0xAB}); got != "0x01, 0xab" {
		t.Errorf("got %q", got)
	}
}

func TestUserComment(t *testing.T) {
	le := displayer{order: binary.LittleEndian}
	utf16le := []byte{'h', 0, 'i', 0}
	tests := []struct {
		name string
		d    displayer
		code string
		text []byte
		want string
	}{
		{"ascii", displayer{}, "ASCII\x00\x00\x00", []byte("hello  \x00"), "hello"},
		{"undefined code", displayer{}, "\x00\x00\x00\x00\x00\x00\x00\x00", []byte("note"), "note"},
		{"unicode little endian", le, "UNICODE\x00", utf16le, "hi"},
		{"unicode big endian", displayer{}, "UNICODE\x00", []byte{0, 'o', 0, 'k'}, "ok"},
		{"invalid utf8", displayer{}, "ASCII\x00\x00\x00", []byte{'a', 0xFF, 'b'}, "a\uFFFDb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.userComment([]byte(tt.code), tt.text); got != tt.want {
				t.Errorf("userComment = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGCD(t *testing.T) {
	if got := gcd(10, 250); got != 10 {
		t.Errorf("gcd(10, 250) = %d", got)
	}
	if got := gcd(-4, 6); got != 2 {
		t.Errorf("gcd(-4, 6) = %d", got)
	}
}
