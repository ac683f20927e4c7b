package exiftag

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
	"golang.org/x/text/encoding/unicode"

	"github.com/simonhull/imagescore/internal/binary"
)

// maxDisplayValues caps how many elements of an array tag are rendered.
const maxDisplayValues = 16

// fixedUnits are appended to the value of tags with a constant unit.
var fixedUnits = map[exif.FieldName]string{
	"ExposureTime":          " s",
	"FocalLength":           " mm",
	"FocalLengthIn35mmFilm": " mm",
	"SubjectDistance":       " m",
	"GPSAltitude":           " m",
	"ExposureBiasValue":     " EV",
	"ApertureValue":         " EV",
	"ShutterSpeedValue":     " EV",
	"BrightnessValue":       " EV",
	"MaxApertureValue":      " EV",
	"PixelXDimension":       " pixels",
	"PixelYDimension":       " pixels",
	"ImageWidth":            " pixels",
	"ImageLength":           " pixels",
}

// xpFields are the Windows Explorer tags holding UTF-16LE text in BYTE arrays.
var xpFields = map[exif.FieldName]bool{
	exif.XPTitle:    true,
	exif.XPComment:  true,
	exif.XPAuthor:   true,
	exif.XPKeywords: true,
	exif.XPSubject:  true,
}

// enumerations map coded integer values to their names.
var enumerations = map[exif.FieldName]map[int]string{
	"Orientation": {
		1: "row 0 at top and column 0 at left",
		2: "row 0 at top and column 0 at right",
		3: "row 0 at bottom and column 0 at right",
		4: "row 0 at bottom and column 0 at left",
		5: "row 0 at left and column 0 at top",
		6: "row 0 at right and column 0 at top",
		7: "row 0 at right and column 0 at bottom",
		8: "row 0 at left and column 0 at bottom",
	},
	"ResolutionUnit":           {1: "none", 2: "inch", 3: "cm"},
	"FocalPlaneResolutionUnit": {1: "none", 2: "inch", 3: "cm"},
	"ColorSpace":               {1: "sRGB", 0xFFFF: "uncalibrated"},
	"YCbCrPositioning":         {1: "centered", 2: "co-sited"},
	"ExposureProgram": {
		0: "not defined", 1: "manual", 2: "normal program", 3: "aperture priority",
		4: "shutter priority", 5: "creative program", 6: "action program",
		7: "portrait mode", 8: "landscape mode",
	},
	"MeteringMode": {
		0: "unknown", 1: "average", 2: "center-weighted average", 3: "spot",
		4: "multi-spot", 5: "pattern", 6: "partial", 255: "other",
	},
	"WhiteBalance":     {0: "auto white balance", 1: "manual white balance"},
	"ExposureMode":     {0: "auto exposure", 1: "manual exposure", 2: "auto bracket"},
	"SceneCaptureType": {0: "standard", 1: "landscape", 2: "portrait", 3: "night scene"},
}

// displayer renders the tag values of one directory. Units stored as tags
// are looked up among the same directory's entries.
type displayer struct {
	siblings map[exif.FieldName]*tiff.Tag
	order    binary.Endianness
}

func newDisplayer(dir directory, order binary.Endianness) displayer {
	d := displayer{siblings: make(map[exif.FieldName]*tiff.Tag), order: order}
	for _, e := range dir.entries {
		name := fieldName(dir.section, e.id)
		if _, seen := d.siblings[name]; e.tag != nil && !seen {
			d.siblings[name] = e.tag
		}
	}
	return d
}

func (d displayer) display(name exif.FieldName, e entry) string {
	if e.tag == nil {
		return hexValues(e.raw)
	}
	tag := e.tag
	if xpFields[name] && tag.Type == tiff.DTByte {
		return d.windowsText(tag.Val)
	}
	switch tag.Format() {
	case tiff.StringVal:
		s, err := tag.StringVal()
		if err != nil {
			return tag.String()
		}
		return strings.TrimRight(s, "\x00 ")
	case tiff.RatVal:
		return d.rationals(name, tag) + d.unit(name)
	case tiff.IntVal:
		return d.integers(name, tag) + d.unit(name)
	case tiff.FloatVal:
		return d.floats(tag) + d.unit(name)
	case tiff.UndefVal:
		return d.undefined(name, tag)
	default:
		return tag.String()
	}
}

func (d displayer) rationals(name exif.FieldName, tag *tiff.Tag) string {
	n := min(int(tag.Count), maxDisplayValues)
	parts := make([]string, 0, n)
	values := make([]float64, 0, n)
	for i := range n {
		num, den, err := tag.Rat2(i)
		if err != nil {
			break
		}
		if den == 0 {
			parts = append(parts, fmt.Sprintf("%d/0", num))
			values = append(values, math.NaN())
			continue
		}
		v := float64(num) / float64(den)
		values = append(values, v)
		if name == "ExposureTime" && num > 0 && num < den {
			g := gcd(num, den)
			parts = append(parts, fmt.Sprintf("%d/%d", num/g, den/g))
			continue
		}
		parts = append(parts, formatDecimal(v))
	}

	switch {
	case name == "FNumber" && len(parts) == 1:
		return "f/" + parts[0]
	case (name == "GPSLatitude" || name == "GPSLongitude" || name == "GPSDestLatitude" || name == "GPSDestLongitude") && len(values) == 3:
		return fmt.Sprintf("%s deg %s min %s sec", parts[0], parts[1], parts[2])
	}
	return joinValues(parts, int(tag.Count))
}

func (d displayer) integers(name exif.FieldName, tag *tiff.Tag) string {
	names := enumerations[name]
	n := min(int(tag.Count), maxDisplayValues)
	parts := make([]string, 0, n)
	for i := range n {
		v, err := tag.Int(i)
		if err != nil {
			break
		}
		if label, ok := names[v]; ok {
			parts = append(parts, label)
			continue
		}
		parts = append(parts, strconv.Itoa(v))
	}
	return joinValues(parts, int(tag.Count))
}

func (d displayer) floats(tag *tiff.Tag) string {
	n := min(int(tag.Count), maxDisplayValues)
	parts := make([]string, 0, n)
	for i := range n {
		v, err := tag.Float(i)
		if err != nil {
			break
		}
		parts = append(parts, formatDecimal(v))
	}
	return joinValues(parts, int(tag.Count))
}

func (d displayer) undefined(name exif.FieldName, tag *tiff.Tag) string {
	val := tag.Val
	if name == "UserComment" && len(val) >= 8 {
		return d.userComment(val[:8], val[8:])
	}
	if name == "MakerNote" {
		return fmt.Sprintf("%d bytes", len(val))
	}
	trimmed := bytes.TrimRight(val, "\x00")
	if len(trimmed) > 0 && utf8.Valid(trimmed) && printable(trimmed) {
		return string(trimmed)
	}
	return hexValues(val)
}

// windowsText decodes the UTF-16LE strings Windows stores in XP* tags.
func (d displayer) windowsText(val []byte) string {
	out, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(val)
	if err != nil {
		return hexValues(val)
	}
	return strings.TrimRight(string(out), "\x00 ")
}

// userComment decodes the 8-byte character code prefix followed by text.
func (d displayer) userComment(code, text []byte) string {
	switch string(bytes.TrimRight(code, "\x00 ")) {
	case "UNICODE":
		order := unicode.BigEndian
		if d.order == binary.LittleEndian {
			order = unicode.LittleEndian
		}
		out, err := unicode.UTF16(order, unicode.IgnoreBOM).NewDecoder().Bytes(text)
		if err == nil {
			return strings.TrimRight(string(out), "\x00 ")
		}
	}
	return strings.TrimRight(string(bytes.ToValidUTF8(text, []byte("\uFFFD"))), "\x00 ")
}

// unit returns the suffix for a tag, consulting sibling tags where the unit
// is itself stored in the block.
func (d displayer) unit(name exif.FieldName) string {
	if u, ok := fixedUnits[name]; ok {
		return u
	}
	switch name {
	case "XResolution", "YResolution":
		return resolutionUnit(d.intOf("ResolutionUnit", 2))
	case "FocalPlaneXResolution", "FocalPlaneYResolution":
		return resolutionUnit(d.intOf("FocalPlaneResolutionUnit", 2))
	case "GPSSpeed":
		switch d.stringOf("GPSSpeedRef") {
		case "K":
			return " km/h"
		case "M":
			return " mph"
		case "N":
			return " knots"
		}
	}
	return ""
}

func (d displayer) intOf(name exif.FieldName, fallback int) int {
	tag, ok := d.siblings[name]
	if !ok {
		return fallback
	}
	v, err := tag.Int(0)
	if err != nil {
		return fallback
	}
	return v
}

func (d displayer) stringOf(name exif.FieldName) string {
	tag, ok := d.siblings[name]
	if !ok {
		return ""
	}
	s, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func resolutionUnit(code int) string {
	switch code {
	case 2:
		return " pixels per inch"
	case 3:
		return " pixels per cm"
	default:
		return ""
	}
}

func formatDecimal(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e4)/1e4, 'f', -1, 64)
}

func joinValues(parts []string, count int) string {
	s := strings.Join(parts, ", ")
	if count > len(parts) && len(parts) > 0 {
		s += ", ..."
	}
	return s
}

func hexValues(b []byte) string {
	n := min(len(b), maxDisplayValues)
	parts := make([]string, n)
	for i := range n {
		parts[i] = fmt.Sprintf("0x%02x", b[i])
	}
	return joinValues(parts, len(b))
}

func printable(b []byte) bool {
	for _, r := range string(b) {
		if r < 0x20 && r != '\n' && r != '\t' {
			return false
		}
	}
	return true
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}
