// Package testsupport builds in-memory image fixtures for tests.
package testsupport

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"testing"

	"github.com/klauspost/compress/zlib"
)

// TIFF field types.
const (
	TypeByte      = 1
	TypeASCII     = 2
	TypeShort     = 3
	TypeLong      = 4
	TypeRational  = 5
	TypeUndefined = 7
)

// Well-known tag IDs.
const (
	TagImageDescription = 0x010E
	TagMake             = 0x010F
	TagModel            = 0x0110
	TagXResolution      = 0x011A
	TagResolutionUnit   = 0x0128
	TagSoftware         = 0x0131
	TagExifIFDPointer   = 0x8769
	TagExposureTime     = 0x829A
	TagFNumber          = 0x829D
	TagUserComment      = 0x9286
	TagFocalLength      = 0x920A
)

// Entry is one IFD entry with its value already encoded little-endian.
type Entry struct {
	Tag   uint16
	Type  uint16
	Count uint32
	Data  []byte
}

// ASCII returns a NUL-terminated ASCII entry.
func ASCII(tag uint16, s string) Entry {
	data := append([]byte(s), 0)
	return Entry{Tag: tag, Type: TypeASCII, Count: uint32(len(data)), Data: data}
}

// Short returns a single SHORT entry.
func Short(tag uint16, v uint16) Entry {
	data := binary.LittleEndian.AppendUint16(nil, v)
	return Entry{Tag: tag, Type: TypeShort, Count: 1, Data: data}
}

// Rational returns a single RATIONAL entry.
func Rational(tag uint16, num, den uint32) Entry {
	data := binary.LittleEndian.AppendUint32(nil, num)
	data = binary.LittleEndian.AppendUint32(data, den)
	return Entry{Tag: tag, Type: TypeRational, Count: 1, Data: data}
}

// UserComment returns an ASCII-coded UserComment entry.
func UserComment(s string) Entry {
	data := append([]byte("ASCII\x00\x00\x00"), s...)
	return Entry{Tag: TagUserComment, Type: TypeUndefined, Count: uint32(len(data)), Data: data}
}

// TIFF assembles a little-endian TIFF block with IFD0 and, when exifIFD is
// non-empty, an Exif sub-IFD linked from IFD0.
func TIFF(ifd0, exifIFD []Entry) []byte {
	ifd0 = append([]Entry(nil), ifd0...)
	if len(exifIFD) > 0 {
		ifd0 = append(ifd0, Entry{Tag: TagExifIFDPointer, Type: TypeLong, Count: 1, Data: make([]byte, 4)})
	}

	ifdSize := func(n int) uint32 { return uint32(2 + 12*n + 4) }
	ifd0Off := uint32(8)
	exifOff := ifd0Off + ifdSize(len(ifd0))
	dataOff := exifOff
	if len(exifIFD) > 0 {
		dataOff += ifdSize(len(exifIFD))
	}

	if len(exifIFD) > 0 {
		binary.LittleEndian.PutUint32(ifd0[len(ifd0)-1].Data, exifOff)
	}

	var data bytes.Buffer
	writeIFD := func(out *bytes.Buffer, entries []Entry) {
		binary.Write(out, binary.LittleEndian, uint16(len(entries)))
		for _, e := range entries {
			binary.Write(out, binary.LittleEndian, e.Tag)
			binary.Write(out, binary.LittleEndian, e.Type)
			binary.Write(out, binary.LittleEndian, e.Count)
			if len(e.Data) <= 4 {
				inline := make([]byte, 4)
				copy(inline, e.Data)
				out.Write(inline)
				continue
			}
			binary.Write(out, binary.LittleEndian, dataOff+uint32(data.Len()))
			data.Write(e.Data)
			if data.Len()%2 == 1 {
				data.WriteByte(0)
			}
		}
		binary.Write(out, binary.LittleEndian, uint32(0)) // next IFD
	}

	out := &bytes.Buffer{}
	out.WriteString("II*\x00")
	binary.Write(out, binary.LittleEndian, ifd0Off)
	writeIFD(out, ifd0)
	if len(exifIFD) > 0 {
		writeIFD(out, exifIFD)
	}
	out.Write(data.Bytes())
	return out.Bytes()
}

// JPEG wraps a TIFF block in an APP1 Exif segment. A nil block produces a
// JPEG without EXIF.
func JPEG(tiff []byte) []byte {
	out := &bytes.Buffer{}
	out.Write([]byte{0xFF, 0xD8})

	// JFIF APP0
	app0 := []byte("JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
	out.Write([]byte{0xFF, 0xE0})
	binary.Write(out, binary.BigEndian, uint16(len(app0)+2))
	out.Write(app0)

	if tiff != nil {
		payload := append([]byte("Exif\x00\x00"), tiff...)
		out.Write([]byte{0xFF, 0xE1})
		binary.Write(out, binary.BigEndian, uint16(len(payload)+2))
		out.Write(payload)
	}

	// Start of scan with a token of entropy-coded data.
	out.Write([]byte{0xFF, 0xDA, 0x00, 0x02, 0x12, 0x34, 0xFF, 0xD9})
	return out.Bytes()
}

// PNGSignature is the fixed PNG header.
const PNGSignature = "\x89PNG\r\n\x1a\n"

// Chunk frames a PNG chunk as length, type, data, crc.
func Chunk(typ string, payload []byte) []byte {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.BigEndian, uint32(len(payload)))
	buf.WriteString(typ)
	buf.Write(payload)
	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(payload)
	binary.Write(buf, binary.BigEndian, crc.Sum32())
	return buf.Bytes()
}

// PNG assembles signature + IHDR + chunks + IEND.
func PNG(chunks ...[]byte) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], 1)
	binary.BigEndian.PutUint32(ihdr[4:], 1)
	ihdr[8] = 8
	ihdr[9] = 2

	buf := &bytes.Buffer{}
	buf.WriteString(PNGSignature)
	buf.Write(Chunk("IHDR", ihdr))
	for _, c := range chunks {
		buf.Write(c)
	}
	buf.Write(Chunk("IEND", nil))
	return buf.Bytes()
}

// TextChunk returns a tEXt chunk.
func TextChunk(keyword, text string) []byte {
	return Chunk("tEXt", []byte(keyword+"\x00"+text))
}

// CompressedTextChunk returns a zTXt chunk using compression method 0.
func CompressedTextChunk(t testing.TB, keyword, text string) []byte {
	p := append([]byte(keyword+"\x00"), 0)
	return Chunk("zTXt", append(p, Deflate(t, text)...))
}

// InternationalTextChunk returns an uncompressed iTXt chunk.
func InternationalTextChunk(keyword, lang, translated, text string) []byte {
	p := append([]byte(keyword+"\x00"), 0, 0)
	p = append(p, lang+"\x00"+translated+"\x00"+text...)
	return Chunk("iTXt", p)
}

// Deflate zlib-compresses s.
func Deflate(t testing.TB, s string) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	zw := zlib.NewWriter(buf)
	if _, err := zw.Write([]byte(s)); err != nil {
		t.Fatalf("deflate: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("deflate close: %v", err)
	}
	return buf.Bytes()
}

// WebP wraps a TIFF block in a RIFF WebP container with an EXIF chunk.
func WebP(tiff []byte) []byte {
	var chunks bytes.Buffer
	writeChunk := func(id string, payload []byte) {
		chunks.WriteString(id)
		binary.Write(&chunks, binary.LittleEndian, uint32(len(payload)))
		chunks.Write(payload)
		if len(payload)%2 == 1 {
			chunks.WriteByte(0)
		}
	}
	writeChunk("VP8X", make([]byte, 10))
	if tiff != nil {
		writeChunk("EXIF", tiff)
	}

	out := &bytes.Buffer{}
	out.WriteString("RIFF")
	binary.Write(out, binary.LittleEndian, uint32(4+chunks.Len()))
	out.WriteString("WEBP")
	out.Write(chunks.Bytes())
	return out.Bytes()
}

// HEIF returns an ftyp box followed by an mdat box holding an Exif item
// payload (header offset, Exif header, TIFF block).
func HEIF(brand string, tiff []byte) []byte {
	out := &bytes.Buffer{}
	binary.Write(out, binary.BigEndian, uint32(24))
	out.WriteString("ftyp")
	out.WriteString(brand)
	binary.Write(out, binary.BigEndian, uint32(0))
	out.WriteString("mif1")
	out.WriteString(brand)

	item := binary.BigEndian.AppendUint32(nil, 6)
	item = append(item, "Exif\x00\x00"...)
	item = append(item, tiff...)
	binary.Write(out, binary.BigEndian, uint32(8+len(item)))
	out.WriteString("mdat")
	out.Write(item)
	return out.Bytes()
}

// BMP returns a minimal 1x1 24-bit bitmap.
func BMP() []byte {
	out := &bytes.Buffer{}
	out.WriteString("BM")
	binary.Write(out, binary.LittleEndian, uint32(58))
	binary.Write(out, binary.LittleEndian, uint32(0))
	binary.Write(out, binary.LittleEndian, uint32(54))
	binary.Write(out, binary.LittleEndian, uint32(40))
	binary.Write(out, binary.LittleEndian, int32(1))
	binary.Write(out, binary.LittleEndian, int32(1))
	binary.Write(out, binary.LittleEndian, uint16(1))
	binary.Write(out, binary.LittleEndian, uint16(24))
	out.Write(make([]byte, 24))
	out.Write([]byte{0, 0, 255, 0})
	return out.Bytes()
}
