// Package pngtext extracts textual metadata from PNG ancillary chunks.
//
// Three chunk kinds are understood: tEXt (Latin-1), zTXt (zlib-compressed
// Latin-1) and iTXt (UTF-8, optionally compressed). Extraction never fails:
// a malformed chunk is skipped and the walk continues with the next one.
// CRCs are read but not verified.
package pngtext

import (
	"bytes"
	"errors"
	"io"
	"iter"

	"github.com/klauspost/compress/zlib"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/simonhull/imagescore/internal/binary"
	"github.com/simonhull/imagescore/internal/types"
)

// Chunk types handled by the extractor.
const (
	chunkText              = "tEXt"
	chunkCompressedText    = "zTXt"
	chunkInternationalText = "iTXt"
	chunkEnd               = "IEND"
)

// compressionDeflate is the only compression method defined for PNG.
const compressionDeflate = 0

// maxInflatedSize bounds a single decompressed text payload.
const maxInflatedSize = 64 << 20

// Chunk is one framed chunk of a PNG datastream.
type Chunk struct {
	Type string
	// Offset of the length field within the buffer.
	Offset int
	Data   []byte
	CRC    uint32
}

// Chunks iterates over the chunk stream that follows the PNG signature.
//
// Iteration stops when fewer than 8 bytes remain, when a declared length
// overruns the buffer, or after the IEND chunk has been yielded. Buffers
// without a PNG signature yield nothing.
func Chunks(data []byte) iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		if !bytes.HasPrefix(data, []byte(types.PNGSignature)) {
			return
		}

		c := binary.NewCursor(data, len(types.PNGSignature))
		for c.Remaining() >= 8 {
			start := c.Offset()
			length, err := binary.Next[uint32](c, binary.BigEndian, "chunk length")
			if err != nil {
				return
			}
			typ, err := c.Bytes(4, "chunk type")
			if err != nil {
				return
			}
			if uint64(length) > uint64(c.Remaining()) {
				return
			}
			payload, err := c.Bytes(int(length), "chunk data")
			if err != nil {
				return
			}
			// A missing CRC at the very end is tolerated.
			crc, _ := binary.Next[uint32](c, binary.BigEndian, "chunk crc")

			chunk := Chunk{Type: string(typ), Offset: start, Data: payload, CRC: crc}
			if !yield(chunk) || chunk.Type == chunkEnd {
				return
			}
		}
	}
}

// Extract returns a Field for every well-formed text chunk in data, in
// stream order.
func Extract(data []byte) []types.Field {
	var fields []types.Field
	for chunk := range Chunks(data) {
		var (
			field types.Field
			ok    bool
		)
		switch chunk.Type {
		case chunkText:
			field, ok = parseText(chunk.Data)
		case chunkCompressedText:
			field, ok = parseCompressedText(chunk.Data)
		case chunkInternationalText:
			field, ok = parseInternationalText(chunk.Data)
		default:
			continue
		}
		if ok {
			fields = append(fields, field)
		}
	}
	return fields
}

// parseText handles: keyword NUL text.
func parseText(payload []byte) (types.Field, bool) {
	c := binary.NewCursor(payload, 0)
	keyword, err := c.CString("tEXt keyword")
	if err != nil || len(keyword) == 0 {
		return types.Field{}, false
	}
	return types.Field{
		Tag:     decodeLatin1(keyword),
		Section: types.PNGText,
		Value:   decodeLatin1(c.Rest()),
	}, true
}

// parseCompressedText handles: keyword NUL method compressed-text.
func parseCompressedText(payload []byte) (types.Field, bool) {
	c := binary.NewCursor(payload, 0)
	keyword, err := c.CString("zTXt keyword")
	if err != nil || len(keyword) == 0 {
		return types.Field{}, false
	}
	method, err := binary.Next[uint8](c, binary.BigEndian, "zTXt compression method")
	if err != nil || method != compressionDeflate {
		return types.Field{}, false
	}
	text, err := inflate(c.Rest())
	if err != nil {
		return types.Field{}, false
	}
	return types.Field{
		Tag:     decodeLatin1(keyword),
		Section: types.PNGCompressedText,
		Value:   decodeLatin1(text),
	}, true
}

// parseInternationalText handles: keyword NUL flag method language NUL
// translated-keyword NUL text.
func parseInternationalText(payload []byte) (types.Field, bool) {
	c := binary.NewCursor(payload, 0)
	keyword, err := c.CString("iTXt keyword")
	if err != nil || len(keyword) == 0 {
		return types.Field{}, false
	}
	flag, err := binary.Next[uint8](c, binary.BigEndian, "iTXt compression flag")
	if err != nil || flag > 1 {
		return types.Field{}, false
	}
	method, err := binary.Next[uint8](c, binary.BigEndian, "iTXt compression method")
	if err != nil {
		return types.Field{}, false
	}
	language, err := c.CString("iTXt language tag")
	if err != nil {
		return types.Field{}, false
	}
	translated, err := c.CString("iTXt translated keyword")
	if err != nil {
		return types.Field{}, false
	}

	text := c.Rest()
	if flag == 1 {
		if method != compressionDeflate {
			return types.Field{}, false
		}
		if text, err = inflate(text); err != nil {
			return types.Field{}, false
		}
	}

	var value bytes.Buffer
	value.WriteString(decodeUTF8Lossy(text))
	if len(language) > 0 {
		value.WriteString("\nLanguage tag: ")
		value.WriteString(decodeUTF8Lossy(language))
	}
	if len(translated) > 0 {
		value.WriteString("\nTranslated keyword: ")
		value.WriteString(decodeUTF8Lossy(translated))
	}

	return types.Field{
		Tag:     decodeLatin1(keyword),
		Section: types.PNGInternationalText,
		Value:   value.String(),
	}, true
}

var errInflatedTooLarge = errors.New("inflated text exceeds size limit")

func inflate(compressed []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	out, err := io.ReadAll(io.LimitReader(zr, maxInflatedSize+1))
	if err != nil {
		return nil, err
	}
	if len(out) > maxInflatedSize {
		return nil, errInflatedTooLarge
	}
	return out, nil
}

// decodeLatin1 maps every byte to the code point of the same value.
// Every byte is valid ISO 8859-1, so the decoder cannot fail.
func decodeLatin1(b []byte) string {
	out, _ := charmap.ISO8859_1.NewDecoder().Bytes(b)
	return string(out)
}

// decodeUTF8Lossy replaces invalid sequences with U+FFFD.
func decodeUTF8Lossy(b []byte) string {
	out, _ := unicode.UTF8.NewDecoder().Bytes(b)
	return string(out)
}
