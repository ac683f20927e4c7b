package exiftag

import (
	"bytes"

	"github.com/simonhull/imagescore/internal/binary"
	"github.com/simonhull/imagescore/internal/pngtext"
	"github.com/simonhull/imagescore/internal/registry"
	"github.com/simonhull/imagescore/internal/types"
)

// exifHeader prefixes the TIFF block in JPEG APP1 segments and often in
// WebP and HEIF payloads.
var exifHeader = []byte("Exif\x00\x00")

// JPEG markers that carry no length field.
const (
	markerTEM  = 0x01
	markerRST0 = 0xD0
	markerRST7 = 0xD7
	markerSOI  = 0xD8
	markerEOI  = 0xD9
	markerSOS  = 0xDA
	markerAPP1 = 0xE1
)

func init() {
	registry.Register(types.FormatTIFF, registry.LocatorFunc(func(data []byte, _ string) ([]byte, error) {
		return data, nil
	}))
	registry.Register(types.FormatJPEG, registry.LocatorFunc(locateJPEG))
	registry.Register(types.FormatPNG, registry.LocatorFunc(locatePNG))
	registry.Register(types.FormatWebP, registry.LocatorFunc(locateWebP))
	registry.Register(types.FormatHEIF, registry.LocatorFunc(locateBMFF))
	registry.Register(types.FormatAVIF, registry.LocatorFunc(locateBMFF))
}

// locate returns the raw TIFF block embedded in a container.
//
// It returns types.ErrNoTagData when the container is well-formed but has
// no EXIF block (or no locator is registered for its format), and a
// *types.TruncatedError when a segment or chunk declares more data than the
// buffer holds.
func locate(data []byte, format types.Format, path string) ([]byte, error) {
	l := registry.Get(format)
	if l == nil {
		return nil, types.ErrNoTagData
	}
	return l.Locate(data, path)
}

// locateJPEG walks marker segments up to the start of scan looking for an
// APP1 segment with the Exif header.
func locateJPEG(data []byte, path string) ([]byte, error) {
	c := binary.NewCursor(data, 2)
	for {
		if c.Remaining() == 0 {
			return nil, &types.TruncatedError{Path: path, What: "JPEG marker", Offset: int64(c.Offset())}
		}
		prefix, _ := binary.Next[uint8](c, binary.BigEndian, "marker prefix")
		if prefix != 0xFF {
			return nil, &types.CorruptedFileError{
				Path:   path,
				Offset: int64(c.Offset() - 1),
				Reason: "expected JPEG marker",
			}
		}

		marker, err := binary.Next[uint8](c, binary.BigEndian, "marker")
		if err != nil {
			return nil, &types.TruncatedError{Path: path, What: "JPEG marker", Offset: int64(c.Offset()), Err: err}
		}
		switch {
		case marker == 0xFF:
			// Fill byte; the real marker follows.
			c = binary.NewCursor(data, c.Offset()-1)
			continue
		case marker == markerSOS, marker == markerEOI:
			return nil, types.ErrNoTagData
		case marker == markerSOI, marker == markerTEM, marker >= markerRST0 && marker <= markerRST7:
			continue
		}

		start := c.Offset()
		length, err := binary.Next[uint16](c, binary.BigEndian, "segment length")
		if err != nil {
			return nil, &types.TruncatedError{Path: path, What: "JPEG segment length", Offset: int64(start), Err: err}
		}
		if length < 2 {
			return nil, &types.CorruptedFileError{Path: path, Offset: int64(start), Reason: "invalid segment length"}
		}
		segment, err := c.Bytes(int(length)-2, "segment data")
		if err != nil {
			return nil, &types.TruncatedError{Path: path, What: "JPEG segment", Offset: int64(start), Err: err}
		}
		if marker == markerAPP1 && bytes.HasPrefix(segment, exifHeader) {
			return segment[len(exifHeader):], nil
		}
	}
}

// locatePNG returns the payload of the eXIf chunk.
func locatePNG(data []byte, _ string) ([]byte, error) {
	for chunk := range pngtext.Chunks(data) {
		if chunk.Type == "eXIf" {
			return bytes.TrimPrefix(chunk.Data, exifHeader), nil
		}
	}
	return nil, types.ErrNoTagData
}

// locateWebP walks the RIFF chunk list for the EXIF chunk.
func locateWebP(data []byte, path string) ([]byte, error) {
	c := binary.NewCursor(data, 12)
	for c.Remaining() >= 8 {
		start := c.Offset()
		fourCC, _ := c.Bytes(4, "RIFF chunk id")
		size, _ := binary.Next[uint32](c, binary.LittleEndian, "RIFF chunk size")
		if uint64(size) > uint64(c.Remaining()) {
			return nil, &types.TruncatedError{Path: path, What: "RIFF " + string(fourCC) + " chunk", Offset: int64(start)}
		}
		payload, _ := c.Bytes(int(size), "RIFF chunk data")
		if string(fourCC) == "EXIF" {
			return bytes.TrimPrefix(payload, exifHeader), nil
		}
		if size%2 == 1 && c.Remaining() > 0 {
			_ = c.Skip(1, "RIFF padding")
		}
	}
	return nil, types.ErrNoTagData
}

// locateBMFF finds the Exif item payload of a HEIF/AVIF file. The item is
// stored as a 4-byte header offset followed by the Exif header and the TIFF
// block; the TIFF byte-order mark right after the Exif header identifies it.
func locateBMFF(data []byte, _ string) ([]byte, error) {
	rest := data
	for {
		i := bytes.Index(rest, exifHeader)
		if i < 0 {
			return nil, types.ErrNoTagData
		}
		block := rest[i+len(exifHeader):]
		if bytes.HasPrefix(block, tiffLE) || bytes.HasPrefix(block, tiffBE) {
			return block, nil
		}
		rest = block
	}
}
