package types

import (
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/simonhull/imagescore/internal/binary"
)

// PNGSignature is the fixed 8-byte header of every PNG datastream.
const PNGSignature = "\x89PNG\r\n\x1a\n"

// Format represents the detected image container format.
type Format int

const (
	// FormatUnknown represents an unknown or unsupported format.
	FormatUnknown Format = iota
	// FormatJPEG represents JPEG/JFIF/EXIF files.
	FormatJPEG
	// FormatPNG represents PNG files.
	FormatPNG
	// FormatTIFF represents TIFF files (and TIFF-based raw formats).
	FormatTIFF
	// FormatWebP represents RIFF WebP files.
	FormatWebP
	// FormatHEIF represents HEIF/HEIC files.
	FormatHEIF
	// FormatAVIF represents AVIF files.
	FormatAVIF
	// FormatBMP represents Windows bitmaps.
	FormatBMP
	// FormatGIF represents GIF files.
	FormatGIF
)

func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "JPEG"
	case FormatPNG:
		return "PNG"
	case FormatTIFF:
		return "TIFF"
	case FormatWebP:
		return "WebP"
	case FormatHEIF:
		return "HEIF"
	case FormatAVIF:
		return "AVIF"
	case FormatBMP:
		return "BMP"
	case FormatGIF:
		return "GIF"
	default:
		return "Unknown"
	}
}

// Extensions returns common file extensions for this format.
func (f Format) Extensions() []string {
	switch f {
	case FormatJPEG:
		return []string{".jpg", ".jpeg"}
	case FormatPNG:
		return []string{".png"}
	case FormatTIFF:
		return []string{".tif", ".tiff"}
	case FormatWebP:
		return []string{".webp"}
	case FormatHEIF:
		return []string{".heic", ".heif"}
	case FormatAVIF:
		return []string{".avif"}
	case FormatBMP:
		return []string{".bmp"}
	default:
		return nil
	}
}

// HasTagData reports whether the container can carry an EXIF block.
func (f Format) HasTagData() bool {
	switch f {
	case FormatJPEG, FormatPNG, FormatTIFF, FormatWebP, FormatHEIF, FormatAVIF:
		return true
	default:
		return false
	}
}

// scannable lists every format a folder scan analyzes. GIF is detected but
// not scanned.
var scannable = []Format{FormatJPEG, FormatPNG, FormatTIFF, FormatWebP, FormatHEIF, FormatAVIF, FormatBMP}

// SupportedExtension reports whether path has an image extension the scanner
// analyzes. Matching is case-insensitive.
func SupportedExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	for _, f := range scannable {
		if slices.Contains(f.Extensions(), ext) {
			return true
		}
	}
	return false
}

// ISO BMFF brands for the HEIF family.
var (
	heifBrands = []string{"heic", "heix", "hevc", "hevx", "heim", "heis", "mif1", "msf1"}
	avifBrands = []string{"avif", "avis"}
)

// DetectFormat determines the image container format by examining magic bytes.
//
// Detection does not validate the file structure beyond the signature.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	if size < 4 {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "file too small",
		}
	}

	sr := binary.NewSafeReader(r, size, path)

	switch {
	case sr.Magic(0, "\xFF\xD8"):
		return FormatJPEG, nil
	case sr.Magic(0, PNGSignature):
		return FormatPNG, nil
	case sr.Magic(0, "II*\x00"), sr.Magic(0, "MM\x00*"):
		return FormatTIFF, nil
	case sr.Magic(0, "RIFF") && sr.Magic(8, "WEBP"):
		return FormatWebP, nil
	case sr.Magic(0, "GIF87a"), sr.Magic(0, "GIF89a"):
		return FormatGIF, nil
	case sr.Magic(0, "BM") && isBMPHeader(sr):
		return FormatBMP, nil
	}

	if sr.Magic(4, "ftyp") {
		if f := detectBMFF(sr); f != FormatUnknown {
			return f, nil
		}
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "unsupported file brand",
		}
	}

	return FormatUnknown, &UnsupportedFormatError{
		Path:   path,
		Reason: "unknown image format",
	}
}

// isBMPHeader checks the little-endian DIB header size that follows the
// 14-byte BMP file header. Valid headers are 12 bytes (OS/2) or 40 and up.
func isBMPHeader(sr *binary.SafeReader) bool {
	dib, err := binary.ReadLE[uint32](sr, 14, "BMP DIB header size")
	if err != nil {
		return false
	}
	return dib == 12 || (dib >= 40 && dib <= 124)
}

// detectBMFF inspects the major and compatible brands of an ftyp box.
func detectBMFF(sr *binary.SafeReader) Format {
	boxSize, err := binary.ReadBE[uint32](sr, 0, "ftyp box size")
	if err != nil || boxSize < 16 {
		return FormatUnknown
	}
	end := min(int64(boxSize), sr.Size())

	brands := make([]string, 0, 4)
	for off := int64(8); off+4 <= end; off += 4 {
		if off == 12 {
			continue // minor version
		}
		buf := make([]byte, 4)
		if err := sr.ReadAt(buf, off, "ftyp brand"); err != nil {
			break
		}
		brands = append(brands, string(buf))
	}

	for _, b := range brands {
		if slices.Contains(avifBrands, b) {
			return FormatAVIF
		}
	}
	for _, b := range brands {
		if slices.Contains(heifBrands, b) {
			return FormatHEIF
		}
	}
	return FormatUnknown
}
