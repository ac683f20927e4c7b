package exiftag

import (
	"bytes"

	"github.com/simonhull/imagescore/internal/binary"
	"github.com/simonhull/imagescore/internal/types"
)

var (
	tiffLE = []byte("II*\x00")
	tiffBE = []byte("MM\x00*")
)

// Decode detects the container format of data, locates its EXIF block and
// decodes it into records. Records follow the block's directory order and
// entry order; repeated and unnamed tags are kept.
//
// Errors:
//   - types.ErrNoTagData: the container is recognized but carries no EXIF block
//   - *types.UnsupportedFormatError: the container format is not recognized
//   - *types.TruncatedError: the data ends inside a declared structure
//   - anything else: the block could not be decoded
func Decode(data []byte, path string) ([]Record, error) {
	format, err := types.DetectFormat(bytes.NewReader(data), int64(len(data)), path)
	if err != nil {
		return nil, err
	}

	block, err := locate(data, format, path)
	if err != nil {
		return nil, err
	}
	if len(block) < 8 {
		return nil, &types.TruncatedError{Path: path, What: "TIFF header", Offset: 0}
	}
	if !bytes.HasPrefix(block, tiffLE) && !bytes.HasPrefix(block, tiffBE) {
		return nil, &types.CorruptedFileError{Path: path, Reason: "invalid TIFF byte order"}
	}

	dirs, err := readDirectories(block, path)
	if err != nil {
		return nil, err
	}

	order := byteOrder(block)
	var records []Record
	for _, dir := range dirs {
		d := newDisplayer(dir, order)
		for _, e := range dir.entries {
			name := fieldName(dir.section, e.id)
			records = append(records, tagRecord{
				name:    string(name),
				section: dir.section,
				display: d.display(name, e),
			})
		}
	}
	return records, nil
}

func byteOrder(block []byte) binary.Endianness {
	if bytes.HasPrefix(block, []byte("II")) {
		return binary.LittleEndian
	}
	return binary.BigEndian
}
