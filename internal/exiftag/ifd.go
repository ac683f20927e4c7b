package exiftag

import (
	"bytes"
	stdbinary "encoding/binary"
	"fmt"
	"io"

	"github.com/rwcarlsen/goexif/tiff"

	"github.com/simonhull/imagescore/internal/binary"
	"github.com/simonhull/imagescore/internal/types"
)

// ifdEntrySize is the size of one directory entry: id, type, count, value.
const ifdEntrySize = 12

// typeSizes gives the byte size of one value of each TIFF field type.
var typeSizes = map[tiff.DataType]uint64{
	tiff.DTByte:      1,
	tiff.DTAscii:     1,
	tiff.DTShort:     2,
	tiff.DTLong:      4,
	tiff.DTRational:  8,
	tiff.DTSByte:     1,
	tiff.DTUndefined: 1,
	tiff.DTSShort:    2,
	tiff.DTSLong:     4,
	tiff.DTSRational: 8,
	tiff.DTFloat:     4,
	tiff.DTDouble:    8,
}

// entry is one tag as stored in a directory. tag is nil when the count is
// zero or the field type is unknown; for an unknown type raw holds the
// 4-byte value field.
type entry struct {
	id  uint16
	tag *tiff.Tag
	raw []byte
}

// directory is one IFD and the section its entries are reported under.
type directory struct {
	section string
	entries []entry
}

// ifdWalker reads the directories of one TIFF block.
type ifdWalker struct {
	block   []byte
	path    string
	endian  binary.Endianness
	order   stdbinary.ByteOrder
	visited map[uint32]bool
}

type pendingDir struct {
	offset  uint32
	section string
	chain   int // position in the IFD0 chain, -1 for sub-IFDs
}

// readDirectories walks the IFD0 chain and every sub-IFD reachable through
// the Exif, GPS and Interoperability pointers. Directories come back in the
// order they are reached, entries in stored order. Every declared value is
// bounds-checked against the block before it is decoded, so a corrupt count
// cannot force a large allocation.
func readDirectories(block []byte, path string) ([]directory, error) {
	w := &ifdWalker{
		block:   block,
		path:    path,
		endian:  byteOrder(block),
		order:   stdbinary.BigEndian,
		visited: make(map[uint32]bool),
	}
	if w.endian == binary.LittleEndian {
		w.order = stdbinary.LittleEndian
	}

	first, err := binary.Next[uint32](binary.NewCursor(block, 4), w.endian, "IFD0 offset")
	if err != nil {
		return nil, w.truncated("IFD0 offset", 4, err)
	}

	var dirs []directory
	queue := []pendingDir{{offset: first, section: SectionIFD0, chain: 0}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if w.visited[p.offset] {
			continue
		}
		w.visited[p.offset] = true

		dir, next, subs, err := w.readDirectory(p.offset, p.section)
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, dir)
		queue = append(queue, subs...)
		if p.chain >= 0 && next != 0 {
			queue = append(queue, pendingDir{offset: next, section: chainSection(p.chain + 1), chain: p.chain + 1})
		}
	}
	return dirs, nil
}

// readDirectory decodes the entry table at offset. It returns the offset of
// the next chained directory, zero when there is none, and the sub-IFDs the
// table points to.
func (w *ifdWalker) readDirectory(offset uint32, section string) (directory, uint32, []pendingDir, error) {
	dir := directory{section: section}
	if uint64(offset) >= uint64(len(w.block)) {
		return dir, 0, nil, w.truncated(section+" directory", int64(offset), nil)
	}

	c := binary.NewCursor(w.block, int(offset))
	count, err := binary.Next[uint16](c, w.endian, section+" entry count")
	if err != nil {
		return dir, 0, nil, w.truncated(section+" entry count", int64(offset), err)
	}
	if c.Remaining() < int(count)*ifdEntrySize {
		return dir, 0, nil, w.truncated(section+" entry table", int64(offset), nil)
	}

	var subs []pendingDir
	for range count {
		pos := c.Offset()
		raw, _ := c.Bytes(ifdEntrySize, section+" entry")
		e, err := w.readEntry(raw, pos, section)
		if err != nil {
			return dir, 0, nil, err
		}
		dir.entries = append(dir.entries, e)
		if sub, ok := subDirectories[e.id]; ok {
			subs = append(subs, pendingDir{offset: decodeUint32(raw[8:], w.endian), section: sub, chain: -1})
		}
	}

	// Some writers end the last directory without a next pointer.
	next, err := binary.Next[uint32](c, w.endian, section+" next offset")
	if err != nil {
		next = 0
	}
	return dir, next, subs, nil
}

// readEntry validates the value an entry declares and decodes it.
func (w *ifdWalker) readEntry(raw []byte, pos int, section string) (entry, error) {
	id := decodeUint16(raw[0:], w.endian)
	typ := tiff.DataType(decodeUint16(raw[2:], w.endian))
	count := decodeUint32(raw[4:], w.endian)

	unit, known := typeSizes[typ]
	if !known {
		return entry{id: id, raw: raw[8:12]}, nil
	}
	size := unit * uint64(count)
	if size == 0 {
		return entry{id: id}, nil
	}
	if size > 4 {
		valueOff := decodeUint32(raw[8:], w.endian)
		if uint64(valueOff)+size > uint64(len(w.block)) {
			what := fmt.Sprintf("%s tag 0x%04x value (%d bytes)", section, id, size)
			return entry{}, w.truncated(what, int64(valueOff), nil)
		}
	}

	r := bytes.NewReader(w.block)
	if _, err := r.Seek(int64(pos), io.SeekStart); err != nil {
		return entry{}, err
	}
	tag, err := tiff.DecodeTag(r, w.order)
	if err != nil {
		return entry{}, fmt.Errorf("%s: decode %s tag 0x%04x: %w", w.path, section, id, err)
	}
	return entry{id: id, tag: tag}, nil
}

func (w *ifdWalker) truncated(what string, offset int64, err error) error {
	return &types.TruncatedError{Path: w.path, What: what, Offset: offset, Err: err}
}

func decodeUint16(b []byte, endian binary.Endianness) uint16 {
	v, _ := binary.Next[uint16](binary.NewCursor(b, 0), endian, "uint16")
	return v
}

func decodeUint32(b []byte, endian binary.Endianness) uint32 {
	v, _ := binary.Next[uint32](binary.NewCursor(b, 0), endian, "uint32")
	return v
}
