package main

import (
	"bytes"
	"fmt"
	"hash/crc32"
	"os"

	"github.com/simonhull/imagescore/internal/pngtext"
)

// Prints the chunk stream of a PNG to check what the text extractor sees.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: chunk-dump <file.png>")
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	count := 0
	for chunk := range pngtext.Chunks(data) {
		count++
		fmt.Printf("%s (length: %d, offset: %d, crc: %s)\n",
			chunk.Type, len(chunk.Data), chunk.Offset, crcStatus(chunk))

		switch chunk.Type {
		case "tEXt", "zTXt", "iTXt":
			if i := bytes.IndexByte(chunk.Data, 0); i > 0 {
				fmt.Printf("  keyword: %q\n", chunk.Data[:i])
			}
		case "eXIf":
			fmt.Printf("  exif block: %d bytes\n", len(chunk.Data))
		}
	}
	if count == 0 {
		fmt.Println("No PNG chunks found (missing signature?)")
		os.Exit(1)
	}

	for _, f := range pngtext.Extract(data) {
		fmt.Printf("[%s] %s = %q\n", f.Section, f.Tag, f.Value)
	}
}

func crcStatus(chunk pngtext.Chunk) string {
	h := crc32.NewIEEE()
	h.Write([]byte(chunk.Type))
	h.Write(chunk.Data)
	if h.Sum32() == chunk.CRC {
		return "ok"
	}
	return fmt.Sprintf("mismatch %08x", chunk.CRC)
}
