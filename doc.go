// Package imagescore reads image metadata and ranks images by an embedded
// aesthetic score.
//
// # Quick Start
//
// Reading the metadata of one image:
//
//	fields, err := imagescore.ReadMetadata("photo.jpg")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, f := range fields {
//		fmt.Printf("[%s] %s = %s\n", f.Section, f.Tag, f.Value)
//	}
//
// Finding the best images in a folder:
//
//	matches, err := imagescore.FindAestheticMatches("/srv/photos", 0.5)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, m := range matches {
//		fmt.Printf("%.2f  %s\n", m.Score, m.Path)
//	}
//
// # Supported Formats
//
//   - JPEG: EXIF in the APP1 segment
//   - TIFF: the file is the EXIF block
//   - PNG: the eXIf chunk plus tEXt, zTXt and iTXt text chunks
//   - WebP: the EXIF RIFF chunk
//   - HEIF/HEIC and AVIF: the Exif item payload
//   - BMP and GIF are recognized but carry no EXIF
//
// # Fields
//
// Every field has a tag, a section and a display value. Container tags use
// the directory they were read from as their section ("IFD0", "Exif",
// "GPS", "Interoperability", "IFD1"); PNG text chunks use "PNG tEXt",
// "PNG zTXt" and "PNG iTXt". Results are sorted by section label, then tag.
//
// # Scores
//
// A score is a field tagged "aesthetic score" (any case, with '_' or '-'
// for the space, or written as one word) whose value contains a number.
// Scanners usually write it as a PNG tEXt chunk:
//
//	aesthetic_score = 0.82
//
// # Errors
//
// ReadMetadata returns a *MetadataError and Scan returns a *ScanError.
// Both print a message meant for users and match the Err* sentinels with
// errors.Is. A folder scan never fails because of one bad file; such files
// are skipped.
package imagescore
