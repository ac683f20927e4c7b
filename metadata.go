package imagescore

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/imagescore/internal/collect"
)

// ReadMetadata reads an image file and returns every metadata field it
// carries: the container's EXIF tags and any PNG text chunks, sorted by
// section label and then tag.
//
// On failure the error is a *MetadataError whose message can be shown to a
// user as is:
//
//	fields, err := imagescore.ReadMetadata("photo.jpg")
//	if err != nil {
//		fmt.Println(err) // "The selected file format is not supported."
//		return
//	}
//	for _, f := range fields {
//		fmt.Printf("[%s] %s = %s\n", f.Section, f.Tag, f.Value)
//	}
func ReadMetadata(path string) ([]Field, error) {
	fields, err := collect.File(path)
	if err != nil {
		return nil, newMetadataError(path, err)
	}
	return fields, nil
}

// ReadMetadataContext is ReadMetadata with a cancellation check before the
// file is read.
func ReadMetadataContext(ctx context.Context, path string) ([]Field, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadMetadata(path)
}

// CollectBytes is ReadMetadata for an image already in memory. path is
// only used in error details.
//
// A container without EXIF yields only its PNG text fields (possibly
// none). Any other decoding failure returns a *MetadataError and no
// fields.
func CollectBytes(data []byte, path string) ([]Field, error) {
	fields, err := collect.Bytes(data, path)
	if err != nil {
		return nil, newMetadataError(path, err)
	}
	return fields, nil
}

// ReadMany reads several files concurrently, using up to runtime.NumCPU()
// goroutines. Results are returned in the same order as the input paths.
//
// The first failure cancels the remaining reads and is returned.
func ReadMany(ctx context.Context, paths ...string) ([][]Field, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([][]Field, len(paths))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fields, err := ReadMetadata(path)
			if err != nil {
				return err
			}
			results[i] = fields
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
