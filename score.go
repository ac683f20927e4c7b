package imagescore

import "github.com/simonhull/imagescore/internal/score"

// ExtractScore returns the aesthetic score embedded in fields.
//
// The first field, in the given order, whose tag reads "aesthetic score"
// or "aestheticscore" (ignoring case, surrounding space, and treating '_'
// and '-' as spaces) is used; its value is scanned for the first finite
// number, so "Score: 0.82/1.0" yields 0.82. ok is false when there is no
// such field or it holds no number.
func ExtractScore(fields []Field) (value float64, ok bool) {
	return score.Extract(fields)
}
