// Package vision classifies bed photos. The verification flow only consumes
// the verdict; providers are interchangeable behind Classifier.
package vision

import "context"

// Verdict is the outcome of classifying one photo.
type Verdict struct {
	IsMade     bool
	Confidence float64 // 0..1
	Feedback   string
}

type Classifier interface {
	// ClassifyBed judges whether the photographed bed is properly made.
	// imageData is either a bare base64 payload or a data URI.
	ClassifyBed(ctx context.Context, imageData string) (Verdict, error)
}
