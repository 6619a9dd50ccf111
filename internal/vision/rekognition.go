package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

const (
	rekognitionMaxLabels     = 10
	rekognitionMinConfidence = 75
)

// Labels that indicate an untidy, unmade bed when Rekognition reports them
// with high confidence.
var messyLabels = map[string]struct{}{
	"clutter": {},
	"mess":    {},
	"laundry": {},
}

// RekognitionClassifier maps AWS Rekognition labels onto a made-bed verdict.
// It is a coarser judge than the OpenAI provider but needs no prompt round
// trip.
type RekognitionClassifier struct {
	client *rekognition.Client
}

func NewRekognitionClassifier(ctx context.Context, region string) (*RekognitionClassifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &RekognitionClassifier{client: rekognition.NewFromConfig(cfg)}, nil
}

func (classifier *RekognitionClassifier) ClassifyBed(ctx context.Context, imageData string) (Verdict, error) {
	imageBytes, err := DecodeImage(imageData)
	if err != nil {
		return Verdict{}, err
	}

	output, err := classifier.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: imageBytes},
		MaxLabels:     aws.Int32(rekognitionMaxLabels),
		MinConfidence: aws.Float32(rekognitionMinConfidence),
	})
	if err != nil {
		return Verdict{}, fmt.Errorf("detect labels: %w", err)
	}

	return verdictFromLabels(output.Labels), nil
}

func verdictFromLabels(labels []types.Label) Verdict {
	bedConfidence := float64(0)
	messy := false
	names := make([]string, 0, len(labels))

	for _, label := range labels {
		if label.Name == nil {
			continue
		}
		name := strings.ToLower(*label.Name)
		names = append(names, name)

		confidence := float64(0)
		if label.Confidence != nil {
			confidence = float64(*label.Confidence)
		}

		if name == "bed" && confidence > bedConfidence {
			bedConfidence = confidence
		}
		if _, found := messyLabels[name]; found {
			messy = true
		}
	}

	if bedConfidence == 0 {
		return Verdict{Feedback: "No bed was detected in the photo."}
	}
	if messy {
		return Verdict{
			Confidence: clampConfidence(bedConfidence / 100),
			Feedback:   "A bed was detected but it does not look tidy: " + strings.Join(names, ", "),
		}
	}
	return Verdict{
		IsMade:     true,
		Confidence: clampConfidence(bedConfidence / 100),
		Feedback:   "Detected a tidy bed (" + strings.Join(names, ", ") + ").",
	}
}

// DecodeImage accepts either a bare base64 payload or a data URI and returns
// the raw image bytes.
func DecodeImage(imageData string) ([]byte, error) {
	payload := imageData
	if strings.HasPrefix(imageData, "data:") {
		parts := strings.SplitN(imageData, ",", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid data uri")
		}
		payload = parts[1]
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return decoded, nil
}
