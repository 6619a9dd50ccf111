package vision

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

func label(name string, confidence float32) types.Label {
	return types.Label{Name: aws.String(name), Confidence: aws.Float32(confidence)}
}

func TestVerdictFromLabels(t *testing.T) {
	verdict := verdictFromLabels([]types.Label{
		label("Bed", 94.5),
		label("Furniture", 99.1),
		label("Bedroom", 88.0),
	})
	if !verdict.IsMade {
		t.Fatal("tidy bed labels should produce a made verdict")
	}
	if verdict.Confidence < 0.94 || verdict.Confidence > 0.95 {
		t.Fatalf("confidence = %v, want bed label confidence", verdict.Confidence)
	}
}

func TestVerdictFromLabelsMessy(t *testing.T) {
	verdict := verdictFromLabels([]types.Label{
		label("Bed", 91.0),
		label("Clutter", 82.3),
	})
	if verdict.IsMade {
		t.Fatal("a cluttered bed is not made")
	}
	if verdict.Confidence == 0 {
		t.Fatal("bed confidence still reported for a messy verdict")
	}
}

func TestVerdictFromLabelsNoBed(t *testing.T) {
	verdict := verdictFromLabels([]types.Label{
		label("Desk", 95.0),
		label("Chair", 90.0),
	})
	if verdict.IsMade || verdict.Confidence != 0 {
		t.Fatalf("no bed detected must return an empty verdict, got %+v", verdict)
	}
	if verdict.Feedback == "" {
		t.Fatal("no-bed verdicts carry feedback")
	}
}

func TestVerdictFromLabelsNilFields(t *testing.T) {
	verdict := verdictFromLabels([]types.Label{
		{Name: nil},
		{Name: aws.String("Bed")},
	})
	if verdict.IsMade {
		t.Fatal("a bed label without confidence cannot produce a made verdict")
	}
}

func TestDecodeImage(t *testing.T) {
	decoded, err := DecodeImage("aGVsbG8=")
	if err != nil {
		t.Fatalf("bare base64: %v", err)
	}
	if string(decoded) != "hello" {
		t.Fatalf("decoded = %q", decoded)
	}

	decoded, err = DecodeImage("data:image/jpeg;base64,aGVsbG8=")
	if err != nil {
		t.Fatalf("data uri: %v", err)
	}
	if string(decoded) != "hello" {
		t.Fatalf("decoded = %q", decoded)
	}

	if _, err := DecodeImage("data:image/jpeg;base64"); err == nil {
		t.Fatal("a data uri without a payload must fail")
	}
	if _, err := DecodeImage("!!not-base64!!"); err == nil {
		t.Fatal("invalid base64 must fail")
	}
}
