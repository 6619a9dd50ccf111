package vision

import "context"

// StubClassifier returns a fixed verdict. Used in development mode and tests
// where no vision provider is configured.
type StubClassifier struct {
	Result Verdict
	Err    error
}

func (classifier *StubClassifier) ClassifyBed(ctx context.Context, imageData string) (Verdict, error) {
	if classifier.Err != nil {
		return Verdict{}, classifier.Err
	}
	return classifier.Result, nil
}
