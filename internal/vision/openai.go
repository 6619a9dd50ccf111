package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultOpenAIEndpoint = "https://api.openai.com/v1/chat/completions"
	defaultOpenAIModel    = "gpt-4o"

	bedSystemPrompt = "You are a bed-making verification assistant. Analyze the image and determine if the bed appears to be properly made with the following criteria: 1. Sheets and/or comforter are pulled up, 2. Surface is relatively flat and unwrinkled, 3. Pillows are arranged neatly (if visible)."
	bedUserPrompt   = `Analyze this image and determine if the bed appears to be properly made. Respond with a JSON object: {"is_made": true|false, "confidence": 0-100, "feedback": "brief explanation"}`
)

var ErrOpenAIKeyMissing = errors.New("openai api key is not configured")

// OpenAIClassifier calls the OpenAI chat-completions vision endpoint.
type OpenAIClassifier struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

func NewOpenAIClassifier(apiKey string, model string) *OpenAIClassifier {
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIClassifier{
		apiKey:   apiKey,
		model:    model,
		endpoint: defaultOpenAIEndpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
	MaxTokens int `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type bedVerdictPayload struct {
	IsMade     bool    `json:"is_made"`
	Confidence float64 `json:"confidence"`
	Feedback   string  `json:"feedback"`
}

func (classifier *OpenAIClassifier) ClassifyBed(ctx context.Context, imageData string) (Verdict, error) {
	if strings.TrimSpace(classifier.apiKey) == "" {
		return Verdict{}, ErrOpenAIKeyMissing
	}

	request := chatRequest{
		Model: classifier.model,
		Messages: []chatMessage{
			{Role: "system", Content: bedSystemPrompt},
			{Role: "user", Content: []any{
				map[string]any{"type": "text", "text": bedUserPrompt},
				map[string]any{"type": "image_url", "image_url": map[string]string{"url": asDataURI(imageData)}},
			}},
		},
		MaxTokens: 300,
	}
	request.ResponseFormat.Type = "json_object"

	body, err := json.Marshal(request)
	if err != nil {
		return Verdict{}, fmt.Errorf("encode vision request: %w", err)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, classifier.endpoint, bytes.NewReader(body))
	if err != nil {
		return Verdict{}, fmt.Errorf("build vision request: %w", err)
	}
	httpRequest.Header.Set("Content-Type", "application/json")
	httpRequest.Header.Set("Authorization", "Bearer "+classifier.apiKey)

	response, err := classifier.client.Do(httpRequest)
	if err != nil {
		return Verdict{}, fmt.Errorf("call vision api: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(response.Body, 2048))
		return Verdict{}, fmt.Errorf("vision api status %d: %s", response.StatusCode, strings.TrimSpace(string(payload)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(response.Body).Decode(&parsed); err != nil {
		return Verdict{}, fmt.Errorf("decode vision response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return Verdict{}, errors.New("vision response has no choices")
	}

	return verdictFromContent(parsed.Choices[0].Message.Content), nil
}

// verdictFromContent parses the model's JSON answer, falling back to a text
// heuristic when the model ignored the response contract.
func verdictFromContent(content string) Verdict {
	var payload bedVerdictPayload
	if err := json.Unmarshal([]byte(content), &payload); err == nil {
		return Verdict{
			IsMade:     payload.IsMade,
			Confidence: clampConfidence(payload.Confidence / 100),
			Feedback:   payload.Feedback,
		}
	}

	lowered := strings.ToLower(content)
	isMade := strings.Contains(lowered, "yes") ||
		(strings.Contains(lowered, "made") &&
			!strings.Contains(lowered, "not made") &&
			!strings.Contains(lowered, "isn't made"))

	feedback := "We had trouble analyzing your bed, but it appears to be not made properly."
	if isMade {
		feedback = "We had trouble analyzing your bed, but it appears to be made."
	}
	return Verdict{IsMade: isMade, Feedback: feedback}
}

func asDataURI(imageData string) string {
	if strings.HasPrefix(imageData, "data:") {
		return imageData
	}
	return "data:image/jpeg;base64," + imageData
}

func clampConfidence(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
