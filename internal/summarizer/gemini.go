package summarizer

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"
)

// Summarize sends the same prompt through Gemini. There is no retry.
func (s *geminiSummarizer) Summarize(ctx context.Context, text, startDate string) (string, error) {
	prompt := BuildPrompt(text, meetingDate(startDate, s.now))

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  s.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", &TransportError{Err: err}
	}

	s.logger.Info(ctx, "Requesting minutes from %s (%d chars)", s.model, len(text))

	result, err := client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		return "", classifyGeminiError(err)
	}

	summary := candidateText(result)
	if strings.TrimSpace(summary) == "" {
		return "", ErrEmptyCompletion
	}
	return summary, nil
}

func candidateText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			text += part.Text
		}
	}
	return text
}

func classifyGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &RemoteServiceError{StatusCode: apiErr.Code, Body: apiErr.Message}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &RemoteServiceError{StatusCode: apiErrPtr.Code, Body: apiErrPtr.Message}
	}
	return &TransportError{Err: err}
}
