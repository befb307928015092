package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"go-cvbuilder-backend/internal/domain"
)

const defaultModel = "gemini-1.5-flash"

// GeminiService implements domain.AIService on top of the Gemini API.
// Every method asks the model for a JSON-only response and unmarshals
// it into the corresponding domain type.
type GeminiService struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiService(ctx context.Context, apiKey string, modelName string) (*GeminiService, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if modelName == "" {
		modelName = defaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.1)
	model.ResponseMIMEType = "application/json"

	return &GeminiService{client: client, model: model}, nil
}

func (s *GeminiService) Close() error {
	return s.client.Close()
}

func (s *GeminiService) ScoreCV(ctx context.Context, data domain.CVData) (*domain.CVScore, error) {
	cvJSON, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cv data: %w", err)
	}

	var score domain.CVScore
	if err := s.generateJSON(ctx, fmt.Sprintf(scoreCVPrompt, cvJSON), &score); err != nil {
		return nil, err
	}
	return &score, nil
}

func (s *GeminiService) ExtractFromText(ctx context.Context, text string) (*domain.CVData, error) {
	raw, err := s.generate(ctx, fmt.Sprintf(extractPrompt, text))
	if err != nil {
		return nil, err
	}

	var partial domain.CVData
	if err := json.Unmarshal([]byte(raw), &partial); err != nil {
		return nil, fmt.Errorf("gemini returned invalid json: %w", err)
	}

	// The model only fills content fields. Complete the aggregate so
	// the result passes schema validation downstream.
	data := domain.DefaultCVData()
	data.PersonalInfo = partial.PersonalInfo
	data.Summary = partial.Summary
	data.Experience = partial.Experience
	data.Education = partial.Education
	data.Skills = partial.Skills
	data.Languages = partial.Languages
	data.Certificates = partial.Certificates
	assignIDs(&data)

	return &data, nil
}

func (s *GeminiService) MatchJob(ctx context.Context, data domain.CVData, jobDescription string) (*domain.JobMatch, error) {
	cvJSON, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cv data: %w", err)
	}

	var match domain.JobMatch
	if err := s.generateJSON(ctx, fmt.Sprintf(matchJobPrompt, cvJSON, jobDescription), &match); err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *GeminiService) ImproveText(ctx context.Context, text string, textContext string) (*domain.ImprovedText, error) {
	if textContext == "" {
		textContext = "a resume section"
	}

	var improved domain.ImprovedText
	if err := s.generateJSON(ctx, fmt.Sprintf(improveTextPrompt, textContext, text), &improved); err != nil {
		return nil, err
	}
	if improved.ImprovedText == "" {
		return nil, errors.New("gemini returned an empty rewrite")
	}
	return &improved, nil
}

func (s *GeminiService) generateJSON(ctx context.Context, prompt string, out any) error {
	raw, err := s.generate(ctx, prompt)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("gemini returned invalid json: %w", err)
	}
	return nil
}

func (s *GeminiService) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", translateGeminiError(err)
	}

	text := extractTextFromResponse(resp)
	if text == "" {
		return "", errors.New("gemini returned an empty response")
	}
	return cleanJSONBlock(text), nil
}

// translateGeminiError normalizes provider throttling so callers can
// match on "rate limit" regardless of the wording Google uses.
func translateGeminiError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == 429 {
		return fmt.Errorf("gemini rate limit exceeded: %w", err)
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "quota") || strings.Contains(msg, "resource exhausted") || strings.Contains(msg, "429") {
		return fmt.Errorf("gemini rate limit exceeded: %w", err)
	}
	return fmt.Errorf("gemini request failed: %w", err)
}

func extractTextFromResponse(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return sb.String()
}

// cleanJSONBlock strips markdown code fences the model sometimes wraps
// around JSON output despite the response MIME type.
func cleanJSONBlock(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}

// assignIDs gives every extracted array element a fresh id. The model
// is never asked to produce ids.
func assignIDs(data *domain.CVData) {
	f := domain.DefaultFactory
	for i := range data.Experience {
		data.Experience[i].ID = f.NewID()
	}
	for i := range data.Education {
		data.Education[i].ID = f.NewID()
	}
	for i := range data.Skills {
		data.Skills[i].ID = f.NewID()
	}
	for i := range data.Languages {
		data.Languages[i].ID = f.NewID()
	}
	for i := range data.Certificates {
		data.Certificates[i].ID = f.NewID()
	}
}
