package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go-cvbuilder-backend/internal/domain"
	"go-cvbuilder-backend/pkg/apperror"
)

type aiUsecase struct {
	service domain.AIService
}

func NewAIUsecase(service domain.AIService) domain.AIUsecase {
	return &aiUsecase{service: service}
}

// translateAIError is the single place that inspects upstream error
// text. Provider throttling surfaces as messages containing
// "rate limit"; everything else propagates unchanged.
func translateAIError(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(strings.ToLower(err.Error()), "rate limit") {
		return apperror.RateLimited("AI service is busy. Please wait a moment and try again.")
	}
	return err
}

// validTextLength bounds are in characters, not bytes, so multibyte
// input is measured the way users count it.
func validTextLength(text string, min, max int) error {
	n := utf8.RuneCountInString(text)
	if n < min {
		return apperror.Validation(fmt.Sprintf("Text must be at least %d characters", min))
	}
	if n > max {
		return apperror.Validation(fmt.Sprintf("Text must be at most %d characters", max))
	}
	return nil
}

func (u *aiUsecase) AnalyzeCV(ctx context.Context, data domain.CVData) (*domain.CVScore, error) {
	// An empty CV gets its own rejection, distinct from schema failure:
	// there is nothing for the model to score, so this check runs first.
	if !domain.HasContent(data) {
		return nil, apperror.Validation("CV must have some content before it can be analyzed")
	}

	result := domain.ParseCVData(data)
	if !result.Valid {
		return nil, apperror.ValidationFields("Invalid CV data", result.FieldMap())
	}

	score, err := u.service.ScoreCV(ctx, result.Value)
	if err != nil {
		return nil, translateAIError(err)
	}
	return score, nil
}

func (u *aiUsecase) ParseCVText(ctx context.Context, text string) (*domain.CVData, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, apperror.Validation("Text is required")
	}
	if err := validTextLength(trimmed, domain.ParseTextMinLength, domain.ParseTextMaxLength); err != nil {
		return nil, err
	}

	parsed, err := u.service.ExtractFromText(ctx, trimmed)
	if err != nil {
		return nil, translateAIError(err)
	}
	return parsed, nil
}

func (u *aiUsecase) MatchJob(ctx context.Context, data domain.CVData, jobDescription string) (*domain.JobMatch, error) {
	result := domain.ParseCVData(data)
	if !result.Valid {
		return nil, apperror.ValidationFields("Invalid CV data", result.FieldMap())
	}

	trimmed := strings.TrimSpace(jobDescription)
	if trimmed == "" {
		return nil, apperror.Validation("Job description is required")
	}
	if err := validTextLength(trimmed, domain.JobDescriptionMinLength, domain.JobDescriptionMaxLength); err != nil {
		return nil, err
	}

	match, err := u.service.MatchJob(ctx, result.Value, trimmed)
	if err != nil {
		return nil, translateAIError(err)
	}
	return match, nil
}

func (u *aiUsecase) ImproveText(ctx context.Context, text, textContext string) (*domain.ImprovedText, error) {
	trimmedText := strings.TrimSpace(text)
	if trimmedText == "" {
		return nil, apperror.Validation("Text is required")
	}
	if err := validTextLength(trimmedText, domain.ImproveTextMinLength, domain.ImproveTextMaxLength); err != nil {
		return nil, err
	}

	trimmedContext := strings.TrimSpace(textContext)
	if trimmedContext == "" {
		return nil, apperror.Validation("Context is required")
	}

	improved, err := u.service.ImproveText(ctx, trimmedText, trimmedContext)
	if err != nil {
		return nil, translateAIError(err)
	}
	return improved, nil
}
