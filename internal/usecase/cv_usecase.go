package usecase

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"go-cvbuilder-backend/internal/domain"
	"go-cvbuilder-backend/pkg/apperror"
)

type cvUsecase struct {
	repo domain.CVRepository
}

func NewCVUsecase(repo domain.CVRepository) domain.CVUsecase {
	return &cvUsecase{repo: repo}
}

func (u *cvUsecase) currentUser(ctx context.Context) (string, error) {
	userID := domain.UserIDFromContext(ctx)
	if userID == "" {
		return "", apperror.Unauthenticated("User not authenticated")
	}
	return userID, nil
}

// requireCV confirms the record exists before any mutation. The lookup
// strictly precedes the delegated call in every mutating operation.
func (u *cvUsecase) requireCV(ctx context.Context, id string) (*domain.SavedCV, error) {
	cv, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cv == nil {
		return nil, apperror.NotFound("CV", id)
	}
	return cv, nil
}

func validateTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", apperror.Validation("Title is required")
	}
	if utf8.RuneCountInString(trimmed) > domain.MaxCVTitleLength {
		return "", apperror.Validation("Title must be at most 100 characters")
	}
	return trimmed, nil
}

func (u *cvUsecase) Create(ctx context.Context, input domain.CreateCVInput) (*domain.SavedCV, error) {
	userID, err := u.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	title, err := validateTitle(input.Title)
	if err != nil {
		return nil, err
	}

	if !input.Template.Valid() {
		return nil, apperror.Validation("Unknown template")
	}

	result := domain.ParseCVData(input.CVData)
	if !result.Valid {
		return nil, apperror.ValidationFields("Invalid CV data", result.FieldMap())
	}

	return u.repo.Create(ctx, userID, title, result.Value, input.Template)
}

func (u *cvUsecase) GetByID(ctx context.Context, id string) (*domain.SavedCV, error) {
	return u.requireCV(ctx, id)
}

func (u *cvUsecase) GetUserCVs(ctx context.Context) (*domain.CVList, error) {
	userID, err := u.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	cvs, err := u.repo.GetAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Most recently updated first; stable sort keeps input order on ties.
	sort.SliceStable(cvs, func(i, j int) bool {
		return cvs[i].UpdatedAt.After(cvs[j].UpdatedAt)
	})

	return &domain.CVList{CVs: cvs, Total: len(cvs)}, nil
}

func (u *cvUsecase) Update(ctx context.Context, id string, patch domain.CVPatch) (*domain.SavedCV, error) {
	if _, err := u.requireCV(ctx, id); err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title, err := validateTitle(*patch.Title)
		if err != nil {
			return nil, err
		}
		patch.Title = &title
	}

	if patch.CVData != nil {
		result := domain.ParseCVData(*patch.CVData)
		if !result.Valid {
			return nil, apperror.ValidationFields("Invalid CV data", result.FieldMap())
		}
	}

	if patch.SelectedTemplate != nil && !patch.SelectedTemplate.Valid() {
		return nil, apperror.Validation("Unknown template")
	}

	// The patch replaces stored values wholesale; cvData is never merged.
	return u.repo.Update(ctx, id, patch)
}

func (u *cvUsecase) Delete(ctx context.Context, id string) error {
	if _, err := u.requireCV(ctx, id); err != nil {
		return err
	}
	return u.repo.Delete(ctx, id)
}

func (u *cvUsecase) Duplicate(ctx context.Context, id string) (*domain.SavedCV, error) {
	if _, err := u.requireCV(ctx, id); err != nil {
		return nil, err
	}
	// The repository owns the copied title convention.
	return u.repo.Duplicate(ctx, id)
}

func (u *cvUsecase) SetDefault(ctx context.Context, id string) error {
	if _, err := u.requireCV(ctx, id); err != nil {
		return err
	}
	// The repository unsets any prior default for the owner.
	return u.repo.SetDefault(ctx, id)
}

func (u *cvUsecase) Export(ctx context.Context, id string, format domain.ExportFormat) (*domain.ExportResult, error) {
	if !format.Valid() {
		return nil, apperror.Validation("Unknown export format")
	}

	cv, err := u.requireCV(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.IsComplete(cv.CVData) {
		return nil, apperror.Validation("CV is incomplete: add personal info, a summary, and at least one experience and education entry")
	}

	return &domain.ExportResult{CV: cv, Format: format}, nil
}
