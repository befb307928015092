package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"go-cvbuilder-backend/internal/domain"
	"go-cvbuilder-backend/internal/usecase"
	"go-cvbuilder-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock Repositories

type MockCVRepo struct {
	mock.Mock
	calls []string // records call order for sequencing assertions
}

func (m *MockCVRepo) GetAll(ctx context.Context, userID string) ([]domain.SavedCV, error) {
	m.calls = append(m.calls, "GetAll")
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavedCV), args.Error(1)
}

func (m *MockCVRepo) GetByID(ctx context.Context, id string) (*domain.SavedCV, error) {
	m.calls = append(m.calls, "GetByID")
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavedCV), args.Error(1)
}

func (m *MockCVRepo) Create(ctx context.Context, userID, title string, data domain.CVData, template domain.TemplateName) (*domain.SavedCV, error) {
	m.calls = append(m.calls, "Create")
	args := m.Called(ctx, userID, title, data, template)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavedCV), args.Error(1)
}

func (m *MockCVRepo) Update(ctx context.Context, id string, patch domain.CVPatch) (*domain.SavedCV, error) {
	m.calls = append(m.calls, "Update")
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavedCV), args.Error(1)
}

func (m *MockCVRepo) Delete(ctx context.Context, id string) error {
	m.calls = append(m.calls, "Delete")
	return m.Called(ctx, id).Error(0)
}

func (m *MockCVRepo) SetDefault(ctx context.Context, id string) error {
	m.calls = append(m.calls, "SetDefault")
	return m.Called(ctx, id).Error(0)
}

func (m *MockCVRepo) Duplicate(ctx context.Context, id string) (*domain.SavedCV, error) {
	m.calls = append(m.calls, "Duplicate")
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavedCV), args.Error(1)
}

func authedCtx(userID string) context.Context {
	return context.WithValue(context.Background(), domain.KeyUserID, userID)
}

func populatedCVData() domain.CVData {
	data := domain.DefaultCVData()
	data.PersonalInfo.FullName = "Jane Doe"
	data.Summary = "Engineer."
	data.Experience = []domain.Experience{{ID: "e1", Company: "Acme", Position: "Dev", Achievements: []string{}}}
	data.Education = []domain.Education{{ID: "d1", Institution: "State", Degree: "BSc", Field: "CS"}}
	return data
}

func savedCV(id, userID string, updated time.Time) domain.SavedCV {
	return domain.SavedCV{
		ID:               id,
		UserID:           userID,
		Title:            "My CV",
		CVData:           populatedCVData(),
		SelectedTemplate: domain.TemplateModern,
		CreatedAt:        updated,
		UpdatedAt:        updated,
	}
}

func TestCreateCV(t *testing.T) {
	t.Run("rejects empty title before touching the repository", func(t *testing.T) {
		mockRepo := new(MockCVRepo)
		uc := usecase.NewCVUsecase(mockRepo)

		_, err := uc.Create(authedCtx("user1"), domain.CreateCVInput{
			Title:    "",
			CVData:   populatedCVData(),
			Template: domain.TemplateModern,
		})

		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects whitespace-only title", func(t *testing.T) {
		mockRepo := new(MockCVRepo)
		uc := usecase.NewCVUsecase(mockRepo)

		_, err := uc.Create(authedCtx("user1"), domain.CreateCVInput{
			Title:    "   ",
			CVData:   populatedCVData(),
			Template: domain.TemplateModern,
		})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("rejects title over 100 chars", func(t *testing.T) {
		mockRepo := new(MockCVRepo)
		uc := usecase.NewCVUsecase(mockRepo)

		long := make([]byte, 101)
		for i := range long {
			long[i] = 'a'
		}
		_, err := uc.Create(authedCtx("user1"), domain.CreateCVInput{
			Title:    string(long),
			CVData:   populatedCVData(),
			Template: domain.TemplateModern,
		})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("counts title length in characters, not bytes", func(t *testing.T) {
		mockRepo := new(MockCVRepo)
		uc := usecase.NewCVUsecase(mockRepo)
		cv := savedCV("cv1", "user1", time.Now())

		// 100 characters but 200 bytes.
		title := strings.Repeat("ю", 100)
		mockRepo.On("Create", mock.Anything, "user1", title, mock.Anything, domain.TemplateModern).Return(&cv, nil)

		_, err := uc.Create(authedCtx("user1"), domain.CreateCVInput{
			Title:    title,
			CVData:   populatedCVData(),
			Template: domain.TemplateModern,
		})

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("trims the title before delegating", func(t *testing.T) {
		mockRepo := new(MockCVRepo)
		uc := usecase.NewCVUsecase(mockRepo)
		cv := savedCV("cv1", "user1", time.Now())
		mockRepo.On("Create", mock.Anything, "user1", "My CV", mock.Anything, domain.TemplateModern).Return(&cv, nil)

		got, err := uc.Create(authedCtx("user1"), domain.CreateCVInput{
			Title:    "  My CV  ",
			CVData:   populatedCVData(),
			Template: domain.TemplateModern,
		})

		require.NoError(t, err)
		assert.Equal(t, "cv1", got.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects invalid cv data with field errors", func(t *testing.T) {
		mockRepo := new(MockCVRepo)
		uc := usecase.NewCVUsecase(mockRepo)

		data := populatedCVData()
		data.PersonalInfo.FullName = ""
		_, err := uc.Create(authedCtx("user1"), domain.CreateCVInput{
			Title:    "My CV",
			CVData:   data,
			Template: domain.TemplateModern,
		})

		require.Error(t, err)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindValidation, appErr.Kind)
		assert.Contains(t, appErr.Fields, "personalInfo.fullName")
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects unknown template", func(t *testing.T) {
		mockRepo := new(MockCVRepo)
		uc := usecase.NewCVUsecase(mockRepo)

		_, err := uc.Create(authedCtx("user1"), domain.CreateCVInput{
			Title:    "My CV",
			CVData:   populatedCVData(),
			Template: "vintage",
		})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("fails safe without an authenticated user", func(t *testing.T) {
		mockRepo := new(MockCVRepo)
		uc := usecase.NewCVUsecase(mockRepo)

		_, err := uc.Create(context.Background(), domain.CreateCVInput{
			Title:    "My CV",
			CVData:   populatedCVData(),
			Template: domain.TemplateModern,
		})
		assert.Equal(t, apperror.KindAuthentication, apperror.KindOf(err))
	})
}

func TestGetCVByID(t *testing.T) {
	t.Run("maps repository absence to NotFound", func(t *testing.T) {
		mockRepo := new(MockCVRepo)
		uc := usecase.NewCVUsecase(mockRepo)
		mockRepo.On("GetByID", mock.Anything, "missing").Return(nil, nil)

		_, err := uc.GetByID(context.Background(), "missing")

		require.Error(t, err)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindNotFound, appErr.Kind)
		assert.Equal(t, "CV", appErr.Entity)
		assert.Equal(t, "missing", appErr.ID)
	})

	t.Run("returns the record when present", func(t *testing.T) {
		mockRepo := new(MockCVRepo)
		uc := usecase.NewCVUsecase(mockRepo)
		cv := savedCV("cv1", "user1", time.Now())
		mockRepo.On("GetByID", mock.Anything, "cv1").Return(&cv, nil)

		got, err := uc.GetByID(context.Background(), "cv1")
		require.NoError(t, err)
		assert.Equal(t, "cv1", got.ID)
	})
}

func TestGetUserCVs(t *testing.T) {
	t.Run("sorts by updatedAt descending with stable ties", func(t *testing.T) {
		mockRepo := new(MockCVRepo)
		uc := usecase.NewCVUsecase(mockRepo)

		base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		older := savedCV("older", "user1", base.Add(-time.Hour))
		newer := savedCV("newer", "user1", base)
		tieA := savedCV("tieA", "user1", base.Add(-2*time.Hour))
		tieB := savedCV("tieB", "user1", base.Add(-2*time.Hour))
		mockRepo.On("GetAll", mock.Anything, "user1").Return([]domain.SavedCV{older, tieA, newer, tieB}, nil)

		list, err := uc.GetUserCVs(authedCtx("user1"))

		require.NoError(t, err)
		assert.Equal(t, 4, list.Total)
		ids := []string{list.CVs[0].ID, list.CVs[1].ID, list.CVs[2].ID, list.CVs[3].ID}
		assert.Equal(t, []string{"newer", "older", "tieA", "tieB"}, ids)
	})

	t.Run("requires an authenticated user", func(t *testing.T) {
		mockRepo := new(MockCVRepo)
		uc := usecase.NewCVUsecase(mockRepo)

		_, err := uc.GetUserCVs(context.Background())
		assert.Equal(t, apperror.KindAuthentication, apperror.KindOf(err))
		mockRepo.AssertNotCalled(t, "GetAll")
	})
}

func TestUpdateCV(t *testing.T) {
	title := "Renamed"
	padded := "  Renamed  "
	badTemplate := domain.TemplateName("vintage")

	t.Run("checks existence before validating the patch", func(t *testing.T) {
		mockRepo := new(MockCVRepo)
		uc := usecase.NewCVUsecase(mockRepo)
		mockRepo.On("GetByID", mock.Anything, "missing").Return(nil, nil)

		_, err := uc.Update(context.Background(), "missing", domain.CVPatch{Title: &title})
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
		mockRepo.AssertNotCalled(t, "Update")
	})

	t.Run("trims a supplied title", func(t *testing.T) {
		mockRepo := new(MockCVRepo)
		uc := usecase.NewCVUsecase(mockRepo)
		cv := savedCV("cv1", "user1", time.Now())
		mockRepo.On("GetByID", mock.Anything, "cv1").Return(&cv, nil)
		mockRepo.On("Update", mock.Anything, "cv1", mock.MatchedBy(func(p domain.CVPatch) bool {
			return p.Title != nil && *p.Title == "Renamed" && p.CVData == nil
		})).Return(&cv, nil)

		_, err := uc.Update(context.Background(), "cv1", domain.CVPatch{Title: &padded})
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("validates only present fields", func(t *testing.T) {
		mockRepo := new(MockCVRepo)
		uc := usecase.NewCVUsecase(mockRepo)
		cv := savedCV("cv1", "user1", time.Now())
		mockRepo.On("GetByID", mock.Anything, "cv1").Return(&cv, nil)
		mockRepo.On("Update", mock.Anything, "cv1", mock.Anything).Return(&cv, nil)

		// A patch with no title at all must not trip title validation.
		newTemplate := domain.TemplateClassic
		_, err := uc.Update(context.Background(), "cv1", domain.CVPatch{SelectedTemplate: &newTemplate})
		assert.NoError(t, err)
	})

	t.Run("rejects invalid cvData in the patch", func(t *testing.T) {
		mockRepo := new(MockCVRepo)
		uc := usecase.NewCVUsecase(mockRepo)
		cv := savedCV("cv1", "user1", time.Now())
		mockRepo.On("GetByID", mock.Anything, "cv1").Return(&cv, nil)

		bad := populatedCVData()
		bad.PersonalInfo.FullName = ""
		_, err := uc.Update(context.Background(), "cv1", domain.CVPatch{CVData: &bad})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		mockRepo.AssertNotCalled(t, "Update")
	})

	t.Run("rejects unknown template in the patch", func(t *testing.T) {
		mockRepo := new(MockCVRepo)
		uc := usecase.NewCVUsecase(mockRepo)
		cv := savedCV("cv1", "user1", time.Now())
		mockRepo.On("GetByID", mock.Anything, "cv1").Return(&cv, nil)

		_, err := uc.Update(context.Background(), "cv1", domain.CVPatch{SelectedTemplate: &badTemplate})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})
}

func TestDeleteCV(t *testing.T) {
	t.Run("missing id rejects with NotFound and never deletes", func(t *testing.T) {
		mockRepo := new(MockCVRepo)
		uc := usecase.NewCVUsecase(mockRepo)
		mockRepo.On("GetByID", mock.Anything, "missing").Return(nil, nil)

		err := uc.Delete(context.Background(), "missing")

		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
		mockRepo.AssertNotCalled(t, "Delete")
	})

	t.Run("existence check strictly precedes the delete", func(t *testing.T) {
		mockRepo := new(MockCVRepo)
		uc := usecase.NewCVUsecase(mockRepo)
		cv := savedCV("exists", "user1", time.Now())
		mockRepo.On("GetByID", mock.Anything, "exists").Return(&cv, nil)
		mockRepo.On("Delete", mock.Anything, "exists").Return(nil)

		err := uc.Delete(context.Background(), "exists")

		require.NoError(t, err)
		assert.Equal(t, []string{"GetByID", "Delete"}, mockRepo.calls)
	})
}

func TestDuplicateCV(t *testing.T) {
	t.Run("missing id rejects with NotFound", func(t *testing.T) {
		mockRepo := new(MockCVRepo)
		uc := usecase.NewCVUsecase(mockRepo)
		mockRepo.On("GetByID", mock.Anything, "missing").Return(nil, nil)

		_, err := uc.Duplicate(context.Background(), "missing")
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
		mockRepo.AssertNotCalled(t, "Duplicate")
	})

	t.Run("delegates to the repository", func(t *testing.T) {
		mockRepo := new(MockCVRepo)
		uc := usecase.NewCVUsecase(mockRepo)
		cv := savedCV("cv1", "user1", time.Now())
		copied := savedCV("cv2", "user1", time.Now())
		copied.Title = "My CV (Copy)"
		mockRepo.On("GetByID", mock.Anything, "cv1").Return(&cv, nil)
		mockRepo.On("Duplicate", mock.Anything, "cv1").Return(&copied, nil)

		got, err := uc.Duplicate(context.Background(), "cv1")
		require.NoError(t, err)
		assert.Equal(t, "My CV (Copy)", got.Title)
	})
}

func TestSetDefaultCV(t *testing.T) {
	mockRepo := new(MockCVRepo)
	uc := usecase.NewCVUsecase(mockRepo)
	cv := savedCV("cv1", "user1", time.Now())
	mockRepo.On("GetByID", mock.Anything, "cv1").Return(&cv, nil)
	mockRepo.On("SetDefault", mock.Anything, "cv1").Return(nil)

	require.NoError(t, uc.SetDefault(context.Background(), "cv1"))
	assert.Equal(t, []string{"GetByID", "SetDefault"}, mockRepo.calls)
}

func TestExportCV(t *testing.T) {
	t.Run("rejects unknown format", func(t *testing.T) {
		mockRepo := new(MockCVRepo)
		uc := usecase.NewCVUsecase(mockRepo)

		_, err := uc.Export(context.Background(), "cv1", "xlsx")
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		mockRepo.AssertNotCalled(t, "GetByID")
	})

	t.Run("rejects incomplete CVs", func(t *testing.T) {
		mockRepo := new(MockCVRepo)
		uc := usecase.NewCVUsecase(mockRepo)
		cv := savedCV("cv1", "user1", time.Now())
		cv.CVData.Education = nil
		mockRepo.On("GetByID", mock.Anything, "cv1").Return(&cv, nil)

		_, err := uc.Export(context.Background(), "cv1", domain.ExportPDF)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("returns the CV with the confirmed format", func(t *testing.T) {
		mockRepo := new(MockCVRepo)
		uc := usecase.NewCVUsecase(mockRepo)
		cv := savedCV("cv1", "user1", time.Now())
		mockRepo.On("GetByID", mock.Anything, "cv1").Return(&cv, nil)

		result, err := uc.Export(context.Background(), "cv1", domain.ExportJSON)
		require.NoError(t, err)
		assert.Equal(t, domain.ExportJSON, result.Format)
		assert.Equal(t, "cv1", result.CV.ID)
	})
}
