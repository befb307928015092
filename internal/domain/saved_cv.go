package domain

import (
	"context"
	"time"
)

// TemplateName is the closed set of visual templates.
type TemplateName string

const (
	TemplateModern    TemplateName = "modern"
	TemplateClassic   TemplateName = "classic"
	TemplateMinimal   TemplateName = "minimal"
	TemplateCreative  TemplateName = "creative"
	TemplateExecutive TemplateName = "executive"
	TemplateTechnical TemplateName = "technical"
)

var templateNames = map[TemplateName]bool{
	TemplateModern:    true,
	TemplateClassic:   true,
	TemplateMinimal:   true,
	TemplateCreative:  true,
	TemplateExecutive: true,
	TemplateTechnical: true,
}

func (t TemplateName) Valid() bool { return templateNames[t] }

// TemplateNames lists every template in display order.
var TemplateNames = []TemplateName{
	TemplateModern,
	TemplateClassic,
	TemplateMinimal,
	TemplateCreative,
	TemplateExecutive,
	TemplateTechnical,
}

// PremiumTemplates require an active subscription. Enforced at the
// delivery layer; the CV use-cases never consult subscription state.
var PremiumTemplates = map[TemplateName]bool{
	TemplateCreative:  true,
	TemplateExecutive: true,
	TemplateTechnical: true,
}

// ExportFormat is the closed set of export targets.
type ExportFormat string

const (
	ExportPDF  ExportFormat = "pdf"
	ExportDOCX ExportFormat = "docx"
	ExportJSON ExportFormat = "json"
)

var exportFormats = map[ExportFormat]bool{
	ExportPDF:  true,
	ExportDOCX: true,
	ExportJSON: true,
}

func (f ExportFormat) Valid() bool { return exportFormats[f] }

// MaxCVTitleLength bounds saved CV titles.
const MaxCVTitleLength = 100

// SavedCV is a persisted resume owned by a single user. At most one CV
// per user carries IsDefault=true; that invariant belongs to the
// repository, not this struct.
type SavedCV struct {
	ID               string       `json:"id"`
	UserID           string       `json:"user_id"`
	Title            string       `json:"title"`
	CVData           CVData       `json:"cv_data"`
	SelectedTemplate TemplateName `json:"selected_template"`
	IsDefault        bool         `json:"is_default"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// CVPatch is a partial update. Nil fields are absent, set fields fully
// replace the stored value (cvData is never merged).
type CVPatch struct {
	Title            *string
	CVData           *CVData
	SelectedTemplate *TemplateName
}

// Empty reports whether the patch changes nothing.
func (p CVPatch) Empty() bool {
	return p.Title == nil && p.CVData == nil && p.SelectedTemplate == nil
}

type CreateCVInput struct {
	Title    string
	CVData   CVData
	Template TemplateName
}

type CVList struct {
	CVs   []SavedCV `json:"cvs"`
	Total int       `json:"total"`
}

type ExportResult struct {
	CV     *SavedCV     `json:"cv"`
	Format ExportFormat `json:"format"`
}

// CVRepository is the persistence boundary for saved CVs. GetByID
// returns (nil, nil) when no record exists; absence is not an error.
// SetDefault owns the single-default invariant, Duplicate owns the
// " (Copy)" title convention.
type CVRepository interface {
	GetAll(ctx context.Context, userID string) ([]SavedCV, error)
	GetByID(ctx context.Context, id string) (*SavedCV, error)
	Create(ctx context.Context, userID, title string, data CVData, template TemplateName) (*SavedCV, error)
	Update(ctx context.Context, id string, patch CVPatch) (*SavedCV, error)
	Delete(ctx context.Context, id string) error
	SetDefault(ctx context.Context, id string) error
	Duplicate(ctx context.Context, id string) (*SavedCV, error)
}

type CVUsecase interface {
	Create(ctx context.Context, input CreateCVInput) (*SavedCV, error)
	GetByID(ctx context.Context, id string) (*SavedCV, error)
	GetUserCVs(ctx context.Context) (*CVList, error)
	Update(ctx context.Context, id string, patch CVPatch) (*SavedCV, error)
	Delete(ctx context.Context, id string) error
	Duplicate(ctx context.Context, id string) (*SavedCV, error)
	SetDefault(ctx context.Context, id string) error
	Export(ctx context.Context, id string, format ExportFormat) (*ExportResult, error)
}
