package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-cvbuilder-backend/internal/delivery/http/response"
	"go-cvbuilder-backend/internal/domain"
	"go-cvbuilder-backend/pkg/apperror"
)

type CVHandler struct {
	cvUC domain.CVUsecase
}

func NewCVHandler(protected *gin.RouterGroup, cvUC domain.CVUsecase) {
	handler := &CVHandler{cvUC: cvUC}

	cvs := protected.Group("/cvs")
	{
		cvs.GET("", handler.List)
		cvs.POST("", handler.Create)
		cvs.GET("/:id", handler.Get)
		cvs.PATCH("/:id", handler.Update)
		cvs.DELETE("/:id", handler.Delete)
		cvs.POST("/:id/duplicate", handler.Duplicate)
		cvs.POST("/:id/default", handler.SetDefault)
		cvs.GET("/:id/export", handler.Export)
	}
}

type CreateCVRequest struct {
	Title    string         `json:"title" binding:"required,max=100"`
	Template string         `json:"template" binding:"required,cv_template"`
	CVData   *domain.CVData `json:"cv_data"`
}

type UpdateCVRequest struct {
	Title    *string        `json:"title"`
	Template *string        `json:"template" binding:"omitempty,cv_template"`
	CVData   *domain.CVData `json:"cv_data"`
}

// requirePremiumTemplate rejects premium-only templates for free
// accounts. The premium flag is set by the auth middleware.
func requirePremiumTemplate(c *gin.Context, template domain.TemplateName) bool {
	if domain.PremiumTemplates[template] && !c.GetBool(string(domain.KeyPremium)) {
		c.Error(apperror.Forbidden("This template requires a premium account"))
		return false
	}
	return true
}

func (h *CVHandler) List(c *gin.Context) {
	list, err := h.cvUC.GetUserCVs(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "CVs", list)
}

func (h *CVHandler) Create(c *gin.Context) {
	var req CreateCVRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	template := domain.TemplateName(req.Template)
	if !requirePremiumTemplate(c, template) {
		return
	}

	data := domain.DefaultCVData()
	if req.CVData != nil {
		data = *req.CVData
	}

	cv, err := h.cvUC.Create(c.Request.Context(), domain.CreateCVInput{
		Title:    req.Title,
		CVData:   data,
		Template: template,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "CV created", cv)
}

func (h *CVHandler) Get(c *gin.Context) {
	cv, err := h.cvUC.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "CV", cv)
}

func (h *CVHandler) Update(c *gin.Context) {
	var req UpdateCVRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	patch := domain.CVPatch{
		Title:  req.Title,
		CVData: req.CVData,
	}
	if req.Template != nil {
		template := domain.TemplateName(*req.Template)
		if !requirePremiumTemplate(c, template) {
			return
		}
		patch.SelectedTemplate = &template
	}

	cv, err := h.cvUC.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "CV updated", cv)
}

func (h *CVHandler) Delete(c *gin.Context) {
	if err := h.cvUC.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "CV deleted", nil)
}

func (h *CVHandler) Duplicate(c *gin.Context) {
	cv, err := h.cvUC.Duplicate(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "CV duplicated", cv)
}

func (h *CVHandler) SetDefault(c *gin.Context) {
	if err := h.cvUC.SetDefault(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Default CV updated", nil)
}

type ExportQuery struct {
	Format string `form:"format" binding:"omitempty,export_format"`
	Preset string `form:"preset" binding:"omitempty,color_preset"`
}

func (h *CVHandler) Export(c *gin.Context) {
	var q ExportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.Error(bindError(err))
		return
	}
	if q.Format == "" {
		q.Format = string(domain.ExportPDF)
	}

	result, err := h.cvUC.Export(c.Request.Context(), c.Param("id"), domain.ExportFormat(q.Format))
	if err != nil {
		c.Error(err)
		return
	}

	data := gin.H{"cv": result.CV, "format": result.Format}
	// An optional color preset is passed through as a rendering hint.
	if q.Preset != "" {
		preset, _ := domain.ColorPresetByID(q.Preset)
		data["preset"] = preset
	}

	response.Success(c, http.StatusOK, "Export ready", data)
}
