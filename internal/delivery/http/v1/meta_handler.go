package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-cvbuilder-backend/internal/delivery/http/response"
	"go-cvbuilder-backend/internal/domain"
)

type templateInfo struct {
	Name    domain.TemplateName `json:"name"`
	Premium bool                `json:"premium"`
}

// NewMetaHandler registers the public catalog endpoint: templates with
// their premium flags, color presets, and export formats. Clients use
// it to populate pickers without hardcoding the enums.
func NewMetaHandler(public *gin.RouterGroup) {
	public.GET("/meta", func(c *gin.Context) {
		templates := make([]templateInfo, 0, len(domain.TemplateNames))
		for _, name := range domain.TemplateNames {
			templates = append(templates, templateInfo{
				Name:    name,
				Premium: domain.PremiumTemplates[name],
			})
		}

		response.Success(c, http.StatusOK, "Catalog", gin.H{
			"templates":      templates,
			"color_presets":  domain.ColorPresets,
			"export_formats": []domain.ExportFormat{domain.ExportPDF, domain.ExportDOCX, domain.ExportJSON},
		})
	})
}
