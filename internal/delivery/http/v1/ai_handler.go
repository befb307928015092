package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-cvbuilder-backend/internal/delivery/http/response"
	"go-cvbuilder-backend/internal/domain"
)

type AIHandler struct {
	aiUC domain.AIUsecase
}

// NewAIHandler registers the AI routes. The group is expected to carry
// the auth and AI quota middleware already.
func NewAIHandler(ai *gin.RouterGroup, aiUC domain.AIUsecase) {
	handler := &AIHandler{aiUC: aiUC}

	ai.POST("/analyze", handler.Analyze)
	ai.POST("/parse", handler.Parse)
	ai.POST("/match", handler.Match)
	ai.POST("/improve", handler.Improve)
}

type AnalyzeRequest struct {
	CVData domain.CVData `json:"cv_data"`
}

type ParseRequest struct {
	Text string `json:"text" binding:"required"`
}

type MatchRequest struct {
	CVData         domain.CVData `json:"cv_data"`
	JobDescription string        `json:"job_description" binding:"required"`
}

type ImproveRequest struct {
	Text    string `json:"text" binding:"required"`
	Context string `json:"context"`
}

func (h *AIHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	score, err := h.aiUC.AnalyzeCV(c.Request.Context(), req.CVData)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "CV analyzed", score)
}

func (h *AIHandler) Parse(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	data, err := h.aiUC.ParseCVText(c.Request.Context(), req.Text)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Text parsed", data)
}

func (h *AIHandler) Match(c *gin.Context) {
	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	match, err := h.aiUC.MatchJob(c.Request.Context(), req.CVData, req.JobDescription)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job matched", match)
}

func (h *AIHandler) Improve(c *gin.Context) {
	var req ImproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(bindError(err))
		return
	}

	improved, err := h.aiUC.ImproveText(c.Request.Context(), req.Text, req.Context)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Text improved", improved)
}
