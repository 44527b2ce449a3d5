package animation

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"logoforge/pkg/models"
)

// Handler exposes the animation service over HTTP.
type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/animate", h.animate)
	rg.POST("/animate/cache/clear", h.clearCaches)
	rg.GET("/animate/cache/stats", h.cacheStats)
}

type animateReq struct {
	Svg           string                  `json:"svg"`
	AnimationType models.AnimationType    `json:"animationType"`
	Options       models.AnimationOptions `json:"options"`
}

func (h *Handler) animate(c *gin.Context) {
	var req animateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	// the top-level field wins over options.type when both are set
	if req.AnimationType != "" {
		req.Options.Type = req.AnimationType
	}

	resp := h.Service.Animate(c.Request.Context(), req.Svg, req.Options)
	c.JSON(statusFor(resp), resp)
}

// statusFor maps a structured animation failure to an HTTP status.
// Caller mistakes are 400; everything else is the service's fault.
func statusFor(resp models.AnimationResponse) int {
	if resp.Success {
		return http.StatusOK
	}
	if resp.Error == nil {
		return http.StatusInternalServerError
	}
	switch resp.Error.Code {
	case models.ErrCodeInvalidInput, models.ErrCodeSanitizationFailed:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) clearCaches(c *gin.Context) {
	h.Service.ClearCaches()
	c.JSON(http.StatusOK, gin.H{"message": "caches cleared"})
}

func (h *Handler) cacheStats(c *gin.Context) {
	pipeline, results := h.Service.CacheStats()
	c.JSON(http.StatusOK, gin.H{
		"pipeline": pipeline,
		"results":  results,
	})
}
