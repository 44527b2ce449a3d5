package export

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"logoforge/pkg/models"
)

type Handler struct {
	Store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/export", h.create)
	rg.GET("/export/:id", h.download)
}

type exportReq struct {
	AnimatedSvg string `json:"animated_svg"`
	CSSCode     string `json:"css_code"`
	JSCode      string `json:"js_code"`
	Format      string `json:"format"`
}

func (h *Handler) create(c *gin.Context) {
	var req exportReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(req.AnimatedSvg) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "animated_svg required"})
		return
	}

	format := models.ExportFormat(strings.ToLower(strings.TrimSpace(req.Format)))
	if format == "" {
		format = models.ExportSVG
	}

	logo := models.AnimatedSVGLogo{
		AnimatedSvg: req.AnimatedSvg,
		CSSCode:     req.CSSCode,
		JSCode:      req.JSCode,
	}

	data, _, err := Package(logo, format)
	if err != nil {
		if errors.Is(err, ErrUnsupportedFormat) {
			c.JSON(http.StatusNotImplemented, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.Store.Save(format, data)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (h *Handler) download(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	path, format, err := h.Store.Lookup(id)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contentType := "application/octet-stream"
	switch format {
	case models.ExportSVG:
		contentType = "image/svg+xml"
	case models.ExportHTML:
		contentType = "text/html; charset=utf-8"
	}
	c.Header("Content-Type", contentType)
	c.File(path)
}
