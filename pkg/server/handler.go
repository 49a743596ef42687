package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pixelsprint/adforge/pkg/media"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.POST("/campaigns", h.createCampaign)
		api.GET("/campaigns", h.listCampaigns)
		api.GET("/campaigns/:id", h.getCampaign)
		api.GET("/campaigns/:id/logs", h.getCampaignLogs)

		api.POST("/media", h.produceMedia)
		api.POST("/copy", h.generateCopy)
		api.POST("/translate", h.translateText)
		api.POST("/publish", h.publishPost)
	}
}

func (h *Handler) createCampaign(c *gin.Context) {
	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	campaign, err := h.Service.CreateCampaign(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, campaign)
}

func (h *Handler) listCampaigns(c *gin.Context) {
	campaigns := h.Service.ListCampaigns(c.Request.Context())
	// Return empty list instead of null
	if campaigns == nil {
		campaigns = []Campaign{}
	}
	c.JSON(http.StatusOK, campaigns)
}

func (h *Handler) getCampaign(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid uuid"})
		return
	}

	campaign, err := h.Service.GetCampaign(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, campaign)
}

func (h *Handler) getCampaignLogs(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid uuid"})
		return
	}

	logs := h.Service.GetCampaignLogs(c.Request.Context(), id)
	if logs == nil {
		logs = []LogEntry{}
	}
	c.JSON(http.StatusOK, logs)
}

type mediaRequest struct {
	Description string     `json:"description"`
	Mode        media.Mode `json:"mode,omitempty"`
	Aspect      string     `json:"aspect,omitempty"`
	Style       string     `json:"style,omitempty"`
}

func (h *Handler) produceMedia(c *gin.Context) {
	if h.Service.Media == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "media provider not configured"})
		return
	}

	var req mediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "description is required"})
		return
	}

	result, err := h.Service.Media.Produce(c.Request.Context(), media.Request{
		Description: req.Description,
		Mode:        req.Mode,
		Aspect:      req.Aspect,
		Style:       req.Style,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, media.ErrConfiguration) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) generateCopy(c *gin.Context) {
	if h.Service.Copy == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "copywriter not configured"})
		return
	}

	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Subject.Product == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "subject.product is required"})
		return
	}

	adCopy, err := h.Service.Copy.Generate(c.Request.Context(), req.Subject, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, adCopy)
}

type translateRequest struct {
	Text       string `json:"text"`
	TargetLang string `json:"target_lang"`
}

func (h *Handler) translateText(c *gin.Context) {
	if h.Service.Translate == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "translator not configured"})
		return
	}

	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Text == "" || req.TargetLang == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text and target_lang are required"})
		return
	}

	out, err := h.Service.Translate.Translate(c.Request.Context(), req.Text, req.TargetLang)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"translation": out})
}

type publishRequest struct {
	Text     string `json:"text"`
	MediaURL string `json:"media_url,omitempty"`
}

func (h *Handler) publishPost(c *gin.Context) {
	if h.Service.Publish == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "publisher not configured"})
		return
	}

	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	url, err := h.Service.Publish.PostTweet(c.Request.Context(), req.Text, req.MediaURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
