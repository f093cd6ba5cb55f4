// Package server exposes the analysis pipeline over a small REST API.
// It is an adapter layer: request shapes are parsed and coerced here,
// the analysis core only ever sees well-formed model.Post values.
package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
	"github.com/gin-gonic/gin"

	"github.com/driftline/driftline/model"
	"github.com/driftline/driftline/normalizer"
	"github.com/driftline/driftline/pipeline"
	"github.com/driftline/driftline/storage"
	Logger "github.com/driftline/driftline/utils/log"
)

// PostInput is the wire shape of one post. CreatedAt accepts any
// common timestamp format; malformed values are coerced to now rather
// than rejected.
type PostInput struct {
	Id            string                 `json:"id"`
	Platform      string                 `json:"platform"`
	UserId        string                 `json:"user_id"`
	Username      string                 `json:"username"`
	Content       string                 `json:"content"`
	CreatedAt     string                 `json:"created_at"`
	Engagement    model.EngagementCounts `json:"engagement"`
	FollowerCount int                    `json:"follower_count"`
}

type analyzeRequest struct {
	Posts []PostInput `json:"posts" binding:"required"`
}

type classifyRequest struct {
	Text string `json:"text" binding:"required"`
}

// Handler carries the per-process dependencies into gin handlers.
// Store may be nil when the service runs without a database.
type Handler struct {
	Pipeline *pipeline.Pipeline
	Store    *storage.Store
}

// NewRouter builds the gin engine with all API routes attached.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.Default()

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.POST("/analyze", h.Analyze)
	api.POST("/classify", h.Classify)
	api.GET("/campaigns/recent", h.RecentCampaigns)

	return router
}

// Analyze runs the full pipeline over the posted batch and returns
// campaigns, bot flags, user metrics and alerts.
func (h *Handler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	posts := make([]model.Post, 0, len(req.Posts))
	now := time.Now()
	for _, input := range req.Posts {
		posts = append(posts, input.toPost(now))
	}

	result := h.Pipeline.Analyze(posts)

	if h.Store != nil {
		if err := h.Store.SavePosts(posts); err != nil {
			Logger.Log.Errorln("fail to persist posts:", err)
		}
		if err := h.Store.SaveCampaigns(result.Campaigns, now); err != nil {
			Logger.Log.Errorln("fail to persist campaigns:", err)
		}
		if err := h.Store.SaveAlerts(result.Alerts); err != nil {
			Logger.Log.Errorln("fail to persist alerts:", err)
		}
	}

	c.JSON(http.StatusOK, result)
}

// RecentCampaigns lists persisted findings from the last N hours
// (default 24), most risky first. Requires persistence to be
// configured.
func (h *Handler) RecentCampaigns(c *gin.Context) {
	if h.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "persistence is not configured"})
		return
	}

	hours, err := strconv.Atoi(c.DefaultQuery("hours", "24"))
	if err != nil || hours <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "hours must be a positive integer"})
		return
	}

	records, err := h.Store.RecentCampaigns(time.Now().Add(-time.Duration(hours)*time.Hour), 100)
	if err != nil {
		Logger.Log.Errorln("fail to load recent campaigns:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fail to load recent campaigns"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaigns": records})
}

// Classify runs normalization and lexicon classification over a single
// text.
func (h *Handler) Classify(c *gin.Context) {
	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	normalized := normalizer.Normalize(req.Text)
	c.JSON(http.StatusOK, gin.H{
		"normalized":     normalized,
		"classification": h.Pipeline.Classifier.Classify(req.Text),
	})
}

// toPost coerces the wire shape into a model.Post: timestamps that
// fail to parse become now, and hashtags/mentions/language are filled
// in from the content.
func (input PostInput) toPost(now time.Time) model.Post {
	createdAt := now
	if input.CreatedAt != "" {
		if ts, err := dateparse.ParseAny(input.CreatedAt); err == nil {
			createdAt = ts
		}
	}

	normalized := normalizer.Normalize(input.Content)
	return model.Post{
		Id:            input.Id,
		Platform:      input.Platform,
		UserId:        input.UserId,
		Username:      input.Username,
		Content:       input.Content,
		CreatedAt:     createdAt,
		Engagement:    input.Engagement,
		Hashtags:      normalized.Hashtags,
		Mentions:      normalized.Mentions,
		Language:      normalized.Language,
		FollowerCount: input.FollowerCount,
	}
}
