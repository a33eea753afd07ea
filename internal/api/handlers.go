package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dealershipai/aoer-engine/internal/models"
	"github.com/dealershipai/aoer-engine/internal/services"
)

// Handlers owns route registration and request mapping for the AOER API.
type Handlers struct {
	service *services.AOERService
	logger  *slog.Logger
}

// NewHandlers constructs the handler set.
func NewHandlers(service *services.AOERService, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{service: service, logger: logger}
}

// Register mounts all routes on the router.
func (h *Handlers) Register(router *gin.Engine) {
	router.GET("/healthz", h.health)

	v1 := router.Group("/api/v1")
	v1.POST("/rollup", h.rollup)

	tenants := v1.Group("/tenants/:tenant")
	tenants.GET("/rollup", h.tenantRollup)
	tenants.GET("/rollup/intents", h.tenantIntents)
	tenants.GET("/trends", h.tenantTrends)
	tenants.GET("/click-loss", h.tenantClickLoss)
	tenants.GET("/recommendations", h.tenantRecommendations)

	scores := tenants.Group("/scores")
	scores.POST("/visibility", h.adjustVisibility)
	scores.POST("/trust", h.adjustTrust)
	scores.POST("/composite", h.composite)
}

func (h *Handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"rollup_p95_ms": float64(h.service.LatencyP95()) / float64(time.Millisecond),
	})
}

// rollup is the stateless surface: the caller supplies the observation batch.
func (h *Handlers) rollup(c *gin.Context) {
	var req models.RollupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rollup, err := h.service.RollupFromObservations(req.Observations)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"rollup":          rollup,
		"recommendations": h.service.ReportRecommendations(rollup),
	})
}

func (h *Handlers) tenantRollup(c *gin.Context) {
	tenantID := c.Param("tenant")
	rollup, err := h.service.TenantRollup(c.Request.Context(), tenantID)
	if err != nil {
		h.fetchFailed(c, tenantID, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"tenant_id":       tenantID,
		"rollup":          rollup,
		"recommendations": h.service.ReportRecommendations(rollup),
	})
}

func (h *Handlers) tenantIntents(c *gin.Context) {
	tenantID := c.Param("tenant")
	byIntent, err := h.service.TenantRollupByIntent(c.Request.Context(), tenantID)
	if err != nil {
		h.fetchFailed(c, tenantID, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tenant_id": tenantID, "intents": byIntent})
}

func (h *Handlers) tenantTrends(c *gin.Context) {
	tenantID := c.Param("tenant")
	report, err := h.service.TenantTrends(c.Request.Context(), tenantID)
	if err != nil {
		h.fetchFailed(c, tenantID, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handlers) tenantClickLoss(c *gin.Context) {
	tenantID := c.Param("tenant")
	analysis, err := h.service.TenantClickLoss(c.Request.Context(), tenantID)
	if err != nil {
		h.fetchFailed(c, tenantID, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

func (h *Handlers) tenantRecommendations(c *gin.Context) {
	tenantID := c.Param("tenant")
	recs := h.service.TenantRecommendations(c.Request.Context(), tenantID)
	c.JSON(http.StatusOK, gin.H{"tenant_id": tenantID, "recommendations": recs})
}

func (h *Handlers) adjustVisibility(c *gin.Context) {
	h.adjustScore(c, h.service.AdjustVisibility)
}

func (h *Handlers) adjustTrust(c *gin.Context) {
	h.adjustScore(c, h.service.AdjustTrust)
}

func (h *Handlers) adjustScore(c *gin.Context, adjust func(ctx context.Context, tenantID string, base float64) float64) {
	tenantID := c.Param("tenant")
	var req models.ScoreAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	adjusted := adjust(c.Request.Context(), tenantID, req.BaseScore)
	c.JSON(http.StatusOK, models.ScoreAdjustResponse{
		TenantID:      tenantID,
		BaseScore:     req.BaseScore,
		AdjustedScore: adjusted,
	})
}

func (h *Handlers) composite(c *gin.Context) {
	tenantID := c.Param("tenant")
	var req models.CompositeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.service.CompositeReputation(c.Request.Context(), tenantID, req))
}

func (h *Handlers) fetchFailed(c *gin.Context, tenantID string, err error) {
	h.logger.Error("tenant data fetch failed", slog.String("tenant_id", tenantID), slog.Any("error", err))
	c.JSON(http.StatusBadGateway, gin.H{"error": "observation provider unavailable"})
}
