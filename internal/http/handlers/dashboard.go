package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bhai/internal/dashboard"
	"bhai/internal/http/middleware"
)

type DashboardHandler struct {
	Agg *dashboard.Aggregator
}

func (h *DashboardHandler) Trends(c *gin.Context) {
	trends := h.Agg.Trends(c.Request.Context(), middleware.MustUserID(c))
	c.JSON(http.StatusOK, gin.H{
		"mental":     seriesPayload(trends.Mental),
		"behavioral": seriesPayload(trends.Behavioral),
	})
}

func (h *DashboardHandler) Assessments(c *gin.Context) {
	list := h.Agg.LoadAssessments(c.Request.Context(), middleware.MustUserID(c))
	c.JSON(http.StatusOK, gin.H{"assessments": list})
}

func seriesPayload(s dashboard.Series) gin.H {
	return gin.H{"has_data": s.HasData(), "points": s.Points}
}
