package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bhai/internal/assessment"
	"bhai/internal/http/middleware"
	"bhai/internal/models"
	"bhai/internal/storage"
)

type AssessmentHandler struct {
	Store    *storage.Store
	Analyzer assessment.Analyzer
	Log      *zap.Logger
}

func (h *AssessmentHandler) Questions(c *gin.Context) {
	typ := models.AssessmentType(c.Param("type"))
	qs := assessment.Questions(typ)
	if qs == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "unknown assessment type"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"type": typ, "questions": qs})
}

type submitReq struct {
	Answers map[string]int `json:"answers"`
}

// Submit takes a full answer map, walks it through a session and returns the
// analyzed assessment. Nothing is persisted when analysis fails.
func (h *AssessmentHandler) Submit(c *gin.Context) {
	typ := models.AssessmentType(c.Param("type"))
	session, err := assessment.NewSession(h.Store, h.Analyzer, h.Log, middleware.MustUserID(c), typ)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "unknown assessment type"})
		return
	}

	var req submitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body", "error": err.Error()})
		return
	}

	questions := assessment.Questions(typ)
	known := make(map[string]bool, len(questions))
	for _, q := range questions {
		known[q.ID] = true
	}
	for id := range req.Answers {
		if !known[id] {
			c.JSON(http.StatusBadRequest, gin.H{"message": "unknown question id: " + id})
			return
		}
	}

	for _, q := range questions {
		code, ok := req.Answers[q.ID]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "missing answer for " + q.ID})
			return
		}
		if err := session.RecordAnswer(q.ID, code); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid answer for " + q.ID})
			return
		}
		if err := session.Next(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
	}

	record, err := session.Submit(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"message": "Failed to analyze assessment. Please try again."})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"assessment": record})
}
