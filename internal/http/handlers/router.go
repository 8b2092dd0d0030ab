package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bhai/internal/auth"
	"bhai/internal/dashboard"
	"bhai/internal/http/middleware"
	"bhai/internal/llm"
	"bhai/internal/models"
	"bhai/internal/records"
	"bhai/internal/storage"
)

// NewRouter wires every handler onto a gin engine.
func NewRouter(
	store *storage.Store,
	authSvc *auth.Service,
	recordsSvc *records.Service,
	agg *dashboard.Aggregator,
	llmClient llm.Client,
	jwtSecret string,
	log *zap.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authH := &AuthHandler{Auth: authSvc, JWTSecret: jwtSecret}
	chatH := &ChatHandler{Store: store, Completer: llmClient, Log: log}
	assessH := &AssessmentHandler{Store: store, Analyzer: llmClient, Log: log}
	dashH := &DashboardHandler{Agg: agg}
	resH := &ResourcesHandler{}
	recH := &RecordsHandler{Records: recordsSvc}

	api := r.Group("/api")

	api.POST("/auth/register", authH.Register)
	api.POST("/auth/login", authH.Login)
	api.POST("/auth/anonymous", authH.Anonymous)

	api.GET("/resources", resH.List)
	api.GET("/resources/:id", resH.Get)

	authed := api.Group("", middleware.Auth(jwtSecret))
	authed.POST("/auth/logout", authH.Logout)
	authed.GET("/auth/me", authH.Me)

	authed.POST("/chat", chatH.NewConversation)
	authed.GET("/chat", chatH.ListConversations)
	authed.GET("/chat/:id", chatH.GetConversation)
	authed.POST("/chat/:id/messages", chatH.SendMessage)
	authed.POST("/chat/:id/clear", chatH.ClearConversation)

	authed.GET("/assessments/questions/:type", assessH.Questions)
	authed.POST("/assessments/:type", assessH.Submit)

	authed.GET("/dashboard/trends", dashH.Trends)
	authed.GET("/dashboard/assessments", dashH.Assessments)

	doctor := authed.Group("", middleware.RequireRole(models.RoleDoctor))
	doctor.GET("/patients", recH.Patients)
	doctor.GET("/patients/:id", recH.PatientDetail)
	doctor.POST("/patients/:id/diagnoses", recH.AddDiagnosis)
	doctor.POST("/patients/:id/prescriptions", recH.AddPrescription)

	return r
}
