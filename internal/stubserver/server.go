package stubserver

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/tutorlink-admin-core/pkg/logger"
	"github.com/noah-isme/tutorlink-admin-core/pkg/middleware/cors"
	"github.com/noah-isme/tutorlink-admin-core/pkg/middleware/requestid"
)

// Params groups the router's dependencies.
type Params struct {
	Store          *Store
	Tokens         *TokenManager
	Logger         *zap.Logger
	AllowedOrigins []string
	// Prefix defaults to /api/admin, matching the production gateway mount.
	Prefix string
}

// Router assembles the stub backend's gin engine. Everything except login
// sits behind bearer auth, mirroring the production surface.
func Router(params Params) *gin.Engine {
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	prefix := params.Prefix
	if prefix == "" {
		prefix = "/api/admin"
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.Middleware())
	router.Use(cors.New(params.AllowedOrigins))
	router.Use(logger.GinMiddleware(params.Logger))

	handler := NewHandler(params.Store, params.Tokens)

	api := router.Group(prefix)
	api.POST("/auth/login", handler.Login)

	authed := api.Group("")
	authed.Use(AuthMiddleware(params.Tokens))
	{
		authed.GET("/dashboard/stats", handler.DashboardStats)
		authed.GET("/users", handler.ListUsers)
		authed.GET("/tutors/:id", handler.TutorDetail)
		authed.POST("/tutors/approve", handler.Approve)
		authed.POST("/tutors/partial-approve", handler.PartialApprove)
		authed.POST("/tutors/reject", handler.Reject)
		authed.POST("/tutors/verify/document", handler.VerifyDocument)
		authed.GET("/interviews/available-slots", handler.AvailableSlots)
		authed.PUT("/tutors/interview/assign", handler.AssignSlots)
		authed.PUT("/tutors/:id/interview-toggle", handler.ToggleInterview)
		authed.POST("/tutors/interview/result", handler.InterviewResult)
	}

	return router
}
