package router

import (
	"github.com/labstack/echo/v4"

	"github.com/tutorlens/tutorlens/internal/handler"
	"github.com/tutorlens/tutorlens/internal/middleware"
)

// registerAPIRoutes wires the business API under /api.
//
// Sign-in endpoints are public but rate limited. Everything else
// requires a bearer token; per-student authorization happens in the
// service layer.
func registerAPIRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	api := r.Group("/api")

	auth := api.Group("/auth", m.RateLimit.LimitAuth())
	auth.POST("/google", h.Auth.GoogleSignIn())
	auth.POST("/parent", h.Auth.ParentAccess())
	auth.POST("/register", h.Auth.Register())
	auth.POST("/login", h.Auth.Login())
	auth.GET("/me", h.Auth.Me(), m.Auth.RequireAuth)
	auth.PATCH("/me", h.Auth.UpdateMe(), m.Auth.RequireAuth)

	students := api.Group("/students", m.Auth.RequireAuth)
	students.GET("", h.Students.List())
	students.POST("", h.Students.Create())
	students.GET("/:student_id", h.Students.Get())
	students.PATCH("/:student_id", h.Students.Update())
	students.DELETE("/:student_id", h.Students.Delete())

	students.GET("/:student_id/goals", h.Goals.List())
	students.POST("/:student_id/goals", h.Goals.Create())
	students.PATCH("/:student_id/goals/:goal_id", h.Goals.Update())
	students.DELETE("/:student_id/goals/:goal_id", h.Goals.Delete())

	students.GET("/:student_id/topics", h.Topics.List())
	students.POST("/:student_id/topics", h.Topics.Create())
	students.PATCH("/:student_id/topics/:topic_id", h.Topics.UpdateScores())
	students.DELETE("/:student_id/topics/:topic_id", h.Topics.Delete())

	students.GET("/:student_id/sessions", h.Sessions.List())
	students.GET("/:student_id/sessions/:session_id", h.Sessions.Get())
	students.GET("/:student_id/sessions/:session_id/transcript", h.Sessions.DownloadTranscript())

	students.GET("/:student_id/mental-blocks", h.MentalBlocks.List())
	students.POST("/:student_id/mental-blocks/:block_id/resolve", h.MentalBlocks.Resolve())

	students.GET("/:student_id/dashboard", h.Dashboard.Get())

	process := api.Group("/process", m.Auth.RequireAuth)
	process.POST("/trial", h.Transcripts.ProcessTrial())
	process.POST("/session", h.Transcripts.ProcessSession())

	// Local-only demo data. The service rejects it outside the local env.
	api.POST("/seed", h.Seed.Seed())
}
