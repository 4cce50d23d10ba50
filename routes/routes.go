package routes

import (
	"os"

	"github.com/labstack/echo/v4"

	"github.com/vedant-kerulkar07/Hostel-Leave-Application/handlers"
	"github.com/vedant-kerulkar07/Hostel-Leave-Application/middlewares"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo) {
	// ===== Handlers (shared singletons) =====
	auth := handlers.NewAuthHandler()
	usr := handlers.NewUserHandler()
	lv := handlers.NewLeaveHandler()
	an := handlers.NewAnalyticsHandler()

	e.GET("/health", handlers.Health)

	// ===== Public Auth =====
	e.POST("/auth/register", auth.Register)
	e.POST("/auth/login", auth.Login)
	e.POST("/auth/logout", auth.Logout)

	// ===== Protected Groups =====
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret"
	}
	authMW := middlewares.RequireAuth(secret)

	// User Profile Store access; the apply form pre-fills from these.
	user := e.Group("/user", authMW)
	user.GET("/get-user/:userid", usr.GetUser)
	user.GET("/me", usr.Me)
	user.PUT("/update-user/:userid", usr.UpdateUser)
	user.POST("/complete-profile", usr.CompleteProfile)

	// Any authenticated session
	leaves := e.Group("/leaves", authMW)
	leaves.POST("/apply", lv.Apply)
	leaves.GET("/my", lv.MyLeaves)
	leaves.GET("/student/:studentId", an.StudentAnalytics)

	// Admin review surface
	adminLeaves := e.Group("/leaves", authMW, middlewares.RequireRole("admin"))
	adminLeaves.GET("", lv.List)
	adminLeaves.GET("/pending-count", lv.PendingCount)
	adminLeaves.POST("/:id/approve", lv.Approve)
	adminLeaves.POST("/:id/reject", lv.Reject)
	adminLeaves.GET("/admin-summary", an.AdminSummary)
	adminLeaves.GET("/admin-analytics", an.AdminAnalytics)
}
