package routes

import (
	"github.com/gin-gonic/gin"

	"metabolic-care/controllers"
	"metabolic-care/middlewares"
	"metabolic-care/planner"
	"metabolic-care/services"
	"metabolic-care/triage"
)

// Deps are the wired services the router exposes. Push may be nil.
type Deps struct {
	Engine    *triage.Engine
	Catalog   planner.Catalog
	Sessions  *services.SessionService
	Profiles  *services.ProfileService
	Plans     *services.PlanService
	CheckIns  *services.CheckInService
	Glucose   *services.GlucoseService
	Dashboard *services.DashboardService
	Alerts    *services.AlertService
	Realtime  *services.RealtimeHub
	Push      *services.PushService

	// AllowedOrigins gates websocket upgrades, mirroring CORS_ORIGINS.
	AllowedOrigins []string
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger())

	meta := controllers.NewMetaController(d.Engine, d.Catalog)
	authC := controllers.NewAuthController(d.Sessions)
	profileC := controllers.NewProfileController(d.Profiles)
	planC := controllers.NewPlanController(d.Plans)
	checkinC := controllers.NewCheckInController(d.CheckIns)
	glucoseC := controllers.NewGlucoseController(d.Glucose)
	dashC := controllers.NewDashboardController(d.Dashboard)
	alertC := controllers.NewAlertController(d.Alerts, d.Realtime, d.AllowedOrigins)
	deviceC := controllers.NewDeviceController(d.Push)

	r.GET("/health", meta.Health)
	r.GET("/meta/thresholds", meta.Thresholds)
	r.GET("/meta/catalog", meta.MealCatalog)
	r.POST("/triage/evaluate", meta.Evaluate)

	auth := r.Group("/auth")
	{
		auth.POST("/session", authC.StartSession)
	}

	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware(d.Sessions))
	{
		user.GET("/profile", profileC.GetProfile)
		user.PUT("/profile", profileC.SaveProfile)

		user.POST("/plan", planC.Generate)
		user.GET("/plan", planC.Current)
		user.POST("/plan/days/:day/swaps", planC.Swaps)

		user.POST("/checkins", checkinC.Add)
		user.GET("/checkins", checkinC.List)

		user.POST("/glucose", glucoseC.Add)
		user.GET("/glucose", glucoseC.List)

		user.GET("/dashboard", dashC.Summary)

		user.GET("/alerts", alertC.List)
		user.GET("/alerts/ws", alertC.Stream)

		user.POST("/devices", deviceC.Register)
		user.POST("/notifications/toggle", deviceC.ToggleNotifications)
	}

	return r
}
