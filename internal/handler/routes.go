package handler

import "github.com/gin-gonic/gin"

// Routes registers every endpoint. authorize guards the routes that need a
// resolved session.
func (h *Handler) Routes(r gin.IRouter, authorize gin.HandlerFunc) {
	r.GET("/", h.Home)

	api := r.Group("/api")
	api.GET("/session", h.GetSession)
	api.DELETE("/session", h.DeleteSession)
	api.GET("/get-dashboard", h.GetDashboard)

	authorized := api.Group("/")
	authorized.Use(authorize)
	{
		authorized.GET("/dashboard", h.Dashboard)

		authorized.GET("/finances", h.Finances)
		authorized.POST("/finances", h.CreateFinance)
		authorized.DELETE("/finances/:id", h.DeleteFinance)

		authorized.GET("/health", h.Health)
		authorized.POST("/health", h.CreateHealth)
		authorized.DELETE("/health/:id", h.DeleteHealth)

		authorized.GET("/academic", h.Academic)
		authorized.POST("/academic", h.CreateAcademic)
		authorized.DELETE("/academic/:id", h.DeleteAcademic)

		authorized.GET("/schedule", h.Schedule)
		authorized.POST("/schedule", h.CreateSchedule)
		authorized.DELETE("/schedule/:id", h.DeleteSchedule)
		authorized.GET("/schedule/stream", h.ScheduleStream)
		authorized.POST("/schedule/sync", h.SyncSchedule)
	}

	oauth := r.Group("/auth")
	oauth.Use(authorize)
	{
		oauth.GET("/google", h.LinkCalendar)
		oauth.GET("/google/callback", h.CalendarCallback)
	}
}
