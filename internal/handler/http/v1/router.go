package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	// Маршрут Health-check остается открытым
	api.GET("/system/health", h.healthCheck)

	// Канал host UI: браузерный WebSocket не передает свои заголовки,
	// апгрейд защищается проверкой активной сессии
	api.GET("/ws/:user_id", h.sessionWS)

	protected := api.Group("", APIKeyAuthMiddleware(h.cfg, h.logger))

	// Профили пользователей
	user := protected.Group("/user")
	{
		user.POST("/profile", h.saveProfile)
		user.GET("/profile/:user_id", h.getProfile)
	}

	// Жизненный цикл поездки
	journey := protected.Group("/journey")
	{
		journey.POST("/start", h.startJourney)
		journey.POST("/stop/:user_id", h.stopJourney)
	}

	// Подтверждение check-in
	protected.POST("/checkin/ack", h.acknowledgeCheckIn)

	// Кейсы эскалации
	emergency := protected.Group("/emergency")
	{
		emergency.POST("/trigger", h.triggerEmergency)
		emergency.GET("/:id", h.getCase)
		emergency.POST("/:id/cancel", h.cancelEscalation)
		emergency.POST("/:id/resolve", h.resolveEscalation)
	}

	// Разрешение маршрута
	protected.POST("/route/resolve", h.resolveRoute)

	// Статистика
	protected.GET("/stats", h.getStats)
}
