package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Host UI доверен, поэтому Origin не ограничивается
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// @Summary Attach host UI WebSocket to a journey session
// @Description Upgrade to WebSocket and bind the connection to the user's active monitoring session. Requires API key.
// @Tags Journeys
// @Security ApiKeyAuth
// @Param user_id path string true "User ID"
// @Success 101 "Switching Protocols"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No active journey"
// @Router /ws/{user_id} [get]
func (h *Handler) sessionWS(c *gin.Context) {
	userID := c.Param("user_id")
	log := h.logger.WithField("method", "sessionWS").WithField("user_id", userID)

	// Привязка возможна только к уже запущенной сессии, проверяем до upgrade
	sess, ok := h.monitoringService.Session(userID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active journey"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Warn("Failed to upgrade connection")
		return
	}

	sess.AttachClient(conn)
	log.Info("Host UI attached to session")

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			sess.DetachClient(conn)
			_ = conn.Close()
			log.WithError(err).Debug("Host UI connection closed")
			return
		}
		sess.HandleClientMessage(raw)
	}
}
