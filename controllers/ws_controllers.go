package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/restaurant-pos/kds"
	"github.com/yeremiapane/restaurant-pos/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var errUnknownScreen = errors.New("unknown screen")

// ScreenSocket subscribes a UI to pushes for one screen (pos or kitchen).
func ScreenSocket(hub *kds.KDSHub) gin.HandlerFunc {
	return func(c *gin.Context) {
		screen := c.Param("screen")
		if !kds.ValidScreen(screen) {
			utils.RespondError(c, http.StatusNotFound, errUnknownScreen)
			return
		}

		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			utils.ErrorLogger.Printf("WebSocket upgrade failed: %v", err)
			return
		}
		hub.RegisterClient(ws, screen)

		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}

		hub.UnregisterClient(ws)
	}
}
