package api

import (
	"log"
	"net/http"

	"photo-gallery/internal/session"
	"photo-gallery/internal/websocket"
)

// @Summary      Photo event stream
// @Description  Upgrades to a websocket that receives photo_uploaded and photo_deleted events for the caller's photos.
// @Tags         photos
// @Success      101
// @Failure      401  {object}  ErrorResponse
// @Security     SessionCookie
// @Router       /ws [get]
func (s *Server) ServeWsHandler(w http.ResponseWriter, r *http.Request, id session.Identity) {
	upgrader := websocket.NewUpgrader(s.config.Server.AllowedOrigins)
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}

	client := websocket.NewClient(s.wsHub, conn, id.UserID)
	if !s.wsHub.Register(client) {
		conn.Close()
		return
	}

	go client.ReadPump()
	go client.WritePump()
}
