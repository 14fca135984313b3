package realtime

import (
	"log"

	ws "github.com/coder/websocket"
	"github.com/gin-gonic/gin"
)

// Handler returns a gin handler that upgrades connections to WebSocket
// and runs them as Hub clients.
func Handler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := ws.Accept(c.Writer, c.Request, &ws.AcceptOptions{
			InsecureSkipVerify: true, // Origin is enforced by the CORS layer
		})
		if err != nil {
			log.Printf("websocket: accept: %v", err)
			return
		}

		client := NewClient(hub, conn)
		client.Run(c.Request.Context())
	}
}
