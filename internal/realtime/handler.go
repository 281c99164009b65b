package realtime

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Stream GET /api/realtime/:table — flux SSE des changements d'une table.
// Un évènement par mutation, sans diff : le client recharge à chaque fois.
func Stream(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		table := c.Param("table")
		if !KnownTable(table) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Table inconnue"})
			return
		}

		events, cancel := hub.Subscribe(table)
		defer cancel()

		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")

		// Premier message immédiat pour confirmer l'abonnement
		c.SSEvent("subscribed", gin.H{"table": table})
		c.Writer.Flush()

		clientGone := c.Request.Context().Done()
		c.Stream(func(w io.Writer) bool {
			select {
			case <-clientGone:
				return false
			case ev, ok := <-events:
				if !ok {
					return false
				}
				c.SSEvent("change", ev)
				return true
			}
		})
	}
}
