package middleware

import "github.com/gin-gonic/gin"

const (
	// PlayerIDHeader carries the caller's claimed player id. Possession of a
	// player id is the only credential in this system; there is no server-side
	// authentication beyond the session join code.
	PlayerIDHeader = "X-Player-ID"

	PlayerIDKey = "player_id"
)

// PlayerIdentity copies the caller's claimed player id into the request
// context. Host-only operations verify the referenced player's host flag in
// the service layer.
func PlayerIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.GetHeader(PlayerIDHeader); id != "" {
			c.Set(PlayerIDKey, id)
		}
		c.Next()
	}
}
