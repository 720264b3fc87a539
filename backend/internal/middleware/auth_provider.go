package middleware

import "github.com/gin-gonic/gin"

// Authenticator abstracts the auth middleware; anything implementing
// Handle() can guard a route group.
type Authenticator interface {
	Handle() gin.HandlerFunc
}
