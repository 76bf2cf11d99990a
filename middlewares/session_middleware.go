package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/utils"
)

// LoginRedirect is sent with every 401 so the UI knows where to go.
var LoginRedirect = gin.H{"redirect": "/login"}

var errLoginRequired = errors.New("please log in")

type SessionChecker interface {
	LoggedIn() bool
}

// SessionRequired rejects requests while the terminal has no valid backend
// token. An expired token counts as none.
func SessionRequired(session SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !session.LoggedIn() {
			utils.RespondErrorData(c, http.StatusUnauthorized, errLoginRequired, LoginRedirect)
			c.Abort()
			return
		}
		c.Next()
	}
}
