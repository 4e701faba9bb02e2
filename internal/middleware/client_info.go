package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/dailyworklog/server/internal/service"
)

// Actor assembles the identity and client metadata the services need for
// audit attribution. On public routes only IP and user agent are set.
func Actor(c *gin.Context) service.ActorContext {
	actor := service.ActorContext{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if claims := ClaimsFromContext(c); claims != nil {
		actor.UserID = claims.UserID
		actor.EmployeeID = claims.EmployeeID
		actor.Username = claims.Username
		actor.Role = claims.Role
		actor.Team = claims.Team
	}
	return actor
}
