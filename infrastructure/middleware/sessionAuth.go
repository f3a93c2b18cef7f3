package middlewares

import (
	"faceclock.io/application/interfaces"
	"faceclock.io/application/middlewares"
	"github.com/gin-gonic/gin"
)

func SessionAuthenticationMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		appContext, next := middlewares.SessionAuthenticationMiddleware(&interfaces.ApplicationContext[any]{
			Ctx:  ctx,
			Keys: ctx.Keys,
		}, ctx.Request.Header.Get("Authorization"))
		if next {
			ctx.Set("AppContext", appContext)
			ctx.Next()
		}
	}
}
