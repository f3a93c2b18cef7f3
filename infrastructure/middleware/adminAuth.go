package middlewares

import (
	"faceclock.io/application/interfaces"
	"faceclock.io/application/middlewares"
	"github.com/gin-gonic/gin"
)

func AdminAuthenticationMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		appContext, next := middlewares.AdminAuthenticationMiddleware(&interfaces.ApplicationContext[any]{
			Ctx:  ctx,
			Keys: ctx.Keys,
		}, ctx.Request.Header.Get("X-Admin-Key"))
		if next {
			ctx.Set("AppContext", appContext)
			ctx.Next()
		}
	}
}
