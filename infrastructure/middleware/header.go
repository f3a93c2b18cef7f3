package middlewares

import (
	"fmt"

	"faceclock.io/infrastructure/useragent"
	"github.com/gin-gonic/gin"
)

// UserAgentMiddleware parses the client's user agent once and stashes a
// readable device name for session bookkeeping.
func UserAgentMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		rawUserAgent := ctx.Request.UserAgent()
		parsed := useragent.ParseUserAgent(rawUserAgent)
		deviceName := parsed.Device
		if deviceName == "" {
			deviceName = fmt.Sprintf("%s on %s", parsed.Name, parsed.OS)
		}
		ctx.Set("UserAgent", rawUserAgent)
		ctx.Set("DeviceName", deviceName)
		ctx.Next()
	}
}
