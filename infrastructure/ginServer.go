package infrastructure

import (
	"fmt"
	"net/http"
	"os"
	"time"

	apperrors "faceclock.io/application/appErrors"
	"faceclock.io/infrastructure/logger"
	middlewares "faceclock.io/infrastructure/middleware"
	ratelimit "faceclock.io/infrastructure/ratelimit"
	webRoutev1 "faceclock.io/infrastructure/routes/ginRouter/web/v1"
	server_response "faceclock.io/infrastructure/serverResponse"
	startup "faceclock.io/infrastructure/startUp"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func StartServer() {
	startup.StartServices()
	defer startup.CleanUpServices()

	server := gin.Default()
	origins := []string{}
	if os.Getenv("GIN_MODE") == "debug" {
		origins = append(origins, "http://localhost:5173")
	} else if os.Getenv("GIN_MODE") == "release" {
		origins = append(origins, "https://app.faceclock.io", "https://www.faceclock.io")
	}
	corsConfig := cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Admin-Key", "User-Agent"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	server.Use(cors.New(corsConfig))
	server.Use(ratelimit.TokenBucketPerIP())
	server.MaxMultipartMemory = 15 << 20

	server.Use(logger.RequestMetricMonitor.RequestMetricMiddleware().(func(*gin.Context)))

	routerV1 := server.Group("/api/v1")
	routerV1.Use(middlewares.UserAgentMiddleware())
	{
		webRoutev1.IdentityRouter(routerV1)
		webRoutev1.AttendanceRouter(routerV1)
	}

	server.GET("/ping", func(ctx *gin.Context) {
		server_response.Responder.Respond(ctx, http.StatusOK, "pong!", nil, nil, nil)
	})

	server.NoRoute(func(ctx *gin.Context) {
		apperrors.NotFoundError(ctx, fmt.Sprintf("%s %s does not exist", ctx.Request.Method, ctx.Request.URL))
	})

	ginMode := os.Getenv("GIN_MODE")
	port := os.Getenv("PORT")
	if ginMode == "debug" || ginMode == "release" {
		logger.Info(fmt.Sprintf("Server starting on PORT %s", port))
		server.Run(fmt.Sprintf(":%s", port))
	} else {
		panic(fmt.Sprintf("invalid gin mode used - %s", ginMode))
	}
}
