package logger

import (
	"context"
	"os"

	apitoolkit "github.com/apitoolkit/apitoolkit-go"
	"github.com/gin-gonic/gin"
)

type APIToolKitMonitor struct {
	client *apitoolkit.Client
}

func (m *APIToolKitMonitor) Init() {
	apiKey := os.Getenv("APITOOLKIT_API_KEY")
	if apiKey == "" {
		Info("apitoolkit api key not set. request metrics disabled")
		return
	}
	client, err := apitoolkit.NewClient(context.Background(), apitoolkit.Config{APIKey: apiKey})
	if err != nil {
		Error("failed to initialise apitoolkit client", LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return
	}
	m.client = client
	Info("apitoolkit request metric monitor initialised")
}

func (m *APIToolKitMonitor) RequestMetricMiddleware() interface{} {
	if m.client == nil {
		return func(ctx *gin.Context) {
			ctx.Next()
		}
	}
	return m.client.GinMiddleware
}
