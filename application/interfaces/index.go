package interfaces

import (
	"github.com/gin-gonic/gin"
)

// ApplicationContext carries a request through middlewares and controllers
// without the process-wide session singletons the controllers would
// otherwise reach for. T is the parsed request body type.
type ApplicationContext[T any] struct {
	Ctx        interface{}
	Body       *T
	UserAgent  string
	DeviceName string
	SessionID  string
	Keys       map[string]any
}

func (ac *ApplicationContext[T]) SetContextData(key string, value any) {
	if ac.Keys == nil {
		ac.Keys = map[string]any{}
	}
	ac.Keys[key] = value
}

func (ac *ApplicationContext[T]) GetContextData(key string) any {
	if ac.Keys == nil {
		return nil
	}
	return ac.Keys[key]
}

func (ac *ApplicationContext[T]) GetStringContextData(key string) string {
	value, ok := ac.GetContextData(key).(string)
	if !ok {
		return ""
	}
	return value
}

func (ac *ApplicationContext[T]) GetHeader(key string) *string {
	ginCtx, ok := (ac.Ctx).(*gin.Context)
	if !ok {
		return nil
	}
	value := ginCtx.GetHeader(key)
	return &value
}

func (ac *ApplicationContext[T]) GetStringParameter(name string) string {
	ginCtx, ok := (ac.Ctx).(*gin.Context)
	if !ok {
		return ""
	}
	return ginCtx.Query(name)
}
