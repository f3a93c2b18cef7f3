package network

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"faceclock.io/infrastructure/logger"
)

type NetworkController struct {
	BaseUrl string
}

var httpClient = &http.Client{
	Timeout: 30 * time.Second,
}

// Post sends a JSON request and returns the raw response body and status
// code. The request is bound to ctx, so a caller's deadline cuts a stalled
// upstream off early.
func (network *NetworkController) Post(ctx context.Context, path string, headers *map[string]string, body map[string]any) (*[]byte, *int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s%s", network.BaseUrl, path), bytes.NewBuffer(payload))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if headers != nil {
		for key, value := range *headers {
			req.Header.Set(key, value)
		}
	}
	return network.do(req)
}

func (network *NetworkController) do(req *http.Request) (*[]byte, *int, error) {
	res, err := httpClient.Do(req)
	if err != nil {
		logger.Error("network request failed", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "url",
			Data: req.URL.String(),
		})
		return nil, nil, err
	}
	defer res.Body.Close()
	response, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &res.StatusCode, err
	}
	return &response, &res.StatusCode, nil
}
