package biometric

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"faceclock.io/infrastructure/logger"
	"faceclock.io/infrastructure/network"
)

// RemoteExtractorService calls the embedding sidecar for requests that only
// carry a captured image. The sidecar owns face detection and the embedding
// model; this service only moves bytes and validates the vector that comes
// back.
type RemoteExtractorService struct {
	Network *network.NetworkController
}

type remoteExtractorResponse struct {
	Descriptor []float64 `json:"descriptor"`
	FaceCount  int       `json:"face_count"`
	Message    string    `json:"message"`
}

var ErrNoFaceDetected = errors.New("no usable face was detected in the image")

func (service *RemoteExtractorService) ExtractDescriptor(ctx context.Context, imageB64 string) ([]float64, error) {
	if service.Network == nil || service.Network.BaseUrl == "" {
		return nil, errors.New("descriptor extractor is not configured")
	}
	response, statusCode, err := service.Network.Post(ctx, "/v1/descriptors", nil, map[string]any{
		"image": imageB64,
	})
	if err != nil {
		logger.Error("error extracting descriptor from embedding sidecar", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	if statusCode != nil && *statusCode > 299 {
		return nil, fmt.Errorf("embedding sidecar returned status %d", *statusCode)
	}
	var parsed remoteExtractorResponse
	if err := json.Unmarshal(*response, &parsed); err != nil {
		logger.Error("error parsing embedding sidecar response", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	if parsed.FaceCount != 1 || len(parsed.Descriptor) == 0 {
		return nil, ErrNoFaceDetected
	}
	if err := ValidateDescriptor(parsed.Descriptor); err != nil {
		return nil, err
	}
	return parsed.Descriptor, nil
}
