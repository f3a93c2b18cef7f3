package dto

import (
	"encoding/json"
	"errors"
)

var ErrMissingProbe = errors.New("provide either a descriptor vector or a captured image")

// ParseDescriptorJSON decodes a descriptor sent as a JSON-array form field
// on a multipart request. An absent field is not an error - the capture may
// arrive as an image file instead.
func ParseDescriptorJSON(raw string) ([]float64, error) {
	if raw == "" {
		return nil, nil
	}
	var descriptor []float64
	if err := json.Unmarshal([]byte(raw), &descriptor); err != nil {
		return nil, errors.New("descriptor form field is not a JSON number array")
	}
	return descriptor, nil
}

type EnrollIdentityDTO struct {
	FullName     string    `json:"fullName" validate:"required,person_name,max=100"`
	Email        string    `json:"email" validate:"required,email,max=100"`
	EmployeeCode string    `json:"employeeCode" validate:"required,employee_code"`
	Descriptor   []float64 `json:"descriptor"` // client-side extracted vector
	Image        string    `json:"image"`      // base64 capture, used when no descriptor is sent
	WithPhoto    bool      `json:"withPhoto"`  // request a signed upload URL for a profile photo
}

// HasProbe reports whether the payload carries anything a descriptor can be
// obtained from.
func (payload *EnrollIdentityDTO) HasProbe() error {
	if len(payload.Descriptor) == 0 && payload.Image == "" {
		return ErrMissingProbe
	}
	return nil
}

type VerifyIdentityDTO struct {
	Descriptor []float64 `json:"descriptor"`
	Image      string    `json:"image"`
	DeviceName string    `json:"deviceName" validate:"omitempty,max=30"`
}

func (payload *VerifyIdentityDTO) HasProbe() error {
	if len(payload.Descriptor) == 0 && payload.Image == "" {
		return ErrMissingProbe
	}
	return nil
}

// IdentityProfileDTO is the public projection of an enrolled identity.
// Descriptors never leave the service.
type IdentityProfileDTO struct {
	ID           string  `json:"id"`
	FullName     string  `json:"fullName"`
	Email        string  `json:"email"`
	EmployeeCode string  `json:"employeeCode"`
	PhotoURL     *string `json:"photoURL,omitempty"`
}
