package entities

import (
	"time"

	"faceclock.io/application/utils"
)

// FaceDescriptor is a single enrolled biometric vector. The vector is
// produced by the external embedding model and is immutable once stored.
type FaceDescriptor struct {
	Vector     []float64 `bson:"vector" json:"-"`
	EnrolledAt time.Time `bson:"enrolledAt" json:"enrolledAt"`
}

// This represents a person enrolled for face verification and attendance
type Identity struct {
	FullName     string           `bson:"fullName" json:"fullName"`
	Email        string           `bson:"email" json:"email"`
	EmployeeCode string           `bson:"employeeCode" json:"employeeCode"`
	Image        string           `bson:"image" json:"-"` // blob name. download URLs are signed per request
	Deactivated  bool             `bson:"deactivated" json:"-"`
	Descriptors  []FaceDescriptor `bson:"descriptors" json:"-"`

	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

func (model Identity) ParseModel() any {
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
		model.ID = utils.GenerateULIDString()
	}
	model.UpdatedAt = now
	return &model
}
