package identity_usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"faceclock.io/entities"
	"faceclock.io/infrastructure/biometric"
	fileupload "faceclock.io/infrastructure/file_upload"
	"faceclock.io/infrastructure/logger"
)

var (
	// ErrIdentityConflict means the employee code or email is already taken
	// by a different person.
	ErrIdentityConflict = errors.New("an identity with this employee code or email already exists")

	// ErrNoUsableDescriptor means neither a descriptor nor an extractable
	// image was supplied.
	ErrNoUsableDescriptor = errors.New("request carries no descriptor and no image to extract one from")
)

type EnrollmentInput struct {
	FullName     string
	Email        string
	EmployeeCode string
	Descriptor   []float64
	ImageB64     string
	WithPhoto    bool
}

type EnrollmentResult struct {
	Identity *entities.Identity
	// Appended is true when the person was already enrolled and this request
	// added another descriptor to their set.
	Appended bool
	// PhotoUploadURL is a signed write-only URL the client pushes the
	// enrollment photo to. Only set when the caller asked for one.
	PhotoUploadURL *string
}

// Directory holds every enrolled identity and answers probes against their
// descriptors.
type Directory struct {
	Store IdentityStore
}

func photoBlobName(employeeCode string) string {
	return fmt.Sprintf("identity-photos/%s", strings.ToLower(employeeCode))
}

// Enroll stores a new identity with its first descriptor, or appends a
// descriptor to an existing one. The descriptor is validated before any write
// is attempted, so a rejected descriptor leaves no record behind, and the
// descriptor and the identity become visible together - a concurrent
// verification either sees the whole enrollment or none of it.
func (d *Directory) Enroll(ctx context.Context, input EnrollmentInput) (*EnrollmentResult, error) {
	descriptor := input.Descriptor
	if len(descriptor) == 0 {
		if input.ImageB64 == "" {
			return nil, ErrNoUsableDescriptor
		}
		extracted, err := biometric.Extractor.ExtractDescriptor(ctx, input.ImageB64)
		if err != nil {
			return nil, err
		}
		descriptor = extracted
	}
	if err := biometric.ValidateDescriptor(descriptor); err != nil {
		return nil, err
	}

	faceDescriptor := entities.FaceDescriptor{
		Vector:     descriptor,
		EnrolledAt: time.Now(),
	}

	existing, err := d.Store.FindByEmployeeCode(ctx, input.EmployeeCode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if !strings.EqualFold(existing.Email, input.Email) {
			return nil, ErrIdentityConflict
		}
		appended, err := d.Store.AppendDescriptor(ctx, existing.ID, faceDescriptor)
		if err != nil {
			return nil, err
		}
		if !appended {
			return nil, errors.New("could not store the additional descriptor")
		}
		logger.Info("appended descriptor to enrolled identity", logger.LoggerOptions{
			Key:  "identityID",
			Data: existing.ID,
		})
		result := EnrollmentResult{Identity: existing, Appended: true}
		if input.WithPhoto {
			if existing.Image == "" {
				existing.Image = photoBlobName(existing.EmployeeCode)
				if err := d.Store.SetImage(ctx, existing.ID, existing.Image); err != nil {
					return nil, err
				}
			}
			result.PhotoUploadURL, err = fileupload.FileUploader.GenerateUploadURL(existing.Image)
			if err != nil {
				return nil, err
			}
		}
		return &result, nil
	}

	identity := entities.Identity{
		FullName:     input.FullName,
		Email:        strings.ToLower(input.Email),
		EmployeeCode: input.EmployeeCode,
		Descriptors:  []entities.FaceDescriptor{faceDescriptor},
	}
	if input.WithPhoto {
		identity.Image = photoBlobName(input.EmployeeCode)
	}
	created, err := d.Store.Insert(ctx, identity)
	if err != nil {
		return nil, err
	}

	result := EnrollmentResult{Identity: created}
	if input.WithPhoto {
		result.PhotoUploadURL, err = fileupload.FileUploader.GenerateUploadURL(created.Image)
		if err != nil {
			return nil, err
		}
	}
	logger.Info("enrolled new identity", logger.LoggerOptions{
		Key:  "identityID",
		Data: created.ID,
	})
	return &result, nil
}
