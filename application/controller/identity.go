package controller

import (
	"context"
	"errors"
	"net/http"

	apperrors "faceclock.io/application/appErrors"
	"faceclock.io/application/constants"
	"faceclock.io/application/controller/dto"
	"faceclock.io/application/interfaces"
	"faceclock.io/application/repository"
	identity_usecases "faceclock.io/application/usecases/identity"
	"faceclock.io/entities"
	"faceclock.io/infrastructure/auth"
	"faceclock.io/infrastructure/biometric"
	biometric_types "faceclock.io/infrastructure/biometric/types"
	fileupload "faceclock.io/infrastructure/file_upload"
	"faceclock.io/infrastructure/logger"
	server_response "faceclock.io/infrastructure/serverResponse"
	"faceclock.io/infrastructure/validator"
	"github.com/gin-gonic/gin"
)

func identityProfile(identity *entities.Identity) dto.IdentityProfileDTO {
	profile := dto.IdentityProfileDTO{
		ID:           identity.ID,
		FullName:     identity.FullName,
		Email:        identity.Email,
		EmployeeCode: identity.EmployeeCode,
	}
	if identity.Image != "" {
		// an issued upload URL may never have been used, so confirm the
		// blob exists before signing a read URL for it
		exists, err := fileupload.FileUploader.CheckFileExists(identity.Image)
		if err == nil && exists {
			url, err := fileupload.FileUploader.GenerateDownloadURL(identity.Image)
			if err == nil {
				profile.PhotoURL = url
			}
		}
	}
	return profile
}

func EnrollIdentity(ctx *interfaces.ApplicationContext[dto.EnrollIdentityDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	if err := ctx.Body.HasProbe(); err != nil {
		apperrors.ClientError(ctx.Ctx, err.Error(), nil, &constants.BAD_CAPTURE)
		return
	}

	result, err := identity_usecases.DefaultDirectory().Enroll(ctx.Ctx.(*gin.Context), identity_usecases.EnrollmentInput{
		FullName:     ctx.Body.FullName,
		Email:        ctx.Body.Email,
		EmployeeCode: ctx.Body.EmployeeCode,
		Descriptor:   ctx.Body.Descriptor,
		ImageB64:     ctx.Body.Image,
		WithPhoto:    ctx.Body.WithPhoto,
	})
	if err != nil {
		switch {
		case errors.Is(err, identity_usecases.ErrIdentityConflict):
			apperrors.EntityAlreadyExistsError(ctx.Ctx, err.Error(), &constants.IDENTITY_EXISTS)
		case errors.Is(err, biometric.ErrInvalidDescriptorLength),
			errors.Is(err, biometric.ErrNoFaceDetected),
			errors.Is(err, identity_usecases.ErrNoUsableDescriptor):
			apperrors.ClientError(ctx.Ctx, err.Error(), nil, &constants.BAD_CAPTURE)
		default:
			apperrors.FatalServerError(ctx.Ctx, err)
		}
		return
	}

	message := "identity enrolled"
	status := http.StatusCreated
	if result.Appended {
		message = "descriptor added to enrolled identity"
		status = http.StatusOK
	}
	server_response.Responder.Respond(ctx.Ctx, status, message, map[string]any{
		"profile":        identityProfile(result.Identity),
		"photoUploadURL": result.PhotoUploadURL,
	}, nil, nil)
}

func VerifyIdentity(ctx *interfaces.ApplicationContext[dto.VerifyIdentityDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}
	if err := ctx.Body.HasProbe(); err != nil {
		apperrors.ClientError(ctx.Ctx, err.Error(), nil, &constants.BAD_CAPTURE)
		return
	}
	requestCtx := ctx.Ctx.(*gin.Context)

	// one deadline covers extraction, matching and session issuance
	verifyCtx, cancel := context.WithTimeout(requestCtx, identity_usecases.VerifyTimeout())
	defer cancel()

	probe := ctx.Body.Descriptor
	if len(probe) == 0 {
		extracted, err := biometric.Extractor.ExtractDescriptor(verifyCtx, ctx.Body.Image)
		if err != nil {
			if errors.Is(err, biometric.ErrNoFaceDetected) {
				apperrors.ClientError(ctx.Ctx, err.Error(), nil, &constants.BAD_CAPTURE)
				return
			}
			apperrors.ExternalDependencyError(ctx.Ctx, "face embedder", err)
			return
		}
		probe = extracted
	}

	result, identity, err := identity_usecases.DefaultDirectory().Resolve(verifyCtx, probe)
	if err != nil {
		if errors.Is(err, biometric.ErrInvalidDescriptorLength) {
			apperrors.ClientError(ctx.Ctx, err.Error(), nil, &constants.BAD_CAPTURE)
			return
		}
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}

	switch result.Outcome {
	case biometric_types.NoMatch:
		apperrors.ClientError(ctx.Ctx, "no enrolled identity matched your face", nil, &constants.NO_FACE_MATCH)
		return
	case biometric_types.Ambiguous:
		logger.Warning("probe resolved to more than one identity", logger.LoggerOptions{
			Key:  "distance",
			Data: result.Distance,
		})
		apperrors.ClientError(ctx.Ctx, "your face could not be told apart from another enrolled identity. try a fresh capture", nil, &constants.AMBIGUOUS_FACE_MATCH)
		return
	}
	if identity == nil || identity.Deactivated {
		apperrors.ClientError(ctx.Ctx, "no enrolled identity matched your face", nil, &constants.NO_FACE_MATCH)
		return
	}

	if verifyCtx.Err() != nil {
		apperrors.ExternalDependencyError(ctx.Ctx, "face embedder", verifyCtx.Err())
		return
	}
	deviceName := ctx.Body.DeviceName
	if deviceName == "" {
		deviceName = ctx.GetStringContextData("DeviceName")
	}
	token, err := auth.StartSession(identity.ID, deviceName, ctx.GetStringContextData("UserAgent"))
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "identity verified", map[string]any{
		"token":    token,
		"profile":  identityProfile(identity),
		"distance": result.Distance,
	}, nil, nil)
}

func CurrentIdentity(ctx *interfaces.ApplicationContext[any]) {
	identity, err := repository.IdentityRepo().FindByID(ctx.Ctx.(*gin.Context), ctx.GetStringContextData("IdentityID"))
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if identity == nil || identity.Deactivated {
		apperrors.NotFoundError(ctx.Ctx, "this identity is no longer enrolled")
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "profile fetched", identityProfile(identity), nil, nil)
}

func EndSession(ctx *interfaces.ApplicationContext[any]) {
	auth.EndSession(ctx.GetStringContextData("SessionID"))
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "session ended", nil, nil, nil)
}
