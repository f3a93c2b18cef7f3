package routev1

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strings"

	apperrors "faceclock.io/application/appErrors"
	"faceclock.io/application/controller"
	"faceclock.io/application/controller/dto"
	"faceclock.io/application/interfaces"
	middlewares "faceclock.io/infrastructure/middleware"
	"github.com/gin-gonic/gin"
)

// formFileBase64 reads an uploaded file field into the base64 form the
// pipeline works with. A missing file is not an error - the capture may
// arrive as a descriptor field instead.
func formFileBase64(ctx *gin.Context, field string) (string, error) {
	header, err := ctx.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", err
	}
	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()
	raw, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

func isMultipart(ctx *gin.Context) bool {
	return strings.HasPrefix(ctx.ContentType(), "multipart/")
}

// bindEnrollBody accepts the enrollment payload as multipart form data with
// an image file, or as plain JSON when the client extracted the descriptor
// itself.
func bindEnrollBody(ctx *gin.Context) (*dto.EnrollIdentityDTO, error) {
	var body dto.EnrollIdentityDTO
	if !isMultipart(ctx) {
		if err := ctx.ShouldBindJSON(&body); err != nil {
			return nil, err
		}
		return &body, nil
	}
	body.FullName = ctx.PostForm("fullName")
	body.Email = ctx.PostForm("email")
	body.EmployeeCode = ctx.PostForm("employeeCode")
	body.WithPhoto = ctx.PostForm("withPhoto") == "true"
	descriptor, err := dto.ParseDescriptorJSON(ctx.PostForm("descriptor"))
	if err != nil {
		return nil, err
	}
	body.Descriptor = descriptor
	body.Image, err = formFileBase64(ctx, "image")
	if err != nil {
		return nil, err
	}
	return &body, nil
}

func bindVerifyBody(ctx *gin.Context) (*dto.VerifyIdentityDTO, error) {
	var body dto.VerifyIdentityDTO
	if !isMultipart(ctx) {
		if err := ctx.ShouldBindJSON(&body); err != nil {
			return nil, err
		}
		return &body, nil
	}
	body.DeviceName = ctx.PostForm("deviceName")
	descriptor, err := dto.ParseDescriptorJSON(ctx.PostForm("descriptor"))
	if err != nil {
		return nil, err
	}
	body.Descriptor = descriptor
	body.Image, err = formFileBase64(ctx, "image")
	if err != nil {
		return nil, err
	}
	return &body, nil
}

func IdentityRouter(router *gin.RouterGroup) {
	identityRouter := router.Group("/identity")
	{
		identityRouter.POST("/enroll", middlewares.AdminAuthenticationMiddleware(), func(ctx *gin.Context) {
			body, err := bindEnrollBody(ctx)
			if err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.EnrollIdentity(&interfaces.ApplicationContext[dto.EnrollIdentityDTO]{
				Ctx:  ctx,
				Body: body,
				Keys: ctx.Keys,
			})
		})

		identityRouter.POST("/verify", func(ctx *gin.Context) {
			body, err := bindVerifyBody(ctx)
			if err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.VerifyIdentity(&interfaces.ApplicationContext[dto.VerifyIdentityDTO]{
				Ctx:  ctx,
				Body: body,
				Keys: ctx.Keys,
			})
		})

		identityRouter.GET("/me", middlewares.SessionAuthenticationMiddleware(), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.CurrentIdentity(&interfaces.ApplicationContext[any]{
				Ctx:  ctx,
				Keys: appContext.Keys,
			})
		})

		identityRouter.POST("/logout", middlewares.SessionAuthenticationMiddleware(), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.EndSession(&interfaces.ApplicationContext[any]{
				Ctx:  ctx,
				Keys: appContext.Keys,
			})
		})
	}
}
