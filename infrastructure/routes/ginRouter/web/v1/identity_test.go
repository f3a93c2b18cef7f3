package routev1

import (
	"bytes"
	"encoding/base64"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func multipartContext(t *testing.T, fields map[string]string, imageBytes []byte) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	buffer := &bytes.Buffer{}
	writer := multipart.NewWriter(buffer)
	for field, value := range fields {
		if err := writer.WriteField(field, value); err != nil {
			t.Fatalf("could not write form field %s: %v", field, err)
		}
	}
	if imageBytes != nil {
		part, err := writer.CreateFormFile("image", "capture.jpg")
		if err != nil {
			t.Fatalf("could not create image part: %v", err)
		}
		if _, err := part.Write(imageBytes); err != nil {
			t.Fatalf("could not write image part: %v", err)
		}
	}
	writer.Close()

	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest(http.MethodPost, "/api/v1/identity/enroll", buffer)
	ctx.Request.Header.Set("Content-Type", writer.FormDataContentType())
	return ctx
}

func TestBindEnrollBodyMultipart(t *testing.T) {
	imageBytes := []byte("jpeg-bytes")
	ctx := multipartContext(t, map[string]string{
		"fullName":     "Ada Lovelace",
		"email":        "ada@faceclock.io",
		"employeeCode": "EMP-0001",
		"withPhoto":    "true",
	}, imageBytes)

	body, err := bindEnrollBody(ctx)
	if err != nil {
		t.Fatalf("binding failed: %v", err)
	}
	if body.FullName != "Ada Lovelace" || body.Email != "ada@faceclock.io" || body.EmployeeCode != "EMP-0001" {
		t.Fatalf("form fields not bound: %+v", body)
	}
	if !body.WithPhoto {
		t.Fatal("withPhoto=true was not bound")
	}
	if body.Image != base64.StdEncoding.EncodeToString(imageBytes) {
		t.Fatal("image file was not read into base64")
	}
	if body.HasProbe() != nil {
		t.Fatal("an uploaded image should count as a probe")
	}
}

func TestBindEnrollBodyMultipartDescriptorField(t *testing.T) {
	ctx := multipartContext(t, map[string]string{
		"fullName":     "Ada Lovelace",
		"email":        "ada@faceclock.io",
		"employeeCode": "EMP-0001",
		"descriptor":   "[0.25, -0.5, 1]",
	}, nil)

	body, err := bindEnrollBody(ctx)
	if err != nil {
		t.Fatalf("binding failed: %v", err)
	}
	if len(body.Descriptor) != 3 || body.Descriptor[1] != -0.5 {
		t.Fatalf("descriptor field not decoded: %v", body.Descriptor)
	}
	if body.Image != "" {
		t.Fatal("no image part was sent but one was bound")
	}
}

func TestBindEnrollBodyRejectsMalformedDescriptor(t *testing.T) {
	ctx := multipartContext(t, map[string]string{
		"fullName":   "Ada Lovelace",
		"descriptor": "not-json",
	}, nil)

	if _, err := bindEnrollBody(ctx); err == nil {
		t.Fatal("expected a binding error for a malformed descriptor field")
	}
}

func TestBindVerifyBodyJSONFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest(http.MethodPost, "/api/v1/identity/verify",
		strings.NewReader(`{"descriptor": [0.5, 0.25], "deviceName": "front desk kiosk"}`))
	ctx.Request.Header.Set("Content-Type", "application/json")

	body, err := bindVerifyBody(ctx)
	if err != nil {
		t.Fatalf("binding failed: %v", err)
	}
	if len(body.Descriptor) != 2 || body.DeviceName != "front desk kiosk" {
		t.Fatalf("JSON payload not bound: %+v", body)
	}
}

func TestBindVerifyBodyMultipart(t *testing.T) {
	imageBytes := []byte("capture")
	ctx := multipartContext(t, map[string]string{
		"deviceName": "warehouse gate",
	}, imageBytes)

	body, err := bindVerifyBody(ctx)
	if err != nil {
		t.Fatalf("binding failed: %v", err)
	}
	if body.DeviceName != "warehouse gate" {
		t.Fatalf("deviceName not bound: %q", body.DeviceName)
	}
	if body.Image != base64.StdEncoding.EncodeToString(imageBytes) {
		t.Fatal("image file was not read into base64")
	}
}
