package emails

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"

	"faceclock.io/infrastructure/logger"
	"github.com/resend/resend-go/v2"
)

//go:embed templates/attendance_receipt.html
var templatesFS embed.FS

var receiptTemplate = template.Must(template.ParseFS(templatesFS, "templates/attendance_receipt.html"))

type ResendService struct {
}

func renderReceipt(data ReceiptData) (string, error) {
	var buffer bytes.Buffer
	if err := receiptTemplate.Execute(&buffer, data); err != nil {
		return "", err
	}
	return buffer.String(), nil
}

func (rs *ResendService) SendAttendanceReceipt(toEmail string, subject string, data ReceiptData) bool {
	html, err := renderReceipt(data)
	if err != nil {
		logger.Error("failed to render attendance receipt template", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "toEmail",
			Data: toEmail,
		})
		return false
	}

	client := resend.NewClient(os.Getenv("RESEND_API_KEY"))
	params := &resend.SendEmailRequest{
		From:    os.Getenv("RESEND_DEFAULT_EMAIL"),
		To:      []string{toEmail},
		Subject: subject,
		Html:    html,
	}

	_, err = client.Emails.Send(params)
	if err != nil {
		logger.Error("an error occured while trying to send email using resend service", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "toEmail",
			Data: toEmail,
		})
		return false
	}
	logger.Info(fmt.Sprintf("successfully sent attendance receipt to %s", toEmail), logger.LoggerOptions{
		Key:  "service",
		Data: "resend",
	})
	return true
}
