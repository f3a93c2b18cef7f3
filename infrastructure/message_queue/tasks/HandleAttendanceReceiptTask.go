package queue_tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"faceclock.io/infrastructure/logger"
	mq_types "faceclock.io/infrastructure/message_queue/types"
	"faceclock.io/infrastructure/messaging/emails"
	"github.com/hibiken/asynq"
)

var HandleAttendanceReceiptTaskName mq_types.Queues = "send_attendance_receipt"

// AttendanceReceiptPayload feeds the attendance_receipt template after a day
// is checked out.
type AttendanceReceiptPayload struct {
	To       string
	FullName string
	Date     string
	CheckIn  string
	CheckOut string
	Duration string
}

func HandleAttendanceReceiptTask(ctx context.Context, t *asynq.Task) error {
	var payload AttendanceReceiptPayload
	err := json.Unmarshal(t.Payload(), &payload)
	if err != nil {
		logger.Error("an error occured while unmarshalling attendance receipt payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return err
	}
	subject := fmt.Sprintf("Your attendance summary for %s", payload.Date)
	success := emails.EmailService.SendAttendanceReceipt(payload.To, subject, emails.ReceiptData{
		FullName: payload.FullName,
		Date:     payload.Date,
		CheckIn:  payload.CheckIn,
		CheckOut: payload.CheckOut,
		Duration: payload.Duration,
	})
	if !success {
		logger.Error("failed to send attendance receipt", logger.LoggerOptions{
			Key:  "toEmail",
			Data: payload.To,
		}, logger.LoggerOptions{
			Key:  "date",
			Data: payload.Date,
		})
		return fmt.Errorf("failed to send attendance receipt to %s", payload.To)
	}
	return nil
}
