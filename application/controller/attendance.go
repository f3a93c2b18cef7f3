package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	apperrors "faceclock.io/application/appErrors"
	"faceclock.io/application/constants"
	"faceclock.io/application/controller/dto"
	"faceclock.io/application/interfaces"
	"faceclock.io/application/repository"
	attendance_usecases "faceclock.io/application/usecases/attendance"
	"faceclock.io/entities"
	"faceclock.io/infrastructure/ipresolver"
	"faceclock.io/infrastructure/logger"
	messagequeue "faceclock.io/infrastructure/message_queue"
	queue_tasks "faceclock.io/infrastructure/message_queue/tasks"
	mq_types "faceclock.io/infrastructure/message_queue/types"
	server_response "faceclock.io/infrastructure/serverResponse"
	"github.com/gin-gonic/gin"
)

func checkInOrigin(requestCtx *gin.Context) *entities.CheckInOrigin {
	ip := requestCtx.ClientIP()
	origin := entities.CheckInOrigin{IPAddress: ip}
	resolved, err := ipresolver.IPResolverInstance.LookUp(ip)
	if err != nil {
		// geo data is audit garnish. a failed lookup never blocks a check-in
		logger.Warning("could not resolve check-in origin", logger.LoggerOptions{
			Key:  "ip",
			Data: ip,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return &origin
	}
	origin.City = resolved.City
	origin.CountryCode = resolved.CountryCode
	origin.Latitude = resolved.Latitude
	origin.Longitude = resolved.Longitude
	return &origin
}

func CheckIn(ctx *interfaces.ApplicationContext[any]) {
	requestCtx := ctx.Ctx.(*gin.Context)
	identityID := ctx.GetStringContextData("IdentityID")

	record, err := attendance_usecases.DefaultLedger().CheckIn(requestCtx, identityID, checkInOrigin(requestCtx))
	if err != nil {
		if errors.Is(err, attendance_usecases.ErrAlreadyCheckedIn) {
			apperrors.EntityAlreadyExistsError(ctx.Ctx, "you have already checked in today", &constants.ALREADY_CHECKED_IN)
			return
		}
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "checked in", dto.AttendanceRecordFromEntity(record), nil, nil)
}

func CheckOut(ctx *interfaces.ApplicationContext[any]) {
	requestCtx := ctx.Ctx.(*gin.Context)
	identityID := ctx.GetStringContextData("IdentityID")

	record, err := attendance_usecases.DefaultLedger().CheckOut(requestCtx, identityID)
	if err != nil {
		switch {
		case errors.Is(err, attendance_usecases.ErrNotCheckedInYet):
			apperrors.ClientError(ctx.Ctx, "you have not checked in today", nil, &constants.NOT_CHECKED_IN_YET)
		case errors.Is(err, attendance_usecases.ErrAlreadyCheckedOut):
			apperrors.ClientError(ctx.Ctx, "you have already checked out today", nil, &constants.ALREADY_CHECKED_OUT)
		default:
			apperrors.FatalServerError(ctx.Ctx, err)
		}
		return
	}

	enqueueAttendanceReceipt(requestCtx, identityID, record)
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "checked out", dto.AttendanceRecordFromEntity(record), nil, nil)
}

// enqueueAttendanceReceipt schedules the day-summary email. Failures are
// logged and swallowed - the check-out already succeeded.
func enqueueAttendanceReceipt(requestCtx *gin.Context, identityID string, record *entities.AttendanceRecord) {
	identity, err := repository.IdentityRepo().FindByID(requestCtx, identityID)
	if err != nil || identity == nil {
		logger.Error("could not load identity for attendance receipt", logger.LoggerOptions{
			Key:  "identityID",
			Data: identityID,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return
	}
	loc := attendance_usecases.ReferenceLocation()
	payload, err := json.Marshal(queue_tasks.AttendanceReceiptPayload{
		To:       identity.Email,
		FullName: identity.FullName,
		Date:     record.Date,
		CheckIn:  record.CheckIn.In(loc).Format("3:04 PM"),
		CheckOut: record.CheckOut.In(loc).Format("3:04 PM"),
		Duration: record.Duration().String(),
	})
	if err != nil {
		logger.Error("could not marshal attendance receipt payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return
	}
	messagequeue.TaskQueue.Enqueue(mq_types.QueueTask{
		Name:      queue_tasks.HandleAttendanceReceiptTaskName,
		Payload:   payload,
		Priority:  mq_types.Low,
		ProcessIn: 1,
	})
}

func TodayAttendance(ctx *interfaces.ApplicationContext[any]) {
	record, err := attendance_usecases.DefaultLedger().Today(ctx.Ctx.(*gin.Context), ctx.GetStringContextData("IdentityID"))
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "attendance fetched", dto.AttendanceRecordFromEntity(record), nil, nil)
}

func AttendanceHistory(ctx *interfaces.ApplicationContext[any]) {
	var limit int64
	if raw := ctx.GetStringParameter("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			apperrors.ClientError(ctx.Ctx, "limit must be a positive number", nil, nil)
			return
		}
		limit = parsed
	}

	records, err := attendance_usecases.DefaultLedger().History(ctx.Ctx.(*gin.Context), ctx.GetStringContextData("IdentityID"), limit)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	rendered := make([]dto.AttendanceRecordDTO, 0, len(records))
	for i := range records {
		rendered = append(rendered, dto.AttendanceRecordFromEntity(&records[i]))
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "attendance history fetched", dto.AttendanceHistoryDTO{
		Records: rendered,
	}, nil, nil)
}
