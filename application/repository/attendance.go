package repository

import (
	"sync"

	"faceclock.io/entities"
	"faceclock.io/infrastructure/database/connection/datastore"
	"faceclock.io/infrastructure/database/repository/mongo"
)

var attendanceOnce = sync.Once{}

var attendanceRepository mongo.MongoRepository[entities.AttendanceRecord]

func AttendanceRepo() *mongo.MongoRepository[entities.AttendanceRecord] {
	attendanceOnce.Do(func() {
		attendanceRepository = mongo.MongoRepository[entities.AttendanceRecord]{Model: datastore.AttendanceModel}
	})
	return &attendanceRepository
}
