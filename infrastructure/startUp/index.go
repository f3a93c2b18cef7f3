package startup

import (
	"faceclock.io/infrastructure/biometric"
	"faceclock.io/infrastructure/database"
	"faceclock.io/infrastructure/database/connection/datastore"
	fileupload "faceclock.io/infrastructure/file_upload"
	"faceclock.io/infrastructure/ipresolver"
	"faceclock.io/infrastructure/logger"
	messagequeue "faceclock.io/infrastructure/message_queue"
)

// Used to start services such as loggers, databases, queues, etc.
func StartServices() {
	logger.InitializeLogger()
	logger.RequestMetricMonitor.Init()
	database.SetUpDatabase()
	biometric.InitialiseBiometricService()
	fileupload.InitialiseFileUploader()
	ipresolver.IPResolverInstance.ConnectToDB()
	go messagequeue.StartQueue()
}

// Used to clean up after services that have been shutdown.
func CleanUpServices() {
	datastore.CleanUp()
}
