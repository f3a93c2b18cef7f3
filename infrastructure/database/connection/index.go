package connection

import (
	"faceclock.io/infrastructure/database/connection/cache"
	"faceclock.io/infrastructure/database/connection/datastore"
)

func ConnectToDatabase() {
	datastore.ConnectToDatabase()
	cache.ConnectToCache()
}
