package repository

import (
	"sync"

	"faceclock.io/entities"
	"faceclock.io/infrastructure/database/connection/datastore"
	"faceclock.io/infrastructure/database/repository/mongo"
)

var identityOnce = sync.Once{}

var identityRepository mongo.MongoRepository[entities.Identity]

func IdentityRepo() *mongo.MongoRepository[entities.Identity] {
	identityOnce.Do(func() {
		identityRepository = mongo.MongoRepository[entities.Identity]{Model: datastore.IdentityModel}
	})
	return &identityRepository
}
