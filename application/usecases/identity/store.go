package identity_usecases

import (
	"context"
	"sync"

	"faceclock.io/application/repository"
	"faceclock.io/entities"
	"faceclock.io/infrastructure/biometric/types"
	mongorepo "faceclock.io/infrastructure/database/repository/mongo"
	"go.mongodb.org/mongo-driver/mongo"
)

// IdentityStore is the persistence contract for enrolled identities. Insert
// must be atomic over the employee-code and email uniqueness guarantees,
// surfacing collisions as ErrIdentityConflict so a failed enrollment leaves
// no partial record behind.
type IdentityStore interface {
	FindByEmployeeCode(ctx context.Context, employeeCode string) (*entities.Identity, error)
	FindByID(ctx context.Context, id string) (*entities.Identity, error)
	Insert(ctx context.Context, identity entities.Identity) (*entities.Identity, error)
	AppendDescriptor(ctx context.Context, identityID string, descriptor entities.FaceDescriptor) (bool, error)
	SetImage(ctx context.Context, identityID string, blobName string) error
	ActiveDescriptors(ctx context.Context) ([]types.EnrolledDescriptor, error)
}

// mongoIdentityStore backs the directory with the Identities collection.
// Descriptors live inside the identity document, so an enrollment and its
// first descriptor become visible in one atomic write.
type mongoIdentityStore struct{}

func (mongoIdentityStore) FindByEmployeeCode(ctx context.Context, employeeCode string) (*entities.Identity, error) {
	return repository.IdentityRepo().FindOneByFilter(ctx, map[string]any{
		"employeeCode": employeeCode,
	})
}

func (mongoIdentityStore) FindByID(ctx context.Context, id string) (*entities.Identity, error) {
	return repository.IdentityRepo().FindByID(ctx, id)
}

func (mongoIdentityStore) Insert(ctx context.Context, identity entities.Identity) (*entities.Identity, error) {
	created, err := repository.IdentityRepo().CreateOne(ctx, identity)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrIdentityConflict
		}
		return nil, err
	}
	return created, nil
}

func (mongoIdentityStore) AppendDescriptor(ctx context.Context, identityID string, descriptor entities.FaceDescriptor) (bool, error) {
	return repository.IdentityRepo().PushToArrayByFilter(ctx, map[string]any{
		"_id": identityID,
	}, "descriptors", descriptor)
}

func (mongoIdentityStore) SetImage(ctx context.Context, identityID string, blobName string) error {
	_, err := repository.IdentityRepo().UpdatePartialByID(ctx, identityID, map[string]any{
		"image": blobName,
	})
	return err
}

func (mongoIdentityStore) ActiveDescriptors(ctx context.Context) ([]types.EnrolledDescriptor, error) {
	var projection interface{} = map[string]any{"descriptors": 1}
	identities, err := repository.IdentityRepo().FindMany(ctx, map[string]any{
		"deactivated": false,
	}, mongorepo.FindOptions{
		Projection: &projection,
	})
	if err != nil {
		return nil, err
	}
	enrolled := []types.EnrolledDescriptor{}
	for _, identity := range *identities {
		for _, descriptor := range identity.Descriptors {
			enrolled = append(enrolled, types.EnrolledDescriptor{
				IdentityID: identity.ID,
				Vector:     descriptor.Vector,
			})
		}
	}
	return enrolled, nil
}

var defaultDirectoryOnce = sync.Once{}

var defaultDirectory Directory

// DefaultDirectory is the production directory wired to mongo storage.
func DefaultDirectory() *Directory {
	defaultDirectoryOnce.Do(func() {
		defaultDirectory = Directory{Store: mongoIdentityStore{}}
	})
	return &defaultDirectory
}
