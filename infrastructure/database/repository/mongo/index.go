package mongo

import (
	"context"
	"errors"
	"time"

	"faceclock.io/infrastructure/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

func (repo *MongoRepository[T]) prepareCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, defaultTimeout)
}

// CreateOne persists a new document. The entity assigns its own id and
// timestamps through ParseModel. Unique index violations surface as the
// driver's duplicate key error so callers can branch on them.
func (repo *MongoRepository[T]) CreateOne(ctx context.Context, payload T) (*T, error) {
	c, cancel := repo.prepareCtx(ctx)
	defer cancel()

	parsed := payload.ParseModel().(*T)
	_, err := repo.Model.InsertOne(c, parsed)
	if err != nil {
		if !mongo.IsDuplicateKeyError(err) {
			logger.Error("mongo error occured while running CreateOne", logger.LoggerOptions{
				Key:  "error",
				Data: err,
			}, logger.LoggerOptions{
				Key:  "collection",
				Data: repo.Model.Name(),
			})
		}
		return nil, err
	}
	return parsed, nil
}

func (repo *MongoRepository[T]) FindByID(ctx context.Context, id string, opts ...*options.FindOneOptions) (*T, error) {
	return repo.FindOneByFilter(ctx, map[string]any{"_id": id}, opts...)
}

func (repo *MongoRepository[T]) FindOneByFilter(ctx context.Context, filter map[string]any, opts ...*options.FindOneOptions) (*T, error) {
	c, cancel := repo.prepareCtx(ctx)
	defer cancel()

	var result T
	err := repo.Model.FindOne(c, filter, opts...).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.Error("mongo error occured while running FindOneByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "collection",
			Data: repo.Model.Name(),
		})
		return nil, err
	}
	return &result, nil
}

func (repo *MongoRepository[T]) FindMany(ctx context.Context, filter map[string]any, findOptions ...FindOptions) (*[]T, error) {
	c, cancel := repo.prepareCtx(ctx)
	defer cancel()

	opts := options.Find()
	if len(findOptions) != 0 {
		if findOptions[0].Sort != nil {
			opts.SetSort(*findOptions[0].Sort)
		}
		if findOptions[0].Projection != nil {
			opts.SetProjection(*findOptions[0].Projection)
		}
		if findOptions[0].Skip != nil {
			opts.SetSkip(*findOptions[0].Skip)
		}
		if findOptions[0].Limit != nil {
			opts.SetLimit(*findOptions[0].Limit)
		}
	}

	cursor, err := repo.Model.Find(c, filter, opts)
	if err != nil {
		logger.Error("mongo error occured while running FindMany", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "collection",
			Data: repo.Model.Name(),
		})
		return nil, err
	}
	results := []T{}
	if err = cursor.All(c, &results); err != nil {
		logger.Error("mongo error occured while decoding FindMany results", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "collection",
			Data: repo.Model.Name(),
		})
		return nil, err
	}
	return &results, nil
}

func (repo *MongoRepository[T]) UpdatePartialByID(ctx context.Context, id string, payload map[string]any) (bool, error) {
	return repo.UpdatePartialByFilter(ctx, map[string]any{"_id": id}, payload)
}

func (repo *MongoRepository[T]) UpdatePartialByFilter(ctx context.Context, filter map[string]any, payload map[string]any) (bool, error) {
	c, cancel := repo.prepareCtx(ctx)
	defer cancel()

	payload["updatedAt"] = time.Now()
	result, err := repo.Model.UpdateOne(c, filter, bson.M{"$set": payload})
	if err != nil {
		logger.Error("mongo error occured while running UpdatePartialByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "collection",
			Data: repo.Model.Name(),
		})
		return false, err
	}
	return result.ModifiedCount == 1, nil
}

// PushToArrayByFilter appends values to an array field without touching the
// rest of the document.
func (repo *MongoRepository[T]) PushToArrayByFilter(ctx context.Context, filter map[string]any, field string, value any) (bool, error) {
	c, cancel := repo.prepareCtx(ctx)
	defer cancel()

	result, err := repo.Model.UpdateOne(c, filter, bson.M{
		"$push": bson.M{field: value},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		logger.Error("mongo error occured while running PushToArrayByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "collection",
			Data: repo.Model.Name(),
		})
		return false, err
	}
	return result.ModifiedCount == 1, nil
}

// FindOneAndUpdatePartial applies a conditional partial update and returns
// the updated document, or nil when the filter matched nothing. The filter
// carries the state-machine guard so the read and write are one atomic step
// on the storage side.
func (repo *MongoRepository[T]) FindOneAndUpdatePartial(ctx context.Context, filter map[string]any, payload map[string]any) (*T, error) {
	c, cancel := repo.prepareCtx(ctx)
	defer cancel()

	payload["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var result T
	err := repo.Model.FindOneAndUpdate(c, filter, bson.M{"$set": payload}, opts).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.Error("mongo error occured while running FindOneAndUpdatePartial", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "collection",
			Data: repo.Model.Name(),
		})
		return nil, err
	}
	return &result, nil
}
