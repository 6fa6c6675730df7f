package repositories

import (
	"context"
	"errors"
	"time"

	"betamoney/internal/adapters/persistence/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// currentSessionKey is the _id of the single session document
const currentSessionKey = "current"

// mongoStore implements Store on the hosted document backend.
// The driver reconstitutes created_at/updated_at as time.Time from
// BSON dates, so no string parsing is needed on reads.
type mongoStore struct {
	users    *mongo.Collection
	requests *mongo.Collection
	session  *mongo.Collection
	client   *mongo.Client
}

// NewMongoStore creates a new document store over the given database
func NewMongoStore(client *mongo.Client, dbName string) Store {
	db := client.Database(dbName)
	return &mongoStore{
		users:    db.Collection("users"),
		requests: db.Collection("requests"),
		session:  db.Collection("session"),
		client:   client,
	}
}

func (s *mongoStore) SaveUser(ctx context.Context, user *models.User) error {
	_, err := s.users.ReplaceOne(ctx,
		bson.M{"_id": user.ID},
		user,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *mongoStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *mongoStore) SaveSession(ctx context.Context, user *models.User) error {
	data, err := models.EncodeSessionUser(user)
	if err != nil {
		return err
	}
	_, err = s.session.ReplaceOne(ctx,
		bson.M{"_id": currentSessionKey},
		bson.M{"_id": currentSessionKey, "data": data, "updated_at": time.Now()},
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *mongoStore) GetSessionUser(ctx context.Context) (*models.User, error) {
	var doc struct {
		Data string `bson:"data"`
	}
	err := s.session.FindOne(ctx, bson.M{"_id": currentSessionKey}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return models.DecodeSessionUser(doc.Data)
}

func (s *mongoStore) ClearSession(ctx context.Context) error {
	_, err := s.session.DeleteOne(ctx, bson.M{"_id": currentSessionKey})
	return err
}

func (s *mongoStore) SaveRequest(ctx context.Context, request *models.Request) error {
	_, err := s.requests.ReplaceOne(ctx,
		bson.M{"_id": request.ID},
		request,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *mongoStore) GetRequestByID(ctx context.Context, id string) (*models.Request, error) {
	var request models.Request
	err := s.requests.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (s *mongoStore) GetAllRequests(ctx context.Context) ([]models.Request, error) {
	return s.findRequests(ctx, bson.M{})
}

func (s *mongoStore) GetRequestsForUser(ctx context.Context, userID string) ([]models.Request, error) {
	return s.findRequests(ctx, bson.M{"user_id": userID})
}

func (s *mongoStore) findRequests(ctx context.Context, filter bson.M) ([]models.Request, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})
	cursor, err := s.requests.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	requests := make([]models.Request, 0)
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (s *mongoStore) UpdateRequestStatus(ctx context.Context, id, status string) error {
	_, err := s.requests.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	return err
}

func (s *mongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}
