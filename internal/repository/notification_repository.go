package repository

import (
	"context"
	"time"

	"tsena-be/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoNotificationRepository struct {
	col *mongo.Collection
}

func NewMongoNotificationRepository(db *mongo.Database) *MongoNotificationRepository {
	return &MongoNotificationRepository{col: db.Collection("notifications")}
}

func (m *MongoNotificationRepository) Save(ctx context.Context, n *model.Notification) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	_, err := m.col.InsertOne(ctx, n)
	return err
}

// FindByDestinataire rend les notifications les plus récentes en premier.
func (m *MongoNotificationRepository) FindByDestinataire(ctx context.Context, destinataireID string, limit int64) ([]*model.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cur, err := m.col.Find(ctx, bson.M{"destinataire_id": destinataireID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*model.Notification
	for cur.Next(ctx) {
		var v model.Notification
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, cur.Err()
}

func (m *MongoNotificationRepository) MarquerLue(ctx context.Context, id, destinataireID string) error {
	filter := bson.M{"_id": id, "destinataire_id": destinataireID}
	update := bson.M{"$set": bson.M{"lue": true}}

	r, err := m.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if r.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
