package repository

import (
	"context"
	"errors"
	"time"

	"tsena-be/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrEmailDejaPris = errors.New("email déjà enregistré")

type MongoUtilisateurRepository struct {
	col *mongo.Collection
}

func NewMongoUtilisateurRepository(db *mongo.Database) *MongoUtilisateurRepository {
	return &MongoUtilisateurRepository{col: db.Collection("utilisateurs")}
}

// EnsureIndexes pose l'index unique sur email dont dépend Create pour
// signaler ErrEmailDejaPris. Appelé au démarrage.
func (m *MongoUtilisateurRepository) EnsureIndexes(ctx context.Context) error {
	_, err := m.col.Indexes().CreateOne(ctx, indexEmailUnique())
	return err
}

func indexEmailUnique() mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
}

// Create insère l'utilisateur. L'index unique sur email (EnsureIndexes) fait
// remonter la violation en ErrEmailDejaPris.
func (m *MongoUtilisateurRepository) Create(ctx context.Context, u *model.Utilisateur) error {
	u.CreatedAt = time.Now().UTC()

	_, err := m.col.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return ErrEmailDejaPris
	}
	return err
}

func (m *MongoUtilisateurRepository) FindByEmail(ctx context.Context, email string) (*model.Utilisateur, error) {
	var res model.Utilisateur
	err := m.col.FindOne(ctx, bson.M{"email": email}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &res, err
}

func (m *MongoUtilisateurRepository) FindByID(ctx context.Context, id string) (*model.Utilisateur, error) {
	var res model.Utilisateur
	err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &res, err
}
