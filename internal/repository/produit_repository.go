package repository

import (
	"context"
	"regexp"
	"time"

	"tsena-be/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoProduitRepository struct {
	col *mongo.Collection
}

func NewMongoProduitRepository(db *mongo.Database) *MongoProduitRepository {
	return &MongoProduitRepository{col: db.Collection("produits")}
}

func (m *MongoProduitRepository) Save(ctx context.Context, p *model.Produit) error {
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	filter := bson.M{"_id": p.ID}
	update := bson.M{"$set": p}
	opts := options.Update().SetUpsert(true)
	_, err := m.col.UpdateOne(ctx, filter, update, opts)
	return err
}

func (m *MongoProduitRepository) FindByID(ctx context.Context, id string) (*model.Produit, error) {
	var res model.Produit
	err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &res, err
}

// FindAll filtre en option par territoire et par nom (recherche préfixe
// insensible à la casse), pour le catalogue.
func (m *MongoProduitRepository) FindAll(ctx context.Context, territoire, nom string) ([]*model.Produit, error) {
	filter := bson.M{}
	if territoire != "" {
		filter["territoire"] = territoire
	}
	if nom != "" {
		filter["nom"] = bson.M{"$regex": motifPrefixe(nom), "$options": "i"}
	}

	cur, err := m.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*model.Produit
	for cur.Next(ctx) {
		var v model.Produit
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, cur.Err()
}

// motifPrefixe neutralise les métacaractères de l'entrée utilisateur avant de
// construire le motif de recherche préfixe.
func motifPrefixe(nom string) string {
	return "^" + regexp.QuoteMeta(nom)
}

func (m *MongoProduitRepository) FindByPaysanID(ctx context.Context, paysanID string) ([]*model.Produit, error) {
	cur, err := m.col.Find(ctx, bson.M{"paysan_id": paysanID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*model.Produit
	for cur.Next(ctx) {
		var v model.Produit
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, cur.Err()
}
