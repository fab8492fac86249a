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

var ErrNotFound = errors.New("document introuvable")

// Implémentation Mongo
type MongoCommandeRepository struct {
	col *mongo.Collection
}

func NewMongoCommandeRepository(db *mongo.Database) *MongoCommandeRepository {
	return &MongoCommandeRepository{col: db.Collection("commandes")}
}

func (m *MongoCommandeRepository) Save(ctx context.Context, c *model.Commande) error {
	now := time.Now().UTC()

	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
		// Premier enregistrement de l'historique
		c.Historique = []model.EnregistrementStatut{
			{
				Statut:    c.Statut,
				Timestamp: now,
				ActeurID:  c.CollecteurID,
				Motif:     "Commande créée",
				Courant:   true,
			},
		}
	}
	c.UpdatedAt = now

	filter := bson.M{"_id": c.ID}
	update := bson.M{"$set": c}
	opts := options.Update().SetUpsert(true)
	_, err := m.col.UpdateOne(ctx, filter, update, opts)
	return err
}

func (m *MongoCommandeRepository) FindByID(ctx context.Context, id string) (*model.Commande, error) {
	var res model.Commande
	err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &res, err
}

// decodeAll boucle sur le curseur ; partagé par toutes les recherches.
func (m *MongoCommandeRepository) decodeAll(ctx context.Context, cur *mongo.Cursor) ([]*model.Commande, error) {
	defer cur.Close(ctx)

	var out []*model.Commande
	for cur.Next(ctx) {
		var v model.Commande
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, cur.Err()
}

func pageOptions(page, limit int64) *options.FindOptions {
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	return options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)
}

func (m *MongoCommandeRepository) FindAll(ctx context.Context, page, limit int64) ([]*model.Commande, error) {
	cur, err := m.col.Find(ctx, bson.M{}, pageOptions(page, limit))
	if err != nil {
		return nil, err
	}
	return m.decodeAll(ctx, cur)
}

func (m *MongoCommandeRepository) FindByStatut(ctx context.Context, statut model.StatutCommande) ([]*model.Commande, error) {
	cur, err := m.col.Find(ctx, bson.M{"statut": statut})
	if err != nil {
		return nil, err
	}
	return m.decodeAll(ctx, cur)
}

func (m *MongoCommandeRepository) FindByCollecteurID(ctx context.Context, collecteurID string, page, limit int64) ([]*model.Commande, error) {
	cur, err := m.col.Find(ctx, bson.M{"collecteur_id": collecteurID}, pageOptions(page, limit))
	if err != nil {
		return nil, err
	}
	return m.decodeAll(ctx, cur)
}

// FindByPaysanID couvre les deux côtés : les commandes directes qui visent le
// paysan, et les demandes ouvertes où il a déposé une ligne.
func (m *MongoCommandeRepository) FindByPaysanID(ctx context.Context, paysanID string, page, limit int64) ([]*model.Commande, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"paysan_id": paysanID},
		bson.M{"lignes.produit.paysan_id": paysanID},
	}}
	cur, err := m.col.Find(ctx, filter, pageOptions(page, limit))
	if err != nil {
		return nil, err
	}
	return m.decodeAll(ctx, cur)
}

func (m *MongoCommandeRepository) UpdateStatut(ctx context.Context, id string, statut model.StatutCommande, record model.EnregistrementStatut) error {

	// ÉTAPE 1 : démarquer l'enregistrement courant
	filter := bson.M{
		"_id":                id,
		"historique.courant": true,
	}

	update1 := bson.M{
		"$set": bson.M{
			"historique.$.courant": false,
		},
	}

	r1, err := m.col.UpdateOne(ctx, filter, update1)
	if err != nil {
		return err
	}
	if r1.MatchedCount == 0 {
		return ErrNotFound
	}

	// ÉTAPE 2 : poser le statut + pousser le nouvel enregistrement
	filter2 := bson.M{"_id": id}

	update2 := bson.M{
		"$set": bson.M{
			"statut":     statut,
			"updated_at": time.Now().UTC(),
		},
		"$push": bson.M{
			"historique": record,
		},
	}

	_, err = m.col.UpdateOne(ctx, filter2, update2)
	return err
}

// UpdateLigneStatut pose le statut d'une ligne par mise à jour positionnelle.
func (m *MongoCommandeRepository) UpdateLigneStatut(ctx context.Context, commandeID, ligneID string, statut model.StatutLigne) error {
	filter := bson.M{
		"_id":       commandeID,
		"lignes.id": ligneID,
	}
	update := bson.M{
		"$set": bson.M{
			"lignes.$.statut_ligne": statut,
			"updated_at":            time.Now().UTC(),
		},
	}

	r, err := m.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if r.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoCommandeRepository) AjouterLigne(ctx context.Context, commandeID string, ligne model.LigneCommande) error {
	filter := bson.M{"_id": commandeID}
	update := bson.M{
		"$push": bson.M{"lignes": ligne},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}

	r, err := m.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if r.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoCommandeRepository) Delete(ctx context.Context, id string) error {
	r, err := m.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if r.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
