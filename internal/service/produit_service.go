package service

import (
	"context"
	"fmt"

	"tsena-be/internal/model"

	"github.com/google/uuid"
)

type ProduitService struct {
	repo ProduitRepository
}

func NewProduitService(repo ProduitRepository) *ProduitService {
	return &ProduitService{repo: repo}
}

// Creer : seul un paysan publie un produit, toujours sous son propre nom.
func (s *ProduitService) Creer(ctx context.Context, acteur Acteur, p *model.Produit) (*model.Produit, error) {
	if acteur.Role != model.RolePaysan {
		return nil, ErrInterdit
	}
	if p.Nom == "" || p.Prix <= 0 {
		return nil, fmt.Errorf("%w: nom et prix requis", ErrTypeIncoherent)
	}

	p.ID = uuid.NewString()
	p.PaysanID = acteur.ID

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProduitService) GetByID(ctx context.Context, id string) (*model.Produit, error) {
	return s.repo.FindByID(ctx, id)
}

// Catalogue public, filtrable par territoire et par nom.
func (s *ProduitService) GetCatalogue(ctx context.Context, territoire, nom string) ([]*model.Produit, error) {
	return s.repo.FindAll(ctx, territoire, nom)
}

func (s *ProduitService) GetParPaysan(ctx context.Context, paysanID string) ([]*model.Produit, error) {
	return s.repo.FindByPaysanID(ctx, paysanID)
}
