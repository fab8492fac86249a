package service

import (
	"context"
	"errors"
	"time"

	"tsena-be/internal/logger"
	"tsena-be/internal/model"
	"tsena-be/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UtilisateurRepository interface {
	Create(ctx context.Context, u *model.Utilisateur) error
	FindByEmail(ctx context.Context, email string) (*model.Utilisateur, error)
	FindByID(ctx context.Context, id string) (*model.Utilisateur, error)
}

var (
	ErrIdentifiantsInvalides = errors.New("email ou mot de passe invalide")
	ErrRoleInconnu           = errors.New("rôle inconnu")
)

// Claims embarqués dans le token : de quoi reconstruire un Acteur sans
// relire la base à chaque requête.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	repo   UtilisateurRepository
	secret []byte
}

func NewAuthService(repo UtilisateurRepository, secret string) *AuthService {
	return &AuthService{repo: repo, secret: []byte(secret)}
}

func rolesValides(r model.Role) bool {
	switch r {
	case model.RolePaysan, model.RoleCollecteur, model.RoleAdmin:
		return true
	}
	return false
}

// Register crée le compte et rend directement un token de session.
func (a *AuthService) Register(ctx context.Context, u *model.Utilisateur, motDePasse string) (string, *model.Utilisateur, error) {
	if !rolesValides(u.Role) {
		return "", nil, ErrRoleInconnu
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(motDePasse), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	u.ID = uuid.NewString()
	u.MotDePasse = string(hash)

	if err := a.repo.Create(ctx, u); err != nil {
		return "", nil, err
	}

	token, err := a.genererToken(u)
	if err != nil {
		return "", nil, err
	}

	logger.FromCtx(ctx).Info("utilisateur enregistré",
		zap.String("user_id", u.ID),
		zap.String("role", string(u.Role)),
	)

	return token, u, nil
}

func (a *AuthService) Login(ctx context.Context, email, motDePasse string) (string, *model.Utilisateur, error) {
	u, err := a.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrIdentifiantsInvalides
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.MotDePasse), []byte(motDePasse)) != nil {
		return "", nil, ErrIdentifiantsInvalides
	}

	token, err := a.genererToken(u)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (a *AuthService) genererToken(u *model.Utilisateur) (string, error) {
	if len(a.secret) == 0 {
		return "", errors.New("JWT_SECRET non configuré")
	}

	claims := Claims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// ValiderToken reconstruit les claims depuis le token signé.
func (a *AuthService) ValiderToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("méthode de signature inattendue")
			}
			return a.secret, nil
		},
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("token invalide")
	}
	return claims, nil
}

func (a *AuthService) GetUtilisateur(ctx context.Context, id string) (*model.Utilisateur, error) {
	return a.repo.FindByID(ctx, id)
}
