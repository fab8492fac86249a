package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rabbitmq/amqp091-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"tsena-be/internal/config"
	"tsena-be/internal/controller"
	"tsena-be/internal/logger"
	"tsena-be/internal/middleware"
	"tsena-be/internal/rabbit"
	"tsena-be/internal/repository"
	"tsena-be/internal/service"
	"tsena-be/internal/ws"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	// Connexion à MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("connexion MongoDB impossible", zap.Error(err))
	}
	db := client.Database(cfg.MongoDBName)

	// Connexion à RabbitMQ
	conn, err := amqp091.Dial(cfg.RabbitURL)
	if err != nil {
		log.Fatal("connexion RabbitMQ impossible", zap.Error(err))
	}
	ch, err := conn.Channel()
	if err != nil {
		log.Fatal("ouverture canal RabbitMQ impossible", zap.Error(err))
	}

	publisher, err := rabbit.NewPublisher(ch)
	if err != nil {
		log.Fatal("déclaration exchange impossible", zap.Error(err))
	}

	// Hub de notifications temps réel
	hub := ws.NewHub()

	// Repositories et services
	commandeRepo := repository.NewMongoCommandeRepository(db)
	produitRepo := repository.NewMongoProduitRepository(db)
	utilisateurRepo := repository.NewMongoUtilisateurRepository(db)
	notificationRepo := repository.NewMongoNotificationRepository(db)

	if err := utilisateurRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal("création index utilisateurs impossible", zap.Error(err))
	}

	commandeSvc := service.NewCommandeService(commandeRepo, produitRepo, publisher)
	produitSvc := service.NewProduitService(produitRepo)
	authSvc := service.NewAuthService(utilisateurRepo, cfg.JWTSecret)
	notificationSvc := service.NewNotificationService(notificationRepo, hub)

	// Handlers
	commandeCtl := controller.NewCommandeController(commandeSvc)
	produitCtl := controller.NewProduitController(produitSvc)
	authCtl := controller.NewAuthController(authSvc)
	notificationCtl := controller.NewNotificationController(notificationSvc, hub)

	// Router
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Routes publiques
	r.POST("/auth/register", middleware.RateLimitStrict(), authCtl.Register)
	r.POST("/auth/login", middleware.RateLimitStrict(), authCtl.Login)
	r.GET("/produits", produitCtl.Lister)
	r.GET("/produits/:produitId", produitCtl.Get)

	// Routes protégées (token requis)
	auth := r.Group("/")
	auth.Use(middleware.RateLimit(), middleware.AuthMiddleware(authSvc))

	auth.GET("/moi", authCtl.Moi)
	auth.GET("/moi/produits", produitCtl.Miens)

	auth.POST("/produits", produitCtl.Creer)

	auth.GET("/commandes", commandeCtl.Lister)
	auth.POST("/commandes", commandeCtl.Creer)
	auth.GET("/commandes/:commandeId", commandeCtl.Get)
	auth.PUT("/commandes/:commandeId", commandeCtl.MettreAJour)
	auth.DELETE("/commandes/:commandeId", commandeCtl.Supprimer)
	auth.PATCH("/commandes/:commandeId/statut", commandeCtl.ChangerStatut)

	auth.POST("/commandes/:commandeId/accepter", commandeCtl.Accepter)
	auth.POST("/commandes/:commandeId/rejeter", commandeCtl.Rejeter)
	auth.POST("/commandes/:commandeId/lignes", commandeCtl.ProposerLigne)
	auth.POST("/commandes/:commandeId/lignes/:ligneId/accepter", commandeCtl.AccepterLigne)
	auth.POST("/commandes/:commandeId/lignes/:ligneId/rejeter", commandeCtl.RejeterLigne)
	auth.GET("/commandes/:commandeId/progression", commandeCtl.Progression)

	auth.GET("/notifications", notificationCtl.Lister)
	auth.POST("/notifications/:notificationId/lue", notificationCtl.MarquerLue)
	auth.GET("/ws/notifications", notificationCtl.Socket)

	// Routes admin
	admin := auth.Group("/admin")
	admin.Use(middleware.AdminOnly())
	admin.GET("/commandes", commandeCtl.ListerToutes)
	admin.GET("/commandes/statut/:statut", commandeCtl.ListerParStatut)

	// Consommateur de notifications
	rabbit.SetupConsumers(ch, notificationSvc)

	log.Info("serveur Tsena démarré", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("arrêt serveur", zap.Error(err))
	}
}
