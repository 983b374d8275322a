package main

import (
	"context"
	"log"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"agromarket/internal/adapter/api"
	"agromarket/internal/adapter/api/handler"
	apimiddleware "agromarket/internal/adapter/api/middleware"
	"agromarket/internal/adapter/api/router"
	"agromarket/internal/adapter/repository"
	"agromarket/internal/domain/entity"
	"agromarket/internal/domain/service"
	"agromarket/internal/infrastructure/firebase"
	"agromarket/internal/infrastructure/websocket"
	"agromarket/internal/usecase"
	"agromarket/pkg/config"
	"agromarket/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if serviceAccountPath == "" {
			serviceAccountPath = "./service-account.json"
		}

		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}

		log.Printf("Using Firebase service account from file: %s", serviceAccountPath)
		opt = option.WithCredentialsFile(serviceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	adRepo := repository.NewFirestoreAdRepository(firestoreClient)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)
	leadRepo := repository.NewFirestoreLeadRepository(firestoreClient)
	creditRepo := repository.NewFirestoreCreditRepository(firestoreClient)
	creditTxnRepo := repository.NewFirestoreCreditTransactionRepository(firestoreClient)
	favoriteRepo := repository.NewFirestoreFavoriteRepository(firestoreClient)
	notificationRepo := repository.NewFirestoreNotificationRepository(firestoreClient)
	historyRepo := repository.NewFirestorePriceDropHistoryRepository(firestoreClient)
	opportunityRepo := repository.NewFirestoreOpportunityRepository(firestoreClient)
	smtpConfigRepo := repository.NewFirestoreSMTPConfigRepository(firestoreClient)

	// Seed the mail settings from the environment on first boot; after
	// that the admin panel owns them.
	if _, err := smtpConfigRepo.Get(ctx); err != nil && cfg.SMTPHost != "" {
		seed := &entity.SMTPConfig{
			Host:       cfg.SMTPHost,
			Port:       cfg.SMTPPort,
			User:       cfg.SMTPUser,
			Password:   service.EncodeSMTPPassword(cfg.SMTPPassword),
			Encryption: entity.SMTPEncryptionTLS,
			FromEmail:  cfg.SMTPFromEmail,
			FromName:   cfg.SMTPFromName,
			IsActive:   true,
		}
		if err := smtpConfigRepo.Save(ctx, seed); err != nil {
			logger.Warn("Failed to seed SMTP configuration: %v", err)
		}
	}

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	emailService := service.NewSMTPEmailService(smtpConfigRepo, cfg.SiteURL)

	chatUseCase := usecase.NewChatUseCase(chatRepo, leadRepo, userRepo, adRepo, notificationRepo, wsManager)
	leadUseCase := usecase.NewLeadUseCase(leadRepo, chatRepo, userRepo, creditRepo, creditTxnRepo, wsManager, cfg.LeadUnlockCost)
	creditUseCase := usecase.NewCreditUseCase(creditRepo, creditTxnRepo)
	favoriteUseCase := usecase.NewFavoriteUseCase(favoriteRepo, adRepo)
	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo, historyRepo)
	priceDropUseCase := usecase.NewPriceDropUseCase(
		favoriteRepo,
		adRepo,
		userRepo,
		historyRepo,
		opportunityRepo,
		notificationRepo,
		emailService,
		wsManager,
		time.Duration(cfg.PriceDropCooldownMin)*time.Minute,
		time.Duration(cfg.OpportunityWindowHrs)*time.Hour,
	)
	settingsUseCase := usecase.NewSettingsUseCase(smtpConfigRepo, emailService)

	handler.Setup(chatUseCase, leadUseCase, creditUseCase, favoriteUseCase, notificationUseCase, priceDropUseCase, settingsUseCase)
	handler.SetupHealthHandler()

	priceDropUseCase.StartPriceScanJob(ctx, time.Duration(cfg.PriceScanIntervalMin)*time.Minute)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient)
	authMiddleware := apimiddleware.NewAuthMiddleware(firebaseAuthClient)
	adminMiddleware := apimiddleware.NewAdminMiddleware(userRepo)

	router.Setup(e, authMiddleware, adminMiddleware)

	wsHandler := handler.NewWebSocketHandler(wsManager, authMiddleware)
	router.SetupWebSocketRouter(e, wsHandler)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
