package main

import (
	"log"

	"github.com/DipakKumarChauhan/SubStream/internal/config"
	"github.com/DipakKumarChauhan/SubStream/internal/domain/model"
	"github.com/DipakKumarChauhan/SubStream/internal/handler"
	"github.com/DipakKumarChauhan/SubStream/internal/infra/db"
	"github.com/DipakKumarChauhan/SubStream/internal/infra/media"
	infraRepo "github.com/DipakKumarChauhan/SubStream/internal/infra/repository"
	"github.com/DipakKumarChauhan/SubStream/internal/server"
	"github.com/DipakKumarChauhan/SubStream/internal/usecase"
	"github.com/DipakKumarChauhan/SubStream/internal/validator"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .envがあれば読む（無くても環境変数だけで動く）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var logger *zap.Logger
	if cfg.GoEnv == "prod" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		logger.Fatal("db connect failed", zap.Error(err))
	}
	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		logger.Fatal("migrate failed", zap.Error(err))
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)

	//Cloudinary
	uploader, err := media.NewCloudinaryUploader(
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
		logger,
	)
	if err != nil {
		logger.Fatal("cloudinary init failed", zap.Error(err))
	}

	//usecaseに渡す部品
	hasher := usecase.NewBcryptPasswordHasher(10)
	verifier := usecase.NewBcryptPasswordVerifier()
	authValidator := validator.NewAuthValidator()

	//Usecase生成
	tokenUC := usecase.NewTokenUsecase(cfg.Token, userRepo)
	authUC := usecase.NewAuthUsecase(userRepo, tokenUC, hasher, verifier, uploader, authValidator)
	accountUC := usecase.NewAccountUsecase(userRepo, uploader, authValidator)

	//Handler生成
	authH := handler.NewAuthHandler(authUC, cfg.CookieSecure, cfg.TempUploadDir)
	accountH := handler.NewAccountHandler(accountUC, cfg.TempUploadDir)

	//Server起動
	e := server.New(logger)
	server.RegisterRoutes(e, authH, accountH, tokenUC, userRepo)

	addr := ":" + cfg.Port
	logger.Info("starting server", zap.String("addr", addr))
	if err := server.Start(e, addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
