package main

import (
	"os"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	//ローカル実行時のみ.envを読む（なければ環境変数だけで動く）
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config load failed")
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("db connect failed")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Product{},
		&model.ProductImage{},
		&model.Address{},
		&model.Favorite{},
		&model.Order{},
		&model.OrderItem{},
		&model.Review{},
		&model.InventoryAdjustment{},
	); err != nil {
		logger.Fatal().Err(err).Msg("auto migrate failed")
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	addressRepo := infraRepo.NewAddressGormRepository(gormDB)
	favoriteRepo := infraRepo.NewFavoriteGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	reviewRepo := infraRepo.NewReviewGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo, rtRepo, validator.NewAuthValidator(userRepo))
	productUC := usecase.NewProductUsecase(productRepo, reviewRepo)
	addressUC := usecase.NewAddressUsecase(addressRepo)
	favoriteUC := usecase.NewFavoriteUsecase(favoriteRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(orderRepo, productRepo, reviewRepo, addressRepo, txManager)
	reviewUC := usecase.NewReviewUsecase(reviewRepo, orderRepo)
	adminOrderUC := usecase.NewAdminOrderUsecase(orderRepo)

	//refresh cookieのTTLとsecure属性
	refreshTTL := 14 * 24 * time.Hour
	cookieSecure := cfg.GoEnv == "prod"

	handlers := server.Handlers{
		Auth:      handler.NewAuthHandler(authUC, refreshTTL, cookieSecure),
		Products:  handler.NewProductHandler(productUC),
		Addresses: handler.NewAddressHandler(addressUC),
		Favorites: handler.NewFavoriteHandler(favoriteUC),
		Orders:    handler.NewOrderHandler(orderUC),
		Reviews:   handler.NewReviewHandler(reviewUC),
		Admin:     handler.NewAdminHandler(adminOrderUC, productUC),
	}

	e := server.New(cfg, logger, handlers)

	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Msg("server start")
	if err := server.Start(e, addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
