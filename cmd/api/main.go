package main

import (
	"context"
	"log"
	"time"

	"orderdesk/internal/config"
	"orderdesk/internal/handler"
	"orderdesk/internal/infra/db"
	"orderdesk/internal/infra/filestore"
	infraRepo "orderdesk/internal/infra/repository"
	"orderdesk/internal/logger"
	"orderdesk/internal/metrics"
	repo "orderdesk/internal/repository"
	"orderdesk/internal/server"
	"orderdesk/internal/usecase"
	auth "orderdesk/internal/usecase/auth_usecase"
	"orderdesk/internal/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

// JSONの往復で同じ値になるようUTCで持つ
func (c *realClock) Now() time.Time {
	return time.Now().UTC()
}

func main() {
	//.env（無ければ環境変数だけ）
	if err := config.LoadDotEnv(".env", "../.env"); err != nil {
		log.Fatal(err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg.GoEnv, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, zl *zap.Logger) error {
	ctx := context.Background()

	//注文ストア（file / postgres）
	orders, err := newOrderRepository(ctx, cfg, zl)
	if err != nil {
		return err
	}

	//管理者シークレット
	hasher, err := auth.NewPasswordHasher(cfg.PasswordHash, cfg.BcryptCost)
	if err != nil {
		return err
	}
	creds := filestore.NewCredentialFileStore(cfg.AdminPasswordFile, hasher, auth.NewPasswordVerifier())

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}
	issuer := auth.NewJWTIssuer(cfg.JWTSecret, cfg.AdminTokenTTL)
	m := metrics.New()

	//Usecase生成
	loginUC := auth.NewAdminLoginUsecase(creds, issuer, clock)
	if err := loginUC.Bootstrap(ctx, cfg.AdminDefaultPassword); err != nil {
		return err
	}
	orderUC := usecase.NewOrderUsecase(orders, validator.NewOrderValidator(), idGen, clock, zl)
	adminUC := usecase.NewAdminOrderUsecase(orders, zl)

	//Handler生成
	e := server.New(zl, m)
	server.RegisterRoutes(e, server.Handlers{
		Order:      handler.NewOrderHandler(orderUC, m),
		AdminOrder: handler.NewAdminOrderHandler(adminUC, m),
		Auth:       handler.NewAuthHandler(loginUC, m, zl),
	}, cfg.JWTSecret, m)

	//Server起動
	return server.Start(cfg.Addr(), e, zl)
}

func newOrderRepository(ctx context.Context, cfg config.Config, zl *zap.Logger) (repo.OrderRepository, error) {
	if cfg.OrderStore != config.StorePostgres {
		zl.Info("using file order store", zap.String("path", cfg.OrdersFile))
		return filestore.NewOrderFileStore(cfg.OrdersFile), nil
	}

	gormDB, err := db.Connect(cfg.DSN(), zl)
	if err != nil {
		return nil, err
	}
	r := infraRepo.NewOrderGormRepository(gormDB)
	if err := r.Migrate(ctx); err != nil {
		return nil, err
	}
	return r, nil
}
