package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/espada/marketplace-api/infrastructure/database/postgres"
	"github.com/espada/marketplace-api/infrastructure/repository"
	"github.com/espada/marketplace-api/internal/api"
	"github.com/espada/marketplace-api/internal/config"
	"github.com/espada/marketplace-api/internal/scheduler"
	"github.com/espada/marketplace-api/internal/usecases/authenticating"
	"github.com/espada/marketplace-api/internal/usecases/cataloging"
	"github.com/espada/marketplace-api/internal/usecases/purchasing"
	"github.com/espada/marketplace-api/internal/usecases/rating"
	"github.com/espada/marketplace-api/internal/usecases/storing"
	"github.com/espada/marketplace-api/internal/usecases/subscribing"
	"github.com/sirupsen/logrus"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	storeRepo := repository.NewStoreRepository(pgConn)
	storeHoursRepo := repository.NewStoreHoursRepository(pgConn)
	productRepo := repository.NewProductRepository(pgConn)
	priceHistoryRepo := repository.NewPriceHistoryRepository(pgConn)
	ratingRepo := repository.NewRatingRepository(pgConn)
	subscriptionRepo := repository.NewSubscriptionRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)
	storeService := storing.NewService(storeRepo, storeHoursRepo)
	catalogService := cataloging.NewService(productRepo)
	purchaseService := purchasing.NewService(pgConn, priceHistoryRepo)
	rollupService := rating.NewService(pgConn, ratingRepo)
	subscriptionService := subscribing.NewService(pgConn, subscriptionRepo)

	// Rotinas de manutenção em background
	retentionSweep := scheduler.NewRetentionSweepService(priceHistoryRepo, purchaseService, cfg)
	aggregateResync := scheduler.NewAggregateResyncService(ratingRepo, rollupService, cfg)

	if err := retentionSweep.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar a varredura de retenção do histórico de preços")
	} else {
		logrus.Info("Varredura de retenção do histórico de preços iniciada com sucesso")
	}

	if err := aggregateResync.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar a ressincronização de agregados de avaliação")
	} else {
		logrus.Info("Ressincronização de agregados de avaliação iniciada com sucesso")
	}

	server, err := api.New(
		cfg,
		authenticator,
		storeService,
		catalogService,
		purchaseService,
		rollupService,
		subscriptionService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
