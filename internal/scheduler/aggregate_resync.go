package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/espada/marketplace-api/infrastructure/repository"
	"github.com/espada/marketplace-api/internal/config"
	"github.com/espada/marketplace-api/internal/usecases/rating"
	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

type AggregateResyncConfig struct {
	CronSchedule string
	Enabled      bool
}

// AggregateResyncService regrava periodicamente o agregado de avaliações
// de cada loja a partir do conjunto vivo, curando agregados que ficaram
// desatualizados após uma falha de rollup.
type AggregateResyncService struct {
	scheduler     *gocron.Scheduler
	ratingRepo    repository.RatingRepository
	rollupService rating.RollupService
	config        AggregateResyncConfig
	resyncRunning bool
	resyncMutex   sync.Mutex
}

func NewAggregateResyncService(
	ratingRepo repository.RatingRepository,
	rollupService rating.RollupService,
	cfg *config.Config,
) *AggregateResyncService {
	resyncConfig := AggregateResyncConfig{
		CronSchedule: cfg.AggregateResync.CronSchedule,
		Enabled:      cfg.AggregateResync.Enabled,
	}

	return &AggregateResyncService{
		scheduler:     gocron.NewScheduler(time.Local),
		ratingRepo:    ratingRepo,
		rollupService: rollupService,
		config:        resyncConfig,
	}
}

func (s *AggregateResyncService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Ressincronização de agregados de avaliação desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de ressincronização de agregados")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RunResync(ctx); err != nil {
			logrus.WithError(err).Error("Erro na ressincronização de agregados")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar ressincronização de agregados: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de ressincronização de agregados")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *AggregateResyncService) RunResync(ctx context.Context) error {
	s.resyncMutex.Lock()
	if s.resyncRunning {
		s.resyncMutex.Unlock()
		logrus.Warn("Ressincronização de agregados já está em execução")
		return nil
	}
	s.resyncRunning = true
	s.resyncMutex.Unlock()

	defer func() {
		s.resyncMutex.Lock()
		s.resyncRunning = false
		s.resyncMutex.Unlock()
	}()

	storeIDs, err := s.ratingRepo.ListStoreIDs(ctx)
	if err != nil {
		return err
	}

	logrus.WithField("stores", len(storeIDs)).Info("Iniciando ressincronização de agregados")

	var failures int
	for _, storeID := range storeIDs {
		if err := s.rollupService.ResyncAggregate(ctx, storeID); err != nil {
			failures++
			logrus.WithError(err).WithField("store_id", storeID).Error("Erro ao ressincronizar agregado da loja")
		}
	}

	if failures > 0 {
		return fmt.Errorf("ressincronização concluída com %d falhas", failures)
	}

	logrus.Info("Ressincronização de agregados concluída")
	return nil
}
