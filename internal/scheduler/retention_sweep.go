// Package scheduler contém os serviços de agendamento de manutenção periódica
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/espada/marketplace-api/infrastructure/repository"
	"github.com/espada/marketplace-api/internal/config"
	"github.com/espada/marketplace-api/internal/usecases/purchasing"
	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

type RetentionSweepConfig struct {
	CronSchedule string
	Enabled      bool
}

// RetentionSweepService varre todos os produtos com histórico e reaplica a
// poda de retenção. A poda rederiva o keep-set do estado persistido, então
// produtos já dentro do limite não são afetados.
type RetentionSweepService struct {
	scheduler        *gocron.Scheduler
	priceHistoryRepo repository.PriceHistoryRepository
	purchaseService  purchasing.PurchaseService
	config           RetentionSweepConfig
	sweepRunning     bool
	sweepMutex       sync.Mutex
}

func NewRetentionSweepService(
	priceHistoryRepo repository.PriceHistoryRepository,
	purchaseService purchasing.PurchaseService,
	cfg *config.Config,
) *RetentionSweepService {
	sweepConfig := RetentionSweepConfig{
		CronSchedule: cfg.RetentionSweep.CronSchedule,
		Enabled:      cfg.RetentionSweep.Enabled,
	}

	return &RetentionSweepService{
		scheduler:        gocron.NewScheduler(time.Local),
		priceHistoryRepo: priceHistoryRepo,
		purchaseService:  purchaseService,
		config:           sweepConfig,
	}
}

func (s *RetentionSweepService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Varredura de retenção do histórico de preços desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron da varredura de retenção")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RunSweep(ctx); err != nil {
			logrus.WithError(err).Error("Erro na varredura de retenção")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar varredura de retenção: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron da varredura de retenção")
		s.scheduler.Stop()
	}()

	return nil
}

// RunSweep executa uma varredura completa. Execuções sobrepostas são
// descartadas.
func (s *RetentionSweepService) RunSweep(ctx context.Context) error {
	s.sweepMutex.Lock()
	if s.sweepRunning {
		s.sweepMutex.Unlock()
		logrus.Warn("Varredura de retenção já está em execução")
		return nil
	}
	s.sweepRunning = true
	s.sweepMutex.Unlock()

	defer func() {
		s.sweepMutex.Lock()
		s.sweepRunning = false
		s.sweepMutex.Unlock()
	}()

	productIDs, err := s.priceHistoryRepo.ListProductIDs(ctx)
	if err != nil {
		return err
	}

	logrus.WithField("products", len(productIDs)).Info("Iniciando varredura de retenção")

	var failures int
	for _, productID := range productIDs {
		if err := s.purchaseService.EnforceRetention(ctx, productID); err != nil {
			failures++
			logrus.WithError(err).WithField("product_id", productID).Error("Erro ao podar histórico do produto")
		}
	}

	if failures > 0 {
		return fmt.Errorf("varredura de retenção concluída com %d falhas", failures)
	}

	logrus.Info("Varredura de retenção concluída")
	return nil
}
