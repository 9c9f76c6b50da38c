package scheduler

import (
	"context"
	"healdoctor-service/internal/app/config"
	"healdoctor-service/internal/app/contracts"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler owns the background cron jobs: purging expired notifications and
// producing the nightly per-doctor report.
type Scheduler struct {
	log                 *zap.Logger
	internalConfig      *config.InternalConfig
	notificationUsecase contracts.NotificationUsecase
	reportUsecase       contracts.ReportUsecase
	cron                *cron.Cron
}

func NewScheduler(
	logger *zap.Logger,
	internalConfig *config.InternalConfig,
	notificationUsecase contracts.NotificationUsecase,
	reportUsecase contracts.ReportUsecase,
) *Scheduler {
	return &Scheduler{
		log:                 logger,
		internalConfig:      internalConfig,
		notificationUsecase: notificationUsecase,
		reportUsecase:       reportUsecase,
		cron:                cron.New(),
	}
}

func (s *Scheduler) Start() (stop func(), err error) {
	_, err = s.cron.AddFunc(s.internalConfig.App.NotificationReaperCronSpec, s.runNotificationReaper)
	if err != nil {
		return nil, err
	}

	_, err = s.cron.AddFunc(s.internalConfig.App.DailyReportCronSpec, s.runDailyReports)
	if err != nil {
		return nil, err
	}

	s.cron.Start()
	s.log.Info("scheduler started",
		zap.String("notification_reaper_spec", s.internalConfig.App.NotificationReaperCronSpec),
		zap.String("daily_report_spec", s.internalConfig.App.DailyReportCronSpec),
	)

	return func() {
		stopCtx := s.cron.Stop()
		<-stopCtx.Done()
	}, nil
}

func (s *Scheduler) runNotificationReaper() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	_, err := s.notificationUsecase.PurgeExpired(ctx, time.Now())
	if err != nil {
		s.log.Error("scheduler.runNotificationReaper failed", zap.Error(err))
	}
}

func (s *Scheduler) runDailyReports() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	err := s.reportUsecase.RunDailyReports(ctx)
	if err != nil {
		s.log.Error("scheduler.runDailyReports failed", zap.Error(err))
	}
}
