package scheduler

import (
	"github.com/callsheet/mentions-bot/internal/config"
	"github.com/callsheet/mentions-bot/internal/scanning"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Service handles scheduling of scan runs
type Service struct {
	config          *config.Config
	scanningService *scanning.Service
	cron            *cron.Cron
}

// NewService creates a new scheduler service
func NewService(cfg *config.Config, scanningService *scanning.Service) *Service {
	return &Service{
		config:          cfg,
		scanningService: scanningService,
		cron:            cron.New(cron.WithSeconds()),
	}
}

// Start begins the scheduled scans
func (s *Service) Start() error {
	var cronExpression string

	switch s.config.ReportSchedule {
	case "weekly":
		// Run weekly on Monday at 9 AM UTC
		cronExpression = "0 0 9 * * MON"
	default:
		// Run daily at 9 AM UTC
		cronExpression = "0 0 9 * * *"
	}

	_, err := s.cron.AddFunc(cronExpression, func() {
		logrus.Info("Starting scheduled article scan")
		if err := s.scanningService.RunArticleScan(); err != nil {
			logrus.Errorf("Scheduled article scan failed: %v", err)
		}
	})

	if err != nil {
		return err
	}

	// Premiere credits move less often than the trades publish; twice a
	// day keeps alerts timely without burning TMDB quota.
	_, err = s.cron.AddFunc("0 0 */12 * * *", func() {
		logrus.Info("Starting scheduled credit scan")
		if err := s.scanningService.RunCreditScan(); err != nil {
			logrus.Errorf("Scheduled credit scan failed: %v", err)
		}
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	logrus.Infof("Scheduler started with %s article scans (plus credit scans every 12 hours)", s.config.ReportSchedule)
	return nil
}

// Stop stops the scheduler
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		logrus.Info("Scheduler stopped")
	}
}
