package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"studybuddy/backend/gamification"
)

// Scheduler runs the daily maintenance tasks.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *gamification.Service
	logger    *log.Logger
}

func New(service *gamification.Service, logger *log.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		logger:    logger,
	}
}

// Start schedules the streak expiry sweep once per day at midnight UTC and
// runs the scheduler in the background.
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Day().At("00:00").Do(s.expireStreaks)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) expireStreaks() {
	reset, err := s.service.ExpireStreaks(time.Now())
	if err != nil {
		s.logger.Printf("streak expiry sweep failed: %v", err)
		return
	}
	if reset > 0 {
		s.logger.Printf("streak expiry sweep reset %d user(s)", reset)
	}
}
