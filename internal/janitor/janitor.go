package janitor

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// UserPurger deletes stale unverified accounts created before the cutoff.
type UserPurger interface {
	DeleteUnverifiedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Janitor periodically removes unverified accounts whose verification link
// was never followed.
type Janitor struct {
	users UserPurger
	ttl   time.Duration
	log   *logrus.Logger
	cron  *cron.Cron
}

// New creates a janitor that deletes unverified accounts older than ttl.
func New(users UserPurger, ttl time.Duration, log *logrus.Logger) *Janitor {
	return &Janitor{
		users: users,
		ttl:   ttl,
		log:   log,
		cron:  cron.New(),
	}
}

// Start schedules the nightly purge. It returns immediately; the cron runs
// on its own goroutine until Stop is called.
func (j *Janitor) Start() error {
	if _, err := j.cron.AddFunc("0 3 * * *", j.purge); err != nil {
		return err
	}
	j.cron.Start()
	j.log.Infof("Janitor started, unverified account TTL %s", j.ttl)
	return nil
}

// Stop halts the schedule and waits for a running purge to finish.
func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
}

func (j *Janitor) purge() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-j.ttl)
	deleted, err := j.users.DeleteUnverifiedBefore(ctx, cutoff)
	if err != nil {
		j.log.Errorf("Failed to purge unverified accounts: %v", err)
		return
	}
	if deleted > 0 {
		j.log.Infof("Purged %d unverified accounts older than %s", deleted, j.ttl)
	}
}
