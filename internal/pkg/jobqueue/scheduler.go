package jobqueue

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/robfig/cron"

	"github.com/socioclube/portal/app/models"
	"github.com/socioclube/portal/internal/pkg/billing"
	"github.com/socioclube/portal/internal/pkg/database"
	"github.com/socioclube/portal/internal/pkg/env"
)

// AnnualCertificateJob enqueues the yearly membership certificate for every
// member that closed the previous year with an active subscription.
type AnnualCertificateJob struct {
	client *Client
}

// NewAnnualCertificateJob creates the yearly certificate job.
func NewAnnualCertificateJob(client *Client) *AnnualCertificateJob {
	return &AnnualCertificateJob{client: client}
}

// Run scans active members, keeps those whose payment standing still
// resolves to adimplente, and enqueues one annual certificate each for the
// year that just ended. Members that already hold the certificate are
// skipped by the worker, so re-running is safe.
func (j *AnnualCertificateJob) Run() {
	db := database.GetDB()
	if db == nil {
		log.Error("[AnnualCertificateJob] Database connection is nil")
		return
	}

	year := time.Now().Year() - 1
	resolver := billing.NewServiceFromDB(db, nil)

	var users []models.User
	if err := db.Where("subscription_status = ?", models.SUBSCRIPTION_ACTIVE).Find(&users).Error; err != nil {
		log.Errorf("[AnnualCertificateJob] Failed to list active members: %v", err)
		return
	}

	enqueued := 0
	for _, user := range users {
		summary, err := resolver.ResolvePaymentStatus(context.Background(), user.ID)
		if err != nil {
			log.Errorf("[AnnualCertificateJob] Failed to resolve standing for user %d: %v", user.ID, err)
			continue
		}
		if !summary.IsAdimplente() {
			continue
		}

		payload := CertificateGeneratePayload{
			UserID: user.ID,
			Kind:   models.CertificateKindAnnual,
			Year:   year,
		}
		if err := j.client.EnqueueCertificate(payload); err != nil {
			log.Errorf("[AnnualCertificateJob] Failed to enqueue certificate for user %d: %v", user.ID, err)
			continue
		}
		enqueued++
	}

	log.Infof("[AnnualCertificateJob] Enqueued %d annual certificates for %d", enqueued, year)
}

// StartScheduler registers the recurring jobs and starts the cron loop.
func StartScheduler(client *Client) *cron.Cron {
	c := cron.New()
	job := NewAnnualCertificateJob(client)
	schedule := env.GetEnv("ANNUAL_CERTIFICATE_SCHEDULE", "@yearly")
	if err := c.AddFunc(schedule, job.Run); err != nil {
		log.Errorf("[JobQueue] Invalid annual certificate schedule %q: %v", schedule, err)
	}
	c.Start()
	return c
}
