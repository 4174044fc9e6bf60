package jobqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"github.com/socioclube/portal/app/models"
	"github.com/socioclube/portal/internal/pkg/certificates"
	"github.com/socioclube/portal/internal/pkg/database"
	"github.com/socioclube/portal/internal/pkg/env"
	"github.com/socioclube/portal/internal/pkg/mail"
	"github.com/socioclube/portal/internal/pkg/storage"
)

// Worker processes background tasks from the Redis queue.
type Worker struct {
	generator *certificates.Generator
	store     *storage.Client
	client    *Client
}

// NewWorker creates a task worker. The storage client may be nil when no
// object storage is configured, in which case PDFs land on the local disk.
func NewWorker(generator *certificates.Generator, store *storage.Client, client *Client) *Worker {
	return &Worker{generator: generator, store: store, client: client}
}

// Run starts the asynq server and blocks until it stops.
func (w *Worker) Run() error {
	server := asynq.NewServer(RedisConnOpt(), asynq.Config{
		Concurrency: env.GetEnvInt("QUEUE_CONCURRENCY", 5),
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskTypeCertificateGenerate, w.HandleCertificateGenerateTask)
	mux.HandleFunc(TaskTypeMailSend, w.HandleMailSendTask)

	log.Info("[JobQueue] Worker started")
	return server.Run(mux)
}

// HandleCertificateGenerateTask renders a certificate PDF, stores it and
// records the issuance. Re-delivery is harmless because an already issued
// certificate of the same kind and scope is detected and skipped.
func (w *Worker) HandleCertificateGenerateTask(ctx context.Context, task *asynq.Task) error {
	var payload CertificateGeneratePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid certificate payload: %w", err)
	}

	db := database.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	var user models.User
	if err := db.First(&user, payload.UserID).Error; err != nil {
		log.Warnf("[CertificateJob] User %d not found, dropping task", payload.UserID)
		return nil
	}

	title, detail, err := w.certificateText(db, payload)
	if err != nil {
		return err
	}

	// Skip when this exact certificate was already issued.
	var existing int64
	query := db.Model(&models.Certificate{}).Where("user_id = ? AND kind = ?", payload.UserID, payload.Kind)
	if payload.EventID != nil {
		query = query.Where("event_id = ?", *payload.EventID)
	} else if payload.Year > 0 {
		query = query.Where("YEAR(issued_at) = ?", payload.Year)
	}
	if err := query.Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		log.Infof("[CertificateJob] Certificate %s already issued for user %d, skipping", payload.Kind, payload.UserID)
		return nil
	}

	code, err := certificates.GenerateCode()
	if err != nil {
		return err
	}

	issuedAt := time.Now()
	pdf, err := w.generator.Generate(certificates.Data{
		MemberName: user.Name,
		Title:      title,
		Detail:     detail,
		Code:       code,
		IssuedAt:   issuedAt,
	})
	if err != nil {
		return fmt.Errorf("error rendering certificate: %w", err)
	}

	fileKey := fmt.Sprintf("certificates/%d/%s.pdf", user.ID, code)
	if err := w.storePDF(ctx, fileKey, pdf); err != nil {
		return err
	}

	cert := models.Certificate{
		UserID:   user.ID,
		EventID:  payload.EventID,
		Kind:     payload.Kind,
		Title:    title,
		Code:     code,
		FileKey:  fileKey,
		IssuedAt: issuedAt,
	}
	if err := db.Create(&cert).Error; err != nil {
		return fmt.Errorf("error saving certificate: %w", err)
	}

	if w.client != nil {
		subject, body := mail.CertificateIssuedBody(user.Name, title, certificateDownloadURL(cert.ID))
		if err := w.client.EnqueueMail(MailSendPayload{To: user.Email, Subject: subject, Body: body}); err != nil {
			log.Errorf("[CertificateJob] Failed to enqueue mail for user %d: %v", user.ID, err)
		}
	}

	log.Infof("[CertificateJob] Issued %s certificate %s for user %d", payload.Kind, code, user.ID)
	return nil
}

// HandleMailSendTask delivers one e-mail over SMTP.
func (w *Worker) HandleMailSendTask(_ context.Context, task *asynq.Task) error {
	var payload MailSendPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid mail payload: %w", err)
	}
	return mail.SendMail(payload.To, payload.Subject, payload.Body)
}

// certificateDownloadURL builds the link mailed to the member. The path must
// stay in sync with the member certificate route registered by the router.
func certificateDownloadURL(certificateID uint) string {
	return fmt.Sprintf("%s/api/v1/certificates/%d/download",
		env.GetEnv("PUBLIC_DOMAIN", "http://localhost:3000"), certificateID)
}

func (w *Worker) certificateText(db *gorm.DB, payload CertificateGeneratePayload) (string, string, error) {
	switch payload.Kind {
	case models.CertificateKindEvent:
		if payload.EventID == nil {
			return "", "", fmt.Errorf("event certificate task without event id")
		}
		var event models.Event
		if err := db.First(&event, *payload.EventID).Error; err != nil {
			return "", "", fmt.Errorf("event %d not found: %w", *payload.EventID, err)
		}
		return certificates.EventTitle(), certificates.EventDetail(event.Title, event.StartsAt), nil
	case models.CertificateKindAnnual:
		year := payload.Year
		if year == 0 {
			year = time.Now().Year() - 1
		}
		return certificates.AnnualTitle(year), certificates.AnnualDetail(year), nil
	default:
		return "", "", fmt.Errorf("unknown certificate kind %q", payload.Kind)
	}
}

func (w *Worker) storePDF(ctx context.Context, key string, pdf []byte) error {
	if w.store != nil {
		if err := w.store.Upload(ctx, key, pdf, "application/pdf"); err != nil {
			return fmt.Errorf("error uploading certificate: %w", err)
		}
		return nil
	}

	path := filepath.Join(env.GetEnv("CERTIFICATES_DIR", "./storage/certificates"), key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, pdf, 0o644)
}
