package jobqueue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/hibiken/asynq"

	"github.com/socioclube/portal/internal/pkg/env"
)

// Client enqueues background tasks on the shared Redis queue.
type Client struct {
	asynq *asynq.Client
}

// RedisConnOpt builds the asynq Redis connection from the environment.
func RedisConnOpt() asynq.RedisClientOpt {
	addr := fmt.Sprintf("%s:%s", env.GetEnv("CACHE_HOST", "localhost"), env.GetEnv("CACHE_PORT", "6379"))
	return asynq.RedisClientOpt{
		Addr:     addr,
		Password: env.GetEnv("CACHE_PASSWORD", ""),
		DB:       env.GetEnvInt("QUEUE_DB", 1),
	}
}

// NewClient creates a task client over the shared Redis connection.
func NewClient() *Client {
	return &Client{asynq: asynq.NewClient(RedisConnOpt())}
}

// Close releases the underlying Redis connection.
func (c *Client) Close() error {
	return c.asynq.Close()
}

// EnqueueCertificate schedules generation of a certificate PDF.
func (c *Client) EnqueueCertificate(payload CertificateGeneratePayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypeCertificateGenerate, data)
	info, err := c.asynq.Enqueue(task, asynq.MaxRetry(5), asynq.Timeout(2*time.Minute))
	if err != nil {
		return fmt.Errorf("error enqueueing certificate task: %w", err)
	}

	log.Infof("[JobQueue] Certificate task %s enqueued for user %d (%s)", info.ID, payload.UserID, payload.Kind)
	return nil
}

// EnqueueMail schedules delivery of one e-mail.
func (c *Client) EnqueueMail(payload MailSendPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypeMailSend, data)
	info, err := c.asynq.Enqueue(task, asynq.MaxRetry(3), asynq.Timeout(time.Minute))
	if err != nil {
		return fmt.Errorf("error enqueueing mail task: %w", err)
	}

	log.Infof("[JobQueue] Mail task %s enqueued for %s", info.ID, payload.To)
	return nil
}
