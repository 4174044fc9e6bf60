package jobqueue

// Task type names registered on the asynq mux.
const (
	TaskTypeCertificateGenerate = "certificate:generate"
	TaskTypeMailSend            = "mail:send"
)

// CertificateGeneratePayload describes one certificate issuance task.
// EventID is nil for annual membership certificates.
type CertificateGeneratePayload struct {
	UserID  uint   `json:"user_id"`
	Kind    string `json:"kind"`
	EventID *uint  `json:"event_id,omitempty"`
	Year    int    `json:"year,omitempty"`
}

// MailSendPayload describes one outbound e-mail task.
type MailSendPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
