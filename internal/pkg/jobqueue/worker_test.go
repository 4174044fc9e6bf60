package jobqueue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socioclube/portal/app/models"
)

func TestTaskTypeNames(t *testing.T) {
	assert.Equal(t, "certificate:generate", TaskTypeCertificateGenerate)
	assert.Equal(t, "mail:send", TaskTypeMailSend)
}

func TestCertificateDownloadURLPointsAtMemberRoute(t *testing.T) {
	t.Setenv("PUBLIC_DOMAIN", "https://portal.socioclube.com.br")
	assert.Equal(t, "https://portal.socioclube.com.br/api/v1/certificates/42/download", certificateDownloadURL(42))
}

func TestCertificateTextAnnual(t *testing.T) {
	w := NewWorker(nil, nil, nil)

	title, detail, err := w.certificateText(nil, CertificateGeneratePayload{
		UserID: 1,
		Kind:   models.CertificateKindAnnual,
		Year:   2025,
	})
	require.NoError(t, err)
	assert.Contains(t, title, "2025")
	assert.Contains(t, detail, "2025")
}

func TestCertificateTextAnnualDefaultsToPreviousYear(t *testing.T) {
	w := NewWorker(nil, nil, nil)

	title, _, err := w.certificateText(nil, CertificateGeneratePayload{
		UserID: 1,
		Kind:   models.CertificateKindAnnual,
	})
	require.NoError(t, err)
	assert.Contains(t, title, time.Now().AddDate(-1, 0, 0).Format("2006"))
}

func TestCertificateTextRejectsUnknownKind(t *testing.T) {
	w := NewWorker(nil, nil, nil)

	_, _, err := w.certificateText(nil, CertificateGeneratePayload{UserID: 1, Kind: "diploma"})
	assert.Error(t, err)
}

func TestCertificateTextEventRequiresEventID(t *testing.T) {
	w := NewWorker(nil, nil, nil)

	_, _, err := w.certificateText(nil, CertificateGeneratePayload{UserID: 1, Kind: models.CertificateKindEvent})
	assert.Error(t, err)
}
