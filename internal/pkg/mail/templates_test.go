package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentConfirmedBody(t *testing.T) {
	subject, body := PaymentConfirmedBody("Ana Souza", 49.9)
	assert.Equal(t, "Pagamento confirmado", subject)
	assert.Contains(t, body, "Ana Souza")
	assert.Contains(t, body, "R$ 49.90")
}

func TestCertificateIssuedBodyLinksDownload(t *testing.T) {
	url := "https://portal.socioclube.com.br/api/v1/certificates/7/download"
	subject, body := CertificateIssuedBody("Ana Souza", "Certificado Anual de Associação 2025", url)
	assert.Equal(t, "Novo certificado disponível", subject)
	assert.Contains(t, body, url)
	assert.Contains(t, body, "Certificado Anual de Associação 2025")
}
