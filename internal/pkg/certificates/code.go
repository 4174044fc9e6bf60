package certificates

import (
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateCode returns a new public verification code for a certificate.
func GenerateCode() (string, error) {
	id, err := gonanoid.Generate(codeAlphabet, 10)
	if err != nil {
		return "", fmt.Errorf("error generating certificate code: %w", err)
	}
	return "CERT-" + id, nil
}

// AnnualTitle returns the title for the yearly membership certificate.
func AnnualTitle(year int) string {
	return fmt.Sprintf("Certificado Anual de Associado %d", year)
}

// AnnualDetail returns the body line for the yearly membership certificate.
func AnnualDetail(year int) string {
	return fmt.Sprintf("manteve sua associação ativa e em dia durante o ano de %d.", year)
}

// EventTitle returns the title for an event attendance certificate.
func EventTitle() string {
	return "Certificado de Participação"
}

// EventDetail returns the body line for an event attendance certificate.
func EventDetail(eventTitle string, eventDate time.Time) string {
	return fmt.Sprintf("participou do evento \"%s\", realizado em %s.", eventTitle, eventDate.Format("02/01/2006"))
}
