package certificates

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateProducesPDF(t *testing.T) {
	gen := NewGenerator("Associação Teste")

	data := Data{
		MemberName: "João da Silva",
		Title:      AnnualTitle(2026),
		Detail:     AnnualDetail(2026),
		Code:       "CERT-ABC1234567",
		IssuedAt:   time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC),
	}

	pdf, err := gen.Generate(data)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestGenerateEventCertificate(t *testing.T) {
	gen := NewGenerator("")

	eventDate := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	data := Data{
		MemberName: "Maria Oliveira",
		Title:      EventTitle(),
		Detail:     EventDetail("Congresso Anual", eventDate),
		Code:       "CERT-XYZ9876543",
		IssuedAt:   time.Now(),
	}

	pdf, err := gen.Generate(data)
	require.NoError(t, err)
	assert.Greater(t, len(pdf), 1000)
}

func TestGenerateCodeFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^CERT-[0-9A-Z]{10}$`)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
		assert.False(t, seen[code], "codes should not repeat")
		seen[code] = true
	}
}
