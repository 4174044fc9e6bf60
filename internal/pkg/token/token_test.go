package token

import (
	"testing"

	"github.com/socioclube/portal/app/models"
	"github.com/stretchr/testify/assert"
)

func TestGenerateAndValidate(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	signed, err := Generate(42, models.ROLE_ADMIN)
	assert.NoError(t, err)
	assert.NotEmpty(t, signed)

	claims, err := Validate(signed)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, models.ROLE_ADMIN, claims.Role)
}

func TestValidate_RejectsTamperedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	signed, err := Generate(7, models.ROLE_MEMBER)
	assert.NoError(t, err)

	_, err = Validate(signed + "x")
	assert.Error(t, err)
}

func TestGenerate_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Generate(1, models.ROLE_MEMBER)
	assert.Error(t, err)
}
