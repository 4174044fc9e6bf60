package credential

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/socioclube/portal/app/models"
	"gorm.io/gorm"
)

type memoryRepository struct {
	users       map[uint]*models.User
	credentials map[uint]*models.Credential
	nextID      uint
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		users:       make(map[uint]*models.User),
		credentials: make(map[uint]*models.Credential),
		nextID:      1,
	}
}

func (m *memoryRepository) addUser(user *models.User) *models.User {
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = user
	return user
}

func (m *memoryRepository) UserByID(id uint) (*models.User, error) {
	if user, ok := m.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryRepository) CredentialByUserID(userID uint) (*models.Credential, error) {
	for _, cred := range m.credentials {
		if cred.UserID == userID {
			copied := *cred
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryRepository) CredentialByNumber(number string) (*models.Credential, error) {
	for _, cred := range m.credentials {
		if cred.Number == number {
			copied := *cred
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memoryRepository) CreateCredential(credential *models.Credential) error {
	credential.ID = m.nextID
	m.nextID++
	stored := *credential
	m.credentials[credential.ID] = &stored
	return nil
}

func (m *memoryRepository) UpdateCredential(credential *models.Credential) error {
	if _, ok := m.credentials[credential.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *credential
	m.credentials[credential.ID] = &stored
	return nil
}

var numberPattern = regexp.MustCompile(`^SC-[A-Z0-9]{8}$`)

func TestResolve_MintsCredentialOnFirstAccess(t *testing.T) {
	repo := newMemoryRepository()
	user := repo.addUser(&models.User{Name: "Ana Souza", SubscriptionStatus: models.SUBSCRIPTION_ACTIVE})
	svc := NewService(repo, "https://portal.socioclube.com.br")

	cred, err := svc.Resolve(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !numberPattern.MatchString(cred.Number) {
		t.Fatalf("credential number %q does not match SC-XXXXXXXX", cred.Number)
	}
	if cred.Status != models.CredentialStatusActive {
		t.Fatalf("minted credential status = %q, want active", cred.Status)
	}
	wantExpiry := cred.IssueDate.AddDate(1, 0, 0)
	if !cred.ExpiryDate.Equal(wantExpiry) {
		t.Fatalf("minted expiry = %v, want issue+1y %v", cred.ExpiryDate, wantExpiry)
	}
}

func TestResolve_RenewsExpiredCredentialOfActiveUser(t *testing.T) {
	repo := newMemoryRepository()
	user := repo.addUser(&models.User{Name: "Ana Souza", SubscriptionStatus: models.SUBSCRIPTION_ACTIVE})
	expired := &models.Credential{
		UserID:     user.ID,
		Number:     "SC-AAAA1111",
		IssueDate:  time.Now().AddDate(-2, 0, 0),
		ExpiryDate: time.Now().AddDate(-1, 0, 0),
		Status:     models.CredentialStatusActive,
	}
	if err := repo.CreateCredential(expired); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	svc := NewService(repo, "https://portal.socioclube.com.br")

	cred, err := svc.Resolve(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cred.ExpiryDate.After(time.Now()) {
		t.Fatalf("expired credential of active user must be renewed, expiry = %v", cred.ExpiryDate)
	}
	if cred.Number != "SC-AAAA1111" {
		t.Fatalf("renewal must keep the credential number, got %q", cred.Number)
	}
}

func TestResolve_ReturnsExpiredCredentialOfInactiveUserUnchanged(t *testing.T) {
	repo := newMemoryRepository()
	user := repo.addUser(&models.User{Name: "Ana Souza", SubscriptionStatus: models.SUBSCRIPTION_INACTIVE})
	expiry := time.Now().AddDate(-1, 0, 0)
	if err := repo.CreateCredential(&models.Credential{
		UserID:     user.ID,
		Number:     "SC-BBBB2222",
		IssueDate:  time.Now().AddDate(-2, 0, 0),
		ExpiryDate: expiry,
		Status:     models.CredentialStatusActive,
	}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	svc := NewService(repo, "https://portal.socioclube.com.br")

	cred, err := svc.Resolve(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cred.ExpiryDate.Equal(expiry) {
		t.Fatalf("inactive user's expired credential must be returned as-is, expiry = %v", cred.ExpiryDate)
	}
}

func TestRenewOnPayment(t *testing.T) {
	repo := newMemoryRepository()
	user := repo.addUser(&models.User{Name: "Ana Souza", SubscriptionStatus: models.SUBSCRIPTION_ACTIVE})
	svc := NewService(repo, "https://portal.socioclube.com.br")

	// No credential yet: renewal is a no-op, creation deferred to Resolve.
	if err := svc.RenewOnPayment(context.Background(), user.ID); err != nil {
		t.Fatalf("renewal without credential must be a no-op, got %v", err)
	}
	if _, err := repo.CredentialByUserID(user.ID); err == nil {
		t.Fatalf("renewal must not mint credentials")
	}

	if err := repo.CreateCredential(&models.Credential{
		UserID:     user.ID,
		Number:     "SC-CCCC3333",
		IssueDate:  time.Now().AddDate(0, -6, 0),
		ExpiryDate: time.Now().AddDate(0, 6, 0),
		Status:     models.CredentialStatusSuspended,
	}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := svc.RenewOnPayment(context.Background(), user.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cred, _ := repo.CredentialByUserID(user.ID)
	wantExpiry := cred.IssueDate.AddDate(1, 0, 0)
	if !cred.ExpiryDate.Equal(wantExpiry) {
		t.Fatalf("renewal must push expiry a full period past now, got %v", cred.ExpiryDate)
	}
	if cred.Status != models.CredentialStatusActive {
		t.Fatalf("renewal must force status active, got %q", cred.Status)
	}
}

func TestValidate(t *testing.T) {
	repo := newMemoryRepository()
	active := repo.addUser(&models.User{Name: "Ana Souza", SubscriptionStatus: models.SUBSCRIPTION_ACTIVE})
	inactive := repo.addUser(&models.User{Name: "Bruno Lima", SubscriptionStatus: models.SUBSCRIPTION_INACTIVE})

	seed := func(userID uint, number string, expiry time.Time) {
		if err := repo.CreateCredential(&models.Credential{
			UserID:     userID,
			Number:     number,
			IssueDate:  time.Now().AddDate(0, -1, 0),
			ExpiryDate: expiry,
			Status:     models.CredentialStatusActive,
		}); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}
	seed(active.ID, "SC-DDDD4444", time.Now().AddDate(0, 6, 0))
	seed(inactive.ID, "SC-EEEE5555", time.Now().AddDate(0, 6, 0))

	svc := NewService(repo, "https://portal.socioclube.com.br")

	result, err := svc.Validate(context.Background(), "SC-DDDD4444")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsValid || result.Status != StatusLabelActive {
		t.Fatalf("active member's credential must validate as Ativa, got %+v", result)
	}
	if result.Member == nil || result.Member.Name != "Ana Souza" {
		t.Fatalf("validation must expose the member summary, got %+v", result.Member)
	}

	// Same stored window, but the member's live subscription is not active.
	result, err = svc.Validate(context.Background(), "SC-EEEE5555")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsValid || result.Status != StatusLabelSuspended {
		t.Fatalf("non-active member must validate as Inativa/invalid, got %+v", result)
	}

	result, err = svc.Validate(context.Background(), "SC-MISSING1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsValid || result.Message == "" {
		t.Fatalf("unknown numbers must be invalid with a message, got %+v", result)
	}
}

func TestValidate_ExpiredWindow(t *testing.T) {
	repo := newMemoryRepository()
	user := repo.addUser(&models.User{Name: "Ana Souza", SubscriptionStatus: models.SUBSCRIPTION_ACTIVE})
	if err := repo.CreateCredential(&models.Credential{
		UserID:     user.ID,
		Number:     "SC-FFFF6666",
		IssueDate:  time.Now().AddDate(-2, 0, 0),
		ExpiryDate: time.Now().AddDate(-1, 0, 0),
		Status:     models.CredentialStatusActive,
	}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	svc := NewService(repo, "https://portal.socioclube.com.br")

	result, err := svc.Validate(context.Background(), "SC-FFFF6666")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsValid || result.Status != StatusLabelExpired {
		t.Fatalf("expired credential must validate as Expirada/invalid, got %+v", result)
	}
}

func TestValidationURL(t *testing.T) {
	svc := NewService(newMemoryRepository(), "https://portal.socioclube.com.br/")
	want := "https://portal.socioclube.com.br/credenciais/validar/SC-AAAA1111"
	if got := svc.ValidationURL("SC-AAAA1111"); got != want {
		t.Fatalf("ValidationURL() = %q, want %q", got, want)
	}
}
