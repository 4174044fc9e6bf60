package billing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/socioclube/portal/app/models"
	"github.com/socioclube/portal/internal/pkg/entitlements"
)

func paidPayment(userID uint, plan string, paidAt time.Time) *models.Payment {
	return &models.Payment{
		UserID:      userID,
		Amount:      49.90,
		Plan:        plan,
		Status:      models.PaymentStatusPaid,
		PaymentDate: &paidAt,
		CreatedAt:   paidAt,
	}
}

func TestResolvePaymentStatus_NoPayments(t *testing.T) {
	repo := newMemoryRepository()
	user := repo.addUser(&models.User{Name: "Ana Souza"})
	svc := NewService(repo, nil)

	summary, err := svc.ResolvePaymentStatus(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Status != entitlements.StatusInadimplente || summary.ExpiryDate != nil {
		t.Fatalf("expected inadimplente/nil, got %+v", summary)
	}
}

func TestResolvePaymentStatus_NewestPendingMasksOlderPaid(t *testing.T) {
	repo := newMemoryRepository()
	user := repo.addUser(&models.User{Name: "Ana Souza"})

	// Older paid payment still inside its valid period.
	repo.addPayment(paidPayment(user.ID, models.PlanAnnual, time.Now().AddDate(0, -2, 0)))
	// Newer pending payment created afterwards.
	repo.addPayment(&models.Payment{
		UserID:    user.ID,
		Amount:    700,
		Plan:      models.PlanAnnual,
		Status:    models.PaymentStatusPending,
		CreatedAt: time.Now().Add(-time.Hour),
	})

	svc := NewService(repo, nil)
	summary, err := svc.ResolvePaymentStatus(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Status != entitlements.StatusInadimplente {
		t.Fatalf("newest pending payment must mask the older paid one, got %+v", summary)
	}
}

func TestResolvePaymentStatus_MonthlyWindow(t *testing.T) {
	tests := []struct {
		name   string
		plan   string
		paidAt time.Time
		want   entitlements.Status
	}{
		{name: "monthly inside window", plan: models.PlanMonthly, paidAt: time.Now().AddDate(0, 0, -15), want: entitlements.StatusAdimplente},
		{name: "monthly past window", plan: models.PlanMonthly, paidAt: time.Now().AddDate(0, -1, -1), want: entitlements.StatusInadimplente},
		{name: "annual inside window", plan: models.PlanAnnual, paidAt: time.Now().AddDate(0, -11, 0), want: entitlements.StatusAdimplente},
		{name: "annual past window", plan: models.PlanAnnual, paidAt: time.Now().AddDate(-1, 0, -1), want: entitlements.StatusInadimplente},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemoryRepository()
			user := repo.addUser(&models.User{Name: "Ana Souza"})
			repo.addPayment(paidPayment(user.ID, tt.plan, tt.paidAt))

			svc := NewService(repo, nil)
			summary, err := svc.ResolvePaymentStatus(context.Background(), user.ID)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if summary.Status != tt.want {
				t.Fatalf("ResolvePaymentStatus() = %q, want %q", summary.Status, tt.want)
			}
			if tt.want == entitlements.StatusAdimplente {
				wantExpiry := ExpiryFor(tt.plan, tt.paidAt)
				if summary.ExpiryDate == nil || !summary.ExpiryDate.Equal(wantExpiry) {
					t.Fatalf("expiry = %v, want %v", summary.ExpiryDate, wantExpiry)
				}
			}
		})
	}
}

func webhookBody(event, paymentID, customer string, value float64) []byte {
	return []byte(fmt.Sprintf(
		`{"event":%q,"payment":{"id":%q,"customer":%q,"value":%v,"billingType":"CREDIT_CARD"}}`,
		event, paymentID, customer, value,
	))
}

func TestReconcile_SuccessSynthesizesAnnualPayment(t *testing.T) {
	repo := newMemoryRepository()
	user := repo.addUser(&models.User{
		Name:               "Ana Souza",
		SubscriptionStatus: models.SUBSCRIPTION_INACTIVE,
		ProviderCustomerID: "cus_123",
	})
	renewer := &renewRecorder{}
	svc := NewService(repo, renewer)

	outcome, err := svc.Reconcile(context.Background(), ReconcileInput{
		ProviderEventID: "evt_1",
		Payload:         webhookBody("PAYMENT_CONFIRMED", "pay_9", "cus_123", 700),
		SignatureValid:  true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Duplicate || outcome.Ignored || outcome.Category != CategorySuccess {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}

	payment, err := repo.PaymentByExternalID(user.ID, "pay_9")
	if err != nil {
		t.Fatalf("synthesized payment not found: %v", err)
	}
	if payment.Plan != models.PlanAnnual {
		t.Fatalf("value 700 must infer annual plan, got %q", payment.Plan)
	}
	if payment.Status != models.PaymentStatusPaid {
		t.Fatalf("synthesized payment status = %q, want paid", payment.Status)
	}

	stored, _ := repo.UserByID(user.ID)
	if stored.SubscriptionStatus != models.SUBSCRIPTION_ACTIVE {
		t.Fatalf("user status = %q, want active", stored.SubscriptionStatus)
	}
	if len(renewer.userIDs) != 1 || renewer.userIDs[0] != user.ID {
		t.Fatalf("credential renewal not invoked for user %d: %v", user.ID, renewer.userIDs)
	}
}

func TestReconcile_SuccessMarksExistingPaymentPaid(t *testing.T) {
	repo := newMemoryRepository()
	user := repo.addUser(&models.User{
		Name:               "Ana Souza",
		SubscriptionStatus: models.SUBSCRIPTION_INACTIVE,
		ProviderCustomerID: "cus_123",
	})
	repo.addPayment(&models.Payment{
		UserID:     user.ID,
		Amount:     49.90,
		Plan:       models.PlanMonthly,
		Status:     models.PaymentStatusPending,
		ExternalID: "pay_5",
		CreatedAt:  time.Now().Add(-time.Hour),
	})
	svc := NewService(repo, &renewRecorder{})

	if _, err := svc.Reconcile(context.Background(), ReconcileInput{
		ProviderEventID: "evt_2",
		Payload:         webhookBody("PAYMENT_RECEIVED", "pay_5", "cus_123", 49.90),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payment, _ := repo.PaymentByExternalID(user.ID, "pay_5")
	if payment.Status != models.PaymentStatusPaid {
		t.Fatalf("payment status = %q, want paid", payment.Status)
	}
	if payment.PaymentDate == nil {
		t.Fatalf("payment date must be set when a pending payment is confirmed")
	}
	if repo.paymentCount(user.ID) != 1 {
		t.Fatalf("no new payment row may be synthesized when the external id matches")
	}
}

func TestReconcile_OverdueMarksPaymentAndDeactivatesUser(t *testing.T) {
	repo := newMemoryRepository()
	user := repo.addUser(&models.User{
		Name:               "Ana Souza",
		SubscriptionStatus: models.SUBSCRIPTION_ACTIVE,
		ProviderCustomerID: "cus_123",
	})
	repo.addPayment(&models.Payment{
		UserID:     user.ID,
		Amount:     49.90,
		Plan:       models.PlanMonthly,
		Status:     models.PaymentStatusPending,
		ExternalID: "pay_7",
		CreatedAt:  time.Now().Add(-time.Hour),
	})
	renewer := &renewRecorder{}
	svc := NewService(repo, renewer)

	if _, err := svc.Reconcile(context.Background(), ReconcileInput{
		ProviderEventID: "evt_3",
		Payload:         webhookBody("PAYMENT_OVERDUE", "pay_7", "cus_123", 49.90),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payment, _ := repo.PaymentByExternalID(user.ID, "pay_7")
	if payment.Status != models.PaymentStatusOverdue {
		t.Fatalf("payment status = %q, want overdue", payment.Status)
	}
	stored, _ := repo.UserByID(user.ID)
	if stored.SubscriptionStatus != models.SUBSCRIPTION_INACTIVE {
		t.Fatalf("user status = %q, want inactive", stored.SubscriptionStatus)
	}
	if len(renewer.userIDs) != 0 {
		t.Fatalf("failure events must not touch the credential")
	}
}

func TestReconcile_CancellationCascades(t *testing.T) {
	repo := newMemoryRepository()
	user := repo.addUser(&models.User{
		Name:               "Ana Souza",
		SubscriptionStatus: models.SUBSCRIPTION_ACTIVE,
		ProviderCustomerID: "cus_123",
	})
	repo.addPayment(&models.Payment{
		UserID:     user.ID,
		Amount:     700,
		Plan:       models.PlanAnnual,
		Status:     models.PaymentStatusPaid,
		ExternalID: "pay_8",
		CreatedAt:  time.Now().Add(-time.Hour),
	})
	svc := NewService(repo, &renewRecorder{})

	if _, err := svc.Reconcile(context.Background(), ReconcileInput{
		ProviderEventID: "evt_4",
		Payload:         webhookBody("PAYMENT_REFUNDED", "pay_8", "cus_123", 700),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payment, _ := repo.PaymentByExternalID(user.ID, "pay_8")
	if payment.Status != models.PaymentStatusCancelled {
		t.Fatalf("payment status = %q, want cancelled", payment.Status)
	}
	stored, _ := repo.UserByID(user.ID)
	if stored.SubscriptionStatus != models.SUBSCRIPTION_CANCELLED {
		t.Fatalf("user status = %q, want cancelled", stored.SubscriptionStatus)
	}
}

func TestReconcile_UnknownEventAcknowledgedWithoutMutation(t *testing.T) {
	repo := newMemoryRepository()
	user := repo.addUser(&models.User{
		Name:               "Ana Souza",
		SubscriptionStatus: models.SUBSCRIPTION_INACTIVE,
		ProviderCustomerID: "cus_123",
	})
	renewer := &renewRecorder{}
	svc := NewService(repo, renewer)

	outcome, err := svc.Reconcile(context.Background(), ReconcileInput{
		ProviderEventID: "evt_5",
		Payload:         []byte(`{"event":"UNKNOWN_EVENT_X","payment":{"customer":"cus_123"}}`),
	})
	if err != nil {
		t.Fatalf("unknown events must be acknowledged, got error: %v", err)
	}
	if !outcome.Ignored || outcome.Category != CategoryUnknown {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}

	stored, _ := repo.UserByID(user.ID)
	if stored.SubscriptionStatus != models.SUBSCRIPTION_INACTIVE {
		t.Fatalf("unknown events must not mutate user state")
	}
	if repo.paymentCount(user.ID) != 0 || len(renewer.userIDs) != 0 {
		t.Fatalf("unknown events must not mutate payments or credentials")
	}
}

func TestReconcile_MissingFieldsRejected(t *testing.T) {
	repo := newMemoryRepository()
	repo.addUser(&models.User{Name: "Ana Souza", ProviderCustomerID: "cus_123"})
	svc := NewService(repo, nil)

	tests := []struct {
		name    string
		payload string
	}{
		{name: "missing event", payload: `{"payment":{"customer":"cus_123"}}`},
		{name: "missing customer", payload: `{"event":"PAYMENT_CONFIRMED","payment":{"id":"pay_1"}}`},
		{name: "missing payment", payload: `{"event":"PAYMENT_CONFIRMED"}`},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Reconcile(context.Background(), ReconcileInput{
				ProviderEventID: fmt.Sprintf("evt_missing_%d", i),
				Payload:         []byte(tt.payload),
			})
			if !errors.Is(err, ErrMissingField) {
				t.Fatalf("expected ErrMissingField, got %v", err)
			}
		})
	}
}

func TestReconcile_UnknownCustomerRejected(t *testing.T) {
	svc := NewService(newMemoryRepository(), nil)
	_, err := svc.Reconcile(context.Background(), ReconcileInput{
		ProviderEventID: "evt_6",
		Payload:         webhookBody("PAYMENT_CONFIRMED", "pay_1", "cus_missing", 100),
	})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

// A naive reconciler without an event ledger can synthesize two payment rows
// when the provider redelivers a never-before-seen success event concurrently.
// The ledger's unique (provider, event id) key collapses the redelivery to a
// duplicate acknowledgement before any mutation happens.
func TestReconcile_ConcurrentDuplicateDeliveryCreatesOneRow(t *testing.T) {
	repo := newMemoryRepository()
	user := repo.addUser(&models.User{
		Name:               "Ana Souza",
		SubscriptionStatus: models.SUBSCRIPTION_INACTIVE,
		ProviderCustomerID: "cus_123",
	})
	svc := NewService(repo, &renewRecorder{})
	payload := webhookBody("PAYMENT_CONFIRMED", "pay_race", "cus_123", 700)

	var wg sync.WaitGroup
	outcomes := make([]*Outcome, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcome, err := svc.Reconcile(context.Background(), ReconcileInput{
				ProviderEventID: "evt_race",
				Payload:         payload,
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			outcomes[i] = outcome
		}(i)
	}
	wg.Wait()

	duplicates := 0
	for _, outcome := range outcomes {
		if outcome != nil && outcome.Duplicate {
			duplicates++
		}
	}
	if duplicates != 1 {
		t.Fatalf("exactly one delivery must be deduplicated, got %d", duplicates)
	}
	if got := repo.paymentCount(user.ID); got != 1 {
		t.Fatalf("payment rows = %d, want 1", got)
	}
}

// flakyRenewer fails the first renewals and then behaves like renewRecorder.
type flakyRenewer struct {
	renewRecorder
	failuresLeft int
}

func (r *flakyRenewer) RenewOnPayment(ctx context.Context, userID uint) error {
	if r.failuresLeft > 0 {
		r.failuresLeft--
		return errors.New("credential store unavailable")
	}
	return r.renewRecorder.RenewOnPayment(ctx, userID)
}

func TestReconcile_RedeliveryRetriesFailedEvent(t *testing.T) {
	repo := newMemoryRepository()
	user := repo.addUser(&models.User{
		Name:               "Ana Souza",
		SubscriptionStatus: models.SUBSCRIPTION_INACTIVE,
		ProviderCustomerID: "cus_123",
	})
	renewer := &flakyRenewer{failuresLeft: 1}
	svc := NewService(repo, renewer)
	payload := webhookBody("PAYMENT_CONFIRMED", "pay_11", "cus_123", 49.90)

	if _, err := svc.Reconcile(context.Background(), ReconcileInput{ProviderEventID: "evt_8", Payload: payload}); err == nil {
		t.Fatalf("first delivery must surface the renewal failure")
	}

	outcome, err := svc.Reconcile(context.Background(), ReconcileInput{ProviderEventID: "evt_8", Payload: payload})
	if err != nil {
		t.Fatalf("redelivery failed: %v", err)
	}
	if outcome.Duplicate {
		t.Fatalf("redelivery of a failed event must be reprocessed, not acknowledged as duplicate")
	}
	if len(renewer.userIDs) != 1 || renewer.userIDs[0] != user.ID {
		t.Fatalf("credential renewal not repaired on redelivery: %v", renewer.userIDs)
	}
	if got := repo.paymentCount(user.ID); got != 1 {
		t.Fatalf("payment rows = %d, want 1", got)
	}

	stored := repo.events[models.PaymentProviderAsaas+"/evt_8"]
	if stored == nil || stored.ProcessingError != "" {
		t.Fatalf("processing error must be cleared after the successful retry: %+v", stored)
	}
}

func TestReconcile_SequentialDuplicateAcknowledged(t *testing.T) {
	repo := newMemoryRepository()
	user := repo.addUser(&models.User{
		Name:               "Ana Souza",
		ProviderCustomerID: "cus_123",
	})
	svc := NewService(repo, &renewRecorder{})
	payload := webhookBody("PAYMENT_CONFIRMED", "pay_10", "cus_123", 700)

	if _, err := svc.Reconcile(context.Background(), ReconcileInput{ProviderEventID: "evt_7", Payload: payload}); err != nil {
		t.Fatalf("first delivery failed: %v", err)
	}
	outcome, err := svc.Reconcile(context.Background(), ReconcileInput{ProviderEventID: "evt_7", Payload: payload})
	if err != nil {
		t.Fatalf("redelivery failed: %v", err)
	}
	if !outcome.Duplicate {
		t.Fatalf("redelivery must be reported as duplicate")
	}
	if got := repo.paymentCount(user.ID); got != 1 {
		t.Fatalf("payment rows = %d, want 1", got)
	}
}
