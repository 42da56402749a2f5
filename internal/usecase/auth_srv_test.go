package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"loyalty-program/internal/data/entity"
	"loyalty-program/internal/dto/request"
	"loyalty-program/internal/identity"
	"loyalty-program/internal/notification"
	"loyalty-program/pkg/utils"

	"github.com/google/uuid"
)

func customerWithPassword(email, password string) *entity.Customer {
	hash, _ := utils.HashPassword(password)
	customer := confirmedCustomer(email)
	customer.PasswordHash = &hash
	return customer
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name     string
		customer *entity.Customer
		password string
		wantErr  error
	}{
		{name: "unknown login", password: "secret123", wantErr: ErrInvalidCredentials},
		{
			name:     "wrong password",
			customer: customerWithPassword("jane@example.com", "secret123"),
			password: "wrong-pass",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "no password set",
			customer: confirmedCustomer("jane@example.com"),
			password: "secret123",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "success",
			customer: customerWithPassword("jane@example.com", "secret123"),
			password: "secret123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repos := newTestRepos()
			repos.customer.findByEmailAndStatusFn = func(ctx context.Context, email string, status entity.CustomerStatus) (*entity.Customer, error) {
				if status != entity.CustomerStatusConfirmed {
					t.Errorf("authorization must only match confirmed customers, got %s", status)
				}
				return tt.customer, nil
			}

			var issued *entity.AccessToken
			repos.accessToken.createFn = func(ctx context.Context, token *entity.AccessToken) error {
				issued = token
				return nil
			}

			service := NewAuthService(repos.repository(), testConfig(), &mockSender{}, &mockSMS{}, &mockFacebook{}, testLogger())

			resp, err := service.Authorize(context.Background(), &request.AuthorizeRequest{
				Login:    "jane@example.com",
				Password: tt.password,
			})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if issued == nil || resp.Token != issued.AuthToken.String() {
				t.Error("response token must match the issued access token")
			}
		})
	}
}

func TestChangePassword(t *testing.T) {
	repos := newTestRepos()
	customer := customerWithPassword("jane@example.com", "old-secret")
	repos.customer.findByIDFn = func(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
		return customer, nil
	}

	var newHash string
	repos.customer.updatePasswordFn = func(ctx context.Context, id uuid.UUID, passwordHash string) error {
		newHash = passwordHash
		return nil
	}

	service := NewAuthService(repos.repository(), testConfig(), &mockSender{}, &mockSMS{}, &mockFacebook{}, testLogger())

	err := service.ChangePassword(context.Background(), customer.ID, &request.ChangePasswordRequest{
		PasswordOld: "wrong-old",
		PasswordNew: "new-secret",
	})
	if !errors.Is(err, ErrIncorrectPassword) {
		t.Fatalf("expected ErrIncorrectPassword, got %v", err)
	}

	err = service.ChangePassword(context.Background(), customer.ID, &request.ChangePasswordRequest{
		PasswordOld: "old-secret",
		PasswordNew: "new-secret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !utils.CheckPasswordHash("new-secret", newHash) {
		t.Error("stored hash does not match the new password")
	}
}

func TestForgotPassword_SendFailureKeepsPassword(t *testing.T) {
	repos := newTestRepos()
	repos.customer.findByEmailFn = func(ctx context.Context, email string) (*entity.Customer, error) {
		return customerWithPassword(email, "current-secret"), nil
	}
	repos.customer.updatePasswordFn = func(ctx context.Context, id uuid.UUID, passwordHash string) error {
		t.Error("password must not change when the notification cannot be delivered")
		return nil
	}

	mail := &mockSender{failTemplates: map[string]bool{notification.TemplateForgotPassword: true}}
	service := NewAuthService(repos.repository(), testConfig(), mail, &mockSMS{}, &mockFacebook{}, testLogger())

	_, err := service.ForgotPassword(context.Background(), &request.ForgotPasswordRequest{Identifier: "jane@example.com"})

	var deliveryErr *notification.DeliveryError
	if !errors.As(err, &deliveryErr) {
		t.Fatalf("expected DeliveryError, got %v", err)
	}
}

func TestForgotPassword_Success(t *testing.T) {
	repos := newTestRepos()
	repos.customer.findByEmailFn = func(ctx context.Context, email string) (*entity.Customer, error) {
		return customerWithPassword(email, "current-secret"), nil
	}

	var newHash string
	repos.customer.updatePasswordFn = func(ctx context.Context, id uuid.UUID, passwordHash string) error {
		newHash = passwordHash
		return nil
	}

	mail := &mockSender{}
	service := NewAuthService(repos.repository(), testConfig(), mail, &mockSMS{}, &mockFacebook{}, testLogger())

	email, err := service.ForgotPassword(context.Background(), &request.ForgotPasswordRequest{Identifier: "jane@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if email != "jane@example.com" {
		t.Errorf("expected the customer email back, got %s", email)
	}

	if len(mail.sent) != 1 || mail.sent[0].template != notification.TemplateForgotPassword {
		t.Fatalf("expected a forgot password email, got %+v", mail.sent)
	}
	sentPassword, _ := mail.sent[0].vars["password"].(string)
	if sentPassword == "" || !utils.CheckPasswordHash(sentPassword, newHash) {
		t.Error("the stored hash must match the password that was emailed")
	}
}

func TestForgotPassword_ByKeytag(t *testing.T) {
	repos := newTestRepos()
	repos.customer.findByKeytagFn = func(ctx context.Context, keytagUPCA string) (*entity.Customer, error) {
		if keytagUPCA != "123456789012" {
			return nil, nil
		}
		return customerWithPassword("jane@example.com", "current-secret"), nil
	}

	service := NewAuthService(repos.repository(), testConfig(), &mockSender{}, &mockSMS{}, &mockFacebook{}, testLogger())

	email, err := service.ForgotPassword(context.Background(), &request.ForgotPasswordRequest{Identifier: "123456789012"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if email != "jane@example.com" {
		t.Errorf("expected the customer email back, got %s", email)
	}
}

func TestForgotPassword_NotConfirmed(t *testing.T) {
	repos := newTestRepos()
	repos.customer.findByEmailFn = func(ctx context.Context, email string) (*entity.Customer, error) {
		customer := confirmedCustomer(email)
		customer.Status = entity.CustomerStatusInactive
		return customer, nil
	}

	service := NewAuthService(repos.repository(), testConfig(), &mockSender{}, &mockSMS{}, &mockFacebook{}, testLogger())

	_, err := service.ForgotPassword(context.Background(), &request.ForgotPasswordRequest{Identifier: "jane@example.com"})
	if !errors.Is(err, ErrInvalidOperation) {
		t.Fatalf("expected ErrInvalidOperation, got %v", err)
	}
}

func TestFacebookSignup(t *testing.T) {
	profile := &identity.Profile{
		ID:        "fb-123",
		Email:     "jane@example.com",
		Firstname: "Jane",
		Lastname:  "Miller",
	}

	t.Run("invalid token", func(t *testing.T) {
		repos := newTestRepos()
		service := NewAuthService(repos.repository(), testConfig(), &mockSender{}, &mockSMS{}, &mockFacebook{}, testLogger())

		_, err := service.FacebookSignup(context.Background(), &request.FacebookRequest{AccessToken: "bad"})
		if !errors.Is(err, ErrInvalidAccessToken) {
			t.Fatalf("expected ErrInvalidAccessToken, got %v", err)
		}
	})

	t.Run("already linked", func(t *testing.T) {
		repos := newTestRepos()
		repos.customer.findByFacebookIDAndStatusFn = func(ctx context.Context, facebookID string, status entity.CustomerStatus) (*entity.Customer, error) {
			return confirmedCustomer("jane@example.com"), nil
		}

		service := NewAuthService(repos.repository(), testConfig(), &mockSender{}, &mockSMS{}, &mockFacebook{profile: profile}, testLogger())

		_, err := service.FacebookSignup(context.Background(), &request.FacebookRequest{AccessToken: "tok"})
		if !errors.Is(err, ErrAccountExists) {
			t.Fatalf("expected ErrAccountExists, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		repos := newTestRepos()
		repos.programReady()

		var created *entity.Customer
		repos.customer.createFn = func(ctx context.Context, c *entity.Customer) error {
			created = c
			return nil
		}
		var keytag *entity.Keytag
		repos.keytag.createFn = func(ctx context.Context, k *entity.Keytag) error {
			keytag = k
			return nil
		}

		mail := &mockSender{}
		service := NewAuthService(repos.repository(), testConfig(), mail, &mockSMS{}, &mockFacebook{profile: profile}, testLogger())

		resp, err := service.FacebookSignup(context.Background(), &request.FacebookRequest{AccessToken: "tok"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if created == nil || created.Status != entity.CustomerStatusConfirmed {
			t.Error("social accounts must be created confirmed")
		}
		if created.FacebookID == nil || *created.FacebookID != "fb-123" {
			t.Error("facebook id must be linked")
		}
		if keytag == nil || resp.Keytag != keytag.KeytagUPCA {
			t.Error("keytag must be attached immediately")
		}
		if resp.Token == "" {
			t.Error("an access token must be issued")
		}
		if len(mail.sent) == 0 || mail.sent[0].template != notification.TemplateRegistration {
			t.Errorf("expected a registration email, got %+v", mail.sent)
		}
	})
}

func TestFacebookSignin(t *testing.T) {
	profile := &identity.Profile{ID: "fb-123", Email: "jane@example.com"}

	t.Run("linked account", func(t *testing.T) {
		repos := newTestRepos()
		repos.customer.findByFacebookIDAndStatusFn = func(ctx context.Context, facebookID string, status entity.CustomerStatus) (*entity.Customer, error) {
			return confirmedCustomer("jane@example.com"), nil
		}

		service := NewAuthService(repos.repository(), testConfig(), &mockSender{}, &mockSMS{}, &mockFacebook{profile: profile}, testLogger())

		resp, err := service.FacebookSignin(context.Background(), &request.FacebookRequest{AccessToken: "tok"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Token == "" {
			t.Error("an access token must be issued")
		}
	})

	t.Run("unlinked account with same email", func(t *testing.T) {
		repos := newTestRepos()
		repos.customer.findByEmailAndStatusFn = func(ctx context.Context, email string, status entity.CustomerStatus) (*entity.Customer, error) {
			return confirmedCustomer(email), nil
		}

		service := NewAuthService(repos.repository(), testConfig(), &mockSender{}, &mockSMS{}, &mockFacebook{profile: profile}, testLogger())

		_, err := service.FacebookSignin(context.Background(), &request.FacebookRequest{AccessToken: "tok"})
		if !errors.Is(err, ErrAccountExistsUnlinked) {
			t.Fatalf("expected ErrAccountExistsUnlinked, got %v", err)
		}
	})

	t.Run("no account", func(t *testing.T) {
		repos := newTestRepos()
		service := NewAuthService(repos.repository(), testConfig(), &mockSender{}, &mockSMS{}, &mockFacebook{profile: profile}, testLogger())

		_, err := service.FacebookSignin(context.Background(), &request.FacebookRequest{AccessToken: "tok"})
		if !errors.Is(err, ErrAccountNotFound) {
			t.Fatalf("expected ErrAccountNotFound, got %v", err)
		}
	})
}

func TestSendRewardsAppSMS(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "sms"), 0o755); err != nil {
		t.Fatal(err)
	}
	template := "Get the rewards app: {download_url}\n"
	if err := os.WriteFile(filepath.Join(dir, "sms", "getrewardsapp.txt"), []byte(template), 0o644); err != nil {
		t.Fatal(err)
	}

	config := testConfig()
	config.Mail.TemplateDir = dir

	repos := newTestRepos()
	sms := &mockSMS{}
	service := NewAuthService(repos.repository(), config, &mockSender{}, sms, &mockFacebook{}, testLogger())

	err := service.SendRewardsAppSMS(context.Background(), &request.RewardsAppSMSRequest{Phone: "+15551234567"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sms.sent) != 1 {
		t.Fatalf("expected one SMS, got %d", len(sms.sent))
	}
	if !strings.Contains(sms.sent[0], "https://rewards.example.com/app") {
		t.Errorf("download URL placeholder was not substituted: %s", sms.sent[0])
	}
	if strings.Contains(sms.sent[0], "{download_url}") {
		t.Error("placeholder must be replaced")
	}
}

func TestNewAccessTokenScopes(t *testing.T) {
	repos := newTestRepos()
	var issued *entity.AccessToken
	repos.accessToken.createFn = func(ctx context.Context, token *entity.AccessToken) error {
		issued = token
		return nil
	}

	customerID := uuid.New()
	token, err := newAccessToken(context.Background(), repos.accessToken, customerID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if issued == nil || token.CustomerID != customerID {
		t.Fatal("token must belong to the customer")
	}

	want := []string{entity.ScopePersonalRead, entity.ScopePersonalWrite}
	if len(token.Scopes) != len(want) {
		t.Fatalf("expected scopes %v, got %v", want, token.Scopes)
	}
	for i := range want {
		if token.Scopes[i] != want[i] {
			t.Errorf("expected scope %s, got %s", want[i], token.Scopes[i])
		}
	}
	if token.CreatedAt.After(time.Now()) {
		t.Error("token creation time is in the future")
	}
}
