package usecase

import (
	"context"
	"errors"
	"time"

	"loyalty-program/internal/data/entity"
	"loyalty-program/internal/data/repository"
	"loyalty-program/internal/identity"
	"loyalty-program/internal/notification"
	"loyalty-program/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Function-field mocks. Unset functions return zero values so each
// test only wires the calls it cares about.

type mockCustomerRepo struct {
	createFn                    func(ctx context.Context, customer *entity.Customer) error
	findByIDFn                  func(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	findByEmailFn               func(ctx context.Context, email string) (*entity.Customer, error)
	findByEmailAndStatusFn      func(ctx context.Context, email string, status entity.CustomerStatus) (*entity.Customer, error)
	findByVerificationTokenFn   func(ctx context.Context, token string) (*entity.Customer, error)
	findByFacebookIDAndStatusFn func(ctx context.Context, facebookID string, status entity.CustomerStatus) (*entity.Customer, error)
	findByKeytagFn              func(ctx context.Context, keytagUPCA string) (*entity.Customer, error)
	findAllFn                   func(ctx context.Context, limit, offset int) ([]*entity.Customer, error)
	countAllFn                  func(ctx context.Context) (int64, error)
	updateFn                    func(ctx context.Context, customer *entity.Customer) error
	updatePasswordFn            func(ctx context.Context, id uuid.UUID, passwordHash string) error
}

func (m *mockCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	if m.createFn != nil {
		return m.createFn(ctx, customer)
	}
	return nil
}

func (m *mockCustomerRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockCustomerRepo) FindByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockCustomerRepo) FindByEmailAndStatus(ctx context.Context, email string, status entity.CustomerStatus) (*entity.Customer, error) {
	if m.findByEmailAndStatusFn != nil {
		return m.findByEmailAndStatusFn(ctx, email, status)
	}
	return nil, nil
}

func (m *mockCustomerRepo) FindByVerificationToken(ctx context.Context, token string) (*entity.Customer, error) {
	if m.findByVerificationTokenFn != nil {
		return m.findByVerificationTokenFn(ctx, token)
	}
	return nil, nil
}

func (m *mockCustomerRepo) FindByFacebookIDAndStatus(ctx context.Context, facebookID string, status entity.CustomerStatus) (*entity.Customer, error) {
	if m.findByFacebookIDAndStatusFn != nil {
		return m.findByFacebookIDAndStatusFn(ctx, facebookID, status)
	}
	return nil, nil
}

func (m *mockCustomerRepo) FindByKeytag(ctx context.Context, keytagUPCA string) (*entity.Customer, error) {
	if m.findByKeytagFn != nil {
		return m.findByKeytagFn(ctx, keytagUPCA)
	}
	return nil, nil
}

func (m *mockCustomerRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockCustomerRepo) CountAll(ctx context.Context) (int64, error) {
	if m.countAllFn != nil {
		return m.countAllFn(ctx)
	}
	return 0, nil
}

func (m *mockCustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, customer)
	}
	return nil
}

func (m *mockCustomerRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	if m.updatePasswordFn != nil {
		return m.updatePasswordFn(ctx, id, passwordHash)
	}
	return nil
}

type mockAddressRepo struct {
	createFn               func(ctx context.Context, address *entity.Address) error
	findActiveByCustomerFn func(ctx context.Context, customerID uuid.UUID) (*entity.Address, error)
	deleteByCustomerFn     func(ctx context.Context, customerID uuid.UUID) error
}

func (m *mockAddressRepo) Create(ctx context.Context, address *entity.Address) error {
	if m.createFn != nil {
		return m.createFn(ctx, address)
	}
	return nil
}

func (m *mockAddressRepo) FindActiveByCustomer(ctx context.Context, customerID uuid.UUID) (*entity.Address, error) {
	if m.findActiveByCustomerFn != nil {
		return m.findActiveByCustomerFn(ctx, customerID)
	}
	return nil, nil
}

func (m *mockAddressRepo) DeleteByCustomer(ctx context.Context, customerID uuid.UUID) error {
	if m.deleteByCustomerFn != nil {
		return m.deleteByCustomerFn(ctx, customerID)
	}
	return nil
}

type mockKeytagRepo struct {
	createFn         func(ctx context.Context, keytag *entity.Keytag) error
	findByCustomerFn func(ctx context.Context, customerID uuid.UUID) (*entity.Keytag, error)
	updateDeliveryFn func(ctx context.Context, customerID uuid.UUID, deliveryType entity.KeytagDeliveryType, address *string) error
}

func (m *mockKeytagRepo) Create(ctx context.Context, keytag *entity.Keytag) error {
	if m.createFn != nil {
		return m.createFn(ctx, keytag)
	}
	return nil
}

func (m *mockKeytagRepo) FindByCustomer(ctx context.Context, customerID uuid.UUID) (*entity.Keytag, error) {
	if m.findByCustomerFn != nil {
		return m.findByCustomerFn(ctx, customerID)
	}
	return nil, nil
}

func (m *mockKeytagRepo) UpdateDelivery(ctx context.Context, customerID uuid.UUID, deliveryType entity.KeytagDeliveryType, address *string) error {
	if m.updateDeliveryFn != nil {
		return m.updateDeliveryFn(ctx, customerID, deliveryType, address)
	}
	return nil
}

type mockAccessTokenRepo struct {
	createFn      func(ctx context.Context, token *entity.AccessToken) error
	findByTokenFn func(ctx context.Context, authToken string) (*entity.AccessToken, error)
}

func (m *mockAccessTokenRepo) Create(ctx context.Context, token *entity.AccessToken) error {
	if m.createFn != nil {
		return m.createFn(ctx, token)
	}
	return nil
}

func (m *mockAccessTokenRepo) FindByToken(ctx context.Context, authToken string) (*entity.AccessToken, error) {
	if m.findByTokenFn != nil {
		return m.findByTokenFn(ctx, authToken)
	}
	return nil, nil
}

type mockActionRepo struct {
	findByIDFn           func(ctx context.Context, id uuid.UUID) (*entity.Action, error)
	findActiveByQrcodeFn func(ctx context.Context, qrcode string) (*entity.Action, error)
	findBaseBehavioralFn func(ctx context.Context, organizationID uuid.UUID) (*entity.Action, error)
}

func (m *mockActionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Action, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockActionRepo) FindActiveByQrcode(ctx context.Context, qrcode string) (*entity.Action, error) {
	if m.findActiveByQrcodeFn != nil {
		return m.findActiveByQrcodeFn(ctx, qrcode)
	}
	return nil, nil
}

func (m *mockActionRepo) FindBaseBehavioral(ctx context.Context, organizationID uuid.UUID) (*entity.Action, error) {
	if m.findBaseBehavioralFn != nil {
		return m.findBaseBehavioralFn(ctx, organizationID)
	}
	return nil, nil
}

type mockActionReferralRepo struct {
	findActiveByActionFn func(ctx context.Context, actionID uuid.UUID) (*entity.ActionReferral, error)
}

func (m *mockActionReferralRepo) FindActiveByAction(ctx context.Context, actionID uuid.UUID) (*entity.ActionReferral, error) {
	if m.findActiveByActionFn != nil {
		return m.findActiveByActionFn(ctx, actionID)
	}
	return nil, nil
}

type mockReferralRepo struct {
	createFn      func(ctx context.Context, referral *entity.Referral) error
	findPendingFn func(ctx context.Context, actionID uuid.UUID, email string) (*entity.Referral, error)
	markDeletedFn func(ctx context.Context, id uuid.UUID) error
}

func (m *mockReferralRepo) Create(ctx context.Context, referral *entity.Referral) error {
	if m.createFn != nil {
		return m.createFn(ctx, referral)
	}
	return nil
}

func (m *mockReferralRepo) FindPending(ctx context.Context, actionID uuid.UUID, email string) (*entity.Referral, error) {
	if m.findPendingFn != nil {
		return m.findPendingFn(ctx, actionID, email)
	}
	return nil, nil
}

func (m *mockReferralRepo) MarkDeleted(ctx context.Context, id uuid.UUID) error {
	if m.markDeletedFn != nil {
		return m.markDeletedFn(ctx, id)
	}
	return nil
}

type mockTransactionRepo struct {
	createFn          func(ctx context.Context, transaction *entity.Transaction) error
	countByCustomerFn func(ctx context.Context, customerID uuid.UUID) (int64, error)
}

func (m *mockTransactionRepo) Create(ctx context.Context, transaction *entity.Transaction) error {
	if m.createFn != nil {
		return m.createFn(ctx, transaction)
	}
	return nil
}

func (m *mockTransactionRepo) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	if m.countByCustomerFn != nil {
		return m.countByCustomerFn(ctx, customerID)
	}
	return 0, nil
}

type mockOrganizationRepo struct {
	findByIDFn        func(ctx context.Context, id uuid.UUID) (*entity.Organization, error)
	findAssociationFn func(ctx context.Context) (*entity.Organization, error)
}

func (m *mockOrganizationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Organization, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockOrganizationRepo) FindAssociation(ctx context.Context) (*entity.Organization, error) {
	if m.findAssociationFn != nil {
		return m.findAssociationFn(ctx)
	}
	return nil, nil
}

type mockSettingsRepo struct {
	findActiveByNameFn func(ctx context.Context, name string) (*entity.Setting, error)
	valueOfFn          func(ctx context.Context, name string) (float64, error)
}

func (m *mockSettingsRepo) FindActiveByName(ctx context.Context, name string) (*entity.Setting, error) {
	if m.findActiveByNameFn != nil {
		return m.findActiveByNameFn(ctx, name)
	}
	return nil, nil
}

func (m *mockSettingsRepo) ValueOf(ctx context.Context, name string) (float64, error) {
	if m.valueOfFn != nil {
		return m.valueOfFn(ctx, name)
	}
	return 0, nil
}

type mockUserRepo struct {
	findActiveByGroupFn func(ctx context.Context, groupID int) ([]*entity.User, error)
}

func (m *mockUserRepo) FindActiveByGroup(ctx context.Context, groupID int) ([]*entity.User, error) {
	if m.findActiveByGroupFn != nil {
		return m.findActiveByGroupFn(ctx, groupID)
	}
	return nil, nil
}

type mockSubscriptionRepo struct {
	createFn       func(ctx context.Context, subscription *entity.Subscription) error
	findFn         func(ctx context.Context, customerID, merchantID uuid.UUID) (*entity.Subscription, error)
	updateStatusFn func(ctx context.Context, id uuid.UUID, status entity.SubscriptionStatus) error
}

func (m *mockSubscriptionRepo) Create(ctx context.Context, subscription *entity.Subscription) error {
	if m.createFn != nil {
		return m.createFn(ctx, subscription)
	}
	return nil
}

func (m *mockSubscriptionRepo) Find(ctx context.Context, customerID, merchantID uuid.UUID) (*entity.Subscription, error) {
	if m.findFn != nil {
		return m.findFn(ctx, customerID, merchantID)
	}
	return nil, nil
}

func (m *mockSubscriptionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.SubscriptionStatus) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status)
	}
	return nil
}

// mockSender records sent templates, failing the ones listed in
// failTemplates.
type mockSender struct {
	sent          []sentMail
	failTemplates map[string]bool
}

type sentMail struct {
	template string
	to       notification.Recipient
	subject  string
	vars     map[string]any
}

func (m *mockSender) Send(ctx context.Context, template string, to notification.Recipient, subject string, vars map[string]any) error {
	if m.failTemplates[template] {
		return &notification.DeliveryError{Provider: "smtp", Err: errors.New("connection refused")}
	}
	m.sent = append(m.sent, sentMail{template: template, to: to, subject: subject, vars: vars})
	return nil
}

type mockSMS struct {
	sent []string
	err  error
}

func (m *mockSMS) SendSMS(ctx context.Context, to, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to+": "+body)
	return nil
}

type mockFacebook struct {
	profile *identity.Profile
	err     error
}

func (m *mockFacebook) FetchProfile(ctx context.Context, accessToken string) (*identity.Profile, error) {
	return m.profile, m.err
}

// testRepos bundles the mocks behind a Repository whose Transact runs
// the callback against the same mocks.
type testRepos struct {
	customer       *mockCustomerRepo
	address        *mockAddressRepo
	keytag         *mockKeytagRepo
	accessToken    *mockAccessTokenRepo
	action         *mockActionRepo
	actionReferral *mockActionReferralRepo
	referral       *mockReferralRepo
	transaction    *mockTransactionRepo
	organization   *mockOrganizationRepo
	settings       *mockSettingsRepo
	user           *mockUserRepo
	subscription   *mockSubscriptionRepo
}

func newTestRepos() *testRepos {
	return &testRepos{
		customer:       &mockCustomerRepo{},
		address:        &mockAddressRepo{},
		keytag:         &mockKeytagRepo{},
		accessToken:    &mockAccessTokenRepo{},
		action:         &mockActionRepo{},
		actionReferral: &mockActionReferralRepo{},
		referral:       &mockReferralRepo{},
		transaction:    &mockTransactionRepo{},
		organization:   &mockOrganizationRepo{},
		settings:       &mockSettingsRepo{},
		user:           &mockUserRepo{},
		subscription:   &mockSubscriptionRepo{},
	}
}

func (t *testRepos) repository() *repository.Repository {
	repo := &repository.Repository{
		Customer:       t.customer,
		Address:        t.address,
		Keytag:         t.keytag,
		AccessToken:    t.accessToken,
		Action:         t.action,
		ActionReferral: t.actionReferral,
		Referral:       t.referral,
		Transaction:    t.transaction,
		Organization:   t.organization,
		Settings:       t.settings,
		User:           t.user,
		Subscription:   t.subscription,
	}
	repo.Transactor = func(ctx context.Context, fn func(txRepo *repository.Repository) error) error {
		return fn(repo)
	}
	return repo
}

// programReady wires the settings and association lookups so the
// registration guard passes.
func (t *testRepos) programReady() {
	t.settings.findActiveByNameFn = func(ctx context.Context, name string) (*entity.Setting, error) {
		return &entity.Setting{Name: name, Value: 0.5, Status: entity.SettingStatusActive}, nil
	}
	t.organization.findAssociationFn = func(ctx context.Context) (*entity.Organization, error) {
		return &entity.Organization{Title: "Rewards Association", IsAssociation: true}, nil
	}
}

func testConfig() *utils.Config {
	return &utils.Config{
		App: utils.AppConfig{
			Name:             "loyalty-program",
			PublicURL:        "https://rewards.example.com",
			VerificationURL:  "https://rewards.example.com/activate?token={verification_token}",
			ApplicationTitle: "Rewards Program",
			DeletedDomain:    "deleted.example.com",
		},
		Twilio: utils.TwilioConfig{
			DownloadURL: "https://rewards.example.com/app",
		},
	}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func strPtr(s string) *string {
	return &s
}

func confirmedCustomer(email string) *entity.Customer {
	return &entity.Customer{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Firstname: "Jane",
		Lastname:  "Miller",
		Email:     email,
		Status:    entity.CustomerStatusConfirmed,
	}
}
