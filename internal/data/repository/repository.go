package repository

import (
	"context"

	"loyalty-program/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	Customer       CustomerRepository
	Address        AddressRepository
	Keytag         KeytagRepository
	AccessToken    AccessTokenRepository
	Action         ActionRepository
	ActionReferral ActionReferralRepository
	Referral       ReferralRepository
	Transaction    TransactionRepository
	Organization   OrganizationRepository
	Settings       SettingsRepository
	User           UserRepository
	Subscription   SubscriptionRepository

	// Transactor overrides the transaction strategy. When nil, Transact
	// opens a database transaction and binds the repositories to it.
	Transactor func(ctx context.Context, fn func(txRepo *Repository) error) error

	db  database.PgxIface
	log *zap.Logger
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	r := newWithQuerier(db, log)
	r.db = db
	return r
}

func newWithQuerier(q database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		Customer:       NewCustomerRepository(q, log),
		Address:        NewAddressRepository(q, log),
		Keytag:         NewKeytagRepository(q, log),
		AccessToken:    NewAccessTokenRepository(q, log),
		Action:         NewActionRepository(q, log),
		ActionReferral: NewActionReferralRepository(q, log),
		Referral:       NewReferralRepository(q, log),
		Transaction:    NewTransactionRepository(q, log),
		Organization:   NewOrganizationRepository(q, log),
		Settings:       NewSettingsRepository(q, log),
		User:           NewUserRepository(q, log),
		Subscription:   NewSubscriptionRepository(q, log),

		log: log,
	}
}

// Transact runs fn against a repository set bound to a single database
// transaction. Any error rolls the whole unit back.
func (r *Repository) Transact(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.Transactor != nil {
		return r.Transactor(ctx, fn)
	}
	return database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		return fn(newWithQuerier(tx, r.log))
	})
}
