package repository

import (
	"context"
	"fmt"

	"loyalty-program/internal/data/entity"
	"loyalty-program/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	FindByEmail(ctx context.Context, email string) (*entity.Customer, error)
	FindByEmailAndStatus(ctx context.Context, email string, status entity.CustomerStatus) (*entity.Customer, error)
	FindByVerificationToken(ctx context.Context, token string) (*entity.Customer, error)
	FindByFacebookIDAndStatus(ctx context.Context, facebookID string, status entity.CustomerStatus) (*entity.Customer, error)
	FindByKeytag(ctx context.Context, keytagUPCA string) (*entity.Customer, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Customer, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, customer *entity.Customer) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type customerRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewCustomerRepository(db database.Querier, log *zap.Logger) CustomerRepository {
	return &customerRepository{
		db:  db,
		log: log.With(zap.String("repository", "customer")),
	}
}

const customerColumns = `id, firstname, lastname, email, pending_email, password, phone,
	       facebook_id, verification_token, status, created_at, updated_at, deleted_at`

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var customer entity.Customer
	err := row.Scan(
		&customer.ID,
		&customer.Firstname,
		&customer.Lastname,
		&customer.Email,
		&customer.PendingEmail,
		&customer.PasswordHash,
		&customer.Phone,
		&customer.FacebookID,
		&customer.VerificationToken,
		&customer.Status,
		&customer.CreatedAt,
		&customer.UpdatedAt,
		&customer.DeletedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (cr *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, firstname, lastname, email, pending_email, password,
		                       phone, facebook_id, verification_token, status,
		                       created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := cr.db.Exec(ctx, query,
		customer.ID,
		customer.Firstname,
		customer.Lastname,
		customer.Email,
		customer.PendingEmail,
		customer.PasswordHash,
		customer.Phone,
		customer.FacebookID,
		customer.VerificationToken,
		customer.Status,
		customer.CreatedAt,
		customer.UpdatedAt,
	)

	if err != nil {
		cr.log.Error("Failed to create customer",
			zap.Error(err),
			zap.String("email", customer.Email),
		)
		return fmt.Errorf("create customer %s: %w", customer.Email, err)
	}

	return nil
}

func (cr *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE id = $1 AND deleted_at IS NULL
	`

	customer, err := scanCustomer(cr.db.QueryRow(ctx, query, id))
	if err != nil {
		cr.log.Error("Failed to find customer by ID",
			zap.Error(err),
			zap.String("customer_id", id.String()),
		)
		return nil, fmt.Errorf("find customer by ID %s: %w", id.String(), err)
	}

	return customer, nil
}

func (cr *customerRepository) FindByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE email = $1 AND status <> 'deleted' AND deleted_at IS NULL
	`

	customer, err := scanCustomer(cr.db.QueryRow(ctx, query, email))
	if err != nil {
		cr.log.Error("Failed to find customer by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find customer by email %s: %w", email, err)
	}

	return customer, nil
}

func (cr *customerRepository) FindByEmailAndStatus(ctx context.Context, email string, status entity.CustomerStatus) (*entity.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE email = $1 AND status = $2 AND deleted_at IS NULL
	`

	customer, err := scanCustomer(cr.db.QueryRow(ctx, query, email, status))
	if err != nil {
		cr.log.Error("Failed to find customer by email and status",
			zap.Error(err),
			zap.String("email", email),
			zap.String("status", string(status)),
		)
		return nil, fmt.Errorf("find customer by email %s status %s: %w", email, status, err)
	}

	return customer, nil
}

func (cr *customerRepository) FindByVerificationToken(ctx context.Context, token string) (*entity.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE verification_token = $1 AND deleted_at IS NULL
	`

	customer, err := scanCustomer(cr.db.QueryRow(ctx, query, token))
	if err != nil {
		cr.log.Error("Failed to find customer by verification token", zap.Error(err))
		return nil, fmt.Errorf("find customer by verification token: %w", err)
	}

	return customer, nil
}

func (cr *customerRepository) FindByFacebookIDAndStatus(ctx context.Context, facebookID string, status entity.CustomerStatus) (*entity.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE facebook_id = $1 AND status = $2 AND deleted_at IS NULL
	`

	customer, err := scanCustomer(cr.db.QueryRow(ctx, query, facebookID, status))
	if err != nil {
		cr.log.Error("Failed to find customer by facebook ID",
			zap.Error(err),
			zap.String("facebook_id", facebookID),
		)
		return nil, fmt.Errorf("find customer by facebook ID %s: %w", facebookID, err)
	}

	return customer, nil
}

// FindByKeytag resolves a customer through their keytag UPC-A number.
func (cr *customerRepository) FindByKeytag(ctx context.Context, keytagUPCA string) (*entity.Customer, error) {
	query := `
		SELECT c.id, c.firstname, c.lastname, c.email, c.pending_email, c.password, c.phone,
		       c.facebook_id, c.verification_token, c.status, c.created_at, c.updated_at, c.deleted_at
		FROM customers c
		JOIN keytags k ON k.customer_id = c.id
		WHERE k.keytag_upca = $1 AND c.deleted_at IS NULL
	`

	customer, err := scanCustomer(cr.db.QueryRow(ctx, query, keytagUPCA))
	if err != nil {
		cr.log.Error("Failed to find customer by keytag",
			zap.Error(err),
			zap.String("keytag", keytagUPCA),
		)
		return nil, fmt.Errorf("find customer by keytag %s: %w", keytagUPCA, err)
	}

	return customer, nil
}

func (cr *customerRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := cr.db.Query(ctx, query, limit, offset)
	if err != nil {
		cr.log.Error("Failed to get all customers",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all customers limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var customers []*entity.Customer
	for rows.Next() {
		var customer entity.Customer
		err := rows.Scan(
			&customer.ID,
			&customer.Firstname,
			&customer.Lastname,
			&customer.Email,
			&customer.PendingEmail,
			&customer.PasswordHash,
			&customer.Phone,
			&customer.FacebookID,
			&customer.VerificationToken,
			&customer.Status,
			&customer.CreatedAt,
			&customer.UpdatedAt,
			&customer.DeletedAt,
		)
		if err != nil {
			cr.log.Error("Failed to scan customer row", zap.Error(err))
			return nil, fmt.Errorf("scan customer row: %w", err)
		}
		customers = append(customers, &customer)
	}

	if err := rows.Err(); err != nil {
		cr.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate customers rows: %w", err)
	}

	return customers, nil
}

func (cr *customerRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM customers WHERE deleted_at IS NULL`

	var count int64
	err := cr.db.QueryRow(ctx, query).Scan(&count)
	if err != nil {
		cr.log.Error("Database error counting customers", zap.Error(err))
		return 0, fmt.Errorf("count all customers: %w", err)
	}

	return count, nil
}

func (cr *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	query := `
		UPDATE customers
		SET firstname = $2, lastname = $3, email = $4, pending_email = $5,
		    password = $6, phone = $7, facebook_id = $8, verification_token = $9,
		    status = $10, updated_at = $11
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := cr.db.Exec(ctx, query,
		customer.ID,
		customer.Firstname,
		customer.Lastname,
		customer.Email,
		customer.PendingEmail,
		customer.PasswordHash,
		customer.Phone,
		customer.FacebookID,
		customer.VerificationToken,
		customer.Status,
		customer.UpdatedAt,
	)

	if err != nil {
		cr.log.Error("Failed to update customer",
			zap.Error(err),
			zap.String("customer_id", customer.ID.String()),
		)
		return fmt.Errorf("update customer %s: %w", customer.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("customer %s not found or already deleted", customer.ID.String())
	}

	return nil
}

// UpdatePassword sets only the password hash. Used by forgot-password,
// where the rest of the record must stay untouched.
func (cr *customerRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	query := `
		UPDATE customers
		SET password = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := cr.db.Exec(ctx, query, id, passwordHash)
	if err != nil {
		cr.log.Error("Failed to update customer password",
			zap.Error(err),
			zap.String("customer_id", id.String()),
		)
		return fmt.Errorf("update customer %s password: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("customer %s not found", id.String())
	}

	return nil
}
