package repository

import (
	"context"
	"fmt"

	"loyalty-program/internal/data/entity"
	"loyalty-program/pkg/database"

	"go.uber.org/zap"
)

type UserRepository interface {
	FindActiveByGroup(ctx context.Context, userGroupID int) ([]*entity.User, error)
}

type userRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewUserRepository(db database.Querier, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

// FindActiveByGroup lists active back-office users of one group, e.g.
// the administrators notified on new customer accounts.
func (r *userRepository) FindActiveByGroup(ctx context.Context, userGroupID int) ([]*entity.User, error) {
	query := `
		SELECT id, email, firstname, lastname, user_group_id, status,
		       created_at, updated_at, deleted_at
		FROM users
		WHERE user_group_id = $1 AND status = 'active' AND deleted_at IS NULL
	`

	rows, err := r.db.Query(ctx, query, userGroupID)
	if err != nil {
		r.log.Error("Failed to find users by group",
			zap.Error(err),
			zap.Int("user_group_id", userGroupID),
		)
		return nil, fmt.Errorf("find users by group %d: %w", userGroupID, err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		var user entity.User
		err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.Firstname,
			&user.Lastname,
			&user.UserGroupID,
			&user.Status,
			&user.CreatedAt,
			&user.UpdatedAt,
			&user.DeletedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate users rows: %w", err)
	}

	return users, nil
}
