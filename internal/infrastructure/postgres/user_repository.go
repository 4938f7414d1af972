package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Estoque-api/internal/domain"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
	"github.com/jhoicas/Estoque-api/internal/domain/repository"
)

var (
	_ repository.UserRepository           = (*UserRepo)(nil)
	_ repository.ClientSettingsRepository = (*ClientSettingsRepo)(nil)
)

const userColumns = `id, email, password_hash, full_name, company_name, role, is_active, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
// El email es único sin distinguir mayúsculas (índice sobre lower(email)).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.CompanyName, &u.Role,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		user.ID, user.Email, user.PasswordHash, user.FullName, user.CompanyName, user.Role,
		user.IsActive, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) findOne(ctx context.Context, op, where string, arg any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg))
	if err != nil {
		if noRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, "get user", `id = $1`, id)
}

// FindByEmail obtiene un usuario por email.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "get user by email", `lower(email) = lower($1)`, email)
}

// ListByRole lista usuarios de un rol ("" = todos), más recientes primero.
func (r *UserRepo) ListByRole(ctx context.Context, role string) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE ($1 = '' OR role = $1)
		ORDER BY created_at DESC`, role)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// SetActive activa o desactiva una cuenta.
func (r *UserRepo) SetActive(ctx context.Context, id string, active bool) error {
	cmd, err := r.q.Exec(ctx, `UPDATE users SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		if isInvalidText(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("set user active: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ClientSettingsRepo plan y capacidades por cuenta. Las capacidades se guardan en una columna JSONB.
type ClientSettingsRepo struct {
	q Querier
}

// NewClientSettingsRepository construye el repo de configuración de clientes.
func NewClientSettingsRepository(q Querier) *ClientSettingsRepo {
	return &ClientSettingsRepo{q: q}
}

func (r *ClientSettingsRepo) Create(ctx context.Context, s *entity.ClientSettings) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO client_settings (user_id, subscription_plan, features, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		s.UserID, s.SubscriptionPlan, s.Features, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert client settings: %w", err)
	}
	return nil
}

func (r *ClientSettingsRepo) GetByUserID(ctx context.Context, userID string) (*entity.ClientSettings, error) {
	var s entity.ClientSettings
	err := r.q.QueryRow(ctx, `
		SELECT user_id, subscription_plan, features, created_at, updated_at
		FROM client_settings WHERE user_id = $1`, userID).
		Scan(&s.UserID, &s.SubscriptionPlan, &s.Features, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if noRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client settings: %w", err)
	}
	return &s, nil
}

func (r *ClientSettingsRepo) Update(ctx context.Context, s *entity.ClientSettings) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE client_settings SET subscription_plan = $2, features = $3, updated_at = $4
		WHERE user_id = $1`,
		s.UserID, s.SubscriptionPlan, s.Features, s.UpdatedAt)
	if err != nil {
		if isInvalidText(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update client settings: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
