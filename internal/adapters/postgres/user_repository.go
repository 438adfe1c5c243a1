package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cryptofolio/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// Sealer encrypts exchange credentials at rest.
type Sealer interface {
	Seal(plain []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}

type UserRepository struct {
	pool   *pgxpool.Pool
	sealer Sealer
}

const userColumns = `telegram_id, telegram_username, api_key, api_secret, wallet, fully_updated, created_at`

func (r *UserRepository) Create(ctx context.Context, user domain.User) error {
	apiKey, err := r.sealer.Seal([]byte(user.Credentials.APIKey))
	if err != nil {
		return fmt.Errorf("failed to seal api key: %w", err)
	}
	apiSecret, err := r.sealer.Seal([]byte(user.Credentials.APISecret))
	if err != nil {
		return fmt.Errorf("failed to seal api secret: %w", err)
	}
	wallet, err := marshalWallet(user.Wallet)
	if err != nil {
		return err
	}

	const q = `
		insert into users(telegram_id, telegram_username, api_key, api_secret, wallet)
		values ($1, $2, $3, $4, $5::jsonb);
	`
	_, err = r.pool.Exec(ctx, q, user.TelegramID, user.TelegramUsername, apiKey, apiSecret, wallet)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to insert user %d: %w", user.TelegramID, err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, telegramID int64) (domain.User, error) {
	q := `select ` + userColumns + ` from users where telegram_id = $1;`

	user, err := r.scanUser(r.pool.QueryRow(ctx, q, telegramID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("failed to select user %d: %w", telegramID, err)
	}
	return user, nil
}

func (r *UserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	return r.query(ctx, `select `+userColumns+` from users order by telegram_id;`)
}

func (r *UserRepository) GetFullyUpdated(ctx context.Context) ([]domain.User, error) {
	return r.query(ctx, `select `+userColumns+` from users where fully_updated order by telegram_id;`)
}

// ReplaceWallet overwrites the stored wallet as a whole.
func (r *UserRepository) ReplaceWallet(ctx context.Context, telegramID int64, wallet domain.Wallet) error {
	payload, err := marshalWallet(wallet)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `update users set wallet = $2::jsonb where telegram_id = $1;`, telegramID, payload)
	if err != nil {
		return fmt.Errorf("failed to replace wallet of user %d: %w", telegramID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) MarkFullyUpdated(ctx context.Context, telegramID int64) error {
	tag, err := r.pool.Exec(ctx, `update users set fully_updated = true where telegram_id = $1;`, telegramID)
	if err != nil {
		return fmt.Errorf("failed to mark user %d updated: %w", telegramID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) query(ctx context.Context, q string, args ...any) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0, 16)
	for rows.Next() {
		user, scanErr := r.scanUser(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan user: %w", scanErr)
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) scanUser(row pgx.Row) (domain.User, error) {
	var user domain.User
	var apiKey, apiSecret, wallet []byte
	if err := row.Scan(
		&user.TelegramID,
		&user.TelegramUsername,
		&apiKey,
		&apiSecret,
		&wallet,
		&user.FullyUpdated,
		&user.CreatedAt,
	); err != nil {
		return domain.User{}, err
	}

	key, err := r.sealer.Open(apiKey)
	if err != nil {
		return domain.User{}, fmt.Errorf("api key of user %d: %w", user.TelegramID, err)
	}
	secret, err := r.sealer.Open(apiSecret)
	if err != nil {
		return domain.User{}, fmt.Errorf("api secret of user %d: %w", user.TelegramID, err)
	}
	user.Credentials = domain.Credentials{APIKey: string(key), APISecret: string(secret)}

	if err = json.Unmarshal(wallet, &user.Wallet); err != nil {
		return domain.User{}, fmt.Errorf("wallet of user %d: %w", user.TelegramID, err)
	}
	if user.Wallet == nil {
		user.Wallet = domain.Wallet{}
	}
	if err = user.Wallet.Validate(); err != nil {
		return domain.User{}, fmt.Errorf("wallet of user %d: %w", user.TelegramID, err)
	}
	return user, nil
}

func marshalWallet(wallet domain.Wallet) (string, error) {
	if wallet == nil {
		wallet = domain.Wallet{}
	}
	if err := wallet.Validate(); err != nil {
		return "", err
	}
	payload, err := json.Marshal(wallet)
	if err != nil {
		return "", fmt.Errorf("failed to marshal wallet: %w", err)
	}
	return string(payload), nil
}

func NewUserRepository(pool *pgxpool.Pool, sealer Sealer) *UserRepository {
	return &UserRepository{pool: pool, sealer: sealer}
}
