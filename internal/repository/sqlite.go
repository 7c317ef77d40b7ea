package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/brokerz/brokerz-auth/internal/domain"
)

// Compile-time interface assertion.
var _ UserRepository = (*SQLiteUserRepo)(nil)

// createdAtLayout matches SQLite's datetime('now') column default.
const createdAtLayout = "2006-01-02 15:04:05"

// SQLiteUserRepo implements UserRepository on the local SQLite file.
type SQLiteUserRepo struct {
	db *sql.DB
}

func NewSQLiteUserRepo(db *sql.DB) *SQLiteUserRepo {
	return &SQLiteUserRepo{db: db}
}

const insertUserSQL = `INSERT INTO users (first_name, last_name, email, password_hash, portal)
VALUES (?, ?, ?, ?, ?)`

func (r *SQLiteUserRepo) Create(ctx context.Context, user domain.User) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		user.Portal.String(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicateCredential
		}
		return 0, fmt.Errorf("create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create user id: %w", err)
	}
	return id, nil
}

const selectUserColumns = `id, first_name, last_name, email, password_hash, portal, created_at`

func (r *SQLiteUserRepo) GetByEmail(ctx context.Context, email string, portal domain.Portal) (domain.User, error) {
	query := `SELECT ` + selectUserColumns + ` FROM users WHERE email = ? AND portal = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email, portal.String()))
}

func (r *SQLiteUserRepo) GetByID(ctx context.Context, id int64) (domain.User, error) {
	query := `SELECT ` + selectUserColumns + ` FROM users WHERE id = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteUserRepo) scanUser(row *sql.Row) (domain.User, error) {
	var (
		user      domain.User
		portal    string
		createdAt string
	)
	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&portal,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("scan user: %w", err)
	}

	user.Portal = domain.Portal(portal)
	if ts, err := time.Parse(createdAtLayout, createdAt); err == nil {
		user.CreatedAt = ts.UTC()
	}
	return user, nil
}

func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	return errors.As(err, &serr) && serr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
