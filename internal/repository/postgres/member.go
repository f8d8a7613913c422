package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rosterlab/memberd/internal/model"
)

var _ model.MemberStore = (*MemberRepository)(nil)

// uniqueViolation is the Postgres error code raised when an insert loses
// the race on the members email unique constraint.
const uniqueViolation = "23505"

// MemberRepository persists members in Postgres. The email unique
// constraint in the schema, not any code path, is the authority for
// uniqueness: the second of two racing inserts fails atomically here.
type MemberRepository struct {
	db *Connection
}

func NewMemberRepository(db *Connection) *MemberRepository {
	return &MemberRepository{
		db: db,
	}
}

// Create inserts a member row and returns it with the generated ID.
// Duplicate emails map to model.ErrDuplicateEmail.
func (r *MemberRepository) Create(ctx context.Context, member model.Member) (model.Member, error) {
	query := `INSERT INTO members (first_name, last_name, email, password_hash, is_admin)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, first_name, last_name, email, password_hash, is_admin, created_at, updated_at`

	var saved model.Member
	err := r.db.QueryRow(ctx, query,
		member.FirstName, member.LastName, member.Email, member.PasswordHash, member.IsAdmin,
	).Scan(
		&saved.ID, &saved.FirstName, &saved.LastName, &saved.Email,
		&saved.PasswordHash, &saved.IsAdmin, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.Member{}, model.ErrDuplicateEmail
		}
		return model.Member{}, fmt.Errorf("failed to create member: %w", err)
	}

	return saved, nil
}

func (r *MemberRepository) GetByEmail(ctx context.Context, email string) (model.Member, error) {
	query := `SELECT id, first_name, last_name, email, password_hash, is_admin, created_at, updated_at
			  FROM members WHERE email = $1`

	member, err := r.scanOne(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Member{}, model.ErrNotFound
		}
		return model.Member{}, fmt.Errorf("failed to get member by email: %w", err)
	}

	return member, nil
}

func (r *MemberRepository) GetByID(ctx context.Context, id int64) (model.Member, error) {
	query := `SELECT id, first_name, last_name, email, password_hash, is_admin, created_at, updated_at
			  FROM members WHERE id = $1`

	member, err := r.scanOne(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Member{}, model.ErrNotFound
		}
		return model.Member{}, fmt.Errorf("failed to get member by id: %w", err)
	}

	return member, nil
}

// UpdateProfile updates the display fields of a member row. Email, password
// hash and the admin flag are not touched by this path.
func (r *MemberRepository) UpdateProfile(ctx context.Context, id int64, firstName, lastName string) (model.Member, error) {
	query := `UPDATE members SET first_name = $2, last_name = $3, updated_at = now()
			  WHERE id = $1
			  RETURNING id, first_name, last_name, email, password_hash, is_admin, created_at, updated_at`

	member, err := r.scanOne(r.db.QueryRow(ctx, query, id, firstName, lastName))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Member{}, model.ErrNotFound
		}
		return model.Member{}, fmt.Errorf("failed to update member profile: %w", err)
	}

	return member, nil
}

// List returns member rows visible under the given scope. The scope is the
// policy engine's row predicate pushed into the query, so out-of-scope rows
// are absent from the result rather than rejected.
func (r *MemberRepository) List(ctx context.Context, scope model.AccessScope) ([]model.Member, error) {
	query := `SELECT id, first_name, last_name, email, password_hash, is_admin, created_at, updated_at
			  FROM members
			  WHERE ($1::bigint IS NULL OR id = $1)
			  ORDER BY id`

	rows, err := r.db.Query(ctx, query, scope.MemberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		var m model.Member
		if err := rows.Scan(
			&m.ID, &m.FirstName, &m.LastName, &m.Email,
			&m.PasswordHash, &m.IsAdmin, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read member rows: %w", err)
	}

	return members, nil
}

func (r *MemberRepository) scanOne(row pgx.Row) (model.Member, error) {
	var m model.Member
	err := row.Scan(
		&m.ID, &m.FirstName, &m.LastName, &m.Email,
		&m.PasswordHash, &m.IsAdmin, &m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}
