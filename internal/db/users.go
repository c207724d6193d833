package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, name, email, role, COALESCE(phone, ''), COALESCE(title, ''),
	COALESCE(location, ''), COALESCE(bio, ''), COALESCE(experience, ''),
	COALESCE(education, ''), COALESCE(skills, '[]'::jsonb),
	COALESCE(password_hash, ''), password_set, resume_data IS NOT NULL, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var user User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.Phone,
		&user.Title, &user.Location, &user.Bio, &user.Experience, &user.Education,
		&user.Skills, &user.PasswordHash, &user.PasswordSet, &user.HasResume,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser creates an account and returns its ID
func (db *DB) CreateUser(ctx context.Context, name, email, phone, role string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, phone, role)
		 VALUES ($1, $2, NULLIF($3, ''), $4)
		 RETURNING id`,
		name, email, phone, role,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// GetUser retrieves an account by ID. Returns nil without error when no
// such user exists.
func (db *DB) GetUser(ctx context.Context, userID uuid.UUID) (*User, error) {
	user, err := scanUser(db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves an account by email. Returns nil without error
// when no such user exists.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	user, err := scanUser(db.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// CheckEmailExists reports whether an account with the email exists
func (db *DB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// UpdatePassword sets an account's password hash
func (db *DB) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, password_set = TRUE, updated_at = NOW()
		 WHERE id = $2`,
		passwordHash, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", userID)
	}
	return nil
}

// ProfileUpdate holds optional profile fields; nil fields are left
// unchanged.
type ProfileUpdate struct {
	Name       *string
	Phone      *string
	Title      *string
	Location   *string
	Bio        *string
	Experience *string
	Education  *string
	Skills     *[]string
}

// UpdateProfile applies a partial profile update
func (db *DB) UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) error {
	query := `UPDATE users SET updated_at = NOW()`
	args := []any{}
	argNum := 1

	if update.Name != nil {
		query += fmt.Sprintf(", name = $%d", argNum)
		args = append(args, *update.Name)
		argNum++
	}
	if update.Phone != nil {
		query += fmt.Sprintf(", phone = NULLIF($%d, '')", argNum)
		args = append(args, *update.Phone)
		argNum++
	}
	if update.Title != nil {
		query += fmt.Sprintf(", title = NULLIF($%d, '')", argNum)
		args = append(args, *update.Title)
		argNum++
	}
	if update.Location != nil {
		query += fmt.Sprintf(", location = NULLIF($%d, '')", argNum)
		args = append(args, *update.Location)
		argNum++
	}
	if update.Bio != nil {
		query += fmt.Sprintf(", bio = NULLIF($%d, '')", argNum)
		args = append(args, *update.Bio)
		argNum++
	}
	if update.Experience != nil {
		query += fmt.Sprintf(", experience = NULLIF($%d, '')", argNum)
		args = append(args, *update.Experience)
		argNum++
	}
	if update.Education != nil {
		query += fmt.Sprintf(", education = NULLIF($%d, '')", argNum)
		args = append(args, *update.Education)
		argNum++
	}
	if update.Skills != nil {
		query += fmt.Sprintf(", skills = $%d", argNum)
		args = append(args, StringArray(*update.Skills))
		argNum++
	}

	query += fmt.Sprintf(" WHERE id = $%d", argNum)
	args = append(args, userID)

	result, err := db.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", userID)
	}
	return nil
}

// SaveResume stores an account's resume document, replacing any previous
// one
func (db *DB) SaveResume(ctx context.Context, userID uuid.UUID, filename, mime string, data []byte) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE users SET resume_filename = $1, resume_mime = $2, resume_data = $3, updated_at = NOW()
		 WHERE id = $4`,
		filename, mime, data, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", userID)
	}
	return nil
}

// GetResume loads an account's resume. Returns nil without error when no
// resume has been uploaded.
func (db *DB) GetResume(ctx context.Context, userID uuid.UUID) (*Resume, error) {
	var resume Resume
	err := db.pool.QueryRow(ctx,
		`SELECT resume_filename, resume_mime, resume_data FROM users
		 WHERE id = $1 AND resume_data IS NOT NULL`,
		userID,
	).Scan(&resume.Filename, &resume.MIME, &resume.Data)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return &resume, nil
}

// SearchUsers finds accounts whose name or email matches the query
func (db *DB) SearchUsers(ctx context.Context, query string, limit int) ([]User, error) {
	if limit == 0 {
		limit = 20
	}

	rows, err := db.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE name ILIKE $1 OR email ILIKE $1
		 ORDER BY name ASC LIMIT $2`,
		"%"+query+"%", limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.Phone,
			&user.Title, &user.Location, &user.Bio, &user.Experience, &user.Education,
			&user.Skills, &user.PasswordHash, &user.PasswordSet, &user.HasResume,
			&user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, nil
}
