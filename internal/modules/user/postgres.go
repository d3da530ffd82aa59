package user

import (
	"context"
	"database/sql"
)

type postgresRepository struct{ db *sql.DB }

// NewPostgresRepository creates a PostgreSQL profile repository. Unlike the
// Firestore backend it also persists the bcrypt hash, which the local
// identity provider verifies at sign-in.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, p *Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (uid, email, username, name, role, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.UID, p.Email, p.Username, p.Name, p.Role, p.PasswordHash)
	return err
}

func (r *postgresRepository) GetByUID(ctx context.Context, uid string) (*Profile, error) {
	return r.scan(r.db.QueryRowContext(ctx, `
		SELECT uid, email, username, name, role, password_hash
		FROM users WHERE uid = $1`, uid))
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*Profile, error) {
	return r.scan(r.db.QueryRowContext(ctx, `
		SELECT uid, email, username, name, role, password_hash
		FROM users WHERE email = $1`, email))
}

func (r *postgresRepository) List(ctx context.Context) ([]*Profile, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT uid, email, username, name, role, password_hash
		FROM users ORDER BY role`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var profiles []*Profile
	for rows.Next() {
		p, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *postgresRepository) Delete(ctx context.Context, uid string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE uid = $1`, uid)
	return err
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func (r *postgresRepository) scan(row rowScanner) (*Profile, error) {
	p := &Profile{}
	if err := row.Scan(&p.UID, &p.Email, &p.Username, &p.Name, &p.Role, &p.PasswordHash); err != nil {
		return nil, err
	}
	return p, nil
}
