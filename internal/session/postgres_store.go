package session

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// PostgresStore persists sessions in a relational table. Timestamps
// are kept in the clock display layout, same as every other backend.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const sessionColumns = `
	session_id, email, nickname,
	client_ip, client_mac,
	server_ip, server_mac,
	status, created_at, last_accessed, updated_at
`

func (p *PostgresStore) Create(ctx context.Context, s Session) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO sessions (`+sessionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		s.SessionID, s.Email, s.Nickname,
		s.ClientInfo.IP, s.ClientInfo.MAC,
		s.ServerInfo.IP, s.ServerInfo.MAC,
		string(s.Status), s.CreatedAt, s.LastAccessed, s.UpdatedAt,
	)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return ErrDuplicateID
	}
	return err
}

func (p *PostgresStore) FindByID(ctx context.Context, sessionID string) (*Session, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT `+sessionColumns+`
		FROM sessions
		WHERE session_id = $1`,
		sessionID,
	)

	s, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (p *PostgresStore) FindAll(ctx context.Context, status Status) ([]Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions`
	args := []any{}
	if status != StatusAny {
		query += ` WHERE status = $1`
		args = append(args, string(status))
	}

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (p *PostgresStore) Save(ctx context.Context, s Session) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO sessions (`+sessionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (session_id) DO UPDATE SET
			email = EXCLUDED.email,
			nickname = EXCLUDED.nickname,
			client_ip = EXCLUDED.client_ip,
			client_mac = EXCLUDED.client_mac,
			server_ip = EXCLUDED.server_ip,
			server_mac = EXCLUDED.server_mac,
			status = EXCLUDED.status,
			last_accessed = EXCLUDED.last_accessed,
			updated_at = EXCLUDED.updated_at`,
		s.SessionID, s.Email, s.Nickname,
		s.ClientInfo.IP, s.ClientInfo.MAC,
		s.ServerInfo.IP, s.ServerInfo.MAC,
		string(s.Status), s.CreatedAt, s.LastAccessed, s.UpdatedAt,
	)
	return err
}

func (p *PostgresStore) DeleteAll(ctx context.Context) (int64, error) {
	res, err := p.db.ExecContext(ctx, `DELETE FROM sessions`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*Session, error) {
	var s Session
	var status string
	err := row.Scan(
		&s.SessionID, &s.Email, &s.Nickname,
		&s.ClientInfo.IP, &s.ClientInfo.MAC,
		&s.ServerInfo.IP, &s.ServerInfo.MAC,
		&status, &s.CreatedAt, &s.LastAccessed, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Status = Status(status)
	return &s, nil
}
