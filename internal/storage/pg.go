package storage

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PG keeps client state in Postgres so several front desk terminals can
// share one signed in session. namespace separates terminals/profiles.
type PG struct {
	pool      *pgxpool.Pool
	namespace string
}

func NewPG(pool *pgxpool.Pool, namespace string) *PG {
	return &PG{pool: pool, namespace: namespace}
}

func (p *PG) Get(ctx context.Context, key string) (string, bool, error) {
	row := p.pool.QueryRow(ctx, `
		SELECT value FROM client_storage WHERE namespace = $1 AND key = $2
	`, p.namespace, key)
	var v string
	if err := row.Scan(&v); err != nil {
		if err == pgx.ErrNoRows {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}

func (p *PG) Set(ctx context.Context, key, value string) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO client_storage (namespace, key, value, updated_at)
		VALUES ($1,$2,$3,now())
		ON CONFLICT (namespace, key) DO UPDATE SET
		  value=$3, updated_at=now()
	`, p.namespace, key, value)
	return err
}

func (p *PG) Remove(ctx context.Context, key string) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM client_storage WHERE namespace = $1 AND key = $2`, p.namespace, key)
	return err
}
