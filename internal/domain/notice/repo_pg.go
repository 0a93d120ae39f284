package notice

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinic/clinic/internal/platform/db"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const noticeCols = `id, personnel_id, type, title, body, read, created_at`

func (r *repoPG) Create(ctx context.Context, n *Notice) error {
	n.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO notice (id, personnel_id, type, title, body)
		VALUES ($1,$2,$3,$4,$5)`,
		n.ID, n.PersonnelID, n.Type, n.Title, n.Body,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Notice, error) {
	var n Notice
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT `+noticeCols+` FROM notice WHERE id = $1`, id).Scan(
		&n.ID, &n.PersonnelID, &n.Type, &n.Title, &n.Body, &n.Read, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *repoPG) MarkRead(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `UPDATE notice SET read = true WHERE id = $1`, id)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM notice WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByPersonnel(ctx context.Context, personnelID uuid.UUID, unreadOnly bool, limit, offset int) ([]*Notice, int, error) {
	where := `WHERE personnel_id = $1`
	if unreadOnly {
		where += ` AND NOT read`
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM notice `+where, personnelID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+noticeCols+` FROM notice `+where+` ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		personnelID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var notices []*Notice
	for rows.Next() {
		var n Notice
		if err := rows.Scan(&n.ID, &n.PersonnelID, &n.Type, &n.Title, &n.Body, &n.Read, &n.CreatedAt); err != nil {
			return nil, 0, err
		}
		notices = append(notices, &n)
	}
	return notices, total, nil
}
