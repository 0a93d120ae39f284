package anamnesis

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

const formCols = `id, client_id, filled_by, complaint, history, family, medical, education_work, status, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, f *Form) error {
	f.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO anamnesis (id, client_id, filled_by, complaint, history, family, medical, education_work, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		f.ID, f.ClientID, f.FilledBy, f.Complaint, f.History, f.Family, f.Medical, f.EducationWork, f.Status,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Form, error) {
	return scanForm(r.conn(ctx).QueryRow(ctx,
		`SELECT `+formCols+` FROM anamnesis WHERE id = $1`, id))
}

func (r *repoPG) GetByClient(ctx context.Context, clientID uuid.UUID) (*Form, error) {
	return scanForm(r.conn(ctx).QueryRow(ctx,
		`SELECT `+formCols+` FROM anamnesis WHERE client_id = $1 ORDER BY created_at DESC LIMIT 1`, clientID))
}

func (r *repoPG) Update(ctx context.Context, f *Form) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE anamnesis SET complaint=$2, history=$3, family=$4, medical=$5,
			education_work=$6, status=$7, updated_at=now()
		WHERE id = $1`,
		f.ID, f.Complaint, f.History, f.Family, f.Medical, f.EducationWork, f.Status,
	)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM anamnesis WHERE id = $1`, id)
	return err
}

func scanForm(row pgx.Row) (*Form, error) {
	var f Form
	err := row.Scan(&f.ID, &f.ClientID, &f.FilledBy, &f.Complaint, &f.History, &f.Family,
		&f.Medical, &f.EducationWork, &f.Status, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
