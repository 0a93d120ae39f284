package client

import (
	"context"
	"fmt"

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

const clientCols = `id, first_name, last_name, national_id, email, phone,
	birth_date, gender, referral_source, status, notes, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, cl *Client) error {
	cl.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO client (
			id, first_name, last_name, national_id, email, phone,
			birth_date, gender, referral_source, status, notes
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		cl.ID, cl.FirstName, cl.LastName, cl.NationalID, cl.Email, cl.Phone,
		cl.BirthDate, cl.Gender, cl.ReferralSource, cl.Status, cl.Notes,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Client, error) {
	return scanClient(r.conn(ctx).QueryRow(ctx, `SELECT `+clientCols+` FROM client WHERE id = $1`, id))
}

func (r *repoPG) GetByNationalID(ctx context.Context, nationalID string) (*Client, error) {
	return scanClient(r.conn(ctx).QueryRow(ctx,
		`SELECT `+clientCols+` FROM client WHERE national_id = $1`, nationalID))
}

func (r *repoPG) Update(ctx context.Context, cl *Client) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE client SET
			first_name=$2, last_name=$3, national_id=$4, email=$5, phone=$6,
			birth_date=$7, gender=$8, referral_source=$9, status=$10, notes=$11,
			updated_at=NOW()
		WHERE id = $1`,
		cl.ID, cl.FirstName, cl.LastName, cl.NationalID, cl.Email, cl.Phone,
		cl.BirthDate, cl.Gender, cl.ReferralSource, cl.Status, cl.Notes,
	)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM client WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, status string, limit, offset int) ([]*Client, int, error) {
	where := ``
	args := []interface{}{}
	if status != "" {
		where = ` WHERE status = $1`
		args = append(args, status)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM client`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	n := len(args)
	query := fmt.Sprintf(`SELECT `+clientCols+` FROM client`+where+
		` ORDER BY last_name, first_name LIMIT $%d OFFSET $%d`, n+1, n+2)
	rows, err := r.conn(ctx).Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectClients(rows, total)
}

func (r *repoPG) Search(ctx context.Context, query string, limit, offset int) ([]*Client, int, error) {
	pattern := "%" + query + "%"
	cond := ` WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR phone LIKE $1`

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM client`+cond, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+clientCols+` FROM client`+cond+` ORDER BY last_name, first_name LIMIT $2 OFFSET $3`,
		pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectClients(rows, total)
}

func scanClient(row pgx.Row) (*Client, error) {
	var c Client
	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.NationalID, &c.Email, &c.Phone,
		&c.BirthDate, &c.Gender, &c.ReferralSource, &c.Status, &c.Notes,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func collectClients(rows pgx.Rows, total int) ([]*Client, int, error) {
	var clients []*Client
	for rows.Next() {
		var c Client
		err := rows.Scan(
			&c.ID, &c.FirstName, &c.LastName, &c.NationalID, &c.Email, &c.Phone,
			&c.BirthDate, &c.Gender, &c.ReferralSource, &c.Status, &c.Notes,
			&c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		clients = append(clients, &c)
	}
	return clients, total, nil
}
