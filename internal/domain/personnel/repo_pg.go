package personnel

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

const personCols = `id, first_name, last_name, title, email, phone, role, password_hash, active, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, p *Person) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO personnel (id, first_name, last_name, title, email, phone, role, password_hash, active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		p.ID, p.FirstName, p.LastName, p.Title, p.Email, p.Phone, p.Role, p.PasswordHash, p.Active,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Person, error) {
	return scanPerson(r.conn(ctx).QueryRow(ctx,
		`SELECT `+personCols+` FROM personnel WHERE id = $1`, id))
}

func (r *repoPG) GetByEmail(ctx context.Context, email string) (*Person, error) {
	return scanPerson(r.conn(ctx).QueryRow(ctx,
		`SELECT `+personCols+` FROM personnel WHERE lower(email) = lower($1)`, email))
}

func (r *repoPG) Update(ctx context.Context, p *Person) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE personnel SET first_name=$2, last_name=$3, title=$4, email=$5, phone=$6,
			role=$7, password_hash=$8, active=$9, updated_at=now()
		WHERE id = $1`,
		p.ID, p.FirstName, p.LastName, p.Title, p.Email, p.Phone, p.Role, p.PasswordHash, p.Active,
	)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM personnel WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, activeOnly bool, limit, offset int) ([]*Person, int, error) {
	where := ""
	if activeOnly {
		where = " WHERE active"
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM personnel`+where).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := fmt.Sprintf(`SELECT %s FROM personnel%s ORDER BY last_name, first_name LIMIT $1 OFFSET $2`, personCols, where)
	rows, err := r.conn(ctx).Query(ctx, q, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var people []*Person
	for rows.Next() {
		var p Person
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Title, &p.Email, &p.Phone,
			&p.Role, &p.PasswordHash, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		people = append(people, &p)
	}
	return people, total, nil
}

func (r *repoPG) GetPermissions(ctx context.Context, personnelID uuid.UUID) ([]string, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT permission_key FROM personnel_permission WHERE personnel_id = $1 ORDER BY permission_key`, personnelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func (r *repoPG) ReplacePermissions(ctx context.Context, personnelID uuid.UUID, keys []string) error {
	return db.WithTx(ctx, r.pool, func(ctx context.Context) error {
		if _, err := r.conn(ctx).Exec(ctx,
			`DELETE FROM personnel_permission WHERE personnel_id = $1`, personnelID); err != nil {
			return err
		}
		for _, key := range keys {
			if _, err := r.conn(ctx).Exec(ctx,
				`INSERT INTO personnel_permission (personnel_id, permission_key) VALUES ($1,$2)`,
				personnelID, key); err != nil {
				return err
			}
		}
		return nil
	})
}

func scanPerson(row pgx.Row) (*Person, error) {
	var p Person
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Title, &p.Email, &p.Phone,
		&p.Role, &p.PasswordHash, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
