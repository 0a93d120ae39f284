package appointment

import (
	"context"
	"time"

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

const aptCols = `id, client_id, personnel_id, service_name, starts_at, ends_at,
	status, fee, payment_status, notes, created_at, updated_at`

func (r *repoPG) Create(ctx context.Context, apt *Appointment) error {
	apt.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO appointment (
			id, client_id, personnel_id, service_name, starts_at, ends_at,
			status, fee, payment_status, notes
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		apt.ID, apt.ClientID, apt.PersonnelID, apt.ServiceName, apt.StartsAt, apt.EndsAt,
		apt.Status, apt.Fee, apt.PaymentStatus, apt.Notes,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return scanApt(r.conn(ctx).QueryRow(ctx, `SELECT `+aptCols+` FROM appointment WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, apt *Appointment) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointment SET
			client_id=$2, personnel_id=$3, service_name=$4, starts_at=$5, ends_at=$6,
			status=$7, fee=$8, payment_status=$9, notes=$10, updated_at=NOW()
		WHERE id = $1`,
		apt.ID, apt.ClientID, apt.PersonnelID, apt.ServiceName, apt.StartsAt, apt.EndsAt,
		apt.Status, apt.Fee, apt.PaymentStatus, apt.Notes,
	)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM appointment WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByRange(ctx context.Context, from, to time.Time) ([]*Appointment, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+aptCols+` FROM appointment
		 WHERE starts_at < $2 AND ends_at > $1
		 ORDER BY starts_at`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	apts, _, err := collectApts(rows, 0)
	return apts, err
}

func (r *repoPG) ListByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM appointment WHERE client_id = $1`, clientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+aptCols+` FROM appointment WHERE client_id = $1 ORDER BY starts_at DESC LIMIT $2 OFFSET $3`,
		clientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectApts(rows, total)
}

func (r *repoPG) ListOverlapping(ctx context.Context, personnelID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*Appointment, error) {
	query := `SELECT ` + aptCols + ` FROM appointment
		WHERE personnel_id = $1 AND status NOT IN ('cancelled', 'no-show')
		AND starts_at < $3 AND ends_at > $2`
	args := []interface{}{personnelID, start, end}
	if excludeID != nil {
		query += ` AND id <> $4`
		args = append(args, *excludeID)
	}
	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	apts, _, err := collectApts(rows, 0)
	return apts, err
}

func (r *repoPG) CreateBlockedTime(ctx context.Context, bt *BlockedTime) error {
	bt.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO blocked_time (id, personnel_id, starts_at, ends_at, reason, recurring)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		bt.ID, bt.PersonnelID, bt.StartsAt, bt.EndsAt, bt.Reason, bt.Recurring,
	)
	return err
}

func (r *repoPG) DeleteBlockedTime(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM blocked_time WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListBlockedTimes(ctx context.Context, personnelID uuid.UUID) ([]*BlockedTime, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, personnel_id, starts_at, ends_at, reason, recurring, created_at
		FROM blocked_time WHERE personnel_id = $1 ORDER BY starts_at`, personnelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []*BlockedTime
	for rows.Next() {
		var b BlockedTime
		if err := rows.Scan(&b.ID, &b.PersonnelID, &b.StartsAt, &b.EndsAt, &b.Reason, &b.Recurring, &b.CreatedAt); err != nil {
			return nil, err
		}
		blocks = append(blocks, &b)
	}
	return blocks, nil
}

func scanApt(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(
		&a.ID, &a.ClientID, &a.PersonnelID, &a.ServiceName, &a.StartsAt, &a.EndsAt,
		&a.Status, &a.Fee, &a.PaymentStatus, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func collectApts(rows pgx.Rows, total int) ([]*Appointment, int, error) {
	var apts []*Appointment
	for rows.Next() {
		var a Appointment
		err := rows.Scan(
			&a.ID, &a.ClientID, &a.PersonnelID, &a.ServiceName, &a.StartsAt, &a.EndsAt,
			&a.Status, &a.Fee, &a.PaymentStatus, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		apts = append(apts, &a)
	}
	return apts, total, nil
}
