package assessment

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

const assignCols = `id, client_id, assigned_by, instrument, status, due_at, assigned_at, completed_at`

func (r *repoPG) CreateAssignment(ctx context.Context, a *Assignment) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO assessment_assignment (id, client_id, assigned_by, instrument, status, due_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		a.ID, a.ClientID, a.AssignedBy, a.Instrument, a.Status, a.DueAt,
	)
	return err
}

func (r *repoPG) GetAssignment(ctx context.Context, id uuid.UUID) (*Assignment, error) {
	return scanAssignment(r.conn(ctx).QueryRow(ctx,
		`SELECT `+assignCols+` FROM assessment_assignment WHERE id = $1`, id))
}

func (r *repoPG) UpdateAssignment(ctx context.Context, a *Assignment) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE assessment_assignment SET status=$2, due_at=$3, completed_at=$4 WHERE id = $1`,
		a.ID, a.Status, a.DueAt, a.CompletedAt,
	)
	return err
}

func (r *repoPG) ListAssignmentsByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*Assignment, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM assessment_assignment WHERE client_id = $1`, clientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+assignCols+` FROM assessment_assignment WHERE client_id = $1 ORDER BY assigned_at DESC LIMIT $2 OFFSET $3`,
		clientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var assigns []*Assignment
	for rows.Next() {
		var a Assignment
		if err := rows.Scan(&a.ID, &a.ClientID, &a.AssignedBy, &a.Instrument, &a.Status, &a.DueAt, &a.AssignedAt, &a.CompletedAt); err != nil {
			return nil, 0, err
		}
		assigns = append(assigns, &a)
	}
	return assigns, total, nil
}

const resultCols = `id, assignment_id, client_id, instrument, total_score, severity,
	interpretation, scales, global_indices, raw_responses, gender, ai_analysis, scored_at`

func (r *repoPG) CreateResult(ctx context.Context, res *Result) error {
	res.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO assessment_result (
			id, assignment_id, client_id, instrument, total_score, severity,
			interpretation, scales, global_indices, raw_responses, gender, ai_analysis
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		res.ID, res.AssignmentID, res.ClientID, res.Instrument, res.TotalScore, res.Severity,
		res.Interpretation, res.Scales, res.GlobalIndices, res.RawResponses, res.Gender, res.AIAnalysis,
	)
	return err
}

func (r *repoPG) GetResult(ctx context.Context, id uuid.UUID) (*Result, error) {
	return scanResult(r.conn(ctx).QueryRow(ctx,
		`SELECT `+resultCols+` FROM assessment_result WHERE id = $1`, id))
}

func (r *repoPG) UpdateResult(ctx context.Context, res *Result) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE assessment_result SET ai_analysis=$2 WHERE id = $1`,
		res.ID, res.AIAnalysis,
	)
	return err
}

func (r *repoPG) ListResultsByClient(ctx context.Context, clientID uuid.UUID, limit, offset int) ([]*Result, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM assessment_result WHERE client_id = $1`, clientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+resultCols+` FROM assessment_result WHERE client_id = $1 ORDER BY scored_at DESC LIMIT $2 OFFSET $3`,
		clientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectResults(rows, total)
}

func (r *repoPG) ListAllResults(ctx context.Context) ([]*Result, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+resultCols+` FROM assessment_result ORDER BY scored_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	results, _, err := collectResults(rows, 0)
	return results, err
}

func scanAssignment(row pgx.Row) (*Assignment, error) {
	var a Assignment
	err := row.Scan(&a.ID, &a.ClientID, &a.AssignedBy, &a.Instrument, &a.Status, &a.DueAt, &a.AssignedAt, &a.CompletedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func scanResult(row pgx.Row) (*Result, error) {
	var res Result
	err := row.Scan(
		&res.ID, &res.AssignmentID, &res.ClientID, &res.Instrument, &res.TotalScore, &res.Severity,
		&res.Interpretation, &res.Scales, &res.GlobalIndices, &res.RawResponses, &res.Gender, &res.AIAnalysis, &res.ScoredAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func collectResults(rows pgx.Rows, total int) ([]*Result, int, error) {
	var results []*Result
	for rows.Next() {
		var res Result
		err := rows.Scan(
			&res.ID, &res.AssignmentID, &res.ClientID, &res.Instrument, &res.TotalScore, &res.Severity,
			&res.Interpretation, &res.Scales, &res.GlobalIndices, &res.RawResponses, &res.Gender, &res.AIAnalysis, &res.ScoredAt,
		)
		if err != nil {
			return nil, 0, err
		}
		results = append(results, &res)
	}
	return results, total, nil
}
