package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"news-classifier-registry/internal/core/domain"
	ports "news-classifier-registry/internal/core/ports/output"
)

type registeredModelRepo struct {
	pool *pgxpool.Pool
}

func NewRegisteredModelRepository(pool *pgxpool.Pool) ports.RegisteredModelRepository {
	return &registeredModelRepo{pool: pool}
}

const modelColumns = `
	rm.id, rm.created_at, rm.updated_at, rm.catalog, rm.schema_name, rm.name,
	rm.description, rm.state,
	(SELECT COUNT(*) FROM model_version mv WHERE mv.registered_model_id = rm.id) AS version_count
`

func (r *registeredModelRepo) Create(ctx context.Context, model *domain.RegisteredModel) error {
	query := `
		INSERT INTO registered_model
			(id, created_at, updated_at, catalog, schema_name, name, description, state)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`
	_, err := r.pool.Exec(ctx, query,
		model.ID, model.CreatedAt, model.UpdatedAt,
		model.Catalog, model.Schema, model.Name,
		model.Description, string(model.State),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrModelNameConflict
		}
		return fmt.Errorf("create registered model: %w", err)
	}
	return nil
}

func (r *registeredModelRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.RegisteredModel, error) {
	query := fmt.Sprintf(`SELECT %s FROM registered_model rm WHERE rm.id = $1`, modelColumns)

	m, err := r.scanModel(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrModelNotFound
		}
		return nil, fmt.Errorf("get registered model by id: %w", err)
	}

	if err := r.loadAliases(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *registeredModelRepo) GetByName(ctx context.Context, catalog, schema, name string) (*domain.RegisteredModel, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM registered_model rm
		WHERE rm.catalog = $1 AND rm.schema_name = $2 AND rm.name = $3
	`, modelColumns)

	m, err := r.scanModel(r.pool.QueryRow(ctx, query, catalog, schema, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrModelNotFound
		}
		return nil, fmt.Errorf("get registered model by name: %w", err)
	}

	if err := r.loadAliases(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *registeredModelRepo) Update(ctx context.Context, model *domain.RegisteredModel) error {
	query := `
		UPDATE registered_model
		SET description=$1, state=$2, updated_at=NOW()
		WHERE id=$3
	`
	result, err := r.pool.Exec(ctx, query, model.Description, string(model.State), model.ID)
	if err != nil {
		return fmt.Errorf("update registered model: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrModelNotFound
	}
	return nil
}

func (r *registeredModelRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM registered_model WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete registered model: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrModelNotFound
	}
	return nil
}

func (r *registeredModelRepo) List(ctx context.Context, filter ports.ListFilter) ([]*domain.RegisteredModel, int, error) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filter.Catalog != "" {
		conditions = append(conditions, fmt.Sprintf("rm.catalog = $%d", argPos))
		args = append(args, filter.Catalog)
		argPos++
	}
	if filter.Schema != "" {
		conditions = append(conditions, fmt.Sprintf("rm.schema_name = $%d", argPos))
		args = append(args, filter.Schema)
		argPos++
	}
	if filter.State != "" {
		conditions = append(conditions, fmt.Sprintf("rm.state = $%d", argPos))
		args = append(args, filter.State)
		argPos++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("rm.name ILIKE $%d", argPos))
		args = append(args, "%"+filter.Search+"%")
		argPos++
	}

	whereClause := "1=1"
	if len(conditions) > 0 {
		whereClause = strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM registered_model rm WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count registered models: %w", err)
	}

	orderBy := "rm.created_at DESC"
	if filter.SortBy == "name" {
		dir := "DESC"
		if filter.Order == "asc" {
			dir = "ASC"
		}
		orderBy = fmt.Sprintf("rm.name %s", dir)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM registered_model rm
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, modelColumns, whereClause, orderBy, argPos, argPos+1)

	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list registered models: %w", err)
	}
	defer rows.Close()

	var models []*domain.RegisteredModel
	for rows.Next() {
		m, err := r.scanModel(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan registered model row: %w", err)
		}
		models = append(models, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate registered model rows: %w", err)
	}

	for _, m := range models {
		if err := r.loadAliases(ctx, m); err != nil {
			return nil, 0, err
		}
	}

	return models, total, nil
}

func (r *registeredModelRepo) scanModel(row pgx.Row) (*domain.RegisteredModel, error) {
	m := &domain.RegisteredModel{}
	var state string

	err := row.Scan(
		&m.ID, &m.CreatedAt, &m.UpdatedAt, &m.Catalog, &m.Schema, &m.Name,
		&m.Description, &state, &m.VersionCount,
	)
	if err != nil {
		return nil, err
	}
	m.State = domain.ModelState(state)
	return m, nil
}

func (r *registeredModelRepo) loadAliases(ctx context.Context, m *domain.RegisteredModel) error {
	rows, err := r.pool.Query(ctx,
		`SELECT alias, version FROM model_alias WHERE registered_model_id = $1`, m.ID)
	if err != nil {
		return fmt.Errorf("load model aliases: %w", err)
	}
	defer rows.Close()

	aliases := map[domain.Alias]int{}
	for rows.Next() {
		var alias string
		var version int
		if err := rows.Scan(&alias, &version); err != nil {
			return fmt.Errorf("scan model alias row: %w", err)
		}
		aliases[domain.Alias(alias)] = version
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate model alias rows: %w", err)
	}

	if len(aliases) > 0 {
		m.Aliases = aliases
	}
	return nil
}
