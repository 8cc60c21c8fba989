package postgres

import (
	"context"
	"encoding/json"
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

type modelVersionRepo struct {
	pool *pgxpool.Pool
}

func NewModelVersionRepository(pool *pgxpool.Pool) ports.ModelVersionRepository {
	return &modelVersionRepo{pool: pool}
}

const versionColumns = `
	mv.id, mv.created_at, mv.updated_at, mv.registered_model_id, mv.version,
	mv.run_id, mv.provider, mv.model, mv.description, mv.status,
	mv.metrics, mv.tags,
	COALESCE(ARRAY(
		SELECT a.alias FROM model_alias a
		WHERE a.registered_model_id = mv.registered_model_id AND a.version = mv.version
		ORDER BY a.alias
	), '{}') AS aliases
`

func (r *modelVersionRepo) Create(ctx context.Context, version *domain.ModelVersion) error {
	metricsJSON, err := json.Marshal(version.Metrics)
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}
	tagsJSON, err := json.Marshal(version.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	// The version number is assigned here so registrations stay a single
	// statement; the unique constraint on (registered_model_id, version)
	// catches a concurrent insert.
	query := `
		INSERT INTO model_version
			(id, created_at, updated_at, registered_model_id, version,
			 run_id, provider, model, description, status, metrics, tags)
		VALUES ($1,$2,$3,$4,
			(SELECT COALESCE(MAX(version), 0) + 1 FROM model_version WHERE registered_model_id = $4),
			$5,$6,$7,$8,$9,$10,$11)
		RETURNING version
	`
	err = r.pool.QueryRow(ctx, query,
		version.ID, version.CreatedAt, version.UpdatedAt, version.RegisteredModelID,
		version.RunID, version.Provider, version.Model,
		version.Description, string(version.Status), metricsJSON, tagsJSON,
	).Scan(&version.Version)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrVersionConflict
		}
		return fmt.Errorf("create model version: %w", err)
	}
	return nil
}

func (r *modelVersionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ModelVersion, error) {
	query := fmt.Sprintf(`SELECT %s FROM model_version mv WHERE mv.id = $1`, versionColumns)

	v, err := scanVersion(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVersionNotFound
		}
		return nil, fmt.Errorf("get model version by id: %w", err)
	}
	return v, nil
}

func (r *modelVersionRepo) GetByNumber(ctx context.Context, modelID uuid.UUID, number int) (*domain.ModelVersion, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM model_version mv
		WHERE mv.registered_model_id = $1 AND mv.version = $2
	`, versionColumns)

	v, err := scanVersion(r.pool.QueryRow(ctx, query, modelID, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVersionNotFound
		}
		return nil, fmt.Errorf("get model version by number: %w", err)
	}
	return v, nil
}

func (r *modelVersionRepo) GetByAlias(ctx context.Context, modelID uuid.UUID, alias domain.Alias) (*domain.ModelVersion, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM model_version mv
		JOIN model_alias a
			ON a.registered_model_id = mv.registered_model_id AND a.version = mv.version
		WHERE mv.registered_model_id = $1 AND a.alias = $2
	`, versionColumns)

	v, err := scanVersion(r.pool.QueryRow(ctx, query, modelID, string(alias)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAliasNotFound
		}
		return nil, fmt.Errorf("get model version by alias: %w", err)
	}
	return v, nil
}

func (r *modelVersionRepo) Update(ctx context.Context, version *domain.ModelVersion) error {
	tagsJSON, err := json.Marshal(version.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	query := `
		UPDATE model_version
		SET description=$1, status=$2, tags=$3, updated_at=NOW()
		WHERE id=$4
	`
	result, err := r.pool.Exec(ctx, query,
		version.Description, string(version.Status), tagsJSON, version.ID)
	if err != nil {
		return fmt.Errorf("update model version: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrVersionNotFound
	}
	return nil
}

func (r *modelVersionRepo) List(ctx context.Context, filter ports.VersionListFilter) ([]*domain.ModelVersion, int, error) {
	conditions := []string{"mv.registered_model_id = $1"}
	args := []interface{}{filter.RegisteredModelID}
	argPos := 2

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("mv.status = $%d", argPos))
		args = append(args, filter.Status)
		argPos++
	}
	if filter.Alias != "" {
		conditions = append(conditions, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM model_alias a
				WHERE a.registered_model_id = mv.registered_model_id
				AND a.version = mv.version AND a.alias = $%d)`, argPos))
		args = append(args, filter.Alias)
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM model_version mv WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count model versions: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM model_version mv
		WHERE %s
		ORDER BY mv.version ASC
		LIMIT $%d OFFSET $%d
	`, versionColumns, whereClause, argPos, argPos+1)

	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list model versions: %w", err)
	}
	defer rows.Close()

	var versions []*domain.ModelVersion
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan model version row: %w", err)
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate model version rows: %w", err)
	}

	return versions, total, nil
}

func (r *modelVersionRepo) FindByAccuracyTag(ctx context.Context, modelID uuid.UUID, accuracyTag string) (*domain.ModelVersion, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM model_version mv
		WHERE mv.registered_model_id = $1 AND mv.tags->>'category_accuracy' = $2
		ORDER BY mv.version ASC
		LIMIT 1
	`, versionColumns)

	v, err := scanVersion(r.pool.QueryRow(ctx, query, modelID, accuracyTag))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVersionNotFound
		}
		return nil, fmt.Errorf("find model version by accuracy tag: %w", err)
	}
	return v, nil
}

func (r *modelVersionRepo) SetAlias(ctx context.Context, modelID uuid.UUID, alias domain.Alias, number int) error {
	query := `
		INSERT INTO model_alias (registered_model_id, alias, version, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (registered_model_id, alias)
		DO UPDATE SET version = EXCLUDED.version, updated_at = NOW()
	`
	_, err := r.pool.Exec(ctx, query, modelID, string(alias), number)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return domain.ErrVersionNotFound
		}
		return fmt.Errorf("set model alias: %w", err)
	}
	return nil
}

func (r *modelVersionRepo) DeleteAlias(ctx context.Context, modelID uuid.UUID, alias domain.Alias) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM model_alias WHERE registered_model_id = $1 AND alias = $2`,
		modelID, string(alias))
	if err != nil {
		return fmt.Errorf("delete model alias: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrAliasNotFound
	}
	return nil
}

func (r *modelVersionRepo) DeleteByModel(ctx context.Context, modelID uuid.UUID) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin purge: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM model_alias WHERE registered_model_id = $1`, modelID); err != nil {
		return 0, fmt.Errorf("purge model aliases: %w", err)
	}

	result, err := tx.Exec(ctx,
		`DELETE FROM model_version WHERE registered_model_id = $1`, modelID)
	if err != nil {
		return 0, fmt.Errorf("purge model versions: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit purge: %w", err)
	}

	return int(result.RowsAffected()), nil
}

func scanVersion(row pgx.Row) (*domain.ModelVersion, error) {
	v := &domain.ModelVersion{}
	var status string
	var metricsJSON, tagsJSON []byte
	var aliases []string

	err := row.Scan(
		&v.ID, &v.CreatedAt, &v.UpdatedAt, &v.RegisteredModelID, &v.Version,
		&v.RunID, &v.Provider, &v.Model, &v.Description, &status,
		&metricsJSON, &tagsJSON, &aliases,
	)
	if err != nil {
		return nil, err
	}
	v.Status = domain.VersionStatus(status)

	if len(metricsJSON) > 0 {
		if err := json.Unmarshal(metricsJSON, &v.Metrics); err != nil {
			return nil, fmt.Errorf("unmarshal metrics: %w", err)
		}
	}
	if len(tagsJSON) > 0 {
		if err := json.Unmarshal(tagsJSON, &v.Tags); err != nil {
			return nil, fmt.Errorf("unmarshal tags: %w", err)
		}
	}

	for _, a := range aliases {
		v.Aliases = append(v.Aliases, domain.Alias(a))
	}
	return v, nil
}
