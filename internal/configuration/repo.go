package configuration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound      = errors.New("configuration not found")
	ErrInvalidStatus = errors.New("invalid status")
)

type Repository interface {
	Create(ctx context.Context, cfg *Configuration, items []Item) error
	GetByID(ctx context.Context, id string) (*Configuration, error)
	TemplateByID(ctx context.Context, id string) (*Configuration, error)
	UserByID(ctx context.Context, id string) (*Configuration, error)
	ListTemplates(ctx context.Context, onlyPublic bool, limit, offset int) ([]Configuration, error)
	RelatedTemplates(ctx context.Context, excludeID string, limit int) ([]Configuration, error)
	Replace(ctx context.Context, cfg *Configuration, items []Item) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) (bool, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, cfg *Configuration, items []Item) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
    INSERT INTO configurations (id, name, description, total_price, is_template, is_public, status, created_at, updated_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,NOW(),NOW())
  `, cfg.ID, cfg.Name, cfg.Description, cfg.TotalPrice, cfg.IsTemplate, cfg.IsPublic, cfg.Status); err != nil {
		return err
	}

	for i, it := range items {
		if _, err := tx.Exec(ctx, `
      INSERT INTO configuration_items (configuration_id, component_id, quantity, position)
      VALUES ($1,$2,$3,$4)
    `, cfg.ID, it.ComponentID, it.Quantity, i); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// getOne fetches a configuration and its items joined with the current
// component rows. extra is appended to the WHERE clause to restrict the
// lookup to templates or user builds.
func (r *PGRepo) getOne(ctx context.Context, id, extra string) (*Configuration, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var cfg Configuration
	if err := r.db.QueryRow(ctx, `
    SELECT id, name, description, total_price::text, is_template, is_public, status, created_at, updated_at
    FROM configurations WHERE id=$1`+extra,
		id,
	).Scan(&cfg.ID, &cfg.Name, &cfg.Description, &cfg.TotalPrice, &cfg.IsTemplate, &cfg.IsPublic, &cfg.Status, &cfg.CreatedAt, &cfg.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("configuration %s: %w", id, err)
	}

	rows, err := r.db.Query(ctx, `
    SELECT i.component_id, c.name, cat.name, c.price::text, i.quantity, i.position
    FROM configuration_items i
    JOIN components c ON c.id = i.component_id
    JOIN categories cat ON cat.id = c.category_id
    WHERE i.configuration_id = $1
    ORDER BY i.position
  `, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ComponentID, &it.Name, &it.Category, &it.Price, &it.Quantity, &it.Position); err != nil {
			return nil, err
		}
		cfg.Items = append(cfg.Items, it)
	}
	return &cfg, rows.Err()
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Configuration, error) {
	return r.getOne(ctx, id, "")
}

func (r *PGRepo) TemplateByID(ctx context.Context, id string) (*Configuration, error) {
	return r.getOne(ctx, id, " AND is_template")
}

func (r *PGRepo) UserByID(ctx context.Context, id string) (*Configuration, error) {
	return r.getOne(ctx, id, " AND NOT is_template")
}

func (r *PGRepo) ListTemplates(ctx context.Context, onlyPublic bool, limit, offset int) ([]Configuration, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 50 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.db.Query(ctx, `
    SELECT id, name, description, total_price::text, is_template, is_public, status, created_at, updated_at
    FROM configurations
    WHERE is_template AND (NOT $1 OR is_public)
    ORDER BY created_at DESC LIMIT $2 OFFSET $3
  `, onlyPublic, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

// RelatedTemplates returns up to limit public templates other than
// excludeID. Selection is arbitrary, not similarity-ranked.
func (r *PGRepo) RelatedTemplates(ctx context.Context, excludeID string, limit int) ([]Configuration, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 {
		limit = 3
	}
	rows, err := r.db.Query(ctx, `
    SELECT id, name, description, total_price::text, is_template, is_public, status, created_at, updated_at
    FROM configurations
    WHERE is_template AND is_public AND id <> $1
    LIMIT $2
  `, excludeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func collect(rows pgx.Rows) ([]Configuration, error) {
	var out []Configuration
	for rows.Next() {
		var cfg Configuration
		if err := rows.Scan(&cfg.ID, &cfg.Name, &cfg.Description, &cfg.TotalPrice, &cfg.IsTemplate, &cfg.IsPublic, &cfg.Status, &cfg.CreatedAt, &cfg.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, cfg)
	}
	return out, rows.Err()
}

// Replace rewrites a configuration's header and item set in one tx.
func (r *PGRepo) Replace(ctx context.Context, cfg *Configuration, items []Item) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
    UPDATE configurations
    SET name = COALESCE(NULLIF($2,''), name),
        description = COALESCE(NULLIF($3,''), description),
        total_price = $4,
        is_public = $5,
        updated_at = NOW()
    WHERE id = $1
  `, cfg.ID, cfg.Name, cfg.Description, cfg.TotalPrice, cfg.IsPublic)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM configuration_items WHERE configuration_id=$1`, cfg.ID); err != nil {
		return err
	}
	for i, it := range items {
		if _, err := tx.Exec(ctx, `
      INSERT INTO configuration_items (configuration_id, component_id, quantity, position)
      VALUES ($1,$2,$3,$4)
    `, cfg.ID, it.ComponentID, it.Quantity, i); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id, status string) error {
	switch status {
	case StatusDraft, StatusSubmitted, StatusApproved, StatusRejected:
	default:
		return ErrInvalidStatus
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
    UPDATE configurations
    SET status = $2, updated_at = NOW()
    WHERE id = $1 AND NOT is_template
  `, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM configurations WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
