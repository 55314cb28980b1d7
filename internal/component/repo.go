// Package component provides the repository interface and PostgreSQL
// implementation for the catalog (components + categories).
package component

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound         = errors.New("component not found")
	ErrCategoryNotFound = errors.New("category not found")
)

type Query struct {
	CategorySlug string
	Q            string
	Limit        int
	Offset       int
}

type Repository interface {
	Create(ctx context.Context, c *Component) error
	GetByID(ctx context.Context, id string) (*Component, error)
	List(ctx context.Context, q Query) ([]Component, error)
	RelatedInCategory(ctx context.Context, categoryID, excludeID string, limit int) ([]Component, error)
	Update(ctx context.Context, c *Component, updatePrice bool) error
	Delete(ctx context.Context, id string) (bool, error)
	Categories(ctx context.Context) ([]Category, error)
	CategoryBySlug(ctx context.Context, slug string) (*Category, error)
	CategoryByID(ctx context.Context, id string) (*Category, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const componentCols = `
	c.id, c.name, c.description, c.long_description, c.price::text, c.discount_price::text,
	c.image_url, c.stock, c.category_id, c.spec, c.created_at, c.updated_at,
	cat.id, cat.name, cat.slug, cat.type`

// scanComponent reads one joined row and decodes the spec sub-record with
// the category slug as the kind.
func scanComponent(row interface{ Scan(dest ...any) error }) (*Component, error) {
	var (
		c   Component
		cat Category
		raw []byte
	)
	if err := row.Scan(
		&c.ID, &c.Name, &c.Description, &c.LongDescription, &c.Price, &c.DiscountPrice,
		&c.ImageURL, &c.Stock, &c.CategoryID, &raw, &c.CreatedAt, &c.UpdatedAt,
		&cat.ID, &cat.Name, &cat.Slug, &cat.Type,
	); err != nil {
		return nil, err
	}
	spec, err := DecodeSpec(Kind(cat.Slug), raw)
	if err != nil {
		return nil, err
	}
	c.Category = &cat
	c.Spec = spec
	return &c, nil
}

func (r *PGRepo) Create(ctx context.Context, c *Component) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var raw any
	if c.Spec != nil {
		raw = c.Spec
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO components (id, name, description, long_description, price, discount_price, image_url, stock, category_id, spec, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,NOW(),NOW())
	`, c.ID, c.Name, c.Description, c.LongDescription, c.Price, c.DiscountPrice, c.ImageURL, c.Stock, c.CategoryID, raw)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Component, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	c, err := scanComponent(r.db.QueryRow(ctx, `
		SELECT `+componentCols+`
		FROM components c
		JOIN categories cat ON cat.id = c.category_id
		WHERE c.id = $1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		// anything else (decode failure, transient DB error) is not a miss
		// and must surface, never turn into a 404
		return nil, fmt.Errorf("component %s: %w", id, err)
	}
	return c, nil
}

func (r *PGRepo) List(ctx context.Context, q Query) ([]Component, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// The in-memory filter engine works on what this returns, so the scan is
	// capped at 50 rows per request.
	limit := q.Limit
	if limit <= 0 || limit > 50 {
		limit = 50
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	search := strings.TrimSpace(q.Q)

	rows, err := r.db.Query(ctx, `
		SELECT `+componentCols+`
		FROM components c
		JOIN categories cat ON cat.id = c.category_id
		WHERE ($1 = '' OR cat.slug = $1)
		  AND ($2 = '' OR c.name ILIKE '%'||$2||'%' OR c.description ILIKE '%'||$2||'%')
		ORDER BY c.created_at DESC
		LIMIT $3 OFFSET $4
	`, q.CategorySlug, search, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Component
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *PGRepo) RelatedInCategory(ctx context.Context, categoryID, excludeID string, limit int) ([]Component, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 {
		limit = 3
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+componentCols+`
		FROM components c
		JOIN categories cat ON cat.id = c.category_id
		WHERE c.category_id = $1 AND c.id <> $2
		LIMIT $3
	`, categoryID, excludeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Component
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, c *Component, updatePrice bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if updatePrice {
		_, err := r.db.Exec(ctx, `
			UPDATE components
			SET name = COALESCE(NULLIF($2,''), name),
			    description = COALESCE(NULLIF($3,''), description),
			    price = $4,
			    discount_price = $5,
			    stock = $6,
			    updated_at = NOW()
			WHERE id = $1
		`, c.ID, c.Name, c.Description, c.Price, c.DiscountPrice, c.Stock)
		return err
	}

	_, err := r.db.Exec(ctx, `
		UPDATE components
		SET name = COALESCE(NULLIF($2,''), name),
		    description = COALESCE(NULLIF($3,''), description),
		    stock = $4,
		    updated_at = NOW()
		WHERE id = $1
	`, c.ID, c.Name, c.Description, c.Stock)
	return err
}

func (r *PGRepo) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM components WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PGRepo) Categories(ctx context.Context) ([]Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT id, name, slug, type FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var cat Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.Type); err != nil {
			return nil, err
		}
		out = append(out, cat)
	}
	return out, rows.Err()
}

func (r *PGRepo) CategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var cat Category
	err := r.db.QueryRow(ctx, `
		SELECT id, name, slug, type FROM categories WHERE slug=$1
	`, slug).Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.Type)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("category %s: %w", slug, err)
	}
	return &cat, nil
}

func (r *PGRepo) CategoryByID(ctx context.Context, id string) (*Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var cat Category
	err := r.db.QueryRow(ctx, `
		SELECT id, name, slug, type FROM categories WHERE id=$1
	`, id).Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.Type)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("category %s: %w", id, err)
	}
	return &cat, nil
}
