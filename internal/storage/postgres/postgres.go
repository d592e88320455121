package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"storefront/internal/config"
	"storefront/internal/models"
	"storefront/internal/storage"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Storage struct {
	DB *sql.DB
}

func InitDB(dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	return Open(connStr)
}

// Open connects with a lib/pq connection string and applies pending
// migrations.
func Open(connStr string) (*Storage, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Storage{DB: db}, nil
}

func migrate(db *sql.DB) error {
	const op = "storage.postgres.migrate"

	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := goose.Up(db, "migrations"); err != nil && !errors.Is(err, goose.ErrNoNextVersion) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

const productColumns = `id, name, description, category, image, images, new_price, old_price, available, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (*models.Product, error) {
	var p models.Product

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Category,
		&p.Image,
		&p.Images,
		&p.NewPrice,
		&p.OldPrice,
		&p.Available,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (s *Storage) SaveProduct(ctx context.Context, p models.Product) (*models.Product, error) {
	const op = "storage.postgres.SaveProduct"

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	query := `
        INSERT INTO products (id, name, description, category, image, images, new_price, old_price, available)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING ` + productColumns

	saved, err := scanProduct(s.DB.QueryRowContext(ctx, query,
		p.ID,
		p.Name,
		p.Description,
		p.Category,
		p.Image,
		p.Images,
		p.NewPrice,
		p.OldPrice,
		p.Available,
	))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return saved, nil
}

func (s *Storage) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	const op = "storage.postgres.GetProduct"

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrProductNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

// ListProducts returns one page of products, newest first, and the number
// of products matching the filter. An empty category matches all.
func (s *Storage) ListProducts(ctx context.Context, category string, limit, offset int) ([]models.Product, int, error) {
	const op = "storage.postgres.ListProducts"

	var total int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE $1 = '' OR category = $1`, category,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: count: %w", op, err)
	}

	query := `
        SELECT ` + productColumns + `
        FROM products
        WHERE $1 = '' OR category = $1
        ORDER BY created_at DESC, id
        LIMIT $2 OFFSET $3`

	rows, err := s.DB.QueryContext(ctx, query, category, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	products := make([]models.Product, 0, limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: scan: %w", op, err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return products, total, nil
}

// DeleteProduct removes a product and returns it as it was stored, so the
// caller can clean up its derivatives.
func (s *Storage) DeleteProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	const op = "storage.postgres.DeleteProduct"

	query := `DELETE FROM products WHERE id = $1 RETURNING ` + productColumns

	p, err := scanProduct(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrProductNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

// ReferencedImages returns the derivative set of every product.
func (s *Storage) ReferencedImages(ctx context.Context) ([]models.ImageDerivativeSet, error) {
	const op = "storage.postgres.ReferencedImages"

	rows, err := s.DB.QueryContext(ctx, `SELECT images, image FROM products`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var sets []models.ImageDerivativeSet
	for rows.Next() {
		var (
			set   models.ImageDerivativeSet
			image string
		)
		if err := rows.Scan(&set, &image); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		if set.Primary == "" {
			set.Primary = image
		}
		sets = append(sets, set)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return sets, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	const op = "storage.postgres.Ping"

	if err := s.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
