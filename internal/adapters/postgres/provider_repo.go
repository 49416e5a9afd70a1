package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/meetvasani/safar/internal/core/domain"
)

// ProviderRepo implements ports.ProviderRepository.
type ProviderRepo struct {
	db *DB
}

func NewProviderRepo(db *DB) *ProviderRepo { return &ProviderRepo{db: db} }

func (r *ProviderRepo) Create(ctx context.Context, p *domain.Provider) (*domain.Provider, error) {
	created := *p
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO providers (name, type, logo_url, contact_info, rating)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, p.Name, string(p.Type), p.LogoURL, p.ContactInfo, p.Rating).Scan(&created.ID)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *ProviderRepo) GetByID(ctx context.Context, id int) (*domain.Provider, error) {
	var p domain.Provider
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, name, type, logo_url, contact_info, rating
		FROM providers WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Type, &p.LogoURL, &p.ContactInfo, &p.Rating)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProviderRepo) List(ctx context.Context) ([]domain.Provider, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, type, logo_url, contact_info, rating
		FROM providers ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProviders(rows)
}

func (r *ProviderRepo) ListByType(ctx context.Context, t domain.TransportType) ([]domain.Provider, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, type, logo_url, contact_info, rating
		FROM providers WHERE type = $1 ORDER BY id
	`, string(t))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProviders(rows)
}

func scanProviders(rows pgx.Rows) ([]domain.Provider, error) {
	var providers []domain.Provider
	for rows.Next() {
		var p domain.Provider
		if err := rows.Scan(&p.ID, &p.Name, &p.Type, &p.LogoURL, &p.ContactInfo, &p.Rating); err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}
	return providers, rows.Err()
}
