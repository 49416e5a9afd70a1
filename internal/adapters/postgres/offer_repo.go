package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/meetvasani/safar/internal/core/domain"
)

// OfferRepo implements ports.OfferRepository. applicable_types is stored as
// a jsonb array of transport type strings.
type OfferRepo struct {
	db *DB
}

func NewOfferRepo(db *DB) *OfferRepo { return &OfferRepo{db: db} }

func (r *OfferRepo) Create(ctx context.Context, o *domain.Offer) (*domain.Offer, error) {
	types, err := json.Marshal(o.ApplicableTypes)
	if err != nil {
		return nil, err
	}

	created := *o
	err = r.db.Pool.QueryRow(ctx, `
		INSERT INTO offers (title, description, discount, valid_until, image_url, applicable_types)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, o.Title, o.Description, o.Discount, o.ValidUntil, o.ImageURL, types).Scan(&created.ID)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *OfferRepo) GetByID(ctx context.Context, id int) (*domain.Offer, error) {
	var o domain.Offer
	var types []byte
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, title, description, discount, valid_until, image_url, applicable_types
		FROM offers WHERE id = $1
	`, id).Scan(&o.ID, &o.Title, &o.Description, &o.Discount, &o.ValidUntil, &o.ImageURL, &types)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(types, &o.ApplicableTypes); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OfferRepo) List(ctx context.Context) ([]domain.Offer, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, title, description, discount, valid_until, image_url, applicable_types
		FROM offers ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offers []domain.Offer
	for rows.Next() {
		var o domain.Offer
		var types []byte
		if err := rows.Scan(&o.ID, &o.Title, &o.Description, &o.Discount,
			&o.ValidUntil, &o.ImageURL, &types); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(types, &o.ApplicableTypes); err != nil {
			return nil, err
		}
		offers = append(offers, o)
	}
	return offers, rows.Err()
}
