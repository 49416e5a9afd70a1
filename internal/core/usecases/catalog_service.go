package usecases

import (
	"context"
	"encoding/json"

	"github.com/meetvasani/safar/internal/core/domain"
	"github.com/meetvasani/safar/internal/core/ports"
	"github.com/meetvasani/safar/internal/pkg/metrics"
)

// CatalogService serves providers and promotional offers.
type CatalogService struct {
	providers ports.ProviderRepository
	offers    ports.OfferRepository
	cache     ports.CacheService
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(providers ports.ProviderRepository, offers ports.OfferRepository, cache ports.CacheService) *CatalogService {
	return &CatalogService{providers: providers, offers: offers, cache: cache}
}

// ListProviders returns all transport providers.
func (s *CatalogService) ListProviders(ctx context.Context) ([]domain.Provider, error) {
	cacheKey := "providers:all"
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var providers []domain.Provider
			if err := json.Unmarshal(data, &providers); err == nil {
				metrics.CacheHits.WithLabelValues("providers").Inc()
				return providers, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("providers").Inc()
	}

	providers, err := s.providers.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(providers); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 600)
		}
	}

	return providers, nil
}

// ListProvidersByType returns providers of one transport type.
func (s *CatalogService) ListProvidersByType(ctx context.Context, t domain.TransportType) ([]domain.Provider, error) {
	if !t.Valid() {
		return nil, domain.NewValidationError("type", "invalid transport type")
	}
	return s.providers.ListByType(ctx, t)
}

// ListOffers returns all active promotions.
func (s *CatalogService) ListOffers(ctx context.Context) ([]domain.Offer, error) {
	return s.offers.List(ctx)
}

// GetOffer returns one offer.
func (s *CatalogService) GetOffer(ctx context.Context, id int) (*domain.Offer, error) {
	return s.offers.GetByID(ctx, id)
}
