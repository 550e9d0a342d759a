package service

import (
	"context"
	"fmt"

	"github.com/modaflow/backend/internal/adapter/otel"
	"github.com/modaflow/backend/internal/domain"
	"github.com/modaflow/backend/internal/domain/authz"
	"github.com/modaflow/backend/internal/domain/user"
	"github.com/modaflow/backend/internal/port/database"
	"github.com/modaflow/backend/internal/port/textgen"
)

// CopyService generates marketing copy for a tenant's catalog. It
// resolves the brand name from the tenant record and delegates to the
// text generator, which degrades to fixed fallbacks on failure.
type CopyService struct {
	store   database.Store
	gen     textgen.Generator
	metrics *otel.Metrics
}

// NewCopyService creates a new CopyService. metrics may be nil.
func NewCopyService(store database.Store, gen textgen.Generator, metrics *otel.Metrics) *CopyService {
	return &CopyService{store: store, gen: gen, metrics: metrics}
}

// ProductDescription drafts product copy for the given tenant's brand.
func (s *CopyService) ProductDescription(ctx context.Context, caller *user.User, tenantID, productName, category string) (string, error) {
	brand, err := s.brandFor(ctx, caller, tenantID)
	if err != nil {
		return "", err
	}
	text := s.gen.ProductDescription(ctx, productName, category, brand)
	s.count(ctx, text == textgen.FallbackProductDescription)
	return text, nil
}

// SEOKeywords drafts search keywords for a product name.
func (s *CopyService) SEOKeywords(ctx context.Context, caller *user.User, tenantID, productName string) ([]string, error) {
	if _, err := s.brandFor(ctx, caller, tenantID); err != nil {
		return nil, err
	}
	kws := s.gen.SEOKeywords(ctx, productName)
	s.count(ctx, len(kws) == 0)
	return kws, nil
}

// CategoryDescription drafts category copy for the given tenant's brand.
func (s *CopyService) CategoryDescription(ctx context.Context, caller *user.User, tenantID, categoryName string) (string, error) {
	brand, err := s.brandFor(ctx, caller, tenantID)
	if err != nil {
		return "", err
	}
	text := s.gen.CategoryDescription(ctx, categoryName, brand)
	s.count(ctx, text == textgen.FallbackCategoryDescription)
	return text, nil
}

// brandFor authorizes the caller against the tenant and returns the
// tenant's display name for prompt context.
func (s *CopyService) brandFor(ctx context.Context, caller *user.User, tenantID string) (string, error) {
	if tenantID == "" {
		return "", fmt.Errorf("tenantId is required: %w", domain.ErrValidation)
	}
	if !authz.Authorize(roleOf(caller), tenantOf(caller), tenantID, authz.GenerateCopy) {
		return "", fmt.Errorf("copy generation: %w", domain.ErrForbidden)
	}
	t, err := s.store.GetTenant(ctx, tenantID)
	if err != nil {
		return "", fmt.Errorf("tenant %s: %w", tenantID, err)
	}
	return t.Name, nil
}

func (s *CopyService) count(ctx context.Context, fallback bool) {
	if s.metrics == nil {
		return
	}
	s.metrics.CopyGenerations.Add(ctx, 1)
	if fallback {
		s.metrics.CopyFallbacks.Add(ctx, 1)
	}
}
