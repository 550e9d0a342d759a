// Package textgen defines the marketing-copy generation port.
package textgen

import "context"

// Fallback values every Generator implementation degrades to when the
// upstream model call fails. Keyword generation degrades to an empty
// slice.
const (
	FallbackProductDescription  = "Error generating AI description."
	FallbackCategoryDescription = "Error generating category description."
	FallbackEmptyDescription    = "Could not generate description."
)

// Generator produces marketing copy for catalog entities. Implementations
// must never fail into the caller: on any upstream error they return a
// fixed fallback value so catalog and admin flows proceed unaffected.
type Generator interface {
	ProductDescription(ctx context.Context, productName, category, brandName string) string
	SEOKeywords(ctx context.Context, productName string) []string
	CategoryDescription(ctx context.Context, categoryName, brandName string) string
}
