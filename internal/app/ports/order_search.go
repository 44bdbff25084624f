package ports

import (
	"context"

	"github.com/fr0stylo/orderlens/internal/app/domain"
)

// OrderSearcher searches an upstream order collection.
type OrderSearcher interface {
	Search(ctx context.Context, resource, term string) (domain.SearchPayload, error)
}
