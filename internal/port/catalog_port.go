package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

type Catalog interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id int) (domain.Product, error)
}
