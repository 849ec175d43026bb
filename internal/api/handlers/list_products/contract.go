package list_products

import (
	"context"

	"github.com/m04kA/SMC-StudioService/internal/service/products"
)

type ProductService interface {
	List(ctx context.Context) ([]products.ProductResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
