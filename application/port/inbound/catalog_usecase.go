package inbound

import (
	"context"
	"io"

	"github.com/shopcore/shopcore/domain/entity"
)

// ImageUpload is a streamed multipart file destined for the blob store.
type ImageUpload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

type CreateProductRequest struct {
	Name        string
	Price       int64
	Description string
	Image       *ImageUpload
}

type UpdateProductRequest struct {
	Name        string
	Price       int64
	Description string
	Image       *ImageUpload
}

type CatalogUseCase interface {
	ListProducts(ctx context.Context) ([]*entity.Product, error)
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
	CreateProduct(ctx context.Context, req CreateProductRequest) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}
