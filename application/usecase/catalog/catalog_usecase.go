package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/shopcore/shopcore/application/port/inbound"
	"github.com/shopcore/shopcore/application/port/outbound"
	"github.com/shopcore/shopcore/domain/apperror"
	"github.com/shopcore/shopcore/domain/entity"
	"github.com/shopcore/shopcore/infrastructure/service/blob"
	"github.com/shopcore/shopcore/infrastructure/service/logger"
)

// UseCase implements product CRUD. Image bytes go to the blob store; only
// the storage key is persisted with the product.
type UseCase struct {
	products outbound.ProductRepository
	blobs    outbound.BlobStore
	log      logger.Logger
}

func NewUseCase(products outbound.ProductRepository, blobs outbound.BlobStore, log logger.Logger) inbound.CatalogUseCase {
	return &UseCase{products: products, blobs: blobs, log: log}
}

func (uc *UseCase) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := uc.products.FindAll(ctx)
	if err != nil {
		return nil, apperror.Upstream("product store", err)
	}
	return products, nil
}

func (uc *UseCase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, outbound.ErrProductNotFound) {
			return nil, apperror.NotFound("Product")
		}
		return nil, apperror.Upstream("product store", err)
	}
	return product, nil
}

func (uc *UseCase) CreateProduct(ctx context.Context, req inbound.CreateProductRequest) (*entity.Product, error) {
	if req.Name == "" {
		return nil, apperror.MissingField("name")
	}
	if req.Price < 0 {
		return nil, apperror.Validation("Price cannot be negative")
	}

	var imageKey string
	if req.Image != nil {
		imageKey = blob.NewKey(req.Image.Filename)
		if err := uc.blobs.Put(ctx, imageKey, req.Image.ContentType, req.Image.Reader); err != nil {
			return nil, apperror.Upstream("blob store", err)
		}
	}

	product := entity.NewProduct(uuid.New().String(), req.Name, req.Price, req.Description, imageKey)
	if err := uc.products.Create(ctx, product); err != nil {
		return nil, apperror.Upstream("product store", err)
	}

	uc.log.Info(ctx, "product created", map[string]interface{}{
		"product_id": product.ID,
		"has_image":  imageKey != "",
	})
	return product, nil
}

func (uc *UseCase) UpdateProduct(ctx context.Context, id string, req inbound.UpdateProductRequest) (*entity.Product, error) {
	product, err := uc.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, outbound.ErrProductNotFound) {
			return nil, apperror.NotFound("Product")
		}
		return nil, apperror.Upstream("product store", err)
	}

	if req.Image != nil {
		newKey := blob.NewKey(req.Image.Filename)
		if err := uc.blobs.Put(ctx, newKey, req.Image.ContentType, req.Image.Reader); err != nil {
			return nil, apperror.Upstream("blob store", err)
		}
		// Replacing the image orphans the old blob unless it is removed.
		if product.ImageKey != "" {
			if err := uc.blobs.Delete(ctx, product.ImageKey); err != nil {
				uc.log.Warn(ctx, "failed to delete replaced image", map[string]interface{}{
					"product_id": product.ID,
					"image_key":  product.ImageKey,
				})
			}
		}
		product.ImageKey = newKey
	}

	product.Name = req.Name
	product.Price = req.Price
	product.Description = req.Description
	product.UpdatedAt = time.Now().UTC()

	if err := uc.products.Update(ctx, product); err != nil {
		return nil, apperror.Upstream("product store", err)
	}
	return product, nil
}

func (uc *UseCase) DeleteProduct(ctx context.Context, id string) error {
	product, err := uc.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, outbound.ErrProductNotFound) {
			return apperror.NotFound("Product")
		}
		return apperror.Upstream("product store", err)
	}

	if product.ImageKey != "" {
		if err := uc.blobs.Delete(ctx, product.ImageKey); err != nil {
			uc.log.Warn(ctx, "failed to delete product image", map[string]interface{}{
				"product_id": product.ID,
				"image_key":  product.ImageKey,
			})
		}
	}

	if err := uc.products.Delete(ctx, id); err != nil {
		if errors.Is(err, outbound.ErrProductNotFound) {
			return apperror.NotFound("Product")
		}
		return apperror.Upstream("product store", err)
	}
	return nil
}
