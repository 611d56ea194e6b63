package service

import (
	"context"
	"fmt"
	"io"

	"hallever/internal/domain"
	"hallever/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Upload is one incoming multipart file.
type Upload struct {
	Reader      io.Reader
	ContentType string
}

// ImageStore is the slice of the storage uploader the services use.
type ImageStore interface {
	UploadImage(ctx context.Context, r io.Reader, contentType string) (string, error)
	UploadFile(ctx context.Context, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, rawURL string)
}

// ProductStore adds the category read to the shared store surface.
type ProductStore interface {
	Store[*domain.Product]
	ListByCategory(ctx context.Context, category string) ([]*domain.Product, error)
}

// ProductService manages the catalog, including the image lifecycle: new
// uploads go to object storage, removed image URLs are deleted best-effort
// here in the service layer, never by the client.
type ProductService struct {
	*Resource[*domain.Product]
	store  ProductStore
	images ImageStore
	logger *zap.Logger
}

// NewProductService creates the product service.
func NewProductService(store ProductStore, images ImageStore, logger *zap.Logger) *ProductService {
	return &ProductService{
		Resource: NewResource[*domain.Product](repository.CollProducts, store, logger),
		store:    store,
		images:   images,
		logger:   logger,
	}
}

// CreateWithImages uploads the new files, appends their URLs to the
// product's retained images and creates the record.
func (s *ProductService) CreateWithImages(ctx context.Context, product *domain.Product, files []Upload) (*domain.Product, error) {
	urls, err := s.uploadAll(ctx, files)
	if err != nil {
		return nil, err
	}
	product.Images = append(product.Images, urls...)

	return s.Create(ctx, product)
}

// UpdateWithImages applies a partial update. Retained URLs plus freshly
// uploaded files become the new image list; URLs in removedImages are
// deleted from storage best-effort after the document write succeeds.
func (s *ProductService) UpdateWithImages(ctx context.Context, id string, fields bson.M, retained []string, files []Upload, removedImages []string) error {
	urls, err := s.uploadAll(ctx, files)
	if err != nil {
		return err
	}
	fields["images"] = append(retained, urls...)

	if err := s.Update(ctx, id, fields); err != nil {
		return err
	}

	for _, old := range removedImages {
		s.images.Delete(ctx, old)
	}
	return nil
}

// DeleteWithImages removes the product and then its stored images,
// best-effort.
func (s *ProductService) DeleteWithImages(ctx context.Context, id string) error {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.Delete(ctx, id); err != nil {
		return err
	}

	for _, img := range product.Images {
		s.images.Delete(ctx, img)
	}
	return nil
}

// ListByCategory reads products of one category, bypassing the full-list
// cache (category pages are a direct store read).
func (s *ProductService) ListByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return s.store.ListByCategory(ctx, category)
}

func (s *ProductService) uploadAll(ctx context.Context, files []Upload) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, f := range files {
		u, err := s.images.UploadImage(ctx, f.Reader, f.ContentType)
		if err != nil {
			return nil, fmt.Errorf("failed to upload product image: %w", err)
		}
		urls = append(urls, u)
	}
	return urls, nil
}
