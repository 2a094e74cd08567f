package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/shopfront/apiserver/internal/storage"
	"github.com/shopfront/apiserver/types"
)

// ErrStorageDisabled is returned from image operations when no object
// storage backend is configured.
var ErrStorageDisabled = errors.New("object storage is not configured")

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	List(ctx context.Context) ([]types.Product, error)
	Get(ctx context.Context, id int) (types.Product, error)
	Create(ctx context.Context, product types.Product) (types.Product, error)
	SetImageKey(ctx context.Context, id int, key string) error
}

// ProductService encapsulates catalog use-cases, including product
// images kept in object storage. The storage may be nil when no
// backend is configured.
type ProductService struct {
	repo    ProductRepository
	storage *storage.Storage
}

func NewProductService(repo ProductRepository, storage *storage.Storage) *ProductService {
	return &ProductService{
		repo:    repo,
		storage: storage,
	}
}

func (s *ProductService) List(ctx context.Context) ([]types.Product, error) {
	return s.repo.List(ctx)
}

func (s *ProductService) Get(ctx context.Context, id int) (types.Product, error) {
	return s.repo.Get(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, product types.Product) (types.Product, error) {
	return s.repo.Create(ctx, product)
}

// UploadImage stores the image bytes under a per-product key and records
// the key on the product row. Re-uploading replaces the previous image.
func (s *ProductService) UploadImage(ctx context.Context, id int, filename, contentType string, data []byte) (string, error) {
	if s.storage == nil {
		return "", ErrStorageDisabled
	}

	if _, err := s.repo.Get(ctx, id); err != nil {
		return "", err
	}

	key := imageKey(id, filename)
	if err := s.storage.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return "", err
	}

	if err := s.repo.SetImageKey(ctx, id, key); err != nil {
		return "", err
	}

	return key, nil
}

// OpenImage opens a reader over the stored product image.
func (s *ProductService) OpenImage(ctx context.Context, id int) (io.ReadCloser, error) {
	if s.storage == nil {
		return nil, ErrStorageDisabled
	}

	product, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.ImageKey == "" {
		return nil, ErrNoImage
	}

	return s.storage.Get(ctx, product.ImageKey)
}

// ErrNoImage is returned when the product has no stored image.
var ErrNoImage = errors.New("product has no image")

func imageKey(id int, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("products/%d%s", id, ext)
}
