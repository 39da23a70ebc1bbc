package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/senkudev/otaku_shop/internal/models"
	"github.com/senkudev/otaku_shop/internal/repo"
)

type ProductService struct {
	Repo *repo.GormRepo
}

type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	InStock     *bool
	Featured    *bool
	Image       string
	Tags        []string
}

func (s *ProductService) List(ctx context.Context, filter repo.ProductFilter, limit, offset int) ([]models.Product, int64, error) {
	return s.Repo.ListProducts(ctx, filter, limit, offset)
}

func (s *ProductService) Get(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Repo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if in.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be > 0", ErrValidation)
	}

	product := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		InStock:     true,
		Image:       in.Image,
		Tags:        in.Tags,
	}
	if in.InStock != nil {
		product.InStock = *in.InStock
	}
	if in.Featured != nil {
		product.Featured = *in.Featured
	}

	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id uint, in ProductInput) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		product.Name = in.Name
	}
	if in.Description != "" {
		product.Description = in.Description
	}
	if in.Price > 0 {
		product.Price = in.Price
	}
	if in.Category != "" {
		product.Category = in.Category
	}
	if in.InStock != nil {
		product.InStock = *in.InStock
	}
	if in.Featured != nil {
		product.Featured = *in.Featured
	}
	if in.Image != "" {
		product.Image = in.Image
	}
	if in.Tags != nil {
		product.Tags = in.Tags
	}

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}
