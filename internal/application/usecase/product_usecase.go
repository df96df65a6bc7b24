package usecase

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/dgtransporte/suministros-api/internal/application/dto"
	"github.com/dgtransporte/suministros-api/internal/domain"
	"github.com/dgtransporte/suministros-api/internal/domain/entity"
	"github.com/dgtransporte/suministros-api/internal/domain/repository"
)

// ProductUseCase CRUD de productos del catálogo de suministros.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// Create registra un producto nuevo.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	if in.Name == "" || in.UnitMeasure == "" || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		UnitMeasure: in.UnitMeasure,
		MinStock:    in.MinStock,
		GroupID:     in.GroupID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID devuelve un producto o ErrNotFound.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// Update actualiza nombre, unidad, mínimo y grupo.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*entity.Product, error) {
	if in.Name == "" || in.UnitMeasure == "" || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Name = in.Name
	product.UnitMeasure = in.UnitMeasure
	product.MinStock = in.MinStock
	product.GroupID = in.GroupID
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) ([]*entity.Product, error) {
	page.DefaultPage()
	return uc.productRepo.List(ctx, page.Limit, page.Offset)
}

// Search busca productos por nombre ignorando tildes y mayúsculas
// ("lapiz" encuentra "Lápiz"). El término se normaliza antes de consultar.
func (uc *ProductUseCase) Search(ctx context.Context, term string, limit int) ([]*entity.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return uc.productRepo.SearchByName(ctx, NormalizeName(term), limit)
}

// NormalizeName descompone los caracteres (NFD), elimina las marcas
// diacríticas y pasa a minúsculas: "Lápiz HB" -> "lapiz hb".
func NormalizeName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}
