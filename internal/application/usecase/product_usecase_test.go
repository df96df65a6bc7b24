package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgtransporte/suministros-api/internal/application/dto"
	"github.com/dgtransporte/suministros-api/internal/application/usecase"
	"github.com/dgtransporte/suministros-api/internal/domain"
	"github.com/dgtransporte/suministros-api/internal/domain/entity"
	"github.com/dgtransporte/suministros-api/internal/domain/repository"
)

type fakeProductRepo struct {
	products   map[string]*entity.Product
	searchTerm string // último término recibido por SearchByName
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (f *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	c := *product
	f.products[product.ID] = &c
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (f *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	if _, ok := f.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *product
	f.products[product.ID] = &c
	return nil
}

func (f *fakeProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) SearchByName(_ context.Context, normalizedTerm string, limit int) ([]*entity.Product, error) {
	f.searchTerm = normalizedTerm
	return nil, nil
}

func (f *fakeProductRepo) ListBelowMinStock(_ context.Context) ([]repository.ProductStock, error) {
	return nil, nil
}

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"Lápiz":           "lapiz",
		"TÓNER":           "toner",
		"Bolígrafo Azul":  "boligrafo azul",
		"papel bond":      "papel bond",
		"Güincha Métrica": "guincha metrica",
		"ÑANDÚ":           "nandu",
	}
	for in, want := range cases {
		assert.Equal(t, want, usecase.NormalizeName(in), "entrada %q", in)
	}
}

func TestSearch_NormalizaElTermino(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo)

	_, err := uc.Search(context.Background(), "  Lápiz  ", 0)
	require.NoError(t, err)

	assert.Equal(t, "lapiz", repo.searchTerm)
}

func TestSearch_TerminoVacio(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())

	_, err := uc.Search(context.Background(), "   ", 10)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_ValidaEntrada(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{UnitMeasure: "resma"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "falta el nombre")

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Papel bond"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "falta la unidad")

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Papel bond", UnitMeasure: "resma", MinStock: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "mínimo negativo")
}

func TestCreateYUpdate(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo)
	ctx := context.Background()

	product, err := uc.Create(ctx, dto.CreateProductRequest{
		Name:        "Papel bond",
		UnitMeasure: "resma",
		MinStock:    10,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, product.ID)

	updated, err := uc.Update(ctx, product.ID, dto.UpdateProductRequest{
		Name:        "Papel bond A4",
		UnitMeasure: "resma",
		MinStock:    15,
	})
	require.NoError(t, err)
	assert.Equal(t, "Papel bond A4", updated.Name)
	assert.Equal(t, int64(15), updated.MinStock)

	saved, _ := repo.GetByID(ctx, product.ID)
	assert.Equal(t, "Papel bond A4", saved.Name)
}

func TestUpdate_Inexistente(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())

	_, err := uc.Update(context.Background(), "no-existe", dto.UpdateProductRequest{
		Name:        "X",
		UnitMeasure: "unidad",
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
