package requisition_test

import (
	"context"
	"sort"
	"time"

	"github.com/dgtransporte/suministros-api/internal/domain"
	"github.com/dgtransporte/suministros-api/internal/domain/entity"
	"github.com/dgtransporte/suministros-api/internal/domain/inventory"
	"github.com/dgtransporte/suministros-api/internal/domain/repository"
)

// Fakes en memoria para los casos de uso de requisiciones. El fakeTxRunner
// simula el rollback restaurando un snapshot del estado cuando fn falla, así
// los tests de atomicidad verifican lo mismo que garantiza la transacción real.

type fakeReqRepo struct {
	reqs map[string]*entity.Requisition
}

func newFakeReqRepo(reqs ...*entity.Requisition) *fakeReqRepo {
	m := make(map[string]*entity.Requisition, len(reqs))
	for _, r := range reqs {
		m[r.ID] = r
	}
	return &fakeReqRepo{reqs: m}
}

func cloneRequisition(r *entity.Requisition) *entity.Requisition {
	c := *r
	c.Products = append([]entity.ProductRequisition(nil), r.Products...)
	return &c
}

func (f *fakeReqRepo) Create(_ context.Context, req *entity.Requisition) error {
	if _, ok := f.reqs[req.ID]; ok {
		return domain.ErrDuplicate
	}
	f.reqs[req.ID] = cloneRequisition(req)
	return nil
}

func (f *fakeReqRepo) GetByID(_ context.Context, id string) (*entity.Requisition, error) {
	r, ok := f.reqs[id]
	if !ok {
		return nil, nil
	}
	return cloneRequisition(r), nil
}

func (f *fakeReqRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Requisition, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeReqRepo) UpdateState(_ context.Context, id, from, to string) error {
	r, ok := f.reqs[id]
	if !ok {
		return domain.ErrNotFound
	}
	if r.State != from {
		return domain.ErrInvalidRequisitionState
	}
	r.State = to
	return nil
}

func (f *fakeReqRepo) ReplaceProducts(_ context.Context, id string, lines []entity.ProductRequisition) error {
	r, ok := f.reqs[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.Products = append([]entity.ProductRequisition(nil), lines...)
	return nil
}

func (f *fakeReqRepo) ListByState(_ context.Context, state string, limit, offset int) ([]*entity.Requisition, error) {
	var out []*entity.Requisition
	for _, r := range f.reqs {
		if r.State == state {
			out = append(out, cloneRequisition(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeReqRepo) ListByDepartment(_ context.Context, department string, limit, offset int) ([]*entity.Requisition, error) {
	var out []*entity.Requisition
	for _, r := range f.reqs {
		if r.Department == department {
			out = append(out, cloneRequisition(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeBatchRepo struct {
	batches map[string][]*entity.Batch // por producto
}

func newFakeBatchRepo() *fakeBatchRepo {
	return &fakeBatchRepo{batches: make(map[string][]*entity.Batch)}
}

func (f *fakeBatchRepo) add(b *entity.Batch) {
	f.batches[b.ProductID] = append(f.batches[b.ProductID], b)
}

func (f *fakeBatchRepo) quantity(batchID string) int64 {
	for _, bs := range f.batches {
		for _, b := range bs {
			if b.ID == batchID {
				return b.Quantity
			}
		}
	}
	return -1
}

func (f *fakeBatchRepo) Create(_ context.Context, batch *entity.Batch) error {
	c := *batch
	f.add(&c)
	return nil
}

func (f *fakeBatchRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Batch, error) {
	// Copias: el llamador muta su snapshot, el estado del repo solo cambia con Decrement.
	var out []*entity.Batch
	for _, b := range f.batches[productID] {
		c := *b
		out = append(out, &c)
	}
	return inventory.SortBatches(out), nil
}

func (f *fakeBatchRepo) ListByProductForUpdate(ctx context.Context, productID string) ([]*entity.Batch, error) {
	return f.ListByProduct(ctx, productID)
}

func (f *fakeBatchRepo) Decrement(_ context.Context, batchID string, amount int64) (int64, error) {
	for _, bs := range f.batches {
		for _, b := range bs {
			if b.ID == batchID {
				if b.Quantity < amount {
					return 0, domain.ErrInsufficientBatch
				}
				b.Quantity -= amount
				return b.Quantity, nil
			}
		}
	}
	return 0, domain.ErrNotFound
}

func (f *fakeBatchRepo) TotalStock(_ context.Context, productID string) (int64, error) {
	return inventory.TotalStock(f.batches[productID]), nil
}

type fakeOutputRepo struct {
	outputs []*entity.Output
}

func (f *fakeOutputRepo) Create(_ context.Context, output *entity.Output) error {
	c := *output
	f.outputs = append(f.outputs, &c)
	return nil
}

func (f *fakeOutputRepo) GetByID(_ context.Context, id string) (*entity.Output, error) {
	for _, o := range f.outputs {
		if o.ID == id {
			c := *o
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeOutputRepo) ListByProduct(_ context.Context, productID string, from, to *time.Time, limit, offset int) ([]*entity.Output, error) {
	var out []*entity.Output
	for _, o := range f.outputs {
		if o.ProductID == productID {
			c := *o
			out = append(out, &c)
		}
	}
	return out, nil
}

func (f *fakeOutputRepo) ListByRequisition(_ context.Context, requisitionID string) ([]*entity.Output, error) {
	var out []*entity.Output
	for _, o := range f.outputs {
		if o.RequisitionID != nil && *o.RequisitionID == requisitionID {
			c := *o
			out = append(out, &c)
		}
	}
	return out, nil
}

// fakeTxRunner ejecuta fn contra los fakes y, si falla, restaura el snapshot
// previo de requisiciones, lotes y salidas: mismo contrato que el rollback real.
type fakeTxRunner struct {
	reqRepo    *fakeReqRepo
	batchRepo  *fakeBatchRepo
	outputRepo *fakeOutputRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	reqRepo repository.RequisitionRepository,
	batchRepo repository.BatchRepository,
	outputRepo repository.OutputRepository,
) error) error {
	savedReqs := make(map[string]*entity.Requisition, len(f.reqRepo.reqs))
	for id, r := range f.reqRepo.reqs {
		savedReqs[id] = cloneRequisition(r)
	}
	savedBatches := make(map[string][]*entity.Batch, len(f.batchRepo.batches))
	for pid, bs := range f.batchRepo.batches {
		for _, b := range bs {
			c := *b
			savedBatches[pid] = append(savedBatches[pid], &c)
		}
	}
	savedOutputs := len(f.outputRepo.outputs)

	if err := fn(f.reqRepo, f.batchRepo, f.outputRepo); err != nil {
		f.reqRepo.reqs = savedReqs
		f.batchRepo.batches = savedBatches
		f.outputRepo.outputs = f.outputRepo.outputs[:savedOutputs]
		return err
	}
	return nil
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	m := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return &fakeProductRepo{products: m}
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (f *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	c := *product
	f.products[product.ID] = &c
	return nil
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
	var out []*entity.Product
	for _, p := range f.products {
		c := *p
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeProductRepo) SearchByName(_ context.Context, normalizedTerm string, limit int) ([]*entity.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) ListBelowMinStock(_ context.Context) ([]repository.ProductStock, error) {
	return nil, nil
}
