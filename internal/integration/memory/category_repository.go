package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/finance-records/backend/internal/application/adapter"
	"github.com/finance-records/backend/internal/application/query"
	"github.com/finance-records/backend/internal/domain/entity"
	domainerror "github.com/finance-records/backend/internal/domain/error"
)

// categoryRepository implements adapter.CategoryRepository over the shared
// store.
type categoryRepository struct {
	store *Store
}

// NewCategoryRepository creates a new in-memory category repository.
func NewCategoryRepository(store *Store) adapter.CategoryRepository {
	return &categoryRepository{
		store: store,
	}
}

func (r *categoryRepository) Create(_ context.Context, category *entity.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.categories[category.ID] = cloneCategory(category)
	return nil
}

func (r *categoryRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	category, ok := r.store.categories[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	return cloneCategory(category), nil
}

func (r *categoryRepository) FindByNameAndOwner(_ context.Context, name string, ownerID uuid.UUID) (*entity.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, category := range r.store.categories {
		if category.Name == name && category.OwnerID == ownerID {
			return cloneCategory(category), nil
		}
	}
	return nil, domainerror.ErrCategoryNotFound
}

func (r *categoryRepository) ExistsByNameAndOwner(_ context.Context, name string, ownerID uuid.UUID) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, category := range r.store.categories {
		if category.Name == name && category.OwnerID == ownerID {
			return true, nil
		}
	}
	return false, nil
}

func (r *categoryRepository) FindByFilter(
	_ context.Context,
	ownerID uuid.UUID,
	filter query.Filter,
	direction query.Direction,
	page query.Page,
) (*query.Result[*entity.Category], error) {
	r.store.mu.RLock()
	categories := make([]*entity.Category, 0, len(r.store.categories))
	for _, category := range r.store.categories {
		if category.OwnerID == ownerID {
			categories = append(categories, cloneCategory(category))
		}
	}
	r.store.mu.RUnlock()

	return query.Apply(categories, filter, direction, page)
}

func (r *categoryRepository) FindAllByOwner(_ context.Context, ownerID uuid.UUID) ([]*entity.Category, error) {
	r.store.mu.RLock()
	categories := make([]*entity.Category, 0, len(r.store.categories))
	for _, category := range r.store.categories {
		if category.OwnerID == ownerID {
			categories = append(categories, cloneCategory(category))
		}
	}
	r.store.mu.RUnlock()

	sort.Slice(categories, func(i, j int) bool {
		return query.Compare(categories[i], categories[j], query.DirectionDesc) < 0
	})
	return categories, nil
}

func (r *categoryRepository) Update(_ context.Context, category *entity.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.categories[category.ID]; !ok {
		return domainerror.ErrCategoryNotFound
	}
	r.store.categories[category.ID] = cloneCategory(category)
	return nil
}

func (r *categoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.categories[id]; !ok {
		return domainerror.ErrCategoryNotFound
	}
	delete(r.store.categories, id)
	return nil
}
