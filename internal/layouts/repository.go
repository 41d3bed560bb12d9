package layouts

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrLayoutNotFound = errors.New("layout not found")

// Repository interface for layout persistence
type Repository interface {
	Create(ctx context.Context, rec *LayoutRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*LayoutRecord, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, filters ListFilters) (*PaginatedLayouts, error)
	ListPublished(ctx context.Context, filters ListFilters) (*PaginatedLayouts, error)
	ListAll(ctx context.Context, filters ListFilters) (*PaginatedLayouts, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new layout repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rec *LayoutRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*LayoutRecord, error) {
	var rec LayoutRecord
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLayoutNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerID uuid.UUID, filters ListFilters) (*PaginatedLayouts, error) {
	query := r.db.WithContext(ctx).Model(&LayoutRecord{}).Where("owner_id = ?", ownerID)
	return r.paginate(query, filters)
}

func (r *repository) ListPublished(ctx context.Context, filters ListFilters) (*PaginatedLayouts, error) {
	query := r.db.WithContext(ctx).Model(&LayoutRecord{}).Where("published = true")
	return r.paginate(query, filters)
}

func (r *repository) ListAll(ctx context.Context, filters ListFilters) (*PaginatedLayouts, error) {
	query := r.db.WithContext(ctx).Model(&LayoutRecord{})
	if filters.Published {
		query = query.Where("published = true")
	}
	return r.paginate(query, filters)
}

func (r *repository) paginate(query *gorm.DB, filters ListFilters) (*PaginatedLayouts, error) {
	var records []LayoutRecord
	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (filters.Page - 1) * filters.Limit
	if err := query.Order("updated_at desc").
		Omit("document").
		Offset(offset).Limit(filters.Limit).
		Find(&records).Error; err != nil {
		return nil, err
	}

	summaries := make([]LayoutSummary, len(records))
	for i, rec := range records {
		summaries[i] = toSummary(rec)
	}

	totalPages := int((total + int64(filters.Limit) - 1) / int64(filters.Limit))

	return &PaginatedLayouts{
		Layouts:    summaries,
		TotalCount: total,
		Page:       filters.Page,
		Limit:      filters.Limit,
		TotalPages: totalPages,
	}, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&LayoutRecord{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLayoutNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&LayoutRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLayoutNotFound
	}
	return nil
}
