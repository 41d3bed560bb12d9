package layouts

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"seatlab/internal/layout"
	"seatlab/internal/scene"
	"seatlab/internal/shared/constants"
	"seatlab/internal/stream"
	"seatlab/pkg/cache"
	"seatlab/pkg/logger"
)

var (
	ErrInvalidDocument = errors.New("invalid layout document")
	ErrNotOwner        = errors.New("layout belongs to another operator")
)

type Service interface {
	Create(ctx context.Context, ownerID string, req CreateLayoutRequest) (*LayoutResponse, error)
	Get(ctx context.Context, id, requesterID string) (*LayoutResponse, error)
	GetPublished(ctx context.Context, id string) (*LayoutResponse, error)
	ListMine(ctx context.Context, ownerID string, filters ListFilters) (*PaginatedLayouts, error)
	ListPublished(ctx context.Context, filters ListFilters) (*PaginatedLayouts, error)
	ListAll(ctx context.Context, filters ListFilters) (*PaginatedLayouts, error)
	Update(ctx context.Context, id, requesterID string, req UpdateLayoutRequest) (*LayoutResponse, error)
	Publish(ctx context.Context, id, requesterID string) (*LayoutResponse, error)
	Delete(ctx context.Context, id, requesterID string) error
}

type service struct {
	repo     Repository
	cache    cache.Service
	producer stream.Producer // nil when Kafka is disabled
	log      *logger.Logger
}

func NewService(repo Repository, cacheService cache.Service, producer stream.Producer) Service {
	return &service{
		repo:     repo,
		cache:    cacheService,
		producer: producer,
		log:      logger.GetDefault(),
	}
}

func (s *service) Create(ctx context.Context, ownerID string, req CreateLayoutRequest) (*LayoutResponse, error) {
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner id: %w", err)
	}

	document := []byte(req.Document)
	if len(document) == 0 {
		// New layouts start from an empty canvas
		empty := layout.BuildDocument(scene.New(), nil, nil)
		document, err = layout.EncodeDocument(empty)
		if err != nil {
			return nil, fmt.Errorf("failed to encode empty document: %w", err)
		}
	}

	seats, err := validateDocument(document)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	rec := &LayoutRecord{
		ID:        uuid.New(),
		Name:      req.Name,
		OwnerID:   owner,
		Document:  document,
		Version:   1,
		SeatCount: seats,
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to create layout: %w", err)
	}

	s.invalidateListings(ctx)
	s.publishEvent(ctx, stream.LayoutEventSaved, rec, ownerID)
	s.log.LogLayoutSaved(ctx, rec.ID.String(), ownerID, rec.Version)

	return toResponse(rec, true), nil
}

func (s *service) Get(ctx context.Context, id, requesterID string) (*LayoutResponse, error) {
	rec, err := s.getOwned(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}
	return toResponse(rec, true), nil
}

// GetPublished serves the customer-facing document, cache-aside.
func (s *service) GetPublished(ctx context.Context, id string) (*LayoutResponse, error) {
	layoutID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrLayoutNotFound
	}

	cacheKey := constants.BuildPublishedLayoutKey(id)

	var cached LayoutResponse
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	rec, err := s.repo.GetByID(ctx, layoutID)
	if err != nil {
		return nil, err
	}
	if !rec.Published {
		return nil, ErrLayoutNotFound
	}

	resp := toResponse(rec, true)
	if err := s.cache.Set(ctx, cacheKey, resp, constants.TTL_LAYOUT_PUBLISHED); err != nil {
		s.log.Warn("failed to cache published layout", "layout_id", id, "error", err)
	}

	return resp, nil
}

func (s *service) ListMine(ctx context.Context, ownerID string, filters ListFilters) (*PaginatedLayouts, error) {
	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner id: %w", err)
	}
	normalizeFilters(&filters)
	return s.repo.ListByOwner(ctx, owner, filters)
}

func (s *service) ListPublished(ctx context.Context, filters ListFilters) (*PaginatedLayouts, error) {
	normalizeFilters(&filters)

	cacheKey := constants.BuildLayoutListKey(filters.Page, filters.Limit)
	var result PaginatedLayouts
	err := s.cache.GetOrSet(ctx, cacheKey, constants.TTL_LAYOUT_LIST, func() (interface{}, error) {
		return s.repo.ListPublished(ctx, filters)
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListAll is the admin view across every owner; never cached.
func (s *service) ListAll(ctx context.Context, filters ListFilters) (*PaginatedLayouts, error) {
	normalizeFilters(&filters)
	return s.repo.ListAll(ctx, filters)
}

func (s *service) Update(ctx context.Context, id, requesterID string, req UpdateLayoutRequest) (*LayoutResponse, error) {
	rec, err := s.getOwned(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if len(req.Document) > 0 {
		seats, err := validateDocument(req.Document)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		updates["document"] = []byte(req.Document)
		updates["seat_count"] = seats
		updates["version"] = rec.Version + 1
	}
	if len(updates) == 0 {
		return toResponse(rec, true), nil
	}

	if err := s.repo.Update(ctx, rec.ID, updates); err != nil {
		return nil, err
	}

	rec, err = s.repo.GetByID(ctx, rec.ID)
	if err != nil {
		return nil, err
	}

	s.invalidateLayout(ctx, id)
	s.publishEvent(ctx, stream.LayoutEventSaved, rec, requesterID)
	s.log.LogLayoutSaved(ctx, id, requesterID, rec.Version)

	return toResponse(rec, true), nil
}

func (s *service) Publish(ctx context.Context, id, requesterID string) (*LayoutResponse, error) {
	rec, err := s.getOwned(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}

	if !rec.Published {
		if err := s.repo.Update(ctx, rec.ID, map[string]interface{}{"published": true}); err != nil {
			return nil, err
		}
		rec.Published = true
	}

	s.invalidateLayout(ctx, id)
	s.publishEvent(ctx, stream.LayoutEventPublished, rec, requesterID)
	s.log.LogLayoutPublished(ctx, id, requesterID)

	return toResponse(rec, true), nil
}

func (s *service) Delete(ctx context.Context, id, requesterID string) error {
	rec, err := s.getOwned(ctx, id, requesterID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, rec.ID); err != nil {
		return err
	}

	s.invalidateLayout(ctx, id)
	s.publishEvent(ctx, stream.LayoutEventDeleted, rec, requesterID)
	return nil
}

// getOwned fetches a layout and enforces ownership.
func (s *service) getOwned(ctx context.Context, id, requesterID string) (*LayoutRecord, error) {
	layoutID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrLayoutNotFound
	}

	rec, err := s.repo.GetByID(ctx, layoutID)
	if err != nil {
		return nil, err
	}
	if rec.OwnerID.String() != requesterID {
		return nil, ErrNotOwner
	}
	return rec, nil
}

func (s *service) invalidateLayout(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, constants.BuildPublishedLayoutKey(id)); err != nil {
		s.log.Warn("failed to invalidate layout cache", "layout_id", id, "error", err)
	}
	s.invalidateListings(ctx)
}

func (s *service) invalidateListings(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, constants.PATTERN_INVALIDATE_LISTINGS); err != nil {
		s.log.Warn("failed to invalidate layout listings", "error", err)
	}
}

func (s *service) publishEvent(ctx context.Context, eventType stream.LayoutEventType, rec *LayoutRecord, actorID string) {
	if s.producer == nil {
		return
	}
	event := stream.NewLayoutEvent(eventType, rec.ID, actorID, rec.Version, rec.SeatCount)
	if err := s.producer.PublishEvent(ctx, event); err != nil {
		s.log.Warn("failed to publish layout event", "layout_id", rec.ID.String(), "type", string(eventType), "error", err)
	}
}

// validateDocument parses the document through the editor codec and returns
// its seat count. Anything the codec rejects never reaches the database.
func validateDocument(data []byte) (int, error) {
	doc, err := layout.DecodeDocument(data)
	if err != nil {
		return 0, err
	}

	seats := 0
	for _, obj := range doc.Canvas.Objects {
		if obj.Kind == scene.KindSeat {
			seats++
		}
	}
	return seats, nil
}

func normalizeFilters(filters *ListFilters) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.Limit <= 0 {
		filters.Limit = 20
	}
	if filters.Limit > 100 {
		filters.Limit = 100
	}
}
