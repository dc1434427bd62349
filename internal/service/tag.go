package service

import (
	"context"
	"log/slog"

	"github.com/platefulapp/plateful-server/internal/domain"
	domainerrors "github.com/platefulapp/plateful-server/internal/errors"
	"github.com/platefulapp/plateful-server/internal/normalize"
	"github.com/platefulapp/plateful-server/internal/store"
)

// TagService manages tags as standalone resources. Creation happens
// implicitly through recipes; here tags are listed, renamed and deleted.
type TagService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewTagService creates a tag service.
func NewTagService(st *store.Store, logger *slog.Logger) *TagService {
	return &TagService{store: st, logger: logger}
}

// List returns the caller's tags, name-descending. assignedOnly restricts
// the result to tags linked to at least one recipe.
func (s *TagService) List(ctx context.Context, userID string, assignedOnly bool) ([]*domain.Tag, error) {
	tags, err := s.store.ListTags(ctx, userID, assignedOnly)
	if err != nil {
		return nil, domainerrors.Wrap(err, "list tags")
	}
	return tags, nil
}

// Get loads a single tag, owner-scoped.
func (s *TagService) Get(ctx context.Context, userID, tagID string) (*domain.Tag, error) {
	tag, err := s.store.GetTag(ctx, userID, tagID)
	if err != nil {
		return nil, mapStoreErr(err, "tag")
	}
	return tag, nil
}

// Rename changes a tag's name. The change is visible through every recipe
// linked to the tag.
func (s *TagService) Rename(ctx context.Context, userID, tagID, name string) (*domain.Tag, error) {
	name = normalize.Name(name)
	if name == "" {
		return nil, domainerrors.Validation("name must not be empty")
	}

	tag, err := s.store.GetTag(ctx, userID, tagID)
	if err != nil {
		return nil, mapStoreErr(err, "tag")
	}

	tag.Name = name
	tag.Touch()
	if err := s.store.UpdateTag(ctx, tag); err != nil {
		return nil, mapStoreErr(err, "tag")
	}
	return tag, nil
}

// Delete removes a tag and its recipe links.
func (s *TagService) Delete(ctx context.Context, userID, tagID string) error {
	if err := s.store.DeleteTag(ctx, userID, tagID); err != nil {
		return mapStoreErr(err, "tag")
	}
	return nil
}
