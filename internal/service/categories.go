package service

import (
	"context"
	"fmt"

	"budgetd/internal/errs"
	"budgetd/internal/model"
	"budgetd/internal/repository"
	"github.com/gofrs/uuid/v5"
)

// CategoryInput carries the user-settable category fields.
type CategoryInput struct {
	Name  string       `json:"name"`
	Type  model.TxType `json:"type"`
	Color string       `json:"color"`
	Icon  string       `json:"icon"`
}

// CategoryService manages the shared category pool from one user's viewpoint.
type CategoryService interface {
	// List returns default categories plus the user's own.
	List(ctx context.Context, userID uuid.UUID) ([]model.Category, error)
	// Create adds a private category.
	Create(ctx context.Context, userID uuid.UUID, in CategoryInput) (*model.Category, error)
	// Update edits one of the user's own categories. Defaults cannot be edited.
	Update(ctx context.Context, userID, id uuid.UUID, in CategoryInput) (*model.Category, error)
	// Delete removes one of the user's own categories unless transactions reference it.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type CategoryServiceImpl struct {
	categories repository.CategoryRepository
}

var _ CategoryService = (*CategoryServiceImpl)(nil)

// NewCategoryService constructs CategoryService.
func NewCategoryService(categories repository.CategoryRepository) *CategoryServiceImpl {
	return &CategoryServiceImpl{categories: categories}
}

func (s *CategoryServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]model.Category, error) {
	return s.categories.ListVisible(ctx, userID)
}

func (s *CategoryServiceImpl) Create(ctx context.Context, userID uuid.UUID, in CategoryInput) (*model.Category, error) {
	if in.Name == "" || !in.Type.Valid() {
		return nil, fmt.Errorf("%w: name/type", errs.ErrValidation)
	}
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	c := &model.Category{
		ID:     id,
		UserID: &userID,
		Name:   in.Name,
		Type:   in.Type,
		Color:  in.Color,
		Icon:   in.Icon,
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryServiceImpl) Update(ctx context.Context, userID, id uuid.UUID, in CategoryInput) (*model.Category, error) {
	c, err := s.categories.GetOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		c.Name = in.Name
	}
	if in.Type != "" {
		if !in.Type.Valid() {
			return nil, fmt.Errorf("%w: type", errs.ErrValidation)
		}
		c.Type = in.Type
	}
	if in.Color != "" {
		c.Color = in.Color
	}
	if in.Icon != "" {
		c.Icon = in.Icon
	}
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryServiceImpl) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.categories.GetOwned(ctx, userID, id); err != nil {
		return err
	}
	used, err := s.categories.InUse(ctx, userID, id)
	if err != nil {
		return err
	}
	if used {
		return errs.ErrCategoryInUse
	}
	return s.categories.Delete(ctx, id)
}
