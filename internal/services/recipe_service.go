package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"recipebook/internal/models"
	"recipebook/internal/repositories"

	"go.uber.org/zap"
)

// Mode selects whether recipes carry owners.
type Mode int

const (
	// ModeLocal is the single-user tool: no sessions, no owners, no dates.
	ModeLocal Mode = iota
	// ModeMultiUser requires a session for mutations, records the owner and
	// creation date, and restricts update and delete to the owner.
	ModeMultiUser
)

// Routing keys of the events published after successful mutations.
const (
	EventRecipeCreated = "recipe.created"
	EventRecipeUpdated = "recipe.updated"
	EventRecipeDeleted = "recipe.deleted"
)

// EventPublisher delivers recipe events to a message broker.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// RecipeEvent is the JSON body of a published recipe event.
type RecipeEvent struct {
	Event    string    `json:"event"`
	RecipeID uint      `json:"recipe_id"`
	Title    string    `json:"title,omitempty"`
	UserID   uint      `json:"user_id,omitempty"`
	At       time.Time `json:"at"`
}

// RecipeService handles business logic related to recipes.
type RecipeService struct {
	repo      repositories.RecipeRepository
	mode      Mode
	publisher EventPublisher // optional
	log       *zap.Logger
	now       func() time.Time
}

// NewRecipeService creates a new RecipeService. publisher may be nil.
func NewRecipeService(repo repositories.RecipeRepository, mode Mode, publisher EventPublisher, log *zap.Logger) *RecipeService {
	if log == nil {
		log = zap.NewNop()
	}
	return &RecipeService{
		repo:      repo,
		mode:      mode,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// Create validates in and stores a new recipe, returning its ID.
func (s *RecipeService) Create(session Session, in models.RecipeInput) (uint, error) {
	if s.mode == ModeMultiUser && !session.Authenticated() {
		return 0, ErrUnauthorized
	}
	if err := validateStruct(in.Normalize()); err != nil {
		return 0, err
	}

	recipe := &models.Recipe{}
	in.Apply(recipe)
	if s.mode == ModeMultiUser {
		owner := session.UserID
		recipe.UserID = &owner
		recipe.DateAdded = s.now().Format(models.DateLayout)
	}

	if err := s.repo.Create(recipe); err != nil {
		return 0, fmt.Errorf("failed to create recipe: %w", err)
	}
	s.log.Info("recipe created", zap.Uint("recipe_id", recipe.ID), zap.Uint("user_id", session.UserID))
	s.publish(EventRecipeCreated, recipe, session)
	return recipe.ID, nil
}

// List returns the recipes matching filter. It never returns a nil slice.
func (s *RecipeService) List(filter models.RecipeFilter) ([]models.Recipe, error) {
	recipes, err := s.repo.Find(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	return recipes, nil
}

// Get returns the recipe with the given ID or ErrNotFound.
func (s *RecipeService) Get(id uint) (*models.Recipe, error) {
	recipe, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("recipe %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get recipe %d: %w", id, err)
	}
	return recipe, nil
}

// Update replaces title, category, ingredients and instructions of an
// existing recipe. Empty required fields are rejected, never skipped.
func (s *RecipeService) Update(session Session, id uint, in models.RecipeInput) error {
	if s.mode == ModeMultiUser && !session.Authenticated() {
		return ErrUnauthorized
	}
	if err := validateStruct(in.Normalize()); err != nil {
		return err
	}

	recipe, err := s.authorize(session, id)
	if err != nil {
		return err
	}
	in.Apply(recipe)

	if err := s.repo.Update(recipe); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("recipe %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to update recipe %d: %w", id, err)
	}
	s.log.Info("recipe updated", zap.Uint("recipe_id", id), zap.Uint("user_id", session.UserID))
	s.publish(EventRecipeUpdated, recipe, session)
	return nil
}

// Delete permanently removes a recipe.
func (s *RecipeService) Delete(session Session, id uint) error {
	if s.mode == ModeMultiUser && !session.Authenticated() {
		return ErrUnauthorized
	}
	recipe, err := s.authorize(session, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("recipe %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to delete recipe %d: %w", id, err)
	}
	s.log.Info("recipe deleted", zap.Uint("recipe_id", id), zap.Uint("user_id", session.UserID))
	s.publish(EventRecipeDeleted, recipe, session)
	return nil
}

// authorize loads the recipe and, in multi-user mode, checks ownership.
func (s *RecipeService) authorize(session Session, id uint) (*models.Recipe, error) {
	recipe, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if s.mode == ModeMultiUser && !recipe.OwnedBy(session.UserID) {
		s.log.Warn("recipe ownership check failed", zap.Uint("recipe_id", id), zap.Uint("user_id", session.UserID))
		return nil, ErrForbidden
	}
	return recipe, nil
}

// publish sends a best-effort event; failures are logged and swallowed.
func (s *RecipeService) publish(event string, recipe *models.Recipe, session Session) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(RecipeEvent{
		Event:    event,
		RecipeID: recipe.ID,
		Title:    recipe.Title,
		UserID:   session.UserID,
		At:       s.now().UTC(),
	})
	if err != nil {
		s.log.Error("failed to marshal recipe event", zap.String("event", event), zap.Error(err))
		return
	}
	if err := s.publisher.Publish(event, body); err != nil {
		s.log.Warn("failed to publish recipe event", zap.String("event", event), zap.Uint("recipe_id", recipe.ID), zap.Error(err))
	}
}
