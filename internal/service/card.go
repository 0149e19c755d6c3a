package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/KehaoC/GF/internal/model"
	"github.com/KehaoC/GF/internal/repository"
)

// validCardTypes are the accepted values for a card's card_type field.
var validCardTypes = []string{"hook", "inspiration", "template", "product", "constraint"}

var (
	ErrCardNotFound     = errors.New("card not found")
	ErrImageURLRequired = errors.New("image_url is required")
	ErrInvalidCardType  = fmt.Errorf("invalid card type, must be one of: %s", strings.Join(validCardTypes, ", "))
)

// CardRepository is the persistence surface the card service needs.
type CardRepository interface {
	Create(ctx context.Context, c *model.CustomCard) error
	GetByID(ctx context.Context, id int64) (*model.CustomCard, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.CustomCard, error)
	Delete(ctx context.Context, id int64) error
}

// CardService handles custom card business logic.
type CardService struct {
	repo CardRepository
}

// NewCardService creates a new CardService.
func NewCardService(repo CardRepository) *CardService {
	return &CardService{repo: repo}
}

// Create stores a new card owned by the caller.
func (s *CardService) Create(ctx context.Context, userID int64, req model.CreateCardRequest) (model.CardResponse, error) {
	if !isValidCardType(req.CardType) {
		return model.CardResponse{}, ErrInvalidCardType
	}
	if req.ImageURL == "" {
		return model.CardResponse{}, ErrImageURLRequired
	}

	card := &model.CustomCard{
		CardType:    req.CardType,
		ImageURL:    req.ImageURL,
		TextContent: req.TextContent,
		OwnerID:     userID,
	}

	if err := s.repo.Create(ctx, card); err != nil {
		return model.CardResponse{}, err
	}

	return model.CardToResponse(card), nil
}

// Get returns a card owned by the caller.
func (s *CardService) Get(ctx context.Context, userID, cardID int64) (model.CardResponse, error) {
	card, err := s.load(ctx, cardID)
	if err != nil {
		return model.CardResponse{}, err
	}

	if err := authorizeOwner(card, userID); err != nil {
		return model.CardResponse{}, err
	}

	return model.CardToResponse(card), nil
}

// List returns all of the caller's cards, newest first.
func (s *CardService) List(ctx context.Context, userID int64) ([]model.CardResponse, error) {
	cards, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return model.CardsToResponse(cards), nil
}

// Delete removes a card owned by the caller.
func (s *CardService) Delete(ctx context.Context, userID, cardID int64) error {
	card, err := s.load(ctx, cardID)
	if err != nil {
		return err
	}

	if err := authorizeOwner(card, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, cardID); err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			return ErrCardNotFound
		}
		return err
	}
	return nil
}

func (s *CardService) load(ctx context.Context, id int64) (*model.CustomCard, error) {
	card, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return card, nil
}

func isValidCardType(t string) bool {
	for _, v := range validCardTypes {
		if t == v {
			return true
		}
	}
	return false
}
