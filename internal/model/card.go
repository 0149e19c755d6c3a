package model

import "time"

// CustomCard represents a user-created card in the card library: an image
// plus optional descriptive text, tagged with a card type.
type CustomCard struct {
	ID          int64
	CardType    string
	ImageURL    string
	TextContent *string
	OwnerID     int64
	CreatedAt   time.Time
}

// Owner returns the owning user ID for authorization checks.
func (c *CustomCard) Owner() int64 { return c.OwnerID }

// CreateCardRequest represents a card creation request.
type CreateCardRequest struct {
	CardType    string  `json:"card_type"`
	ImageURL    string  `json:"image_url"`
	TextContent *string `json:"text_content"`
}

// CardResponse represents a card in API responses.
type CardResponse struct {
	ID          int64     `json:"id"`
	CardType    string    `json:"card_type"`
	ImageURL    string    `json:"image_url"`
	TextContent *string   `json:"text_content"`
	OwnerID     int64     `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// CardToResponse converts a CustomCard to its API representation.
func CardToResponse(c *CustomCard) CardResponse {
	return CardResponse{
		ID:          c.ID,
		CardType:    c.CardType,
		ImageURL:    c.ImageURL,
		TextContent: c.TextContent,
		OwnerID:     c.OwnerID,
		CreatedAt:   c.CreatedAt,
	}
}

// CardsToResponse converts a slice of cards to API representations.
func CardsToResponse(cards []CustomCard) []CardResponse {
	result := make([]CardResponse, len(cards))
	for i := range cards {
		result[i] = CardToResponse(&cards[i])
	}
	return result
}
