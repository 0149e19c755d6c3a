package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/KehaoC/GF/internal/model"
)

var ErrCardNotFound = errors.New("card not found")

// CardRepository handles custom card persistence operations.
type CardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new CardRepository.
func NewCardRepository(db *sql.DB) *CardRepository {
	return &CardRepository{db: db}
}

const cardColumns = `id, card_type, image_url, text_content, owner_id, created_at`

// Create inserts a new card and sets the generated ID on the struct.
func (r *CardRepository) Create(ctx context.Context, c *model.CustomCard) error {
	query := `INSERT INTO custom_cards (card_type, image_url, text_content, owner_id) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, c.CardType, c.ImageURL, c.TextContent, c.OwnerID)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	c.ID = id
	return nil
}

// GetByID retrieves a card by its ID.
func (r *CardRepository) GetByID(ctx context.Context, id int64) (*model.CustomCard, error) {
	query := `SELECT ` + cardColumns + ` FROM custom_cards WHERE id = ?`

	c := &model.CustomCard{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.CardType, &c.ImageURL, &c.TextContent, &c.OwnerID, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}

	return c, nil
}

// ListByOwner retrieves all of a user's cards, newest first.
func (r *CardRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.CustomCard, error) {
	query := `SELECT ` + cardColumns + ` FROM custom_cards WHERE owner_id = ? ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []model.CustomCard
	for rows.Next() {
		var c model.CustomCard
		if err := rows.Scan(
			&c.ID, &c.CardType, &c.ImageURL, &c.TextContent, &c.OwnerID, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}

	return cards, rows.Err()
}

// Delete removes a card by ID.
func (r *CardRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM custom_cards WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrCardNotFound
	}
	return nil
}
