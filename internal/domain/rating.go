package domain

import "time"

// Rating é a avaliação de um usuário para uma loja, opcionalmente vinculada
// a um produto. Por chave (usuário, loja, produto) existe no máximo uma
// linha viva; reenvios atualizam a linha existente.
type Rating struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	StoreID     int       `json:"store_id"`
	ProductID   *int      `json:"product_id,omitempty"`
	Rating      int       `json:"rating"`
	SubmittedAt time.Time `json:"submitted_at"`
}

const (
	RatingMin = 1
	RatingMax = 5
)

// StoreRatingAggregate é a visão materializada da nota de uma loja,
// sempre rederivada do conjunto vivo de avaliações, nunca ajustada
// incrementalmente.
type StoreRatingAggregate struct {
	StoreID       int     `json:"store_id"`
	RatingCount   int     `json:"rating_count"`
	AverageRating float64 `json:"average_rating"`
}
