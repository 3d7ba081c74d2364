package domain

type Store struct {
	ID      int     `json:"storeID"`
	Name    string  `json:"store_name"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Phone   string  `json:"phone"`
	Email   string  `json:"email"`
	Website *string `json:"website,omitempty"`

	// Campos derivados de store_rating_aggregate
	Rating      float64 `json:"rating"`
	RatingCount int     `json:"rating_count"`
}

// StoreHours é o horário de funcionamento de um dia da semana. OpenTime e
// CloseTime chegam formatados (hh:mm AM/PM) ou como "CLOSED" quando a loja
// não abre no dia.
type StoreHours struct {
	ID        int    `json:"storeHourID"`
	StoreID   int    `json:"storeID"`
	Day       string `json:"day"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}
