package domain

import "time"

// Product é uma corrente anunciada por uma loja.
type Product struct {
	ID             int       `json:"productID"`
	StoreID        int       `json:"storeID"`
	ChainType      string    `json:"chain_type"`
	ChainPurity    string    `json:"chain_purity"`
	ChainThickness float64   `json:"chain_thickness"`
	ChainLength    float64   `json:"chain_length"`
	ChainColor     string    `json:"chain_color"`
	ChainWeight    float64   `json:"chain_weight"`
	SetPrice       float64   `json:"set_price"`
	CreatedAt      time.Time `json:"created_at"`
}
