// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "time"

// PriceEntry é uma observação de preço enviada por um usuário para um
// produto de uma loja. Por par (usuário, produto) existe no máximo uma
// entrada por dia; por produto existem no máximo PriceHistoryLimit entradas.
type PriceEntry struct {
	ID         int       `json:"id"`
	UserID     int       `json:"user_id"`
	ProductID  int       `json:"product_id"`
	StoreID    int       `json:"store_id"`
	Price      float64   `json:"price"`
	ObservedAt time.Time `json:"observed_at"`
}

// PriceHistoryLimit é o número máximo de entradas retidas por produto.
// Ao exceder, as entradas mais antigas por observed_at são removidas.
const PriceHistoryLimit = 5

// PurchaseHistoryItem é a projeção de uma entrada do histórico para
// exibição: nome do usuário abreviado (primeiro nome + inicial do
// sobrenome), preço e data da compra.
type PurchaseHistoryItem struct {
	DisplayName string    `json:"full_name"`
	Price       float64   `json:"latest_price"`
	PurchasedAt time.Time `json:"purchase_date"`
}
