package domain

import "time"

// Planos de assinatura disponíveis para lojistas
const (
	SubscriptionPlanMonthly   = "1 MONTH"
	SubscriptionPlanQuarterly = "3 MONTHS"
	SubscriptionPlanAnnual    = "12 MONTHS"
)

type Subscription struct {
	ID            int       `json:"subscriptionID"`
	OwnerID       int       `json:"ownerID"`
	ReferenceCode string    `json:"reference_code"`
	Plan          string    `json:"type"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	JoinFee       float64   `json:"join_fee"`
}

// SubscriptionReport agrega todas as assinaturas e a receita total de
// taxas de adesão.
type SubscriptionReport struct {
	Reports []Subscription `json:"reports"`
	Total   float64        `json:"total"`
}
