package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tipos de conta aceitos no cadastro
const (
	AccountTypeCustomer = "customer"
	AccountTypeBusiness = "business"
)

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Lastname     string    `json:"lastname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	AccountType  string    `json:"account_type"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Claims struct {
	UserID          int
	UserName        string
	UserLastname    string
	UserEmail       string
	UserAccountType string
	jwt.RegisteredClaims
}
