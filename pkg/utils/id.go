package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateReferenceCode gera o código público de uma assinatura.
func GenerateReferenceCode() (string, error) {
	return gonanoid.Generate(characters, 8)
}
