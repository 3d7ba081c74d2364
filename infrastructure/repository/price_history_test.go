package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbbreviateName(t *testing.T) {
	tests := []struct {
		name     string
		first    string
		lastname string
		expected string
	}{
		{"nome e sobrenome", "Maria", "Silva", "Maria S."},
		{"nome composto usa o primeiro", "Ana Clara", "Souza", "Ana S."},
		{"sobrenome minúsculo vira inicial maiúscula", "João", "pereira", "João P."},
		{"sobrenome acentuado preserva a runa inteira", "Maria", "Ávila", "Maria Á."},
		{"sobrenome acentuado minúsculo", "Pedro", "ávila", "Pedro Á."},
		{"sem sobrenome", "Maria", "", "Maria"},
		{"nome vazio", "", "Silva", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, abbreviateName(tt.first, tt.lastname))
		})
	}
}
