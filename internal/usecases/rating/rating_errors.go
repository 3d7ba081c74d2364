package rating

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de avaliações
var (
	// Erros de validação
	ErrInvalidRating = errors.New("avaliação deve estar entre 1 e 5")
	ErrMissingIDs    = errors.New("usuário e loja são obrigatórios")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// SubmissionError envolve a causa de uma falha de avaliação com o código de
// erro para a API.
type SubmissionError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *SubmissionError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// NewSubmissionError cria um novo SubmissionError
func NewSubmissionError(err error, code string, details string) *SubmissionError {
	return &SubmissionError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// IsValidationError verifica se o erro é de validação de entrada
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRating) || errors.Is(err, ErrMissingIDs)
}
