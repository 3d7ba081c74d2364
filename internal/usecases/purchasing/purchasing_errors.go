package purchasing

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de submissão de compras
var (
	// Erros de validação
	ErrInvalidPrice     = errors.New("preço deve ser maior que zero")
	ErrInvalidTimestamp = errors.New("data da compra inválida")
	ErrMissingIDs       = errors.New("usuário, produto e loja são obrigatórios")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// SubmissionError envolve a causa de uma falha de submissão com o código de
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
	return errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrInvalidTimestamp) ||
		errors.Is(err, ErrMissingIDs)
}
