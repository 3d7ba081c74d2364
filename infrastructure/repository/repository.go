// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import "errors"

// ErrNotFound indica que a linha alvo de uma atualização não existe mais
// (tipicamente removida por um escritor concorrente entre a leitura e a
// escrita). Os serviços tratam esse caso como conflito transitório.
var ErrNotFound = errors.New("registro não encontrado")
