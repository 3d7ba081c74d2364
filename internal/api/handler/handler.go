// Package handler contém os handlers HTTP da API do marketplace.
package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// pathParamInt extrai um parâmetro numérico da URL
func pathParamInt(r *http.Request, name string) (int, error) {
	raw := httprouter.ParamsFromContext(r.Context()).ByName(name)
	return strconv.Atoi(raw)
}

// writeJSON serializa a resposta com o content-type adequado
func writeJSON(w http.ResponseWriter, status int, payload any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(payload)
}
