// Package errors define la taxonomía de errores de la API HTTP y su
// serialización JSON estándar.
package errors

import (
	"encoding/json"
	"net/http"
)

// errorResponse controla exactamente qué campos ven los clientes.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// WriteError escribe la respuesta HTTP para el error dado.
// Errores que no son *AppError se mapean a error interno.
func WriteError(w http.ResponseWriter, err error) {
	appErr := FromError(err)

	resp := errorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
		Detail:  appErr.Detail,
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(appErr.HTTPStatus)
	_ = json.NewEncoder(w).Encode(resp)
}
