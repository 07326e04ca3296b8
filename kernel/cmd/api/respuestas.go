package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/sisoputnfrba/minios/kernel/internal"
	"github.com/sisoputnfrba/minios/utils/log"
)

const ContentTypeMsgpack = "application/msgpack"

// responder codifica v en msgpack si el cliente lo pide en Accept y en JSON en cualquier otro caso.
// Los dos formatos usan los mismos nombres de campo.
func (h *Handler) responder(w http.ResponseWriter, r *http.Request, status int, v any) {
	if strings.Contains(r.Header.Get("Accept"), ContentTypeMsgpack) {
		w.Header().Set("Content-Type", ContentTypeMsgpack)
		w.WriteHeader(status)
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		if err := enc.Encode(v); err != nil {
			h.Log.Error("Error al codificar la respuesta en msgpack", log.ErrAttr(err))
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Log.Error("Error al codificar la respuesta", log.ErrAttr(err))
	}
}

// responderError traduce el error del núcleo a un status HTTP y al cuerpo {error, codigo}
func (h *Handler) responderError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusDeError(err)
	if status >= http.StatusInternalServerError && status != http.StatusInsufficientStorage {
		h.Log.Error("Error inesperado atendiendo la petición",
			log.StringAttr("ruta", r.URL.Path),
			log.ErrAttr(err),
		)
	}
	h.responder(w, r, status, RespuestaError{
		Error:  err.Error(),
		Codigo: internal.Codigo(err),
	})
}

func StatusDeError(err error) int {
	switch {
	case errors.Is(err, internal.ErrPIDInvalido),
		errors.Is(err, internal.ErrArchivoNoEncontrado):
		return http.StatusNotFound
	case errors.Is(err, internal.ErrPageFault):
		return http.StatusUnprocessableEntity
	case errors.Is(err, internal.ErrExcedeNecesidad),
		errors.Is(err, internal.ErrRecursosNoDisponibles),
		errors.Is(err, internal.ErrEstadoInseguro):
		return http.StatusConflict
	case errors.Is(err, internal.ErrLimiteDeProcesos),
		errors.Is(err, internal.ErrFileSystemLleno):
		return http.StatusInsufficientStorage
	case errors.Is(err, internal.ErrVectorInvalido),
		errors.Is(err, internal.ErrParametroInvalido):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
