package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sisoputnfrba/minios/kernel/internal"
	"github.com/sisoputnfrba/minios/utils/log"
)

func (h *Handler) CrearProceso(w http.ResponseWriter, r *http.Request) {
	var peticion PeticionCrearProceso
	if err := json.NewDecoder(r.Body).Decode(&peticion); err != nil {
		h.Log.Error("Error al decodificar la petición de creación",
			log.ErrAttr(err),
		)
		h.responderError(w, r, fmt.Errorf("cuerpo inválido: %w", internal.ErrParametroInvalido))
		return
	}

	creacion, err := h.Planificador.CrearProceso(peticion.Rafaga, peticion.Memoria, peticion.MaxNecesidad)
	if err != nil {
		h.Log.Debug("No se pudo crear el proceso",
			log.AnyAttr("peticion", peticion),
			log.ErrAttr(err),
		)
		h.responderError(w, r, err)
		return
	}

	h.responder(w, r, http.StatusCreated, creacion)
}

func (h *Handler) ListarProcesos(w http.ResponseWriter, r *http.Request) {
	h.responder(w, r, http.StatusOK, h.Planificador.Procesos())
}

func (h *Handler) TablaDePaginas(w http.ResponseWriter, r *http.Request) {
	pid, err := leerPID(r)
	if err != nil {
		h.responderError(w, r, err)
		return
	}

	tabla, err := h.Planificador.TablaDePaginas(pid)
	if err != nil {
		h.responderError(w, r, err)
		return
	}
	h.responder(w, r, http.StatusOK, tabla)
}

func (h *Handler) Traducir(w http.ResponseWriter, r *http.Request) {
	pid, err := leerPID(r)
	if err != nil {
		h.responderError(w, r, err)
		return
	}

	direccion, err := strconv.Atoi(r.URL.Query().Get("direccion"))
	if err != nil {
		h.responderError(w, r, fmt.Errorf("direccion %q: %w", r.URL.Query().Get("direccion"), internal.ErrParametroInvalido))
		return
	}

	traduccion, err := h.Planificador.Traducir(pid, direccion)
	if err != nil {
		h.responderError(w, r, err)
		return
	}
	h.responder(w, r, http.StatusOK, traduccion)
}

func (h *Handler) SolicitarRecursos(w http.ResponseWriter, r *http.Request) {
	pid, err := leerPID(r)
	if err != nil {
		h.responderError(w, r, err)
		return
	}

	var peticion PeticionRecursos
	if err := json.NewDecoder(r.Body).Decode(&peticion); err != nil {
		h.responderError(w, r, fmt.Errorf("cuerpo inválido: %w", internal.ErrParametroInvalido))
		return
	}

	if err := h.Planificador.SolicitarRecursos(pid, peticion.Solicitud); err != nil {
		h.responderError(w, r, err)
		return
	}
	h.responder(w, r, http.StatusOK, h.Planificador.EstadoRecursos())
}

func leerPID(r *http.Request) (int, error) {
	valor := chi.URLParam(r, "pid")
	pid, err := strconv.Atoi(valor)
	if err != nil {
		return 0, fmt.Errorf("pid %q no es un número: %w", valor, internal.ErrParametroInvalido)
	}
	return pid, nil
}
