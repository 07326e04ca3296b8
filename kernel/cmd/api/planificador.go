package api

import (
	"net/http"
)

// PlanificarPaso atiende un proceso; 204 si no había ninguno en READY
func (h *Handler) PlanificarPaso(w http.ResponseWriter, r *http.Request) {
	atencion, ok := h.Planificador.PlanificarPaso()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.responder(w, r, http.StatusOK, atencion)
}

func (h *Handler) EjecutarHastaFinalizar(w http.ResponseWriter, r *http.Request) {
	h.responder(w, r, http.StatusOK, h.Planificador.EjecutarHastaFinalizar())
}

func (h *Handler) Estado(w http.ResponseWriter, r *http.Request) {
	h.responder(w, r, http.StatusOK, h.Planificador.Resumen())
}

func (h *Handler) UltimosEventos(w http.ResponseWriter, r *http.Request) {
	h.responder(w, r, http.StatusOK, h.Eventos.Ultimos())
}
