package api

import "net/http"

func (h *Handler) Marcos(w http.ResponseWriter, r *http.Request) {
	h.responder(w, r, http.StatusOK, h.Planificador.Marcos())
}

func (h *Handler) EstadoRecursos(w http.ResponseWriter, r *http.Request) {
	h.responder(w, r, http.StatusOK, h.Planificador.EstadoRecursos())
}
