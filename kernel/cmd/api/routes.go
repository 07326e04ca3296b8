package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	// Shell --> Kernel
	r.Route("/procesos", func(r chi.Router) {
		r.Post("/", h.CrearProceso)
		r.Get("/", h.ListarProcesos)
		r.Get("/{pid}/paginas", h.TablaDePaginas)
		r.Get("/{pid}/traduccion", h.Traducir)
		r.Post("/{pid}/recursos", h.SolicitarRecursos)
	})

	r.Post("/planificador/paso", h.PlanificarPaso)
	r.Post("/planificador/ejecutar", h.EjecutarHastaFinalizar)

	r.Get("/recursos", h.EstadoRecursos)
	r.Get("/memoria/marcos", h.Marcos)

	r.Get("/archivos", h.ListarArchivos)
	r.Put("/archivos/{nombre}", h.GuardarArchivo)
	r.Get("/archivos/{nombre}", h.LeerArchivo)

	r.Get("/estado", h.Estado)
	r.Get("/eventos", h.UltimosEventos)

	return r
}
