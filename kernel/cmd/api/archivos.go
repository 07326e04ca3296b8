package api

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/sisoputnfrba/minios/kernel/internal"
	"github.com/sisoputnfrba/minios/utils/log"
)

// GuardarArchivo toma el cuerpo crudo de la petición como contenido del archivo
func (h *Handler) GuardarArchivo(w http.ResponseWriter, r *http.Request) {
	nombre, err := nombreDeRuta(r)
	if err != nil {
		h.responderError(w, r, err)
		return
	}

	// Se lee un byte de más para poder rechazar los contenidos demasiado largos
	datos, err := io.ReadAll(io.LimitReader(r.Body, int64(h.Config.MaxFileData)+1))
	if err != nil {
		h.responderError(w, r, fmt.Errorf("no se pudo leer el contenido: %w", internal.ErrParametroInvalido))
		return
	}

	if err := h.Archivos.Guardar(nombre, datos); err != nil {
		h.responderError(w, r, err)
		return
	}

	h.Log.Info(fmt.Sprintf("## Archivo <%s> guardado - Tamaño: %d", nombre, len(datos)))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) LeerArchivo(w http.ResponseWriter, r *http.Request) {
	nombre, err := nombreDeRuta(r)
	if err != nil {
		h.responderError(w, r, err)
		return
	}

	datos, err := h.Archivos.Leer(nombre)
	if err != nil {
		h.responderError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(datos); err != nil {
		h.Log.Error("Error al enviar el archivo",
			log.StringAttr("nombre", nombre),
			log.ErrAttr(err),
		)
	}
}

func (h *Handler) ListarArchivos(w http.ResponseWriter, r *http.Request) {
	h.responder(w, r, http.StatusOK, RespuestaArchivos{Archivos: h.Archivos.Listar()})
}

// nombreDeRuta devuelve el nombre del archivo sin escapes. Cuando la URL trae RawPath chi entrega el
// parámetro tal como vino escapado.
func nombreDeRuta(r *http.Request) (string, error) {
	nombre := chi.URLParam(r, "nombre")
	if r.URL.RawPath == "" {
		return nombre, nil
	}
	nombre, err := url.PathUnescape(nombre)
	if err != nil {
		return "", fmt.Errorf("nombre de archivo mal escapado: %w", internal.ErrParametroInvalido)
	}
	return nombre, nil
}
