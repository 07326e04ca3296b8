package memoria

import (
	"fmt"
	"log/slog"

	"github.com/sisoputnfrba/minios/kernel/internal"
	"github.com/sisoputnfrba/minios/utils/log"
)

// SinMarco es el marco que se guarda en una entrada de página inválida
const SinMarco = -1

type Memoria struct {
	Marcos        *TablaDeMarcos
	TamanioPagina int
	Log           *slog.Logger
}

// Traduccion detalla cómo se resolvió una dirección lógica
type Traduccion struct {
	Logica         int `json:"logica"`
	Pagina         int `json:"pagina"`
	Desplazamiento int `json:"desplazamiento"`
	Marco          int `json:"marco"`
	Fisica         int `json:"fisica"`
}

// NewMemoria crea la memoria paginada. La cantidad de marcos es tamanioMemoria / tamanioPagina.
func NewMemoria(tamanioMemoria, tamanioPagina int, logger *slog.Logger) *Memoria {
	return &Memoria{
		Marcos:        NewTablaDeMarcos(tamanioMemoria / tamanioPagina),
		TamanioPagina: tamanioPagina,
		Log:           logger,
	}
}

// CalcularPaginas calcula la cantidad de páginas necesarias para un tamaño dado (redondeo hacia arriba)
func (m *Memoria) CalcularPaginas(tamanio int) int {
	if tamanio <= 0 {
		return 0
	}
	paginas := tamanio / m.TamanioPagina
	if tamanio%m.TamanioPagina != 0 {
		paginas++
	}
	return paginas
}

// InicializarTabla arma la tabla de páginas del proceso pidiendo un marco por página, en orden.
// Cuando se agotan los marcos la página queda inválida y se sigue con las demás: el proceso se crea
// igual, con parte de su espacio sin respaldo.
func (m *Memoria) InicializarTabla(pid, tamanio int) []internal.EntradaPagina {
	tabla := make([]internal.EntradaPagina, m.CalcularPaginas(tamanio))

	for pagina := range tabla {
		marco, err := m.Marcos.Asignar(pid)
		if err != nil {
			m.Log.Warn("Page fault! Sin marcos libres para la página",
				log.IntAttr("pid", pid),
				log.IntAttr("pagina", pagina),
				log.ErrAttr(err),
			)
			tabla[pagina] = internal.EntradaPagina{Marco: SinMarco, Valida: false}
			continue
		}

		tabla[pagina] = internal.EntradaPagina{Marco: marco, Valida: true}
	}

	m.Log.Debug("Tabla de páginas inicializada",
		log.IntAttr("pid", pid),
		log.IntAttr("tamanio", tamanio),
		log.IntAttr("paginas", len(tabla)),
		log.IntAttr("marcos_libres", m.Marcos.Libres()),
	)

	return tabla
}

// Traducir convierte una dirección lógica en física usando la tabla del proceso. No tiene efectos:
// un page fault es un resultado, no dispara la carga de la página.
func (m *Memoria) Traducir(tabla []internal.EntradaPagina, logica int) (Traduccion, error) {
	if logica < 0 {
		return Traduccion{}, fmt.Errorf("dirección lógica %d negativa: %w", logica, internal.ErrPageFault)
	}

	pagina := logica / m.TamanioPagina
	desplazamiento := logica % m.TamanioPagina

	if pagina >= len(tabla) || !tabla[pagina].Valida {
		return Traduccion{}, fmt.Errorf("dirección lógica %d (página %d): %w", logica, pagina, internal.ErrPageFault)
	}

	marco := tabla[pagina].Marco
	return Traduccion{
		Logica:         logica,
		Pagina:         pagina,
		Desplazamiento: desplazamiento,
		Marco:          marco,
		Fisica:         marco*m.TamanioPagina + desplazamiento,
	}, nil
}

// LiberarTabla devuelve al pool los marcos de todas las páginas válidas y deja las entradas
// inválidas. Devuelve la cantidad de marcos liberados.
func (m *Memoria) LiberarTabla(pid int, tabla []internal.EntradaPagina) int {
	liberados := 0
	for pagina, entrada := range tabla {
		if !entrada.Valida {
			continue
		}

		if err := m.Marcos.Liberar(entrada.Marco); err != nil {
			m.Log.Error("Error al liberar marco",
				log.IntAttr("pid", pid),
				log.IntAttr("pagina", pagina),
				log.ErrAttr(err),
			)
		} else {
			liberados++
		}
		tabla[pagina] = internal.EntradaPagina{Marco: SinMarco, Valida: false}
	}

	m.Log.Debug("Marcos liberados",
		log.IntAttr("pid", pid),
		log.IntAttr("marcos_liberados", liberados),
		log.IntAttr("marcos_libres", m.Marcos.Libres()),
	)

	return liberados
}
