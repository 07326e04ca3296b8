package eventos

import (
	"sync"
	"time"

	"github.com/sisoputnfrba/minios/kernel/internal"
)

type Tipo string

const (
	EventoCreacion          Tipo = "creacion"
	EventoCambioEstado      Tipo = "cambio_estado"
	EventoFinalizacion      Tipo = "finalizacion"
	EventoRecursosOtorgados Tipo = "recursos_otorgados"
	EventoRecursosDenegados Tipo = "recursos_denegados"
)

// Evento describe algo que le pasó a un proceso de la simulación
type Evento struct {
	Tipo      Tipo            `json:"tipo"`
	Instancia string          `json:"instancia"`
	PID       int             `json:"pid"`
	Anterior  internal.Estado `json:"anterior,omitempty"`
	Estado    internal.Estado `json:"estado,omitempty"`
	Vector    []int           `json:"vector,omitempty"`
	Detalle   string          `json:"detalle,omitempty"`
	Momento   time.Time       `json:"momento"`
}

// Emisor recibe los eventos de la simulación. Emitir no debe bloquear: se llama con el
// planificador tomado.
type Emisor interface {
	Emitir(evento Evento)
}

// Nop descarta los eventos
type Nop struct{}

func (Nop) Emitir(Evento) {}

// Multiple reparte cada evento a todos sus emisores, en orden
type Multiple []Emisor

func (m Multiple) Emitir(evento Evento) {
	for _, e := range m {
		e.Emitir(evento)
	}
}

// Registro guarda en memoria los últimos eventos para poder consultarlos
type Registro struct {
	mu        sync.Mutex
	eventos   []Evento
	capacidad int
}

func NewRegistro(capacidad int) *Registro {
	return &Registro{
		eventos:   make([]Evento, 0, capacidad),
		capacidad: capacidad,
	}
}

func (r *Registro) Emitir(evento Evento) {
	if r.capacidad <= 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.eventos) == r.capacidad {
		copy(r.eventos, r.eventos[1:])
		r.eventos = r.eventos[:len(r.eventos)-1]
	}
	r.eventos = append(r.eventos, evento)
}

// Ultimos devuelve una copia de los eventos guardados, del más viejo al más nuevo
func (r *Registro) Ultimos() []Evento {
	r.mu.Lock()
	defer r.mu.Unlock()

	copia := make([]Evento, len(r.eventos))
	copy(copia, r.eventos)
	return copia
}
