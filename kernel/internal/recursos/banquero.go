package recursos

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/sisoputnfrba/minios/kernel/internal"
	"github.com/sisoputnfrba/minios/utils/log"
)

// Recursos lleva los vectores del algoritmo del banquero. Cada proceso ocupa la fila de su PID.
//
// Invariantes: para cada tipo r, disponibles[r] + Σ asignacion[p][r] == totales[r], y
// necesidad[p][r] == maxNecesidad[p][r] - asignacion[p][r] >= 0 mientras el proceso no liberó.
type Recursos struct {
	Log          *slog.Logger
	totales      []int
	disponibles  []int
	maxNecesidad [][]int
	asignacion   [][]int
	necesidad    [][]int
	liberados    []bool
}

// Estado es una copia de los vectores para inspección
type Estado struct {
	Totales      []int   `json:"totales"`
	Disponibles  []int   `json:"disponibles"`
	MaxNecesidad [][]int `json:"max_necesidad"`
	Asignacion   [][]int `json:"asignacion"`
	Necesidad    [][]int `json:"necesidad"`
}

// snapshot guarda lo que toca una solicitud para poder deshacerla tal cual estaba
type snapshot struct {
	disponibles []int
	asignacion  []int
	necesidad   []int
}

func NewRecursos(totales []int, logger *slog.Logger) *Recursos {
	return &Recursos{
		Log:          logger,
		totales:      slices.Clone(totales),
		disponibles:  slices.Clone(totales),
		maxNecesidad: make([][]int, 0),
		asignacion:   make([][]int, 0),
		necesidad:    make([][]int, 0),
		liberados:    make([]bool, 0),
	}
}

// Tipos devuelve la cantidad de tipos de recurso
func (r *Recursos) Tipos() int {
	return len(r.totales)
}

func (r *Recursos) Totales() []int {
	return slices.Clone(r.totales)
}

func (r *Recursos) Procesos() int {
	return len(r.asignacion)
}

// ValidarMaxNecesidad verifica que el vector tenga un valor por tipo y que ningún proceso declare
// más de lo que existe en el sistema.
func (r *Recursos) ValidarMaxNecesidad(maxNecesidad []int) error {
	if len(maxNecesidad) != r.Tipos() {
		return fmt.Errorf("se esperaban %d tipos de recurso y llegaron %d: %w",
			r.Tipos(), len(maxNecesidad), internal.ErrVectorInvalido)
	}
	for i, v := range maxNecesidad {
		if v < 0 || v > r.totales[i] {
			return fmt.Errorf("necesidad máxima %d del recurso %d fuera de [0, %d]: %w",
				v, i, r.totales[i], internal.ErrVectorInvalido)
		}
	}
	return nil
}

// AgregarProceso suma la fila de un proceso nuevo: asignación en cero y necesidad igual a la
// máxima. Devuelve el índice de la fila.
func (r *Recursos) AgregarProceso(maxNecesidad []int) (int, error) {
	if err := r.ValidarMaxNecesidad(maxNecesidad); err != nil {
		return -1, err
	}

	r.maxNecesidad = append(r.maxNecesidad, slices.Clone(maxNecesidad))
	r.asignacion = append(r.asignacion, make([]int, r.Tipos()))
	r.necesidad = append(r.necesidad, slices.Clone(maxNecesidad))
	r.liberados = append(r.liberados, false)

	return len(r.asignacion) - 1, nil
}

// EsSeguro corre el algoritmo de seguridad del banquero: simula que cada proceso cuya necesidad
// entra en work termina y devuelve lo asignado, hasta que una pasada completa no avanza.
// El estado es seguro si todos los procesos pudieron terminar.
func (r *Recursos) EsSeguro() bool {
	work := slices.Clone(r.disponibles)
	finish := make([]bool, len(r.asignacion))

	for avanzo := true; avanzo; {
		avanzo = false
		for p := range r.asignacion {
			if finish[p] || !menorOIgual(r.necesidad[p], work) {
				continue
			}
			for i := range work {
				work[i] += r.asignacion[p][i]
			}
			finish[p] = true
			avanzo = true
		}
	}

	for _, terminado := range finish {
		if !terminado {
			return false
		}
	}
	return true
}

// Solicitar intenta asignar el vector al proceso. Primero valida contra la necesidad y lo
// disponible, después aplica la asignación en forma tentativa y la deshace si el estado
// resultante no es seguro.
func (r *Recursos) Solicitar(pid int, solicitud []int) error {
	if pid < 0 || pid >= len(r.asignacion) {
		return fmt.Errorf("pid %d: %w", pid, internal.ErrPIDInvalido)
	}
	if len(solicitud) != r.Tipos() {
		return fmt.Errorf("se esperaban %d tipos de recurso y llegaron %d: %w",
			r.Tipos(), len(solicitud), internal.ErrVectorInvalido)
	}
	for i, v := range solicitud {
		if v < 0 {
			return fmt.Errorf("cantidad negativa %d del recurso %d: %w", v, i, internal.ErrVectorInvalido)
		}
	}

	if !menorOIgual(solicitud, r.necesidad[pid]) {
		return fmt.Errorf("pid %d pide %v con necesidad %v: %w",
			pid, solicitud, r.necesidad[pid], internal.ErrExcedeNecesidad)
	}
	if !menorOIgual(solicitud, r.disponibles) {
		return fmt.Errorf("pid %d pide %v con disponibles %v: %w",
			pid, solicitud, r.disponibles, internal.ErrRecursosNoDisponibles)
	}

	previo := r.tomarSnapshot(pid)
	for i, v := range solicitud {
		r.disponibles[i] -= v
		r.asignacion[pid][i] += v
		r.necesidad[pid][i] -= v
	}

	if !r.EsSeguro() {
		r.restaurar(pid, previo)
		r.Log.Debug("Solicitud denegada por estado inseguro",
			log.IntAttr("pid", pid),
			log.AnyAttr("solicitud", solicitud),
			log.AnyAttr("disponibles", r.disponibles),
		)
		return fmt.Errorf("pid %d pide %v: %w", pid, solicitud, internal.ErrEstadoInseguro)
	}

	r.Log.Debug("Solicitud otorgada",
		log.IntAttr("pid", pid),
		log.AnyAttr("solicitud", solicitud),
		log.AnyAttr("disponibles", r.disponibles),
	)
	return nil
}

// Liberar devuelve todo lo asignado al proceso y anula su necesidad. Se llama una única vez,
// cuando el proceso termina. Devuelve el vector devuelto al sistema.
func (r *Recursos) Liberar(pid int) ([]int, error) {
	if pid < 0 || pid >= len(r.asignacion) {
		return nil, fmt.Errorf("pid %d: %w", pid, internal.ErrPIDInvalido)
	}
	if r.liberados[pid] {
		return nil, fmt.Errorf("pid %d ya liberó sus recursos: %w", pid, internal.ErrPIDInvalido)
	}

	devuelto := slices.Clone(r.asignacion[pid])
	for i := range r.disponibles {
		r.disponibles[i] += r.asignacion[pid][i]
		r.asignacion[pid][i] = 0
		r.necesidad[pid][i] = 0
	}
	r.liberados[pid] = true

	return devuelto, nil
}

// Snapshot copia todos los vectores
func (r *Recursos) Snapshot() Estado {
	return Estado{
		Totales:      slices.Clone(r.totales),
		Disponibles:  slices.Clone(r.disponibles),
		MaxNecesidad: clonarMatriz(r.maxNecesidad),
		Asignacion:   clonarMatriz(r.asignacion),
		Necesidad:    clonarMatriz(r.necesidad),
	}
}

func (r *Recursos) tomarSnapshot(pid int) snapshot {
	return snapshot{
		disponibles: slices.Clone(r.disponibles),
		asignacion:  slices.Clone(r.asignacion[pid]),
		necesidad:   slices.Clone(r.necesidad[pid]),
	}
}

func (r *Recursos) restaurar(pid int, s snapshot) {
	copy(r.disponibles, s.disponibles)
	copy(r.asignacion[pid], s.asignacion)
	copy(r.necesidad[pid], s.necesidad)
}

func menorOIgual(a, b []int) bool {
	for i := range a {
		if a[i] > b[i] {
			return false
		}
	}
	return true
}

func clonarMatriz(m [][]int) [][]int {
	copia := make([][]int, len(m))
	for i, fila := range m {
		copia[i] = slices.Clone(fila)
	}
	return copia
}
