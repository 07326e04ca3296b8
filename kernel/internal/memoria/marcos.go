package memoria

import (
	"container/heap"
	"fmt"

	"github.com/sisoputnfrba/minios/kernel/internal"
)

// SinDuenio marca en la tabla de dueños un marco libre
const SinDuenio = -1

// EstadoMarco es la foto de un marco para el mapa de memoria
type EstadoMarco struct {
	Marco int  `json:"marco"`
	PID   int  `json:"pid"`
	Libre bool `json:"libre"`
}

// marcosLibres es un min-heap de índices de marco. Entregar siempre el menor índice libre mantiene
// el mismo orden de asignación que recorrer el bitmap desde el principio.
type marcosLibres []int

func (m marcosLibres) Len() int           { return len(m) }
func (m marcosLibres) Less(i, j int) bool { return m[i] < m[j] }
func (m marcosLibres) Swap(i, j int)      { m[i], m[j] = m[j], m[i] }

func (m *marcosLibres) Push(x any) {
	*m = append(*m, x.(int))
}

func (m *marcosLibres) Pop() any {
	old := *m
	n := len(old)
	x := old[n-1]
	*m = old[:n-1]
	return x
}

// TablaDeMarcos administra los marcos de memoria física: cuáles están libres y qué proceso
// es dueño de cada uno de los ocupados.
type TablaDeMarcos struct {
	libres  marcosLibres
	duenios []int
}

func NewTablaDeMarcos(cantidad int) *TablaDeMarcos {
	t := &TablaDeMarcos{
		libres:  make(marcosLibres, cantidad),
		duenios: make([]int, cantidad),
	}
	// Un slice ordenado ya cumple la propiedad de heap
	for i := 0; i < cantidad; i++ {
		t.libres[i] = i
		t.duenios[i] = SinDuenio
	}
	return t
}

// Asignar reserva el marco libre de menor índice para el proceso. Si no queda ninguno devuelve
// ErrMarcosAgotados.
func (t *TablaDeMarcos) Asignar(pid int) (int, error) {
	if t.libres.Len() == 0 {
		return SinDuenio, internal.ErrMarcosAgotados
	}

	marco := heap.Pop(&t.libres).(int)
	t.duenios[marco] = pid
	return marco, nil
}

// Liberar devuelve el marco al pool. Solo se puede liberar un marco ocupado, así una doble
// liberación no lo deja dos veces en la lista de libres.
func (t *TablaDeMarcos) Liberar(marco int) error {
	if marco < 0 || marco >= len(t.duenios) || t.duenios[marco] == SinDuenio {
		return fmt.Errorf("marco %d: %w", marco, internal.ErrMarcoNoAsignado)
	}

	t.duenios[marco] = SinDuenio
	heap.Push(&t.libres, marco)
	return nil
}

// Duenio devuelve el PID dueño del marco, o false si está libre o fuera de rango
func (t *TablaDeMarcos) Duenio(marco int) (int, bool) {
	if marco < 0 || marco >= len(t.duenios) || t.duenios[marco] == SinDuenio {
		return SinDuenio, false
	}
	return t.duenios[marco], true
}

func (t *TablaDeMarcos) Libres() int {
	return t.libres.Len()
}

func (t *TablaDeMarcos) Cantidad() int {
	return len(t.duenios)
}

// Snapshot devuelve el mapa de memoria ordenado por índice de marco
func (t *TablaDeMarcos) Snapshot() []EstadoMarco {
	mapa := make([]EstadoMarco, len(t.duenios))
	for i, pid := range t.duenios {
		mapa[i] = EstadoMarco{
			Marco: i,
			PID:   pid,
			Libre: pid == SinDuenio,
		}
	}
	return mapa
}
