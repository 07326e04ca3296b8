package planificadores

import (
	"fmt"
	"slices"
	"time"

	"github.com/sisoputnfrba/minios/kernel/internal"
	"github.com/sisoputnfrba/minios/kernel/internal/eventos"
	"github.com/sisoputnfrba/minios/utils/log"
)

var ahora = time.Now

// Creacion es lo que se informa al crear un proceso
type Creacion struct {
	PID              int   `json:"pid"`
	Paginas          int   `json:"paginas"`
	PaginasInvalidas int   `json:"paginas_invalidas"`
	MaxNecesidad     []int `json:"max_necesidad"`
}

// CrearProceso da de alta un proceso con la ráfaga y el tamaño pedidos. Si maxNecesidad es nil la
// decide la política configurada. El proceso pasa de NEW a READY en el momento: NEW no se observa
// desde afuera. Todo lo que puede fallar se valida antes de consumir el PID, la fila del banquero
// o algún marco.
func (p *Service) CrearProceso(rafaga, tamanio int, maxNecesidad []int) (Creacion, error) {
	if rafaga < 0 || tamanio < 0 {
		return Creacion{}, fmt.Errorf("ráfaga %d y tamaño %d no pueden ser negativos: %w",
			rafaga, tamanio, internal.ErrParametroInvalido)
	}
	if tamanio > p.TamanioMax {
		return Creacion{}, fmt.Errorf("tamaño %d supera el máximo de %d: %w",
			tamanio, p.TamanioMax, internal.ErrParametroInvalido)
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()

	if len(p.procesos) >= p.MaxProcesos {
		return Creacion{}, fmt.Errorf("hay %d procesos: %w", len(p.procesos), internal.ErrLimiteDeProcesos)
	}

	if maxNecesidad == nil {
		maxNecesidad = p.Politica.MaxNecesidad(p.recursos.Totales())
	}
	if err := p.recursos.ValidarMaxNecesidad(maxNecesidad); err != nil {
		return Creacion{}, err
	}

	// La fila del banquero ocupa el índice del PID
	if _, err := p.recursos.AgregarProceso(maxNecesidad); err != nil {
		return Creacion{}, err
	}
	pid := p.pids.GetUniqueID()

	pcb := &internal.PCB{
		PID:            pid,
		Estado:         internal.EstadoNew,
		Rafaga:         rafaga,
		Restante:       rafaga,
		MetricasEstado: map[internal.Estado]int{internal.EstadoNew: 1},
	}

	//Log obligatorio: Creación de proceso
	p.Log.Info(fmt.Sprintf("## (%d) Se crea el proceso - Estado: NEW", pid))

	pcb.TablaDePaginas = p.memoria.InicializarTabla(pid, tamanio)
	p.procesos = append(p.procesos, &internal.Proceso{PCB: pcb})

	p.emitir(eventos.Evento{
		Tipo:   eventos.EventoCreacion,
		PID:    pid,
		Estado: internal.EstadoNew,
		Vector: slices.Clone(maxNecesidad),
	})
	p.cambiarEstado(pcb, internal.EstadoReady)

	p.Log.Debug("Proceso creado",
		log.IntAttr("pid", pid),
		log.IntAttr("rafaga", rafaga),
		log.IntAttr("tamanio", tamanio),
		log.IntAttr("paginas", pcb.Paginas()),
		log.IntAttr("paginas_invalidas", pcb.PaginasInvalidas()),
		log.AnyAttr("max_necesidad", maxNecesidad),
	)

	return Creacion{
		PID:              pid,
		Paginas:          pcb.Paginas(),
		PaginasInvalidas: pcb.PaginasInvalidas(),
		MaxNecesidad:     slices.Clone(maxNecesidad),
	}, nil
}

// cambiarEstado hace la transición, la loguea y emite el evento. Requiere el mutex tomado.
func (p *Service) cambiarEstado(pcb *internal.PCB, nuevo internal.Estado) {
	anterior := pcb.CambiarEstado(nuevo)

	//Log obligatorio: Cambio de estado
	// "## (<PID>) Pasa del estado <ESTADO_ANTERIOR> al estado <ESTADO_ACTUAL>"
	p.Log.Info(fmt.Sprintf("## (%d) Pasa del estado %s al estado %s", pcb.PID, anterior, nuevo))

	p.emitir(eventos.Evento{
		Tipo:     eventos.EventoCambioEstado,
		PID:      pcb.PID,
		Anterior: anterior,
		Estado:   nuevo,
	})
}
