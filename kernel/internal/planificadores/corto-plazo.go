package planificadores

import (
	"fmt"

	"github.com/sisoputnfrba/minios/kernel/internal"
	"github.com/sisoputnfrba/minios/kernel/internal/eventos"
	"github.com/sisoputnfrba/minios/utils/log"
)

// Atencion es el resultado de darle un quantum a un proceso
type Atencion struct {
	PID      int             `json:"pid"`
	Estado   internal.Estado `json:"estado"`
	Restante int             `json:"restante"`
}

// PlanificarPaso atiende a un único proceso con round robin. Recorre la tabla en forma circular a
// partir del proceso siguiente al último atendido, buscando el primero en READY. Si no hay ninguno
// devuelve false sin modificar nada.
func (p *Service) PlanificarPaso() (Atencion, bool) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	n := len(p.procesos)
	indice := p.cursor
	for i := 0; i < n; i++ {
		indice = (indice + 1) % n
		proceso := p.procesos[indice]
		if proceso.PCB.Estado != internal.EstadoReady {
			continue
		}

		p.cursor = indice
		p.ejecutarQuantum(proceso.PCB)
		return Atencion{
			PID:      proceso.PCB.PID,
			Estado:   proceso.PCB.Estado,
			Restante: proceso.PCB.Restante,
		}, true
	}

	return Atencion{}, false
}

// EjecutarHastaFinalizar llama a PlanificarPaso hasta que no quede ningún proceso en READY y
// devuelve las atenciones en orden.
func (p *Service) EjecutarHastaFinalizar() []Atencion {
	atenciones := make([]Atencion, 0)
	for {
		atencion, ok := p.PlanificarPaso()
		if !ok {
			return atenciones
		}
		atenciones = append(atenciones, atencion)
	}
}

// ejecutarQuantum requiere el mutex tomado
func (p *Service) ejecutarQuantum(pcb *internal.PCB) {
	p.cambiarEstado(pcb, internal.EstadoRunning)
	pcb.Restante -= p.Quantum

	if pcb.Restante > 0 {
		p.cambiarEstado(pcb, internal.EstadoReady)
		return
	}

	pcb.Restante = 0
	p.finalizarProceso(pcb)
}

// finalizarProceso pasa el proceso a TERMINATED y devuelve sus marcos y sus recursos. Se llega una
// sola vez por proceso porque un TERMINATED nunca vuelve a ser elegido. Requiere el mutex tomado.
func (p *Service) finalizarProceso(pcb *internal.PCB) {
	p.cambiarEstado(pcb, internal.EstadoTerminated)

	marcos := p.memoria.LiberarTabla(pcb.PID, pcb.TablaDePaginas)
	devueltos, err := p.recursos.Liberar(pcb.PID)
	if err != nil {
		p.Log.Error("Error al liberar recursos del proceso",
			log.IntAttr("pid", pcb.PID),
			log.ErrAttr(err),
		)
	}

	//Log obligatorio: Fin de proceso
	p.Log.Info(fmt.Sprintf("## (%d) - Finaliza el proceso", pcb.PID))
	p.Log.Debug("Recursos del proceso liberados",
		log.IntAttr("pid", pcb.PID),
		log.IntAttr("marcos_liberados", marcos),
		log.AnyAttr("recursos_devueltos", devueltos),
		log.AnyAttr("metricas_estado", pcb.MetricasEstado),
	)

	p.emitir(eventos.Evento{
		Tipo:   eventos.EventoFinalizacion,
		PID:    pcb.PID,
		Estado: internal.EstadoTerminated,
		Vector: devueltos,
	})
}
