package planificadores

import (
	"errors"
	"fmt"
	"slices"

	"github.com/sisoputnfrba/minios/kernel/internal"
	"github.com/sisoputnfrba/minios/kernel/internal/eventos"
	"github.com/sisoputnfrba/minios/kernel/internal/memoria"
	"github.com/sisoputnfrba/minios/kernel/internal/recursos"
	"github.com/sisoputnfrba/minios/utils/log"
)

// ProcesoSnapshot es la fila del listado de procesos
type ProcesoSnapshot struct {
	PID      int             `json:"pid"`
	Estado   internal.Estado `json:"estado"`
	Paginas  int             `json:"paginas"`
	Rafaga   int             `json:"rafaga"`
	Restante int             `json:"restante"`
}

// Resumen es el estado general de la simulación
type Resumen struct {
	Instancia     string `json:"instancia"`
	Procesos      int    `json:"procesos"`
	Pendientes    int    `json:"pendientes"`
	Marcos        int    `json:"marcos"`
	MarcosLibres  int    `json:"marcos_libres"`
	TamanioPagina int    `json:"tamanio_pagina"`
	Disponibles   []int  `json:"disponibles"`
}

// Traducir resuelve una dirección lógica del proceso
func (p *Service) Traducir(pid, logica int) (memoria.Traduccion, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	proceso, ok := p.buscarProceso(pid)
	if !ok {
		return memoria.Traduccion{}, fmt.Errorf("pid %d: %w", pid, internal.ErrPIDInvalido)
	}

	traduccion, err := p.memoria.Traducir(proceso.PCB.TablaDePaginas, logica)
	if err != nil {
		p.Log.Info(fmt.Sprintf("## (%d) - PAGE FAULT en la dirección lógica %d", pid, logica))
		return memoria.Traduccion{}, err
	}

	p.Log.Debug("Dirección traducida",
		log.IntAttr("pid", pid),
		log.IntAttr("dir_logica", logica),
		log.IntAttr("dir_fisica", traduccion.Fisica),
		log.IntAttr("marco", traduccion.Marco),
	)
	return traduccion, nil
}

// SolicitarRecursos pasa la solicitud por el algoritmo del banquero
func (p *Service) SolicitarRecursos(pid int, solicitud []int) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if _, ok := p.buscarProceso(pid); !ok {
		return fmt.Errorf("pid %d: %w", pid, internal.ErrPIDInvalido)
	}

	if err := p.recursos.Solicitar(pid, solicitud); err != nil {
		motivo := internal.Codigo(err)
		p.Log.Info(fmt.Sprintf("## (%d) - Solicitud de recursos %v denegada: %s", pid, solicitud, motivo))
		if !errors.Is(err, internal.ErrVectorInvalido) {
			p.emitir(eventos.Evento{
				Tipo:    eventos.EventoRecursosDenegados,
				PID:     pid,
				Vector:  slices.Clone(solicitud),
				Detalle: motivo,
			})
		}
		return err
	}

	p.Log.Info(fmt.Sprintf("## (%d) - Solicitud de recursos %v otorgada (estado seguro)", pid, solicitud))
	p.emitir(eventos.Evento{
		Tipo:   eventos.EventoRecursosOtorgados,
		PID:    pid,
		Vector: slices.Clone(solicitud),
	})
	return nil
}

// Procesos devuelve la tabla de procesos ordenada por PID
func (p *Service) Procesos() []ProcesoSnapshot {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	snapshot := make([]ProcesoSnapshot, len(p.procesos))
	for i, proceso := range p.procesos {
		snapshot[i] = ProcesoSnapshot{
			PID:      proceso.PCB.PID,
			Estado:   proceso.PCB.Estado,
			Paginas:  proceso.PCB.Paginas(),
			Rafaga:   proceso.PCB.Rafaga,
			Restante: proceso.PCB.Restante,
		}
	}
	return snapshot
}

// TablaDePaginas devuelve una copia de la tabla de páginas del proceso
func (p *Service) TablaDePaginas(pid int) ([]internal.EntradaPagina, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	proceso, ok := p.buscarProceso(pid)
	if !ok {
		return nil, fmt.Errorf("pid %d: %w", pid, internal.ErrPIDInvalido)
	}
	return slices.Clone(proceso.PCB.TablaDePaginas), nil
}

// Marcos devuelve el mapa de memoria ordenado por marco
func (p *Service) Marcos() []memoria.EstadoMarco {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.memoria.Marcos.Snapshot()
}

func (p *Service) EstadoRecursos() recursos.Estado {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.recursos.Snapshot()
}

func (p *Service) Resumen() Resumen {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	pendientes := 0
	for _, proceso := range p.procesos {
		if proceso.PCB.Estado != internal.EstadoTerminated {
			pendientes++
		}
	}

	return Resumen{
		Instancia:     p.Instancia,
		Procesos:      len(p.procesos),
		Pendientes:    pendientes,
		Marcos:        p.memoria.Marcos.Cantidad(),
		MarcosLibres:  p.memoria.Marcos.Libres(),
		TamanioPagina: p.memoria.TamanioPagina,
		Disponibles:   p.recursos.Snapshot().Disponibles,
	}
}
