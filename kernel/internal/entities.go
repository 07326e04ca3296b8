package internal

const (
	EstadoNew        Estado = "NEW"
	EstadoReady      Estado = "READY"
	EstadoRunning    Estado = "RUNNING"
	EstadoTerminated Estado = "TERMINATED"

	// EstadoWaiting queda reservado para cuando existan bloqueos por IO. Ninguna transición lo alcanza.
	EstadoWaiting Estado = "WAITING"
)

type Estado string

// EntradaPagina asocia una página virtual con un marco. Valida en false indica que no hubo marco
// libre al crear el proceso (o que el proceso ya liberó su memoria).
type EntradaPagina struct {
	Marco  int  `json:"marco"`
	Valida bool `json:"valida"`
}

type PCB struct {
	PID            int             `json:"pid"`
	Estado         Estado          `json:"estado"`
	Rafaga         int             `json:"rafaga"`
	Restante       int             `json:"restante"`
	TablaDePaginas []EntradaPagina `json:"tabla_de_paginas"`
	MetricasEstado map[Estado]int  `json:"metricas_estado"`
}

type Proceso struct {
	PCB *PCB
}

// Paginas devuelve la cantidad de páginas que se le asignaron al proceso al crearlo
func (p *PCB) Paginas() int {
	return len(p.TablaDePaginas)
}

// PaginasInvalidas cuenta las entradas de la tabla que no tienen marco
func (p *PCB) PaginasInvalidas() int {
	invalidas := 0
	for _, entrada := range p.TablaDePaginas {
		if !entrada.Valida {
			invalidas++
		}
	}
	return invalidas
}

// CambiarEstado actualiza el estado y lleva la cuenta de cuántas veces pasó por cada uno
func (p *PCB) CambiarEstado(nuevo Estado) Estado {
	anterior := p.Estado
	p.Estado = nuevo
	if p.MetricasEstado == nil {
		p.MetricasEstado = map[Estado]int{}
	}
	p.MetricasEstado[nuevo]++
	return anterior
}
