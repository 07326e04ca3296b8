package planificadores

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/sisoputnfrba/minios/kernel/internal"
	"github.com/sisoputnfrba/minios/kernel/internal/eventos"
	"github.com/sisoputnfrba/minios/kernel/internal/memoria"
	"github.com/sisoputnfrba/minios/kernel/internal/recursos"
	"github.com/sisoputnfrba/minios/utils/log"
	uniqueid "github.com/sisoputnfrba/minios/utils/unique-id"
)

// Opciones son las constantes de la simulación; no cambian una vez creado el planificador
type Opciones struct {
	TamanioMemoria int
	TamanioPagina  int
	MaxProcesos    int
	Quantum        int
	Recursos       []int

	// TamanioMaximoProceso acota la memoria que puede pedir un proceso; si no es positivo se usa
	// TamanioMemoria
	TamanioMaximoProceso int
}

// Service es el contexto de una simulación con su tabla de procesos, la memoria paginada y los
// recursos del banquero. Todas las operaciones toman el mismo mutex.
type Service struct {
	Log         *slog.Logger
	Instancia   string
	Quantum     int
	MaxProcesos int
	TamanioMax  int
	Politica    recursos.PoliticaNecesidad
	Eventos     eventos.Emisor

	memoria  *memoria.Memoria
	recursos *recursos.Recursos
	procesos []*internal.Proceso
	pids     *uniqueid.UniqueID
	cursor   int
	mutex    sync.Mutex
}

// NewPlanificador crea una simulación vacía. Si politica es nil las necesidades máximas no
// informadas quedan en cero; si emisor es nil los eventos se descartan.
func NewPlanificador(logger *slog.Logger, opciones Opciones, politica recursos.PoliticaNecesidad, emisor eventos.Emisor) *Service {
	instancia := uuid.NewString()
	logger = logger.With(log.StringAttr("simulacion", instancia))

	if politica == nil {
		politica = recursos.NecesidadFija(make([]int, len(opciones.Recursos)))
	}
	if emisor == nil {
		emisor = eventos.Nop{}
	}
	tamanioMax := opciones.TamanioMaximoProceso
	if tamanioMax <= 0 {
		tamanioMax = opciones.TamanioMemoria
	}

	return &Service{
		Log:         logger,
		Instancia:   instancia,
		Quantum:     opciones.Quantum,
		MaxProcesos: opciones.MaxProcesos,
		TamanioMax:  tamanioMax,
		Politica:    politica,
		Eventos:     emisor,
		memoria:     memoria.NewMemoria(opciones.TamanioMemoria, opciones.TamanioPagina, logger),
		recursos:    recursos.NewRecursos(opciones.Recursos, logger),
		procesos:    make([]*internal.Proceso, 0, opciones.MaxProcesos),
		pids:        uniqueid.Init(0),
		cursor:      -1,
	}
}

// buscarProceso requiere el mutex tomado
func (p *Service) buscarProceso(pid int) (*internal.Proceso, bool) {
	if pid < 0 || pid >= len(p.procesos) {
		return nil, false
	}
	return p.procesos[pid], true
}

// emitir completa los datos comunes del evento. Requiere el mutex tomado.
func (p *Service) emitir(evento eventos.Evento) {
	evento.Instancia = p.Instancia
	evento.Momento = ahora()
	p.Eventos.Emitir(evento)
}
