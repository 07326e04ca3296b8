package internal

import "github.com/sisoputnfrba/minios/kernel/pkg/kernel"

type Config struct {
	IpKernel        string `json:"ip_kernel" yaml:"ip_kernel"`
	PortKernel      int    `json:"port_kernel" yaml:"port_kernel"`
	StressProcesses int    `json:"stress_processes" yaml:"stress_processes"`
	StressSeed      int64  `json:"stress_seed" yaml:"stress_seed"`
	LogLevel        string `json:"log_level" yaml:"log_level"`
}

// Kernel es lo que la consola necesita del kernel; lo implementa *kernel.Kernel
type Kernel interface {
	CrearProceso(rafaga, tamanio int, maxNecesidad []int) (kernel.Creacion, error)
	PlanificarPaso() (*kernel.Atencion, error)
	Procesos() ([]kernel.ProcesoSnapshot, error)
	TablaDePaginas(pid int) ([]kernel.EntradaPagina, error)
	Marcos() ([]kernel.EstadoMarco, error)
	Traducir(pid, direccion int) (kernel.Traduccion, error)
	SolicitarRecursos(pid int, solicitud []int) error
	Recursos() (kernel.EstadoRecursos, error)
	Estado() (kernel.Resumen, error)
	GuardarArchivo(nombre string, datos []byte) error
	LeerArchivo(nombre string) ([]byte, error)
}
