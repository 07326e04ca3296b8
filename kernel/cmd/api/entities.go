package api

import (
	"fmt"

	"github.com/sisoputnfrba/minios/kernel/internal/planificadores"
)

type Config struct {
	IpKernel       string `json:"ip_kernel" yaml:"ip_kernel"`
	PortKernel     int    `json:"port_kernel" yaml:"port_kernel"`
	MemorySize     int    `json:"memory_size" yaml:"memory_size"`
	PageSize       int    `json:"page_size" yaml:"page_size"`
	MaxProcesses   int    `json:"max_processes" yaml:"max_processes"`
	MaxProcessSize int    `json:"max_process_size" yaml:"max_process_size"`
	Quantum        int    `json:"quantum" yaml:"quantum"`
	Resources      []int  `json:"resources" yaml:"resources"`
	MaxNeedBound   int    `json:"max_need_bound" yaml:"max_need_bound"`
	Seed           int64  `json:"seed" yaml:"seed"`
	MaxFiles       int    `json:"max_files" yaml:"max_files"`
	MaxFileName    int    `json:"max_file_name" yaml:"max_file_name"`
	MaxFileData    int    `json:"max_file_data" yaml:"max_file_data"`
	LogLevel       string `json:"log_level" yaml:"log_level"`
	MqttBroker     string `json:"mqtt_broker" yaml:"mqtt_broker"`
	MqttTopic      string `json:"mqtt_topic" yaml:"mqtt_topic"`
}

// Validar revisa que la configuración describa una simulación posible
func (c *Config) Validar() error {
	if c.MemorySize <= 0 || c.PageSize <= 0 {
		return fmt.Errorf("memory_size (%d) y page_size (%d) deben ser positivos", c.MemorySize, c.PageSize)
	}
	if c.MemorySize%c.PageSize != 0 {
		return fmt.Errorf("memory_size (%d) no es múltiplo de page_size (%d)", c.MemorySize, c.PageSize)
	}
	if c.MaxProcesses <= 0 || c.Quantum <= 0 {
		return fmt.Errorf("max_processes (%d) y quantum (%d) deben ser positivos", c.MaxProcesses, c.Quantum)
	}
	if c.MaxProcessSize <= 0 {
		return fmt.Errorf("max_process_size (%d) debe ser positivo", c.MaxProcessSize)
	}
	if len(c.Resources) == 0 {
		return fmt.Errorf("resources no puede estar vacío")
	}
	for i, total := range c.Resources {
		if total < 0 {
			return fmt.Errorf("resources[%d] = %d es negativo", i, total)
		}
	}
	if c.MaxNeedBound < 0 {
		return fmt.Errorf("max_need_bound (%d) no puede ser negativo", c.MaxNeedBound)
	}
	if c.MaxFiles <= 0 || c.MaxFileName <= 0 || c.MaxFileData <= 0 {
		return fmt.Errorf("max_files, max_file_name y max_file_data deben ser positivos")
	}
	return nil
}

func (c *Config) Opciones() planificadores.Opciones {
	return planificadores.Opciones{
		TamanioMemoria:       c.MemorySize,
		TamanioPagina:        c.PageSize,
		MaxProcesos:          c.MaxProcesses,
		Quantum:              c.Quantum,
		Recursos:             c.Resources,
		TamanioMaximoProceso: c.MaxProcessSize,
	}
}

type PeticionCrearProceso struct {
	Rafaga       int   `json:"burst"`
	Memoria      int   `json:"memoria"`
	MaxNecesidad []int `json:"max_necesidad,omitempty"`
}

type PeticionRecursos struct {
	Solicitud []int `json:"solicitud"`
}

type RespuestaError struct {
	Error  string `json:"error"`
	Codigo string `json:"codigo,omitempty"`
}

type RespuestaArchivos struct {
	Archivos []string `json:"archivos"`
}
