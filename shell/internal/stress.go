package internal

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/sisoputnfrba/minios/kernel/pkg/kernel"
)

const (
	stressRafagaMaxima  = 10
	stressMemoriaMaxima = 256
	stressMemoriaMinima = 16
	stressArchivos      = 5
	// stressDesborde se suma al rango de direcciones para provocar accesos fuera de la tabla
	stressDesborde = 20
)

// stress crea procesos al azar y ejercita el file system, el banquero, la traducción y el
// planificador, imprimiendo el estado antes y después.
func (c *Consola) stress(args []string) error {
	cantidad := c.procesosStress
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return errUso
		}
		cantidad = n
	}

	c.printf("=== MINI OS STRESS TEST START ===\n")

	c.printf("\n[Test] Creando %d procesos...\n", cantidad)
	type creado struct {
		pid     int
		paginas int
	}
	creados := make([]creado, 0, cantidad)
	for i := 0; i < cantidad; i++ {
		rafaga := c.rnd.Intn(stressRafagaMaxima) + 1
		tamanio := c.rnd.Intn(stressMemoriaMaxima) + stressMemoriaMinima

		creacion, err := c.Kernel.CrearProceso(rafaga, tamanio, nil)
		if errors.Is(err, kernel.ErrLimiteDeProcesos) {
			c.printf("%s, se sigue con %d procesos\n", DescribirError(err), len(creados))
			break
		}
		if err != nil {
			return err
		}

		creados = append(creados, creado{pid: creacion.PID, paginas: creacion.Paginas})
		c.printf("Proceso %d: Ráfaga=%d, Páginas=%d, MaxNecesidad=%v\n",
			creacion.PID, rafaga, creacion.Paginas, creacion.MaxNecesidad)
	}

	c.printf("\n[Test] File system...\n")
	for i := 0; i < stressArchivos; i++ {
		nombre := fmt.Sprintf("file%d.txt", i)
		if err := c.Kernel.GuardarArchivo(nombre, []byte(fmt.Sprintf("Data_of_file_%d", i))); err != nil {
			c.printf("%s: %s\n", nombre, DescribirError(err))
			continue
		}
		c.printf("Archivo '%s' guardado.\n", nombre)
	}

	c.printf("\n[Test] Solicitudes de recursos al azar...\n")
	for _, p := range creados {
		estado, err := c.Kernel.Recursos()
		if err != nil {
			return err
		}

		necesidad := estado.Necesidad[p.pid]
		solicitud := make([]int, len(necesidad))
		for r := range solicitud {
			solicitud[r] = c.rnd.Intn(necesidad[r] + 1)
		}

		c.printf("PID %d pide %v... ", p.pid, solicitud)
		if err := c.Kernel.SolicitarRecursos(p.pid, solicitud); err != nil {
			c.printf("%s\n", DescribirError(err))
			continue
		}
		c.printf("Otorgada (estado seguro)\n")
	}

	c.printf("\n[Test] Traducción de direcciones...\n")
	resumen, err := c.Kernel.Estado()
	if err != nil {
		return err
	}
	for _, p := range creados {
		// Todas las páginas del proceso más un desborde
		logica := c.rnd.Intn(p.paginas*resumen.TamanioPagina + stressDesborde)
		c.printf("PID %d, Lógica=%d -> ", p.pid, logica)
		traduccion, err := c.Kernel.Traducir(p.pid, logica)
		if err != nil {
			c.printf("%s\n", DescribirError(err))
			continue
		}
		c.printf("Física %d\n", traduccion.Fisica)
	}

	c.printf("\n[Test] Memoria antes de planificar:\n")
	if err := c.dumpMemoria(nil); err != nil {
		return err
	}

	c.printf("\n[Test] Planificando...\n")
	if err := c.correr(nil); err != nil {
		return err
	}

	c.printf("\n[Test] Tabla de procesos final:\n")
	if err := c.ps(nil); err != nil {
		return err
	}

	c.printf("\n[Test] Memoria final:\n")
	if err := c.dumpMemoria(nil); err != nil {
		return err
	}

	c.printf("\n=== MINI OS STRESS TEST END ===\n")
	return nil
}
