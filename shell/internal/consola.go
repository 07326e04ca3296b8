package internal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"strconv"
	"strings"

	"github.com/sisoputnfrba/minios/kernel/pkg/kernel"
	"github.com/sisoputnfrba/minios/utils/log"
)

const Prompt = "MiniOS> "

var errUso = errors.New("uso incorrecto")

type comando struct {
	uso        string
	ejecutar   func(args []string) error
	argumentos int
}

// Consola interpreta los comandos de la shell y los traduce en llamadas al kernel
type Consola struct {
	Kernel Kernel
	Salida io.Writer
	Log    *slog.Logger

	rnd            *rand.Rand
	procesosStress int
	comandos       map[string]comando
	orden          []string
}

func NewConsola(k Kernel, salida io.Writer, logger *slog.Logger, semilla int64, procesosStress int) *Consola {
	c := &Consola{
		Kernel:         k,
		Salida:         salida,
		Log:            logger,
		rnd:            rand.New(rand.NewSource(semilla)),
		procesosStress: procesosStress,
	}

	c.orden = []string{"create", "run", "ps", "addr", "req", "res", "pages", "store", "cat", "dump_mem", "stress", "help", "exit"}
	c.comandos = map[string]comando{
		"create":   {uso: "create <ráfaga> <memoria> [necesidad máxima...]", argumentos: 2, ejecutar: c.crear},
		"run":      {uso: "run", ejecutar: c.correr},
		"ps":       {uso: "ps", ejecutar: c.ps},
		"addr":     {uso: "addr <pid> <dirección lógica>", argumentos: 2, ejecutar: c.traducir},
		"req":      {uso: "req <pid> <cantidad por recurso...>", argumentos: 2, ejecutar: c.solicitar},
		"res":      {uso: "res", ejecutar: c.recursos},
		"pages":    {uso: "pages <pid>", argumentos: 1, ejecutar: c.paginas},
		"store":    {uso: "store <nombre> <datos>", argumentos: 2, ejecutar: c.guardar},
		"cat":      {uso: "cat <nombre>", argumentos: 1, ejecutar: c.leer},
		"dump_mem": {uso: "dump_mem", ejecutar: c.dumpMemoria},
		"stress":   {uso: "stress [procesos]", ejecutar: c.stress},
		"help":     {uso: "help", ejecutar: c.ayuda},
	}
	return c
}

// Ejecutar lee comandos de entrada hasta "exit" o hasta que se termine la entrada
func (c *Consola) Ejecutar(entrada io.Reader) error {
	c.printf("Booting MiniOS...\n")
	c.printf("Interactive shell started.\n")
	c.printf("Commands available: %s\n", strings.Join(c.orden, ", "))

	scanner := bufio.NewScanner(entrada)
	for {
		c.printf("\n%s", Prompt)
		if !scanner.Scan() {
			break
		}

		campos := strings.Fields(scanner.Text())
		if len(campos) == 0 {
			continue
		}
		if campos[0] == "exit" {
			break
		}
		c.Comando(campos[0], campos[1:])
	}

	c.printf("MiniOS shutdown.\n")
	return scanner.Err()
}

// Comando ejecuta un único comando ya separado en nombre y argumentos
func (c *Consola) Comando(nombre string, args []string) {
	cmd, ok := c.comandos[nombre]
	if !ok {
		c.printf("Comando desconocido: %s (help lista los comandos)\n", nombre)
		return
	}
	if len(args) < cmd.argumentos {
		c.printf("Uso: %s\n", cmd.uso)
		return
	}

	if err := cmd.ejecutar(args); err != nil {
		if errors.Is(err, errUso) {
			c.printf("Uso: %s\n", cmd.uso)
			return
		}
		c.Log.Debug("Comando con error",
			log.StringAttr("comando", nombre),
			log.ErrAttr(err),
		)
		c.printf("%s\n", DescribirError(err))
	}
}

// DescribirError arma el mensaje para el usuario según el tipo de error del kernel
func DescribirError(err error) string {
	switch {
	case errors.Is(err, kernel.ErrPIDInvalido):
		return "PID inválido"
	case errors.Is(err, kernel.ErrPageFault):
		return "PAGE FAULT"
	case errors.Is(err, kernel.ErrLimiteDeProcesos):
		return "Se alcanzó el límite de procesos"
	case errors.Is(err, kernel.ErrExcedeNecesidad):
		return "Solicitud denegada: excede la necesidad máxima declarada"
	case errors.Is(err, kernel.ErrRecursosNoDisponibles):
		return "Solicitud denegada: recursos no disponibles"
	case errors.Is(err, kernel.ErrEstadoInseguro):
		return "Solicitud denegada: el sistema quedaría en estado inseguro"
	case errors.Is(err, kernel.ErrFileSystemLleno):
		return "El file system está lleno"
	case errors.Is(err, kernel.ErrArchivoNoEncontrado):
		return "Archivo no encontrado"
	case errors.Is(err, kernel.ErrVectorInvalido):
		return "Vector de recursos inválido"
	case errors.Is(err, kernel.ErrParametroInvalido):
		return "Parámetro inválido"
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

func (c *Consola) crear(args []string) error {
	numeros, err := enteros(args)
	if err != nil {
		return err
	}

	var maxNecesidad []int
	if len(numeros) > 2 {
		maxNecesidad = numeros[2:]
	}

	creacion, err := c.Kernel.CrearProceso(numeros[0], numeros[1], maxNecesidad)
	if err != nil {
		return err
	}

	c.printf("Proceso %d creado con %d páginas\n", creacion.PID, creacion.Paginas)
	if creacion.PaginasInvalidas > 0 {
		c.printf("Atención: %d páginas quedaron sin marco\n", creacion.PaginasInvalidas)
	}
	return nil
}

// correr pide pasos al planificador hasta que no quede ningún proceso en READY
func (c *Consola) correr(_ []string) error {
	for {
		atencion, err := c.Kernel.PlanificarPaso()
		if err != nil {
			return err
		}
		if atencion == nil {
			return nil
		}

		if atencion.Estado == kernel.EstadoTerminated {
			c.printf("Proceso %d finalizado\n", atencion.PID)
			continue
		}
		c.printf("Ejecutando PID %d (restante %d)\n", atencion.PID, atencion.Restante)
	}
}

func (c *Consola) ps(_ []string) error {
	procesos, err := c.Kernel.Procesos()
	if err != nil {
		return err
	}
	ImprimirProcesos(c.Salida, procesos)
	return nil
}

func (c *Consola) traducir(args []string) error {
	numeros, err := enteros(args[:2])
	if err != nil {
		return err
	}

	traduccion, err := c.Kernel.Traducir(numeros[0], numeros[1])
	if errors.Is(err, kernel.ErrPageFault) {
		c.printf("PAGE FAULT en la dirección lógica %d\n", numeros[1])
		return nil
	}
	if err != nil {
		return err
	}

	c.printf("Lógica %d → Física %d (página %d, marco %d, desplazamiento %d)\n",
		traduccion.Logica, traduccion.Fisica, traduccion.Pagina, traduccion.Marco, traduccion.Desplazamiento)
	return nil
}

func (c *Consola) solicitar(args []string) error {
	numeros, err := enteros(args)
	if err != nil {
		return err
	}

	if err := c.Kernel.SolicitarRecursos(numeros[0], numeros[1:]); err != nil {
		return err
	}
	c.printf("Solicitud otorgada (estado seguro)\n")
	return nil
}

func (c *Consola) recursos(_ []string) error {
	estado, err := c.Kernel.Recursos()
	if err != nil {
		return err
	}
	ImprimirRecursos(c.Salida, estado)
	return nil
}

func (c *Consola) paginas(args []string) error {
	pid, err := strconv.Atoi(args[0])
	if err != nil {
		return errUso
	}

	tabla, err := c.Kernel.TablaDePaginas(pid)
	if err != nil {
		return err
	}
	ImprimirTablaDePaginas(c.Salida, pid, tabla)
	return nil
}

func (c *Consola) guardar(args []string) error {
	nombre := args[0]
	datos := strings.Join(args[1:], " ")

	if err := c.Kernel.GuardarArchivo(nombre, []byte(datos)); err != nil {
		return err
	}
	c.printf("Archivo '%s' guardado.\n", nombre)
	return nil
}

func (c *Consola) leer(args []string) error {
	datos, err := c.Kernel.LeerArchivo(args[0])
	if err != nil {
		return err
	}
	c.printf("%s\n", datos)
	return nil
}

func (c *Consola) dumpMemoria(_ []string) error {
	marcos, err := c.Kernel.Marcos()
	if err != nil {
		return err
	}
	ImprimirMarcos(c.Salida, marcos)
	return nil
}

func (c *Consola) ayuda(_ []string) error {
	for _, nombre := range c.orden {
		if cmd, ok := c.comandos[nombre]; ok {
			c.printf("  %s\n", cmd.uso)
			continue
		}
		c.printf("  %s\n", nombre)
	}
	return nil
}

func (c *Consola) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.Salida, format, args...)
}

func enteros(args []string) ([]int, error) {
	numeros := make([]int, len(args))
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, errUso
		}
		numeros[i] = n
	}
	return numeros, nil
}
