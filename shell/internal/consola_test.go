package internal

import (
	"bytes"
	"fmt"
	"net"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sisoputnfrba/minios/kernel/cmd/api"
	"github.com/sisoputnfrba/minios/kernel/pkg/kernel"
	"github.com/sisoputnfrba/minios/utils/log"
)

// kernelFalso responde lo que cada test configure y registra las solicitudes de recursos, los
// tamaños creados y las direcciones traducidas
type kernelFalso struct {
	pasos         []*kernel.Atencion
	errCrear      error
	errTraducir   error
	errRecursos   error
	solicitudes   [][]int
	archivos      map[string][]byte
	tamanioPagina int
	tamanios      []int
	traducciones  []int
}

func (k *kernelFalso) pagina() int {
	if k.tamanioPagina == 0 {
		return 16
	}
	return k.tamanioPagina
}

func (k *kernelFalso) CrearProceso(rafaga, tamanio int, maxNecesidad []int) (kernel.Creacion, error) {
	if k.errCrear != nil {
		return kernel.Creacion{}, k.errCrear
	}
	k.tamanios = append(k.tamanios, tamanio)
	paginas := (tamanio + k.pagina() - 1) / k.pagina()
	return kernel.Creacion{PID: 0, Paginas: paginas, PaginasInvalidas: 1, MaxNecesidad: maxNecesidad}, nil
}

func (k *kernelFalso) PlanificarPaso() (*kernel.Atencion, error) {
	if len(k.pasos) == 0 {
		return nil, nil
	}
	paso := k.pasos[0]
	k.pasos = k.pasos[1:]
	return paso, nil
}

func (k *kernelFalso) Procesos() ([]kernel.ProcesoSnapshot, error) {
	return []kernel.ProcesoSnapshot{{PID: 0, Estado: kernel.EstadoReady, Paginas: 2, Rafaga: 4, Restante: 2}}, nil
}

func (k *kernelFalso) TablaDePaginas(pid int) ([]kernel.EntradaPagina, error) {
	return []kernel.EntradaPagina{{Marco: 3, Valida: true}, {Marco: -1, Valida: false}}, nil
}

func (k *kernelFalso) Marcos() ([]kernel.EstadoMarco, error) {
	return []kernel.EstadoMarco{{Marco: 0, PID: 2}, {Marco: 1, PID: kernel.SinDuenio, Libre: true}}, nil
}

func (k *kernelFalso) Traducir(pid, direccion int) (kernel.Traduccion, error) {
	k.traducciones = append(k.traducciones, direccion)
	if k.errTraducir != nil {
		return kernel.Traduccion{}, k.errTraducir
	}
	return kernel.Traduccion{Logica: direccion, Pagina: 0, Desplazamiento: direccion, Marco: 7, Fisica: 112 + direccion}, nil
}

func (k *kernelFalso) SolicitarRecursos(pid int, solicitud []int) error {
	k.solicitudes = append(k.solicitudes, solicitud)
	return k.errRecursos
}

func (k *kernelFalso) Recursos() (kernel.EstadoRecursos, error) {
	return kernel.EstadoRecursos{
		Totales:      []int{3, 3, 2},
		Disponibles:  []int{2, 3, 2},
		MaxNecesidad: [][]int{{1, 1, 0}},
		Asignacion:   [][]int{{1, 0, 0}},
		Necesidad:    [][]int{{0, 1, 0}},
	}, nil
}

func (k *kernelFalso) Estado() (kernel.Resumen, error) {
	return kernel.Resumen{Procesos: len(k.tamanios), Marcos: 64, MarcosLibres: 64, TamanioPagina: k.pagina()}, nil
}

func (k *kernelFalso) GuardarArchivo(nombre string, datos []byte) error {
	if k.archivos == nil {
		k.archivos = map[string][]byte{}
	}
	k.archivos[nombre] = datos
	return nil
}

func (k *kernelFalso) LeerArchivo(nombre string) ([]byte, error) {
	datos, ok := k.archivos[nombre]
	if !ok {
		return nil, fmt.Errorf("%q: %w", nombre, kernel.ErrArchivoNoEncontrado)
	}
	return datos, nil
}

func nuevaConsola(k Kernel) (*Consola, *bytes.Buffer) {
	salida := &bytes.Buffer{}
	return NewConsola(k, salida, log.BuildLogger("error"), 1, 4), salida
}

func TestConsola_Comando(t *testing.T) {
	tests := []struct {
		name    string
		kernel  *kernelFalso
		comando string
		want    []string
	}{
		{
			name:    "Crear proceso",
			kernel:  &kernelFalso{},
			comando: "create 4 40",
			want:    []string{"Proceso 0 creado con 3 páginas", "1 páginas quedaron sin marco"},
		},
		{
			name:    "Crear sin argumentos",
			kernel:  &kernelFalso{},
			comando: "create 4",
			want:    []string{"Uso: create <ráfaga> <memoria>"},
		},
		{
			name:    "Crear con argumentos no numéricos",
			kernel:  &kernelFalso{},
			comando: "create cuatro 40",
			want:    []string{"Uso: create"},
		},
		{
			name:    "Límite de procesos",
			kernel:  &kernelFalso{errCrear: fmt.Errorf("x: %w", kernel.ErrLimiteDeProcesos)},
			comando: "create 4 40",
			want:    []string{"Se alcanzó el límite de procesos"},
		},
		{
			name: "Run hasta finalizar",
			kernel: &kernelFalso{pasos: []*kernel.Atencion{
				{PID: 0, Estado: kernel.EstadoReady, Restante: 2},
				{PID: 0, Estado: kernel.EstadoTerminated},
			}},
			comando: "run",
			want:    []string{"Ejecutando PID 0 (restante 2)", "Proceso 0 finalizado"},
		},
		{
			name:    "Traducción",
			kernel:  &kernelFalso{},
			comando: "addr 0 5",
			want:    []string{"Lógica 5 → Física 117"},
		},
		{
			name:    "Page fault",
			kernel:  &kernelFalso{errTraducir: fmt.Errorf("x: %w", kernel.ErrPageFault)},
			comando: "addr 0 500",
			want:    []string{"PAGE FAULT en la dirección lógica 500"},
		},
		{
			name:    "PID inválido",
			kernel:  &kernelFalso{errTraducir: fmt.Errorf("x: %w", kernel.ErrPIDInvalido)},
			comando: "addr 9 0",
			want:    []string{"PID inválido"},
		},
		{
			name:    "Solicitud otorgada",
			kernel:  &kernelFalso{},
			comando: "req 0 1 0 0",
			want:    []string{"Solicitud otorgada (estado seguro)"},
		},
		{
			name:    "Solicitud insegura",
			kernel:  &kernelFalso{errRecursos: fmt.Errorf("x: %w", kernel.ErrEstadoInseguro)},
			comando: "req 0 1 0 0",
			want:    []string{"estado inseguro"},
		},
		{
			name:    "Listado de procesos",
			kernel:  &kernelFalso{},
			comando: "ps",
			want:    []string{"PID", "ESTADO", "READY"},
		},
		{
			name:    "Mapa de memoria",
			kernel:  &kernelFalso{},
			comando: "dump_mem",
			want:    []string{"Mapa de memoria (2 marcos)", "Marco  0: Asignado al PID 2", "Marco  1: Libre"},
		},
		{
			name:    "Tabla de páginas",
			kernel:  &kernelFalso{},
			comando: "pages 0",
			want:    []string{"Tabla de páginas del PID 0", "PÁGINA", "MARCO"},
		},
		{
			name:    "Recursos",
			kernel:  &kernelFalso{},
			comando: "res",
			want:    []string{"Disponibles: [2 3 2]", "[1 1 0]"},
		},
		{
			name:    "Archivo inexistente",
			kernel:  &kernelFalso{},
			comando: "cat nada",
			want:    []string{"Archivo no encontrado"},
		},
		{
			name:    "Comando desconocido",
			kernel:  &kernelFalso{},
			comando: "format c:",
			want:    []string{"Comando desconocido: format"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, salida := nuevaConsola(tt.kernel)
			campos := strings.Fields(tt.comando)

			c.Comando(campos[0], campos[1:])

			for _, want := range tt.want {
				assert.Contains(t, salida.String(), want)
			}
		})
	}
}

func TestConsola_SolicitudPasaElVector(t *testing.T) {
	k := &kernelFalso{}
	c, _ := nuevaConsola(k)

	c.Comando("req", []string{"0", "1", "0", "2"})

	assert.Equal(t, [][]int{{1, 0, 2}}, k.solicitudes)
}

func TestConsola_StoreYCat(t *testing.T) {
	k := &kernelFalso{}
	c, salida := nuevaConsola(k)

	c.Comando("store", []string{"notas", "hola", "mundo"})
	c.Comando("cat", []string{"notas"})

	assert.Equal(t, []byte("hola mundo"), k.archivos["notas"])
	assert.Contains(t, salida.String(), "Archivo 'notas' guardado.")
	assert.Contains(t, salida.String(), "hola mundo\n")
}

func TestConsola_Ejecutar(t *testing.T) {
	c, salida := nuevaConsola(&kernelFalso{})

	err := c.Ejecutar(strings.NewReader("\n   \nps\nexit\nps\n"))
	require.NoError(t, err)

	out := salida.String()
	assert.Contains(t, out, "Booting MiniOS...")
	assert.Contains(t, out, Prompt)
	assert.Contains(t, out, "MiniOS shutdown.")
	// Lo que sigue a exit no se ejecuta
	assert.Equal(t, 1, strings.Count(out, "RESTANTE"))
}

// levantarKernel sirve el kernel real en un servidor de prueba y devuelve un cliente apuntándolo
func levantarKernel(t *testing.T) *kernel.Kernel {
	t.Helper()
	h := api.NewHandler("../../kernel/configs/config-test.json")
	servidor := httptest.NewServer(h.Router())
	t.Cleanup(servidor.Close)

	host, puerto, err := net.SplitHostPort(strings.TrimPrefix(servidor.URL, "http://"))
	require.NoError(t, err)
	p, err := strconv.Atoi(puerto)
	require.NoError(t, err)

	return kernel.NewKernel(host, p, log.BuildLogger("error"))
}

func TestConsola_ContraElKernel(t *testing.T) {
	k := levantarKernel(t)
	c, salida := nuevaConsola(k)

	guion := strings.Join([]string{
		"create 2 48",
		"create 4 32 1 1 1",
		"addr 1 20",
		"addr 1 40",
		"req 1 1 1 1",
		"req 1 1 0 0",
		"store a hola",
		"cat a",
		"run",
		"ps",
		"exit",
	}, "\n")
	require.NoError(t, c.Ejecutar(strings.NewReader(guion)))

	out := salida.String()
	for _, want := range []string{
		"Proceso 0 creado con 3 páginas",
		"Proceso 1 creado con 2 páginas",
		"Lógica 20 → Física 68",
		"PAGE FAULT en la dirección lógica 40",
		"Solicitud otorgada (estado seguro)",
		"excede la necesidad máxima",
		"hola\n",
		"Proceso 0 finalizado",
		"Ejecutando PID 1 (restante 2)",
		"Proceso 1 finalizado",
	} {
		assert.Contains(t, out, want)
	}

	estado, err := k.Recursos()
	require.NoError(t, err)
	assert.Equal(t, []int{3, 3, 2}, estado.Disponibles)
}

// Las direcciones del stress cubren todas las páginas asignadas y no solo los bytes pedidos
func TestConsola_Stress_RangoDeDirecciones(t *testing.T) {
	ass := assert.New(t)
	k := &kernelFalso{tamanioPagina: 256}
	c, _ := nuevaConsola(k)

	c.Comando("stress", []string{"40"})

	require.Len(t, k.tamanios, 40)
	require.Len(t, k.traducciones, 40)
	masAllaDelTamanio := 0
	for i, logica := range k.traducciones {
		paginas := (k.tamanios[i] + 255) / 256
		ass.Less(logica, paginas*256+stressDesborde)
		ass.GreaterOrEqual(logica, 0)
		if logica >= k.tamanios[i]+stressDesborde {
			masAllaDelTamanio++
		}
	}
	ass.Positive(masAllaDelTamanio)
}

func TestConsola_Stress(t *testing.T) {
	k := levantarKernel(t)
	c, salida := nuevaConsola(k)

	c.Comando("stress", []string{"6"})

	out := salida.String()
	assert.Contains(t, out, "=== MINI OS STRESS TEST START ===")
	assert.Contains(t, out, "=== MINI OS STRESS TEST END ===")
	assert.Contains(t, out, "Archivo 'file1.txt' guardado.")
	assert.Contains(t, out, "file2.txt: El file system está lleno")

	procesos, err := k.Procesos()
	require.NoError(t, err)
	assert.Len(t, procesos, 6)
	for _, p := range procesos {
		assert.Equal(t, kernel.EstadoTerminated, p.Estado)
	}

	marcos, err := k.Marcos()
	require.NoError(t, err)
	for _, m := range marcos {
		assert.True(t, m.Libre)
	}
}
