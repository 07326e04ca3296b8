package kernel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/sisoputnfrba/minios/kernel/internal"
	"github.com/sisoputnfrba/minios/kernel/internal/memoria"
	"github.com/sisoputnfrba/minios/kernel/internal/planificadores"
	"github.com/sisoputnfrba/minios/kernel/internal/recursos"
	"github.com/sisoputnfrba/minios/utils/log"
)

const contentTypeMsgpack = "application/msgpack"

// Los errores del kernel llegan como códigos y se vuelven a estos mismos valores, así quien usa el
// cliente puede compararlos con errors.Is.
var (
	ErrLimiteDeProcesos      = internal.ErrLimiteDeProcesos
	ErrPageFault             = internal.ErrPageFault
	ErrPIDInvalido           = internal.ErrPIDInvalido
	ErrExcedeNecesidad       = internal.ErrExcedeNecesidad
	ErrRecursosNoDisponibles = internal.ErrRecursosNoDisponibles
	ErrEstadoInseguro        = internal.ErrEstadoInseguro
	ErrFileSystemLleno       = internal.ErrFileSystemLleno
	ErrArchivoNoEncontrado   = internal.ErrArchivoNoEncontrado
	ErrVectorInvalido        = internal.ErrVectorInvalido
	ErrParametroInvalido     = internal.ErrParametroInvalido
)

type (
	Estado          = internal.Estado
	EntradaPagina   = internal.EntradaPagina
	Creacion        = planificadores.Creacion
	Atencion        = planificadores.Atencion
	ProcesoSnapshot = planificadores.ProcesoSnapshot
	Resumen         = planificadores.Resumen
	Traduccion      = memoria.Traduccion
	EstadoMarco     = memoria.EstadoMarco
	EstadoRecursos  = recursos.Estado
)

const (
	EstadoNew        = internal.EstadoNew
	EstadoReady      = internal.EstadoReady
	EstadoRunning    = internal.EstadoRunning
	EstadoTerminated = internal.EstadoTerminated
	SinDuenio        = memoria.SinDuenio
)

type Kernel struct {
	IP     string
	Puerto int
	Log    *slog.Logger
}

func NewKernel(ip string, puerto int, logger *slog.Logger) *Kernel {
	return &Kernel{
		IP:     ip,
		Puerto: puerto,
		Log:    logger,
	}
}

type respuestaError struct {
	Error  string `json:"error"`
	Codigo string `json:"codigo"`
}

func (k *Kernel) CrearProceso(rafaga, tamanio int, maxNecesidad []int) (Creacion, error) {
	var creacion Creacion
	body, _ := json.Marshal(map[string]any{
		"burst":         rafaga,
		"memoria":       tamanio,
		"max_necesidad": maxNecesidad,
	})

	err := k.hacer(http.MethodPost, "/procesos", "application/json", bytes.NewReader(body), false, &creacion)
	return creacion, err
}

// PlanificarPaso devuelve nil cuando no había ningún proceso en READY
func (k *Kernel) PlanificarPaso() (*Atencion, error) {
	var atencion Atencion
	resp, err := k.pedir(http.MethodPost, "/planificador/paso", "", nil, false)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if err := k.leerRespuesta(resp, &atencion); err != nil {
		return nil, err
	}
	return &atencion, nil
}

func (k *Kernel) Ejecutar() ([]Atencion, error) {
	var atenciones []Atencion
	err := k.hacer(http.MethodPost, "/planificador/ejecutar", "", nil, false, &atenciones)
	return atenciones, err
}

func (k *Kernel) Procesos() ([]ProcesoSnapshot, error) {
	var procesos []ProcesoSnapshot
	err := k.hacer(http.MethodGet, "/procesos", "", nil, true, &procesos)
	return procesos, err
}

func (k *Kernel) TablaDePaginas(pid int) ([]EntradaPagina, error) {
	var tabla []EntradaPagina
	err := k.hacer(http.MethodGet, fmt.Sprintf("/procesos/%d/paginas", pid), "", nil, false, &tabla)
	return tabla, err
}

func (k *Kernel) Marcos() ([]EstadoMarco, error) {
	var marcos []EstadoMarco
	err := k.hacer(http.MethodGet, "/memoria/marcos", "", nil, true, &marcos)
	return marcos, err
}

func (k *Kernel) Traducir(pid, direccion int) (Traduccion, error) {
	var traduccion Traduccion
	ruta := fmt.Sprintf("/procesos/%d/traduccion?direccion=%d", pid, direccion)
	err := k.hacer(http.MethodGet, ruta, "", nil, false, &traduccion)
	return traduccion, err
}

func (k *Kernel) SolicitarRecursos(pid int, solicitud []int) error {
	body, _ := json.Marshal(map[string][]int{"solicitud": solicitud})
	ruta := fmt.Sprintf("/procesos/%d/recursos", pid)
	return k.hacer(http.MethodPost, ruta, "application/json", bytes.NewReader(body), false, nil)
}

func (k *Kernel) Recursos() (EstadoRecursos, error) {
	var estado EstadoRecursos
	err := k.hacer(http.MethodGet, "/recursos", "", nil, false, &estado)
	return estado, err
}

func (k *Kernel) Estado() (Resumen, error) {
	var resumen Resumen
	err := k.hacer(http.MethodGet, "/estado", "", nil, false, &resumen)
	return resumen, err
}

func (k *Kernel) GuardarArchivo(nombre string, datos []byte) error {
	ruta := "/archivos/" + url.PathEscape(nombre)
	return k.hacer(http.MethodPut, ruta, "application/octet-stream", bytes.NewReader(datos), false, nil)
}

func (k *Kernel) LeerArchivo(nombre string) ([]byte, error) {
	resp, err := k.pedir(http.MethodGet, "/archivos/"+url.PathEscape(nombre), "", nil, false)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, k.errorDeRespuesta(resp)
	}
	return io.ReadAll(resp.Body)
}

// hacer envía la petición y decodifica la respuesta en destino, si no es nil. Con binario pide la
// respuesta en msgpack.
func (k *Kernel) hacer(metodo, ruta, contentType string, body io.Reader, binario bool, destino any) error {
	resp, err := k.pedir(metodo, ruta, contentType, body, binario)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	return k.leerRespuesta(resp, destino)
}

func (k *Kernel) pedir(metodo, ruta, contentType string, body io.Reader, binario bool) (*http.Response, error) {
	destino := fmt.Sprintf("http://%s:%d%s", k.IP, k.Puerto, ruta)

	req, err := http.NewRequest(metodo, destino, body)
	if err != nil {
		return nil, fmt.Errorf("error armando la petición %s %s: %w", metodo, ruta, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if binario {
		req.Header.Set("Accept", contentTypeMsgpack)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		k.Log.Error("Error al comunicarse con el kernel",
			log.ErrAttr(err),
			log.StringAttr("ip", k.IP),
			log.IntAttr("puerto", k.Puerto),
			log.StringAttr("ruta", ruta),
		)
		return nil, err
	}
	return resp, nil
}

func (k *Kernel) leerRespuesta(resp *http.Response, destino any) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return k.errorDeRespuesta(resp)
	}
	if destino == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := decodificar(resp, destino); err != nil {
		return fmt.Errorf("error al decodificar la respuesta del kernel: %w", err)
	}
	return nil
}

// errorDeRespuesta vuelve el cuerpo {error, codigo} al error conocido que corresponda
func (k *Kernel) errorDeRespuesta(resp *http.Response) error {
	var respuesta respuestaError
	if err := decodificar(resp, &respuesta); err != nil {
		return fmt.Errorf("kernel respondió con status %d", resp.StatusCode)
	}

	k.Log.Debug("Kernel respondió con error",
		log.IntAttr("status_code", resp.StatusCode),
		log.StringAttr("codigo", respuesta.Codigo),
		log.StringAttr("error", respuesta.Error),
	)

	if err, ok := internal.ErrorDeCodigo(respuesta.Codigo); ok {
		return fmt.Errorf("%s: %w", respuesta.Error, err)
	}
	return fmt.Errorf("kernel respondió con status %d: %s", resp.StatusCode, respuesta.Error)
}

func decodificar(resp *http.Response, destino any) error {
	if strings.HasPrefix(resp.Header.Get("Content-Type"), contentTypeMsgpack) {
		dec := msgpack.NewDecoder(resp.Body)
		dec.SetCustomStructTag("json")
		return dec.Decode(destino)
	}
	return json.NewDecoder(resp.Body).Decode(destino)
}
