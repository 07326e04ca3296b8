package internal

import "errors"

var (
	ErrLimiteDeProcesos      = errors.New("se alcanzó el límite de procesos")
	ErrMarcosAgotados        = errors.New("no hay marcos libres")
	ErrPageFault             = errors.New("page fault")
	ErrPIDInvalido           = errors.New("PID inválido")
	ErrExcedeNecesidad       = errors.New("la solicitud excede la necesidad máxima declarada")
	ErrRecursosNoDisponibles = errors.New("recursos no disponibles")
	ErrEstadoInseguro        = errors.New("la solicitud deja al sistema en estado inseguro")
	ErrFileSystemLleno       = errors.New("el file system está lleno")
	ErrArchivoNoEncontrado   = errors.New("archivo no encontrado")
	ErrVectorInvalido        = errors.New("vector de recursos inválido")
	ErrParametroInvalido     = errors.New("parámetro inválido")
	ErrMarcoNoAsignado       = errors.New("el marco no está asignado")
)

// codigos es la tabla que comparten el kernel y sus clientes para viajar los errores por HTTP
var codigos = []struct {
	codigo string
	err    error
}{
	{"LIMITE_PROCESOS", ErrLimiteDeProcesos},
	{"MARCOS_AGOTADOS", ErrMarcosAgotados},
	{"PAGE_FAULT", ErrPageFault},
	{"PID_INVALIDO", ErrPIDInvalido},
	{"EXCEDE_NECESIDAD", ErrExcedeNecesidad},
	{"NO_DISPONIBLE", ErrRecursosNoDisponibles},
	{"ESTADO_INSEGURO", ErrEstadoInseguro},
	{"FS_LLENO", ErrFileSystemLleno},
	{"ARCHIVO_NO_ENCONTRADO", ErrArchivoNoEncontrado},
	{"VECTOR_INVALIDO", ErrVectorInvalido},
	{"PARAMETRO_INVALIDO", ErrParametroInvalido},
	{"MARCO_NO_ASIGNADO", ErrMarcoNoAsignado},
}

// Codigo devuelve el código estable de un error conocido, o "" si no lo es
func Codigo(err error) string {
	for _, c := range codigos {
		if errors.Is(err, c.err) {
			return c.codigo
		}
	}
	return ""
}

// ErrorDeCodigo es la inversa de Codigo
func ErrorDeCodigo(codigo string) (error, bool) {
	for _, c := range codigos {
		if c.codigo == codigo {
			return c.err, true
		}
	}
	return nil, false
}
