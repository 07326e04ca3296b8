package archivos

import (
	"fmt"
	"slices"
	"sync"

	"github.com/sisoputnfrba/minios/kernel/internal"
)

type Archivo struct {
	Nombre string
	Datos  []byte
}

// FileSystem es un arreglo plano de entradas indexado por nombre. No tiene relación con la
// memoria paginada ni con el planificador.
type FileSystem struct {
	mutex     sync.RWMutex
	entradas  []*Archivo
	indice    map[string]int
	maxNombre int
	maxDatos  int
}

func NewFileSystem(maxArchivos, maxNombre, maxDatos int) *FileSystem {
	return &FileSystem{
		entradas:  make([]*Archivo, maxArchivos),
		indice:    make(map[string]int),
		maxNombre: maxNombre,
		maxDatos:  maxDatos,
	}
}

// Guardar escribe el archivo. Si ya existe se pisa su contenido; si no, ocupa la primera entrada libre.
func (f *FileSystem) Guardar(nombre string, datos []byte) error {
	if nombre == "" || len(nombre) > f.maxNombre {
		return fmt.Errorf("nombre %q debe tener entre 1 y %d bytes: %w", nombre, f.maxNombre, internal.ErrParametroInvalido)
	}
	if len(datos) > f.maxDatos {
		return fmt.Errorf("%d bytes superan el máximo de %d: %w", len(datos), f.maxDatos, internal.ErrParametroInvalido)
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()

	if i, ok := f.indice[nombre]; ok {
		f.entradas[i].Datos = slices.Clone(datos)
		return nil
	}

	for i, entrada := range f.entradas {
		if entrada == nil {
			f.entradas[i] = &Archivo{Nombre: nombre, Datos: slices.Clone(datos)}
			f.indice[nombre] = i
			return nil
		}
	}

	return fmt.Errorf("no hay lugar para %q: %w", nombre, internal.ErrFileSystemLleno)
}

func (f *FileSystem) Leer(nombre string) ([]byte, error) {
	f.mutex.RLock()
	defer f.mutex.RUnlock()

	i, ok := f.indice[nombre]
	if !ok {
		return nil, fmt.Errorf("%q: %w", nombre, internal.ErrArchivoNoEncontrado)
	}
	return slices.Clone(f.entradas[i].Datos), nil
}

// Listar devuelve los nombres en el orden de las entradas
func (f *FileSystem) Listar() []string {
	f.mutex.RLock()
	defer f.mutex.RUnlock()

	nombres := make([]string, 0, len(f.indice))
	for _, entrada := range f.entradas {
		if entrada != nil {
			nombres = append(nombres, entrada.Nombre)
		}
	}
	return nombres
}
