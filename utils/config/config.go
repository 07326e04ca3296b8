package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Cargar lee el archivo de configuración y lo decodifica en config, que debe ser un puntero a struct.
// Los archivos .yaml/.yml se leen como YAML; cualquier otra extensión se trata como JSON.
func Cargar(filePath string, config any) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("error al leer el archivo de configuración %s: %w", filePath, err)
	}

	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, config)
	default:
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return fmt.Errorf("error al decodificar el archivo de configuración %s: %w", filePath, err)
	}

	return nil
}

// IniciarConfiguracion carga la configuración y corta la ejecución si no puede hacerlo.
// Se usa al levantar los módulos, donde no tiene sentido seguir sin configuración.
func IniciarConfiguracion(filePath string, config any) any {
	if err := Cargar(filePath, config); err != nil {
		slog.Error("Error al iniciar la configuración",
			slog.Attr{Key: "filePath", Value: slog.StringValue(filePath)},
			slog.Attr{Key: "error", Value: slog.StringValue(err.Error())},
		)
		panic(err)
	}

	return config
}
