package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type configPrueba struct {
	PortKernel int    `json:"port_kernel" yaml:"port_kernel"`
	LogLevel   string `json:"log_level" yaml:"log_level"`
	Recursos   []int  `json:"resources" yaml:"resources"`
}

func escribir(t *testing.T, nombre, contenido string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), nombre)
	require.NoError(t, os.WriteFile(path, []byte(contenido), 0o600))
	return path
}

func TestCargar(t *testing.T) {
	tests := []struct {
		name      string
		archivo   string
		contenido string
		want      configPrueba
		wantErr   bool
	}{
		{
			name:      "JSON",
			archivo:   "config.json",
			contenido: `{"port_kernel": 8001, "log_level": "debug", "resources": [3, 3, 2]}`,
			want:      configPrueba{PortKernel: 8001, LogLevel: "debug", Recursos: []int{3, 3, 2}},
		},
		{
			name:      "YAML",
			archivo:   "config.yaml",
			contenido: "port_kernel: 8002\nlog_level: info\nresources: [1, 2]\n",
			want:      configPrueba{PortKernel: 8002, LogLevel: "info", Recursos: []int{1, 2}},
		},
		{
			name:      "YML",
			archivo:   "config.yml",
			contenido: "port_kernel: 8003\n",
			want:      configPrueba{PortKernel: 8003},
		},
		{
			name:      "JSON mal formado",
			archivo:   "config.json",
			contenido: `{"port_kernel": `,
			wantErr:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got configPrueba
			err := Cargar(escribir(t, tt.archivo, tt.contenido), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCargar_ArchivoInexistente(t *testing.T) {
	var got configPrueba
	err := Cargar(filepath.Join(t.TempDir(), "no-existe.json"), &got)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIniciarConfiguracion(t *testing.T) {
	path := escribir(t, "config.json", `{"port_kernel": 9000}`)

	c := IniciarConfiguracion(path, &configPrueba{})
	cfg, ok := c.(*configPrueba)
	require.True(t, ok)
	assert.Equal(t, 9000, cfg.PortKernel)

	assert.Panics(t, func() {
		IniciarConfiguracion(filepath.Join(t.TempDir(), "no-existe.json"), &configPrueba{})
	})
}
