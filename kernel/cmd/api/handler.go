package api

import (
	"log/slog"
	"time"

	"github.com/sisoputnfrba/minios/kernel/internal/archivos"
	"github.com/sisoputnfrba/minios/kernel/internal/eventos"
	"github.com/sisoputnfrba/minios/kernel/internal/planificadores"
	"github.com/sisoputnfrba/minios/kernel/internal/recursos"
	"github.com/sisoputnfrba/minios/utils/config"
	"github.com/sisoputnfrba/minios/utils/log"
)

// capacidadRegistro es la cantidad de eventos recientes que se guardan en memoria
const capacidadRegistro = 256

type Handler struct {
	Log          *slog.Logger
	Config       *Config
	Planificador *planificadores.Service
	Archivos     *archivos.FileSystem
	Eventos      *eventos.Registro
	mqtt         *eventos.MQTT
}

func NewHandler(configFile string) *Handler {
	c := config.IniciarConfiguracion(configFile, &Config{})
	if c == nil {
		panic("Error loading configuration")
	}

	// Cast the configuration to the specific type
	configStruct, ok := c.(*Config)
	if !ok {
		panic("Error casting configuration")
	}
	if err := configStruct.Validar(); err != nil {
		panic(err)
	}

	logger := log.BuildLogger(configStruct.LogLevel)

	h := &Handler{
		Config:   configStruct,
		Log:      logger,
		Archivos: archivos.NewFileSystem(configStruct.MaxFiles, configStruct.MaxFileName, configStruct.MaxFileData),
		Eventos:  eventos.NewRegistro(capacidadRegistro),
	}

	semilla := configStruct.Seed
	if semilla == 0 {
		semilla = time.Now().UnixNano()
	}
	politica := recursos.NewNecesidadAleatoria(semilla, configStruct.MaxNeedBound)

	emisores := eventos.Multiple{h.Eventos}
	if configStruct.MqttBroker != "" {
		emisor := eventos.NewMQTT(configStruct.MqttBroker, "minios-kernel", configStruct.MqttTopic, logger)
		// Sin broker los eventos quedan solo en el registro
		if h.mqtt = conectarMQTT(emisor, logger); h.mqtt != nil {
			emisores = append(emisores, h.mqtt)
		}
	}

	h.Planificador = planificadores.NewPlanificador(logger, configStruct.Opciones(), politica, emisores)
	logger.Info("Kernel iniciado",
		log.StringAttr("simulacion", h.Planificador.Instancia),
		log.IntAttr("marcos", configStruct.MemorySize/configStruct.PageSize),
		log.AnyAttr("recursos", configStruct.Resources),
	)

	return h
}

// conectarMQTT devuelve el emisor conectado o nil si el broker no respondió. Un emisor descartado
// se cierra porque el cliente sigue reintentando la conexión en segundo plano.
func conectarMQTT(emisor *eventos.MQTT, logger *slog.Logger) *eventos.MQTT {
	if err := emisor.Conectar(); err != nil {
		logger.Error("No se pudo conectar al broker MQTT", log.ErrAttr(err))
		emisor.Cerrar()
		return nil
	}
	return emisor
}

// Cerrar desconecta el emisor MQTT si lo hay
func (h *Handler) Cerrar() {
	if h.mqtt != nil {
		h.mqtt.Cerrar()
	}
}
