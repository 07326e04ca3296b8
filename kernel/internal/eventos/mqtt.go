package eventos

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/sisoputnfrba/minios/utils/log"
)

const (
	timeoutConexion    = 5 * time.Second
	timeoutPublicacion = 2 * time.Second
)

// MQTT publica los eventos en JSON sobre <topico>/<instancia>/<tipo>
type MQTT struct {
	Client mqtt.Client
	Topico string
	QoS    byte
	Log    *slog.Logger
}

func NewMQTT(broker, clientID, topico string, logger *slog.Logger) *MQTT {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(2 * time.Second)
	opts.SetMaxReconnectInterval(30 * time.Second)

	opts.OnConnect = func(c mqtt.Client) {
		logger.Info("Conexión MQTT establecida",
			log.StringAttr("broker", broker),
			log.StringAttr("client_id", clientID),
		)
	}
	opts.OnConnectionLost = func(c mqtt.Client, err error) {
		logger.Warn("Se perdió la conexión MQTT, se reintenta automáticamente",
			log.StringAttr("broker", broker),
			log.ErrAttr(err),
		)
	}

	return &MQTT{
		Client: mqtt.NewClient(opts),
		Topico: topico,
		QoS:    1,
		Log:    logger,
	}
}

// Conectar espera la conexión inicial con el broker
func (e *MQTT) Conectar() error {
	token := e.Client.Connect()
	if !token.WaitTimeout(timeoutConexion) {
		return fmt.Errorf("timeout conectando al broker MQTT")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("error conectando al broker MQTT: %w", err)
	}
	return nil
}

func (e *MQTT) Emitir(evento Evento) {
	payload, err := json.Marshal(evento)
	if err != nil {
		e.Log.Error("Error al serializar evento", log.ErrAttr(err))
		return
	}

	topico := e.TopicoDe(evento)
	token := e.Client.Publish(topico, e.QoS, false, payload)

	// La confirmación se espera aparte para no frenar al planificador
	go func() {
		if !token.WaitTimeout(timeoutPublicacion) {
			e.Log.Warn("Timeout publicando evento", log.StringAttr("topico", topico))
			return
		}
		if err := token.Error(); err != nil {
			e.Log.Error("Error publicando evento",
				log.StringAttr("topico", topico),
				log.ErrAttr(err),
			)
		}
	}()
}

func (e *MQTT) TopicoDe(evento Evento) string {
	return fmt.Sprintf("%s/%s/%s", e.Topico, evento.Instancia, evento.Tipo)
}

func (e *MQTT) Cerrar() {
	e.Client.Disconnect(250)
}
