package main

import (
	"os"
	"time"

	"github.com/sisoputnfrba/minios/kernel/pkg/kernel"
	"github.com/sisoputnfrba/minios/shell/internal"
	"github.com/sisoputnfrba/minios/utils/config"
	"github.com/sisoputnfrba/minios/utils/log"
)

const (
	configFilePath = "./configs/config.json"
)

func main() {
	configFile := configFilePath
	if len(os.Args) > 1 {
		configFile = os.Args[1]
	}

	cfg := &internal.Config{}
	config.IniciarConfiguracion(configFile, cfg)

	logger := log.BuildLogger(cfg.LogLevel)
	k := kernel.NewKernel(cfg.IpKernel, cfg.PortKernel, logger)

	semilla := cfg.StressSeed
	if semilla == 0 {
		semilla = time.Now().UnixNano()
	}

	consola := internal.NewConsola(k, os.Stdout, logger, semilla, cfg.StressProcesses)
	if err := consola.Ejecutar(os.Stdin); err != nil {
		logger.Error("Error leyendo la entrada", log.ErrAttr(err))
		os.Exit(1)
	}
}
