package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/sisoputnfrba/minios/kernel/cmd/api"
)

func main() {
	configFile := "./configs/config.json"
	if len(os.Args) > 1 {
		configFile = os.Args[1]
	}

	h := api.NewHandler(configFile)
	defer h.Cerrar()

	kernelAddress := fmt.Sprintf("%s:%d", h.Config.IpKernel, h.Config.PortKernel)
	h.Log.Info("Escuchando peticiones", "address", kernelAddress)
	if err := http.ListenAndServe(kernelAddress, h.Router()); err != nil {
		h.Log.Error("Error starting server", "err", err)
		panic(err)
	}
}
