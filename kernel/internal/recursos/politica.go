package recursos

import (
	"math/rand"
	"slices"
)

// PoliticaNecesidad decide la necesidad máxima de un proceso cuando quien lo crea no la informa
type PoliticaNecesidad interface {
	MaxNecesidad(totales []int) []int
}

// NecesidadAleatoria sortea cada componente en [0, cota), recortado al total existente de ese
// recurso para que la declaración siempre sea satisfacible.
type NecesidadAleatoria struct {
	rnd  *rand.Rand
	cota int
}

func NewNecesidadAleatoria(semilla int64, cota int) *NecesidadAleatoria {
	return &NecesidadAleatoria{
		rnd:  rand.New(rand.NewSource(semilla)),
		cota: cota,
	}
}

func (n *NecesidadAleatoria) MaxNecesidad(totales []int) []int {
	necesidad := make([]int, len(totales))
	if n.cota <= 0 {
		return necesidad
	}
	for i, total := range totales {
		necesidad[i] = min(n.rnd.Intn(n.cota), total)
	}
	return necesidad
}

// NecesidadFija devuelve siempre el mismo vector
type NecesidadFija []int

func (n NecesidadFija) MaxNecesidad(_ []int) []int {
	return slices.Clone(n)
}
