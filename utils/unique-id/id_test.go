package uniqueid

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniqueID_Consecutivos(t *testing.T) {
	ass := assert.New(t)
	ids := Init(0)

	ass.Equal(0, ids.Siguiente())
	ass.Equal(0, ids.GetUniqueID())
	ass.Equal(1, ids.GetUniqueID())
	ass.Equal(2, ids.Siguiente())
	ass.Equal(2, ids.Siguiente())
}

func TestUniqueID_Concurrente(t *testing.T) {
	ids := Init(1)
	vistos := make(map[int]bool)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := ids.GetUniqueID()
			mu.Lock()
			vistos[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, vistos, 50)
	assert.Equal(t, 51, ids.Siguiente())
}
