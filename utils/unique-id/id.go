package uniqueid

import "sync"

type UniqueID struct {
	mu     sync.Mutex
	nextID int
}

// Init crea un generador que entrega IDs consecutivos a partir de inicial
func Init(inicial int) *UniqueID {
	return &UniqueID{
		mu:     sync.Mutex{},
		nextID: inicial,
	}
}

func (u *UniqueID) GetUniqueID() int {
	u.mu.Lock()
	defer u.mu.Unlock()

	id := u.nextID
	u.nextID++
	return id
}

// Siguiente devuelve el próximo ID sin consumirlo
func (u *UniqueID) Siguiente() int {
	u.mu.Lock()
	defer u.mu.Unlock()

	return u.nextID
}
