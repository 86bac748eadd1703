package inventory

import (
	"sync"
	"time"
)

// monotonicClock emite timestamps que nunca decrecen dentro de una instancia del
// coordinador, incluso si el reloj de pared retrocede. El orden del libro de
// movimientos se define por timestamp, así que dos emisiones consecutivas deben
// cumplir t2 >= t1.
type monotonicClock struct {
	mu   sync.Mutex
	last time.Time
}

// Now devuelve la hora actual, ajustada al último valor emitido si el reloj retrocedió.
func (c *monotonicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	if now.Before(c.last) {
		now = c.last
	}
	c.last = now
	return now
}
