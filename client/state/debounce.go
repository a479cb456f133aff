package state

import "time"

const SearchDelay = 300 * time.Millisecond

// Debounce deja pasar solo la última pulsación de una ráfaga. Cada Type devuelve
// una marca; el temporizador que lleva la marca más reciente es el único que se
// resuelve con Settled
type Debounce struct {
	Delay time.Duration

	seq   uint64
	query string
}

func NewDebounce(delay time.Duration) *Debounce {
	return &Debounce{Delay: delay}
}

func (d *Debounce) Type(query string) uint64 {
	d.seq++
	d.query = query
	return d.seq
}

// Settled devuelve la consulta si tag es la última marca emitida. Una marca
// solo se resuelve una vez
func (d *Debounce) Settled(tag uint64) (string, bool) {
	if tag != d.seq || tag == 0 {
		return "", false
	}
	d.seq++
	return d.query, true
}

// Cancel invalida el temporizador pendiente
func (d *Debounce) Cancel() {
	d.seq++
}

func (d *Debounce) Query() string {
	return d.query
}
