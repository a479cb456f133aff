// Package message contiene los mensajes de bubbletea que comparten las pantallas.
package message

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// StatusDelay es lo que dura visible la línea de estado
const StatusDelay = 5 * time.Second

// ResetMsg borra la línea de estado que lleva la marca Tag. Una marca antigua
// no borra un estado más reciente
type ResetMsg struct {
	Tag uint64
}

var resetSeq atomic.Uint64

// NextResetTag devuelve una marca nueva, única en todo el proceso
func NextResetTag() uint64 {
	return resetSeq.Add(1)
}

// SearchSettledMsg llega cuando vence el temporizador de una pulsación
type SearchSettledMsg struct {
	Tag uint64
}

func SendTimedMessage(msg interface{}, t time.Duration) func() tea.Msg {
	return func() tea.Msg {
		timer := time.NewTimer(t)
		<-timer.C

		return msg
	}
}

// Debounced programa el SearchSettledMsg de la pulsación tag
func Debounced(tag uint64, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return SearchSettledMsg{Tag: tag}
	})
}
