// Package terminal tiene utilidades de formato para la salida en terminal.
package terminal

import (
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// Size devuelve el tamaño de la terminal, o 80x24 si no es una terminal
func Size() (int, int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// Wrap parte text en líneas de como mucho maxLen caracteres por palabras.
// Las palabras más largas que maxLen van en su propia línea. Respeta los
// saltos de línea del texto
func Wrap(text string, maxLen int) string {
	if maxLen <= 0 {
		return text
	}

	paragraphs := strings.Split(text, "\n")
	out := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		out = append(out, wrapLine(p, maxLen))
	}
	return strings.Join(out, "\n")
}

func wrapLine(line string, maxLen int) string {
	var b strings.Builder
	curLen := 0
	for _, word := range strings.Fields(line) {
		wordLen := utf8.RuneCountInString(word)
		switch {
		case curLen == 0:
			b.WriteString(word)
			curLen = wordLen
		case curLen+1+wordLen > maxLen:
			b.WriteString("\n" + word)
			curLen = wordLen
		default:
			b.WriteString(" " + word)
			curLen += 1 + wordLen
		}
	}
	return b.String()
}

// Truncate corta s a maxLen caracteres añadiendo "…"
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	r := []rune(s)
	return string(r[:maxLen-1]) + "…"
}

// PadLines completa s con saltos de línea hasta ocupar height líneas
func PadLines(s string, height int) string {
	n := strings.Count(s, "\n")
	if n >= height {
		return s
	}
	return s + strings.Repeat("\n", height-n)
}
