// Package renderer turns the event stream of a session into something a
// person reads: a live console view or a transcript file.
package renderer

import (
	"strings"
	"sync"
	"unicode"

	"github.com/sat8bit/roundtable/bus"
	"github.com/sat8bit/roundtable/message"
	"github.com/sat8bit/roundtable/persona"
)

type Renderer interface {
	// Render subscribes to b and returns at once. The renderer calls wg.Done
	// once it has drained the closed bus.
	Render(b bus.Bus, wg *sync.WaitGroup) error

	// Finalize runs after the bus is closed and drained, with the session's
	// participants and its complete history.
	Finalize(participants []*persona.Persona, history []message.Message) error
}

// Initials returns the capitalized first letters of the first and last words
// of name.
func Initials(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return ""
	}
	first := func(w string) string {
		r := []rune(w)
		return string(unicode.ToUpper(r[0]))
	}
	if len(words) == 1 {
		return first(words[0])
	}
	return first(words[0]) + first(words[len(words)-1])
}
