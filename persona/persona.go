// Package persona defines conversation participants and the registry that
// holds them for the lifetime of a session.
package persona

import (
	"fmt"
	"math/rand"
)

// PseudoColor is the display color shared by the Host and System speakers.
const PseudoColor = "#cccccc"

// Persona is one participant profile. The name is the addressing key and is
// unique within a Registry.
type Persona struct {
	Name        string  `yaml:"name" validate:"required"`
	Color       string  `yaml:"color"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"-"`
	SetupPrompt string  `yaml:"setupPrompt"`
	IntroPrompt string  `yaml:"introPrompt"`

	pseudo bool
}

// Host and System speak the host-originated entries of a conversation.
// They are never registered.
var (
	Host   = &Persona{Name: "Host", Color: PseudoColor, pseudo: true}
	System = &Persona{Name: "System", Color: PseudoColor, pseudo: true}
)

// IsPseudo reports whether p is the Host or System speaker.
func (p *Persona) IsPseudo() bool {
	return p != nil && p.pseudo
}

// RandomColor returns a random #rrggbb color.
func RandomColor() string {
	return fmt.Sprintf("#%06x", rand.Intn(0x1000000))
}
