package renderer

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gookit/color"

	"github.com/sat8bit/roundtable/bus"
	"github.com/sat8bit/roundtable/message"
	"github.com/sat8bit/roundtable/persona"
)

// ConsoleRenderer prints every event as it arrives. With a non-zero
// typeDelay, replies are typed out one rune at a time.
type ConsoleRenderer struct {
	w         io.Writer
	typeDelay time.Duration
}

func NewConsoleRenderer(w io.Writer, typeDelay time.Duration) *ConsoleRenderer {
	return &ConsoleRenderer{w: w, typeDelay: typeDelay}
}

func (c *ConsoleRenderer) Render(b bus.Bus, wg *sync.WaitGroup) error {
	ch := b.Subscribe()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for e := range ch {
			c.print(e)
		}
	}()
	return nil
}

func (c *ConsoleRenderer) print(e *bus.Event) {
	switch e.Kind {
	case bus.KindNotice:
		fmt.Fprintln(c.w, color.New(color.FgGray).Render(e.Text))
	case bus.KindFailed:
		name := "unknown"
		if e.Speaker != nil {
			name = e.Speaker.Name
		}
		fmt.Fprintln(c.w, color.New(color.FgRed).Render(fmt.Sprintf("! %s could not reply: %v", name, e.Err)))
	case bus.KindAppended:
		c.printMessage(e.Message)
	}
}

func (c *ConsoleRenderer) printMessage(m message.Message) {
	if m.Role == message.RoleSystem && m.Speaker == persona.System {
		fmt.Fprintf(c.w, "%s %s\n", color.New(color.FgGray, color.OpBold).Render("[System]"), m.Content)
		return
	}

	hex := m.SpeakerColor()
	if hex == "" {
		hex = persona.PseudoColor
	}
	tint := color.HEX(hex)
	fmt.Fprintf(c.w, "%s %s: ", tint.Sprint("("+Initials(m.SpeakerName())+")"), tint.Sprint(m.SpeakerName()))
	if m.Unparsed {
		fmt.Fprint(c.w, color.New(color.FgYellow).Render("[unformatted] "))
	}
	if c.typeDelay <= 0 || m.IsHostOriginated() {
		fmt.Fprintln(c.w, m.Content)
		return
	}
	for _, r := range m.Content {
		fmt.Fprint(c.w, string(r))
		time.Sleep(c.typeDelay)
	}
	fmt.Fprintln(c.w)
}

func (c *ConsoleRenderer) Finalize(participants []*persona.Persona, history []message.Message) error {
	return nil
}

var _ Renderer = (*ConsoleRenderer)(nil)
