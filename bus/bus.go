// Package bus fans conversation events out to whoever renders or observes them.
package bus

import (
	"time"

	"github.com/sat8bit/roundtable/message"
	"github.com/sat8bit/roundtable/persona"
)

type Kind string

const (
	// KindAppended carries a message that was just added to the history.
	KindAppended Kind = "appended"
	// KindFailed reports a reply cycle aborted by the completion service.
	KindFailed Kind = "failed"
	// KindNotice carries a log line meant for the host.
	KindNotice Kind = "notice"
)

type Event struct {
	Kind    Kind
	Message message.Message
	Speaker *persona.Persona
	Err     error
	Text    string
	At      time.Time
}

type Bus interface {
	Broadcast(e *Event) error
	Subscribe() <-chan *Event
	Close()
}
