package conversation

import (
	"strconv"

	"github.com/samber/lo"
	"github.com/sat8bit/roundtable/message"
	"github.com/sat8bit/roundtable/persona"
)

// MessageRecord is the exported shape of a history entry.
type MessageRecord struct {
	Role             string
	Content          string
	ParticipantName  string
	ParticipantColor string
}

// Fields lists the record in export column order.
func (r MessageRecord) Fields() []string {
	return []string{r.Role, r.Content, r.ParticipantName, r.ParticipantColor}
}

// MessageHeader names the MessageRecord columns.
var MessageHeader = []string{"role", "content", "participant_name", "participant_color"}

// ParticipantRecord is the exported shape of a participant.
type ParticipantRecord struct {
	Name        string
	Color       string
	SetupPrompt string
	IntroPrompt string
	Temperature float64
}

func (r ParticipantRecord) Fields() []string {
	return []string{r.Name, r.Color, r.SetupPrompt, r.IntroPrompt, strconv.FormatFloat(r.Temperature, 'f', -1, 64)}
}

var ParticipantHeader = []string{"name", "color", "setupPrompt", "introPrompt", "temperature"}

func (o *Orchestrator) MessageRecords() []MessageRecord {
	return lo.Map(o.history.Messages(), func(m message.Message, _ int) MessageRecord {
		return MessageRecord{
			Role:             string(m.Role),
			Content:          m.Content,
			ParticipantName:  m.SpeakerName(),
			ParticipantColor: m.SpeakerColor(),
		}
	})
}

func (o *Orchestrator) ParticipantRecords() []ParticipantRecord {
	return lo.Map(o.registry.All(), func(p *persona.Persona, _ int) ParticipantRecord {
		return ParticipantRecord{
			Name:        p.Name,
			Color:       p.Color,
			SetupPrompt: p.SetupPrompt,
			IntroPrompt: p.IntroPrompt,
			Temperature: p.Temperature,
		}
	})
}
