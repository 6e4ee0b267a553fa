package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sat8bit/roundtable/llm"
	"github.com/sat8bit/roundtable/persona"
)

// rosterEntry keeps the temperature as text so malformed values can be
// recovered instead of failing the whole file.
type rosterEntry struct {
	persona.Persona `yaml:",inline"`
	Temperature     string `yaml:"temperature"`
}

type roster struct {
	Participants []rosterEntry `yaml:"participants"`
}

// LoadRoster reads participant profiles from a YAML file of the form
//
//	participants:
//	  - name: Alice
//	    color: "#e57373"
//	    model: gpt-4o-mini
//	    temperature: 0.7
//	    setupPrompt: ...
//	    introPrompt: ...
//
// A missing color gets a random one.
func LoadRoster(path string) ([]*persona.Persona, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file %s: %w", path, err)
	}
	return ParseRoster(data)
}

func ParseRoster(data []byte) ([]*persona.Persona, error) {
	var r roster
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal roster: %w", err)
	}

	out := make([]*persona.Persona, 0, len(r.Participants))
	for _, e := range r.Participants {
		p := e.Persona
		p.Temperature = llm.ParseTemperature(e.Temperature)
		if p.Color == "" {
			p.Color = persona.RandomColor()
		}
		out = append(out, &p)
	}
	return out, nil
}
