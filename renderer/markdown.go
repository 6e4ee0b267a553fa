package renderer

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/sat8bit/roundtable/bus"
	"github.com/sat8bit/roundtable/message"
	"github.com/sat8bit/roundtable/persona"
	"github.com/sat8bit/roundtable/topic"
)

const markdownTemplate = `+++
title = {{ printf "%q" .Title }}
date = {{ printf "%q" .Date }}
tags = [{{ range $i, $t := .Tags }}{{ if $i }}, {{ end }}{{ printf "%q" $t }}{{ end }}]
+++

{{ .Body }}`

// MarkdownRenderer writes the session as a Hugo page once it is over. It
// reads the history handed to Finalize rather than the bus, which may drop
// events for slow subscribers.
type MarkdownRenderer struct {
	outputDir string
	topics    []*topic.Topic
	filePath  string
	now       time.Time
	log       *slog.Logger
}

func NewMarkdownRenderer(outputDir string, topics []*topic.Topic, log *slog.Logger) *MarkdownRenderer {
	if log == nil {
		log = slog.Default()
	}
	now := time.Now()
	return &MarkdownRenderer{
		outputDir: outputDir,
		topics:    topics,
		filePath:  filepath.Join(outputDir, now.Format("20060102-150405")+".md"),
		now:       now,
		log:       log,
	}
}

func (r *MarkdownRenderer) FilePath() string {
	return r.filePath
}

// Render does nothing: the transcript is built in Finalize.
func (r *MarkdownRenderer) Render(b bus.Bus, wg *sync.WaitGroup) error {
	return nil
}

// Finalize writes the transcript followed by a table of the participants.
// Nothing is written when no participant replied.
func (r *MarkdownRenderer) Finalize(participants []*persona.Persona, history []message.Message) error {
	if !hasReply(history) {
		r.log.Info("no replies, transcript not written")
		return nil
	}

	title := "Roundtable"
	if len(r.topics) > 0 {
		title = r.topics[0].Title
	}

	var (
		body strings.Builder
		tags []string
		seen = make(map[string]bool)
	)
	for _, m := range history {
		if m.Role == message.RoleSystem && m.Speaker == persona.System {
			fmt.Fprintf(&body, "> %s\n\n", quote(m.Content))
			continue
		}
		if !m.IsHostOriginated() && !seen[m.SpeakerName()] {
			seen[m.SpeakerName()] = true
			tags = append(tags, m.SpeakerName())
		}
		fmt.Fprintf(&body, "**%s**: %s\n\n", m.SpeakerName(), m.Content)
	}

	if len(r.topics) > 0 {
		body.WriteString("---\n\n## Topics\n\n")
		for _, t := range r.topics {
			fmt.Fprintf(&body, "- [%s](%s)\n", t.Title, t.SourceURL)
		}
		body.WriteString("\n")
	}

	body.WriteString("---\n\n## Participants\n\n")
	writeRoster(&body, participants)

	tmpl, err := template.New("markdown").Parse(markdownTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse markdown template: %w", err)
	}

	data := struct {
		Title string
		Date  string
		Tags  []string
		Body  string
	}{
		Title: title,
		Date:  r.now.Format(time.RFC3339),
		Tags:  tags,
		Body:  body.String(),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(r.filePath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write markdown file: %w", err)
	}

	r.log.Info("transcript written", "path", r.filePath)
	return nil
}

func writeRoster(sb *strings.Builder, participants []*persona.Persona) {
	table := tablewriter.NewWriter(sb)
	table.SetHeader([]string{"Name", "Model", "Temperature", "Color"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	for _, p := range participants {
		table.Append([]string{
			p.Name,
			p.Model,
			strconv.FormatFloat(p.Temperature, 'f', -1, 64),
			p.Color,
		})
	}
	table.Render()
}

func hasReply(history []message.Message) bool {
	for _, m := range history {
		if !m.IsHostOriginated() {
			return true
		}
	}
	return false
}

func quote(s string) string {
	return strings.ReplaceAll(s, "\n", "\n> ")
}

var _ Renderer = (*MarkdownRenderer)(nil)
