package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/sat8bit/roundtable/conversation"
	"github.com/sat8bit/roundtable/message"
	"github.com/sat8bit/roundtable/persona"
	"github.com/sat8bit/roundtable/turn"
)

// Options tune how the shell enrolls participants and reports progress.
type Options struct {
	// Intro makes /add participants reply to their intro prompt at once.
	Intro bool
	// IntroAsSystem sends intro prompts with the system role.
	IntroAsSystem bool
	// LoadRoster reads the profiles behind /add.
	LoadRoster func(path string) ([]*persona.Persona, error)
	// DefaultModel is shown for participants that do not name a model.
	DefaultModel string
	// Turns reports the host turn counters in /state when set.
	Turns turn.TurnProvider
	// Stop ends the loop once the command in flight is done.
	Stop <-chan struct{}
	Log  *slog.Logger
}

type Shell struct {
	orch *conversation.Orchestrator
	in   io.Reader
	out  io.Writer
	opts Options

	to       conversation.Addressee
	asSystem bool
}

// New creates a shell whose messages go to every participant until /to
// says otherwise.
func New(orch *conversation.Orchestrator, in io.Reader, out io.Writer, opts Options) *Shell {
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	return &Shell{
		orch: orch,
		in:   in,
		out:  out,
		opts: opts,
		to:   conversation.All(),
	}
}

// Run reads and executes lines until /quit, end of input, Stop or ctx is
// done. Only ctx ending is reported as an error.
func (s *Shell) Run(ctx context.Context) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(s.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := sc.Err(); err != nil {
			s.opts.Log.Error("failed to read console input", "error", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.opts.Stop:
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if s.stopped() {
				return nil
			}
			if quit := s.Execute(ctx, Parse(line)); quit {
				return nil
			}
		}
	}
}

func (s *Shell) stopped() bool {
	select {
	case <-s.opts.Stop:
		return true
	default:
		return false
	}
}

// Execute runs one command and reports whether the shell should stop.
// Failures are printed, never returned.
func (s *Shell) Execute(ctx context.Context, cmd Command) bool {
	switch cmd.Kind {
	case KindEmpty:
	case KindSay:
		s.say(ctx, cmd.Arg)
	case KindTo:
		s.setAddressee(cmd.Arg)
	case KindSystem:
		s.setSystem(cmd.Arg)
	case KindTokens:
		if cmd.Arg == "" {
			s.printf("max tokens: %d\n", s.orch.MaxTokens())
			break
		}
		s.printf("max tokens set to %d\n", s.orch.SetMaxTokensInput(cmd.Arg))
	case KindAdd:
		s.add(ctx, cmd.Arg)
	case KindTalk:
		if cmd.Arg == "" {
			s.printf("usage: /talk NAME\n")
			break
		}
		_, err := s.orch.Nudge(ctx, cmd.Arg)
		s.report(err)
	case KindWho:
		s.who()
	case KindState:
		s.state()
	case KindHelp:
		s.printf("%s\n", usage)
	case KindQuit:
		return true
	default:
		s.printf("unknown command %s\n%s\n", cmd.Arg, usage)
	}
	return false
}

func (s *Shell) say(ctx context.Context, text string) {
	role := message.RoleUser
	if s.asSystem {
		role = message.RoleSystem
	}
	_, err := s.orch.SubmitHostMessage(ctx, text, role, s.to)
	s.report(err)
}

func (s *Shell) setAddressee(arg string) {
	to := conversation.ParseAddressee(arg)
	if !to.IsAudience() && !to.IsAll() {
		p, err := s.orch.Find(to.Name())
		if err != nil {
			s.report(err)
			return
		}
		to = conversation.To(p.Name)
	}
	s.to = to
	s.printf("now talking to %s\n", s.to)
}

func (s *Shell) setSystem(arg string) {
	switch strings.ToLower(arg) {
	case "on":
		s.asSystem = true
	case "off":
		s.asSystem = false
	default:
		s.printf("usage: /system on|off\n")
		return
	}
	s.printf("system role %s\n", strings.ToLower(arg))
}

func (s *Shell) add(ctx context.Context, path string) {
	if path == "" || s.opts.LoadRoster == nil {
		s.printf("usage: /add FILE\n")
		return
	}
	profiles, err := s.opts.LoadRoster(path)
	if err != nil {
		s.report(err)
		return
	}
	for _, p := range profiles {
		_, err := s.orch.EnrollParticipant(ctx, p, s.opts.Intro, s.opts.IntroAsSystem)
		s.report(err)
	}
}

func (s *Shell) who() {
	participants := s.orch.Participants()
	if len(participants) == 0 {
		s.printf("no participants\n")
		return
	}

	table := tablewriter.NewWriter(s.out)
	table.SetHeader([]string{"Name", "Model", "Temperature", "Color"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	for _, p := range participants {
		model := p.Model
		if model == "" {
			model = s.opts.DefaultModel
		}
		table.Append([]string{p.Name, model, strconv.FormatFloat(p.Temperature, 'f', -1, 64), p.Color})
	}
	table.Render()
}

func (s *Shell) state() {
	role := "host"
	if s.asSystem {
		role = "system"
	}
	s.printf("phase=%s busy=%t to=%s role=%s max_tokens=%d messages=%d\n",
		s.orch.State(), s.orch.Busy(), s.to, role, s.orch.MaxTokens(), len(s.orch.Messages()))
	if s.opts.DefaultModel != "" {
		s.printf("default model %s\n", s.opts.DefaultModel)
	}
	if last, ok := s.orch.Last(); ok {
		s.printf("last speaker %s\n", last.SpeakerName())
	}
	if t := s.opts.Turns; t != nil {
		if t.GetMaxTurns() > 0 {
			s.printf("turn %d of %d\n", t.GetCurrentTurn(), t.GetMaxTurns())
		} else {
			s.printf("turn %d\n", t.GetCurrentTurn())
		}
	}
}

func (s *Shell) report(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) {
		s.printf("interrupted\n")
		return
	}
	s.printf("error: %v\n", err)
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
