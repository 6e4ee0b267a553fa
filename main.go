package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/mama165/sdk-go/logs"

	"github.com/sat8bit/roundtable/bus"
	"github.com/sat8bit/roundtable/buslog"
	"github.com/sat8bit/roundtable/config"
	"github.com/sat8bit/roundtable/conversation"
	"github.com/sat8bit/roundtable/fetcher"
	"github.com/sat8bit/roundtable/llm"
	"github.com/sat8bit/roundtable/message"
	"github.com/sat8bit/roundtable/renderer"
	"github.com/sat8bit/roundtable/shell"
	"github.com/sat8bit/roundtable/supervisor"
	"github.com/sat8bit/roundtable/topic"
	"github.com/sat8bit/roundtable/turn"
)

func main() {
	var (
		rosterPath  = flag.String("roster", "", "YAML file of participants to enroll at start")
		maxTurns    = flag.Int("turns", 0, "Stop after this many host messages, 0 for no limit")
		intro       = flag.Bool("intro", true, "Let participants answer their intro prompt when they join")
		systemIntro = flag.Bool("system-intro", false, "Send intro prompts with the system role")
		typeDelay   = flag.Duration("type-delay", 0, "Delay between printed characters of a reply")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	base := logs.GetLoggerFromString(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b := bus.NewMemoryBus()
	logger := slog.New(buslog.NewBusHandler(b, base.Handler(), slog.LevelWarn))
	slog.SetDefault(logger)

	client, err := newClient(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to create completion client: %v", err)
	}
	gateway := llm.NewGateway(client, cfg.Model(), cfg.CompletionTimeout, logger)
	orch := conversation.NewOrchestrator(logger, gateway, turn.NewMutexManager(), b)
	orch.SetMaxTokensInput(cfg.MaxTokens)

	topics := fetchTopics(ctx, cfg, logger)

	var wg sync.WaitGroup
	renderers := []renderer.Renderer{renderer.NewConsoleRenderer(os.Stdout, *typeDelay)}
	if cfg.TranscriptDir != "" {
		renderers = append(renderers, renderer.NewMarkdownRenderer(cfg.TranscriptDir, topics, logger))
	}
	for _, r := range renderers {
		if err := r.Render(b, &wg); err != nil {
			log.Fatalf("failed to start renderer: %v", err)
		}
	}

	limitCtx, reachedLimit := context.WithCancel(ctx)
	defer reachedLimit()
	sup := supervisor.NewSupervisor(*maxTurns, b, reachedLimit, logger)
	supDone := sup.Start()

	if text := topic.Announcement(topics); text != "" {
		if _, err := orch.SubmitHostMessage(ctx, text, message.RoleSystem, conversation.Audience()); err != nil {
			logger.Error("failed to announce topics", "error", err)
		}
	}

	if *rosterPath != "" {
		profiles, err := config.LoadRoster(*rosterPath)
		if err != nil {
			log.Fatalf("failed to load roster: %v", err)
		}
		for _, p := range profiles {
			if _, err := orch.EnrollParticipant(ctx, p, *intro, *systemIntro); err != nil {
				logger.Error("failed to enroll participant", "name", p.Name, "error", err)
			}
		}
	}

	sh := shell.New(orch, os.Stdin, os.Stdout, shell.Options{
		Intro:         *intro,
		IntroAsSystem: *systemIntro,
		LoadRoster:    config.LoadRoster,
		DefaultModel:  gateway.DefaultModel(),
		Turns:         sup,
		Stop:          limitCtx.Done(),
		Log:           logger,
	})
	if err := sh.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		base.Error("console stopped", "error", err)
	}

	b.Close()
	wg.Wait()
	<-supDone

	for _, r := range renderers {
		if err := r.Finalize(orch.Participants(), orch.Messages()); err != nil {
			base.Error("failed to finalize renderer", "error", err)
		}
	}

	stats := sup.Stats()
	base.Info("session over",
		"host_turns", stats.HostTurns,
		"system_messages", stats.System,
		"replies", stats.Replies,
		"unparsed", stats.Unparsed,
		"failures", stats.Failures)
}

func newClient(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	if cfg.Provider == config.ProviderGemini {
		return llm.NewGemini(ctx, llm.GeminiConfig{
			APIKey:    cfg.GeminiAPIKey,
			ProjectID: cfg.ProjectID,
			Location:  cfg.Location,
		})
	}
	return llm.NewOpenAI(llm.OpenAIConfig{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIURL,
	})
}

// fetchTopics returns nil when no feed is configured or the feed is unreachable.
func fetchTopics(ctx context.Context, cfg *config.Config, log *slog.Logger) []*topic.Topic {
	if cfg.TopicFeedURL == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var f topic.Fetcher = fetcher.NewRSSFetcher(cfg.TopicFeedURL, cfg.TopicFeedLimit)
	topics, err := f.Fetch(ctx)
	if err != nil {
		log.Warn("failed to fetch topics", "error", err)
		return nil
	}
	return topics
}
