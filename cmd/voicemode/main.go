package main

import (
	"context"
	"flag"
	"fmt"
	stdlog "log"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hammamikhairi/voicemode/internal/catalog"
	"github.com/hammamikhairi/voicemode/internal/chime"
	"github.com/hammamikhairi/voicemode/internal/config"
	"github.com/hammamikhairi/voicemode/internal/conversation"
	"github.com/hammamikhairi/voicemode/internal/display"
	"github.com/hammamikhairi/voicemode/internal/domain"
	"github.com/hammamikhairi/voicemode/internal/engine"
	"github.com/hammamikhairi/voicemode/internal/logger"
	"github.com/hammamikhairi/voicemode/internal/metrics"
	"github.com/hammamikhairi/voicemode/internal/storage"
	"github.com/hammamikhairi/voicemode/internal/timer"
	"github.com/hammamikhairi/voicemode/internal/trust"
)

func main() {
	// Load .env file if present (ignored if missing).
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	verbose := flag.Bool("verbose", false, "enable debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", cfg.LogFile, "log file path (empty for stderr)")
	dataPath := flag.String("data", cfg.DataPath, "YAML data model (empty for the built-in one)")
	seed := flag.Uint64("seed", cfg.Seed, "seed for the conversation pick (0 for random)")
	captions := flag.Bool("captions", cfg.Captions, "start with captions on")
	chimeOn := flag.Bool("chime", cfg.Chime, "play a tone when a trust signal shows")
	chimeWAV := flag.String("chime-wav", "", "16-bit mono 24kHz WAV played for info signals instead of the stock tone")
	metricsAddr := flag.String("metrics-addr", cfg.MetricsAddr, "serve Prometheus metrics on this address")
	headless := flag.Bool("headless", false, "print the transcript instead of running the TUI")
	turns := flag.Int("turns", 3, "headless: exit after this many assistant replies")
	topic := flag.String("topic", "", "headless: pick a conversation about this topic")
	revealTick := flag.Duration("reveal-tick", cfg.Playback.RevealTick, "delay between revealed words")
	commitDelay := flag.Duration("commit-delay", cfg.Playback.CommitDelay, "delay before the user turn is processed")
	dwell := flag.Duration("dwell", cfg.Playback.Dwell, "processing time before the assistant replies")
	flag.Parse()

	logLevel := logger.LevelNormal
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// The TUI owns the terminal, so logs go to a file by default.
	var logOut *os.File
	if *logFile != "" {
		if dir := filepath.Dir(*logFile); dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: cannot open log file %s: %v (falling back to stderr)\n", *logFile, err)
			logOut = os.Stderr
		} else {
			defer f.Close()
			logOut = f
		}
	} else {
		logOut = os.Stderr
	}
	stdlog.SetOutput(logOut)

	log := logger.New(logLevel, logOut)
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cat, err := loadCatalog(*dataPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	toast := cat.ToastDuration()
	if cfg.Toast > 0 {
		toast = cfg.Toast
	}

	// Observers shared by the controller and the trust notifier.
	var observers domain.Observers
	if *metricsAddr != "" {
		collector := metrics.NewCollector("voicemode")
		observers = append(observers, collector)
		go func() {
			if err := collector.Serve(ctx, *metricsAddr, log); err != nil {
				log.Error("metrics: %v", err)
			}
		}()
	}
	if *chimeOn {
		observers = append(observers, chime.New(newSink(log), log, chimeOptions(*chimeWAV, log)...))
	}

	source := catalog.NewMemorySource(cat.Conversations, log)
	archive := storage.NewMemoryArchive(log)

	opts := []engine.Option{
		engine.WithTimings(engine.Timings{
			RevealTick:  *revealTick,
			CommitDelay: *commitDelay,
			Dwell:       *dwell,
		}),
		engine.WithCaptions(*captions),
	}
	if *seed != 0 {
		opts = append(opts, engine.WithRand(rand.New(rand.NewPCG(*seed, *seed))))
	}

	if *headless {
		h := &headlessRun{
			cat:       cat,
			source:    source,
			archive:   archive,
			observers: observers,
			opts:      opts,
			toast:     toast,
			turns:     *turns,
			topic:     *topic,
			log:       log,
		}
		if err := h.run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	sched := display.NewScheduler()
	signals := trust.New(cat.Signals(), toast, sched, log, trust.WithObserver(observers))
	ctl := engine.New(source, archive, signals, sched, log, append(opts, engine.WithObserver(observers))...)

	ui := display.NewUI(display.Deps{
		Session:   ctl,
		Scheduler: sched,
		Archive:   archive,
		Parser:    conversation.NewKeywordParser(log),
		Search:    source,
		Catalog:   cat,
		Log:       log,
	})

	// Bubble Tea owns the terminal, blocks until quit.
	if err := ui.Run(ctx); err != nil {
		log.Error("display: %v", err)
	}
	cancel()
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}

// newSink opens the audio device, or returns a silent sink when there is
// none (CI, SSH sessions).
func newSink(log *logger.Logger) chime.Sink {
	player, err := chime.NewPlayer(log)
	if err != nil {
		log.Warn("audio player init failed, chimes muted: %v", err)
		return chime.NewSilent(log)
	}
	return player
}

// chimeOptions loads a custom info tone. A bad file keeps the stock tone.
func chimeOptions(path string, log *logger.Logger) []chime.Option {
	if path == "" {
		return nil
	}
	wav, err := os.ReadFile(path)
	if err != nil {
		log.Warn("reading chime %s: %v", path, err)
		return nil
	}
	pcm, err := chime.FromWAV(wav)
	if err != nil {
		log.Warn("decoding chime %s: %v", path, err)
		return nil
	}
	return []chime.Option{chime.WithTone("info", pcm)}
}

// headlessRun plays one session on wall-clock timers and prints the
// transcript to stdout.
type headlessRun struct {
	cat       *catalog.Catalog
	source    *catalog.MemorySource
	archive   *storage.MemoryArchive
	observers domain.Observers
	opts      []engine.Option
	toast     time.Duration
	turns     int
	topic     string
	log       *logger.Logger
}

func (h *headlessRun) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := timer.NewLoop(h.log)
	transcript := conversation.NewTranscript(h.log, func(format string, a ...interface{}) {
		fmt.Printf(format+"\n", a...)
	}, true)

	var ctl *engine.Controller
	stopper := &turnLimit{limit: h.turns, done: func() {
		// Queued so Exit runs after the current Fire returns.
		loop.Do(func() {
			if err := ctl.Exit(ctx); err != nil {
				h.log.Warn("exit: %v", err)
			}
			cancel()
		})
	}}

	observers := append(domain.Observers{transcript, stopper}, h.observers...)
	signals := trust.New(h.cat.Signals(), h.toast, loop, h.log, trust.WithObserver(observers))
	ctl = engine.New(h.source, h.archive, signals, loop, h.log, append(h.opts, engine.WithObserver(observers))...)

	var startErr error
	loop.Do(func() {
		startErr = h.start(ctx, ctl)
		if startErr != nil {
			cancel()
		}
	})

	fmt.Println(display.RenderBanner())
	fmt.Println(display.BannerStyle.Render("  Headless voice session, ctrl+c to stop."))
	fmt.Println()

	loop.Run(ctx, ctl)
	if startErr != nil {
		return startErr
	}

	recs, err := h.archive.List(context.Background())
	if err != nil {
		return err
	}
	for _, rec := range recs {
		fmt.Printf("archived %s: %q (%d messages)\n", rec.ID, rec.Title(), len(rec.Messages))
	}
	return nil
}

func (h *headlessRun) start(ctx context.Context, ctl *engine.Controller) error {
	if h.topic == "" {
		return ctl.Start(ctx)
	}
	convs, err := h.source.Search(ctx, h.topic)
	if err != nil {
		return err
	}
	if len(convs) == 0 {
		return fmt.Errorf("no conversation about %q: %w", h.topic, domain.ErrNoConversations)
	}
	return ctl.StartConversation(ctx, convs[0].ID)
}

// turnLimit calls done once after limit assistant replies.
type turnLimit struct {
	limit int
	seen  int
	done  func()
}

func (t *turnLimit) StateChanged(from, to domain.SessionState) {}
func (t *turnLimit) SignalShown(sig domain.TrustSignal)         {}
func (t *turnLimit) FeedbackSubmitted(fb domain.Feedback)       {}

func (t *turnLimit) MessageCommitted(msg domain.Message) {
	if msg.Role != domain.RoleAssistant || t.limit <= 0 {
		return
	}
	t.seen++
	if t.seen == t.limit {
		t.done()
	}
}
