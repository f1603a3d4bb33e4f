package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flight/internal/audio"
	"github.com/vovakirdan/tui-flight/internal/platform/cell"
	"github.com/vovakirdan/tui-flight/internal/platform/tui"
	"github.com/vovakirdan/tui-flight/internal/replay"
	"github.com/vovakirdan/tui-flight/internal/session"
	"github.com/vovakirdan/tui-flight/internal/sim"
	"github.com/vovakirdan/tui-flight/internal/storage"
)

var (
	flagBackend   string
	flagSound     bool
	flagNoJournal bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a run in the current terminal.

Controls:
  Space/Up   - Jump
  Q/Esc      - Quit
  Ctrl+C     - Quit

Backends:
  tea    - Bubble Tea renderer with key help (default)
  tcell  - Polled tcell screen

Finished runs are written to the journal (see 'flight runs') unless
--no-journal is given.

Examples:
  flight play
  flight play --seed 42
  flight play --backend tcell --sound
  flight play --config ./my-flight.yaml --theme blocks`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagBackend, "backend", "tea", "Terminal backend: tea or tcell")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play jump and crash tones")
	playCmd.Flags().BoolVar(&flagNoJournal, "no-journal", false, "Do not record the run")
}

func runPlay(_ *cobra.Command, _ []string) {
	if flagBackend != "tea" && flagBackend != "tcell" {
		fail("unknown backend %q (use tea or tcell)", flagBackend)
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fail("play needs an interactive terminal")
	}

	cfg, _ := loadConfig()
	theme := resolveTheme(cfg.Theme)
	params := cfg.Params(theme.Glyphs)

	// Width and score row, plus the help footer
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil && (w < params.Width || h < params.Height+2) {
		fmt.Fprintf(os.Stderr, "Warning: terminal is %dx%d, the field needs %dx%d\n", w, h, params.Width, params.Height+2)
	}

	logger, closeLog := newLogger("flight", nil)
	defer closeLog()

	var player *audio.Player
	if flagSound {
		player = audio.New()
		if err := player.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: sound disabled: %v\n", err)
			player = nil
		} else {
			defer player.Close()
		}
	}

	runSeed := seed()
	logger.Info("run starting", "seed", runSeed, "theme", theme.ID, "backend", flagBackend)
	sess := session.New(params, sim.NewRandDice(runSeed),
		session.WithPollTimeout(cfg.PollTimeout()),
		session.WithLogger(logger),
	)

	var (
		res session.Result
		err error
	)
	switch flagBackend {
	case "tcell":
		res, err = playTcell(sess, player)
	default:
		opts := []tui.ModelOption{tui.WithPollInterval(cfg.PollTimeout())}
		if player != nil {
			opts = append(opts, tui.WithSounder(player))
		}
		res, err = tui.Run(sess, opts...)
	}
	if err != nil {
		logger.Error("run failed", "error", err)
		fail("%v", err)
	}
	logger.Info("run finished", "phase", res.Phase, "score", res.Score, "ticks", res.Ticks)

	if !flagNoJournal {
		journal(replay.Record(res, params, runSeed, theme.ID, os.Getenv("USER")))
	}

	if res.Phase == session.PhaseGameOver {
		fmt.Printf("Game Over! Final Score: %d\n", res.Score)
	} else {
		fmt.Printf("Quit. Score: %d\n", res.Score)
	}
}

// playTcell runs the session's own polled loop on a tcell screen.
func playTcell(sess *session.Session, player *audio.Player) (session.Result, error) {
	screen, err := cell.Open()
	if err != nil {
		return sess.Result(), err
	}
	defer screen.Close()

	var (
		in  session.Input  = screen
		out session.Output = screen
	)
	if player != nil {
		in = player.WrapInput(in, sess)
		out = player.WrapOutput(out)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := sess.Run(ctx, in, out)
	if err == nil && res.Phase == session.PhaseGameOver {
		screen.WaitKey(tui.DefaultGameOverHold)
	}
	return res, err
}

// journal records a finished run. Failures only warn.
func journal(rec storage.RunRecord) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run journal: %v\n", err)
		return
	}
	defer store.Close()

	if _, err := store.SaveRun(rec); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save run: %v\n", err)
	}
}
