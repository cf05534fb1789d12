package main

import (
    "context"
    "errors"
    "fmt"
    "io"
    "log"
    "os"
    "os/signal"
    "syscall"

    "github.com/GiGurra/boa/pkg/boa"
    "github.com/spf13/cobra"
)

type Params struct {
    Config   string `short:"c" help:"Path to the JSON configuration file." default:"config.json"`
    Headless bool   `help:"Read words from stdin, one per line, instead of starting the terminal UI." default:"false"`
}

func defaultParamEnricher() boa.ParamEnricher {
    return boa.ParamEnricherCombine(
        boa.ParamEnricherBool,
        boa.ParamEnricherName,
        boa.ParamEnricherShort,
    )
}

// Entry point for the Morse code machine
func main() {
    boa.CmdT[Params]{
        Use:         "morsepi",
        Short:       "Blink words in Morse code on GPIO LEDs",
        Long:        "Type a word and press enter: valid letters blink alternately on the red and green LEDs, characters without a Morse code flash the blue LED.",
        ParamEnrich: defaultParamEnricher(),
        RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
            if err := run(params); err != nil {
                log.Fatalf("morsepi: %v", err)
            }
        },
    }.Run()
}

// run wires the player together.  It returns instead of exiting so that the
// deferred GPIO cleanup always runs.
func run(params *Params) error {
    cfgMgr := NewConfigManager(params.Config)
    if err := cfgMgr.Load(); err != nil {
        return fmt.Errorf("failed to load configuration: %w", err)
    }
    cfg := cfgMgr.Get()

    // The TUI owns the terminal, so events only reach stderr in headless mode.
    var fallback io.Writer
    if params.Headless {
        fallback = os.Stderr
    }
    logger := NewEventLogger(cfg.LogFile, fallback)

    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()

    backend, err := newBackend(cfg.Backend)
    if err != nil {
        return fmt.Errorf("initialisation error: %w", err)
    }
    // Deferred first so it runs last, after the session has stopped.  It sees
    // the fully decorated backend.
    defer func() {
        if err := backend.Cleanup(); err != nil {
            log.Printf("gpio cleanup: %v", err)
        }
        logger.Log("gpio", "cleanup done")
    }()

    if cfg.Sidetone.Enabled {
        toned, err := newSidetone(backend, cfg.Sidetone.Frequency, logger)
        if err != nil {
            logger.Log("sidetone", "disabled: %v", err)
        } else {
            backend = toned
        }
    }
    leds := newLEDMonitor(backend)
    backend = leds

    if err := configureOutputs(backend, cfg.Pins.All()); err != nil {
        return err
    }

    session := NewPlaybackSession(backend, realClock{}, cfg.Pins, cfg.Unit(), logger, initAlertHandlers(cfg))
    session.Start(ctx)
    defer session.Close()

    err = cfgMgr.Watch(ctx, func(next Config) {
        session.SetUnit(next.Unit())
        logger.Log("config", "reloaded, unit now %s", next.Unit())
        if next.Backend != cfg.Backend || next.Pins != cfg.Pins || next.Sidetone != cfg.Sidetone {
            logger.Log("config", "backend, pin and sidetone changes take effect after a restart")
        }
    }, func(err error) {
        logger.Log("config", "reload failed: %v", err)
    })
    if err != nil {
        logger.Log("config", "live reload unavailable: %v", err)
    }

    logger.Log("main", "started backend=%s pins=%v unit=%s", cfg.Backend, cfg.Pins.All(), cfg.Unit())

    if params.Headless {
        err = runHeadless(ctx, session, os.Stdin, os.Stdout, cfg.MaxWordLength)
    } else {
        err = runTUI(ctx, session, leds, cfg)
    }
    if session.State() == StateRunning {
        fmt.Fprintln(os.Stderr, "waiting for the current word to finish...")
    }
    if errors.Is(err, context.Canceled) {
        return nil
    }
    return err
}
