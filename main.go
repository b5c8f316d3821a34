// Command wavecast runs the unattended radio-broadcast audio player
// described by spec.md: a weekly time-zoned playlist schedule rendered to a
// continuous stereo PCM output with crossfade/gain normalization.
//
// Grounded on the teacher's main.go (structured slog setup, signal-driven
// graceful shutdown) and spec.md §6's command-line surface.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arung-agamani/wavecast/internal/audioio"
	"github.com/arung-agamani/wavecast/internal/config"
	"github.com/arung-agamani/wavecast/internal/decode"
	"github.com/arung-agamani/wavecast/internal/engine"
	"github.com/arung-agamani/wavecast/internal/hostconfig"
	"github.com/arung-agamani/wavecast/internal/media"
	"github.com/arung-agamani/wavecast/internal/schedule"
	"github.com/arung-agamani/wavecast/internal/signalbus"
	"github.com/arung-agamani/wavecast/internal/statusapi"
)

// logLevels maps spec.md §6's `-d` 0..4 scale onto slog levels. 0 and 1 are
// both "mostly silent"; slog has no level quieter than Error, so both map
// there.
var logLevels = [5]slog.Level{
	0: slog.LevelError,
	1: slog.LevelError,
	2: slog.LevelWarn,
	3: slog.LevelInfo,
	4: slog.LevelDebug,
}

func main() {
	os.Exit(run())
}

func run() int {
	host := hostconfig.Load()

	level := flag.Int("d", 3, "log level 0..4 (silent, error, warn, info, debug)")
	mask := flag.String("m", "0", "hex debug-facility bitmask")
	port := flag.Int("p", host.DefaultPort, "TCP port for the status endpoint")
	flag.Parse()

	if *level < 0 || *level > 4 {
		fmt.Fprintf(os.Stderr, "wavecast: -d must be 0..4, got %d\n", *level)
		return 1
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevels[*level],
	}))
	slog.SetDefault(logger)

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: wavecast [-d LEVEL] [-m MASK] [-p PORT] <schedule.xml>")
		return 1
	}
	schedulePath := flag.Arg(0)
	slog.Info("starting wavecast", "schedule", schedulePath, "port", *port, "debug_mask", *mask)

	engineStart := time.Now()
	cfg, err := config.Load(schedulePath, engineStart)
	if err != nil {
		slog.Error("scheduler init failed: config load", "error", err)
		return 1
	}

	sched := schedule.New(cfg, engineStart, false)
	eng := engine.New(sched, media.OutputSampleRate, host.RingSeconds)

	stream, err := audioio.Open(media.OutputSampleRate, decode.Period, host.OutputDevice, eng.OutputCallback)
	if err != nil {
		slog.Error("player init failed: audio output", "error", err)
		return 1
	}
	defer stream.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := signalbus.Start(ctx, eng, cancel)
	defer bus.Stop()

	eng.Start(ctx)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), statusapi.SecurityHeaders())
	statusapi.NewHandler(eng).Register(router)

	srv := &http.Server{Addr: fmt.Sprintf(":%d", *port), Handler: router}
	srvErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			srvErrCh <- err
			return
		}
		srvErrCh <- nil
	}()

	select {
	case <-ctx.Done():
	case err := <-srvErrCh:
		if err != nil {
			slog.Error("status endpoint init failed", "error", err)
			eng.Stop()
			cancel() // lets the deferred bus.Stop see its dispatch goroutine exit
			return 1
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 4*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)

	eng.Stop()
	slog.Info("wavecast stopped")
	return 0
}
