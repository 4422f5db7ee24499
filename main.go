package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tsdcosta/refuge-player/cmd"
	"github.com/tsdcosta/refuge-player/internal/lifecycle"
	"github.com/tsdcosta/refuge-player/internal/nowplaying"
	"github.com/tsdcosta/refuge-player/internal/platform/config"
	"github.com/tsdcosta/refuge-player/internal/platform/logger"
	"github.com/tsdcosta/refuge-player/internal/platform/metrics"
	"github.com/tsdcosta/refuge-player/internal/playback"
	"github.com/tsdcosta/refuge-player/internal/server"
	"github.com/tsdcosta/refuge-player/internal/stream"
	"github.com/tsdcosta/refuge-player/internal/widget"
	"github.com/tsdcosta/refuge-player/pkg/deps"
)

func main() {
	cli, err := cmd.ParseArgs()
	if err != nil {
		fmt.Println("error:", err)
		cmd.PrintUsageAndExit()
	}

	cfg, err := config.Load(cli.ConfigPath)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
	if cli.Port != 0 {
		cfg.API.Port = cli.Port
	}
	if cli.Headful {
		cfg.Widget.Headless = false
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	checker := deps.NewChecker("ffmpeg")
	if err := checker.CheckAndLog(log); err != nil {
		os.Exit(1)
	}

	m := metrics.New()
	phases := lifecycle.NewNotifier()

	engine := stream.NewEngine(
		cfg.Live.StreamURL,
		stream.Factory(stream.DefaultConfig()),
		cfg.Native.RetryDelay(),
		logger.Component(log, "stream"),
		m,
	)
	phases.Subscribe(engine.OnLifecycle)

	host, err := widget.NewHost(cfg.Widget.Headless, cfg.Widget.ProbeTimeout(), logger.Component(log, "browser"))
	if err != nil {
		log.Fatal().Err(err).Msg("browser launch failed")
	}
	defer host.Close()

	bridge := widget.NewBridge(
		host.Factory(),
		phases,
		cfg.Widget.GraceDelay(),
		logger.Component(log, "widget"),
		m,
	)
	phases.Subscribe(bridge.OnLifecycle)

	coordinator := playback.NewCoordinator(
		engine,
		bridge,
		cfg.Live.StreamURL,
		cfg.Live.Title,
		logger.Component(log, "playback"),
		m,
	)

	// The desktop integration is best-effort; headless hosts have no bus.
	if sink, err := nowplaying.NewSink(coordinator, logger.Component(log, "mpris")); err != nil {
		log.Warn().Err(err).Msg("mpris unavailable, now-playing disabled")
		coordinator.AddSink(nowplaying.Noop{})
	} else {
		coordinator.AddSink(sink)
		defer sink.Close()
	}

	events := server.NewEventServer(cfg.Events.SocketPath, logger.Component(log, "events"))
	coordinator.Subscribe(events.Broadcast)

	api := server.NewAPI(coordinator, phases, logger.Component(log, "api"))
	router := server.SetupRouter(api, m.Handler())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := events.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("event socket failed")
	}
	defer events.Stop()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.API.Port),
		Handler: router,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Int("port", cfg.API.Port).Msg("http api listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		coordinator.Stop()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
	log.Info().Msg("shutdown complete")
}
