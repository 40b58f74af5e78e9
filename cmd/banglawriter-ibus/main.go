//go:build linux

// banglawriter-ibus is the IBus input method engine.
//
// It connects to the IBus daemon via D-Bus, exports an engine factory and
// converts Romanized keystrokes to Bangla in every input context.
//
// Installation:
//  1. Copy the binary to /usr/lib/ibus/banglawriter-ibus
//  2. Run banglawriter-ibus -install to write the component XML
//  3. Restart IBus: ibus restart
//  4. Enable via: ibus-setup or GNOME Settings > Keyboard > Input Sources
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"banglawriter/internal/config"
	"banglawriter/internal/dictionary"
	"banglawriter/internal/ime"
	"banglawriter/internal/logging"
	"banglawriter/internal/metrics"
)

var version = "dev"

const crashRetention = 30 * 24 * time.Hour

func main() {
	configPath := flag.String("config", "", "path to config file")
	installFlag := flag.Bool("install", false, "install the IBus component")
	uninstallFlag := flag.Bool("uninstall", false, "uninstall the IBus component")
	ibusFlag := flag.Bool("ibus", false, "started by ibus-daemon; connect to its bus")
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("banglawriter-ibus %s\n", version)
		return
	}

	loader := config.NewLoader(*configPath)
	cfg, err := loader.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	switch {
	case *installFlag:
		path, err := ime.InstallComponent(cfg.IBus, version)
		if err != nil {
			log.Fatalf("Failed to install: %v", err)
		}
		fmt.Printf("Installed %s. Run 'ibus restart' to load.\n", path)
		return
	case *uninstallFlag:
		path, err := ime.UninstallComponent(cfg.IBus)
		if err != nil {
			log.Fatalf("Failed to uninstall: %v", err)
		}
		fmt.Printf("Removed %s.\n", path)
		return
	}

	if err := run(loader, cfg, *ibusFlag); err != nil {
		logging.Error("engine exited", "error", err)
		os.Exit(1)
	}
}

func run(loader *config.Loader, cfg *config.Config, useIBus bool) error {
	logger, err := logging.Setup(cfg.Logging, "ibus")
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	defer logger.Close()

	lock, err := ime.AcquireInstanceLock(filepath.Join(config.PlatformStateDir(), "ibus.lock"))
	if err != nil {
		return err
	}
	defer lock.Release()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	factory, res, err := ime.FactoryFromConfig(cfg, m)
	if err != nil {
		return err
	}
	logger.Info("dictionary loaded", "source", string(res.Source), "words", res.Index.Len())

	var dict atomic.Pointer[dictionary.LoadResult]
	dict.Store(&res)

	opts, err := ime.OptionsFromConfig(cfg.Engine)
	if err != nil {
		return err
	}

	crash := logging.NewCrashHandler(&logging.CrashHandlerConfig{
		Version:   version,
		Component: "ibus",
		Logger:    logger,
	})
	if err := crash.CleanupOldCrashReports(crashRetention); err != nil {
		logger.Warn("crash report cleanup failed", "error", err)
	}

	svc := ime.NewService(factory, ime.ServiceConfig{
		Bus:     cfg.IBus,
		Options: opts,
		UseIBus: useIBus,
		Crash:   crash,
		Logger:  logger,
	})

	current := cfg
	loader.OnChange(func(next *config.Config) {
		err := reconfigure(svc, current, next, m, &dict)
		m.ConfigReload(err)
		if err != nil {
			logger.Warn("config change rejected", "error", err)
			return
		}
		current = next
		logger.Info("config reloaded", "path", loader.Path())
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return svc.Run(ctx)
	})

	if m != nil {
		checker := newHealthChecker(svc, &dict)
		checker.SetReady(true)
		g.Go(func() error {
			return metrics.Serve(ctx, cfg.Metrics.Listen, m, map[string]http.Handler{
				"/healthz": checker.Handler(),
			})
		})
	}

	if err := loader.Watch(); err != nil {
		logger.Warn("config watch unavailable", "error", err)
	} else {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return loader.Close()
				case err := <-loader.Errors():
					m.ConfigReload(err)
					logger.Warn("config reload failed", "error", err)
				}
			}
		})
	}

	return g.Wait()
}

// reconfigure applies the engine section of next. A changed dictionary
// or default mode builds a new factory for input contexts created from
// now on.
func reconfigure(svc *ime.Service, prev, next *config.Config, m *metrics.Metrics, dict *atomic.Pointer[dictionary.LoadResult]) error {
	opts, err := ime.OptionsFromConfig(next.Engine)
	if err != nil {
		return err
	}

	if prev.DictionaryPath() != next.DictionaryPath() ||
		prev.Engine.DefaultMode != next.Engine.DefaultMode ||
		prev.Engine.PhoneticSuggestions != next.Engine.PhoneticSuggestions {
		factory, res, err := ime.FactoryFromConfig(next, m)
		if err != nil {
			return err
		}
		svc.SetFactory(factory)
		dict.Store(&res)
	}

	svc.Configure(opts)
	return nil
}
