package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/andresousadotpt/hidstream/internal/commands"
	"github.com/andresousadotpt/hidstream/internal/device"
	"github.com/andresousadotpt/hidstream/internal/emit"
	"github.com/andresousadotpt/hidstream/internal/gamepad"
	"github.com/andresousadotpt/hidstream/internal/lifecycle"
	"github.com/andresousadotpt/hidstream/internal/logging"
	flag "github.com/spf13/pflag"
)

var version = "0.1.0"

const usage = "usage: hidstream [run|init|devices|version] [flags]"

// runFlags are the command line overrides for run.
type runFlags struct {
	config   string
	listen   string
	stdout   bool
	device   bool
	gamepad  bool
	logLevel string
}

func parseRunFlags(args []string) (*flag.FlagSet, *runFlags, error) {
	var f runFlags
	fs := flag.NewFlagSet("hidstream", flag.ContinueOnError)
	fs.StringVarP(&f.config, "config", "c", filepath.Join(configDir(), "config.yml"), "config file")
	fs.StringVar(&f.listen, "listen", "", "websocket listen address, empty disables")
	fs.BoolVar(&f.stdout, "stdout", false, "write events to stdout as JSON lines")
	fs.BoolVar(&f.device, "device", true, "start keyboard and mouse capture")
	fs.BoolVar(&f.gamepad, "gamepad", false, "start gamepad capture")
	fs.StringVarP(&f.logLevel, "log-level", "l", "", "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return fs, &f, nil
}

// apply copies the flags that were set on the command line over cfg.
func (f *runFlags) apply(fs *flag.FlagSet, cfg *Config) {
	if fs.Changed("listen") {
		cfg.Server.Listen = f.listen
	}
	if fs.Changed("stdout") {
		cfg.Server.Stdout = f.stdout
	}
	if fs.Changed("device") {
		cfg.Device.Autostart = f.device
	}
	if fs.Changed("gamepad") {
		cfg.Gamepad.Autostart = f.gamepad
	}
	if fs.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
}

func loadRunConfig(args []string) (Config, error) {
	fs, f, err := parseRunFlags(args)
	if err != nil {
		return Config{}, err
	}
	cfg, err := LoadConfig(f.config)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	f.apply(fs, &cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func run(args []string) error {
	cfg, err := loadRunConfig(args)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		service *commands.Service
		sinks   emit.Multi
		hub     *emit.Hub
	)
	if cfg.Server.Stdout {
		sinks = append(sinks, emit.NewWriter(os.Stdout))
	}
	if cfg.Server.Listen != "" {
		hub = emit.NewHub(emit.HubOptions{
			Context: ctx,
			Invoke:  func(ctx context.Context, name string) error { return service.Invoke(ctx, name) },
			Logger:  logger.With("component", "hub"),
		})
		sinks = append(sinks, hub)
	}

	backend, err := newDeviceBackend(cfg, logger.With("component", "device"))
	if err != nil {
		return fmt.Errorf("device backend: %w", err)
	}
	devices, err := device.NewListener(device.Options{
		Guard:            lifecycle.New("device"),
		Backend:          backend,
		Sink:             sinks,
		Logger:           logger.With("component", "device"),
		ReleaseOnFailure: cfg.Device.ReleaseOnFailure,
	})
	if err != nil {
		return err
	}

	var pads *gamepad.Listener
	var padCmds commands.GamepadListener
	if src := newGamepadSource(logger.With("component", "gamepad")); src != nil {
		pads, err = gamepad.NewListener(gamepad.Options{
			Guard:        lifecycle.New("gamepad"),
			Source:       src,
			Sink:         sinks,
			Logger:       logger.With("component", "gamepad"),
			PollInterval: cfg.Gamepad.PollInterval,
		})
		if err != nil {
			return err
		}
		padCmds = pads
	}
	service = commands.New(devices, padCmds, logger)

	var srv *http.Server
	if hub != nil {
		ln, err := net.Listen("tcp", cfg.Server.Listen)
		if err != nil {
			return fmt.Errorf("listen %s: %w", cfg.Server.Listen, err)
		}
		mux := http.NewServeMux()
		mux.Handle("/events", hub)
		srv = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("websocket server stopped", "error", err)
			}
		}()
		fmt.Printf("hidstream: serving events on ws://%s/events\n", ln.Addr())
	}

	devicesDone := make(chan struct{})
	if cfg.Device.Autostart {
		go func() {
			defer close(devicesDone)
			startDevices(ctx, service, backend.Name(), logger)
		}()
	} else {
		close(devicesDone)
	}
	if cfg.Gamepad.Autostart {
		if err := service.StartGamepadListing(ctx); err != nil {
			logger.Warn("gamepad capture unavailable", "error", err)
		} else {
			fmt.Println("hidstream: gamepad capture started")
		}
	}

	<-ctx.Done()
	fmt.Println("\nhidstream: shutting down")

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		srv.Shutdown(shutdownCtx)
		cancel()
		hub.Close()
	}
	if pads != nil {
		pads.Stop()
		pads.Wait()
	}
	select {
	case <-devicesDone:
	case <-time.After(2 * time.Second):
		logger.Warn("device capture did not stop in time")
	}
	return nil
}

func startDevices(ctx context.Context, service *commands.Service, backend string, logger *slog.Logger) {
	fmt.Printf("hidstream: capturing keyboard and mouse (%s backend)\n", backend)
	err := service.StartDeviceListening(ctx)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	fmt.Fprintf(os.Stderr, "hidstream: %v\n", err)
	logger.Error("device capture stopped", "error", err)
}

func main() {
	args := os.Args[1:]
	cmd := "run"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "init":
		dir := configDir()
		fmt.Printf("hidstream: initializing config in %s\n", dir)
		if err := initConfig(dir); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("hidstream: config initialized")
	case "devices":
		if err := listDevices(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "hidstream: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("hidstream %s\n", version)
	case "run":
		if err := run(args); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return
			}
			fmt.Fprintf(os.Stderr, "hidstream: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}
}
