package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spf13/cobra"
	"github.com/xlab/closer"

	"scene-viewer/internal/audio"
	"scene-viewer/internal/config"
	"scene-viewer/internal/game"
	"scene-viewer/internal/input"
	"scene-viewer/internal/logger"
)

func init() {
	// GLFW and GL calls must stay on the main thread
	runtime.LockOSThread()
}

const defaultConfigPath = "config.yaml"

type options struct {
	configPath string
	logLevel   string
	watch      bool
}

func main() {
	defer closer.Close()
	if err := newRootCmd().Execute(); err != nil {
		closer.Fatalln(err)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "scene-viewer",
		Short:         "Walk through a glTF scene with water, sky, particles and bloom",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, cmd.Flags().Changed("config"))
		},
	}
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", defaultConfigPath, "YAML config file")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&opts.watch, "watch", true, "reload the config file when it changes")
	return cmd
}

// loadConfig reads the config file. The default path may be absent, in which case
// the built-in scene is used; an explicitly named file must exist.
func loadConfig(path string, explicit bool) (*config.Config, bool, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, true, nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return config.Default(), false, nil
	}
	return nil, false, fmt.Errorf("load %s: %w", path, err)
}

// override applies command line settings that take precedence over the file, on
// startup and on every reload.
func (o *options) override(cfg *config.Config) {
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
}

func run(ctx context.Context, opts *options, explicit bool) error {
	cfg, fromFile, err := loadConfig(opts.configPath, explicit)
	if err != nil {
		return err
	}
	flags := opts.override
	flags(cfg)
	log := logger.Init(cfg.Logging)
	config.ApplyRuntime(cfg)
	if !fromFile {
		log.Info("no config file, using built-in scene", "path", opts.configPath)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	closer.Bind(cancel)
	closer.Bind(audio.Shutdown)

	var watcher *config.Watcher
	if fromFile && opts.watch {
		if watcher, err = config.Watch(opts.configPath, log, flags); err != nil {
			log.Warn("config hot reload disabled", "error", err)
		} else {
			closer.Bind(func() { _ = watcher.Close() })
		}
	}

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	window, err := game.SetupWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer window.Destroy()

	im := input.NewInputManager()
	fbw, fbh := window.GetFramebufferSize()
	session, err := game.NewSession(cfg, im, fbw, fbh, log)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.Close()

	log.Info("viewer started", "width", fbw, "height", fbh, "models", len(cfg.Models))
	app := game.NewApp(window, im, session, watcher, cfg.Window.Title, log)
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	slog.Info("viewer stopped")
	return nil
}
