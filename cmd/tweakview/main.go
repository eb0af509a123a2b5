package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/gekko3d/tweakview"
)

type options struct {
	configPath string
	width      int
	height     int
	assets     string
	debug      bool
}

func main() {
	var opts options
	cmd := &cobra.Command{
		Use:   "tweakview",
		Short: "Interactive 3D scene viewer with a live tweak panel",
		Long: `tweakview - 3D scene viewer

Loads two GLB models and a spinning cube, with transform gizmos on the
selected object and a panel of live parameters.

Controls:
  Click object  - Select it
  G / S / R     - Translate, scale or rotate gizmo
  Left drag     - Orbit (or drag a gizmo handle)
  Right drag    - Pan
  Scroll        - Zoom`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML config file")
	cmd.Flags().IntVar(&opts.width, "width", 1280, "Window width")
	cmd.Flags().IntVar(&opts.height, "height", 720, "Window height")
	cmd.Flags().StringVar(&opts.assets, "assets", ".", "Directory the model paths are relative to")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	infoCmd := &cobra.Command{
		Use:   "info <model.glb>",
		Short: "Display mesh statistics of a GLB file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, args[0])
		},
	}
	cmd.AddCommand(infoCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := fang.Execute(ctx, cmd); err != nil {
		stop()
		os.Exit(1)
	}
}

// resolveConfig layers explicitly set flags over the config file over the defaults.
func resolveConfig(cmd *cobra.Command, opts options) (tweakview.ViewerConfig, error) {
	cfg := tweakview.DefaultViewerConfig()
	if opts.configPath != "" {
		var err error
		if cfg, err = tweakview.LoadConfig(opts.configPath); err != nil {
			return cfg, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Window.Width = opts.width
	}
	if flags.Changed("height") {
		cfg.Window.Height = opts.height
	}
	if flags.Changed("assets") {
		cfg.Assets.Root = opts.assets
	}
	if flags.Changed("debug") {
		cfg.Debug = opts.debug
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context, cfg tweakview.ViewerConfig) error {
	app := tweakview.NewAppBuilder().
		UseModule(tweakview.ViewerModule{Config: cfg}).
		Build()
	app.Run(ctx)
	return nil
}

func runInfo(cmd *cobra.Command, path string) error {
	mesh, err := tweakview.GLBLoader{}.Load(cmd.Context(), path)
	if err != nil {
		return err
	}
	b := mesh.Bounds()
	size := b.Size()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File:      %s\n", path)
	fmt.Fprintf(out, "Vertices:  %d\n", len(mesh.Positions))
	fmt.Fprintf(out, "Triangles: %d\n", len(mesh.Indices)/3)
	fmt.Fprintf(out, "Bounds:    (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n",
		b.Min.X(), b.Min.Y(), b.Min.Z(), b.Max.X(), b.Max.Y(), b.Max.Z())
	fmt.Fprintf(out, "Size:      %.3f x %.3f x %.3f\n", size.X(), size.Y(), size.Z())
	return nil
}
