// pyx - Terminal viewer for an indexed-color software rasterizer.
// Renders OBJ and GLB models flat shaded through a palette, in your terminal
// or to a PNG.
//
// Controls:
//
//	Click       - Pick the material under the cursor
//	[ / ]       - Shift the picked material through the palette
//	A/D         - Yaw left/right
//	W/S         - Pitch up/down
//	Space       - Random spin
//	R           - Reset rotation
//	X           - Toggle wireframe overlay
//	?           - Toggle HUD overlay
//	Esc, Q      - Quit
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/taigrr/pyx/pkg/render"
)

const defaultModel = "assets/model.obj"

// options holds the flags shared by every command.
type options struct {
	palettePath   string
	materialsPath string
	fps           int
	logPath       string
	debug         bool
	background    uint8

	// render only
	width, height int
	scale         int
	frames        int
	out           string
	wireframe     bool
}

func main() {
	err := fang.Execute(context.Background(), newRootCmd(),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM))
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	var closeLog func()

	root := &cobra.Command{
		Use:   "pyx [model.obj|model.glb]",
		Short: "Terminal software rasterizer",
		Long: `View OBJ and glTF models flat shaded through an indexed palette.

Controls:
  Click       Pick material
  [ / ]       Shift picked material through the palette
  W/S/A/D     Pitch and yaw
  Space       Random spin
  R           Reset view
  X           Toggle wireframe overlay
  ?           Toggle HUD overlay
  Esc, Q      Quit`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			closeLog, err = setupLogging(opts.logPath, opts.debug)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if closeLog != nil {
				closeLog()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, modelArg(args))
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.palettePath, "palette", "assets/palette.toml", "palette file (TOML), empty for the built-in palette")
	pf.StringVar(&opts.materialsPath, "materials", "assets/materials.toml", "material file (TOML), empty for default ramps")
	pf.IntVar(&opts.fps, "fps", 30, "target FPS (also sets spring timing)")
	pf.StringVar(&opts.logPath, "log", "", "write logs to this file")
	pf.BoolVar(&opts.debug, "debug", false, "log per-frame diagnostics")
	pf.Uint8Var(&opts.background, "bg", 0, "background palette index")

	root.AddCommand(newRenderCmd(opts))
	return root
}

func newRenderCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "render [model.obj|model.glb]",
		Short:   "Render one frame to a PNG",
		Example: "  pyx render --out frame.png --frames 40 assets/model.obj",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return export(cmd, opts, modelArg(args))
		},
	}
	f := cmd.Flags()
	f.IntVar(&opts.width, "width", 80, "buffer width in pixels")
	f.IntVar(&opts.height, "height", 120, "buffer height in pixels")
	f.IntVar(&opts.scale, "scale", 5, "pixel upscale factor")
	f.IntVar(&opts.frames, "frames", 0, "turntable frames to advance first")
	f.StringVarP(&opts.out, "out", "o", "frame.png", "output PNG path")
	f.BoolVar(&opts.wireframe, "wire", false, "overlay triangle edges")
	return cmd
}

func modelArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultModel
}

// setupLogging points the render logger at a file. The terminal belongs to
// the viewer, so nothing is logged without --log.
func setupLogging(path string, debug bool) (func(), error) {
	if path == "" {
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	render.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))
	return func() {
		render.SetLogger(nil)
		f.Close()
	}, nil
}
