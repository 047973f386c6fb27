package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/modelview/internal/app"
	"github.com/philipparndt/modelview/pkg/config"
	"github.com/philipparndt/modelview/version"
)

var (
	flagConfig    string
	flagOrtho     bool
	flagWireframe bool
	flagNoWatch   bool
	flagTitle     string
)

var rootCmd = &cobra.Command{
	Use:   "modelview <file>",
	Short: "An interactive 3D model viewer",
	Long: `modelview is an interactive viewer for STL models with CAD-style
camera controls: pivot-based orbiting with snapping, cursor-anchored
zooming and transform gizmos for moving parts around.`,
	Version: version.GetFullVersion(),
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		if flagOrtho {
			cfg.Viewer.Orthographic = true
		}
		if flagWireframe {
			cfg.Viewer.Wireframe = true
		}
		if flagNoWatch {
			cfg.Viewer.WatchFile = false
		}
		if flagTitle != "" {
			cfg.Window.Title = flagTitle
		}
		return app.Run(cfg, args[0])
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to a YAML config file")
	rootCmd.Flags().BoolVar(&flagOrtho, "ortho", false, "start with an orthographic projection")
	rootCmd.Flags().BoolVar(&flagWireframe, "wireframe", false, "start with wireframe rendering enabled")
	rootCmd.Flags().BoolVar(&flagNoWatch, "no-watch", false, "disable auto-reload on file changes")
	rootCmd.Flags().StringVar(&flagTitle, "title", "", "window title")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
