// Package main is the vola command: it converts NPY occupancy grids and PLY
// meshes into VOLA files and inspects existing ones.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

const (
	// Global flags.
	flagConfig   = "config"
	flagLogLevel = "log-level"
	flagLogFile  = "log-file"

	// Conversion flags.
	flagDepth       = "depth"
	flagCRS         = "crs"
	flagDense       = "dense"
	flagNBits       = "nbits"
	flagAttrKind    = "attr-kind"
	flagCompression = "compression"
	flagClamp       = "clamp"
	flagBigEndian   = "big-endian"
	flagJobs        = "jobs"

	flagSave = "save"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "vola:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	r := &runner{}

	convertFlags := []cli.Flag{
		&cli.IntFlag{Name: flagDepth, Aliases: []string{"d"}, Usage: "octree depth, 2^`N` cells per axis"},
		&cli.StringFlag{Name: flagCRS, Usage: "coordinate reference `TAG` stored in the header"},
		&cli.BoolFlag{Name: flagDense, Usage: "write the dense bit-grid layout (.dvol)"},
		&cli.IntFlag{Name: flagNBits, Aliases: []string{"n"}, Usage: "pack the first `N` vertex attributes of each point"},
		&cli.StringFlag{Name: flagAttrKind, Usage: "attribute packing: bits or bytes"},
		&cli.StringFlag{Name: flagCompression, Usage: "body compression: none, zstd, s2 or lz4"},
		&cli.BoolFlag{Name: flagClamp, Usage: "clamp out-of-range points instead of failing"},
		&cli.BoolFlag{Name: flagBigEndian, Usage: "write big-endian header fields"},
		&cli.IntFlag{Name: flagJobs, Aliases: []string{"j"}, Usage: "convert `N` files in parallel"},
	}

	return &cli.App{
		Name:  "vola",
		Usage: "encode point data as VOLA octrees",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "load configuration from `FILE`",
			},
			&cli.StringFlag{
				Name:  flagLogLevel,
				Usage: "log level: debug, info, warn or error",
			},
			&cli.StringFlag{
				Name:  flagLogFile,
				Usage: "also log to a rotating `FILE`",
			},
		},
		Before: r.before,
		After:  r.after,
		Commands: []*cli.Command{
			{
				Name:      "npy",
				Usage:     "convert numpy occupancy grids",
				ArgsUsage: "<directory|file|glob>",
				Flags:     convertFlags,
				Action:    r.convertAction("npy"),
			},
			{
				Name:      "ply",
				Usage:     "convert PLY mesh vertices",
				ArgsUsage: "<directory|file|glob>",
				Flags:     convertFlags,
				Action:    r.convertAction("ply"),
			},
			{
				Name:      "info",
				Usage:     "print the header and level counts of VOLA files",
				ArgsUsage: "<file>...",
				Action:    r.infoAction,
			},
			{
				Name:  "config",
				Usage: "print the effective configuration as YAML",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  flagSave,
						Usage: "write the configuration to `FILE` instead (\"default\" for the user config directory)",
					},
				},
				Action: r.configAction,
			},
		},
	}
}
