package main

import (
	"math"
	"os"

	"github.com/hunterpaulson/blackhole/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "blackhole"
	app.Usage = "render a Schwarzschild black hole accretion disk as terminal animation"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render the disk view",
			Description: `
Trace null geodesics through the Schwarzschild metric from a static
observer and animate the resulting ASCII frame on stdout, or write a
multi-frame dump file with --dump.

Up to three positional arguments override the default observer:
inclination (degrees), horizontal field of view (degrees) and observer
radius (units of M). Out-of-range values are ignored.`,
			ArgsUsage: "[inclination-deg] [fov-deg] [observer-radius]",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 80,
					Usage: "grid width in cells",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 52,
					Usage: "grid height in cells",
				},
				cli.StringFlag{
					Name:  "backend",
					Value: "auto",
					Usage: "tracer backend: auto, opencl or cpu",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 1,
					Usage: "row workers for the cpu backend",
				},
				cli.StringFlag{
					Name:  "blacklist, b",
					Usage: "skip opencl devices whose names contain any of these comma-separated values",
				},
				cli.Float64Flag{
					Name:  "gamma",
					Value: 0.30,
					Usage: "gamma exponent for symbol mapping",
				},
				cli.Float64Flag{
					Name:  "tilt",
					Value: 0,
					Usage: "disk plane tilt in degrees (cpu backend only)",
				},
				cli.Float64Flag{
					Name:  "dphase",
					Value: 2.0 * math.Pi / 180.0,
					Usage: "phase advance per frame in radians",
				},
				cli.StringFlag{
					Name:  "dump, o",
					Usage: "write frames to this file instead of animating",
				},
				cli.IntFlag{
					Name:  "frames",
					Value: 1,
					Usage: "number of frames to dump",
				},
			},
			Action: cmd.Render,
		},
		{
			Name:   "list-devices",
			Usage:  "list available opencl devices",
			Action: cmd.ListDevices,
		},
	}

	app.Run(os.Args)
}
