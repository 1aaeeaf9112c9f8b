// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Println("Error: ", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "stb-match",
		Usage: "Place applicants into slots with deferred acceptance and a single tie break",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log every pass, eviction and residual draw",
			},
		},
		Commands: []*cli.Command{
			matchCmd,
			sampleCmd,
			verifyCmd,
		},
	}
}

var matchCmd = &cli.Command{
	Name:    "match",
	Usage:   "Match the applicants of an instance file",
	Aliases: []string{"m"},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "input",
			Required: true,
			Usage:    "specify the input instance (yaml or json)",
		},
		&cli.StringFlag{
			Name:     "output",
			Required: true,
			Usage:    "specify the output report.json",
		},
		&cli.Uint64Flag{
			Name:     "seed",
			Required: false,
			Usage:    "specify the tie break seed, drawn at random when not set",
		},
		&cli.BoolFlag{
			Name:     "multi",
			Required: false,
			Usage:    "allow an applicant to hold more than one slot",
		},
		&cli.StringFlag{
			Name:     "metrics",
			Required: false,
			Usage:    "specify a file to dump prometheus metrics into",
		},
	},
	Action: func(ctx *cli.Context) error {
		var seed *uint64
		if ctx.IsSet("seed") {
			v := ctx.Uint64("seed")
			seed = &v
		}
		return doMatch(ctx.Bool("verbose"),
			ctx.String("input"), ctx.String("output"), ctx.String("metrics"),
			seed, ctx.Bool("multi"))
	},
}

var sampleCmd = &cli.Command{
	Name:    "sample",
	Usage:   "Write a sample instance file",
	Aliases: []string{"s"},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "output",
			Required: true,
			Usage:    "specify the output instance file",
		},
	},
	Action: func(ctx *cli.Context) error {
		return doSample(ctx.String("output"))
	},
}

var verifyCmd = &cli.Command{
	Name:    "verify",
	Usage:   "Check a report against its instance",
	Aliases: []string{"v"},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "input",
			Required: true,
			Usage:    "specify the instance the report was made from",
		},
		&cli.StringFlag{
			Name:     "report",
			Required: true,
			Usage:    "specify the report.json to check",
		},
		&cli.BoolFlag{
			Name:     "multi",
			Required: false,
			Usage:    "the report was made allowing more than one slot per applicant",
		},
	},
	Action: func(ctx *cli.Context) error {
		return doVerify(ctx.Bool("verbose"), ctx.String("input"), ctx.String("report"), ctx.Bool("multi"))
	},
}
