/*
 * Copyright (c) 2025 by the symbolrender authors.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Command symbolrender renders a pre-computed symbol geometry file to
// SVG, PNG or PDF. It owns all configuration and environment wiring;
// the render core only ever sees a geometry, options and a sink.
package main

import (
	"flag"
	"fmt"
	"os"

	"symbolrender/internal/config"
	"symbolrender/internal/log"
	"symbolrender/internal/render"
	"symbolrender/internal/symbol"
	"symbolrender/internal/version"
)

func main() {
	var (
		inPath     = flag.String("in", "", "symbol geometry YAML file (required)")
		outPath    = flag.String("out", "", "output file (required)")
		format     = flag.String("format", "svg", "output format: svg, png or pdf")
		scale      = flag.Float64("scale", 0, "magnification factor (overrides config)")
		margin     = flag.Int("margin", -1, "margin in output units (overrides config)")
		ink        = flag.String("ink", "", "foreground color RRGGBB (overrides config)")
		paper      = flag.String("paper", "", "background color RRGGBB (overrides config)")
		fontFile   = flag.String("font-file", "", "TTF/OTF font for PNG text labels (overrides config)")
		configPath = flag.String("config", "", "config file path (default: user scope)")
		saveConfig = flag.Bool("save-config", false, "persist the effective configuration to the user config file")
		showVer    = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVer {
		fmt.Println(version.String())
		return
	}

	var cfg config.AppConfig
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log.Init(log.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	})
	logger := log.WithComponent("cli")

	for _, key := range []string{
		"render.magnification", "render.margin", "render.ink", "render.paper", "render.font_file",
		"logging.level", "logging.format", "logging.source", "logging.file",
	} {
		if env, ok := config.EnvOverrideFor(key); ok {
			logger.Debug("config field overridden from environment", "key", key, "env", env)
		}
	}

	// Flag overrides on top of config and env.
	if *scale > 0 {
		cfg.Render.Magnification = *scale
	}
	if *margin >= 0 {
		cfg.Render.Margin = *margin
	}
	if *ink != "" {
		cfg.Render.Ink = *ink
	}
	if *paper != "" {
		cfg.Render.Paper = *paper
	}
	if *fontFile != "" {
		cfg.Render.FontFile = *fontFile
	}

	if *saveConfig {
		if err := config.Save(cfg); err != nil {
			logger.Error("save config failed", "err", err)
			os.Exit(1)
		}
		logger.Info("config saved")
		if *inPath == "" && *outPath == "" {
			return
		}
	}

	if *inPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "both -in and -out are required")
		flag.Usage()
		os.Exit(2)
	}

	logger = log.WithOperation(logger, "render")
	if err := run(*inPath, *outPath, *format, cfg.Render); err != nil {
		logger.Error("render failed", "err", err)
		os.Exit(1)
	}
	logger.Info("rendered", "in", *inPath, "out", *outPath, "format", *format)
}

func run(inPath, outPath, format string, rc config.RenderConfig) error {
	inkCol, err := symbol.ParseColor(rc.Ink)
	if err != nil {
		return fmt.Errorf("ink: %w", err)
	}
	paperCol, err := symbol.ParseColor(rc.Paper)
	if err != nil {
		return fmt.Errorf("paper: %w", err)
	}
	opts := render.Options{
		Magnification: rc.Magnification,
		Ink:           inkCol,
		Paper:         paperCol,
		Margin:        rc.Margin,
	}

	var r render.Renderer
	switch format {
	case "svg":
		r = render.NewSVG(opts)
	case "png":
		p := render.NewPNG(opts)
		p.FontFile = rc.FontFile
		r = p
	case "pdf":
		r = render.NewPDF(opts)
	default:
		return fmt.Errorf("unknown format %q (want svg, png or pdf)", format)
	}

	sym, err := symbol.LoadFile(inPath)
	if err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	rerr := r.Render(f, sym)
	if cerr := f.Close(); rerr == nil && cerr != nil {
		rerr = fmt.Errorf("close output: %w", cerr)
	}
	if rerr != nil {
		return rerr
	}
	return nil
}
