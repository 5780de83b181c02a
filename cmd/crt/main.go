package main

import (
	"flag"
	"log"
	"os"
	"runtime"
	"strings"

	"phosphor/internal/logger"
	"phosphor/internal/util"
	"phosphor/pkg/config"
	"phosphor/pkg/engine"
)

const sampleText = `PHOSPHOR
A little CRT text toy.

Arrow keys bend and zoom the tube, -/= and [/] shape the text,
,/. and ;/' dial noise and scanlines, B/V the vignette.
C cycles colors, P cycles presets, R resets, F12 grabs a frame.`

func init() {
	// GLFW requires the main loop to stay on the main thread
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	text := flag.String("text", "", "Text to display")
	textFile := flag.String("textfile", "", "File containing the text to display")
	preset := flag.String("preset", "", "Effect preset to start with")
	presetDir := flag.String("presets", "", "Directory with user preset files")
	screenshot := flag.String("screenshot", "", "Render one frame to this PNG and exit (headless)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFile := flag.String("log-file", "", "Also write the log to this file")
	flag.Parse()

	var lg *logger.Logger
	if *logFile != "" {
		var err error
		lg, err = logger.NewMultiLogger(*logLevel, *logFile)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		defer lg.Close()
	} else {
		lg = logger.NewLogger(*logLevel)
	}
	lg.Info("Starting phosphor...")

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		lg.Warn("%v", err)
	}

	content := sampleText
	switch {
	case *text != "":
		content = *text
	case *textFile != "":
		if !util.FileExists(*textFile) {
			log.Fatalf("Text file %s does not exist", *textFile)
		}
		data, err := os.ReadFile(*textFile)
		if err != nil {
			log.Fatalf("Failed to read text file: %v", err)
		}
		content = strings.TrimRight(string(data), "\n")
	}

	// Headless one-shot render
	if *screenshot != "" {
		if *preset != "" {
			catalog := config.NewPresetCatalog()
			if *presetDir != "" {
				if err := catalog.LoadDir(*presetDir); err != nil {
					lg.Warn("%v", err)
				}
			}
			p, err := catalog.Get(*preset)
			if err != nil {
				log.Fatalf("%v", err)
			}
			cfg.Effects = p.Effects
		}
		if err := engine.RenderToFile(cfg, content, *screenshot); err != nil {
			log.Fatalf("Render failed: %v", err)
		}
		lg.Info("Wrote %s", *screenshot)
		return
	}

	app, err := engine.NewEngine(cfg, lg, content)
	if err != nil {
		log.Fatalf("Failed to initialize engine: %v", err)
	}

	if *presetDir != "" {
		if err := app.Presets().LoadDir(*presetDir); err != nil {
			lg.Warn("%v", err)
		}
	}
	if *preset != "" {
		if err := app.ApplyPreset(*preset); err != nil {
			lg.Warn("%v", err)
		}
	}

	lg.Info("Engine initialized, entering render loop...")
	app.Run()
}
