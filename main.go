package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/andareed/siftly-changepoints/changepoints"
	"github.com/andareed/siftly-changepoints/config"
	"github.com/andareed/siftly-changepoints/logging"
	"github.com/andareed/siftly-changepoints/perfapi"
	tea "github.com/charmbracelet/bubbletea"
)

var logFile = flag.String("debug", "", "Write Debug Logs to file")

func main() {
	versionFlag := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", config.GetEnv("CONFIG", ""), "YAML config file")
	projectFlag := flag.String("project", "", "performance project id, e.g. sys-perf")
	restorePath := flag.String("restore", "", "session file written with `w`")

	flag.Parse()

	// --- EARLY EXIT ---
	if *versionFlag {
		fmt.Println("Version:", Version)
		os.Exit(0)
	}

	cleanup, err := logging.SetupLogging(*logFile)
	if err != nil {
		log.Fatalf("Failed to setup logging %v", err)
	}
	defer cleanup()

	logging.Infof("siftly-changepoints %s: Started", Version)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fail(err)
	}
	if *projectFlag != "" {
		cfg.Project = *projectFlag
	}

	opts := changepoints.Options{PageSize: cfg.PageSize}
	if *restorePath != "" {
		sess, err := LoadSession(*restorePath)
		if err != nil {
			fail(fmt.Errorf("restore %q: %w", *restorePath, err))
		}
		if cfg.Project == "" {
			cfg.Project = sess.Project
		}
		if sess.Project != cfg.Project {
			logging.Warnf("session was saved for %q, opening it against %q", sess.Project, cfg.Project)
		}
		opts.Filters = &sess.Filters
		opts.Page = sess.Page
	}
	opts.Project = cfg.Project

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Usage: sfcp [--debug debug.log] [--config cfg.yaml] [--restore session.json] --project <id>")
		fail(err)
	}

	client := perfapi.New(cfg.Client(logging.IsDebugMode()))
	ctrl := changepoints.New(client, opts)
	m := newModel(ctrl, cfg)

	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		logging.Errorf("Tea program error: %v", err)
		fmt.Println("Error:", err)
	}
}

// loadConfig applies the file at path, if any, over the defaults, then the
// environment over both.
func loadConfig(path string) (*config.Config, error) {
	var r io.Reader
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()
		r = f
	}
	cfg, err := config.Default().WithReader(r).Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func fail(err error) {
	logging.Errorf("%v", err)
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, e := range joined.Unwrap() {
			fmt.Fprintln(os.Stderr, "error:", e)
		}
	} else {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	os.Exit(1)
}
