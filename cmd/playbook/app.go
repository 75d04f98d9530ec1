package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/urfave/cli/v2"

	"github.com/Bahjat/design-playbook/internal/designinsight"
	"github.com/Bahjat/design-playbook/internal/model"
	"github.com/Bahjat/design-playbook/internal/platform/logger"
)

var errMissingURL = errors.New("a website URL is required")

// newApp builds the CLI. A nil fetcher selects the real HTTP client.
func newApp(stdout, stderr io.Writer, fetcher designinsight.Fetcher) *cli.App {
	return &cli.App{
		Name:      "playbook",
		Usage:     "turn a website into a design specification",
		Writer:    stdout,
		ErrWriter: stderr,
		Commands: []*cli.Command{
			{
				Name:      "analyze",
				Usage:     "fetch a page and write its design specification",
				ArgsUsage: "URL",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Value:   ".",
						Usage:   "directory the specification file is written to",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "print the full analysis as JSON instead of the overview",
					},
					&cli.BoolFlag{
						Name:    "quiet",
						Aliases: []string{"q"},
						Usage:   "no spinner, only errors are logged",
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Value: designinsight.DefaultFetchTimeout,
						Usage: "page fetch timeout",
					},
					&cli.StringFlag{
						Name:    "log-level",
						Value:   "INFO",
						EnvVars: []string{"LOG_LEVEL"},
						Usage:   "DEBUG, INFO, WARN or ERROR",
					},
				},
				Action: func(c *cli.Context) error {
					f := fetcher
					if f == nil {
						f = designinsight.NewHTTPClient(designinsight.WithTimeout(c.Duration("timeout")))
					}
					return analyzeAction(c, f)
				},
			},
		},
	}
}

func analyzeAction(c *cli.Context, fetcher designinsight.Fetcher) error {
	rawURL := c.Args().First()
	if strings.TrimSpace(rawURL) == "" {
		return errMissingURL
	}

	level := c.String("log-level")
	if c.Bool("quiet") {
		level = "ERROR"
	}
	log := logger.NewTerminal(c.App.ErrWriter, level)

	stop := startSpinner(c.App.ErrWriter, c.Bool("quiet") || c.Bool("json"))
	result, err := designinsight.NewEngine(fetcher).Analyze(context.Background(), rawURL)
	stop()
	if err != nil {
		return err
	}

	if result.Degraded() {
		log.Error("Error fetching website", "url", result.URL, "error", result.FetchError)
	}

	path, err := writeSpec(c.String("out"), result)
	if err != nil {
		return fmt.Errorf("write specification: %w", err)
	}
	log.Info("Analysis complete. Design specification ready.", "file", path)

	if c.Bool("json") {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	_, err = fmt.Fprintln(c.App.Writer, renderOverview(result, path))
	return err
}

// startSpinner shows progress on w until the returned func is called.
func startSpinner(w io.Writer, disabled bool) func() {
	if disabled {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " Analyzing website architecture..."
	s.Start()
	return s.Stop
}

// writeSpec stores the specification under dir. Path separators in the
// title would escape dir, so they are replaced as well.
func writeSpec(dir string, result *model.DesignAnalysis) (string, error) {
	name := strings.Map(func(r rune) rune {
		if r == '/' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, result.FileName)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(result.Specification), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
