// Command transportcatalogue reads one JSON request document from stdin
// and writes the corresponding array of stat-request responses to
// stdout. Grounded on the teacher's main.go: flag-driven log level,
// logrus throughout, fatal on a malformed invocation.
package main

import (
	"flag"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/l0rsy/cpp-transport-catalogue/internal/config"
	"github.com/l0rsy/cpp-transport-catalogue/internal/document"
	"github.com/l0rsy/cpp-transport-catalogue/internal/logging"
)

var (
	logLevel   = flag.String("log-level", "info", "log level [debug, info, warn, error, fatal, panic]")
	configPath = flag.String("config", "", "optional YAML file of default render/routing settings")
)

func main() {
	flag.Parse()
	if err := logging.Configure(*logLevel); err != nil {
		logrus.Fatal(err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("load config: %s", err)
	}

	body, err := io.ReadAll(os.Stdin)
	if err != nil {
		logrus.Fatalf("read stdin: %s", err)
	}

	logrus.Debug("processing request document")
	out, err := document.Process(body, cfg.Defaults())
	if err != nil {
		logrus.Errorf("process document: %s", err)
		os.Exit(1)
	}

	if _, err := os.Stdout.Write(out); err != nil {
		logrus.Fatalf("write stdout: %s", err)
	}
	logrus.Debug("done")
}
