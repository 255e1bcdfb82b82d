package main

import (
	"flag"
	"fmt"
	"os"
)

var version = "dev"

// overrides carries the command-line switches that win over the
// corresponding config file settings.
type overrides struct {
	dbPath   string
	logLevel string
}

func main() {
	var (
		configPath  = flag.String("config", "config.toml", "Path to config file")
		showVersion = flag.Bool("version", false, "Print version and exit")
		ov          overrides
	)
	flag.StringVar(&ov.dbPath, "db", "", "SQLite database path (overrides config)")
	flag.StringVar(&ov.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("janitarrd %s\n", version)
		return
	}

	if err := runServer(*configPath, ov); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
