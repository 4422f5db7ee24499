package cmd

import (
	"flag"
	"fmt"
	"os"
)

// Config holds the CLI configuration parsed from arguments.
type Config struct {
	ConfigPath string // Path to the YAML config file
	Port       int    // HTTP API port override, 0 keeps the configured port
	Headful    bool   // Run the widget browser visibly, for debugging
}

// ParseArgs parses command line arguments and returns a Config.
func ParseArgs() (*Config, error) {
	config := &Config{}

	flag.StringVar(&config.ConfigPath, "c", "", "Path to config file")
	flag.StringVar(&config.ConfigPath, "config", "", "Path to config file")
	flag.IntVar(&config.Port, "port", 0, "HTTP API port (overrides config)")
	flag.BoolVar(&config.Headful, "headful", false, "Run the widget browser visibly")

	flag.Usage = printUsage
	flag.Parse()

	if config.Port < 0 || config.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", config.Port)
	}

	return config, nil
}

// printUsage prints the usage information.
func printUsage() {
	fmt.Println("\nUsage:")
	fmt.Println("  refuge-player [-c <config>] [-port <port>]")
	fmt.Println("\nFlags:")
	fmt.Println("  -c, -config    Path to YAML config file")
	fmt.Println("  -port          HTTP API port (overrides config)")
	fmt.Println("  -headful       Run the widget browser visibly")
	fmt.Println("\nExamples:")
	fmt.Println("  refuge-player")
	fmt.Println("  refuge-player -c /etc/refuge-player.yaml -port 8180")
	fmt.Println()
}

// PrintUsageAndExit prints usage and exits with code 1.
func PrintUsageAndExit() {
	printUsage()
	os.Exit(1)
}
