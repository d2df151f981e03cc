package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/thermal-inspect-mcp/internal/config"
	"github.com/ironsheep/thermal-inspect-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("thermal-inspect-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("thermal-inspect-mcp - MCP server for thermal fault detection")
			fmt.Println()
			fmt.Println("Usage: thermal-inspect-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables (also read from ./.env):")
			fmt.Println("  THERMAL_MCP_LOG_LEVEL=debug       Enable debug logging")
			fmt.Println("  THERMAL_PARAMS='{\"key\": value}'   Detection parameter overrides")
			fmt.Println("  THERMAL_PARAMS_FILE=/path.json    Parameter overrides from a file")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if cfg.Debug {
		log.Printf("Thermal MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		if cfg.ParamsFile != "" {
			log.Printf("Parameter overrides loaded from %s", cfg.ParamsFile)
		}
	}

	server.Version = Version
	srv := server.New(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
