package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/Eshwarvijay007/nomadly/internal/config"
	"github.com/Eshwarvijay007/nomadly/internal/intake"
	"github.com/Eshwarvijay007/nomadly/internal/mcp"
	"github.com/Eshwarvijay007/nomadly/internal/metadata"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
)

// setupLogging configures logging based on the run mode.
func setupLogging(cfg *config.Config) {
	if cfg.IsStdioMode() {
		// In stdio mode, redirect log output to stderr to avoid interfering
		// with the MCP protocol.
		log.SetOutput(os.Stderr)
		if !cfg.IsDebug() {
			log.SetOutput(os.NewFile(0, os.DevNull))
		}
	} else {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
}

// cliResult is the JSON document printed in one-shot CLI mode.
type cliResult struct {
	Outcome  intake.ParseOutcome `json:"outcome"`
	Metadata *metadata.Result    `json:"metadata,omitempty"`
}

// runCLIMode parses a single file and prints the outcome plus inferred
// metadata as JSON. Parse failures are still a successful program run; the
// failure is part of the printed outcome.
func runCLIMode(ctx context.Context, cfg *config.Config, svc *intake.Service) error {
	file, err := intake.LoadSourceFile(cfg.FilePath)
	if err != nil {
		return err
	}

	result := cliResult{Outcome: svc.Parse(ctx, file)}
	if result.Outcome.Succeeded() {
		inferred := metadata.ExtractFromContent(result.Outcome.Content)
		result.Metadata = &inferred
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// runStdioMode serves the intake pipeline over MCP stdio. The parent
// process controls the lifecycle.
func runStdioMode(ctx context.Context, server *mcp.Server) {
	if err := server.Run(ctx); err != nil {
		if os.Getenv("DEBUG") != "" {
			log.Printf("Server error: %v", err)
		}
		os.Exit(1)
	}
}

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	if version != "dev" {
		cfg.Version = version
	}

	svc := intake.NewService(intake.ServiceConfig{
		MaxFileSize: cfg.MaxFileSize,
		Registry: intake.RegistryConfig{
			OCRBinary: cfg.OCRBinary,
			OCRLang:   cfg.OCRLang,
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.IsCLIMode() {
		// Let an interrupt cancel a long-running extraction.
		signalCh := make(chan os.Signal, 1)
		signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-signalCh
			cancel()
		}()

		if err := runCLIMode(ctx, cfg, svc); err != nil {
			log.Fatalf("Failed to parse %s: %v", cfg.FilePath, err)
		}
		return
	}

	server, err := mcp.NewServer(cfg, svc)
	if err != nil {
		log.Fatalf("Failed to create MCP server: %v", err)
	}

	runStdioMode(ctx, server)
}

// printVersion prints version information.
func printVersion() {
	fmt.Printf("Nomadly Intake\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
