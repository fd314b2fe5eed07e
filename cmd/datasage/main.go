// DataSage - conversational assistant for exploratory data analysis
// License: MIT
//
// Copyright (c) 2026 DataSage contributors

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rpaludo/datasage/pkg/agent"
	"github.com/rpaludo/datasage/pkg/analyzer"
	"github.com/rpaludo/datasage/pkg/config"
	"github.com/rpaludo/datasage/pkg/logger"
)

var (
	version   = "dev"
	gitCommit string
	buildTime string
	goVersion string
)

const appName = "datasage"

// formatVersion returns the version string with optional git commit
func formatVersion() string {
	v := version
	if gitCommit != "" {
		v += fmt.Sprintf(" (git: %s)", gitCommit)
	}
	return v
}

// formatBuildInfo returns build time and go version info
func formatBuildInfo() (build string, goVer string) {
	if buildTime != "" {
		build = buildTime
	}
	goVer = goVersion
	if goVer == "" {
		goVer = runtime.Version()
	}
	return
}

func printVersion() {
	fmt.Printf("%s %s\n", appName, formatVersion())
	build, goVer := formatBuildInfo()
	if build != "" {
		fmt.Printf("  Build: %s\n", build)
	}
	if goVer != "" {
		fmt.Printf("  Go: %s\n", goVer)
	}
}

func main() {
	if err := executeCLI(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func onboard() {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Config already exists at %s\n", configPath)
		fmt.Print("Overwrite? (y/n): ")
		reader := bufio.NewReader(os.Stdin)
		response, readErr := reader.ReadString('\n')
		if readErr != nil {
			fmt.Printf("Error reading input: %v\n", readErr)
			fmt.Println("Aborted.")
			return
		}
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			fmt.Println("Aborted.")
			return
		}
	}

	cfg := config.DefaultConfig()
	if err := config.SaveConfig(configPath, cfg); err != nil {
		fmt.Printf("Error saving config: %v\n", err)
		os.Exit(1)
	}

	workspace := cfg.WorkspacePath()
	if err := os.MkdirAll(filepath.Join(workspace, "state"), 0755); err != nil {
		fmt.Printf("Error creating workspace: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s is ready!\n", appName)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Start your analysis service and point analyzer.endpoint at it in", configPath)
	fmt.Println("  2. Chat: datasage chat -m \"Existe correlação entre as variáveis?\"")
	fmt.Println("  3. Check readiness: datasage status")
}

func chatCmd(message string, debug bool) {
	if debug {
		logger.SetLevel(logger.DEBUG)
		fmt.Println("Debug mode enabled")
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	client := analyzer.NewHTTPClient(cfg.Analyzer.Endpoint, cfg.AnalyzerTimeout(), analyzer.Options{
		CorrelationThreshold: cfg.Analyzer.CorrelationThreshold,
		MaxClusters:          cfg.Analyzer.MaxClusters,
		OutlierContamination: cfg.Analyzer.OutlierContamination,
	})

	orch, err := agent.New(cfg, client)
	if err != nil {
		fmt.Printf("Error initializing session: %v\n", err)
		os.Exit(1)
	}
	defer orch.Close()

	if message != "" {
		ctx := context.Background()
		response, err := orch.Process(ctx, message)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\n%s\n", response)
		return
	}

	fmt.Printf("%s Interactive mode (Ctrl+C to exit)\n", appName)
	fmt.Println("Comandos: /memoria /conclusoes /limpar /ajuda")
	fmt.Println()
	interactiveMode(orch)
}

func interactiveMode(orch *agent.Orchestrator) {
	prompt := fmt.Sprintf("%s> ", appName)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     filepath.Join(os.TempDir(), ".datasage_history"),
		HistoryLimit:    100,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})

	if err != nil {
		fmt.Printf("Error initializing readline: %v\n", err)
		fmt.Println("Falling back to simple input mode...")
		simpleInteractiveMode(orch)
		return
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt || err == io.EOF {
				fmt.Println("\nAté logo!")
				return
			}
			fmt.Printf("Error reading input: %v\n", err)
			continue
		}

		if done := handleChatLine(orch, line); done {
			return
		}
	}
}

func simpleInteractiveMode(orch *agent.Orchestrator) {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("%s> ", appName)
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				fmt.Println("\nAté logo!")
				return
			}
			fmt.Printf("Error reading input: %v\n", err)
			continue
		}

		if done := handleChatLine(orch, line); done {
			return
		}
	}
}

// handleChatLine processes one REPL line. Returns true when the session
// should end.
func handleChatLine(orch *agent.Orchestrator, line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	if input == "exit" || input == "quit" || input == "sair" {
		fmt.Println("Até logo!")
		return true
	}

	response, err := orch.Process(context.Background(), input)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return false
	}

	fmt.Printf("\n%s\n\n", response)
	return false
}

func statusCmd() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return
	}

	configPath := getConfigPath()

	fmt.Printf("%s Status\n", appName)
	fmt.Printf("Version: %s\n", formatVersion())
	build, _ := formatBuildInfo()
	if build != "" {
		fmt.Printf("Build: %s\n", build)
	}
	fmt.Println()

	if _, err := os.Stat(configPath); err == nil {
		fmt.Println("Config:", configPath, "✓")
	} else {
		fmt.Println("Config:", configPath, "✗")
	}

	workspace := cfg.WorkspacePath()
	if _, err := os.Stat(workspace); err == nil {
		fmt.Println("Workspace:", workspace, "✓")
	} else {
		fmt.Println("Workspace:", workspace, "✗")
	}

	if dbPath := cfg.ArchiveDBPath(); dbPath != "" {
		if _, err := os.Stat(dbPath); err == nil {
			fmt.Println("Archive DB:", dbPath, "✓")
		} else {
			fmt.Println("Archive DB:", dbPath, "not initialized")
		}
	} else {
		fmt.Println("Archive DB: disabled")
	}

	endpointReady := strings.TrimSpace(cfg.Analyzer.Endpoint) != ""
	status := func(ok bool) string {
		if ok {
			return "✓"
		}
		return "not set"
	}
	fmt.Println("Analyzer endpoint:", status(endpointReady))
	if endpointReady {
		fmt.Printf("  %s\n", cfg.Analyzer.Endpoint)
	}
	fmt.Println("Chat ready:", status(endpointReady))
}

func getConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".datasage", "config.json")
}

func loadConfig() (*config.Config, error) {
	return config.LoadConfig(getConfigPath())
}
