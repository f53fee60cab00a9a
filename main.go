// ABOUTME: Entry point for the crmview CLI, TUI and MCP server
// ABOUTME: Loads config, opens the configured store and routes to a command
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/harperreed/crmview/cli"
	"github.com/harperreed/crmview/config"
	"github.com/harperreed/crmview/repository"
	"github.com/harperreed/crmview/store"
	"github.com/harperreed/crmview/tui"
)

type command func(app *cli.App, args []string) error

var crmCommands = map[string]command{
	"add-contact":     cli.AddContactCommand,
	"list-contacts":   cli.ListContactsCommand,
	"update-contact":  cli.UpdateContactCommand,
	"delete-contact":  cli.DeleteContactCommand,
	"show-contact":    cli.ShowContactCommand,
	"add-company":     cli.AddCompanyCommand,
	"list-companies":  cli.ListCompaniesCommand,
	"update-company":  cli.UpdateCompanyCommand,
	"delete-company":  cli.DeleteCompanyCommand,
	"add-deal":        cli.AddDealCommand,
	"list-deals":      cli.ListDealsCommand,
	"update-deal":     cli.UpdateDealCommand,
	"delete-deal":     cli.DeleteDealCommand,
	"add-task":        cli.AddTaskCommand,
	"complete-task":   cli.CompleteTaskCommand,
	"delete-task":     cli.DeleteTaskCommand,
	"log-activity":    cli.LogActivityCommand,
	"delete-activity": cli.DeleteActivityCommand,
	"add-quote":       cli.AddQuoteCommand,
	"update-quote":    cli.UpdateQuoteCommand,
	"delete-quote":    cli.DeleteQuoteCommand,
}

var viewCommands = map[string]command{
	"dashboard":  cli.ViewDashboardCommand,
	"pipeline":   cli.ViewPipelineCommand,
	"tasks":      cli.ViewTasksCommand,
	"activities": cli.ViewActivitiesCommand,
	"quotes":     cli.ViewQuotesCommand,
}

var graphCommands = map[string]command{
	"pipeline": cli.VizGraphPipelineCommand,
	"contacts": cli.VizGraphContactsCommand,
	"all":      cli.VizGraphAllCommand,
}

func main() {
	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	backend := flag.String("backend", "", "Store backend: sqlite, badger or memory")
	dbPath := flag.String("db-path", "", "Database path or badger directory")
	initOnly := flag.Bool("init", false, "Initialize the store and exit")

	// Parse global flags but don't fail on unknown (for subcommands)
	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("crmview version %s\n", cli.Version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 && !*initOnly {
		printUsage()
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config", "err", err)
	}
	if *backend != "" {
		cfg.Backend = *backend
		if err := cfg.Validate(); err != nil {
			log.Fatal("Invalid backend", "err", err)
		}
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
		cfg.BadgerDir = *dbPath
	}

	// Logs go to stderr so stdout stays free for command output and MCP.
	logger := cfg.Logger(os.Stderr)

	stores, err := store.Open(cfg.Backend, cfg.StorePath(), logger)
	if err != nil {
		logger.Fatal("Failed to open store", "backend", cfg.Backend, "err", err)
	}
	defer func() { _ = stores.Close() }()

	logger.Debug("Store opened", "backend", cfg.Backend, "path", cfg.StorePath())

	if *initOnly {
		logger.Info("Store initialized", "backend", cfg.Backend, "path", cfg.StorePath())
		if _, err := os.Stat(config.ConfigPath()); os.IsNotExist(err) {
			if err := cfg.Save(config.ConfigPath()); err != nil {
				logger.Fatal("Failed to write config", "path", config.ConfigPath(), "err", err)
			}
			logger.Info("Config written", "path", config.ConfigPath())
		}
		return
	}

	app := cli.NewApp(repository.NewSet(stores), cfg.Labels(), cfg.PageSize, logger)

	if err := dispatch(app, args); err != nil {
		_ = stores.Close()
		logger.Fatal("Command failed", "err", err)
	}
}

func dispatch(app *cli.App, args []string) error {
	command, rest := args[0], args[1:]

	switch command {
	case "mcp":
		return cli.MCPCommand(app)

	case "tui":
		model := tui.NewModel(tui.Options{
			Repos:    app.Repos,
			Labels:   app.Labels,
			Logger:   app.Logger,
			Now:      app.Now,
			PageSize: app.PageSize,
		})
		_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
		return err

	case "web":
		return cli.WebCommand(app, rest)

	case "crm":
		return route(app, "crm", crmCommands, rest)

	case "view":
		return route(app, "view", viewCommands, rest)

	case "viz":
		if len(rest) == 0 || rest[0] != "graph" {
			usageExit("viz requires the graph subcommand")
		}
		return route(app, "viz graph", graphCommands, rest[1:])

	default:
		usageExit("Unknown command: " + command)
	}
	return nil
}

func route(app *cli.App, group string, commands map[string]command, args []string) error {
	if len(args) == 0 {
		usageExit(group + " requires a subcommand")
	}
	cmd, ok := commands[args[0]]
	if !ok {
		usageExit(fmt.Sprintf("Unknown %s command: %s", group, args[0]))
	}
	return cmd(app, args[1:])
}

func usageExit(message string) {
	fmt.Printf("Error: %s\n\n", message)
	printUsage()
	os.Exit(1)
}

func printUsage() {
	fmt.Printf(`crmview v%s - CRM pipeline, task and activity views

USAGE:
  crmview [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --backend <name>       Store backend: sqlite, badger or memory (default: sqlite)
  --db-path <path>       Database file or badger directory
  --init                 Initialize the store (and a default config file) and exit

CONFIGURATION:
  Settings are read from .env, ~/.config/crmview/config.json and
  CRMVIEW_* environment variables, later sources winning.

COMMANDS:
  mcp                    Start MCP server on stdio
  tui                    Interactive terminal interface
  web [--port <n>]       Web UI (default: http://localhost:8080)
  crm                    Create, update and delete records
  view                   Dashboard, pipeline, task, activity and quote views
  viz                    GraphViz visualizations

CRM COMMANDS:
  crmview crm add-contact --name <name> [--email --phone --company --position --notes]
  crmview crm list-contacts [--query <text>] [--limit <n>]
  crmview crm update-contact [flags] <id>
  crmview crm delete-contact <id>
  crmview crm show-contact <id>      Contact with deals and activities

  crmview crm add-company --name <name> [--domain --industry --notes]
  crmview crm list-companies [--query <text>]
  crmview crm update-company [flags] <id>
  crmview crm delete-company <id>

  crmview crm add-deal --title <title> --contact <id> [--value <cents> --stage <stage> --probability <n> --close <date>]
  crmview crm list-deals [--stage <stage>] [--query <text>]
  crmview crm update-deal [flags] <id>
  crmview crm delete-deal <id>

  crmview crm add-task --title <title> --due <date> [--priority low|medium|high --contact <id> --description]
  crmview crm complete-task <id>     Toggle completion
  crmview crm delete-task <id>

  crmview crm log-activity --contact <id> --description <text> [--type call|email|meeting|note --deal <id> --date --duration --tags]
  crmview crm delete-activity <id>

  crmview crm add-quote --name <name> [--status --company --contact --deal --expires --bill-* --ship-* --ship-same]
  crmview crm update-quote [flags] <id>
  crmview crm delete-quote <id>

  Note: flags must come before the record ID

VIEW COMMANDS:
  crmview view dashboard
  crmview view pipeline [--search <text>]
  crmview view tasks [--search <text>] [--status all|pending|completed|overdue] [--priority all|low|medium|high]
  crmview view activities [--search <text>] [--type all|call|email|meeting|note] [--date all|today|yesterday|thisWeek|lastWeek]
  crmview view quotes [--search <text>] [--sort <field>] [--desc] [--page <n>] [--limit <n>]

VIZ COMMANDS:
  crmview viz graph pipeline [--output <file>]
  crmview viz graph contacts [--output <file>] [id]
  crmview viz graph all [--output <file>]

EXAMPLES:
  # Add a contact and open a deal
  crmview crm add-contact --name "John Smith" --email "john@acme.com" --company "Acme Corp"
  crmview crm add-deal --title "Enterprise License" --contact <id> --value 5000000

  # Overdue tasks
  crmview view tasks --status overdue

  # Render the pipeline with GraphViz
  crmview viz graph pipeline --output pipeline.dot

`, cli.Version)
}
