package main

import (
	"fmt"
	"os"

	"github.com/gerunddev/lessonbridge/internal/commands"
	"github.com/gerunddev/lessonbridge/internal/config"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "import":
		commands.Import(os.Args[2:])
	case "segment":
		commands.Segment(os.Args[2:])
	case "analyze":
		commands.Analyze(os.Args[2:])
	case "validate":
		commands.Validate(os.Args[2:])
	case "review", "browse":
		commands.Review(os.Args[2:])
	case "watch":
		commands.Watch(os.Args[2:])
	case "history":
		commands.History()
	case "version", "-v", "--version":
		fmt.Printf("lessonbridge v%s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	usage := fmt.Sprintf(`lessonbridge - Turn weekly lesson documents into structured lesson JSON

Usage:
  lessonbridge <command> [options]

Commands:
  import      Split a markdown lesson into days and write lesson JSON
  segment     List the heading sections of a document
  analyze     Show block structure and suggested day splits
  validate    Check a lesson JSON file before publishing
  review      Browse the days of a lesson interactively
  watch       Re-import a document whenever it changes
  history     List past imports
  version     Show version information
  help        Show this help message

Options:
  --out DIR        Write lesson JSON to DIR instead of output_dir
  --dry-run        Preview an import without writing anything
  --by-weekday     Match sections to days by weekday name in the title
  --interval 30s   Polling interval for watch
  --json           Machine readable output for segment and analyze
  --verbose        Copy log entries to stderr for import and watch

Examples:
  lessonbridge import lesson-08.md
  lessonbridge import lesson-08.md --dry-run --by-weekday
  lessonbridge segment lesson-08.md --json
  lessonbridge analyze lesson-08.md
  lessonbridge validate ~/lessons/lesson-8-week-2025-05-23.json
  lessonbridge review lesson-08.md
  lessonbridge watch lesson-08.md --interval 10s --verbose
  lessonbridge history

Configuration:
  Config file: %s
  State file:  %s
  Environment: LESSONBRIDGE_* variables and a .env file override the config file

For more information, visit: https://github.com/gerunddev/lessonbridge
`, config.ConfigPath(), config.StateFilePath())
	fmt.Print(usage)
}
