package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: readmehelp <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert README files to HTML")
	fmt.Fprintln(w, "  css        Print the stylesheet of standalone pages")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'readmehelp help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: readmehelp convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert README files to HTML help pages.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    .md or .markdown file, README, or directory to scan")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>        Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>        Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>          Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --standalone           Wrap output in a full HTML page")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Modules:")
	fmt.Fprintln(w, "  -m, --module <name>        Module of the documents (default: parent directory")
	fmt.Fprintln(w, "                             name when it is a configured module)")
	fmt.Fprintln(w, "      --module-dir <n=dir>   Module source directory (repeatable)")
	fmt.Fprintln(w, "      --module-url <n=url>   Module public base URL (repeatable)")
	fmt.Fprintln(w, "      --max-file-size <n>    Max snippet source size in bytes")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <name>         Highlight style (default: github)")
	fmt.Fprintln(w, "      --asset-path <dir>     Directory overriding styles/ and templates/")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                Only show errors")
	fmt.Fprintln(w, "  -v, --verbose              Show debug logs and timing")
	fmt.Fprintln(w)
	printEnvUsage(w)
}

// printCSSUsage prints usage for the css command.
func printCSSUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: readmehelp css [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the base stylesheet followed by the highlight style.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>        Config file name or path")
	fmt.Fprintln(w, "      --style <name>         Highlight style (default: github)")
	fmt.Fprintln(w, "      --asset-path <dir>     Directory overriding styles/")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: readmehelp config [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the effective configuration as YAML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>        Config file name or path")
}

// printEnvUsage lists the environment variables read by the CLI.
func printEnvUsage(w io.Writer) {
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  READMEHELP_CONFIG          Config file name or path")
	fmt.Fprintln(w, "  READMEHELP_STYLE           Highlight style")
	fmt.Fprintln(w, "  READMEHELP_OUTPUT_DIR      Default output directory")
	fmt.Fprintln(w, "  READMEHELP_ASSET_PATH      Asset override directory")
	fmt.Fprintln(w, "  READMEHELP_STANDALONE      Wrap output in a page (true/false)")
	fmt.Fprintln(w, "  READMEHELP_WORKERS         Parallel workers")
	fmt.Fprintln(w, "  READMEHELP_MAX_FILE_SIZE   Max snippet source size in bytes")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "css":
		printCSSUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: readmehelp version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: readmehelp help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
