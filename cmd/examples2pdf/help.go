package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: examples2pdf [command] [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert      Build the examples document of LaTeX package sources (default)")
	fmt.Fprintln(w, "  doctor       Check the LaTeX toolchain and environment")
	fmt.Fprintln(w, "  init         Write a starter examples2pdf.yaml")
	fmt.Fprintln(w, "  completion   Generate shell completion script")
	fmt.Fprintln(w, "  version      Show version information")
	fmt.Fprintln(w, "  help         Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'examples2pdf help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: examples2pdf [convert] [source.tex...] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Extract the commented documentation of LaTeX package sources into an")
	fmt.Fprintln(w, "examples document and compile it.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  source    LaTeX package source (default: input.file, then tikzircuit.tex)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: next to the source)")
	fmt.Fprintln(w, "  -f, --format <s>          Output format: latex, markdown, html")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --close-dangling      Close an example left open at end of file")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom template and style directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --title <s>           Title (default: Components and Examples of <stem>)")
	fmt.Fprintln(w, "      --author <s>          Author")
	fmt.Fprintln(w, "      --date <s>            Date: \"today\", \"auto\", \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w, "      --intro <name>        Fragment input after the TOC (\"\" = none)")
	fmt.Fprintln(w, "      --no-toc              Disable table of contents")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Toolchain:")
	fmt.Fprintln(w, "      --compiler <s>        rubber (default), latexmk, pdflatex, none")
	fmt.Fprintln(w, "  -t, --timeout <d>         Timeout per toolchain step (default: 5m)")
	fmt.Fprintln(w, "      --strict              Fail when the toolchain is missing or fails")
	fmt.Fprintln(w, "      --no-clean            Keep auxiliary files")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  EXAMPLES2PDF_CONFIG, EXAMPLES2PDF_INPUT, EXAMPLES2PDF_OUTPUT_DIR,")
	fmt.Fprintln(w, "  EXAMPLES2PDF_COMPILER, EXAMPLES2PDF_FORMAT, EXAMPLES2PDF_TIMEOUT,")
	fmt.Fprintln(w, "  EXAMPLES2PDF_WORKERS override the config file; flags override both.")
}

// runHelp prints help for a specific command and returns an exit code.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: examples2pdf doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check the LaTeX toolchains and the environment.")
	case "init":
		printInitUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: examples2pdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: examples2pdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
