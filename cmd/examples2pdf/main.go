package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// commands lists the recognized subcommands. Anything else is handed to
// convert, so `examples2pdf pkg.tex` works without naming the command.
var commands = map[string]bool{
	"convert":    true,
	"doctor":     true,
	"version":    true,
	"help":       true,
	"completion": true,
	"init":       true,
}

// splitCommand returns the command named by args[0] and the remaining
// arguments.
func splitCommand(args []string) (string, []string) {
	if len(args) == 0 {
		return "convert", nil
	}
	switch args[0] {
	case "-h", "--help":
		return "help", args[1:]
	case "--version":
		return "version", args[1:]
	}
	if commands[args[0]] {
		return args[0], args[1:]
	}
	return "convert", args
}

// runMain runs the CLI and returns the process exit code.
func runMain(args []string, env *Environment) int {
	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}
	cmd, rest := splitCommand(rest)

	switch cmd {
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "examples2pdf %s\n", Version)
		return ExitSuccess
	case "help":
		return runHelp(rest, env)
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	var err error
	switch cmd {
	case "completion":
		err = runCompletion(rest, env)
	case "init":
		err = runInit(rest, env)
	default:
		err = runConvertCmd(ctx, rest, env)
	}
	return report(env, err)
}

// report prints err with its hint and maps it to an exit code.
func report(env *Environment, err error) int {
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
	return exitCodeFor(err)
}

// hasVerboseFlag scans raw arguments before flag parsing.
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}
