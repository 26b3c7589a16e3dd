package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	Globs    []string // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	TakesFiles bool     // accepts file arguments
	FileGlobs  []string // globs for file arguments (e.g., "*.tex")
}

// sourceGlobs match the files convert accepts as arguments.
var sourceGlobs = []string{"*.tex", "*.sty", "*.dtx"}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Completion kinds come from the annotations set in flags.go.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if values := f.Annotations[annotationValues]; len(values) > 0 {
			fd.Type = flagEnum
			fd.Values = values
		} else if globs := f.Annotations[annotationFiles]; len(globs) > 0 {
			fd.Type = flagFile
			fd.Globs = globs
		} else if _, ok := f.Annotations[annotationDirs]; ok {
			fd.Type = flagDir
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Convert flags are extracted from the actual FlagSet.
func getCommands() []commandDef {
	return []commandDef{
		{
			Name:       "convert",
			Desc:       "Build the examples document of LaTeX sources",
			Flags:      extractFlagsFromFlagSet(newConvertFlagSet(&convertFlags{})),
			TakesFiles: true,
			FileGlobs:  sourceGlobs,
		},
		{
			Name:  "doctor",
			Desc:  "Check the LaTeX toolchain and environment",
			Flags: []flagDef{{Long: "json", Type: flagBool, Desc: "output JSON"}},
		},
		{
			Name:  "init",
			Desc:  "Write a starter config file",
			Flags: []flagDef{{Long: "force", Type: flagBool, Desc: "overwrite an existing file"}},
		},
		{Name: "completion", Desc: "Generate shell completion script"},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	bw := bufio.NewWriter(w)
	switch shell {
	case ShellBash:
		generateBash(bw, getCommands())
	case ShellZsh:
		generateZsh(bw, getCommands())
	case ShellFish:
		generateFish(bw, getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
	return bw.Flush()
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// commandNames lists command names in registry order.
func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

// flagWords lists "--long" and "-s" forms of every flag.
func flagWords(flags []flagDef) []string {
	var words []string
	for _, f := range flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	return words
}

func generateBash(w io.Writer, cmds []commandDef) {
	fmt.Fprintln(w, "# bash completion for examples2pdf")
	fmt.Fprintln(w, "_examples2pdf() {")
	fmt.Fprintln(w, "    local cur prev cmd")
	fmt.Fprintln(w, "    cur=\"${COMP_WORDS[COMP_CWORD]}\"")
	fmt.Fprintln(w, "    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"")
	fmt.Fprintln(w, "    cmd=\"convert\"")
	fmt.Fprintln(w, "    local w")
	fmt.Fprintln(w, "    for w in \"${COMP_WORDS[@]:1:COMP_CWORD-1}\"; do")
	fmt.Fprintf(w, "        case \"$w\" in %s) cmd=\"$w\"; break;; esac\n", strings.Join(commandNames(cmds), "|"))
	fmt.Fprintln(w, "    done")
	fmt.Fprintln(w)

	convert := cmds[0]
	fmt.Fprintln(w, "    if [[ \"$cmd\" == \"convert\" ]]; then")
	fmt.Fprintln(w, "        case \"$prev\" in")
	for _, f := range convert.Flags {
		opts := "--" + f.Long
		if f.Short != "" {
			opts += "|-" + f.Short
		}
		switch f.Type {
		case flagEnum:
			fmt.Fprintf(w, "            %s) COMPREPLY=($(compgen -W \"%s\" -- \"$cur\")); return;;\n", opts, strings.Join(f.Values, " "))
		case flagDir:
			fmt.Fprintf(w, "            %s) COMPREPLY=($(compgen -d -- \"$cur\")); return;;\n", opts)
		case flagFile:
			fmt.Fprintf(w, "            %s) _filedir '@(%s)'; return;;\n", opts, bashExtensions(f.Globs))
		case flagString, flagInt:
			fmt.Fprintf(w, "            %s) return;;\n", opts)
		}
	}
	fmt.Fprintln(w, "        esac")
	fmt.Fprintln(w, "    fi")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "    case \"$cmd\" in")
	for _, c := range cmds {
		fmt.Fprintf(w, "        %s)\n", c.Name)
		switch {
		case c.Name == "help":
			fmt.Fprintf(w, "            COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"));;\n", strings.Join(commandNames(cmds), " "))
		case c.Name == "completion":
			fmt.Fprintln(w, "            COMPREPLY=($(compgen -W \"bash zsh fish\" -- \"$cur\"));;")
		case c.TakesFiles:
			fmt.Fprintln(w, "            if [[ \"$cur\" == -* ]]; then")
			fmt.Fprintf(w, "                COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(flagWords(c.Flags), " "))
			fmt.Fprintln(w, "            else")
			fmt.Fprintf(w, "                _filedir '@(%s)'\n", bashExtensions(c.FileGlobs))
			fmt.Fprintln(w, "            fi;;")
		default:
			fmt.Fprintf(w, "            COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"));;\n", strings.Join(flagWords(c.Flags), " "))
		}
	}
	fmt.Fprintln(w, "    esac")
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w, "complete -F _examples2pdf examples2pdf")
}

// bashExtensions turns ["*.tex", "*.sty"] into "tex|sty" for _filedir.
func bashExtensions(globs []string) string {
	exts := make([]string, len(globs))
	for i, g := range globs {
		exts[i] = strings.TrimPrefix(g, "*.")
	}
	return strings.Join(exts, "|")
}

func generateZsh(w io.Writer, cmds []commandDef) {
	fmt.Fprintln(w, "#compdef examples2pdf")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "_examples2pdf() {")
	fmt.Fprintln(w, "    local -a commands")
	fmt.Fprintln(w, "    commands=(")
	for _, c := range cmds {
		fmt.Fprintf(w, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	fmt.Fprintln(w, "    )")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    if (( CURRENT == 2 )) && [[ \"${words[2]}\" != -* ]]; then")
	fmt.Fprintln(w, "        _describe 'command' commands")
	fmt.Fprintf(w, "        _files -g '%s'\n", zshGlob(cmds[0].FileGlobs))
	fmt.Fprintln(w, "        return")
	fmt.Fprintln(w, "    fi")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    local cmd=\"${words[2]}\"")
	fmt.Fprintf(w, "    case \"$cmd\" in %s) shift words; (( CURRENT-- ));; *) cmd=convert;; esac\n",
		strings.Join(commandNames(cmds), "|"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    case \"$cmd\" in")
	for _, c := range cmds {
		fmt.Fprintf(w, "        %s)\n", c.Name)
		switch c.Name {
		case "help":
			fmt.Fprintln(w, "            _describe 'command' commands;;")
			continue
		case "completion":
			fmt.Fprintln(w, "            _values 'shell' bash zsh fish;;")
			continue
		}
		fmt.Fprintln(w, "            _arguments \\")
		for _, f := range c.Flags {
			fmt.Fprintf(w, "                %s \\\n", zshSpec(f))
		}
		if c.TakesFiles {
			fmt.Fprintf(w, "                '*:source:_files -g \"%s\"'\n", zshGlob(c.FileGlobs))
		} else {
			fmt.Fprintln(w, "                && return")
		}
		fmt.Fprintln(w, "            ;;")
	}
	fmt.Fprintln(w, "    esac")
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "_examples2pdf \"$@\"")
}

// zshSpec returns the _arguments spec of f.
func zshSpec(f flagDef) string {
	var action string
	switch f.Type {
	case flagBool:
		action = ""
	case flagEnum:
		action = ":" + f.Long + ":(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		action = ":" + f.Long + `:_files -g "` + zshGlob(f.Globs) + `"`
	case flagDir:
		action = ":" + f.Long + ":_files -/"
	default:
		action = ":" + f.Long + ":"
	}
	desc := "[" + zshEscape(f.Desc) + "]"
	if f.Short == "" {
		return "'--" + f.Long + desc + action + "'"
	}
	return "'(-" + f.Short + " --" + f.Long + ")'{-" + f.Short + ",--" + f.Long + "}'" + desc + action + "'"
}

// zshGlob turns ["*.tex", "*.sty"] into "*.(tex|sty)".
func zshGlob(globs []string) string {
	return "*.(" + bashExtensions(globs) + ")"
}

// zshEscape makes s safe inside single quotes and [] descriptions.
func zshEscape(s string) string {
	r := strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`)
	return r.Replace(s)
}

func generateFish(w io.Writer, cmds []commandDef) {
	names := strings.Join(commandNames(cmds), " ")
	fmt.Fprintln(w, "# fish completion for examples2pdf")
	fmt.Fprintln(w, "complete -c examples2pdf -f")
	for _, c := range cmds {
		fmt.Fprintf(w, "complete -c examples2pdf -n \"not __fish_seen_subcommand_from %s\" -a %s -d '%s'\n",
			names, c.Name, fishEscape(c.Desc))
	}
	fmt.Fprintf(w, "complete -c examples2pdf -n \"__fish_seen_subcommand_from help\" -a \"%s\"\n", names)
	fmt.Fprintln(w, "complete -c examples2pdf -n \"__fish_seen_subcommand_from completion\" -a \"bash zsh fish\"")

	convert := cmds[0]
	// convert is the default command, so its flags apply before any command too.
	cond := fmt.Sprintf("not __fish_seen_subcommand_from %s; or __fish_seen_subcommand_from convert",
		strings.Join(commandNames(cmds[1:]), " "))
	for _, g := range convert.FileGlobs {
		fmt.Fprintf(w, "complete -c examples2pdf -n \"%s\" -k -a \"(__fish_complete_suffix %s)\"\n",
			cond, strings.TrimPrefix(g, "*"))
	}
	for _, c := range cmds {
		if len(c.Flags) == 0 {
			continue
		}
		n := cond
		if c.Name != convert.Name {
			n = "__fish_seen_subcommand_from " + c.Name
		}
		for _, f := range c.Flags {
			fmt.Fprintf(w, "complete -c examples2pdf -n \"%s\" %s\n", n, fishSpec(f))
		}
	}
}

// fishSpec returns the complete options of f.
func fishSpec(f flagDef) string {
	spec := "-l " + f.Long
	if f.Short != "" {
		spec += " -s " + f.Short
	}
	switch f.Type {
	case flagEnum:
		spec += " -x -a \"" + strings.Join(f.Values, " ") + "\""
	case flagFile:
		spec += " -r -F"
	case flagDir:
		spec += " -x -a \"(__fish_complete_directories)\""
	case flagString, flagInt:
		spec += " -x"
	}
	return spec + " -d '" + fishEscape(f.Desc) + "'"
}

func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: examples2pdf completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(examples2pdf completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(examples2pdf completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    examples2pdf completion fish > ~/.config/fish/completions/examples2pdf.fish")
}
