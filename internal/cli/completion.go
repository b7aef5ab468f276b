package cli

import (
	"fmt"
)

// CompletionCmd generates shell completions
type CompletionCmd struct {
	Shell string `arg:"" enum:"bash,zsh,fish" help:"Shell type (bash, zsh, fish)"`
}

// Run executes the completion command
func (c *CompletionCmd) Run(globals *Globals) error {
	switch c.Shell {
	case "bash":
		return c.generateBash(globals)
	case "zsh":
		return c.generateZsh(globals)
	case "fish":
		return c.generateFish(globals)
	default:
		return fmt.Errorf("unsupported shell: %s", c.Shell)
	}
}

func (c *CompletionCmd) generateBash(globals *Globals) error {
	script := `# hfx bash completion script
# Add to ~/.bashrc or ~/.bash_profile:
#   eval "$(hfx completion bash)"

_hfx_completions() {
    local cur prev words cword
    _init_completion || return

    local commands="export splits pick stats check config doctor version completion"
    local global_flags="-f --format -q --quiet -v --verbose"

    case "${prev}" in
        hfx)
            COMPREPLY=($(compgen -W "${commands}" -- "${cur}"))
            return
            ;;
        -f|--format)
            COMPREPLY=($(compgen -W "ndjson text" -- "${cur}"))
            return
            ;;
        --corpus-format)
            COMPREPLY=($(compgen -W "jsonl nullsep" -- "${cur}"))
            return
            ;;
        -o|--output)
            _filedir
            return
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "${cur}"))
            return
            ;;
        config)
            COMPREPLY=($(compgen -W "show path generate" -- "${cur}"))
            return
            ;;
    esac

    case "${words[1]}" in
        export)
            COMPREPLY=($(compgen -W "-d --dataset -c --config -s --split --field -o --output --corpus-format --progress -n --limit --page-size --dry-run-json ${global_flags}" -- "${cur}"))
            ;;
        splits|pick)
            COMPREPLY=($(compgen -W "-d --dataset ${global_flags}" -- "${cur}"))
            ;;
        stats|check)
            if [[ "${cur}" == -* ]]; then
                COMPREPLY=($(compgen -W "--corpus-format --field ${global_flags}" -- "${cur}"))
            else
                _filedir
            fi
            ;;
        *)
            COMPREPLY=($(compgen -W "${commands} ${global_flags}" -- "${cur}"))
            ;;
    esac
}

complete -F _hfx_completions hfx
`
	_, err := fmt.Fprint(globals.Stdout, script)
	return err
}

func (c *CompletionCmd) generateZsh(globals *Globals) error {
	script := `#compdef hfx
# hfx zsh completion script
# Add to ~/.zshrc:
#   eval "$(hfx completion zsh)"

_hfx() {
    local -a commands
    commands=(
        'export:Export a dataset split to a local corpus file'
        'splits:List configs and splits available for a dataset'
        'pick:Interactively pick a split to export'
        'stats:Summarize a previously exported corpus file'
        'check:Validate the structure of an exported corpus file'
        'config:Show or manage configuration'
        'doctor:Check endpoint reachability and local setup'
        'version:Show version information'
        'completion:Generate shell completions'
    )

    local -a global_opts
    global_opts=(
        '-f[Output format]:format:(ndjson text)'
        '--format[Output format]:format:(ndjson text)'
        '-q[Suppress informational output]'
        '--quiet[Suppress informational output]'
        '-v[Show debug output]'
        '--verbose[Show debug output]'
    )

    _arguments -C \
        $global_opts \
        '1: :->command' \
        '*:: :->args'

    case $state in
        command)
            _describe 'command' commands
            ;;
        args)
            case $words[1] in
                export)
                    _arguments \
                        '-d[Dataset name]:dataset:' \
                        '--dataset[Dataset name]:dataset:' \
                        '-c[Dataset configuration]:config:' \
                        '--config[Dataset configuration]:config:' \
                        '-s[Split to export]:split:' \
                        '--split[Split to export]:split:' \
                        '--field[Record field to extract]:field:' \
                        '-o[Output file path]:output:_files' \
                        '--output[Output file path]:output:_files' \
                        '--corpus-format[Corpus file format]:format:(jsonl nullsep)' \
                        '--progress[Progress report interval]:interval:' \
                        '-n[Record limit]:limit:' \
                        '--limit[Record limit]:limit:' \
                        '--page-size[Rows fetched per request]:size:' \
                        '--dry-run-json[Print the resolved export plan]' \
                        $global_opts
                    ;;
                splits|pick)
                    _arguments \
                        '-d[Dataset name]:dataset:' \
                        '--dataset[Dataset name]:dataset:' \
                        $global_opts
                    ;;
                stats|check)
                    _arguments \
                        '--corpus-format[Corpus file format]:format:(jsonl nullsep)' \
                        '--field[Document field]:field:' \
                        '1:file:_files' \
                        $global_opts
                    ;;
                config)
                    _arguments '1:subcommand:(show path generate)'
                    ;;
                completion)
                    _arguments '1:shell:(bash zsh fish)'
                    ;;
            esac
            ;;
    esac
}

compdef _hfx hfx
`
	_, err := fmt.Fprint(globals.Stdout, script)
	return err
}

func (c *CompletionCmd) generateFish(globals *Globals) error {
	script := `# hfx fish completion script
# Add to ~/.config/fish/completions/hfx.fish

# Disable file completion by default
complete -c hfx -f

# Commands
complete -c hfx -n "__fish_use_subcommand" -a "export" -d "Export a dataset split to a local corpus file"
complete -c hfx -n "__fish_use_subcommand" -a "splits" -d "List configs and splits available for a dataset"
complete -c hfx -n "__fish_use_subcommand" -a "pick" -d "Interactively pick a split to export"
complete -c hfx -n "__fish_use_subcommand" -a "stats" -d "Summarize a previously exported corpus file"
complete -c hfx -n "__fish_use_subcommand" -a "check" -d "Validate the structure of an exported corpus file"
complete -c hfx -n "__fish_use_subcommand" -a "config" -d "Show or manage configuration"
complete -c hfx -n "__fish_use_subcommand" -a "doctor" -d "Check endpoint reachability and local setup"
complete -c hfx -n "__fish_use_subcommand" -a "version" -d "Show version information"
complete -c hfx -n "__fish_use_subcommand" -a "completion" -d "Generate shell completions"

# Global flags
complete -c hfx -s f -l format -d "Output format" -xa "ndjson text"
complete -c hfx -s q -l quiet -d "Suppress informational output"
complete -c hfx -s v -l verbose -d "Show debug output"

# Export command
complete -c hfx -n "__fish_seen_subcommand_from export" -s d -l dataset -d "Dataset name"
complete -c hfx -n "__fish_seen_subcommand_from export" -s c -l config -d "Dataset configuration"
complete -c hfx -n "__fish_seen_subcommand_from export" -s s -l split -d "Split to export"
complete -c hfx -n "__fish_seen_subcommand_from export" -l field -d "Record field to extract"
complete -c hfx -n "__fish_seen_subcommand_from export" -s o -l output -d "Output file path" -r
complete -c hfx -n "__fish_seen_subcommand_from export" -l corpus-format -d "Corpus file format" -xa "jsonl nullsep"
complete -c hfx -n "__fish_seen_subcommand_from export" -l progress -d "Progress report interval"
complete -c hfx -n "__fish_seen_subcommand_from export" -s n -l limit -d "Record limit"
complete -c hfx -n "__fish_seen_subcommand_from export" -l page-size -d "Rows fetched per request"
complete -c hfx -n "__fish_seen_subcommand_from export" -l dry-run-json -d "Print the resolved export plan"

# Splits and pick commands
complete -c hfx -n "__fish_seen_subcommand_from splits pick" -s d -l dataset -d "Dataset name"

# Stats and check commands
complete -c hfx -n "__fish_seen_subcommand_from stats check" -l corpus-format -d "Corpus file format" -xa "jsonl nullsep"
complete -c hfx -n "__fish_seen_subcommand_from stats check" -l field -d "Document field"
complete -c hfx -n "__fish_seen_subcommand_from stats check" -F

# Config command
complete -c hfx -n "__fish_seen_subcommand_from config" -a "show path generate"

# Completion command
complete -c hfx -n "__fish_seen_subcommand_from completion" -a "bash zsh fish"
`
	_, err := fmt.Fprint(globals.Stdout, script)
	return err
}
