package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/illarion/passworks/internal/core"
	"github.com/illarion/passworks/internal/crypto"
)

// Completion outputs shell completion scripts
func Completion(shell string) {
	r := strings.NewReplacer(
		"@STRATEGIES@", strings.Join(core.NewRegistry().Names(), " "),
		"@ALGORITHMS@", strings.Join(crypto.Algorithms(), " "),
	)

	switch shell {
	case "bash":
		fmt.Print(r.Replace(bashCompletion))
	case "zsh":
		fmt.Print(r.Replace(zshCompletion))
	case "fish":
		fmt.Print(r.Replace(fishCompletion))
	default:
		fmt.Fprintf(os.Stderr, "Unknown shell: %s\nSupported: bash, zsh, fish\n", shell)
		os.Exit(1)
	}
}

const bashCompletion = `_passworks() {
    local cur prev words cword
    _init_completion || return

    local commands="init hash verify set check rm ls inspect status compact help completion"
    local config_flags="--strategy --algorithm --iterations --key-length"

    if [[ $cword -eq 1 ]]; then
        COMPREPLY=($(compgen -W "$commands" -- "$cur"))
        return
    fi

    case "$prev" in
        --strategy)
            COMPREPLY=($(compgen -W "@STRATEGIES@" -- "$cur"))
            return
            ;;
        --algorithm)
            COMPREPLY=($(compgen -W "@ALGORITHMS@" -- "$cur"))
            return
            ;;
    esac

    local cmd="${words[1]}"
    case "$cmd" in
        init|verify|inspect|status)
            COMPREPLY=($(compgen -W "$config_flags" -- "$cur"))
            ;;
        hash)
            COMPREPLY=($(compgen -W "--raw $config_flags" -- "$cur"))
            ;;
        set)
            COMPREPLY=($(compgen -W "$config_flags" -- "$cur"))
            ;;
        check)
            if [[ "$cur" == -* ]]; then
                COMPREPLY=($(compgen -W "--rehash $config_flags" -- "$cur"))
            else
                local users
                users=$(passworks ls 2>/dev/null | awk '/^  / {print $1}')
                COMPREPLY=($(compgen -W "$users" -- "$cur"))
            fi
            ;;
        rm)
            local users
            users=$(passworks ls 2>/dev/null | awk '/^  / {print $1}')
            COMPREPLY=($(compgen -W "$users" -- "$cur"))
            ;;
        help)
            COMPREPLY=($(compgen -W "$commands" -- "$cur"))
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "$cur"))
            ;;
    esac
}

complete -F _passworks passworks
`

const zshCompletion = `#compdef passworks

_passworks() {
    local -a commands
    commands=(
        'init:Create a .passworks database in current directory'
        'hash:Hash a secret and print the record'
        'verify:Verify a secret against a record'
        'set:Hash a secret and store it for a user'
        'check:Verify a secret against a stored record'
        'rm:Remove stored records'
        'ls:List stored records'
        'inspect:Show the fields of a record'
        'status:Show configuration and database status'
        'compact:Compact database to reclaim disk space'
        'help:Show help for a command'
        'completion:Generate shell completions'
    )

    local -a config_flags
    config_flags=(
        '--strategy[Hashing strategy]:strategy:(@STRATEGIES@)'
        '--algorithm[Digest algorithm]:algorithm:(@ALGORITHMS@)'
        '--iterations[Iteration count]:iterations:'
        '--key-length[Key length in bytes]:length:'
    )

    _arguments -C \
        '1: :->command' \
        '*: :->args'

    case "$state" in
        command)
            _describe -t commands 'passworks commands' commands
            ;;
        args)
            case "${words[2]}" in
                init|verify|inspect|status|set)
                    _arguments $config_flags
                    ;;
                hash)
                    _arguments '--raw[Print only the hash]' $config_flags
                    ;;
                check)
                    _arguments '--rehash[Replace outdated records]' $config_flags '*:user:_passworks_users'
                    ;;
                rm)
                    _arguments '*:user:_passworks_users'
                    ;;
                help)
                    _describe -t commands 'passworks commands' commands
                    ;;
                completion)
                    _values 'shell' bash zsh fish
                    ;;
            esac
            ;;
    esac
}

_passworks_users() {
    local -a users
    users=(${(f)"$(passworks ls 2>/dev/null | awk '/^  / {print $1}')"})
    _describe -t users 'users' users
}

_passworks "$@"
`

const fishCompletion = `# passworks fish completions

set -l commands init hash verify set check rm ls inspect status compact help completion

complete -c passworks -f

# Commands
complete -c passworks -n "not __fish_seen_subcommand_from $commands" -a init -d 'Create a .passworks database'
complete -c passworks -n "not __fish_seen_subcommand_from $commands" -a hash -d 'Hash a secret'
complete -c passworks -n "not __fish_seen_subcommand_from $commands" -a verify -d 'Verify a secret against a record'
complete -c passworks -n "not __fish_seen_subcommand_from $commands" -a set -d 'Store a record for a user'
complete -c passworks -n "not __fish_seen_subcommand_from $commands" -a check -d 'Verify a stored record'
complete -c passworks -n "not __fish_seen_subcommand_from $commands" -a rm -d 'Remove stored records'
complete -c passworks -n "not __fish_seen_subcommand_from $commands" -a ls -d 'List stored records'
complete -c passworks -n "not __fish_seen_subcommand_from $commands" -a inspect -d 'Show record fields'
complete -c passworks -n "not __fish_seen_subcommand_from $commands" -a status -d 'Show status'
complete -c passworks -n "not __fish_seen_subcommand_from $commands" -a compact -d 'Compact database'
complete -c passworks -n "not __fish_seen_subcommand_from $commands" -a help -d 'Show help'
complete -c passworks -n "not __fish_seen_subcommand_from $commands" -a completion -d 'Generate completions'

# configuration flags
set -l configured init hash verify set check inspect status
complete -c passworks -n "__fish_seen_subcommand_from $configured" -l strategy -x -a "@STRATEGIES@" -d 'Hashing strategy'
complete -c passworks -n "__fish_seen_subcommand_from $configured" -l algorithm -x -a "@ALGORITHMS@" -d 'Digest algorithm'
complete -c passworks -n "__fish_seen_subcommand_from $configured" -l iterations -x -d 'Iteration count'
complete -c passworks -n "__fish_seen_subcommand_from $configured" -l key-length -x -d 'Key length in bytes'

complete -c passworks -n "__fish_seen_subcommand_from hash" -l raw -d 'Print only the hash'
complete -c passworks -n "__fish_seen_subcommand_from check" -l rehash -d 'Replace outdated records'

# stored users
complete -c passworks -n "__fish_seen_subcommand_from check rm" -a "(passworks ls 2>/dev/null | awk '/^  / {print \$1}')"

# help completions
complete -c passworks -n "__fish_seen_subcommand_from help" -a "$commands"

# completion completions
complete -c passworks -n "__fish_seen_subcommand_from completion" -a "bash zsh fish"
`
