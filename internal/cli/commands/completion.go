package commands

import (
	"fmt"
	"os"
	"strings"
)

// Completion provides shell completion scripts for bash and zsh.
// Usage:
//
//	modkit completion           # prints completions for all supported shells
//	modkit completion bash      # prints bash completion
//	modkit completion zsh       # prints zsh completion
func Completion(args []string) error {
	shell := ""
	if len(args) > 0 {
		shell = strings.ToLower(args[0])
	}

	switch shell {
	case "bash":
		printBashCompletion()
		return nil
	case "zsh":
		printZshCompletion()
		return nil
	case "", "all":
		// Print both so Homebrew's generator can detect them
		printBashCompletion()
		fmt.Println()
		printZshCompletion()
		return nil
	default:
		fmt.Fprintf(os.Stderr, "unknown shell: %s (supported: bash, zsh)\n", shell)
		return fmt.Errorf("unsupported shell: %s", shell)
	}
}

func printBashCompletion() {
	// Simple bash completion that suggests top-level commands and flags
	fmt.Println(`# bash completion for modkit
_modkit_completions()
{
    local cur prev words cword
    _init_completion || return

    local -a commands
    commands=(
        pack run setup watch digest inspect doctor config completion help version
    )

    case ${COMP_CWORD} in
        1)
            COMPREPLY=( $(compgen -W "${commands[*]}" -- "$cur") )
            return ;;
        *)
            case ${COMP_WORDS[1]} in
                pack)
                    COMPREPLY=( $(compgen -W "--reload --release --root" -- "$cur") ) ;;
                digest)
                    COMPREPLY=( $(compgen -W "--files --archive --algorithm --root" -- "$cur") ) ;;
                watch)
                    COMPREPLY=( $(compgen -W "--debounce --root" -- "$cur") ) ;;
                doctor)
                    COMPREPLY=( $(compgen -W "--verbose --fix --root" -- "$cur") ) ;;
                config)
                    COMPREPLY=( $(compgen -W "show set unset" -- "$cur") ) ;;
                completion)
                    COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") ) ;;
                *)
                    COMPREPLY=( $(compgen -W "--root" -- "$cur") ) ;;
            esac
            return ;;
    esac
}
complete -F _modkit_completions modkit`)
}

func printZshCompletion() {
	fmt.Println(`#compdef modkit
_modkit() {
  local -a commands
  commands=(
    'pack:Build the module archive'
    'run:Launch the module in place'
    'setup:Run the module setup script'
    'watch:Rebuild the reload archive on source changes'
    'digest:Calculate and inspect module digests'
    'inspect:Show module manifest and packaging plan'
    'doctor:Environment health check'
    'config:Show or edit persisted preferences'
    'completion:Generate shell completion scripts'
    'version:Show version'
    'help:Show help'
  )

  _arguments \
    '1: :->cmds' \
    '*:: :->args'

  case $state in
    cmds)
      _describe 'command' commands
      ;;
    args)
      case $words[1] in
        completion)
          _values 'shell' bash zsh
          ;;
        pack)
          _values 'options' --reload --release --root
          ;;
        digest)
          _values 'options' --files --archive --algorithm --root
          ;;
        *)
          _message 'arguments'
          ;;
      esac
      ;;
  esac
}
_modkit "$@"`)
}
