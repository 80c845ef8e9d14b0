package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/profilebeacon/beacon-go/pkg/service"
)

func shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive prompt for match, describe and bits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newEvaluator()
			if err != nil {
				return err
			}

			rl, err := readline.NewEx(&readline.Config{
				Prompt:          "beacon> ",
				InterruptPrompt: "^C",
				EOFPrompt:       "exit",
			})
			if err != nil {
				return fmt.Errorf("failed to create readline: %w", err)
			}
			defer rl.Close()

			sh := NewShell(svc, rl.Stdout())
			sh.printHelp()
			for {
				line, err := rl.Readline()
				if err != nil {
					if errors.Is(err, readline.ErrInterrupt) {
						continue
					}
					fmt.Fprintln(rl.Stdout(), "Exiting...")
					return nil
				}
				if sh.Exec(line) {
					return nil
				}
			}
		},
	}
}

// Shell interprets interactive commands against a scanner.
type Shell struct {
	svc *service.ScannerService
	out io.Writer
}

// NewShell returns a shell writing to out.
func NewShell(svc *service.ScannerService, out io.Writer) *Shell {
	return &Shell{svc: svc, out: out}
}

// Exec runs one input line. It reports true when the shell should exit.
func (s *Shell) Exec(line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()

	case "match", "m":
		if len(args) == 0 {
			fmt.Fprintln(s.out, "Usage: match <hex>...")
			return false
		}
		if err := RunMatch(s.svc, args, MatchOptions{}, s.out); err != nil {
			printErr(s.out, err)
		}

	case "describe", "d":
		if len(args) != 1 {
			fmt.Fprintln(s.out, "Usage: describe <hex>")
			return false
		}
		if err := RunDescribe(args[0], s.out); err != nil {
			printErr(s.out, err)
		}

	case "bits", "b":
		if len(args) != 1 {
			fmt.Fprintln(s.out, "Usage: bits <hex>")
			return false
		}
		if err := RunBits(args[0], s.out); err != nil {
			printErr(s.out, err)
		}

	case "local", "l":
		s.cmdLocal(args)

	case "quit", "exit", "q":
		fmt.Fprintln(s.out, "Exiting...")
		return true

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (s *Shell) cmdLocal(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(s.out, "Local profile: %s\n", s.svc.LocalProfile().Hex())
		return
	}

	svc, err := service.NewScannerService(service.ScannerConfig{
		LocalProfile: args[0],
		Logger:       logger,
	})
	if err != nil {
		printErr(s.out, err)
		return
	}
	s.svc = svc
	fmt.Fprintf(s.out, "Local profile set to %s\n", svc.LocalProfile().Hex())
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
Beacon Shell Commands:
  match <hex>...  - Score payloads against the local profile
  describe <hex>  - Print appearance statements
  bits <hex>      - Print the bit sequence
  local [hex]     - Show or replace the local profile
  help            - Show this help
  exit            - Leave the shell`)
}
