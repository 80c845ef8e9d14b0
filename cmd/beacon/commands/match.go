package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/profilebeacon/beacon-go/pkg/discovery"
	"github.com/profilebeacon/beacon-go/pkg/match"
	"github.com/profilebeacon/beacon-go/pkg/service"
)

// MatchOptions controls the match command output.
type MatchOptions struct {
	// ServiceData treats each input as a platform service-data rendering,
	// e.g. "{0000fe9a-...=(0x) AB:CD}".
	ServiceData bool

	// Detail lists every window comparison.
	Detail bool
}

func matchCmd() *cobra.Command {
	var opts MatchOptions
	cmd := &cobra.Command{
		Use:   "match <remote-hex>...",
		Short: "Score remote payloads against the local profile",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newEvaluator()
			if err != nil {
				return err
			}
			return RunMatch(svc, args, opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&opts.ServiceData, "service-data", false, "inputs are service-data strings")
	cmd.Flags().BoolVar(&opts.Detail, "detail", false, "list every window comparison")
	return cmd
}

// RunMatch evaluates each input and prints its summary. Rejected inputs are
// reported inline; the returned error counts them.
func RunMatch(svc *service.ScannerService, inputs []string, opts MatchOptions, w io.Writer) error {
	rejected := 0
	for i, input := range inputs {
		if i > 0 {
			fmt.Fprintln(w)
		}

		payloadHex := input
		if opts.ServiceData {
			var err error
			payloadHex, err = discovery.ExtractPayloadHex(input)
			if err != nil {
				printErr(w, err)
				rejected++
				continue
			}
		}

		result, err := svc.Evaluate(payloadHex)
		if err != nil {
			printErr(w, fmt.Errorf("%s: %w", payloadHex, err))
			rejected++
			continue
		}
		fmt.Fprintln(w, result.Summary())

		if opts.Detail {
			detail, err := match.ComputeMatchDetail(svc.LocalProfile(), result.Payload)
			if err == nil {
				formatDetail(w, detail)
			}
		}
	}

	if rejected > 0 {
		return fmt.Errorf("%d of %d payloads rejected", rejected, len(inputs))
	}
	return nil
}

func formatDetail(w io.Writer, d match.Detail) {
	fmt.Fprintf(w, "Comparisons (%d):\n", len(d.Comparisons))
	for _, c := range d.Comparisons {
		mark := " "
		if c.Matched {
			mark = "x"
		}
		fmt.Fprintf(w, "  [%s] local byte %d bit %d ~ remote bit %d\n", mark, c.LocalIndex, c.Position, c.RemotePosition)
	}
}
