package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/profilebeacon/beacon-go/pkg/describe"
	"github.com/profilebeacon/beacon-go/pkg/profile"
)

func describeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <hex>",
		Short: "Print the appearance statements of a payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunDescribe(args[0], cmd.OutOrStdout())
		},
	}
}

func bitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bits <hex>",
		Short: "Print the bit sequence of a payload, most significant bit first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunBits(args[0], cmd.OutOrStdout())
		},
	}
}

// RunDescribe decodes payloadHex and prints one statement per line.
func RunDescribe(payloadHex string, w io.Writer) error {
	p, err := profile.HexToBytes(payloadHex)
	if err != nil {
		return err
	}
	d := describe.DescribePayload(p)
	if d.Empty() {
		fmt.Fprintln(w, "(no appearance data)")
		return nil
	}
	fmt.Fprintln(w, d.String())
	return nil
}

// RunBits decodes payloadHex and prints its bits grouped per byte.
func RunBits(payloadHex string, w io.Writer) error {
	p, err := profile.HexToBytes(payloadHex)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, groupBits(p.Bits().String()))
	return nil
}

func groupBits(s string) string {
	var groups []string
	for len(s) > profile.BitsPerByte {
		groups = append(groups, s[:profile.BitsPerByte])
		s = s[profile.BitsPerByte:]
	}
	groups = append(groups, s)
	return strings.Join(groups, " ")
}
