package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/profilebeacon/beacon-go/pkg/describe"
	"github.com/profilebeacon/beacon-go/pkg/profile"
)

// BuildOptions are the inputs of the build command.
type BuildOptions struct {
	Base       string
	Appearance AppearanceFlags
	Set        []int
	Clear      []int
}

// AppearanceFlags overrides attribute bits of the base payload. Nil fields
// keep the value the base already carries.
type AppearanceFlags struct {
	CategoryA *bool
	Taller    *bool
	Older     *bool
	HairTrait *bool
	Glasses   *bool
}

func (f AppearanceFlags) apply(a profile.Appearance) profile.Appearance {
	override := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	override(&a.CategoryA, f.CategoryA)
	override(&a.Taller, f.Taller)
	override(&a.Older, f.Older)
	override(&a.HairTrait, f.HairTrait)
	override(&a.Glasses, f.Glasses)
	return a
}

func buildCmd() *cobra.Command {
	var (
		opts  BuildOptions
		flags profile.Appearance
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compose a payload from appearance flags",
		Long: "Compose a payload starting from --base. Attribute bits the base already\n" +
			"carries are kept unless the matching flag is given, so --glasses=false\n" +
			"clears the glasses bit of an existing payload.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			changed := func(name string, v *bool) *bool {
				if cmd.Flags().Changed(name) {
					return v
				}
				return nil
			}
			opts.Appearance = AppearanceFlags{
				CategoryA: changed("category-a", &flags.CategoryA),
				Taller:    changed("taller", &flags.Taller),
				Older:     changed("older", &flags.Older),
				HairTrait: changed("hair", &flags.HairTrait),
				Glasses:   changed("glasses", &flags.Glasses),
			}
			return RunBuild(opts, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.Base, "base", "0000", "starting payload as hex")
	f.BoolVar(&flags.CategoryA, "category-a", false, "set the category bit")
	f.BoolVar(&flags.Taller, "taller", false, "set the height bit")
	f.BoolVar(&flags.Older, "older", false, "set the age bit")
	f.BoolVar(&flags.HairTrait, "hair", false, "set the hair bit")
	f.BoolVar(&flags.Glasses, "glasses", false, "set the glasses bit")
	f.IntSliceVar(&opts.Set, "set", nil, "bit offsets to set (most significant bit of byte 0 is offset 0)")
	f.IntSliceVar(&opts.Clear, "clear", nil, "bit offsets to clear")
	return cmd
}

// RunBuild prints the composed payload as hex. The payload is always at
// least long enough to hold every attribute bit.
func RunBuild(opts BuildOptions, w io.Writer) error {
	base, err := profile.HexToBytes(opts.Base)
	if err != nil {
		return fmt.Errorf("base: %w", err)
	}

	current, _ := describe.DecodeAppearance(profile.BytesToBits(base))
	b := profile.BuilderFrom(base).SetAppearance(opts.Appearance.apply(current))
	for _, off := range opts.Set {
		if off < 0 {
			return fmt.Errorf("invalid offset %d", off)
		}
		b.Set(off, true)
	}
	for _, off := range opts.Clear {
		if off < 0 {
			return fmt.Errorf("invalid offset %d", off)
		}
		b.Set(off, false)
	}

	fmt.Fprintln(w, b.Hex())
	return nil
}
