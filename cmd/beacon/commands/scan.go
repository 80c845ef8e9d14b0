package commands

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/profilebeacon/beacon-go/pkg/discovery"
	"github.com/profilebeacon/beacon-go/pkg/service"
)

func scanCmd() *cobra.Command {
	var (
		duration time.Duration
		passive  bool
	)
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Advertise the local profile and score peer advertisements",
		Long: "Advertise the local profile and score every peer advertisement seen,\n" +
			"until interrupted or --duration elapses. A table of the latest result\n" +
			"per peer is printed on exit.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLocal(); err != nil {
				return err
			}

			protocol, err := openProtocolLogger()
			if err != nil {
				return err
			}
			defer protocol.Close()

			browser, err := discovery.NewMDNSBrowser(browserConfig())
			if err != nil {
				return err
			}

			scfg := service.ScannerConfig{
				LocalProfile:   cfg.LocalProfile,
				InstanceName:   cfg.InstanceName,
				DisplayName:    cfg.DisplayName,
				Port:           uint16(cfg.Port),
				Browser:        browser,
				ProtocolLogger: protocol,
				Logger:         logger,
			}
			if !passive {
				adv, err := discovery.NewMDNSAdvertiser(advertiserConfig())
				if err != nil {
					return err
				}
				scfg.Advertiser = adv
			}

			svc, err := service.NewScannerService(scfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}

			return RunScan(ctx, svc, cmd.OutOrStdout())
		},
	}
	cmd.Flags().DurationVar(&duration, "duration", 0, "stop after this long (default until interrupted)")
	cmd.Flags().BoolVar(&passive, "passive", false, "browse only, do not advertise")
	return cmd
}

// RunScan runs svc until ctx is done, printing each result as it arrives and
// a summary table at the end.
func RunScan(ctx context.Context, svc *service.ScannerService, w io.Writer) error {
	svc.OnResult(func(ev service.ResultEvent) {
		printResultEvent(w, ev)
	})

	fmt.Fprintf(w, "Scanning as %s\n\n", svc.InstanceName())
	if err := svc.Start(ctx); err != nil {
		return err
	}
	logger.Info("scan started", "session", svc.SessionID())

	<-ctx.Done()
	if err := svc.Stop(); err != nil {
		logger.Warn("scanner stop failed", "error", err)
	}

	printResultTable(w, svc.Results())
	return nil
}

func printResultEvent(w io.Writer, ev service.ResultEvent) {
	name := ev.Service.InstanceName
	if ev.Service.DisplayName != "" {
		name = fmt.Sprintf("%s (%s)", ev.Service.DisplayName, name)
	}
	if ev.Err != nil {
		fmt.Fprintf(w, "%s: rejected: %v\n\n", name, ev.Err)
		return
	}
	fmt.Fprintf(w, "%s:\n%s\n\n", name, ev.Result.Summary())
}

func printResultTable(w io.Writer, results []*service.Result) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No peers scored.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PEER\tNAME\tSCORE\tPAYLOAD")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Peer, r.DisplayName, r.Score, r.PayloadHex)
	}
	tw.Flush()
}
