package commands

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/profilebeacon/beacon-go/pkg/discovery"
)

func advertiseCmd() *cobra.Command {
	var instance string
	cmd := &cobra.Command{
		Use:   "advertise",
		Short: "Advertise the local profile over mDNS until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLocal(); err != nil {
				return err
			}
			if instance == "" {
				instance = cfg.InstanceName
			}

			adv, err := discovery.NewMDNSAdvertiser(advertiserConfig())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			info := &discovery.ProfileInfo{
				InstanceName: instance,
				PayloadHex:   cfg.LocalProfile,
				DisplayName:  cfg.DisplayName,
				Port:         uint16(cfg.Port),
			}
			if err := adv.AdvertiseProfile(ctx, info); err != nil {
				return err
			}
			defer adv.StopAll()

			fmt.Fprintf(cmd.OutOrStdout(), "Advertising %s as %s (Ctrl-C to stop)\n", info.PayloadHex, info.InstanceName)
			<-ctx.Done()
			logger.Info("advertisement stopped", "instance", info.InstanceName)
			return nil
		},
	}
	cmd.Flags().StringVar(&instance, "instance", "", "mDNS instance name (default generated)")
	return cmd
}

func advertiserConfig() discovery.AdvertiserConfig {
	c := discovery.DefaultAdvertiserConfig()
	c.Interface = cfg.Interface
	c.TTL = cfg.TTLDuration()
	return c
}

func browserConfig() discovery.BrowserConfig {
	c := discovery.DefaultBrowserConfig()
	c.Interface = cfg.Interface
	c.BrowseTimeout = cfg.BrowseTimeoutDuration()
	return c
}
