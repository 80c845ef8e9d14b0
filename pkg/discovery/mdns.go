package discovery

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/enbility/zeroconf/v3"
)

// MDNSAdvertiser implements the Advertiser interface using zeroconf.
type MDNSAdvertiser struct {
	config AdvertiserConfig

	mu      sync.Mutex
	servers map[string]*zeroconf.Server // keyed by instance name
}

// NewMDNSAdvertiser creates a new mDNS advertiser.
func NewMDNSAdvertiser(config AdvertiserConfig) (*MDNSAdvertiser, error) {
	return &MDNSAdvertiser{
		config:  config,
		servers: make(map[string]*zeroconf.Server),
	}, nil
}

// getInterfaces returns the network interfaces to use for advertising.
// Returns nil to use all interfaces.
func (a *MDNSAdvertiser) getInterfaces() []net.Interface {
	return selectInterfaces(a.config.Interface)
}

// AdvertiseProfile starts advertising a profile.
func (a *MDNSAdvertiser) AdvertiseProfile(ctx context.Context, info *ProfileInfo) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	instanceName, port, err := prepareProfileInfo(info)
	if err != nil {
		return err
	}

	if server, exists := a.servers[instanceName]; exists {
		server.Shutdown()
		delete(a.servers, instanceName)
	}

	txtStrings := TXTRecordsToStrings(EncodeProfileTXT(info))

	var opts []zeroconf.ServerOption
	if a.config.TTL > 0 {
		opts = append(opts, zeroconf.TTL(uint32(a.config.TTL.Seconds())))
	}

	server, err := zeroconf.Register(
		instanceName,
		ServiceTypeProfile,
		Domain,
		port,
		txtStrings,
		a.getInterfaces(),
		opts...,
	)
	if err != nil {
		return fmt.Errorf("failed to register profile service: %w", err)
	}

	a.servers[instanceName] = server
	return nil
}

// UpdateProfile updates TXT records for a running advertisement.
func (a *MDNSAdvertiser) UpdateProfile(instanceName string, info *ProfileInfo) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	server, exists := a.servers[instanceName]
	if !exists {
		return ErrNotFound
	}
	if len(info.PayloadHex) > 2*MaxPayloadBytes {
		return ErrPayloadTooLarge
	}

	server.SetText(TXTRecordsToStrings(EncodeProfileTXT(info)))
	return nil
}

// StopProfile stops advertising one profile.
func (a *MDNSAdvertiser) StopProfile(instanceName string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	server, exists := a.servers[instanceName]
	if !exists {
		return ErrNotFound
	}

	server.Shutdown()
	delete(a.servers, instanceName)
	return nil
}

// StopAll stops all advertisements.
func (a *MDNSAdvertiser) StopAll() {
	a.mu.Lock()
	defer a.mu.Unlock()

	for name, server := range a.servers {
		server.Shutdown()
		delete(a.servers, name)
	}
}

// MDNSBrowser implements the Browser interface using zeroconf.
type MDNSBrowser struct {
	config BrowserConfig

	mu      sync.Mutex
	stopped bool
	cancels []context.CancelFunc
}

// NewMDNSBrowser creates a new mDNS browser.
func NewMDNSBrowser(config BrowserConfig) (*MDNSBrowser, error) {
	return &MDNSBrowser{
		config: config,
	}, nil
}

// BrowseProfiles searches for peer advertisements.
// Services are aggregated by instance name; addresses from multiple
// interfaces are combined into a single entry.
func (b *MDNSBrowser) BrowseProfiles(ctx context.Context) (<-chan *ProfileService, error) {
	b.mu.Lock()
	if b.stopped {
		b.mu.Unlock()
		return nil, fmt.Errorf("browser stopped")
	}
	ctx, cancel := context.WithCancel(ctx)
	b.cancels = append(b.cancels, cancel)
	b.mu.Unlock()

	out := make(chan *ProfileService)
	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)

	go func() {
		defer close(out)
		agg := newProfileAggregator()
		gone := (<-chan *zeroconf.ServiceEntry)(removed)

		for {
			select {
			case entry, ok := <-entries:
				if !ok {
					return
				}
				svc := b.entryToProfile(entry)
				if svc == nil {
					continue
				}
				if emit := agg.add(svc); emit != nil {
					select {
					case out <- emit:
					case <-ctx.Done():
						return
					}
				}

			case entry, ok := <-gone:
				if !ok {
					gone = nil
					continue
				}
				agg.remove(entry.Instance, entryAddresses(entry))

			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		_ = zeroconf.Browse(ctx, ServiceTypeProfile, Domain, entries, removed, b.browserOptions()...)
	}()

	return out, nil
}

// Stop stops all active browsing operations.
func (b *MDNSBrowser) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopped = true
	for _, cancel := range b.cancels {
		cancel()
	}
	b.cancels = nil
}

// browserOptions returns zeroconf client options based on config.
func (b *MDNSBrowser) browserOptions() []zeroconf.ClientOption {
	var opts []zeroconf.ClientOption
	if ifaces := selectInterfaces(b.config.Interface); ifaces != nil {
		opts = append(opts, zeroconf.SelectIfaces(ifaces))
	}
	return opts
}

// entryToProfile converts a zeroconf entry to ProfileService.
// Entries with unusable TXT records are dropped.
func (b *MDNSBrowser) entryToProfile(entry *zeroconf.ServiceEntry) *ProfileService {
	e := ServiceEntry{
		Instance: entry.Instance,
		Host:     entry.HostName,
		Port:     uint16(entry.Port),
		Text:     entry.Text,
		Addrs:    entryAddresses(entry),
	}
	svc, err := e.ToProfileService()
	if err != nil {
		return nil
	}
	return svc
}

func entryAddresses(entry *zeroconf.ServiceEntry) []string {
	addrs := make([]string, 0, len(entry.AddrIPv4)+len(entry.AddrIPv6))
	for _, ip := range entry.AddrIPv4 {
		addrs = append(addrs, ip.String())
	}
	for _, ip := range entry.AddrIPv6 {
		addrs = append(addrs, ip.String())
	}
	return addrs
}

func selectInterfaces(name string) []net.Interface {
	if name == "" {
		return nil
	}
	iface, err := net.InterfaceByName(name)
	if err != nil {
		return nil
	}
	return []net.Interface{*iface}
}

// Ensure MDNSAdvertiser implements Advertiser interface.
var _ Advertiser = (*MDNSAdvertiser)(nil)

// Ensure MDNSBrowser implements Browser interface.
var _ Browser = (*MDNSBrowser)(nil)
