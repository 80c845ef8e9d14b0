package discovery

import (
	"context"
	"time"
)

// Browser provides mDNS profile browsing.
type Browser interface {
	// BrowseProfiles searches for peer advertisements. A service is sent
	// when first seen and again whenever its payload changes. The channel
	// is closed when the context is cancelled or Stop is called.
	BrowseProfiles(ctx context.Context) (<-chan *ProfileService, error)

	// Stop stops all active browsing operations.
	Stop()
}

// BrowserConfig configures browser behavior.
type BrowserConfig struct {
	// BrowseTimeout is the default timeout for one-shot browse operations.
	// Default: 10 seconds.
	BrowseTimeout time.Duration

	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string
}

// DefaultBrowserConfig returns the default browser configuration.
func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		BrowseTimeout: BrowseTimeout,
		Interface:     "",
	}
}

// FilterFunc is a function that filters browse results.
type FilterFunc func(*ProfileService) bool

// ExcludeInstance returns a filter that drops the named instance, typically
// the local advertisement.
func ExcludeInstance(instanceName string) FilterFunc {
	return func(svc *ProfileService) bool {
		return svc.InstanceName != instanceName
	}
}

// FilterBrowseResults filters a channel of profile services.
func FilterBrowseResults(in <-chan *ProfileService, filter FilterFunc) <-chan *ProfileService {
	out := make(chan *ProfileService)
	go func() {
		defer close(out)
		for svc := range in {
			if filter(svc) {
				out <- svc
			}
		}
	}()
	return out
}

// ServiceEntry is raw mDNS service entry data, decoupled from the mDNS
// library so other transports can produce it.
type ServiceEntry struct {
	Instance string
	Service  string
	Domain   string
	Host     string
	Port     uint16
	Text     []string
	Addrs    []string
}

// ToProfileService converts a ServiceEntry to ProfileService.
func (e *ServiceEntry) ToProfileService() (*ProfileService, error) {
	svc, err := DecodeProfileTXT(StringsToTXTRecords(e.Text))
	if err != nil {
		return nil, err
	}

	svc.InstanceName = e.Instance
	svc.Host = e.Host
	svc.Port = e.Port
	svc.Addresses = e.Addrs
	return svc, nil
}
