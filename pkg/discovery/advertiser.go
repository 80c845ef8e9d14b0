package discovery

import (
	"context"
	"time"
)

// Advertiser provides mDNS profile advertising.
type Advertiser interface {
	// AdvertiseProfile starts advertising a profile. An existing
	// advertisement under the same instance name is replaced.
	AdvertiseProfile(ctx context.Context, info *ProfileInfo) error

	// UpdateProfile replaces the TXT records of a running advertisement.
	UpdateProfile(instanceName string, info *ProfileInfo) error

	// StopProfile stops one advertisement.
	StopProfile(instanceName string) error

	// StopAll stops all advertisements.
	StopAll()
}

// AdvertiserConfig configures advertiser behavior.
type AdvertiserConfig struct {
	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string

	// TTL is the DNS record TTL.
	// Default: 120 seconds.
	TTL time.Duration
}

// DefaultAdvertiserConfig returns the default advertiser configuration.
func DefaultAdvertiserConfig() AdvertiserConfig {
	return AdvertiserConfig{
		Interface: "",
		TTL:       DefaultTTL,
	}
}

// prepareProfileInfo fills defaults and validates info before registration.
func prepareProfileInfo(info *ProfileInfo) (instanceName string, port int, err error) {
	instanceName = info.InstanceName
	if instanceName == "" {
		instanceName = NewInstanceName()
		info.InstanceName = instanceName
	}
	if err := ValidateInstanceName(instanceName); err != nil {
		return "", 0, err
	}
	if len(info.PayloadHex) > 2*MaxPayloadBytes {
		return "", 0, ErrPayloadTooLarge
	}

	port = int(info.Port)
	if port == 0 {
		port = DefaultPort
	}
	return instanceName, port, nil
}
