package discovery

import (
	"errors"
	"time"
)

// Service constants for mDNS.
const (
	// ServiceTypeProfile is the service type every beacon advertises.
	ServiceTypeProfile = "_pbeacon._udp"

	// Domain is the mDNS domain.
	Domain = "local"

	// DefaultPort is advertised when ProfileInfo.Port is zero. Nothing
	// listens on it; DNS-SD requires a port.
	DefaultPort = 5454
)

// TXT record keys.
const (
	TXTKeyPayload     = "P"  // Payload hex
	TXTKeyVersion     = "V"  // Payload format version
	TXTKeyDisplayName = "DN" // Display name (optional)
)

// FormatVersion is the payload layout version this package emits and accepts.
const FormatVersion = 1

// Timing constants.
const (
	// BrowseTimeout is the default timeout for one-shot browsing.
	BrowseTimeout = 10 * time.Second

	// DefaultTTL is the DNS record TTL for advertisements.
	DefaultTTL = 120 * time.Second
)

// Limits.
const (
	// MaxInstanceNameLen is the DNS label limit.
	MaxInstanceNameLen = 63

	// MaxPayloadBytes bounds the decoded payload carried in a TXT record.
	MaxPayloadBytes = 64

	// InstancePrefix starts generated instance names.
	InstancePrefix = "beacon-"
)

// Discovery errors.
var (
	ErrInvalidTXTRecord    = errors.New("invalid TXT record format")
	ErrMissingRequired     = errors.New("missing required field")
	ErrUnsupportedVersion  = errors.New("unsupported payload format version")
	ErrPayloadTooLarge     = errors.New("payload exceeds maximum size")
	ErrInstanceNameTooLong = errors.New("instance name exceeds 63 characters")
	ErrNotFound            = errors.New("service not found")
	ErrInvalidServiceData  = errors.New("invalid service data string")
)

// ProfileInfo describes the local advertisement.
type ProfileInfo struct {
	// InstanceName is the mDNS instance name. Generated when empty.
	InstanceName string

	// PayloadHex is the local profile payload as hex.
	PayloadHex string

	// DisplayName is an optional user-facing name.
	DisplayName string

	// Port is the advertised port (DefaultPort when zero).
	Port uint16

	// Host is the hostname to advertise.
	Host string
}

// ProfileService is a peer advertisement found via mDNS.
type ProfileService struct {
	// InstanceName is the mDNS instance name (e.g., "beacon-1a2b3c4d").
	InstanceName string

	// Host is the hostname.
	Host string

	// Port is the service port.
	Port uint16

	// Addresses contains resolved IP addresses.
	Addresses []string

	// PayloadHex is the peer payload as advertised (from TXT "P").
	PayloadHex string

	// Version is the payload format version (from TXT "V").
	Version uint8

	// DisplayName is the optional peer name (from TXT "DN").
	DisplayName string
}
