package log

import "time"

// Event is one captured protocol event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID identifies the scan session (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Direction indicates whether the advertisement was received or sent.
	Direction Direction `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Peer is the advertisement instance name of the remote peer.
	Peer string `cbor:"5,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Advertisement *AdvertisementEvent `cbor:"10,keyasint,omitempty"`
	Match         *MatchEvent         `cbor:"11,keyasint,omitempty"`
	StateChange   *StateChangeEvent   `cbor:"12,keyasint,omitempty"`
	Error         *ErrorEventData     `cbor:"13,keyasint,omitempty"`
}

// Direction indicates advertisement flow.
type Direction uint8

const (
	// DirectionIn indicates a received advertisement.
	DirectionIn Direction = 0
	// DirectionOut indicates an advertisement this node broadcasts.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryAdvertisement indicates a raw profile advertisement.
	CategoryAdvertisement Category = 0
	// CategoryMatch indicates a computed match result.
	CategoryMatch Category = 1
	// CategoryState indicates a state change.
	CategoryState Category = 2
	// CategoryError indicates a rejected payload or transport error.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryAdvertisement:
		return "ADVERTISEMENT"
	case CategoryMatch:
		return "MATCH"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// AdvertisementEvent captures a profile payload as it crossed the transport.
type AdvertisementEvent struct {
	// PayloadHex is the payload as carried by the transport.
	PayloadHex string `cbor:"1,keyasint"`

	// Size is the decoded payload size in bytes (0 if it did not decode).
	Size int `cbor:"2,keyasint"`

	// Addresses the peer was seen at.
	Addresses []string `cbor:"3,keyasint,omitempty"`
}

// MatchEvent captures the outcome of scoring and describing a peer.
type MatchEvent struct {
	// Score is the number of window agreements (0-14).
	Score int `cbor:"1,keyasint"`

	// Description holds the rendered attribute statements.
	Description []string `cbor:"2,keyasint,omitempty"`

	// ProcessingTime is how long evaluation took.
	ProcessingTime time.Duration `cbor:"3,keyasint,omitempty"`
}

// StateChangeEvent captures a scanner state transition.
type StateChangeEvent struct {
	OldState string `cbor:"1,keyasint"`
	NewState string `cbor:"2,keyasint"`

	// Reason is a human-readable explanation.
	Reason string `cbor:"3,keyasint,omitempty"`
}

// ErrorKind classifies captured errors.
type ErrorKind uint8

const (
	// ErrorKindMalformedHex is a payload that was not valid hex.
	ErrorKindMalformedHex ErrorKind = 0
	// ErrorKindIndexOutOfRange is a match that ran past the local profile.
	ErrorKindIndexOutOfRange ErrorKind = 1
	// ErrorKindTransport is an advertisement or browse failure.
	ErrorKindTransport ErrorKind = 2
	// ErrorKindOther is anything else.
	ErrorKindOther ErrorKind = 3
)

// String returns the error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindMalformedHex:
		return "MALFORMED_HEX"
	case ErrorKindIndexOutOfRange:
		return "INDEX_OUT_OF_RANGE"
	case ErrorKindTransport:
		return "TRANSPORT"
	case ErrorKindOther:
		return "OTHER"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures a failure while handling one payload.
type ErrorEventData struct {
	Kind    ErrorKind `cbor:"1,keyasint"`
	Message string    `cbor:"2,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"3,keyasint,omitempty"`
}
