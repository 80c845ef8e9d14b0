package log

import (
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// MaxEventSize bounds one encoded event. Payloads are at most 64 bytes, so
// anything larger is a malformed event rather than a real capture.
const MaxEventSize = 4096

// ErrEventTooLarge is returned when an event encodes to more than
// MaxEventSize bytes.
var ErrEventTooLarge = errors.New("event exceeds maximum encoded size")

var (
	// Timestamps carry tag 0 so generic CBOR tools show them as text time.
	encMode = mustEncMode(cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
		TimeTag:       cbor.EncTagRequired,
	})

	// Capture files may come from other machines. Unknown keys are
	// tolerated, nesting and container sizes are bounded.
	decMode = mustDecMode(cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
		TimeTag:           cbor.DecTagOptional,
		MaxNestedLevels:   16,
		MaxArrayElements:  1024,
		MaxMapPairs:       64,
	})
)

func mustEncMode(opts cbor.EncOptions) cbor.EncMode {
	m, err := opts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("log: invalid CBOR encode options: %v", err))
	}
	return m
}

func mustDecMode(opts cbor.DecOptions) cbor.DecMode {
	m, err := opts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("log: invalid CBOR decode options: %v", err))
	}
	return m
}

// EncodeEvent encodes an Event as one CBOR data item.
func EncodeEvent(event Event) ([]byte, error) {
	data, err := encMode.Marshal(event)
	if err != nil {
		return nil, err
	}
	if len(data) > MaxEventSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrEventTooLarge, len(data))
	}
	return data, nil
}

// DecodeEvent decodes one CBOR data item into an Event.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := decMode.Unmarshal(data, &event); err != nil {
		return Event{}, err
	}
	return event, nil
}

// NewDecoder returns a decoder reading a stream of events from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return decMode.NewDecoder(r)
}
