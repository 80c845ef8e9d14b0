package discovery

import (
	"fmt"
	"strings"

	"github.com/profilebeacon/beacon-go/pkg/profile"
)

const serviceDataSeparator = "=(0x) "

// ServiceData is one service-data element of a radio advertisement.
type ServiceData struct {
	UUID string
	Data []byte
}

// ParseServiceDataString parses the textual service-data rendering
// "{<uuid>=(0x) AB:CD, <uuid>=(0x) EF}" into its elements.
func ParseServiceDataString(s string) ([]ServiceData, error) {
	entries, err := splitServiceData(s)
	if err != nil {
		return nil, err
	}

	out := make([]ServiceData, 0, len(entries))
	for _, e := range entries {
		data, err := profile.HexToBytes(e.hex)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidServiceData, e.uuid, err)
		}
		out = append(out, ServiceData{UUID: e.uuid, Data: data})
	}
	return out, nil
}

// ExtractPayloadHex returns the payload hex of the first service-data element,
// with the byte separators removed and lowercased. The hex itself is not
// validated.
func ExtractPayloadHex(s string) (string, error) {
	entries, err := splitServiceData(s)
	if err != nil {
		return "", err
	}
	return strings.ToLower(entries[0].hex), nil
}

type serviceDataEntry struct {
	uuid string
	hex  string
}

func splitServiceData(s string) ([]serviceDataEntry, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return nil, fmt.Errorf("%w: missing braces", ErrInvalidServiceData)
	}
	body := strings.TrimSpace(s[1 : len(s)-1])
	if body == "" {
		return nil, fmt.Errorf("%w: no elements", ErrInvalidServiceData)
	}

	parts := strings.Split(body, ", ")
	entries := make([]serviceDataEntry, 0, len(parts))
	for _, part := range parts {
		id, data, ok := strings.Cut(part, serviceDataSeparator)
		if !ok || strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("%w: element %q", ErrInvalidServiceData, part)
		}
		entries = append(entries, serviceDataEntry{
			uuid: strings.TrimSpace(id),
			hex:  strings.ReplaceAll(strings.TrimSpace(data), ":", ""),
		})
	}
	return entries, nil
}
