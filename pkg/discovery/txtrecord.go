package discovery

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// TXTRecordMap is a map of TXT record key-value pairs.
type TXTRecordMap map[string]string

// EncodeProfileTXT creates TXT records for a profile advertisement.
func EncodeProfileTXT(info *ProfileInfo) TXTRecordMap {
	txt := make(TXTRecordMap)

	txt[TXTKeyPayload] = strings.ToLower(info.PayloadHex)
	txt[TXTKeyVersion] = strconv.Itoa(FormatVersion)

	if info.DisplayName != "" {
		txt[TXTKeyDisplayName] = info.DisplayName
	}

	return txt
}

// DecodeProfileTXT parses TXT records from a profile advertisement.
//
// The payload is only checked for presence and size; decoding it is left to
// the caller so malformed payloads can be reported.
func DecodeProfileTXT(txt TXTRecordMap) (*ProfileService, error) {
	svc := &ProfileService{}

	vStr, ok := txt[TXTKeyVersion]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyVersion)
	}
	v, err := strconv.ParseUint(vStr, 10, 8)
	if err != nil {
		return nil, fmt.Errorf("%w: version %q", ErrInvalidTXTRecord, vStr)
	}
	if v != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}
	svc.Version = uint8(v)

	svc.PayloadHex, ok = txt[TXTKeyPayload]
	if !ok || svc.PayloadHex == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyPayload)
	}
	if len(svc.PayloadHex) > 2*MaxPayloadBytes {
		return nil, fmt.Errorf("%w: %d hex characters", ErrPayloadTooLarge, len(svc.PayloadHex))
	}

	svc.DisplayName = txt[TXTKeyDisplayName]

	return svc, nil
}

// TXTRecordsToStrings converts a TXTRecordMap to "key=value" strings sorted
// by key.
func TXTRecordsToStrings(txt TXTRecordMap) []string {
	keys := make([]string, 0, len(txt))
	for k := range txt {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]string, 0, len(txt))
	for _, k := range keys {
		result = append(result, fmt.Sprintf("%s=%s", k, txt[k]))
	}
	return result
}

// StringsToTXTRecords parses "key=value" strings into a TXTRecordMap.
func StringsToTXTRecords(strs []string) TXTRecordMap {
	txt := make(TXTRecordMap)
	for _, s := range strs {
		parts := strings.SplitN(s, "=", 2)
		if len(parts) == 2 {
			txt[parts[0]] = parts[1]
		} else if len(parts) == 1 && parts[0] != "" {
			// Key without value (boolean flag)
			txt[parts[0]] = ""
		}
	}
	return txt
}

// ValidateInstanceName checks if an instance name is valid for mDNS.
func ValidateInstanceName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInstanceNameTooLong)
	}
	if len(name) > MaxInstanceNameLen {
		return ErrInstanceNameTooLong
	}
	return nil
}

// NewInstanceName returns a random instance name of the form beacon-1a2b3c4d.
func NewInstanceName() string {
	id := uuid.New()
	return InstancePrefix + strings.ReplaceAll(id.String(), "-", "")[:8]
}
