// Package discovery carries profile payloads between peers over mDNS/DNS-SD.
//
// Each node advertises one _pbeacon._udp service whose TXT record holds its
// profile payload as hex. Scanners browse the same service type and hand
// every payload they see to the scanner pipeline, which decodes, scores and
// describes it. The package treats payloads as opaque text: hex validation
// belongs to the pipeline so malformed peers are reported, not dropped.
//
// # TXT Records
//
//	P   payload hex (required, at most 64 bytes decoded)
//	V   payload format version (required, currently 1)
//	DN  display name (optional)
//
// # Service Data Strings
//
// Radio stacks that expose advertisement service data as text render it as
//
//	{0000feaa-0000-1000-8000-00805f9b34fb=(0x) AB:CD:EF}
//
// ParseServiceDataString and ExtractPayloadHex recover the payload from that
// form so such stacks can feed the same pipeline.
package discovery
