// Package commands defines the beacon CLI.
//
// Commands
//
//   - match      Score remote payloads against the local profile
//   - describe   Print the appearance statements of a payload
//   - bits       Print the bit sequence of a payload
//   - build      Compose a payload from appearance flags
//   - advertise  Advertise the local profile over mDNS
//   - scan       Advertise and score peer advertisements
//   - shell      Interactive prompt for match/describe/bits
//   - log        View and summarise protocol capture files
//
// The root command resolves configuration (file, then flags) and sets up
// logging before any subcommand runs.
package commands
