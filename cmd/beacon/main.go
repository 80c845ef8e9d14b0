// Command beacon advertises a local profile payload and scores the profiles
// advertised by nearby peers.
//
// Usage:
//
//	beacon <command> [flags]
//
// Examples:
//
//	# Score one payload against the local profile
//	beacon match --local ff3f 5500
//
//	# Advertise and scan until interrupted
//	beacon scan --config beacon.yaml
//
//	# Show captured protocol events
//	beacon log view scan.plog
package main

import (
	"os"

	"github.com/profilebeacon/beacon-go/cmd/beacon/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
