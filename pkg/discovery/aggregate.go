package discovery

// profileAggregator tracks browsed services by instance name. Not safe for
// concurrent use; one browse goroutine owns it.
type profileAggregator struct {
	services map[string]*ProfileService
}

func newProfileAggregator() *profileAggregator {
	return &profileAggregator{services: make(map[string]*ProfileService)}
}

// add merges svc and returns the service to emit, or nil when nothing new
// was learned. A changed payload is a new advertisement and is emitted.
func (a *profileAggregator) add(svc *ProfileService) *ProfileService {
	existing, found := a.services[svc.InstanceName]
	if !found {
		a.services[svc.InstanceName] = svc
		return cloneService(svc)
	}

	existing.Addresses = mergeAddresses(existing.Addresses, svc.Addresses)
	if existing.PayloadHex == svc.PayloadHex && existing.DisplayName == svc.DisplayName {
		return nil
	}
	existing.PayloadHex = svc.PayloadHex
	existing.DisplayName = svc.DisplayName
	existing.Version = svc.Version
	return cloneService(existing)
}

// remove drops addresses for an instance, forgetting it once none remain.
func (a *profileAggregator) remove(instance string, addrs []string) {
	existing, found := a.services[instance]
	if !found {
		return
	}
	existing.Addresses = removeAddresses(existing.Addresses, addrs)
	if len(existing.Addresses) == 0 {
		delete(a.services, instance)
	}
}

func (a *profileAggregator) len() int {
	return len(a.services)
}

func cloneService(svc *ProfileService) *ProfileService {
	c := *svc
	c.Addresses = append([]string(nil), svc.Addresses...)
	return &c
}

// mergeAddresses adds new addresses to existing list, avoiding duplicates.
func mergeAddresses(existing, added []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, addr := range existing {
		seen[addr] = true
	}

	for _, addr := range added {
		if !seen[addr] {
			existing = append(existing, addr)
			seen[addr] = true
		}
	}
	return existing
}

// removeAddresses returns addresses without any of gone.
func removeAddresses(addresses, gone []string) []string {
	toRemove := make(map[string]bool, len(gone))
	for _, addr := range gone {
		toRemove[addr] = true
	}

	result := make([]string, 0, len(addresses))
	for _, addr := range addresses {
		if !toRemove[addr] {
			result = append(result, addr)
		}
	}
	return result
}
