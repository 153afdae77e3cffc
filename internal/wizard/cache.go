package wizard

import "inscricaoflow/internal/domain"

// availabilityCache memoizes remote CPF checks per event so a digit string is
// only checked once per session. Entries have no TTL; they leave the cache
// only through the delete-on-edit rule (or are overwritten when a submission
// conflict proves a CPF registered).
type availabilityCache struct {
	eventID string
	entries map[string]domain.CheckResult
}

func newAvailabilityCache(eventID string) *availabilityCache {
	return &availabilityCache{
		eventID: eventID,
		entries: make(map[string]domain.CheckResult),
	}
}

func (c *availabilityCache) key(digits string) string {
	return c.eventID + ":" + digits
}

// Lookup returns the cached result for a digit string, if any.
func (c *availabilityCache) Lookup(digits string) (domain.CheckResult, bool) {
	result, ok := c.entries[c.key(digits)]
	return result, ok
}

// Store records a check result for a digit string.
func (c *availabilityCache) Store(digits string, result domain.CheckResult) {
	c.entries[c.key(digits)] = result
}

// Purge drops the entry for a digit string. Called with both the previous
// and the new digits whenever a CPF field is edited.
func (c *availabilityCache) Purge(digits string) {
	if digits == "" {
		return
	}
	delete(c.entries, c.key(digits))
}
