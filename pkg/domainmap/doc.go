// Package domainmap provides a fixed-shard map keyed by a 128-bit hash.
//
// The table is split into N domains fixed at construction time:
//
//   - Hashing: keys are rendered to bytes and hashed to a widehash.Hash
//     (MurmurHash3 x64 128 by default, see Hasher)
//   - Routing: a Router picks the domain from all four 32-bit sub-fields
//   - Lookup: linear scan of one domain, matching live entries by hash
//   - Removal: entries are tombstoned in place; slot indices never move and
//     released slots are recorded in a free-slot ledger
//   - Iteration: an Iterator walks domains in order and skips tombstones
//
// Usage:
//
//	m := domainmap.New[int, string](domainmap.WithDomains(20))
//	m.Set(1, "Value1")
//	v, err := m.Get(1)
//	for it := m.Begin(); !it.Done(); it.Next() {
//		e := it.Entry()
//		fmt.Println(e.Key(), e.Value())
//	}
//
// Thread Safety:
//
// A Map holds no locks. Callers that share one across goroutines must
// serialize access themselves, for example with one mutex around the map.
//
// Keys are matched by hash only, so two distinct keys with equal 128-bit
// hashes are treated as the same key.
package domainmap
