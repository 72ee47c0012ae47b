// Package partition maps tenants to their physical data partitions and
// provides the tenant-scoped document accessor the rest of the system
// reads and writes through.
//
// One canonical naming convention is applied uniformly: every partition is
// named "tenant_<sanitized tenant id>_<logical name>". Any other naming
// found in existing data is a migration concern, not a supported scheme.
package partition

import "strings"

// For maps a tenant identifier and a logical resource name to the tenant's
// physical partition name. It is a pure, deterministic function of its
// inputs; all storage access routes through it.
func For(tenantID, logicalName string) string {
	return "tenant_" + sanitize(tenantID) + "_" + sanitize(logicalName)
}

// sanitize lowercases the input and strips everything outside [a-z0-9_],
// so partition names are always safe SQL identifiers. UUID dashes are
// dropped, which keeps the structured and raw forms of the same id mapping
// to the same partition.
func sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}
