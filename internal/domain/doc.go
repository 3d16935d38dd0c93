// Package domain contains the core model for nip05: identifiers, the query
// grammar, resolution results and the error taxonomy.
//
// The domain is transport-agnostic: it does not depend on net/http, JSON
// decoding or the filesystem. Infra/adapters map into/from these types.
package domain
