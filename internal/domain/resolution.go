package domain

import "time"

// Resolution is the outcome of one successful pipeline run.
type Resolution struct {
	Identifier   Identifier
	PublicKeyHex string
	NPub         string

	// Relays lists relay URLs the domain advertises for the key, if any.
	Relays []string

	Duration time.Duration
}

// WellKnownDocument is the parsed subset of a nostr.json response that
// matters for one lookup.
type WellKnownDocument struct {
	PublicKeyHex string
	Relays       []string
}
