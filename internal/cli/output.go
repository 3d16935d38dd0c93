package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aalvaropc/nip05/internal/domain"
	"github.com/aalvaropc/nip05/internal/usecase/npub"
)

type jsonResolution struct {
	Identifier string   `json:"identifier"`
	LocalPart  string   `json:"local_part"`
	Domain     string   `json:"domain"`
	PublicKey  string   `json:"pubkey"`
	NPub       string   `json:"npub"`
	Relays     []string `json:"relays"`
	DurationMS int64    `json:"duration_ms"`
}

func printResolution(w io.Writer, res domain.Resolution, format string) error {
	switch format {
	case "json":
		// pubkey is re-derived from the npub so it is canonical lowercase hex
		// and proves the printed string decodes back to the same key.
		pub, err := npub.DecodeHex(res.NPub)
		if err != nil {
			return err
		}

		relays := res.Relays
		if relays == nil {
			relays = []string{}
		}

		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(jsonResolution{
			Identifier: res.Identifier.String(),
			LocalPart:  res.Identifier.LocalPart,
			Domain:     res.Identifier.Domain,
			PublicKey:  pub,
			NPub:       res.NPub,
			Relays:     relays,
			DurationMS: res.Duration.Milliseconds(),
		})
	case "pretty", "":
		_, err := fmt.Fprintln(w, res.NPub)
		return err
	default:
		return fmt.Errorf("unsupported format %q (expected %s)", format, joinFormats())
	}
}
