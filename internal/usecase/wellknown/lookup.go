package wellknown

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/aalvaropc/nip05/internal/domain"
)

const (
	namesPath  = "$.names"
	relaysPath = "$.relays"
)

// Lookup extracts the public key for localPart from a nostr.json body.
//
// Policy:
// - Body not a JSON object, or $.names missing / not an object of strings
//   for the requested entry -> KindSchema.
// - localPart absent from $.names -> KindNameNotFound.
// - $.relays is optional; a missing or malformed relay list is ignored.
func Lookup(body []byte, localPart string) (domain.WellKnownDocument, error) {
	const op = "wellknown.lookup"

	doc, err := parseJSON(body)
	if err != nil {
		return domain.WellKnownDocument{}, domain.NewOpError(op, domain.KindSchema, fmt.Errorf("response body is not valid JSON: %w", err))
	}
	if _, ok := doc.(map[string]any); !ok {
		return domain.WellKnownDocument{}, domain.NewOpError(op, domain.KindSchema, errors.New("response body is not a JSON object"))
	}

	val, err := jsonpath.Get(namesPath, doc)
	if err != nil {
		return domain.WellKnownDocument{}, domain.NewOpError(op, domain.KindSchema, fmt.Errorf("%s: %w", namesPath, err))
	}

	names, ok := val.(map[string]any)
	if !ok {
		return domain.WellKnownDocument{}, domain.NewOpError(op, domain.KindSchema, fmt.Errorf("%s is %s, want object", namesPath, typeName(val)))
	}

	raw, ok := names[localPart]
	if !ok {
		return domain.WellKnownDocument{}, domain.NewOpError(op, domain.KindNameNotFound, fmt.Errorf("%q not listed in %s", localPart, namesPath))
	}

	key, ok := raw.(string)
	if !ok {
		return domain.WellKnownDocument{}, domain.NewOpError(op, domain.KindSchema, fmt.Errorf("%s[%q] is %s, want string", namesPath, localPart, typeName(raw)))
	}

	return domain.WellKnownDocument{
		PublicKeyHex: key,
		Relays:       relaysFor(doc, key),
	}, nil
}

func relaysFor(doc any, key string) []string {
	val, err := jsonpath.Get(relaysPath, doc)
	if err != nil {
		return nil
	}
	byKey, ok := val.(map[string]any)
	if !ok {
		return nil
	}
	list, ok := byKey[key].([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func parseJSON(body []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "bool"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
