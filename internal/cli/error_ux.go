package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/nip05/internal/domain"
)

func printError(w io.Writer, err error) {
	th := NewTheme(w)

	stage, msg := userMessage(err)
	line := th.Label.Render("error:") + " "
	if stage != "" {
		line += th.Stage.Render(stage+":") + " "
	}
	line += msg

	if detail := errorDetail(err); detail != "" {
		line += " " + th.Detail.Render("("+detail+")")
	}
	fmt.Fprintln(w, line)
}

// userMessage returns the failing stage and a short reason.
func userMessage(err error) (string, string) {
	if err == nil {
		return "", ""
	}

	var oe *domain.OpError
	if !errors.As(err, &oe) {
		return "", err.Error()
	}

	stage := string(domain.StageOf(oe.Kind))
	switch oe.Kind {
	case domain.KindNoMatch:
		return stage, "query must look like name@domain or domain (name limited to a-z 0-9 - _ .)"
	case domain.KindMissingLocalPart:
		return stage, "a name is required, use name@domain"
	case domain.KindMissingDomain:
		return stage, `missing domain after "@"`
	case domain.KindInvalidDomain:
		return stage, "invalid domain"
	case domain.KindNetwork:
		return stage, "network error (" + string(domain.ClassifyNetworkError(err)) + ")"
	case domain.KindSchema:
		return stage, "unexpected nostr.json response"
	case domain.KindNameNotFound:
		return stage, "name not found"
	case domain.KindInvalidHex:
		return stage, "public key is not valid hex"
	case domain.KindInvalidPublicKey:
		return stage, "invalid public key"
	case domain.KindEncoding:
		return stage, "cannot encode public key"
	case domain.KindNotFound:
		return stage, "config file not found: " + filepath.Base(oe.Path)
	case domain.KindInvalidConfig:
		if strings.TrimSpace(oe.Path) != "" {
			return stage, "invalid config at " + filepath.Base(oe.Path)
		}
		return stage, "invalid config"
	default:
		return stage, "unexpected error"
	}
}

// errorDetail is the innermost cause text, stripped of the sentinel prefix
// already conveyed by userMessage.
func errorDetail(err error) string {
	var oe *domain.OpError
	if !errors.As(err, &oe) || oe.Err == nil {
		return ""
	}

	detail := oe.Err.Error()
	for _, sentinel := range []error{
		domain.ErrNoMatch, domain.ErrMissingLocalPart, domain.ErrMissingDomain, domain.ErrInvalidDomain,
		domain.ErrNetwork, domain.ErrSchema, domain.ErrNameNotFound,
		domain.ErrInvalidHex, domain.ErrInvalidPublicKey, domain.ErrEncoding,
		domain.ErrNotFound, domain.ErrInvalidConfig,
	} {
		if detail == sentinel.Error() {
			return ""
		}
		detail = strings.TrimPrefix(detail, sentinel.Error()+": ")
	}
	return detail
}
