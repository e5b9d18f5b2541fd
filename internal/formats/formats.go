// Package formats implements the string format checkers consulted by the
// "format" keyword.
package formats

import (
	"fmt"
	"maps"
	"net/mail"
	"net/netip"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jacoelho/jsonschema/errors"
)

// Checker validates a string against a named format.
type Checker func(string) errors.Result

// Draft04 returns a fresh table of the draft-04 formats plus uuid and regex.
func Draft04() map[string]Checker {
	return maps.Clone(draft04)
}

var draft04 = map[string]Checker{
	"date-time": DateTime,
	"email":     Email,
	"hostname":  Hostname,
	"ipv4":      IPv4,
	"ipv6":      IPv6,
	"uri":       URI,
	"uuid":      UUID,
	"regex":     Regex,
}

// DateTime accepts RFC 3339 timestamps.
func DateTime(s string) errors.Result {
	if _, err := time.Parse(time.RFC3339Nano, strings.ToUpper(s)); err != nil {
		return errors.Invalid(fmt.Sprintf("'%s' is not a valid RFC 3339 formatted date-time.", s))
	}
	return errors.Valid()
}

// Email accepts a bare RFC 5322 address without display name.
func Email(s string) errors.Result {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return errors.Invalid(fmt.Sprintf("'%s' is not a valid email address.", s))
	}
	return errors.Valid()
}

// Hostname accepts RFC 1123 host names.
func Hostname(s string) errors.Result {
	if !isHostname(s) {
		return errors.Invalid(fmt.Sprintf("'%s' is not a valid hostname.", s))
	}
	return errors.Valid()
}

func isHostname(s string) bool {
	s = strings.TrimSuffix(s, ".")
	if s == "" || len(s) > 253 {
		return false
	}
	for label := range strings.SplitSeq(s, ".") {
		if label == "" || len(label) > 63 {
			return false
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for i := 0; i < len(label); i++ {
			c := label[i]
			switch {
			case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-':
			default:
				return false
			}
		}
	}
	return true
}

// IPv4 accepts dotted-quad addresses.
func IPv4(s string) errors.Result {
	addr, err := netip.ParseAddr(s)
	if err != nil || !addr.Is4() {
		return errors.Invalid(fmt.Sprintf("'%s' is not a valid IPv4 address.", s))
	}
	return errors.Valid()
}

// IPv6 accepts IPv6 addresses without zone.
func IPv6(s string) errors.Result {
	addr, err := netip.ParseAddr(s)
	if err != nil || !addr.Is6() || addr.Zone() != "" {
		return errors.Invalid(fmt.Sprintf("'%s' is not a valid IPv6 address.", s))
	}
	return errors.Valid()
}

// URI accepts absolute URIs.
func URI(s string) errors.Result {
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() {
		return errors.Invalid(fmt.Sprintf("'%s' is not a valid URI.", s))
	}
	return errors.Valid()
}

// UUID accepts the canonical hyphenated form.
func UUID(s string) errors.Result {
	if len(s) != 36 {
		return errors.Invalid(fmt.Sprintf("'%s' is not a valid UUID.", s))
	}
	if _, err := uuid.Parse(s); err != nil {
		return errors.Invalid(fmt.Sprintf("'%s' is not a valid UUID.", s))
	}
	return errors.Valid()
}

// Regex accepts patterns the regexp package can compile.
func Regex(s string) errors.Result {
	if _, err := regexp.Compile(s); err != nil {
		return errors.Invalid(fmt.Sprintf("'%s' is not a valid regular expression.", s))
	}
	return errors.Valid()
}
