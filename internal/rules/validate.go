package rules

import (
	"net/url"
	"regexp"
	"strings"

	"importpipe/pkg/records"
)

// OnInvalid selects what a validator does with a failing value.
type OnInvalid string

const (
	// InvalidSkip excludes the whole row.
	InvalidSkip OnInvalid = "skip"
	// InvalidNull replaces the value with nil.
	InvalidNull OnInvalid = "null"
	// InvalidKeep passes the failing value through unchanged.
	InvalidKeep OnInvalid = "keep"
)

// invalid resolves a validation failure according to the configured policy.
// Unknown policies behave like keep.
func invalid(policy OnInvalid, v any, reason string) Outcome {
	switch policy {
	case InvalidSkip:
		return skip(reason)
	case InvalidNull:
		return pass(nil)
	default:
		return pass(v)
	}
}

var (
	emailRe     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigitRe  = regexp.MustCompile(`\D`)
	phoneCharRe = regexp.MustCompile(`^\+?[\d\s().-]+$`)
)

// ValidateEmail checks the value against an email-shaped pattern. Successful
// values canonicalize to trimmed lowercase.
type ValidateEmail struct {
	OnInvalid OnInvalid
}

func (ValidateEmail) Kind() string { return "validate_email" }

func (r ValidateEmail) Apply(v any) Outcome {
	s := strings.ToLower(strings.TrimSpace(records.AsString(v)))
	if !emailRe.MatchString(s) {
		return invalid(r.OnInvalid, v, "Invalid email")
	}
	return pass(s)
}

// ValidatePhone strips non-digits and requires at least ten digits. With
// Format "e164" a successful value is rendered as +1 followed by the digits,
// unless the digits already start with the country digit 1.
type ValidatePhone struct {
	OnInvalid OnInvalid
	Format    string // "" or "e164"
}

func (ValidatePhone) Kind() string { return "validate_phone" }

func (r ValidatePhone) Apply(v any) Outcome {
	s := records.AsString(v)
	digits := nonDigitRe.ReplaceAllString(s, "")
	if !phoneCharRe.MatchString(strings.TrimSpace(s)) || len(digits) < 10 {
		return invalid(r.OnInvalid, v, "Invalid phone number")
	}
	if r.Format == "e164" {
		if strings.HasPrefix(digits, "1") {
			return pass("+" + digits)
		}
		return pass("+1" + digits)
	}
	return pass(v)
}

// ValidateURL attempts URL construction and requires a scheme and host.
type ValidateURL struct {
	OnInvalid OnInvalid
}

func (ValidateURL) Kind() string { return "validate_url" }

func (r ValidateURL) Apply(v any) Outcome {
	s := strings.TrimSpace(records.AsString(v))
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return invalid(r.OnInvalid, v, "Invalid URL")
	}
	return pass(v)
}
