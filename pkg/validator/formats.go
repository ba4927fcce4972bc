package validator

import (
	"net"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Format names a reusable semantic check on strings.
type Format string

const (
	FormatEmail        Format = "email"
	FormatURL          Format = "url"
	FormatAlphanumeric Format = "alphanumeric"
	FormatAlpha        Format = "alpha"
	FormatNumeric      Format = "numeric"
	FormatUUID         Format = "uuid"
	FormatSlug         Format = "slug"
	FormatPhone        Format = "phone"
	FormatIPv4         Format = "ipv4"
	FormatIPv6         Format = "ipv6"
	FormatIP           Format = "ip"
	FormatHexColor     Format = "hexColor"
	FormatCreditCard   Format = "creditCard"
	FormatDate         Format = "date"
	FormatDateTime     Format = "dateTime"
)

var (
	// E.164 with optional leading plus
	phoneRegex        = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	alphanumericRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	alphaRegex        = regexp.MustCompile(`^[a-zA-Z]+$`)
	numericRegex      = regexp.MustCompile(`^[0-9]+$`)
	slugRegex         = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	hexColorRegex     = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

type formatCheck struct {
	check   func(string) bool
	message string
}

var formats = map[Format]formatCheck{
	FormatEmail:        {IsEmail, "Must be a valid email address"},
	FormatURL:          {IsURL, "Must be a valid URL"},
	FormatAlphanumeric: {alphanumericRegex.MatchString, "Must contain only letters and numbers"},
	FormatAlpha:        {alphaRegex.MatchString, "Must contain only letters"},
	FormatNumeric:      {numericRegex.MatchString, "Must contain only digits"},
	FormatUUID:         {IsUUID, "Must be a valid UUID"},
	FormatSlug:         {slugRegex.MatchString, "Must be a valid slug (lowercase letters, numbers, and hyphens only)"},
	FormatPhone:        {IsPhone, "Must be a valid phone number in international format"},
	FormatIPv4:         {isIPv4, "Must be a valid IPv4 address"},
	FormatIPv6:         {isIPv6, "Must be a valid IPv6 address"},
	FormatIP:           {func(s string) bool { return net.ParseIP(s) != nil }, "Must be a valid IP address"},
	FormatHexColor:     {hexColorRegex.MatchString, "Must be a valid hex color"},
	FormatCreditCard:   {IsCreditCard, "Must be a valid credit card number"},
	FormatDate:         {isDate, "Must be a valid date (YYYY-MM-DD)"},
	FormatDateTime:     {isDateTime, "Must be a valid RFC 3339 date-time"},
}

// KnownFormat reports whether f is a built-in format.
func KnownFormat(f Format) bool {
	_, ok := formats[f]
	return ok
}

// ParseFormat maps a format name to the built-in Format, ignoring case:
// "hexcolor", "HexColor" and "hexColor" all yield FormatHexColor.
func ParseFormat(name string) (Format, bool) {
	if _, ok := formats[Format(name)]; ok {
		return Format(name), true
	}
	name = strings.TrimSpace(name)
	for f := range formats {
		if strings.EqualFold(string(f), name) {
			return f, true
		}
	}
	return "", false
}

// IsEmail checks an address with net/mail plus the stricter rules expected
// from web forms: a bare address with a dotted domain and no empty labels.
func IsEmail(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}

	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}

	local, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return false
	}
	if !strings.Contains(domain, ".") {
		return false
	}
	for part := range strings.SplitSeq(domain, ".") {
		if part == "" {
			return false
		}
	}
	return true
}

// IsURL requires an absolute URL with scheme and host.
func IsURL(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	u, err := url.ParseRequestURI(value)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// IsUUID accepts the canonical 36 character form only.
func IsUUID(value string) bool {
	// Cheap shape check before parsing
	if len(value) != 36 || value[8] != '-' || value[13] != '-' || value[18] != '-' || value[23] != '-' {
		return false
	}
	_, err := uuid.Parse(value)
	return err == nil
}

// IsPhone accepts E.164 numbers; spaces and dashes are ignored.
func IsPhone(value string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(value)
	if len(cleaned) < 7 {
		return false
	}
	return phoneRegex.MatchString(cleaned)
}

// IsCreditCard runs the Luhn checksum over 13 to 19 digits.
func IsCreditCard(value string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(value)
	if len(cleaned) < 13 || len(cleaned) > 19 || !numericRegex.MatchString(cleaned) {
		return false
	}

	sum := 0
	double := false
	for i := len(cleaned) - 1; i >= 0; i-- {
		digit := int(cleaned[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum%10 == 0
}

func isIPv4(value string) bool {
	ip := net.ParseIP(value)
	return ip != nil && ip.To4() != nil && !strings.Contains(value, ":")
}

func isIPv6(value string) bool {
	ip := net.ParseIP(value)
	return ip != nil && strings.Contains(value, ":")
}

func isDate(value string) bool {
	_, err := time.Parse(time.DateOnly, value)
	return err == nil
}

func isDateTime(value string) bool {
	_, err := time.Parse(time.RFC3339, value)
	return err == nil
}
