package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schemakit/pkg/kind"
	"github.com/dmitrymomot/schemakit/pkg/validator"
)

func TestFormats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format  validator.Format
		valid   []string
		invalid []string
	}{
		{
			format:  validator.FormatEmail,
			valid:   []string{"user@example.com", "first.last+tag@sub.example.org"},
			invalid: []string{"", "invalid", "user@", "@example.com", "user@localhost", "user@example..com", "John <john@example.com>"},
		},
		{
			format:  validator.FormatURL,
			valid:   []string{"https://example.com", "http://localhost:8080/path?q=1"},
			invalid: []string{"", "example.com", "/relative/path", "https://"},
		},
		{
			format:  validator.FormatAlphanumeric,
			valid:   []string{"abc123", "ABC"},
			invalid: []string{"", "abc 123", "abc-123"},
		},
		{
			format:  validator.FormatAlpha,
			valid:   []string{"abc", "Zed"},
			invalid: []string{"abc1", "a b"},
		},
		{
			format:  validator.FormatNumeric,
			valid:   []string{"0", "123456"},
			invalid: []string{"12.5", "-1", "1e3"},
		},
		{
			format:  validator.FormatUUID,
			valid:   []string{"550e8400-e29b-41d4-a716-446655440000"},
			invalid: []string{"550e8400e29b41d4a716446655440000", "550e8400-e29b-41d4-a716-44665544000z", "not-a-uuid"},
		},
		{
			format:  validator.FormatSlug,
			valid:   []string{"hello-world", "post-2024"},
			invalid: []string{"Hello-World", "-leading", "trailing-", "double--dash"},
		},
		{
			format:  validator.FormatPhone,
			valid:   []string{"+14155552671", "+44 20 7946 0958", "14155552671"},
			invalid: []string{"12345", "+0123456789", "phone"},
		},
		{
			format:  validator.FormatIPv4,
			valid:   []string{"192.168.0.1", "8.8.8.8"},
			invalid: []string{"256.1.1.1", "::1", "::ffff:192.168.0.1"},
		},
		{
			format:  validator.FormatIPv6,
			valid:   []string{"::1", "2001:db8::1", "::ffff:192.168.0.1"},
			invalid: []string{"192.168.0.1", "2001:db8::g"},
		},
		{
			format:  validator.FormatIP,
			valid:   []string{"10.0.0.1", "fe80::1"},
			invalid: []string{"10.0.0", "host"},
		},
		{
			format:  validator.FormatHexColor,
			valid:   []string{"#fff", "#A0b1C2"},
			invalid: []string{"fff", "#ffff", "#ggg"},
		},
		{
			format:  validator.FormatCreditCard,
			valid:   []string{"4111 1111 1111 1111", "5500-0000-0000-0004"},
			invalid: []string{"4111 1111 1111 1112", "1234", "abcd efgh ijkl mnop"},
		},
		{
			format:  validator.FormatDate,
			valid:   []string{"2024-02-29"},
			invalid: []string{"2023-02-29", "29/02/2024"},
		},
		{
			format:  validator.FormatDateTime,
			valid:   []string{"2024-01-02T15:04:05Z", "2024-01-02T15:04:05+02:00"},
			invalid: []string{"2024-01-02", "2024-01-02 15:04:05"},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			schema := validator.Schema{Type: kind.String, Formats: []validator.Format{tt.format}}
			for _, v := range tt.valid {
				assert.True(t, validator.Validate(v, schema).Valid, "expected %q to be a valid %s", v, tt.format)
			}
			for _, v := range tt.invalid {
				res := validator.Validate(v, schema)
				if assert.False(t, res.Valid, "expected %q to be an invalid %s", v, tt.format) {
					assert.Equal(t, validator.ErrorType(tt.format), res.Errors[0].Type)
				}
			}
		})
	}
}

func TestKnownFormat(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.KnownFormat(validator.FormatEmail))
	assert.False(t, validator.KnownFormat("isbn"))
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want validator.Format
	}{
		{"hexColor", validator.FormatHexColor},
		{"hexcolor", validator.FormatHexColor},
		{"creditcard", validator.FormatCreditCard},
		{"DATETIME", validator.FormatDateTime},
		{" ipv4 ", validator.FormatIPv4},
	}
	for _, tt := range tests {
		f, ok := validator.ParseFormat(tt.name)
		assert.True(t, ok, tt.name)
		assert.Equal(t, tt.want, f, tt.name)
	}

	_, ok := validator.ParseFormat("isbn")
	assert.False(t, ok)
}

func TestValidate_FormatNameIgnoresCase(t *testing.T) {
	t.Parallel()

	schema := validator.Schema{Type: kind.String, Formats: []validator.Format{"hexcolor"}}

	assert.True(t, validator.Validate("#a0f", schema).Valid)

	res := validator.Validate("red", schema)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, validator.ErrorType(validator.FormatHexColor), res.Errors[0].Type)
}
