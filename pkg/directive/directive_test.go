package directive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		comment string
		want    []string
		present bool
	}{
		{
			name:    "single domain",
			comment: "auto_dns_example.com",
			want:    []string{"example.com"},
			present: true,
		},
		{
			name:    "multiple domains",
			comment: "auto_dns_example.com_test.invalid",
			want:    []string{"example.com", "test.invalid"},
			present: true,
		},
		{
			name:    "bare marker",
			comment: "auto_dns_",
			want:    nil,
			present: true,
		},
		{
			name:    "no directive",
			comment: "notes: nothing special",
			present: false,
		},
		{
			name:    "empty comment",
			comment: "",
			present: false,
		},
		{
			name:    "marker not at start",
			comment: "managed auto_dns_example.com",
			present: false,
		},
		{
			name:    "marker is case sensitive",
			comment: "AUTO_DNS_example.com",
			present: false,
		},
		{
			name:    "empty tokens are kept",
			comment: "auto_dns_example.com__other.org",
			want:    []string{"example.com", "", "other.org"},
			present: true,
		},
		{
			name:    "tokens are trimmed",
			comment: "auto_dns_ example.com ",
			want:    []string{"example.com"},
			present: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := Parse(tt.comment)
			assert.Equal(t, tt.present, ok)
			assert.Equal(t, tt.want, d.Domains)
		})
	}
}

func TestParsePrefixOnlyMatchesWholeMarker(t *testing.T) {
	// A comment that stops inside the marker is not a directive.
	_, ok := Parse("auto_dns")
	assert.False(t, ok)
}
