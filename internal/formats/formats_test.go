package formats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckers(t *testing.T) {
	tests := []struct {
		format string
		valid  []string
		bad    []string
	}{
		{
			format: "date-time",
			valid:  []string{"1985-04-12T23:20:50.52Z", "1996-12-19T16:39:57-08:00", "1990-12-31t23:59:59z"},
			bad:    []string{"1990-02-31T15:59:60", "06/19/1963 08:30:06 PST", "2013-350T01:01:01"},
		},
		{
			format: "email",
			valid:  []string{"joe.bloggs@example.com"},
			bad:    []string{"2962", "Joe <joe@example.com>", "@example.com"},
		},
		{
			format: "hostname",
			valid:  []string{"www.example.com", "xn--4gbwdl.xn--wgbh1c", "localhost"},
			bad:    []string{"-a-host-name-that-starts-with--", "not_a_valid_host_name", "a..b", ""},
		},
		{
			format: "ipv4",
			valid:  []string{"192.168.0.1"},
			bad:    []string{"127.0.0.0.1", "256.256.256.256", "0x7f000001", "::1"},
		},
		{
			format: "ipv6",
			valid:  []string{"::1", "2001:db8::ff00:42:8329"},
			bad:    []string{"12345::", "1:1:1:1:1:1:1:1:1", "127.0.0.1", "fe80::1%eth0"},
		},
		{
			format: "uri",
			valid:  []string{"http://foo.bar/?baz=qux#quux", "urn:isbn:0451450523"},
			bad:    []string{"//foo.bar/?baz=qux#quux", "abc"},
		},
		{
			format: "uuid",
			valid:  []string{"2eb8aa08-aa98-11ea-b4aa-73b441d16380"},
			bad:    []string{"2eb8aa08aa9811eab4aa73b441d16380", "{2eb8aa08-aa98-11ea-b4aa-73b441d16380}", "x"},
		},
		{
			format: "regex",
			valid:  []string{`^[a-z]+$`},
			bad:    []string{`^(abc]`},
		},
	}

	table := Draft04()
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			check, ok := table[tt.format]
			if !assert.True(t, ok, "format %q not registered", tt.format) {
				return
			}
			for _, s := range tt.valid {
				assert.True(t, check(s).IsValid(), "%q should be a valid %s", s, tt.format)
			}
			for _, s := range tt.bad {
				r := check(s)
				assert.False(t, r.IsValid(), "%q should not be a valid %s", s, tt.format)
				assert.Len(t, r.Messages(), 1)
			}
		})
	}
}

func TestDraft04ReturnsCopy(t *testing.T) {
	a := Draft04()
	delete(a, "email")
	_, ok := Draft04()["email"]
	assert.True(t, ok)
}
