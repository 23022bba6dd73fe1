package scraper

import (
	"testing"

	"github.com/use-agent/smsgrab/config"
)

func testProviderConfig() config.ProviderConfig {
	return config.ProviderConfig{
		Host:        "receive-sms-online.info",
		PathSegment: "/sms",
		PhoneParam:  "phone",
		KeyParam:    "key",
	}
}

func TestIsValidURL(t *testing.T) {
	v := NewValidator(testProviderConfig())

	tests := []struct {
		name string
		url  string
		want bool
	}{
		{
			"valid url",
			"https://receive-sms-online.info/sms/447700900000?phone=447700900000&key=abc123",
			true,
		},
		{
			"parameter values are not format-checked",
			"https://receive-sms-online.info/sms/x?phone=&key=",
			true,
		},
		{
			"host is case-insensitive",
			"https://Receive-SMS-Online.info/sms/x?phone=1&key=2",
			true,
		},
		{
			"wrong host",
			"https://example.com/sms/447700900000?phone=447700900000&key=abc123",
			false,
		},
		{
			"missing path segment",
			"https://receive-sms-online.info/numbers/447700900000?phone=447700900000&key=abc123",
			false,
		},
		{
			"missing phone parameter",
			"https://receive-sms-online.info/sms/447700900000?key=abc123",
			false,
		},
		{
			"missing key parameter",
			"https://receive-sms-online.info/sms/447700900000?phone=447700900000",
			false,
		},
		{
			"unparseable url",
			"://receive-sms-online.info/sms",
			false,
		},
		{
			"empty url",
			"",
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.IsValidURL(tt.url); got != tt.want {
				t.Errorf("IsValidURL(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestPhoneNumber(t *testing.T) {
	v := NewValidator(testProviderConfig())

	got := v.PhoneNumber("https://receive-sms-online.info/sms/x?phone=447700900000&key=abc")
	if got != "447700900000" {
		t.Errorf("PhoneNumber = %q, want 447700900000", got)
	}

	if got := v.PhoneNumber("https://receive-sms-online.info/sms/x?key=abc"); got != "" {
		t.Errorf("PhoneNumber without parameter = %q, want empty", got)
	}
}
