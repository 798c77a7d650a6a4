package auth_handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectDeviceType(t *testing.T) {
	cases := map[string]string{
		"Mozilla/5.0 (Linux; Android 14)":              "Android",
		"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0)":     "iPhone",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64)":    "Windows PC",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 14_0)": "MacOS",
		"Mozilla/5.0 (X11; Linux x86_64)":              "Linux",
		"curl/8.5.0":                                   "Unknown Device",
	}

	for ua, want := range cases {
		assert.Equal(t, want, detectDeviceType(ua), ua)
	}
}
