package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		region string
		want   string
		ok     bool
	}{
		{"e164 passthrough", "+919876543210", "IN", "+919876543210", true},
		{"national format gets country code", "9876543210", "IN", "+919876543210", true},
		{"spaces and dashes stripped", "98765 432-10", "IN", "+919876543210", true},
		{"us number with us region", "(212) 555-0199", "US", "+12125550199", true},
		{"too short", "12345", "IN", "", false},
		{"letters", "98765abcde", "IN", "", false},
		{"empty", "", "IN", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.input, tt.region)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestMask(t *testing.T) {
	assert.Equal(t, "+91*******210", Mask("+919876543210"))
	assert.Equal(t, "+12*******199", Mask("+12125550199"))
}
