package global

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Username string `json:"username" validate:"required,username"`
	FullName string `json:"fullName" validate:"required,fullname"`
	Channel  string `json:"channelId" validate:"omitempty,objectid"`
	Bio      string `json:"bio" validate:"no_xss"`
}

func TestValidator_CustomTags(t *testing.T) {
	tests := []struct {
		name   string
		input  signup
		failed string
	}{
		{"valid", signup{Username: "alice_01", FullName: "Alice Doe", Channel: "65a1b2c3d4e5f60718293a4b"}, ""},
		{"uppercase username", signup{Username: "Alice", FullName: "Alice"}, "username"},
		{"short username", signup{Username: "al", FullName: "Alice"}, "username"},
		{"digits in name", signup{Username: "alice", FullName: "Alice 2"}, "fullName"},
		{"blank name", signup{Username: "alice", FullName: "   "}, "fullName"},
		{"bad object id", signup{Username: "alice", FullName: "Alice", Channel: "nope"}, "channelId"},
		{"script", signup{Username: "alice", FullName: "Alice", Bio: "<SCRIPT>alert(1)</script>"}, "bio"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate.Struct(tt.input)
			if tt.failed == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, tt.failed, verrs[0].Field())
		})
	}
}

func TestValidator_UnicodeFullName(t *testing.T) {
	err := Validate.Struct(signup{Username: "minh", FullName: "Nguyễn Văn Minh"})
	assert.NoError(t, err)
}
