package routepath

import (
	"errors"
	"testing"
)

func TestValidateNavURI(t *testing.T) {
	tests := []struct {
		uri     string
		wantErr error
	}{
		{uri: "", wantErr: nil},
		{uri: "/", wantErr: nil},
		{uri: "/products/42?tab=1", wantErr: nil},
		{uri: "?tab=1", wantErr: nil},
		{uri: "http://evil.example/", wantErr: ErrAbsoluteURI},
		{uri: "https://evil.example/", wantErr: ErrAbsoluteURI},
		{uri: "//evil.example/", wantErr: ErrAbsoluteURI},
		{uri: "about", wantErr: ErrInvalidURI},
		{uri: "/a\\b", wantErr: ErrBackslashInPath},
		{uri: "/a%00b", wantErr: ErrNullByteInPath},
		{uri: "/a?x=\\", wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			err := ValidateNavURI(tt.uri)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateNavURI(%q) = %v, want %v", tt.uri, err, tt.wantErr)
			}
		})
	}
}
