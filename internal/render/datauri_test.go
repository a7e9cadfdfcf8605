package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDataURL(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantMIME string
		wantData string
		wantErr  bool
	}{
		{name: "jpeg", in: "data:image/jpeg;base64,QUJD", wantMIME: "image/jpeg", wantData: "ABC"},
		{name: "png", in: "data:image/png;base64,", wantMIME: "image/png", wantData: ""},
		{name: "no prefix", in: "QUJD", wantErr: true},
		{name: "no comma", in: "data:image/png;base64", wantErr: true},
		{name: "not base64", in: "data:text/plain,hello", wantErr: true},
		{name: "corrupt payload", in: "data:image/png;base64,!!!", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mimeType, data, err := DecodeDataURL(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidDataURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMIME, mimeType)
			assert.Equal(t, tt.wantData, string(data))
		})
	}
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".jpg", ExtensionFor("image/jpeg"))
	assert.Equal(t, ".png", ExtensionFor("image/png"))
	assert.Equal(t, ".webp", ExtensionFor("image/webp"))
	assert.Equal(t, ".img", ExtensionFor("application/octet-stream"))
}
