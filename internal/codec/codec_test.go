package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framecut/framecut/internal/testutil"
)

func TestStd_Decode_Formats(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		format string
	}{
		{"png", testutil.EncodePNG(t, 64, 48), "png"},
		{"jpeg", testutil.EncodeJPEG(t, 64, 48), "jpeg"},
		{"gif", testutil.EncodeGIF(t, 64, 48), "gif"},
		{"webp", testutil.EncodeWebP(t, 64, 48), "webp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := Std{}.Decode(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.format, info.Format)
			assert.Equal(t, 64, info.Width)
			assert.Equal(t, 48, info.Height)
		})
	}
}

func TestStd_Decode_Garbage(t *testing.T) {
	_, err := Std{}.Decode([]byte("not an image at all"))
	require.Error(t, err)

	var codecErr *Error
	require.ErrorAs(t, err, &codecErr)
	assert.Equal(t, "decode", codecErr.Operation)
}

func TestStd_Sample(t *testing.T) {
	assert.NoError(t, Std{}.Sample(testutil.EncodePNG(t, 32, 32)))
}

func TestStd_Sample_TruncatedPayload(t *testing.T) {
	data := testutil.TruncatedPNG(t, 64, 64)

	// The header still decodes...
	info, err := Std{}.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 64, info.Width)

	// ...but the pixel probe does not.
	assert.Error(t, Std{}.Sample(data))
}

func TestFullDecode(t *testing.T) {
	img, format, err := FullDecode(testutil.EncodeJPEG(t, 20, 30))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 20, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())

	_, _, err = FullDecode(nil)
	assert.Error(t, err)
}
