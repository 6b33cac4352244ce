package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framecut/framecut/internal/geometry"
)

func TestParseRect(t *testing.T) {
	tests := []struct {
		input   string
		want    geometry.Rect
		wantErr bool
	}{
		{input: "10,20,300x200", want: geometry.Rect{X: 10, Y: 20, Width: 300, Height: 200}},
		{input: " 0 , 0 , 1x1 ", want: geometry.Rect{X: 0, Y: 0, Width: 1, Height: 1}},
		{input: "10,20", wantErr: true},
		{input: "10,20,300", wantErr: true},
		{input: "10,20,300x", wantErr: true},
		{input: "a,20,300x200", wantErr: true},
		{input: "10,20,0x200", wantErr: true},
		{input: "10,20,300x-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseRect(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
