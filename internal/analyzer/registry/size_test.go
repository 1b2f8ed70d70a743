package registry

import (
	"testing"

	"github.com/docker/go-units"
	"github.com/stretchr/testify/assert"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{bytes: 0, want: "0 B"},
		{bytes: 1, want: "1 B"},
		{bytes: 500, want: "500 B"},
		{bytes: 1023, want: "1023 B"},
		{bytes: 1024, want: "1.00 KB"},
		{bytes: 1536, want: "1.50 KB"},
		{bytes: 2048, want: "2.00 KB"},
		{bytes: 5 * units.MiB, want: "5.00 MB"},
		{bytes: 12*units.MiB + 356*units.KiB, want: "12.35 MB"},
		{bytes: 3 * units.GiB, want: "3.00 GB"},
		{bytes: 2 * units.TiB, want: "2048.00 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSize(tt.bytes))
		})
	}
}
