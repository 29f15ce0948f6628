//go:build !integration

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogEntry_WithField(t *testing.T) {
	entry := &LogEntry{Tool: "calculate-delivery"}

	got := entry.WithField("zip_code", "43004").WithField("trucks", 2).WithField("zip_code", "43215")

	assert.Same(t, entry, got)
	assert.Equal(t, map[string]any{"zip_code": "43215", "trucks": 2}, entry.Fields)
}

func TestLogEntry_WithFields(t *testing.T) {
	tests := []struct {
		name   string
		start  map[string]any
		fields map[string]any
		want   map[string]any
	}{
		{
			name:   "allocates on first use",
			fields: map[string]any{"sku_count": 2},
			want:   map[string]any{"sku_count": 2},
		},
		{
			name:   "merges and overwrites",
			start:  map[string]any{"zip_code": "43004", "outcome_detail": "cached"},
			fields: map[string]any{"zip_code": "43215"},
			want:   map[string]any{"zip_code": "43215", "outcome_detail": "cached"},
		},
		{
			name: "nothing to add leaves fields unset",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &LogEntry{Fields: tt.start}

			assert.Same(t, entry, entry.WithFields(tt.fields))
			if tt.want == nil {
				assert.Nil(t, entry.Fields)
			} else {
				assert.Equal(t, tt.want, entry.Fields)
			}
		})
	}

	t.Run("does not alias the caller's map", func(t *testing.T) {
		fields := map[string]any{"zip_code": "43004"}
		entry := (&LogEntry{}).WithFields(fields)

		fields["zip_code"] = "changed"

		assert.Equal(t, "43004", entry.Fields["zip_code"])
	})
}
