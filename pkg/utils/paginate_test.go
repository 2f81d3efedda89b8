package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampLimitOffset(t *testing.T) {
	cases := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{"defaults on zero", 0, 0, DefaultLimit, 0},
		{"negative limit", -5, 10, DefaultLimit, 10},
		{"capped at max", 1000, 0, MaxLimit, 0},
		{"negative offset", 20, -1, 20, 0},
		{"passthrough", 20, 40, 20, 40},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			limit, offset := ClampLimitOffset(tc.limit, tc.offset)
			assert.Equal(t, tc.wantLimit, limit)
			assert.Equal(t, tc.wantOffset, offset)
		})
	}
}
