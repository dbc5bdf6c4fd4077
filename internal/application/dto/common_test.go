package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/luxymarbre/devis-api/internal/application/dto"
)

func TestDefaultPage(t *testing.T) {
	cases := []struct {
		in, want dto.PageRequest
	}{
		{dto.PageRequest{}, dto.PageRequest{Limit: 20}},
		{dto.PageRequest{Limit: 500, Offset: 10}, dto.PageRequest{Limit: 100, Offset: 10}},
		{dto.PageRequest{Limit: -3, Offset: -1}, dto.PageRequest{Limit: 20}},
		{dto.PageRequest{Limit: 5}, dto.PageRequest{Limit: 5}},
	}
	for _, tc := range cases {
		got := tc.in
		got.DefaultPage()
		assert.Equal(t, tc.want, got)
	}
}
