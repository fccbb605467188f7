package app_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"pastebridge/internal/app"
)

func TestGenerateCode(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z]+[1-9][0-9]$`)

	t.Run("codes are adjective plus noun plus two digits", func(t *testing.T) {
		for i := 0; i < 200; i++ {
			code := app.GenerateCode()
			assert.Regexp(t, pattern, code)
			assert.LessOrEqual(t, len(code), 32)
		}
	})

	t.Run("codes vary", func(t *testing.T) {
		seen := make(map[string]struct{})
		for i := 0; i < 200; i++ {
			seen[app.GenerateCode()] = struct{}{}
		}
		// 32 adjectives x 32 nouns x 90 numbers; 200 draws should not
		// all collide.
		assert.Greater(t, len(seen), 100)
	})
}
