package llm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Rahul-1611/AEROCARBON/internal/llm"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"plain fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"leading prose", "Here is the result:\n```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"trailing prose", "```json\n{\"a\": 1}\n```\nLet me know if you need more.", `{"a": 1}`},
		{"whitespace", "  \n{\"a\": 1}\n  ", `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, llm.ExtractJSON(tt.in))
		})
	}
}
