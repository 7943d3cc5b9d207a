package contract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetColorStatus(t *testing.T) {
	// Colors are disabled in tests via NO_COLOR / non-tty, so the label text
	// must come through unchanged.
	tests := []string{
		"Aumentou +25.0%",
		"Reduziu -30.0%",
		"Reduziu -44.0% (possível intervenção cirúrgica)",
		"Estável (+2.0%)",
	}
	for _, status := range tests {
		assert.Contains(t, GetColorStatus(status), strings.TrimSpace(status))
	}
}

func TestTruncateName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		expected string
	}{
		{"short name untouched", "Lesão A", 20, "Lesão A"},
		{"long name truncated", "Lesão Hepática Segmento VII Anterior", 15, "Lesão Hepáti..."},
		{"tiny width untouched", "Lesão Hepática", 3, "Lesão Hepática"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateName(tt.input, tt.maxWidth))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	trues := []string{"yes", "YES", "true", "1"}
	for _, s := range trues {
		v, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.True(t, v)
	}

	falses := []string{"no", "False", "0"}
	for _, s := range falses {
		v, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.False(t, v)
	}

	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}
