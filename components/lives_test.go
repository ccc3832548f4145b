package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLivesData_Lose(t *testing.T) {
	tests := []struct {
		name      string
		remaining int
		wantLeft  bool
		wantAfter int
	}{
		{"three to two", 3, true, 2},
		{"last life", 1, false, 0},
		{"already out", 0, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := LivesData{Remaining: tt.remaining, Start: 3}
			assert.Equal(t, tt.wantLeft, l.Lose())
			assert.Equal(t, tt.wantAfter, l.Remaining)
		})
	}
}
