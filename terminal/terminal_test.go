package terminal

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"blockfall/board"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackLines(t *testing.T) {
	snap := board.NewTestBoard(board.J).Snapshot()

	want := make([]string, 21)
	empty := strings.Repeat("  ", 10)
	for i := range want {
		want[i] = empty
	}
	blueCell := "\x1b[7m\x1b[34m[]\x1b[0m"
	// J at the spawn position occupies (0,5) (1,5) (2,4) (2,5)
	want[0] = strings.Repeat("  ", 5) + blueCell + strings.Repeat("  ", 4)
	want[1] = want[0]
	want[2] = strings.Repeat("  ", 4) + blueCell + blueCell + strings.Repeat("  ", 4)

	got := stackLines(snap)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("want %v, got %v", want, got)
	}
}

func TestGameOverLine(t *testing.T) {
	b := board.NewTestBoard(board.J)
	line := gameOverLine(b.Snapshot())
	assert.Equal(t, strings.TrimSpace(line), "")

	over := b.Snapshot()
	over.Status.GameOver = true
	assert.Contains(t, gameOverLine(over), "Game over")
	assert.Len(t, gameOverLine(over), len(line))
}

func TestLayoutRendersStatus(t *testing.T) {
	tp, err := loadTemplate()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tp.Execute(&buf, board.NewTestBoard(board.O).Snapshot()))

	out := buf.String()
	assert.Contains(t, out, "Level: 1")
	assert.Contains(t, out, "Score: 0")
	// 21 board rows plus borders and captions
	assert.GreaterOrEqual(t, strings.Count(out, "\r\n"), 24)
}
