package octconnect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPickString(t *testing.T) {
	local, global, empty := "local", "global", ""
	assert.Equal(t, "cli", pickString("cli", &local, &global))
	assert.Equal(t, "local", pickString("", &local, &global))
	assert.Equal(t, "global", pickString("", &empty, &global))
	assert.Equal(t, "global", pickString("", nil, &global))
	assert.Equal(t, "", pickString("", nil, nil))
}

func TestPickBool(t *testing.T) {
	yes, no := true, false
	assert.True(t, pickBool(true, &no, &no))
	assert.False(t, pickBool(false, &no, &yes))
	assert.True(t, pickBool(false, nil, &yes))
	assert.False(t, pickBool(false, nil, nil))
}
