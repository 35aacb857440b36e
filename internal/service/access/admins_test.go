package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdmins(t *testing.T) {
	admins := NewAdmins([]string{"owner", ""})

	assert.True(t, admins.IsAdmin("owner"))
	assert.False(t, admins.IsAdmin("customer"))
	assert.False(t, admins.IsAdmin(""))
}
