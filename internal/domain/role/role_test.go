package role

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := map[string]Role{
		"super_admin": SuperAdmin,
		"OWNER":       Owner,
		" barber ":    Barber,
		"user":        User,
	}
	for in, want := range cases {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
}

func TestParseRejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "admin", "superadmin", "root"} {
		_, err := Parse(in)
		assert.Error(t, err, in)
	}
}

func TestPrincipalIsSuperAdmin(t *testing.T) {
	var nilPrincipal *Principal
	assert.False(t, nilPrincipal.IsSuperAdmin())
	assert.False(t, (&Principal{UserID: 1, Role: Owner}).IsSuperAdmin())
	assert.True(t, (&Principal{UserID: 1, Role: SuperAdmin}).IsSuperAdmin())
}

func TestDashboardAndPublish(t *testing.T) {
	assert.Equal(t, "/dashboard/admin", SuperAdmin.Dashboard())
	assert.Equal(t, "/dashboard/user", User.Dashboard())
	assert.True(t, Barber.CanPublish())
	assert.True(t, Owner.CanPublish())
	assert.False(t, User.CanPublish())
	assert.False(t, SuperAdmin.CanPublish())
}
