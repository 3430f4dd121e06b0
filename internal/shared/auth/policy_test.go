package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedRoleMatrix(t *testing.T) {
	cases := []struct {
		op   Operation
		role int
		want bool
	}{
		{OpUsersList, RoleAdmin, true},
		{OpUsersList, RoleManager, false},
		{OpUsersList, RoleDriver, false},

		{OpReferenceRead, RoleManager, true},
		{OpReferenceWrite, RoleManager, false},

		// truck writes are shared with managers; the truck list is not
		{OpTrucksRead, RoleManager, false},
		{OpTrucksRead, RoleAdmin, true},
		{OpTrucksWrite, RoleManager, true},
		{OpTrucksWrite, RoleAdmin, true},
		{OpTrucksWrite, RoleDriver, false},

		{OpShipmentsCreate, RoleManager, true},
		{OpShipmentsCreate, RoleDriver, false},
		{OpShipmentsList, RoleManager, false},
		{OpShipmentsReports, RoleAdmin, true},

		// state transitions are an admin/manager operation; drivers only
		// report positions
		{OpShipmentStatesAdvance, RoleAdmin, true},
		{OpShipmentStatesAdvance, RoleManager, true},
		{OpShipmentStatesAdvance, RoleDriver, false},
		{OpShipmentStatesRead, RoleAdmin, true},
		{OpShipmentStatesRead, RoleManager, true},
		{OpShipmentStatesRead, RoleDriver, false},

		// the client list and client deletion are admin-only; lookups and
		// writes are shared with managers
		{OpClientsList, RoleAdmin, true},
		{OpClientsList, RoleManager, false},
		{OpClientsRead, RoleManager, true},
		{OpClientsWrite, RoleManager, true},
		{OpClientsDelete, RoleManager, false},
		{OpClientsDelete, RoleAdmin, true},

		{OpCargosWrite, RoleManager, false},
		{OpCargosRead, RoleManager, true},

		{OpLocationPush, RoleDriver, true},
		{OpLocationPush, RoleAdmin, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Allowed(tc.op, tc.role, false),
			"%s role=%d", tc.op, tc.role)
	}
}

func TestAllowedSelfAccess(t *testing.T) {
	// a driver may read and update its own user record
	assert.False(t, Allowed(OpUsersGet, RoleDriver, false))
	assert.True(t, Allowed(OpUsersGet, RoleDriver, true))
	assert.True(t, Allowed(OpUsersUpdate, RoleDriver, true))

	// selfMatch never widens operations without AllowSelf
	assert.False(t, Allowed(OpUsersList, RoleDriver, true))
	assert.False(t, Allowed(OpTrucksWrite, RoleDriver, true))
}

func TestAllowedUnknownOperation(t *testing.T) {
	assert.False(t, Allowed(Operation("nonsense"), RoleAdmin, false))
	assert.False(t, Allowed(Operation("nonsense"), RoleAdmin, true))
}
