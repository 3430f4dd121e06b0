package auth

// Role type ids match the user_types reference table.
const (
	RoleAdmin   = 1
	RoleManager = 2
	RoleDriver  = 3
)

// Operation names one guarded API operation.
type Operation string

const (
	OpUsersList   Operation = "users.list"
	OpUsersGet    Operation = "users.get"
	OpUsersUpdate Operation = "users.update"
	OpUsersDelete Operation = "users.delete"

	OpReferenceRead  Operation = "reference.read"
	OpReferenceWrite Operation = "reference.write"

	OpTrucksRead  Operation = "trucks.read"
	OpTrucksWrite Operation = "trucks.write"

	OpCentersRead  Operation = "centers.read"
	OpCentersWrite Operation = "centers.write"

	OpClientsList   Operation = "clients.list"
	OpClientsRead   Operation = "clients.read"
	OpClientsWrite  Operation = "clients.write"
	OpClientsDelete Operation = "clients.delete"

	OpShipmentsList    Operation = "shipments.list"
	OpShipmentsRead    Operation = "shipments.read"
	OpShipmentsCreate  Operation = "shipments.create"
	OpShipmentsManage  Operation = "shipments.manage"
	OpShipmentsReports Operation = "shipments.reports"

	OpShipmentStatesRead    Operation = "shipmentstates.read"
	OpShipmentStatesAdvance Operation = "shipmentstates.advance"

	OpCargosRead  Operation = "cargos.read"
	OpCargosWrite Operation = "cargos.write"

	OpLocationPush Operation = "location.push"
)

// Rule lists the roles allowed to perform an operation. AllowSelf extends
// the rule to the user acting on its own record.
type Rule struct {
	Roles     []int
	AllowSelf bool
}

// policy is the single authorization table: (role, operation) -> allow.
// Handlers and use cases contain no role checks of their own.
var policy = map[Operation]Rule{
	OpUsersList:   {Roles: []int{RoleAdmin}},
	OpUsersGet:    {Roles: []int{RoleAdmin}, AllowSelf: true},
	OpUsersUpdate: {Roles: []int{RoleAdmin}, AllowSelf: true},
	OpUsersDelete: {Roles: []int{RoleAdmin}, AllowSelf: true},

	OpReferenceRead:  {Roles: []int{RoleAdmin, RoleManager}},
	OpReferenceWrite: {Roles: []int{RoleAdmin}},

	OpTrucksRead:  {Roles: []int{RoleAdmin}},
	OpTrucksWrite: {Roles: []int{RoleAdmin, RoleManager}},

	OpCentersRead:  {Roles: []int{RoleAdmin, RoleManager}},
	OpCentersWrite: {Roles: []int{RoleAdmin}},

	OpClientsList:   {Roles: []int{RoleAdmin}},
	OpClientsRead:   {Roles: []int{RoleAdmin, RoleManager}},
	OpClientsWrite:  {Roles: []int{RoleAdmin, RoleManager}},
	OpClientsDelete: {Roles: []int{RoleAdmin}},

	OpShipmentsList:    {Roles: []int{RoleAdmin}},
	OpShipmentsRead:    {Roles: []int{RoleAdmin, RoleManager}},
	OpShipmentsCreate:  {Roles: []int{RoleAdmin, RoleManager}},
	OpShipmentsManage:  {Roles: []int{RoleAdmin, RoleManager}},
	OpShipmentsReports: {Roles: []int{RoleAdmin}},

	OpShipmentStatesRead:    {Roles: []int{RoleAdmin, RoleManager}},
	OpShipmentStatesAdvance: {Roles: []int{RoleAdmin, RoleManager}},

	OpCargosRead:  {Roles: []int{RoleAdmin, RoleManager}},
	OpCargosWrite: {Roles: []int{RoleAdmin}},

	OpLocationPush: {Roles: []int{RoleDriver}},
}

// Allowed reports whether the role may perform the operation. selfMatch is
// true when the acting user is the subject of the request (e.g. updating its
// own user record).
func Allowed(op Operation, role int, selfMatch bool) bool {
	rule, ok := policy[op]
	if !ok {
		return false
	}
	if rule.AllowSelf && selfMatch {
		return true
	}
	for _, r := range rule.Roles {
		if r == role {
			return true
		}
	}
	return false
}
