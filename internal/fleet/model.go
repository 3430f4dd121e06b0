package fleet

import "errors"

// Truck is a fleet vehicle. Driver is the owning user (one truck per
// driver); CenterID is nil while the truck is between centers.
type Truck struct {
	ID        int64    `json:"id"`
	Driver    int64    `json:"driver"`
	Type      int      `json:"type"`
	Model     string   `json:"model"`
	CenterID  *int64   `json:"center_id"`
	IsReady   bool     `json:"is_ready"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// TruckView joins the truck with its catalog type label.
type TruckView struct {
	Truck
	TypeName string `json:"type_name"`
}

// Center is a logistics hub managed by one manager user.
type Center struct {
	ID        int64    `json:"id"`
	Manager   int64    `json:"manager"`
	City      string   `json:"city"`
	Location  string   `json:"location"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

var (
	ErrTruckNotFound  = errors.New("truck not found")
	ErrCenterNotFound = errors.New("center not found")

	// ErrNotADriver means the referenced user is missing or not of the
	// driver role.
	ErrNotADriver = errors.New("driver must be a user of driver type")

	// ErrDriverTaken enforces one truck per driver.
	ErrDriverTaken = errors.New("this driver already has a truck")

	ErrTruckTypeNotFound = errors.New("invalid truck type id provided")

	// ErrNotAManager means the referenced user is missing or not of the
	// manager role.
	ErrNotAManager = errors.New("manager must be a user of manager type")

	// ErrLocationTaken enforces one center per location.
	ErrLocationTaken = errors.New("a center already exists at this location")
)

// IsPreconditionError reports whether err is a reference or uniqueness
// failure (mapped to 400 at the transport layer).
func IsPreconditionError(err error) bool {
	return errors.Is(err, ErrNotADriver) ||
		errors.Is(err, ErrDriverTaken) ||
		errors.Is(err, ErrTruckTypeNotFound) ||
		errors.Is(err, ErrNotAManager) ||
		errors.Is(err, ErrLocationTaken)
}
