package model

// Role identifies the kind of actor making a request. Roles are a
// closed set and are always compared exactly; the values below match
// the strings stored in users.role and embedded in JWT role claims.
type Role string

const (
	RoleStudent          Role = "STUDENT"           // may request and cancel own reservations
	RoleBuildingIncharge Role = "BUILDING_INCHARGE" // administers breakout rooms of one building
	RoleProgramOffice    Role = "PROGRAM_OFFICE"    // administers all classroom reservations
)

// ParseRole maps a raw string onto a Role. The boolean reports whether
// the input named a known role; unknown strings never silently match.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStudent, RoleBuildingIncharge, RoleProgramOffice:
		return Role(s), true
	}
	return "", false
}

// String returns the wire representation of the role.
func (r Role) String() string { return string(r) }
