package role

import "fmt"

// Role is an organizational role. The set of valid roles is closed:
// every role a user can register with is listed below, anything else
// is rejected at the boundary.
type Role string

const (
	Admin                 Role = "Admin"
	Manager               Role = "Manager"
	DeputyGeneralManager  Role = "Deputy General Manager"
	GeneralManager        Role = "General Manager"
	AddlGeneralManagerOM  Role = "Addl. General Manager (Operations & Maintenance)"
	AssistantManager      Role = "Assistant Manager"
	Executive             Role = "Executive"
	JuniorEngineer        Role = "Junior Engineer"
	StationController     Role = "Station Controller"
	Apprentice            Role = "Apprentice"
	AddlSectionEngineerPT Role = "Additional Section Engineer (Power & Traction)"
	ExecutiveCivilWater   Role = "Executive (Civil) – Water Transport"
	ExecutiveMarine       Role = "Executive (Marine)"
	SafetyOfficer         Role = "Safety Officer"
	FinanceOfficer        Role = "Finance Officer"
	HRExecutive           Role = "HR Executive"
)

// known is the single source of truth for valid roles.
var known = map[Role]struct{}{
	Admin:                 {},
	Manager:               {},
	DeputyGeneralManager:  {},
	GeneralManager:        {},
	AddlGeneralManagerOM:  {},
	AssistantManager:      {},
	Executive:             {},
	JuniorEngineer:        {},
	StationController:     {},
	Apprentice:            {},
	AddlSectionEngineerPT: {},
	ExecutiveCivilWater:   {},
	ExecutiveMarine:       {},
	SafetyOfficer:         {},
	FinanceOfficer:        {},
	HRExecutive:           {},
}

// senior roles have document authority: upload, grant, delete any document.
var senior = map[Role]struct{}{
	Admin:                {},
	Manager:              {},
	DeputyGeneralManager: {},
	GeneralManager:       {},
	AddlGeneralManagerOM: {},
	AssistantManager:     {},
}

// Parse validates a raw role string against the known set.
func Parse(s string) (Role, error) {
	r := Role(s)
	if _, ok := known[r]; !ok {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Known reports whether s names a valid role.
func Known(s string) bool {
	_, ok := known[Role(s)]
	return ok
}

// IsSenior reports whether the role carries senior document authority.
// Unknown roles are treated as standard, never an error.
func (r Role) IsSenior() bool {
	_, ok := senior[r]
	return ok
}

func (r Role) String() string { return string(r) }

// All returns every known role. Order is unspecified.
func All() []Role {
	list := make([]Role, 0, len(known))
	for r := range known {
		list = append(list, r)
	}
	return list
}
