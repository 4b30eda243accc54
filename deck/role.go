package deck

// Role identifies a card. The string value is the name used on the wire.
type Role string

const (
	StudentPresident  Role = "xue-sheng-hui-zhang"
	HealthMonitor     Role = "bao-jian-wei-yuan"
	Librarian         Role = "tu-shu-wei-yuan"
	DisciplineMonitor Role = "feng-ji-wei-yuan"
	Heiress           Role = "da-xiao-jie"
	Reporter          Role = "xin-wen-bu"
	ClassMonitor      Role = "ban-zhang"
	HonorStudent      Role = "you-deng-sheng"
	Prisoner          Role = "fan-ren"
	Accomplice        Role = "gong-fan"
	Outsider          Role = "wai-xing-ren"
	Infector          Role = "gan-ran-zhe"
	GoHomeClub        Role = "gui-zhai-bu"
)

// Roles lists every role in catalog order
var Roles = []Role{
	StudentPresident,
	HealthMonitor,
	Librarian,
	DisciplineMonitor,
	Heiress,
	Reporter,
	ClassMonitor,
	HonorStudent,
	Prisoner,
	Accomplice,
	Outsider,
	Infector,
	GoHomeClub,
}

var rolePoints = map[Role]int{
	StudentPresident:  3,
	HealthMonitor:     1,
	Librarian:         1,
	DisciplineMonitor: 1,
	Heiress:           1,
	Reporter:          1,
	ClassMonitor:      2,
	HonorStudent:      2,
	Prisoner:          0,
	Accomplice:        0,
	Outsider:          -1,
	Infector:          0,
	GoHomeClub:        0,
}

// good roles win together when the embed pile reaches the threshold
var goodRoles = map[Role]bool{
	StudentPresident:  true,
	HealthMonitor:     true,
	Librarian:         true,
	DisciplineMonitor: true,
	Heiress:           true,
	Reporter:          true,
	ClassMonitor:      true,
	HonorStudent:      true,
}

// Point returns the score a card of this role contributes
func (r Role) Point() int {
	return rolePoints[r]
}

// Good reports whether the role is on the good side
func (r Role) Good() bool {
	return goodRoles[r]
}

// Valid reports whether r is part of the catalog
func (r Role) Valid() bool {
	_, ok := rolePoints[r]
	return ok
}

func (r Role) String() string {
	return string(r)
}
