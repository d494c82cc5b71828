package focus

import "strings"

// Direction is a logical navigation request, independent of the key that
// produced it.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
	Next
	Previous
	Home
	PageHome
	End
	PageEnd
)

var directionNames = [...]string{
	Up:       "up",
	Down:     "down",
	Left:     "left",
	Right:    "right",
	Next:     "next",
	Previous: "previous",
	Home:     "home",
	PageHome: "page_home",
	End:      "end",
	PageEnd:  "page_end",
}

// Directions returns every direction in declaration order.
func Directions() []Direction {
	return []Direction{Up, Down, Left, Right, Next, Previous, Home, PageHome, End, PageEnd}
}

// String returns the snake_case name of the direction.
func (d Direction) String() string {
	if d >= 0 && int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "unknown"
}

// ParseDirection maps a name such as "next", "page-home" or "PageEnd" to a
// Direction. "prev" and "back" are accepted for Previous.
func ParseDirection(name string) (Direction, bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.NewReplacer("-", "", "_", "", " ", "").Replace(normalized)
	switch normalized {
	case "prev", "back":
		return Previous, true
	case "pagehome":
		return PageHome, true
	case "pageend":
		return PageEnd, true
	}
	for i, n := range directionNames {
		if n == normalized {
			return Direction(i), true
		}
	}
	return Down, false
}

// policy is the resolution strategy a Direction collapses to.
type policy int

const (
	policyForward policy = iota
	policyBackward
	policyFirst
	policyLast
)

func (d Direction) policy() policy {
	switch d {
	case Up, Left, Previous:
		return policyBackward
	case Home, PageHome:
		return policyFirst
	case End, PageEnd:
		return policyLast
	default:
		return policyForward
	}
}

