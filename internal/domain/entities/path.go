package entities

import "fmt"

// LessonStatus is the state of a lesson on the learning path.
type LessonStatus string

const (
	StatusCompleted LessonStatus = "completed"
	StatusAvailable LessonStatus = "available"
	StatusLocked    LessonStatus = "locked"
)

// LessonType is the kind of activity a path lesson contains.
type LessonType string

const (
	TypeLesson     LessonType = "lesson"
	TypeDialog     LessonType = "dialog"
	TypeDrill      LessonType = "drill"
	TypeReview     LessonType = "review"
	TypeCheckpoint LessonType = "checkpoint"
)

// Valid reports whether t is a known lesson type.
func (t LessonType) Valid() bool {
	switch t {
	case TypeLesson, TypeDialog, TypeDrill, TypeReview, TypeCheckpoint:
		return true
	}
	return false
}

// Icon is the enumerated set of unit icons.
type Icon int

const (
	IconBookOpen Icon = iota // fallback
	IconSparkles
	IconUsers
	IconGlobe
	IconHome
	IconHeart
)

var iconNames = [...]string{
	IconBookOpen: "book-open",
	IconSparkles: "sparkles",
	IconUsers:    "users",
	IconGlobe:    "globe",
	IconHome:     "home",
	IconHeart:    "heart",
}

// NumIcons is the number of known icons.
const NumIcons = len(iconNames)

// ParseIcon resolves a content tag. Unknown tags fall back to IconBookOpen.
func ParseIcon(tag string) (Icon, bool) {
	for i, name := range iconNames {
		if name == tag {
			return Icon(i), true
		}
	}
	return IconBookOpen, false
}

func (i Icon) String() string {
	if i < 0 || int(i) >= len(iconNames) {
		return fmt.Sprintf("icon(%d)", int(i))
	}
	return iconNames[i]
}

// MarshalText encodes the icon as its content tag.
func (i Icon) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText decodes a content tag, falling back for unknown ones.
func (i *Icon) UnmarshalText(b []byte) error {
	*i, _ = ParseIcon(string(b))
	return nil
}

// PathLesson is a single step of a path section.
type PathLesson struct {
	ID               string       `json:"id"`
	Title            string       `json:"title"`
	Status           LessonStatus `json:"status"`
	Type             LessonType   `json:"type"`
	ShortGoal        string       `json:"shortGoal"`
	EstimatedMinutes int          `json:"estimatedMinutes"`
	XPReward         int          `json:"xpReward"`
	Stars            *int         `json:"stars,omitempty"`
}

// PathSection is a unit of the learning path.
type PathSection struct {
	ID          int          `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Icon        Icon         `json:"icon"`
	Lessons     []PathLesson `json:"lessons"`
}

// ApplyProgress returns a copy of the path with statuses derived from
// backend progress: completed lessons stay completed, the first other
// lesson in path order becomes available and the rest are locked.
func ApplyProgress(sections []PathSection, progress []LessonProgress) []PathSection {
	done := make(map[string]bool, len(progress))
	for _, p := range progress {
		if p.Status == ProgressCompleted {
			done[p.LessonID] = true
		}
	}

	out := make([]PathSection, len(sections))
	nextOpen := true
	for i, s := range sections {
		s.Lessons = append([]PathLesson(nil), s.Lessons...)
		for j := range s.Lessons {
			l := &s.Lessons[j]
			switch {
			case done[l.ID]:
				l.Status = StatusCompleted
			case nextOpen:
				l.Status = StatusAvailable
				nextOpen = false
			default:
				l.Status = StatusLocked
			}
		}
		out[i] = s
	}

	return out
}

// CountCompleted returns the number of completed lessons on the path.
func CountCompleted(sections []PathSection) int {
	n := 0
	for _, s := range sections {
		for _, l := range s.Lessons {
			if l.Status == StatusCompleted {
				n++
			}
		}
	}
	return n
}

// FindLesson returns the path lesson with the given id.
func FindLesson(sections []PathSection, id string) (PathLesson, bool) {
	for _, s := range sections {
		for _, l := range s.Lessons {
			if l.ID == id {
				return l, true
			}
		}
	}
	return PathLesson{}, false
}

// NextAvailable returns the first available lesson in path order.
func NextAvailable(sections []PathSection) (PathLesson, bool) {
	for _, s := range sections {
		for _, l := range s.Lessons {
			if l.Status == StatusAvailable {
				return l, true
			}
		}
	}
	return PathLesson{}, false
}
