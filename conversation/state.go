package conversation

const (
	// DefaultLanguage is used until the user picks one during onboarding.
	DefaultLanguage = "English"

	// ResetThreshold is the number of image reports after which the
	// conversation history is cleared automatically.
	ResetThreshold = 10
)

type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
	RoleModel  Role = "model"
)

// Turn is one role-tagged history entry.
type Turn struct {
	Role    Role
	Content string
}

// State holds one chat's dialogue context. It is a plain value: the caller
// owns persistence and must not run two turns for the same chat concurrently,
// since a second writer would clobber the history appended by the first.
type State struct {
	History       []Turn
	Language      string
	ReportCounter int
}

func NewState() State {
	return State{Language: DefaultLanguage}
}

// ResetPreservingLanguage returns a fresh state that keeps the language
// setting and the report counter. Both /clear and the periodic reset go
// through here; only the history is dropped.
func ResetPreservingLanguage(s State) State {
	next := NewState()
	next.Language = s.Language
	next.ReportCounter = s.ReportCounter
	return next
}

// ShouldReset reports whether the report counter just crossed the automatic
// reset threshold. Callers check it after image turns only, never after
// text-only follow-ups; whether the generation succeeded does not matter.
func ShouldReset(reportCounter int) bool {
	return reportCounter > 0 && reportCounter%ResetThreshold == 0
}
