package navigation

import "strings"

// Action identifiers carried in callback data.
const (
	ActionMainMenu     = "main_menu"
	ActionRegister     = "register"
	ActionViewSchedule = "view_schedule"
	ActionInfo         = "info"
	ActionSearch       = "search_in_groups"
	ActionBackToGroups = "back_to_groups"
	ActionNextPage     = "group_next_page"
	ActionPrevPage     = "group_prev_page"
	ActionPageInfo     = "page_info"

	prefixLevel   = "level_"
	prefixCourse  = "course_"
	prefixFaculty = "faculty_"
	prefixGroup   = "group_"
	prefixDay     = "day_"
)

type actionKind int

const (
	kindUnknown actionKind = iota
	kindMainMenu
	kindRegister
	kindLevel
	kindCourse
	kindFaculty
	kindGroup
	kindNextPage
	kindPrevPage
	kindPageInfo
	kindSearch
	kindBackToGroups
	kindViewSchedule
	kindDay
	kindInfo
)

// action is a parsed user event: a kind plus the identifier it carries.
type action struct {
	kind actionKind
	arg  string
}

// parseAction turns raw callback data into a tagged action. Exact
// identifiers are checked before prefixes so that pagination events are
// not mistaken for a group named "next_page".
func parseAction(data string) action {
	switch data {
	case ActionMainMenu:
		return action{kind: kindMainMenu}
	case ActionRegister:
		return action{kind: kindRegister}
	case ActionViewSchedule:
		return action{kind: kindViewSchedule}
	case ActionInfo:
		return action{kind: kindInfo}
	case ActionSearch:
		return action{kind: kindSearch}
	case ActionBackToGroups:
		return action{kind: kindBackToGroups}
	case ActionNextPage:
		return action{kind: kindNextPage}
	case ActionPrevPage:
		return action{kind: kindPrevPage}
	case ActionPageInfo:
		return action{kind: kindPageInfo}
	}

	switch {
	case strings.HasPrefix(data, prefixLevel):
		return action{kind: kindLevel, arg: strings.TrimPrefix(data, prefixLevel)}
	case strings.HasPrefix(data, prefixCourse):
		return action{kind: kindCourse, arg: strings.TrimPrefix(data, prefixCourse)}
	case strings.HasPrefix(data, prefixFaculty):
		return action{kind: kindFaculty, arg: strings.TrimPrefix(data, prefixFaculty)}
	case strings.HasPrefix(data, prefixGroup):
		return action{kind: kindGroup, arg: strings.TrimPrefix(data, prefixGroup)}
	case strings.HasPrefix(data, prefixDay):
		return action{kind: kindDay, arg: strings.TrimPrefix(data, prefixDay)}
	}
	return action{kind: kindUnknown}
}
