package navigation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"

	constants "github.com/vipowerus/timetable/internal"
	"github.com/vipowerus/timetable/internal/schedule"
	"github.com/vipowerus/timetable/internal/session"
)

// GroupsPerPage is the pagination window of the group menu.
const GroupsPerPage = 10

// searchResultLimit caps how many matches a group search renders.
const searchResultLimit = 10

// Days are the selectable weekdays, in display order.
var Days = []string{"Понедельник", "Вторник", "Среда", "Четверг", "Пятница", "Суббота"}

// Engine is the navigation state machine. Given a user's selection
// state and an incoming action it computes the next state and the next
// screen; transport concerns stay outside.
type Engine struct {
	store    *schedule.Store
	resolver *schedule.Resolver
	sessions *session.Store
	logger   *logrus.Logger
}

// New ...
func New(store *schedule.Store, resolver *schedule.Resolver, sessions *session.Store, logger *logrus.Logger) *Engine {
	return &Engine{
		store:    store,
		resolver: resolver,
		sessions: sessions,
		logger:   logger,
	}
}

// Start renders the welcome screen for a user.
func (e *Engine) Start(userID int64) Screen {
	e.sessions.Get(userID)
	return mainMenuScreen(constants.WelcomeMessage)
}

// HandleAction routes a structured action (callback data) to the
// handler for its kind. Any structured action leaves search mode.
func (e *Engine) HandleAction(userID int64, data string) Screen {
	sel := e.sessions.Get(userID)
	act := parseAction(data)
	if act.kind != kindSearch {
		sel.SearchMode = false
	}

	switch act.kind {
	case kindMainMenu:
		return mainMenuScreen(constants.MainMenuMessage)
	case kindRegister:
		return e.levelScreen()
	case kindLevel:
		return e.selectLevel(sel, act.arg)
	case kindCourse:
		return e.selectCourse(sel, act.arg)
	case kindFaculty:
		return e.selectFaculty(sel, act.arg)
	case kindNextPage:
		groups := e.store.Groups(sel.Level, sel.Course, sel.Faculty)
		if (sel.GroupPage+1)*GroupsPerPage < len(groups) {
			sel.GroupPage++
		}
		return e.groupScreen(sel)
	case kindPrevPage:
		if sel.GroupPage > 0 {
			sel.GroupPage--
		}
		return e.groupScreen(sel)
	case kindPageInfo, kindBackToGroups:
		return e.groupScreen(sel)
	case kindGroup:
		return e.selectGroup(sel, act.arg)
	case kindSearch:
		return e.searchPrompt(sel)
	case kindViewSchedule:
		return e.dayMenu(sel)
	case kindDay:
		return e.dayView(sel, act.arg)
	case kindInfo:
		return e.infoScreen()
	}

	e.logger.Debugf("unknown action %q from user %d", data, userID)
	return mainMenuScreen(constants.UseMenuMessage)
}

// HandleText routes a free-text message. Outside search mode free text
// is not an error, it degrades to a menu prompt.
func (e *Engine) HandleText(userID int64, text string) Screen {
	sel := e.sessions.Get(userID)
	if !sel.SearchMode {
		return Screen{Text: constants.UseMenuMessage}
	}
	return e.searchGroups(sel, strings.TrimSpace(text))
}

func mainMenuScreen(text string) Screen {
	return Screen{
		Text: text,
		Keyboard: [][]Option{
			row(opt("🎓 Регистрация", ActionRegister)),
			row(opt("📅 Посмотреть расписание", ActionViewSchedule)),
			row(opt("ℹ️ Информация", ActionInfo)),
		},
	}
}

func (e *Engine) levelScreen() Screen {
	levels := e.store.Levels()
	if len(levels) == 0 {
		return Screen{
			Text:     constants.NoDataMessage,
			Keyboard: [][]Option{row(opt("🔙 Главное меню", ActionMainMenu))},
		}
	}

	var keyboard [][]Option
	for _, level := range levels {
		keyboard = append(keyboard, row(opt("🎓 "+levelName(level), prefixLevel+level)))
	}
	keyboard = append(keyboard, row(opt("🔙 Назад", ActionMainMenu)))
	return Screen{Text: constants.SelectLevelMessage, Keyboard: keyboard}
}

func (e *Engine) selectLevel(sel *session.Selection, level string) Screen {
	courses := e.store.Courses(level)
	if len(courses) == 0 {
		return e.levelScreen()
	}
	sel.Level = level

	var keyboard [][]Option
	for _, course := range courses {
		label := fmt.Sprintf("Курс %s (%d групп)", course.ID, course.GroupCount)
		keyboard = append(keyboard, row(opt(label, prefixCourse+course.ID)))
	}
	keyboard = append(keyboard, row(opt("🔙 Назад", ActionRegister)))

	text := fmt.Sprintf("🎓 *Уровень: %s*\n\nВыберите ваш курс:", levelName(level))
	return Screen{Text: text, Keyboard: keyboard}
}

func (e *Engine) selectCourse(sel *session.Selection, course string) Screen {
	if sel.Level == "" {
		return registrationRequiredScreen()
	}
	faculties := e.store.Faculties(sel.Level, course)
	if len(faculties) == 0 {
		return e.selectLevel(sel, sel.Level)
	}
	sel.Course = course

	var keyboard [][]Option
	for _, faculty := range faculties {
		label := fmt.Sprintf("%s (%d групп)", faculty.Short, faculty.GroupCount)
		keyboard = append(keyboard, row(opt(label, prefixFaculty+faculty.Short)))
	}
	keyboard = append(keyboard, row(opt("🔙 Назад", prefixLevel+sel.Level)))

	text := fmt.Sprintf("🎓 *Уровень:* %s\n📚 *Курс:* %s\n\nВыберите ваш факультет:",
		levelName(sel.Level), course)
	return Screen{Text: text, Keyboard: keyboard}
}

// selectFaculty stores the faculty and always restarts pagination, even
// when the same faculty is picked again.
func (e *Engine) selectFaculty(sel *session.Selection, faculty string) Screen {
	if sel.Level == "" || sel.Course == "" {
		return registrationRequiredScreen()
	}
	if e.store.Groups(sel.Level, sel.Course, faculty) == nil {
		return e.selectCourse(sel, sel.Course)
	}
	sel.Faculty = faculty
	sel.GroupPage = 0
	return e.groupScreen(sel)
}

func (e *Engine) groupScreen(sel *session.Selection) Screen {
	groups := e.store.Groups(sel.Level, sel.Course, sel.Faculty)
	if groups == nil {
		return registrationRequiredScreen()
	}

	start := sel.GroupPage * GroupsPerPage
	if start >= len(groups) {
		sel.GroupPage = 0
		start = 0
	}
	end := start + GroupsPerPage
	if end > len(groups) {
		end = len(groups)
	}
	totalPages := (len(groups) + GroupsPerPage - 1) / GroupsPerPage

	var keyboard [][]Option
	for _, group := range groups[start:end] {
		keyboard = append(keyboard, row(opt("📚 "+group, prefixGroup+group)))
	}

	var nav []Option
	if sel.GroupPage > 0 {
		nav = append(nav, opt("⬅️ Назад", ActionPrevPage))
	}
	if len(groups) > GroupsPerPage {
		nav = append(nav, opt(fmt.Sprintf("📄 Страница %d/%d", sel.GroupPage+1, totalPages), ActionPageInfo))
	}
	if end < len(groups) {
		nav = append(nav, opt("➡️ Вперед", ActionNextPage))
	}
	if len(nav) > 0 {
		keyboard = append(keyboard, nav)
	}
	keyboard = append(keyboard, row(opt("🔍 Поиск группы", ActionSearch)))
	keyboard = append(keyboard, row(opt("🔙 Назад", prefixCourse+sel.Course)))

	facultyFull, _ := e.store.FacultyName(sel.Level, sel.Course, sel.Faculty)
	text := fmt.Sprintf("🎓 *Уровень:* %s\n📚 *Курс:* %s\n🏫 *Факультет:* %s (%s)\n\n👥 *Группы:* %d всего\n\nВыберите вашу группу:",
		levelName(sel.Level), sel.Course, sel.Faculty, facultyFull, len(groups))
	return Screen{Text: text, Keyboard: keyboard}
}

func (e *Engine) selectGroup(sel *session.Selection, group string) Screen {
	if sel.Level == "" || sel.Course == "" {
		return registrationRequiredScreen()
	}
	sel.Group = group

	facultyFull, _ := e.store.FacultyName(sel.Level, sel.Course, sel.Faculty)
	text := fmt.Sprintf("✅ Регистрация завершена!\n\n🎓 Уровень: %s\n📚 Курс: %s\n🏫 Факультет: %s (%s)\n👥 Группа: %s\n\nТеперь вы можете посмотреть расписание.",
		levelName(sel.Level), sel.Course, sel.Faculty, facultyFull, group)
	return Screen{
		Text: text,
		Keyboard: [][]Option{
			row(opt("📅 Посмотреть расписание", ActionViewSchedule)),
			row(opt("🔄 Изменить регистрацию", ActionRegister)),
			row(opt("🏠 Главное меню", ActionMainMenu)),
		},
	}
}

func (e *Engine) searchPrompt(sel *session.Selection) Screen {
	if e.store.Groups(sel.Level, sel.Course, sel.Faculty) == nil {
		return registrationRequiredScreen()
	}
	sel.SearchMode = true
	return Screen{
		Text:     constants.SearchPromptMessage,
		Keyboard: [][]Option{row(opt("🔙 Назад к выбору группы", ActionBackToGroups))},
	}
}

func (e *Engine) searchGroups(sel *session.Selection, query string) Screen {
	groups := e.store.Groups(sel.Level, sel.Course, sel.Faculty)
	if groups == nil {
		sel.SearchMode = false
		return registrationRequiredScreen()
	}

	lowered := strings.ToLower(query)
	var results []string
	for _, group := range groups {
		if strings.Contains(strings.ToLower(group), lowered) {
			results = append(results, group)
		}
	}

	if len(results) == 0 {
		return Screen{
			Text:     fmt.Sprintf(constants.SearchNoResultsFmt, query),
			Keyboard: [][]Option{row(opt("🔙 Назад к выбору группы", ActionBackToGroups))},
		}
	}

	var keyboard [][]Option
	shown := results
	if len(shown) > searchResultLimit {
		shown = shown[:searchResultLimit]
	}
	for _, group := range shown {
		keyboard = append(keyboard, row(opt("📚 "+group, prefixGroup+group)))
	}
	keyboard = append(keyboard, row(opt("🔙 Назад к поиску", ActionSearch)))

	return Screen{
		Text:     fmt.Sprintf(constants.SearchResultsFmt, query, len(results)),
		Keyboard: keyboard,
	}
}

func (e *Engine) dayMenu(sel *session.Selection) Screen {
	if !sel.Registered() {
		return registrationRequiredScreen()
	}

	var keyboard [][]Option
	for _, day := range Days {
		keyboard = append(keyboard, row(opt("📅 "+day, prefixDay+day)))
	}
	keyboard = append(keyboard, row(opt("🔙 Главное меню", ActionMainMenu)))

	text := fmt.Sprintf("📅 *Расписание*\n\n%s\n\nВыберите день недели:", e.selectionInfo(sel))
	return Screen{Text: text, Keyboard: keyboard}
}

func (e *Engine) dayView(sel *session.Selection, day string) Screen {
	if !sel.Registered() {
		return registrationRequiredScreen()
	}

	var body string
	if sel.Group == "" {
		body = constants.NoGroupSelected
	} else if entry, ok := e.resolver.Resolve(sel.Level, sel.Course, sel.Group); ok {
		body = schedule.FormatDay(schedule.ExtractDay(entry, day, sel.Group), day)
	} else {
		body = constants.ScheduleNotLoaded
	}

	message := fmt.Sprintf("📅 *Расписание на %s*\n%s\n\n%s", day, e.selectionInfo(sel), body)
	parts := schedule.SplitMessage(message, schedule.MessageLimit)

	return Screen{
		Text: parts[0],
		Keyboard: [][]Option{
			row(opt("🔙 Выбрать другой день", ActionViewSchedule)),
			row(opt("🏠 Главное меню", ActionMainMenu)),
		},
		More: parts[1:],
	}
}

func (e *Engine) infoScreen() Screen {
	text := fmt.Sprintf("ℹ️ *Информация о боте*\n\n🎓 *Бот расписания МФТИ*\n\n📊 *Доступные данные:*\n• Всего групп: %d\n\n🔧 *Функции:*\n• Регистрация с выбором уровня, курса, факультета и группы\n• Просмотр расписания по дням\n• Поиск группы и пагинация",
		e.store.TotalGroups())
	return Screen{
		Text:     text,
		Keyboard: [][]Option{row(opt("🔙 Главное меню", ActionMainMenu))},
	}
}

func (e *Engine) selectionInfo(sel *session.Selection) string {
	info := fmt.Sprintf("🎓 *Уровень:* %s\n📚 *Курс:* %s", levelName(sel.Level), sel.Course)
	if sel.Faculty != "" {
		if full, ok := e.store.FacultyName(sel.Level, sel.Course, sel.Faculty); ok {
			info += fmt.Sprintf("\n🏫 *Факультет:* %s (%s)", sel.Faculty, full)
		} else {
			info += fmt.Sprintf("\n🏫 *Факультет:* %s", sel.Faculty)
		}
	}
	group := sel.Group
	if group == "" {
		group = "Не выбрана"
	}
	return info + fmt.Sprintf("\n👥 *Группа:* %s", group)
}

func registrationRequiredScreen() Screen {
	return Screen{
		Text:     constants.RegistrationRequired,
		Keyboard: [][]Option{row(opt("🎓 Зарегистрироваться", ActionRegister))},
	}
}

// levelName renders a level identifier for display ("бакалавриат" ->
// "Бакалавриат").
func levelName(level string) string {
	runes := []rune(level)
	if len(runes) == 0 {
		return level
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
