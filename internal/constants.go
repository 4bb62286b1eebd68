package constants

const (
	WelcomeMessage = "🎓 *Добро пожаловать в бот расписания МФТИ!*\n\n" +
		"Этот бот поможет вам быстро найти расписание занятий для вашей группы.\n\n" +
		"📋 *Доступные функции:*\n" +
		"• Регистрация с выбором уровня, курса, факультета и группы\n" +
		"• Просмотр расписания по дням недели\n" +
		"• Быстрый доступ к информации о занятиях\n\n" +
		"Выберите действие:"
	MainMenuMessage      = "🏠 *Главное меню*\n\nВыберите действие:"
	SelectLevelMessage   = "🎓 *Выберите уровень обучения:*\n\nНажмите на соответствующую кнопку ниже:"
	NoDataMessage        = "⚠️ Данные регистрации не загружены. Попробуйте позже."
	RegistrationRequired = "❗ *Необходима регистрация*\n\nСначала необходимо зарегистрироваться и выбрать направление."
	UseMenuMessage       = "🤖 Используйте команду /start для начала работы с ботом или кнопки в меню."
	SearchPromptMessage  = "🔍 *Поиск группы*\n\n" +
		"Введите номер или часть названия группы для поиска.\n" +
		"Пример: '501', 'М05', '404'\n\n" +
		"📝 *Просто введите текст сообщением:*"
	NoGroupSelected   = "❌ Группа не выбрана. Сначала выберите группу в меню регистрации."
	ScheduleNotLoaded = "📭 Расписание не найдено для этой группы\n\n" +
		"ℹ️ *Возможные причины:*\n" +
		"• Расписание для вашего курса еще не загружено\n" +
		"• Проверьте другие дни недели\n" +
		"• Обратитесь к администратору для обновления данных"
	UnspecifiedSentinel = "Не указано"
)

const (
	DayHeaderFmt = "📅 *Расписание на %s:*\n\n"
	NoLessonsFmt = "📭 На %s занятий нет\n\nℹ️ Расписание может быть доступно для других дней недели"
	NoDayDataFmt = "📭 На %s занятий не найдено\n\n" +
		"ℹ️ *Возможные причины:*\n" +
		"• Для вашей группы нет занятий в этот день\n" +
		"• Расписание может быть доступно для других дней\n" +
		"• Проверьте другие дни недели"
	GroupUnknownFmt = "📭 На %s занятий не найдено\n\n" +
		"ℹ️ *Возможные причины:*\n" +
		"• Группа не найдена в расписании\n" +
		"• Проверьте правильность выбранной группы\n" +
		"• Обратитесь к администратору"
	SearchResultsFmt   = "🔍 *Результаты поиска для '%s':*\n\nНайдено: %d групп\n\nВыберите группу:"
	SearchNoResultsFmt = "❌ По запросу '%s' групп не найдено.\n\nПопробуйте другой запрос:"
)
