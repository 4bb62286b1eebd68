package schedule

// Lesson is one class slot as it appears in the schedule dataset.
// Time keeps the source format "HHMM - HHMM"; the formatter reshapes it.
type Lesson struct {
	Time      string `json:"time"`
	Subject   string `json:"subject"`
	Classroom string `json:"classroom,omitempty"`
	Teacher   string `json:"teacher,omitempty"`
}

// FacultyInfo describes one faculty inside the registration structure.
type FacultyInfo struct {
	FullName string   `json:"full_name"`
	Groups   []string `json:"groups"`
}

// Hierarchy is the registration structure: level -> course -> faculty short
// code. Group names are only unique within their faculty.
type Hierarchy map[string]map[string]map[string]FacultyInfo

// CourseSchedule is one course-term entry of the schedule dataset.
// Groups maps internal indices to group names; Days maps
// day -> faculty -> group -> lessons. A group may appear in Groups
// without any lessons under Days, that is a valid state.
type CourseSchedule struct {
	Groups map[string]string                         `json:"groups"`
	Days   map[string]map[string]map[string][]Lesson `json:"schedule"`
}

// Dataset maps file keys ("<level> <course> <term suffix>") to course entries.
type Dataset map[string]CourseSchedule
