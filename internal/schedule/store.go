package schedule

import (
	"encoding/json"
	"os"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Config ...
type Config struct {
	SchedulePath  string `toml:"schedule_path"`
	StructurePath string `toml:"structure_path"`
}

// NewConfig return new initialized struct
func NewConfig() *Config {
	return &Config{
		SchedulePath:  "data/correct_schedules.json",
		StructurePath: "data/registration_structure.json",
	}
}

// Store holds the registration hierarchy and the schedule dataset.
// Both are loaded once and read-only afterwards.
type Store struct {
	config    *Config
	logger    *logrus.Logger
	hierarchy Hierarchy
	dataset   Dataset
}

// CourseOption is a course annotated with the number of groups across
// all of its faculties.
type CourseOption struct {
	ID         string
	GroupCount int
}

// FacultyOption is a faculty annotated for menu display.
type FacultyOption struct {
	Short      string
	FullName   string
	GroupCount int
}

// New ...
func New(config *Config, logger *logrus.Logger) *Store {
	return &Store{
		config:    config,
		logger:    logger,
		hierarchy: Hierarchy{},
		dataset:   Dataset{},
	}
}

// NewFromData builds a store around already loaded structures.
func NewFromData(hierarchy Hierarchy, dataset Dataset, logger *logrus.Logger) *Store {
	return &Store{
		logger:    logger,
		hierarchy: hierarchy,
		dataset:   dataset,
	}
}

// Load reads both JSON resources. A missing or malformed file is logged
// and leaves the corresponding structure empty; menus degrade to
// "no data" instead of the process crashing.
func (s *Store) Load() {
	if err := loadJSON(s.config.StructurePath, &s.hierarchy); err != nil {
		s.logger.Errorf("error loading registration structure: %v", err)
		s.hierarchy = Hierarchy{}
	}
	if err := loadJSON(s.config.SchedulePath, &s.dataset); err != nil {
		s.logger.Errorf("error loading schedule data: %v", err)
		s.dataset = Dataset{}
	}
	s.logger.Infof("schedule store loaded: %d levels, %d course files", len(s.hierarchy), len(s.dataset))
}

func loadJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// Dataset exposes the loaded schedule dataset for the resolver.
func (s *Store) Dataset() Dataset {
	return s.dataset
}

// Levels returns the level identifiers in stable order.
func (s *Store) Levels() []string {
	levels := make([]string, 0, len(s.hierarchy))
	for level := range s.hierarchy {
		levels = append(levels, level)
	}
	sort.Strings(levels)
	return levels
}

// Courses returns the courses of a level, each with the summed group
// count across its faculties.
func (s *Store) Courses(level string) []CourseOption {
	courses, ok := s.hierarchy[level]
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(courses))
	for id := range courses {
		ids = append(ids, id)
	}
	sortCourseIDs(ids)

	result := make([]CourseOption, 0, len(ids))
	for _, id := range ids {
		total := 0
		for _, faculty := range courses[id] {
			total += len(faculty.Groups)
		}
		result = append(result, CourseOption{ID: id, GroupCount: total})
	}
	return result
}

// Faculties returns the faculties of a (level, course) pair.
func (s *Store) Faculties(level, course string) []FacultyOption {
	courses, ok := s.hierarchy[level]
	if !ok {
		return nil
	}
	faculties, ok := courses[course]
	if !ok {
		return nil
	}
	shorts := make([]string, 0, len(faculties))
	for short := range faculties {
		shorts = append(shorts, short)
	}
	sort.Strings(shorts)

	result := make([]FacultyOption, 0, len(shorts))
	for _, short := range shorts {
		info := faculties[short]
		result = append(result, FacultyOption{
			Short:      short,
			FullName:   info.FullName,
			GroupCount: len(info.Groups),
		})
	}
	return result
}

// Groups returns the ordered group list of a faculty, or nil when the
// (level, course, faculty) path does not exist.
func (s *Store) Groups(level, course, faculty string) []string {
	courses, ok := s.hierarchy[level]
	if !ok {
		return nil
	}
	faculties, ok := courses[course]
	if !ok {
		return nil
	}
	info, ok := faculties[faculty]
	if !ok {
		return nil
	}
	return info.Groups
}

// FacultyName returns the full name of a faculty short code.
func (s *Store) FacultyName(level, course, faculty string) (string, bool) {
	courses, ok := s.hierarchy[level]
	if !ok {
		return "", false
	}
	faculties, ok := courses[course]
	if !ok {
		return "", false
	}
	info, ok := faculties[faculty]
	if !ok {
		return "", false
	}
	return info.FullName, true
}

// TotalGroups counts every group reachable through the hierarchy.
func (s *Store) TotalGroups() int {
	total := 0
	for _, courses := range s.hierarchy {
		for _, faculties := range courses {
			for _, info := range faculties {
				total += len(info.Groups)
			}
		}
	}
	return total
}

// sortCourseIDs orders course identifiers numerically where possible
// ("10" after "2"), falling back to lexical order.
func sortCourseIDs(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.Atoi(ids[i])
		b, errB := strconv.Atoi(ids[j])
		if errA == nil && errB == nil {
			return a < b
		}
		return ids[i] < ids[j]
	})
}
