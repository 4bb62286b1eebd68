package schedule

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// TermSuffix is the fixed term label of the current dataset; file keys
// are composed as "<level> <course> <TermSuffix>".
const TermSuffix = "КУРС ОСЕНЬ 2025-2026 г"

// DayResultKind classifies what ExtractDay found for a group.
type DayResultKind int

const (
	// DayLessons means the group was located under the day; the lesson
	// list may still be empty (no classes that day).
	DayLessons DayResultKind = iota
	// DayNoData means the group exists in the course's group index but
	// was not located under the requested day.
	DayNoData
	// DayGroupUnknown means the group is absent from both the group
	// index and the requested day.
	DayGroupUnknown
)

// DayResult is the outcome of extracting one day's lessons.
type DayResult struct {
	Kind    DayResultKind
	Lessons []Lesson
}

// Resolver answers schedule lookups against the loaded dataset.
type Resolver struct {
	dataset Dataset
	logger  *logrus.Logger
}

// NewResolver ...
func NewResolver(dataset Dataset, logger *logrus.Logger) *Resolver {
	return &Resolver{
		dataset: dataset,
		logger:  logger,
	}
}

// FileKey composes the dataset key for a (level, course) pair.
func FileKey(level, course string) string {
	return fmt.Sprintf("%s %s %s", level, course, TermSuffix)
}

// Resolve finds the course entry holding the group's schedule. The group
// is accepted either through the entry's group index or, failing that,
// by scanning the schedule table itself: the two can diverge in the
// source data and a group reachable through either is valid. The whole
// course entry is returned so day extraction can reuse it without
// re-resolving.
func (r *Resolver) Resolve(level, course, group string) (*CourseSchedule, bool) {
	key := FileKey(level, course)
	entry, ok := r.dataset[key]
	if !ok {
		r.logger.Debugf("file key %q not found in schedule data", key)
		return nil, false
	}

	for _, name := range entry.Groups {
		if name == group {
			return &entry, true
		}
	}

	for _, faculties := range entry.Days {
		for _, groups := range faculties {
			if _, ok := groups[group]; ok {
				return &entry, true
			}
		}
	}

	r.logger.Debugf("group %q not found in %q", group, key)
	return nil, false
}

// ExtractDay pulls one day's lessons for a group out of a resolved
// course entry. The day's faculties are scanned in name order and the
// first one containing the group wins; duplicate group labels across
// faculties are not expected in well-formed data.
func ExtractDay(entry *CourseSchedule, day, group string) DayResult {
	if entry != nil {
		if faculties, ok := entry.Days[day]; ok {
			names := make([]string, 0, len(faculties))
			for name := range faculties {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				if lessons, ok := faculties[name][group]; ok {
					return DayResult{Kind: DayLessons, Lessons: lessons}
				}
			}
		}
		for _, name := range entry.Groups {
			if name == group {
				return DayResult{Kind: DayNoData}
			}
		}
	}
	return DayResult{Kind: DayGroupUnknown}
}
