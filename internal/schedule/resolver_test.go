package schedule

import (
	"reflect"
	"testing"
)

func newResolver(dataset Dataset) *Resolver {
	return NewResolver(dataset, testLogger())
}

func sampleDataset() Dataset {
	return Dataset{
		FileKey("бакалавриат", "1"): {
			Groups: map[string]string{"0": "Б05-401", "1": "Б05-402"},
			Days: map[string]map[string]map[string][]Lesson{
				"Вторник": {
					"ФПМИ": {
						"Б05-401": {
							{Time: "0900 - 1025", Subject: "Математический анализ", Classroom: "513", Teacher: "Иванов И.И."},
							{Time: "1355 - 1520", Subject: "Общая физика"},
						},
						"Б05-777": {
							{Time: "1030 - 1155", Subject: "Информатика"},
						},
					},
				},
			},
		},
	}
}

func TestResolveThroughGroupIndex(t *testing.T) {
	r := newResolver(sampleDataset())
	entry, ok := r.Resolve("бакалавриат", "1", "Б05-402")
	if !ok {
		t.Fatal("expected group from index to resolve")
	}
	if len(entry.Days) == 0 {
		t.Error("expected the whole course entry, days missing")
	}
}

// A group reachable only through the schedule table must still resolve:
// the group index and the table can diverge in the source data.
func TestResolveThroughScheduleTable(t *testing.T) {
	r := newResolver(sampleDataset())
	entry, ok := r.Resolve("бакалавриат", "1", "Б05-777")
	if !ok {
		t.Fatal("expected group from schedule table to resolve")
	}
	if entry == nil || entry.Groups["0"] != "Б05-401" {
		t.Error("expected the whole course entry to come back")
	}
}

func TestResolveUnknownCourse(t *testing.T) {
	r := newResolver(sampleDataset())
	if _, ok := r.Resolve("магистратура", "1", "М05-123"); ok {
		t.Error("expected no entry for a course absent from the dataset")
	}
}

func TestResolveUnknownGroup(t *testing.T) {
	r := newResolver(sampleDataset())
	if _, ok := r.Resolve("бакалавриат", "1", "Б05-999"); ok {
		t.Error("expected unknown group not to resolve")
	}
}

func TestResolveIdempotent(t *testing.T) {
	r := newResolver(sampleDataset())
	first, ok1 := r.Resolve("бакалавриат", "1", "Б05-401")
	second, ok2 := r.Resolve("бакалавриат", "1", "Б05-401")
	if !ok1 || !ok2 {
		t.Fatal("expected both calls to resolve")
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("expected structurally identical results")
	}
}

func TestExtractDayLessons(t *testing.T) {
	r := newResolver(sampleDataset())
	entry, _ := r.Resolve("бакалавриат", "1", "Б05-401")

	result := ExtractDay(entry, "Вторник", "Б05-401")
	if result.Kind != DayLessons {
		t.Fatalf("expected lessons, got kind %v", result.Kind)
	}
	if len(result.Lessons) != 2 || result.Lessons[0].Subject != "Математический анализ" {
		t.Errorf("unexpected lessons: %+v", result.Lessons)
	}
}

// A group listed in the course's group index but absent from the
// requested day is a known group without day data, not an unknown one.
func TestExtractDayKnownGroupNoDayData(t *testing.T) {
	r := newResolver(sampleDataset())
	entry, _ := r.Resolve("бакалавриат", "1", "Б05-402")

	result := ExtractDay(entry, "Понедельник", "Б05-402")
	if result.Kind != DayNoData {
		t.Errorf("expected DayNoData, got %v", result.Kind)
	}
}

func TestExtractDayUnknownGroup(t *testing.T) {
	r := newResolver(sampleDataset())
	entry, _ := r.Resolve("бакалавриат", "1", "Б05-401")

	result := ExtractDay(entry, "Понедельник", "Б05-999")
	if result.Kind != DayGroupUnknown {
		t.Errorf("expected DayGroupUnknown, got %v", result.Kind)
	}
	if ExtractDay(nil, "Понедельник", "Б05-401").Kind != DayGroupUnknown {
		t.Error("expected DayGroupUnknown for nil entry")
	}
}

// Empty lesson list under the day is a valid, displayable state.
func TestExtractDayEmptyLessons(t *testing.T) {
	dataset := sampleDataset()
	key := FileKey("бакалавриат", "1")
	entry := dataset[key]
	entry.Days["Понедельник"] = map[string]map[string][]Lesson{
		"ФПМИ": {"Б05-402": {}},
	}
	dataset[key] = entry

	r := newResolver(dataset)
	resolved, _ := r.Resolve("бакалавриат", "1", "Б05-402")
	result := ExtractDay(resolved, "Понедельник", "Б05-402")
	if result.Kind != DayLessons {
		t.Fatalf("expected DayLessons, got %v", result.Kind)
	}
	if len(result.Lessons) != 0 {
		t.Errorf("expected no lessons, got %+v", result.Lessons)
	}
}
