package updater

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/vipowerus/timetable/internal/schedule"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

const timetableHTML = `
<html><body>
<table class="time-table">
<tr><th>День</th><th>Факультет</th><th>Группа</th><th>Время</th><th>Предмет</th><th>Аудитория</th><th>Преподаватель</th></tr>
<tr><td>Вторник</td><td>ФПМИ</td><td>Б05-401</td><td>0900 - 1025</td><td>Математический анализ</td><td>513</td><td>Иванов И.И.</td></tr>
<tr><td>Вторник</td><td>ФПМИ</td><td>Б05-401</td><td>1030 - 1155</td><td>Общая физика</td><td>202</td><td>Петров П.П.</td></tr>
<tr><td>Среда</td><td>ФПМИ</td><td>Б05-402</td><td>0900 - 1025</td><td>Информатика</td><td>107</td><td>Не указано</td></tr>
<tr><td></td><td></td><td></td><td></td><td></td><td></td><td></td></tr>
</table>
</body></html>`

func TestParseCourse(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(timetableHTML))
	if err != nil {
		t.Fatal(err)
	}
	entry := ParseCourse(doc)

	if len(entry.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %v", entry.Groups)
	}
	if entry.Groups["0"] != "Б05-401" || entry.Groups["1"] != "Б05-402" {
		t.Errorf("unexpected group index: %v", entry.Groups)
	}

	lessons := entry.Days["Вторник"]["ФПМИ"]["Б05-401"]
	if len(lessons) != 2 {
		t.Fatalf("expected 2 lessons on Tuesday, got %+v", lessons)
	}
	if lessons[0].Subject != "Математический анализ" || lessons[0].Time != "0900 - 1025" {
		t.Errorf("unexpected first lesson: %+v", lessons[0])
	}
	if lessons[1].Subject != "Общая физика" {
		t.Errorf("unexpected second lesson: %+v", lessons[1])
	}

	if len(entry.Days["Среда"]["ФПМИ"]["Б05-402"]) != 1 {
		t.Errorf("expected one Wednesday lesson, got %+v", entry.Days["Среда"])
	}
}

func TestWithinWindow(t *testing.T) {
	u := New(&Config{StartHour: 7, EndHour: 23}, testLogger())

	at := func(hour int) time.Time {
		return time.Date(2025, 9, 1, hour, 30, 0, 0, time.UTC)
	}
	if u.withinWindow(at(3)) {
		t.Error("03:30 must be outside the window")
	}
	if !u.withinWindow(at(7)) {
		t.Error("07:30 must be inside the window")
	}
	if !u.withinWindow(at(23)) {
		t.Error("23:30 must be inside the window")
	}
}

func TestWriteDatasetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schedules.json")

	dataset := schedule.Dataset{
		schedule.FileKey("бакалавриат", "1"): {
			Groups: map[string]string{"0": "Б05-401"},
			Days: map[string]map[string]map[string][]schedule.Lesson{
				"Вторник": {"ФПМИ": {"Б05-401": {{Time: "0900 - 1025", Subject: "Матан"}}}},
			},
		},
	}
	if err := writeDataset(path, dataset); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var loaded schedule.Dataset
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatal(err)
	}
	entry, ok := loaded[schedule.FileKey("бакалавриат", "1")]
	if !ok || entry.Groups["0"] != "Б05-401" {
		t.Errorf("round trip lost data: %+v", loaded)
	}

	// no temp file left behind
	matches, _ := filepath.Glob(filepath.Join(dir, ".*"))
	if len(matches) != 0 {
		t.Errorf("expected no leftover temp files, got %v", matches)
	}
}

func TestRunRequiresSources(t *testing.T) {
	u := New(NewConfig(), testLogger())
	if err := u.Run(); err == nil {
		t.Error("expected an error with no sources configured")
	}
}
