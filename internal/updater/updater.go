package updater

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/vipowerus/timetable/internal/schedule"
)

// Source is one timetable page to watch; its parsed content is stored
// under FileKey in the dataset.
type Source struct {
	URL     string `toml:"url"`
	FileKey string `toml:"file_key"`
}

// Config ...
type Config struct {
	LogLevel        string   `toml:"log_level"`
	SchedulePath    string   `toml:"schedule_path"`
	IntervalSeconds int      `toml:"interval_seconds"`
	StartHour       int      `toml:"start_hour"`
	EndHour         int      `toml:"end_hour"`
	Sources         []Source `toml:"source"`
}

// NewConfig ...
func NewConfig() *Config {
	return &Config{
		LogLevel:        "info",
		SchedulePath:    "data/correct_schedules.json",
		IntervalSeconds: 3600,
		StartHour:       7,
		EndHour:         23,
	}
}

// Updater periodically re-downloads the source timetables and rewrites
// the schedule dataset file the bot loads at startup.
type Updater struct {
	config       *Config
	logger       *logrus.Logger
	client       *http.Client
	lastModified map[string]string
}

// New ...
func New(config *Config, logger *logrus.Logger) *Updater {
	return &Updater{
		config:       config,
		logger:       logger,
		client:       &http.Client{Timeout: 60 * time.Second},
		lastModified: make(map[string]string),
	}
}

// Run loops forever: within the configured hour window it checks every
// source for changes and rebuilds the dataset when any source moved.
func (u *Updater) Run() error {
	if len(u.config.Sources) == 0 {
		return fmt.Errorf("no sources configured")
	}
	interval := time.Duration(u.config.IntervalSeconds) * time.Second
	u.logger.Infof("updater started: %d sources, interval %v, window %d:00-%d:00",
		len(u.config.Sources), interval, u.config.StartHour, u.config.EndHour)

	for {
		if u.withinWindow(time.Now()) {
			u.runCycle()
		}
		time.Sleep(interval)
	}
}

func (u *Updater) withinWindow(now time.Time) bool {
	h := now.Hour()
	return h >= u.config.StartHour && h <= u.config.EndHour
}

func (u *Updater) runCycle() {
	changed := false
	for _, src := range u.config.Sources {
		if u.sourceChanged(src.URL) {
			changed = true
		}
	}
	if !changed {
		return
	}

	start := time.Now()
	dataset := schedule.Dataset{}
	for _, src := range u.config.Sources {
		entry, err := u.fetchCourse(src.URL)
		if err != nil {
			u.logger.Errorf("error processing %s: %v", src.URL, err)
			continue
		}
		dataset[src.FileKey] = entry
	}

	if len(dataset) == 0 {
		u.logger.Warn("no valid data received, skipping dataset update")
		return
	}
	if err := writeDataset(u.config.SchedulePath, dataset); err != nil {
		u.logger.Errorf("error writing dataset: %v", err)
		return
	}
	u.logger.Infof("dataset updated in %v: %d course files", time.Since(start), len(dataset))
}

// sourceChanged issues a HEAD request and compares Last-Modified with
// the previous cycle. A source never seen before counts as changed.
func (u *Updater) sourceChanged(url string) bool {
	req, err := http.NewRequest(http.MethodHead, url, nil)
	if err != nil {
		u.logger.Errorf("[HEAD] bad url %s: %v", url, err)
		return false
	}
	resp, err := u.client.Do(req)
	if err != nil {
		u.logger.Errorf("[HEAD] request error for %s: %v", url, err)
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		u.logger.Warnf("[HEAD] %s | status %d", url, resp.StatusCode)
		return false
	}

	newLastMod := resp.Header.Get("Last-Modified")
	oldLastMod, seen := u.lastModified[url]
	u.lastModified[url] = newLastMod
	if !seen || newLastMod != oldLastMod {
		u.logger.Infof("[HEAD] %s | update detected (%q -> %q)", url, oldLastMod, newLastMod)
		return true
	}
	return false
}

func (u *Updater) fetchCourse(url string) (schedule.CourseSchedule, error) {
	resp, err := u.client.Get(url)
	if err != nil {
		return schedule.CourseSchedule{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return schedule.CourseSchedule{}, fmt.Errorf("bad status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return schedule.CourseSchedule{}, err
	}
	return ParseCourse(doc), nil
}

// ParseCourse reads a rendered timetable. Each row of table.time-table
// carries day, faculty, group, time, subject, classroom and teacher
// cells; header and malformed rows are skipped.
func ParseCourse(doc *goquery.Document) schedule.CourseSchedule {
	entry := schedule.CourseSchedule{
		Groups: map[string]string{},
		Days:   map[string]map[string]map[string][]schedule.Lesson{},
	}
	seen := map[string]bool{}

	doc.Find("table.time-table tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 7 {
			return
		}
		day := strings.TrimSpace(cells.Eq(0).Text())
		faculty := strings.TrimSpace(cells.Eq(1).Text())
		group := strings.TrimSpace(cells.Eq(2).Text())
		if day == "" || faculty == "" || group == "" {
			return
		}
		lesson := schedule.Lesson{
			Time:      strings.TrimSpace(cells.Eq(3).Text()),
			Subject:   strings.TrimSpace(cells.Eq(4).Text()),
			Classroom: strings.TrimSpace(cells.Eq(5).Text()),
			Teacher:   strings.TrimSpace(cells.Eq(6).Text()),
		}

		if !seen[group] {
			seen[group] = true
			entry.Groups[strconv.Itoa(len(entry.Groups))] = group
		}
		if entry.Days[day] == nil {
			entry.Days[day] = map[string]map[string][]schedule.Lesson{}
		}
		if entry.Days[day][faculty] == nil {
			entry.Days[day][faculty] = map[string][]schedule.Lesson{}
		}
		entry.Days[day][faculty][group] = append(entry.Days[day][faculty][group], lesson)
	})

	return entry
}

// writeDataset replaces the dataset file atomically so the bot never
// reads a partially written file.
func writeDataset(path string, dataset schedule.Dataset) error {
	data, err := json.MarshalIndent(dataset, "", "  ")
	if err != nil {
		return err
	}
	tmp := filepath.Join(filepath.Dir(path), ".schedules.tmp")
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
