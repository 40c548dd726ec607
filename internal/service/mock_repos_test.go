package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/RoySegal1/Calander-V1/config"
	"github.com/RoySegal1/Calander-V1/internal/model"
	"github.com/RoySegal1/Calander-V1/internal/repository"
	pkgerrors "github.com/RoySegal1/Calander-V1/pkg/errors"
)

// ── Mock DepartmentCourseRepository ──

type mockDeptCourseRepo struct {
	depts map[string]*model.DepartmentCourses
	gets  int
	err   error
}

func newMockDeptCourseRepo() *mockDeptCourseRepo {
	return &mockDeptCourseRepo{depts: make(map[string]*model.DepartmentCourses)}
}

func (m *mockDeptCourseRepo) GetByName(_ context.Context, name string) (*model.DepartmentCourses, error) {
	m.gets++
	if m.err != nil {
		return nil, m.err
	}
	if d, ok := m.depts[name]; ok {
		return d, nil
	}
	return nil, pkgerrors.ErrNotFound
}

func (m *mockDeptCourseRepo) ListByNames(_ context.Context, names []string) ([]model.DepartmentCourses, error) {
	var out []model.DepartmentCourses
	for _, n := range names {
		if d, ok := m.depts[n]; ok {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (m *mockDeptCourseRepo) ListSummaries(_ context.Context) ([]model.DepartmentCourses, error) {
	out := make([]model.DepartmentCourses, 0, len(m.depts))
	for _, d := range m.depts {
		out = append(out, model.DepartmentCourses{ID: d.ID, DepartmentName: d.DepartmentName, IsGeneral: d.IsGeneral, UpdatedAt: d.UpdatedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DepartmentName < out[j].DepartmentName })
	return out, nil
}

func (m *mockDeptCourseRepo) Upsert(_ context.Context, dept *model.DepartmentCourses) error {
	if existing, ok := m.depts[dept.DepartmentName]; ok {
		dept.ID = existing.ID
	} else {
		dept.ID = uint(len(m.depts) + 1)
	}
	dept.UpdatedAt = time.Now()
	m.depts[dept.DepartmentName] = dept
	return nil
}

// ── Mock SavedScheduleRepository ──

type mockSavedScheduleRepo struct {
	schedules []*model.SavedSchedule
	// dupOnce 第一次写入返回 ErrDuplicate，模拟分享码冲突
	dupOnce bool
	creates int
}

func newMockSavedScheduleRepo() *mockSavedScheduleRepo {
	return &mockSavedScheduleRepo{}
}

func (m *mockSavedScheduleRepo) CreateIfUnderLimit(_ context.Context, s *model.SavedSchedule, limit int) (bool, error) {
	m.creates++
	if m.dupOnce {
		m.dupOnce = false
		return false, pkgerrors.ErrDuplicate
	}
	if m.countByStudent(s.StudentID) >= limit {
		return false, nil
	}
	s.ID = uint(len(m.schedules) + 1)
	s.CreatedAt = time.Now().Add(time.Duration(len(m.schedules)) * time.Second)
	m.schedules = append(m.schedules, s)
	return true, nil
}

func (m *mockSavedScheduleRepo) countByStudent(studentID string) int {
	n := 0
	for _, s := range m.schedules {
		if s.StudentID == studentID {
			n++
		}
	}
	return n
}

func (m *mockSavedScheduleRepo) ListByStudent(_ context.Context, studentID string) ([]model.SavedSchedule, error) {
	var out []model.SavedSchedule
	for i := len(m.schedules) - 1; i >= 0; i-- {
		if m.schedules[i].StudentID == studentID {
			out = append(out, *m.schedules[i])
		}
	}
	return out, nil
}

func (m *mockSavedScheduleRepo) GetByShareCode(_ context.Context, code string) (*model.SavedSchedule, error) {
	for _, s := range m.schedules {
		if s.ShareCode == code {
			return s, nil
		}
	}
	return nil, pkgerrors.ErrNotFound
}

func (m *mockSavedScheduleRepo) DeleteByShareCode(_ context.Context, code string) error {
	for i, s := range m.schedules {
		if s.ShareCode == code {
			m.schedules = append(m.schedules[:i], m.schedules[i+1:]...)
			return nil
		}
	}
	return pkgerrors.ErrNotFound
}

// ── Mock CatalogCache ──

type mockCache struct {
	mu      sync.Mutex
	items   map[string][]byte
	failGet bool
}

func newMockCache() *mockCache {
	return &mockCache{items: make(map[string][]byte)}
}

func (c *mockCache) GetJSON(_ context.Context, key string, dst interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return false, errors.New("redis 不可用")
	}
	raw, ok := c.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *mockCache) SetJSON(_ context.Context, key string, v interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.items[key] = raw
	return nil
}

func (c *mockCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.items, k)
	}
	return nil
}

func (c *mockCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok
}

// ── 测试数据 ──

func group(code string, lectureType, day int, start, end string) model.CatalogGroup {
	return model.CatalogGroup{
		GroupCode:   code,
		LectureType: lectureType,
		StartTime:   start,
		EndTime:     end,
		Room:        "R-" + code,
		Lecturer:    "Dr. " + code,
		DayOfWeek:   day,
	}
}

func catalogCourse(code, name string, groups ...model.CatalogGroup) model.CatalogCourse {
	return model.CatalogCourse{
		CourseCode: code,
		CourseName: name,
		Semester:   "א",
		CourseType: "חובה",
		Department: "מדעי המחשב",
		Groups:     groups,
	}
}

// seedCatalog 一个主院系 + 一个通识院系
//
//	CS101: 1 = 周一 9-11 讲座 + 周一 11-12 练习, 2 = 周二 9-11 讲座 + 周二 11-12 练习
//	CS102: 1 = 周一 10-12 讲座（与 CS101 组 1 冲突）, 2 = 周三 10-12 讲座
//	EN100: 1 = 周四 8-10 讲座
func seedCatalog(repo *mockDeptCourseRepo) {
	_ = repo.Upsert(context.Background(), &model.DepartmentCourses{
		DepartmentName: "מדעי המחשב",
		Data: model.CatalogData{
			catalogCourse("CS101", "Intro",
				group("1", 0, 1, "9:00", "11:00"),
				group("1/1", 1, 1, "11:00", "12:00"),
				group("2", 0, 2, "9:00", "11:00"),
				group("2/1", 1, 2, "11:00", "12:00"),
			),
			catalogCourse("CS102", "Data Structures",
				group("1", 0, 1, "10:00", "12:00"),
				group("2", 0, 3, "10:00", "12:00"),
			),
		},
	})
	_ = repo.Upsert(context.Background(), &model.DepartmentCourses{
		DepartmentName: "אנגלית",
		IsGeneral:      true,
		Data: model.CatalogData{
			catalogCourse("EN100", "English",
				group("1", 0, 4, "8:00", "10:00"),
			),
		},
	})
}

func testConfig() *config.Config {
	return &config.Config{
		Planner: config.PlannerConfig{
			DefaultMode:        "bundled",
			DayStartHour:       8,
			DayEndHour:         22,
			PixelsPerMinute:    1,
			UsableWidthPercent: 95,
			MarginPercent:      2.5,
			TermWeeks:          13,
			Timezone:           "Asia/Jerusalem",
		},
		Catalog: config.CatalogConfig{
			GeneralDepartments: []string{"אנגלית", "כללי"},
			CacheTTL:           time.Hour,
		},
		Schedule: config.ScheduleConfig{
			MaxPerStudent:   5,
			ShareCodeLength: 8,
		},
	}
}

type testEnv struct {
	cfg       *config.Config
	depts     *mockDeptCourseRepo
	schedules *mockSavedScheduleRepo
	cache     *mockCache
	svc       *Service
}

func setupTestEnv() *testEnv {
	env := &testEnv{
		cfg:       testConfig(),
		depts:     newMockDeptCourseRepo(),
		schedules: newMockSavedScheduleRepo(),
		cache:     newMockCache(),
	}
	seedCatalog(env.depts)
	repo := &repository.Repository{
		DepartmentCourse: env.depts,
		SavedSchedule:    env.schedules,
	}
	env.svc = NewService(env.cfg, repo, env.cache, zap.NewNop())
	return env
}
