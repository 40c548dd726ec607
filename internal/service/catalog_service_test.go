package service

import (
	"context"
	"errors"
	"testing"

	"github.com/RoySegal1/Calander-V1/internal/dto"
	"github.com/RoySegal1/Calander-V1/internal/model"
)

func boolPtr(b bool) *bool { return &b }

// ── ListCourses 测试 ──

func TestCatalogService_ListCourses_WithGeneral(t *testing.T) {
	env := setupTestEnv()

	courses, err := env.svc.Catalog.ListCourses(context.Background(), &dto.ListCoursesRequest{Department: "מדעי המחשב"})
	if err != nil {
		t.Fatalf("期望成功，实际: %v", err)
	}
	// 缺失的通识院系 "כללי" 被忽略
	if len(courses) != 3 {
		t.Fatalf("期望 3 门课程（含通识），实际: %d", len(courses))
	}
	if courses[2].CourseCode != "EN100" {
		t.Errorf("通识课程应追加在末尾，实际: %s", courses[2].CourseCode)
	}
}

func TestCatalogService_ListCourses_WithoutGeneral(t *testing.T) {
	env := setupTestEnv()

	courses, err := env.svc.Catalog.ListCourses(context.Background(), &dto.ListCoursesRequest{
		Department:     "מדעי המחשב",
		GeneralCourses: boolPtr(false),
	})
	if err != nil {
		t.Fatalf("期望成功，实际: %v", err)
	}
	if len(courses) != 2 {
		t.Errorf("期望 2 门课程，实际: %d", len(courses))
	}
}

func TestCatalogService_ListCourses_TypeFilter(t *testing.T) {
	env := setupTestEnv()
	env.depts.depts["מדעי המחשב"].Data[1].CourseType = "בחירה"

	courses, err := env.svc.Catalog.ListCourses(context.Background(), &dto.ListCoursesRequest{
		Department:     "מדעי המחשב",
		GeneralCourses: boolPtr(false),
		CourseType:     "בחירה",
	})
	if err != nil {
		t.Fatalf("期望成功，实际: %v", err)
	}
	if len(courses) != 1 || courses[0].CourseCode != "CS102" {
		t.Errorf("类型过滤结果错误: %+v", courses)
	}
}

func TestCatalogService_ListCourses_DepartmentNotFound(t *testing.T) {
	env := setupTestEnv()

	_, err := env.svc.Catalog.ListCourses(context.Background(), &dto.ListCoursesRequest{Department: "פיזיקה"})
	if !errors.Is(err, ErrCatalogDepartmentNotFound) {
		t.Errorf("期望 ErrCatalogDepartmentNotFound，实际: %v", err)
	}
}

func TestCatalogService_ListCourses_BlankDepartment(t *testing.T) {
	env := setupTestEnv()

	_, err := env.svc.Catalog.ListCourses(context.Background(), &dto.ListCoursesRequest{Department: "   "})
	if !errors.Is(err, ErrCatalogDepartmentInvalid) {
		t.Errorf("期望 ErrCatalogDepartmentInvalid，实际: %v", err)
	}
}

// ── 缓存 ──

func TestCatalogService_CacheBackfillAndHit(t *testing.T) {
	env := setupTestEnv()
	req := &dto.ListCoursesRequest{Department: "מדעי המחשב", GeneralCourses: boolPtr(false)}

	if _, err := env.svc.Catalog.ListCourses(context.Background(), req); err != nil {
		t.Fatalf("期望成功，实际: %v", err)
	}
	if !env.cache.has(catalogCachePrefix + "מדעי המחשב") {
		t.Fatal("首次读取后应回填缓存")
	}
	gets := env.depts.gets

	if _, err := env.svc.Catalog.ListCourses(context.Background(), req); err != nil {
		t.Fatalf("期望成功，实际: %v", err)
	}
	if env.depts.gets != gets {
		t.Errorf("缓存命中时不应查库，查库次数 %d → %d", gets, env.depts.gets)
	}
}

func TestCatalogService_CacheFailureFallsBackToDB(t *testing.T) {
	env := setupTestEnv()
	env.cache.failGet = true

	courses, err := env.svc.Catalog.ListCourses(context.Background(), &dto.ListCoursesRequest{
		Department:     "מדעי המחשב",
		GeneralCourses: boolPtr(false),
	})
	if err != nil {
		t.Fatalf("缓存故障应降级为读库，实际: %v", err)
	}
	if len(courses) != 2 {
		t.Errorf("期望 2 门课程，实际: %d", len(courses))
	}
}

// ── LoadCatalog 测试 ──

func TestCatalogService_LoadCatalog_SkipsInvalidGroups(t *testing.T) {
	env := setupTestEnv()
	data := &env.depts.depts["מדעי המחשב"].Data
	(*data)[0].Groups = append((*data)[0].Groups,
		group("9", 0, 1, "12:00", "11:00"),  // 开始晚于结束
		group("10", 0, 6, "09:00", "10:00"), // 星期六
		group("11", 0, 1, "abc", "10:00"),
	)

	cat, err := env.svc.Catalog.LoadCatalog(context.Background(), "מדעי המחשב", true)
	if err != nil {
		t.Fatalf("期望成功，实际: %v", err)
	}
	if cat.Len() != 3 {
		t.Errorf("期望 3 门课程，实际: %d", cat.Len())
	}
	course, ok := cat.Course("CS101")
	if !ok {
		t.Fatal("CS101 应存在")
	}
	if len(course.Sessions) != 4 {
		t.Errorf("违约课组应被跳过，期望 4 个课组，实际: %d", len(course.Sessions))
	}
}

// ── ImportDepartment 测试 ──

func TestCatalogService_ImportDepartment_InvalidatesCache(t *testing.T) {
	env := setupTestEnv()
	ctx := context.Background()
	key := catalogCachePrefix + "מדעי המחשב"

	if _, err := env.svc.Catalog.LoadCatalog(ctx, "מדעי המחשב", false); err != nil {
		t.Fatalf("期望成功，实际: %v", err)
	}
	if !env.cache.has(key) {
		t.Fatal("应已缓存")
	}

	resp, err := env.svc.Catalog.ImportDepartment(ctx, &dto.ImportDepartmentRequest{
		DepartmentName: " מדעי המחשב ",
		Courses: []model.CatalogCourse{
			catalogCourse("CS200", "Algorithms",
				group("1", 0, 0, "10:00", "12:00"),
				group("2", 0, 0, "12:00", "10:00"),
			),
		},
	})
	if err != nil {
		t.Fatalf("期望成功，实际: %v", err)
	}
	if env.cache.has(key) {
		t.Error("导入后应清除缓存")
	}
	if resp.DepartmentName != "מדעי המחשב" || resp.Courses != 1 || resp.Groups != 2 {
		t.Errorf("导入结果错误: %+v", resp)
	}
	if len(resp.Skipped) != 1 || resp.Skipped[0].GroupCode != "2" {
		t.Errorf("应报告 1 个被跳过的课组，实际: %+v", resp.Skipped)
	}

	cat, err := env.svc.Catalog.LoadCatalog(ctx, "מדעי המחשב", false)
	if err != nil {
		t.Fatalf("期望成功，实际: %v", err)
	}
	if _, ok := cat.Course("CS200"); !ok || cat.Len() != 1 {
		t.Error("导入后应读到新目录")
	}
}

func TestCatalogService_ImportDepartment_Empty(t *testing.T) {
	env := setupTestEnv()

	_, err := env.svc.Catalog.ImportDepartment(context.Background(), &dto.ImportDepartmentRequest{DepartmentName: "x"})
	if !errors.Is(err, ErrCatalogEmpty) {
		t.Errorf("期望 ErrCatalogEmpty，实际: %v", err)
	}
}

func TestCatalogService_ListDepartments(t *testing.T) {
	env := setupTestEnv()

	depts, err := env.svc.Catalog.ListDepartments(context.Background())
	if err != nil {
		t.Fatalf("期望成功，实际: %v", err)
	}
	if len(depts) != 2 {
		t.Fatalf("期望 2 个院系，实际: %d", len(depts))
	}
	var general int
	for _, d := range depts {
		if d.IsGeneral {
			general++
		}
	}
	if general != 1 {
		t.Errorf("期望 1 个通识院系，实际: %d", general)
	}
}
