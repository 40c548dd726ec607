//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/RoySegal1/Calander-V1/internal/model"
	"github.com/RoySegal1/Calander-V1/internal/repository"
	"github.com/RoySegal1/Calander-V1/pkg/database"
	pkgerrors "github.com/RoySegal1/Calander-V1/pkg/errors"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=postgres password=postgres dbname=calendar_test sslmode=disable TimeZone=Asia/Jerusalem"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	sqlDB, err := testDB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "获取 sql.DB 失败: %v\n", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		fmt.Fprintf(os.Stderr, "执行迁移失败: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func uniqueStudent() string {
	return fmt.Sprintf("it-%d", time.Now().UnixNano())
}

// ═══════════════════════════════════════════════════════════
// Test: 课表上限
// ═══════════════════════════════════════════════════════════

func TestSavedSchedule_CreateIfUnderLimit(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	student := uniqueStudent()
	defer testDB.Where("student_id = ?", student).Delete(&model.SavedSchedule{})

	for i := 0; i < 3; i++ {
		s := &model.SavedSchedule{
			StudentID:    student,
			ScheduleName: fmt.Sprintf("课表 %d", i),
			ScheduleData: model.ScheduleData{{CourseCode: "X", Groups: []string{"L1"}}},
			ShareCode:    fmt.Sprintf("%s-%d", student[len(student)-6:], i),
		}
		created, err := repo.SavedSchedule.CreateIfUnderLimit(ctx, s, 3)
		if err != nil || !created {
			t.Fatalf("第 %d 个课表应写入: created=%v err=%v", i+1, created, err)
		}
	}

	extra := &model.SavedSchedule{StudentID: student, ScheduleName: "多余", ShareCode: student[len(student)-6:] + "-x",
		ScheduleData: model.ScheduleData{{CourseCode: "X", Groups: []string{"L1"}}}}
	created, err := repo.SavedSchedule.CreateIfUnderLimit(ctx, extra, 3)
	if err != nil || created {
		t.Errorf("达到上限后不应写入: created=%v err=%v", created, err)
	}

	list, err := repo.SavedSchedule.ListByStudent(ctx, student)
	if err != nil || len(list) != 3 {
		t.Errorf("期望 3 个课表，实际 %d err=%v", len(list), err)
	}
}

func TestSavedSchedule_ShareCodeRoundTrip(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	student := uniqueStudent()
	code := student[len(student)-8:]

	s := &model.SavedSchedule{
		StudentID:    student,
		ScheduleName: "Unnamed Schedule",
		ScheduleData: model.ScheduleData{{CourseCode: "X", Groups: []string{"L1", "P1"}}},
		ShareCode:    code,
	}
	if _, err := repo.SavedSchedule.CreateIfUnderLimit(ctx, s, 5); err != nil {
		t.Fatalf("写入失败: %v", err)
	}

	got, err := repo.SavedSchedule.GetByShareCode(ctx, code)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if len(got.ScheduleData) != 1 || len(got.ScheduleData[0].Groups) != 2 {
		t.Errorf("JSONB 内容不一致: %+v", got.ScheduleData)
	}

	if err := repo.SavedSchedule.DeleteByShareCode(ctx, code); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if _, err := repo.SavedSchedule.GetByShareCode(ctx, code); !pkgerrors.IsNotFound(err) {
		t.Errorf("删除后期望不存在，实际: %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: 院系目录 Upsert
// ═══════════════════════════════════════════════════════════

func TestDepartmentCourse_Upsert(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	name := "测试院系-" + uniqueStudent()
	defer testDB.Where("department_name = ?", name).Delete(&model.DepartmentCourses{})

	dept := &model.DepartmentCourses{DepartmentName: name, Data: model.CatalogData{{CourseCode: "1"}}}
	if err := repo.DepartmentCourse.Upsert(ctx, dept); err != nil {
		t.Fatalf("首次 Upsert 失败: %v", err)
	}

	dept2 := &model.DepartmentCourses{DepartmentName: name, IsGeneral: true,
		Data: model.CatalogData{{CourseCode: "1"}, {CourseCode: "2"}}}
	if err := repo.DepartmentCourse.Upsert(ctx, dept2); err != nil {
		t.Fatalf("再次 Upsert 失败: %v", err)
	}

	got, err := repo.DepartmentCourse.GetByName(ctx, name)
	if err != nil {
		t.Fatalf("查询失败: %v", err)
	}
	if !got.IsGeneral || len(got.Data) != 2 {
		t.Errorf("Upsert 未覆盖旧数据: %+v", got)
	}
}
