package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/RoySegal1/Calander-V1/internal/dto"
	"github.com/RoySegal1/Calander-V1/internal/planner"
)

func saveReq(name string) *dto.SaveScheduleRequest {
	return &dto.SaveScheduleRequest{
		ScheduleName: name,
		ScheduleData: []planner.EncodedCourse{
			{CourseID: "CS101", SessionIDs: []string{"1", "1/1"}},
		},
	}
}

func TestSavedScheduleService_Save_DefaultName(t *testing.T) {
	env := setupTestEnv()

	resp, err := env.svc.SavedSchedule.Save(context.Background(), "42", saveReq("  "))
	if err != nil {
		t.Fatalf("期望成功，实际: %v", err)
	}
	if resp.ScheduleName != DefaultScheduleName {
		t.Errorf("期望默认名称 %q，实际: %q", DefaultScheduleName, resp.ScheduleName)
	}
	if len(resp.ShareCode) != 8 {
		t.Errorf("分享码应为 8 位，实际: %q", resp.ShareCode)
	}
	if len(resp.ScheduleData) != 1 || resp.ScheduleData[0].CourseID != "CS101" {
		t.Errorf("课表数据错误: %+v", resp.ScheduleData)
	}
}

func TestSavedScheduleService_Save_InvalidData(t *testing.T) {
	env := setupTestEnv()

	cases := []*dto.SaveScheduleRequest{
		{},
		{ScheduleData: []planner.EncodedCourse{{CourseID: "", SessionIDs: []string{"1"}}}},
		{ScheduleData: []planner.EncodedCourse{{CourseID: "CS101"}}},
		{ScheduleData: []planner.EncodedCourse{{CourseID: "CS101", SessionIDs: []string{" "}}}},
	}
	for i, req := range cases {
		if _, err := env.svc.SavedSchedule.Save(context.Background(), "42", req); !errors.Is(err, ErrScheduleInvalidData) {
			t.Errorf("用例 %d: 期望 ErrScheduleInvalidData，实际: %v", i, err)
		}
	}
}

func TestSavedScheduleService_Save_LimitReached(t *testing.T) {
	env := setupTestEnv()
	ctx := context.Background()

	for i := 0; i < env.cfg.Schedule.MaxPerStudent; i++ {
		if _, err := env.svc.SavedSchedule.Save(ctx, "42", saveReq(fmt.Sprintf("s%d", i))); err != nil {
			t.Fatalf("第 %d 次保存失败: %v", i, err)
		}
	}
	_, err := env.svc.SavedSchedule.Save(ctx, "42", saveReq("extra"))
	if !errors.Is(err, ErrScheduleLimitReached) {
		t.Errorf("期望 ErrScheduleLimitReached，实际: %v", err)
	}

	// 其他学生不受影响
	if _, err := env.svc.SavedSchedule.Save(ctx, "43", saveReq("other")); err != nil {
		t.Errorf("其他学生保存应成功，实际: %v", err)
	}
}

func TestSavedScheduleService_Save_RetriesDuplicateShareCode(t *testing.T) {
	env := setupTestEnv()
	env.schedules.dupOnce = true

	if _, err := env.svc.SavedSchedule.Save(context.Background(), "42", saveReq("x")); err != nil {
		t.Fatalf("分享码冲突应重试成功，实际: %v", err)
	}
	if env.schedules.creates != 2 {
		t.Errorf("期望写入 2 次，实际: %d", env.schedules.creates)
	}
}

func TestSavedScheduleService_ListAndGet(t *testing.T) {
	env := setupTestEnv()
	ctx := context.Background()

	first, _ := env.svc.SavedSchedule.Save(ctx, "42", saveReq("first"))
	_, _ = env.svc.SavedSchedule.Save(ctx, "42", saveReq("second"))
	_, _ = env.svc.SavedSchedule.Save(ctx, "99", saveReq("foreign"))

	list, err := env.svc.SavedSchedule.List(ctx, "42")
	if err != nil {
		t.Fatalf("期望成功，实际: %v", err)
	}
	if len(list) != 2 || list[0].ScheduleName != "second" {
		t.Errorf("列表应按创建时间倒序，实际: %+v", list)
	}

	// 任何学生都可按分享码读取
	got, err := env.svc.SavedSchedule.GetByShareCode(ctx, first.ShareCode)
	if err != nil {
		t.Fatalf("期望成功，实际: %v", err)
	}
	if got.ScheduleName != "first" {
		t.Errorf("期望 first，实际: %s", got.ScheduleName)
	}

	if _, err := env.svc.SavedSchedule.GetByShareCode(ctx, "nope"); !errors.Is(err, ErrScheduleNotFound) {
		t.Errorf("期望 ErrScheduleNotFound，实际: %v", err)
	}
}

func TestSavedScheduleService_Delete(t *testing.T) {
	env := setupTestEnv()
	ctx := context.Background()

	saved, _ := env.svc.SavedSchedule.Save(ctx, "42", saveReq("mine"))

	if err := env.svc.SavedSchedule.Delete(ctx, saved.ShareCode, "43"); !errors.Is(err, ErrScheduleNotOwner) {
		t.Errorf("非所有者删除应返回 ErrScheduleNotOwner，实际: %v", err)
	}
	if err := env.svc.SavedSchedule.Delete(ctx, saved.ShareCode, "42"); err != nil {
		t.Fatalf("所有者删除应成功，实际: %v", err)
	}
	if err := env.svc.SavedSchedule.Delete(ctx, saved.ShareCode, "42"); !errors.Is(err, ErrScheduleNotFound) {
		t.Errorf("重复删除应返回 ErrScheduleNotFound，实际: %v", err)
	}
}

func TestNewShareCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := newShareCode(8)
		if len(code) != 8 {
			t.Fatalf("分享码长度错误: %q", code)
		}
		seen[code] = true
	}
	if len(seen) < 99 {
		t.Errorf("分享码重复过多: %d", len(seen))
	}
	if len(newShareCode(0)) != 8 {
		t.Error("非法长度应回退为 8")
	}
}
