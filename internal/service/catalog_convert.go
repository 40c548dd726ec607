package service

import (
	"fmt"

	"github.com/RoySegal1/Calander-V1/internal/dto"
	"github.com/RoySegal1/Calander-V1/internal/model"
	"github.com/RoySegal1/Calander-V1/internal/planner"
)

// ── 目录格式 → 排课引擎类型 ──
//
// 课组的时间、星期在这里解析一次；违约数据（时间无法解析、开始不早于结束、
// 星期超出 0-5）整条跳过并返回跳过明细，调用方负责记录日志。

// toPlannerCourses 转换目录课程
func toPlannerCourses(courses []model.CatalogCourse) ([]planner.Course, []dto.SkippedGroup) {
	out := make([]planner.Course, 0, len(courses))
	var skipped []dto.SkippedGroup

	for _, c := range courses {
		pc := planner.Course{
			ID:         c.CourseCode,
			Name:       c.CourseName,
			Term:       c.Semester,
			Category:   c.CourseType,
			Department: c.Department,
			Sessions:   make([]planner.Session, 0, len(c.Groups)),
		}
		for _, g := range c.Groups {
			s, err := toPlannerSession(g)
			if err != nil {
				skipped = append(skipped, dto.SkippedGroup{
					CourseCode: c.CourseCode,
					GroupCode:  g.GroupCode,
					Reason:     err.Error(),
				})
				continue
			}
			pc.Sessions = append(pc.Sessions, s)
		}
		out = append(out, pc)
	}
	return out, skipped
}

// CatalogFromCourses 由目录格式直接构建排课目录（离线工具使用）
func CatalogFromCourses(courses []model.CatalogCourse) (*planner.Catalog, []dto.SkippedGroup) {
	converted, skipped := toPlannerCourses(courses)
	return planner.NewCatalog(converted), skipped
}

func toPlannerSession(g model.CatalogGroup) (planner.Session, error) {
	if g.GroupCode == "" {
		return planner.Session{}, fmt.Errorf("课组编号为空")
	}
	start, err := planner.ParseClock(g.StartTime)
	if err != nil {
		return planner.Session{}, err
	}
	end, err := planner.ParseClock(g.EndTime)
	if err != nil {
		return planner.Session{}, err
	}
	slot, err := planner.NewInterval(g.DayOfWeek, start, end)
	if err != nil {
		return planner.Session{}, err
	}
	return planner.Session{
		ID:         planner.ParseSessionID(g.GroupCode),
		Kind:       planner.Kind(g.LectureType),
		Slot:       slot,
		Room:       g.Room,
		Instructor: g.Lecturer,
	}, nil
}
