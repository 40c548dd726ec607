package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	_ "time/tzdata"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/RoySegal1/Calander-V1/config"
	"github.com/RoySegal1/Calander-V1/internal/dto"
	"github.com/RoySegal1/Calander-V1/internal/planner"
)

// ── 导出模块业务错误 ──

var (
	ErrExportEmptySelection = errors.New("当前目录下没有可导出的已选课组")
	ErrExportInvalidDate    = errors.New("开始日期格式无效，应为 YYYY-MM-DD")
	ErrExportGenerateFail   = errors.New("生成导出文件失败")
)

// icalLocalFormat 不带 Z 的本地时间，配合 TZID 使用
const icalLocalFormat = "20060102T150405"

var dayNames = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// ExportService 导出业务接口
//
//   - Excel：单个工作表，行为整点（起始小时至结束小时），列为周日至周五，
//     课组写入开始时间所在单元格并以课程浅色填充
//   - iCalendar：每个已选课组一个按周重复的 VEVENT
type ExportService interface {
	ExportXLSX(ctx context.Context, req *dto.ExportRequest) (*bytes.Buffer, string, error)
	ExportICS(ctx context.Context, req *dto.ExportRequest) ([]byte, string, error)
}

type exportService struct {
	cfg     *config.PlannerConfig
	catalog CatalogService
	logger  *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(cfg *config.PlannerConfig, catalog CatalogService, logger *zap.Logger) ExportService {
	return &exportService{cfg: cfg, catalog: catalog, logger: logger}
}

// exportItem 一个待导出的课组
type exportItem struct {
	course  *planner.Course
	session planner.Session
	color   planner.Color
}

// collect 在当前目录下解码选课并按 星期/开始时间/课程 排序
func (s *exportService) collect(ctx context.Context, req *dto.ExportRequest) ([]exportItem, error) {
	cat, err := s.catalog.LoadCatalog(ctx, req.Department, req.IncludeGeneral())
	if err != nil {
		return nil, err
	}

	st, report := planner.Restore(req.SelectedCourses, req.Selection, cat, planner.ModeBundled)
	if !report.Empty() {
		s.logger.Info("导出时丢弃了目录中不存在的引用",
			zap.Strings("courses", report.DroppedCourses),
			zap.Int("groups", len(report.DroppedSessions)),
		)
	}

	colors := planner.AssignColors(st.SelectedCourseIDs(), planner.DefaultPalette)
	var items []exportItem
	for _, id := range st.SelectedCourseIDs() {
		course, _ := cat.Course(id)
		for _, sess := range st.Sessions(id) {
			items = append(items, exportItem{course: course, session: sess, color: planner.ColorOf(colors, id)})
		}
	}
	if len(items) == 0 {
		return nil, ErrExportEmptySelection
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].session.Slot, items[j].session.Slot
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return items[i].course.ID < items[j].course.ID
	})
	return items, nil
}

func exportTitle(req *dto.ExportRequest) string {
	if t := strings.TrimSpace(req.Title); t != "" {
		return t
	}
	return "Schedule"
}

// ═══════════════════════════════════════════════════════════
// ExportXLSX
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportXLSX(ctx context.Context, req *dto.ExportRequest) (*bytes.Buffer, string, error) {
	items, err := s.collect(ctx, req)
	if err != nil {
		return nil, "", err
	}

	// "day:hour" → 该单元格内的课组
	cells := make(map[string][]exportItem)
	firstHour, lastHour := s.cfg.DayStartHour, s.cfg.DayEndHour
	for _, it := range items {
		hour := int(it.session.Slot.Start) / 60
		if hour < firstHour {
			firstHour = hour
		}
		if endHour := (int(it.session.Slot.End) + 59) / 60; endHour > lastHour {
			lastHour = endHour
		}
		key := fmt.Sprintf("%d:%d", it.session.Slot.Day, hour)
		cells[key] = append(cells[key], it)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Schedule"
	idx, _ := f.NewSheet(sheet)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheet, "A", "A", 10)
	f.SetColWidth(sheet, "B", colName(len(dayNames)), 28)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{planner.DefaultPalette[0].Hex()}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheet, "A1", exportTitle(req))
	f.MergeCell(sheet, "A1", cell(colName(len(dayNames)), 1))
	f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	// 表头
	f.SetCellValue(sheet, "A2", "Time")
	for d, name := range dayNames {
		f.SetCellValue(sheet, cell(colName(d+1), 2), name)
	}
	f.SetCellStyle(sheet, "A2", cell(colName(len(dayNames)), 2), headerStyle)

	// 每种课程颜色只创建一次样式
	styles := make(map[string]int)
	styleFor := func(c planner.Color) int {
		if id, ok := styles[c.Name]; ok {
			return id
		}
		id, err := f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Color: []string{c.LightHex()}, Pattern: 1},
			Font:      &excelize.Font{Color: c.Hex()},
			Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
		})
		if err != nil {
			s.logger.Warn("创建单元格样式失败", zap.String("color", c.Name), zap.Error(err))
			return 0
		}
		styles[c.Name] = id
		return id
	}

	row := 3
	for hour := firstHour; hour < lastHour; hour++ {
		f.SetCellValue(sheet, cell("A", row), fmt.Sprintf("%02d:00", hour))
		for d := range dayNames {
			list := cells[fmt.Sprintf("%d:%d", d, hour)]
			if len(list) == 0 {
				continue
			}
			lines := make([]string, 0, len(list))
			for _, it := range list {
				lines = append(lines, cellText(it))
			}
			ref := cell(colName(d+1), row)
			f.SetCellValue(sheet, ref, strings.Join(lines, "\n\n"))
			if id := styleFor(list[0].color); id != 0 {
				f.SetCellStyle(sheet, ref, ref, id)
			}
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, exportTitle(req) + ".xlsx", nil
}

func cellText(it exportItem) string {
	slot := it.session.Slot
	text := fmt.Sprintf("%s (%s)\n%s %s-%s", it.course.Name, it.session.ID, it.session.Kind, slot.Start, slot.End)
	if it.session.Room != "" {
		text += "\n" + it.session.Room
	}
	if it.session.Instructor != "" {
		text += "\n" + it.session.Instructor
	}
	return text
}

// ═══════════════════════════════════════════════════════════
// ExportICS
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportICS(ctx context.Context, req *dto.ExportRequest) ([]byte, string, error) {
	loc, err := time.LoadLocation(s.cfg.Timezone)
	if err != nil {
		s.logger.Warn("时区无效，使用 UTC", zap.String("timezone", s.cfg.Timezone), zap.Error(err))
		loc = time.UTC
	}

	weekStart, err := termWeekStart(req.StartDate, time.Now(), loc)
	if err != nil {
		return nil, "", err
	}

	items, err := s.collect(ctx, req)
	if err != nil {
		return nil, "", err
	}

	weeks := req.Weeks
	if weeks <= 0 {
		weeks = s.cfg.TermWeeks
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Calander-V1//Schedule Export//EN")
	cal.SetXWRCalName(exportTitle(req))
	cal.SetXWRTimezone(loc.String())
	addTimezone(cal, loc, weekStart, weekStart.AddDate(0, 0, 7*weeks))
	tzid := ics.WithTZID(loc.String())

	now := time.Now().UTC()
	for _, it := range items {
		slot := it.session.Slot
		day := weekStart.AddDate(0, 0, slot.Day)
		start := time.Date(day.Year(), day.Month(), day.Day(), int(slot.Start)/60, int(slot.Start)%60, 0, 0, loc)
		end := time.Date(day.Year(), day.Month(), day.Day(), int(slot.End)/60, int(slot.End)%60, 0, 0, loc)

		uid := fmt.Sprintf("%s-%s-%s@calander-v1", it.course.ID, it.session.ID, weekStart.Format("20060102"))
		event := cal.AddEvent(uid)
		event.SetDtStampTime(now)
		// 本地时间加 TZID，夏令时切换后每周重复仍落在同一墙上时间
		event.SetProperty(ics.ComponentPropertyDtStart, start.Format(icalLocalFormat), tzid)
		event.SetProperty(ics.ComponentPropertyDtEnd, end.Format(icalLocalFormat), tzid)
		event.SetSummary(fmt.Sprintf("%s (%s)", it.course.Name, it.session.Kind))
		if it.session.Room != "" {
			event.SetLocation(it.session.Room)
		}
		event.SetDescription(fmt.Sprintf("%s / %s %s", it.course.ID, it.session.ID, it.session.Instructor))
		event.AddRrule(fmt.Sprintf("FREQ=WEEKLY;COUNT=%d", weeks))
	}

	return []byte(cal.Serialize()), exportTitle(req) + ".ics", nil
}

// addTimezone 写入 VTIMEZONE，覆盖 [from, to) 内的每一段时区规则
func addTimezone(cal *ics.Calendar, loc *time.Location, from, to time.Time) {
	tz := cal.AddTimezone(loc.String())
	t := from
	for {
		zoneStart, zoneEnd := t.ZoneBounds()
		name, offset := t.Zone()
		onset, prevOffset := from, offset
		if !zoneStart.IsZero() {
			onset = zoneStart
			_, prevOffset = zoneStart.Add(-time.Second).Zone()
		}

		var obs *ics.ComponentBase
		if t.IsDST() {
			d := &ics.Daylight{}
			tz.Components = append(tz.Components, d)
			obs = &d.ComponentBase
		} else {
			obs = &tz.AddStandard().ComponentBase
		}
		// 规则起点按切换前的偏移书写
		obs.SetProperty(ics.ComponentPropertyDtStart, onset.In(time.FixedZone("", prevOffset)).Format(icalLocalFormat))
		obs.SetProperty(ics.ComponentProperty(ics.PropertyTzoffsetfrom), formatOffset(prevOffset))
		obs.SetProperty(ics.ComponentProperty(ics.PropertyTzoffsetto), formatOffset(offset))
		obs.SetProperty(ics.ComponentProperty(ics.PropertyTzname), name)

		if zoneEnd.IsZero() || !zoneEnd.Before(to) {
			return
		}
		t = zoneEnd
	}
}

// formatOffset 秒数偏移转为 ±HHMM
func formatOffset(seconds int) string {
	return time.Unix(0, 0).In(time.FixedZone("", seconds)).Format("-0700")
}

// termWeekStart 解析开始日期并回退到所在周的周日；为空时取 now 所在周的周日
func termWeekStart(raw string, now time.Time, loc *time.Location) (time.Time, error) {
	var d time.Time
	if strings.TrimSpace(raw) == "" {
		n := now.In(loc)
		d = time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc)
	} else {
		parsed, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(raw), loc)
		if err != nil {
			return time.Time{}, ErrExportInvalidDate
		}
		d = parsed
	}
	return d.AddDate(0, 0, -int(d.Weekday())), nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
