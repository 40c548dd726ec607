package model

import "testing"

func TestScheduleData_ScanValue(t *testing.T) {
	in := ScheduleData{{CourseCode: "X", Groups: []string{"L1", "P1"}}}
	v, err := in.Value()
	if err != nil {
		t.Fatalf("Value 应成功: %v", err)
	}
	if v.(string) != `[{"courseCode":"X","groups":["L1","P1"]}]` {
		t.Errorf("序列化格式错误: %v", v)
	}

	var out ScheduleData
	if err := out.Scan([]byte(v.(string))); err != nil {
		t.Fatalf("Scan 应成功: %v", err)
	}
	if len(out) != 1 || out[0].CourseCode != "X" || len(out[0].Groups) != 2 {
		t.Errorf("解析结果错误: %+v", out)
	}
}

func TestCatalogData_ScanNilAndGarbage(t *testing.T) {
	var d CatalogData
	if err := d.Scan(nil); err != nil || d != nil {
		t.Errorf("NULL 应解析为空，实际 %v %v", d, err)
	}
	if err := d.Scan(42); err == nil {
		t.Error("不支持的类型应返回错误")
	}
	if err := d.Scan("{not json"); err == nil {
		t.Error("非法 JSON 应返回错误")
	}
	if v, _ := CatalogData(nil).Value(); v != "[]" {
		t.Errorf("nil 应序列化为 []，实际 %v", v)
	}
}
