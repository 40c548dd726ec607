// Package planner 是排课组合引擎：时间区间与冲突检测、整组/自由两种选课模式、
// 同日重叠课组的分列布局、按选课顺序分配颜色，以及课表的编码与还原。
//
// 包内只有纯内存计算，不做 I/O，也不持有锁；一个 State 只应由一个调用方使用。
//
// 属性测试（区间对称、冲突原子性、布局分列完整、编解码往返、追加选课不改变已有颜色）
// 位于 planner_property_test.go，需带 property 标签运行，CI 中应同时执行：
//
//	go test ./...
//	go test -tags property ./internal/planner/...
package planner
