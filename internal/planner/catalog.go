package planner

// Course 目录中的一门课程
type Course struct {
	ID         string
	Name       string
	Term       string
	Category   string
	Department string
	Sessions   []Session
}

// Session 按编号查找课组
func (c *Course) Session(id SessionID) (Session, bool) {
	for _, s := range c.Sessions {
		if s.ID == id {
			return s, true
		}
	}
	return Session{}, false
}

// SessionByCode 按原始编号查找课组
func (c *Course) SessionByCode(code string) (Session, bool) {
	return c.Session(ParseSessionID(code))
}

// BaseGroup 返回同一基础组下的全部课组（讲座 + 练习）
func (c *Course) BaseGroup(base string) []Session {
	var out []Session
	for _, s := range c.Sessions {
		if s.ID.Base == base {
			out = append(out, s)
		}
	}
	return out
}

// Catalog 按课程编号索引的只读目录
type Catalog struct {
	courses map[string]*Course
	order   []string
}

// NewCatalog 构建目录；重复编号以先出现者为准
func NewCatalog(courses []Course) *Catalog {
	cat := &Catalog{courses: make(map[string]*Course, len(courses))}
	for i := range courses {
		c := courses[i]
		if _, dup := cat.courses[c.ID]; dup {
			continue
		}
		cat.courses[c.ID] = &c
		cat.order = append(cat.order, c.ID)
	}
	return cat
}

// Course 按编号查找课程
func (cat *Catalog) Course(id string) (*Course, bool) {
	if cat == nil {
		return nil, false
	}
	c, ok := cat.courses[id]
	return c, ok
}

// Courses 按加载顺序返回全部课程
func (cat *Catalog) Courses() []*Course {
	if cat == nil {
		return nil
	}
	out := make([]*Course, 0, len(cat.order))
	for _, id := range cat.order {
		out = append(out, cat.courses[id])
	}
	return out
}

// Len 课程数量
func (cat *Catalog) Len() int {
	if cat == nil {
		return 0
	}
	return len(cat.order)
}
