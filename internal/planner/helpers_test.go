package planner

// ── 测试辅助 ──

func sess(code string, kind Kind, day int, start, end string) Session {
	return Session{
		ID:   ParseSessionID(code),
		Kind: kind,
		Slot: Interval{Day: day, Start: MustClock(start), End: MustClock(end)},
	}
}

func course(id string, sessions ...Session) Course {
	return Course{ID: id, Name: "课程 " + id, Sessions: sessions}
}

func sessionCodes(list []Session) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, s.ID.String())
	}
	return out
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
