package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/RoySegal1/Calander-V1/config"
	"github.com/RoySegal1/Calander-V1/internal/planner"
	"github.com/RoySegal1/Calander-V1/pkg/jwt"
)

const catalogJSON = `[
  {"courseCode": "CS101", "courseName": "Intro", "groups": [
    {"groupCode": "1", "lectureType": 0, "startTime": "9:00", "endTime": "11:00", "dayOfWeek": 1},
    {"groupCode": "1/1", "lectureType": 1, "startTime": "10:00", "endTime": "12:00", "dayOfWeek": 1},
    {"groupCode": "bad", "lectureType": 0, "startTime": "12:00", "endTime": "11:00", "dayOfWeek": 1}
  ]}
]`

const scheduleJSON = `[
  {"courseCode": "CS101", "groups": ["1", "1/1", "9"]},
  {"courseCode": "GONE", "groups": ["1"]}
]`

func init() {
	color.NoColor = true
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("写入 %s 失败: %v", name, err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := New()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestEncode(t *testing.T) {
	cat := writeFile(t, "courses.json", catalogJSON)
	sched := writeFile(t, "schedule.json", scheduleJSON)

	out, errOut, err := run(t, "encode", "--catalog", cat, "--schedule", sched)
	if err != nil {
		t.Fatalf("期望成功，实际: %v", err)
	}

	var encoded []planner.EncodedCourse
	if err := json.Unmarshal([]byte(out), &encoded); err != nil {
		t.Fatalf("输出不是合法 JSON: %v (%s)", err, out)
	}
	if len(encoded) != 1 || len(encoded[0].SessionIDs) != 2 {
		t.Errorf("规范化结果错误: %+v", encoded)
	}
	if !strings.Contains(errOut, "dropped course GONE") || !strings.Contains(errOut, "dropped group CS101/9") {
		t.Errorf("应报告丢弃的引用，实际: %q", errOut)
	}
	if !strings.Contains(errOut, "skipped catalog group CS101/bad") {
		t.Errorf("应报告违约课组，实际: %q", errOut)
	}
}

func TestLayout(t *testing.T) {
	cat := writeFile(t, "courses.json", catalogJSON)
	sched := writeFile(t, "schedule.json", scheduleJSON)

	out, _, err := run(t, "layout", "--catalog", cat, "--schedule", sched)
	if err != nil {
		t.Fatalf("期望成功，实际: %v", err)
	}
	for _, want := range []string{"Sunday", "Monday", "Friday", "CS101 Intro", "1/2", "2/2", "09:00-11:00"} {
		if !strings.Contains(out, want) {
			t.Errorf("输出应包含 %q:\n%s", want, out)
		}
	}
}

func TestLayout_MissingFlags(t *testing.T) {
	if _, _, err := run(t, "layout"); err == nil {
		t.Error("缺少 --catalog/--schedule 应失败")
	}
}

func TestToken(t *testing.T) {
	cfgPath := writeFile(t, "config.yaml", "auth:\n  jwt_secret: test-secret-0123456789\n")

	out, _, err := run(t, "token", "--student", "42", "--config", cfgPath)
	if err != nil {
		t.Fatalf("期望成功，实际: %v", err)
	}

	mgr := jwt.NewManager(&config.AuthConfig{JWTSecret: "test-secret-0123456789"})
	claims, err := mgr.ParseToken(strings.TrimSpace(out))
	if err != nil {
		t.Fatalf("签发的 Token 无法解析: %v", err)
	}
	if claims.StudentID != "42" || claims.Role != jwt.RoleStudent {
		t.Errorf("Claims 错误: %+v", claims)
	}
}

func TestNearestAttr(t *testing.T) {
	if got := nearestAttr(planner.DefaultPalette[2].Base); got != color.FgYellow && got != color.FgHiYellow {
		t.Errorf("amber 应映射为黄色，实际: %v", got)
	}
}
