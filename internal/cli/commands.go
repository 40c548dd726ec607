// Package cli 实现离线排课工具 planctl：读取本地目录与课表文件，
// 打印布局、规范化编码，以及签发开发用 Token。
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/RoySegal1/Calander-V1/internal/dto"
	"github.com/RoySegal1/Calander-V1/internal/model"
	"github.com/RoySegal1/Calander-V1/internal/planner"
	"github.com/RoySegal1/Calander-V1/internal/service"
)

// options 各子命令共享的参数
type options struct {
	catalogPath  string
	schedulePath string
	mode         string
	selectedOnly bool
	configPath   string
}

// New 创建根命令
func New() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "planctl",
		Short: "Offline tools for the course schedule planner.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config.yaml")

	addLayout(cmd, opts)
	addEncode(cmd, opts)
	addToken(cmd, opts)
	return cmd
}

func addInputFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVar(&opts.catalogPath, "catalog", "", "catalog JSON file (array of courses)")
	cmd.Flags().StringVar(&opts.schedulePath, "schedule", "", "encoded schedule JSON file")
	cmd.Flags().StringVar(&opts.mode, "mode", string(planner.ModeBundled), "selection mode: bundled | free_form")
	_ = cmd.MarkFlagRequired("catalog")
	_ = cmd.MarkFlagRequired("schedule")
}

// loadInputs 读取目录与课表文件并解码为选课状态
func loadInputs(opts *options) (*planner.Catalog, *planner.State, planner.DecodeReport, []dto.SkippedGroup, error) {
	var courses []model.CatalogCourse
	if err := readJSON(opts.catalogPath, &courses); err != nil {
		return nil, nil, planner.DecodeReport{}, nil, err
	}
	var encoded []planner.EncodedCourse
	if err := readJSON(opts.schedulePath, &encoded); err != nil {
		return nil, nil, planner.DecodeReport{}, nil, err
	}
	mode, err := planner.ParseMode(opts.mode, planner.ModeBundled)
	if err != nil {
		return nil, nil, planner.DecodeReport{}, nil, err
	}

	cat, skipped := service.CatalogFromCourses(courses)
	st, report := planner.Decode(encoded, cat, mode)
	return cat, st, report, skipped, nil
}

func readJSON(path string, dst interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取 %s 失败: %w", path, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("解析 %s 失败: %w", path, err)
	}
	return nil
}
