package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RoySegal1/Calander-V1/config"
	"github.com/RoySegal1/Calander-V1/pkg/jwt"
)

func addToken(topLevel *cobra.Command, opts *options) {
	var studentID, role, department string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a development access token signed with the configured secret.",
		Example: `
planctl token --student 42
planctl token --student 1 --role admin --config ./config/config.yaml
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			token, err := jwt.NewManager(&cfg.Auth).GenerateAccessToken(studentID, role, department)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&studentID, "student", "", "student id")
	cmd.Flags().StringVar(&role, "role", jwt.RoleStudent, "role: student | admin")
	cmd.Flags().StringVar(&department, "department", "", "department claim")
	_ = cmd.MarkFlagRequired("student")

	topLevel.AddCommand(cmd)
}
