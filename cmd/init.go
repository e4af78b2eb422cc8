package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ragdoc/ragdoc/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize ragdoc configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure ragdoc and generates a .ragdoc.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
