package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yeisme/tenantvault/pkg/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the tenantvault HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := app.NewApp(configPath)

		return a.Run()
	},
}

// registerServeCommand 注册服务启动命令.
func registerServeCommand() {
	rootCmd.AddCommand(serveCmd)
}
