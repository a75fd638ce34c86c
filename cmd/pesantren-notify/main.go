package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Abraxas-365/pesantren-notify/config"
	"github.com/Abraxas-365/pesantren-notify/logx"
)

var (
	envFile  string
	logLevel string
	cfg      *config.AppConfig
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pesantren-notify",
		Short:         "WhatsApp notifications and auto-replies for pesantren administration",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(envFile)
			if err != nil {
				return err
			}
			if logLevel != "" {
				loaded.Log.Level = logLevel
			}
			cfg = loaded
			return logx.Configure(cfg.Log)
		},
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load (missing is fine)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log.level (trace, debug, info, warn, error, off)")

	root.AddCommand(
		newServeCmd(),
		newSendCmd(),
		newNotifyCmd(),
		newTemplatesCmd(),
		newVerifyNumberCmd(),
		newTokenCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logx.Error("%s", err)
		os.Exit(1)
	}
}
