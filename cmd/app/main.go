package main

import (
	"fmt"
	"os"

	"github.com/humanbelnik/quizroom/core/internal/app"
	"github.com/humanbelnik/quizroom/core/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func main() {
	flags := viper.New()

	root := &cobra.Command{
		Use:          "quizroom",
		Short:        "Real-time multiplayer quiz server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load(flags.GetString("config"))
			return app.Go(cfg, flags.GetBool("verbose"))
		},
	}

	if err := bindFlags(root.Flags(), flags); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func bindFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	fs.StringP("config", "c", "", "path to env file (defaults to ./.env)")
	fs.BoolP("verbose", "v", false, "force debug logging")
	return v.BindPFlags(fs)
}
