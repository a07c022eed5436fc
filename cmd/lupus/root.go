package main

import (
	"github.com/flat/lupusregina/config"
	"github.com/spf13/cobra"
)

type app struct {
	envFile string
	cfg     *config.Config
}

func (a *app) envFiles() []string {
	if a.envFile == "" {
		return nil
	}
	return []string{a.envFile}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "lupus",
		Short:         "A battle maid for the Great Tomb of Nazarick",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Read(a.envFiles()...)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.envFile, "env", "", "dotenv file to load (default .env)")

	root.AddCommand(newRunCmd(a), newPrefixCmd(a))
	return root
}
