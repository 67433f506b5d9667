package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kaylendog/kali/internal/diag"
	"github.com/kaylendog/kali/internal/source"
)

var rootCmd = &cobra.Command{
	Use:   "kali",
	Short: "Kali language toolchain",
	Long:  `Kali is an indentation-sensitive, statically typed scripting language.`,
}

func main() {
	rootCmd.AddCommand(lexCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(runCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize diagnostic output (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newReporter builds a diag.Reporter honoring the --color flag: "on"
// and "off" force colorization either way, "auto" (the default) lets
// Reporter detect a terminal on its own.
func newReporter(cmd *cobra.Command, fs *source.FileSet) *diag.Reporter {
	r := diag.NewReporter(fs, os.Stderr)
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	switch mode {
	case "on":
		r.ForceColor(true)
	case "off":
		r.ForceColor(false)
	}
	return r
}
