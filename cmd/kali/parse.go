package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kaylendog/kali/internal/kali"
	"github.com/kaylendog/kali/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a Kali source file and report any syntax errors",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	fs := source.NewFileSet()
	file, err := fs.Load(args[0])
	if err != nil {
		return err
	}

	mod, errs := kali.ParseModule(fs, file)
	if len(errs) == 0 {
		fmt.Printf("ok: %d statement(s)\n", len(mod.Stmts))
		return nil
	}

	reporter := newReporter(cmd, fs)
	for _, e := range errs {
		reporter.Report(e)
	}
	return fmt.Errorf("parse: %d error(s)", len(errs))
}
