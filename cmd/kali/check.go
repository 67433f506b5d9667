package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kaylendog/kali/internal/kali"
	"github.com/kaylendog/kali/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Type-check a Kali source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	fs := source.NewFileSet()
	file, err := fs.Load(args[0])
	if err != nil {
		return err
	}

	mod, errs := kali.Check(fs, file)
	if len(errs) == 0 {
		fmt.Printf("ok: %d statement(s) typed\n", len(mod.Stmts))
		return nil
	}

	reporter := newReporter(cmd, fs)
	for _, e := range errs {
		reporter.Report(e)
	}
	return fmt.Errorf("check: %d error(s)", len(errs))
}
