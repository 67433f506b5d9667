package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kaylendog/kali/internal/kali"
	"github.com/kaylendog/kali/internal/source"
)

var lexCmd = &cobra.Command{
	Use:   "lex <file>",
	Short: "Tokenize a Kali source file and print its token stream",
	Args:  cobra.ExactArgs(1),
	RunE:  runLex,
}

func runLex(cmd *cobra.Command, args []string) error {
	fs := source.NewFileSet()
	file, err := fs.Load(args[0])
	if err != nil {
		return err
	}

	toks, errs := kali.Lex(fs, file)
	for _, t := range toks {
		fmt.Fprintln(os.Stdout, t.Kind, t.Lexeme)
	}
	if len(errs) == 0 {
		return nil
	}

	reporter := newReporter(cmd, fs)
	for _, e := range errs {
		reporter.Report(e)
	}
	return fmt.Errorf("lex: %d error(s)", len(errs))
}
