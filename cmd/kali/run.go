package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kaylendog/kali/internal/ir"
	"github.com/kaylendog/kali/internal/kali"
	"github.com/kaylendog/kali/internal/source"
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Type-check, lower, and execute a Kali source file's entry function",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().Bool("no-cache", false, "ignore and overwrite any .kalic cache next to the source file")
}

func runRun(cmd *cobra.Command, args []string) error {
	fs := source.NewFileSet()
	file, err := fs.Load(args[0])
	if err != nil {
		return err
	}

	noCache, _ := cmd.Flags().GetBool("no-cache")
	cachePath := strings.TrimSuffix(args[0], ".kali") + ir.CacheExt

	var chunk *ir.Chunk
	if !noCache {
		if cached, err := ir.ReadCache(cachePath); err == nil {
			chunk = cached
		}
	}

	if chunk == nil {
		mod, errs := kali.Check(fs, file)
		if len(errs) > 0 {
			reporter := newReporter(cmd, fs)
			for _, e := range errs {
				reporter.Report(e)
			}
			return fmt.Errorf("run: %d error(s)", len(errs))
		}
		chunk = kali.Lower(mod)
		if err := ir.WriteCache(cachePath, chunk); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to write %s: %v\n", cachePath, err)
		}
	}

	result, err := kali.RunChunk(chunk)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	fmt.Println(kali.FormatValue(result))
	return nil
}
