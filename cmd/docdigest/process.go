package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dgallion1/docdigest/internal/collection"
	"github.com/dgallion1/docdigest/internal/digest"
	"github.com/dgallion1/docdigest/internal/persona"
	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	baseDir      string
	personasPath string
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process every collection directory under a base directory",
	Long: `Process looks for directories named Collection* under the base directory,
reads each one's ` + collection.InputFilename + `, digests the PDFs folder for the
declared persona and task, and writes ` + collection.OutputFilename + ` beside the input.`,
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVarP(&baseDir, "dir", "d", ".", "base directory containing Collection* folders")
	processCmd.Flags().StringVarP(&personasPath, "personas", "p", "", "YAML file of extra persona profiles")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	registry := persona.Builtin()
	if personasPath != "" {
		if err := persona.LoadInto(registry, personasPath); err != nil {
			return fmt.Errorf("load personas: %w", err)
		}
	}

	dirs, err := collection.Discover(baseDir)
	if err != nil {
		return err
	}
	if len(dirs) == 0 {
		return fmt.Errorf("no Collection* directories under %s", baseDir)
	}

	proc := collection.NewProcessor(digest.New(registry), log)

	ok, failed := 0, 0
	for _, dir := range dirs {
		name := filepath.Base(dir)

		pdfs, _ := filepath.Glob(filepath.Join(dir, collection.PDFDirName, "*.pdf"))
		bar := progressbar.NewOptions(len(pdfs),
			progressbar.OptionSetDescription(name),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionShowCount(),
		)
		proc.OnDocument = func(string) { _ = bar.Add(1) }

		report, err := proc.Process(dir)
		_ = bar.Finish()
		if err != nil {
			color.Red("✗ %s: %v", name, err)
			failed++
			continue
		}
		color.Green("✓ %s: %d documents, %d sections, %d analyses",
			name,
			report.Metadata.TotalDocumentsProcessed,
			report.Metadata.TotalSectionsAnalyzed,
			len(report.SubsectionAnalysis),
		)
		ok++
	}

	fmt.Printf("\n%d collections processed, %d failed\n", ok, failed)
	if failed > 0 && ok == 0 {
		return fmt.Errorf("all collections failed")
	}
	return nil
}
