package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"readquest/backend/importer"

	"github.com/spf13/cobra"
)

var importGlossaryCmd = &cobra.Command{
	Use:   "import-glossary",
	Short: "Upsert glossary terms from an .xlsx or .csv file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		sheet, _ := cmd.Flags().GetString("sheet")
		startRow, _ := cmd.Flags().GetInt("start-row")

		e, err := loadEnv()
		if err != nil {
			return err
		}
		defer e.close()

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()

		cfg := importer.DefaultImportConfig()
		cfg.SheetName = sheet
		cfg.StartRow = startRow

		res, err := importer.New(e.svc.Content, cfg, e.log).Import(cmd.Context(), filepath.Base(path), f)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "processed=%d created=%d updated=%d skipped=%d\n",
			res.TotalProcessed, res.Created, res.Updated, res.Skipped)
		for _, msg := range res.Errors {
			fmt.Fprintln(cmd.ErrOrStderr(), msg)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importGlossaryCmd)

	importGlossaryCmd.Flags().String("file", "", "path to the spreadsheet")
	importGlossaryCmd.Flags().String("sheet", "", "sheet name (default: first sheet)")
	importGlossaryCmd.Flags().Int("start-row", 2, "first data row, 1-based")
	_ = importGlossaryCmd.MarkFlagRequired("file")
}
