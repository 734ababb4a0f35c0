package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gemledger/internal/constants"
	"github.com/gemledger/internal/ingest"
	"github.com/gemledger/internal/models"
	"github.com/gemledger/internal/repository"
	"github.com/gemledger/internal/service"

	"github.com/spf13/cobra"
)

const onConflictAsk = "ask"

type importOptions struct {
	onConflict string
	adminID    uint
}

func newImportCmd() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a stone spreadsheet (.xlsx, .xlsm or .csv)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decide, err := conflictDecider(opts.onConflict, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			cfg, err := bootDB()
			if err != nil {
				return err
			}
			stoneRepo := repository.NewStoneRepository(models.DB)
			stoneRepo.SetInsertChunkSize(cfg.Import.InsertChunkSize)
			svc := service.NewImportService(cfg.Import, stoneRepo, repository.NewImportBatchRepository(models.DB), nil)

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			result, err := svc.ImportDirect(cmd.Context(), service.ImportRequest{
				AdminID:  opts.adminID,
				Source:   constants.ImportSourceCLI,
				Filename: filepath.Base(args[0]),
			}, f, decide)
			if err != nil {
				if errors.Is(err, ingest.ErrConflictUnresolved) {
					fmt.Fprintln(cmd.OutOrStdout(), "import cancelled, nothing was written")
					return nil
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "batch %s: %s\n", result.BatchNo, result.Report.Message)
			if n := len(result.Report.DuplicateSKUs); n > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "duplicate rows collapsed (last row kept): %s\n", strings.Join(result.Report.DuplicateSKUs, ", "))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.onConflict, "on-conflict", onConflictAsk, "ask | overwrite | add-new | cancel")
	cmd.Flags().UintVar(&opts.adminID, "admin-id", 0, "admin id recorded on the import batch")
	return cmd
}

// conflictDecider 固定决定或交互询问
func conflictDecider(flag string, in io.Reader, out io.Writer) (service.DecideFunc, error) {
	if strings.EqualFold(strings.TrimSpace(flag), onConflictAsk) {
		reader := bufio.NewReader(in)
		return func(view *service.ProposalView) (ingest.Decision, error) {
			return promptDecision(reader, out, view)
		}, nil
	}
	decision, err := ingest.ParseDecision(flag)
	if err != nil {
		return nil, fmt.Errorf("--on-conflict: %w", err)
	}
	return func(*service.ProposalView) (ingest.Decision, error) {
		return decision, nil
	}, nil
}

func promptDecision(reader *bufio.Reader, out io.Writer, view *service.ProposalView) (ingest.Decision, error) {
	fmt.Fprintf(out, "%d of %d stones already exist: %s\n", len(view.ConflictingSKUs), view.NewCount+len(view.ConflictingSKUs), previewSKUs(view.ConflictingSKUs, 10))
	for {
		fmt.Fprint(out, "[o]verwrite, [a]dd new only, [c]ancel? ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			if errors.Is(err, io.EOF) {
				return ingest.DecisionCancel, nil
			}
			return "", err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "o":
			return ingest.DecisionOverwrite, nil
		case "a":
			return ingest.DecisionAddNewOnly, nil
		case "c", "":
			return ingest.DecisionCancel, nil
		}
		if decision, err := ingest.ParseDecision(line); err == nil {
			return decision, nil
		}
	}
}

func previewSKUs(skus []string, limit int) string {
	if len(skus) <= limit {
		return strings.Join(skus, ", ")
	}
	return fmt.Sprintf("%s and %d more", strings.Join(skus[:limit], ", "), len(skus)-limit)
}
