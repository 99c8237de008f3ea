package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/extract"
	"github.com/spigell/resume-ranker/internal/logger"
	"github.com/spigell/resume-ranker/internal/metrics"
	"github.com/spigell/resume-ranker/internal/ranking"
	"github.com/spigell/resume-ranker/internal/textsource"
	"github.com/spigell/resume-ranker/internal/utils"
	"github.com/spigell/resume-ranker/internal/validation"
)

const (
	PromptPrint  = "Print results"
	PromptSave   = "Save results to CSV file"
	PromptReport = "Report by rank"
	PromptDump   = "Dump results to temp file"
	PromptExit   = "Exit"

	stdoutOutput = "-"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What to do with the results?",
	Items: []string{PromptPrint, PromptSave, PromptReport, PromptDump, PromptExit},
}

var rankCmd = &cobra.Command{
	Use:   "rank [paths...]",
	Short: "Rank PDF resumes against a job description",
	Long: "Rank PDF resumes against a job description. Paths may be PDF files or " +
		"directories; a directory contributes its *.pdf files in name order.",
	Run: func(cmd *cobra.Command, args []string) {
		rank(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().String("job-description", "", "job description text")
	rankCmd.Flags().StringP("job-description-file", "f", "", "file with the job description. Wins over --job-description")
	rankCmd.Flags().StringP("job-title", "t", "", "optional job title, used in logs only")
	rankCmd.Flags().StringP("output", "o", defaultOutputFile, "where to save the CSV, '-' for stdout")
	rankCmd.Flags().BoolP("auto-approve", "y", false, "do not ask what to do with results: print and save them")

	viper.BindPFlag("output.file", rankCmd.Flags().Lookup("output"))
}

// rank is the main command for the cli.
func rank(cmd *cobra.Command, paths []string) {
	zlog, config := mustLoggerAndConfig()

	zlog.Info("starting the resume-ranker", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	zlog.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	jdFile, _ := cmd.Flags().GetString("job-description-file")
	jdValue, _ := cmd.Flags().GetString("job-description")
	jobTitle, _ := cmd.Flags().GetString("job-title")
	autoApprove, _ := cmd.Flags().GetBool("auto-approve")

	jobDescription, err := textsource.Load(textsource.Source{
		Name:  "job description",
		Value: jdValue,
		File:  jdFile,
	})
	// Without a file an empty description is left to the pipeline to reject.
	if err != nil && strings.TrimSpace(jdFile) != "" {
		zlog.Fatal("loading job description", zap.Error(err))
	}

	docs, err := collectDocuments(paths, zlog)
	if err != nil {
		zlog.Fatal("collecting resumes", zap.Error(err))
	}

	runLogger := logger.WithRunFields(zlog, uuid.NewString(), jobTitle)
	runLogger.Info("starting the ranking", zap.Int("resumes", len(docs)))
	runLogger.Debug("job description", zap.String("preview", utils.TruncateForLog(jobDescription, utils.PreviewLimit)))

	recorder := metrics.NewRecorder(nil)
	pipeline := ranking.NewDefault(config.Limits, runLogger)

	start := time.Now()
	table, err := pipeline.Rank(jobDescription, docs)
	elapsed := time.Since(start)
	recorder.ObserveRun(elapsed, table.Scores(), err)
	if err != nil {
		fatalRankError(runLogger, err)
	}

	runLogger.Info("ranking completed",
		zap.Int("resumes", table.Len()),
		zap.Duration("elapsed", elapsed),
	)

	if autoApprove {
		for _, action := range []string{PromptPrint, PromptSave} {
			if err := handleAction(action, table, config.Output.File, os.Stdout, runLogger); err != nil {
				runLogger.Fatal("exiting", zap.Error(err))
			}
		}
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			runLogger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, table, config.Output.File, os.Stdout, runLogger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			runLogger.Fatal("exiting", zap.Error(err))
		}
	}
}

func fatalRankError(logger *zap.Logger, err error) {
	if verr, ok := validation.As(err); ok {
		logger.Fatal("invalid input",
			zap.String("code", string(verr.Code)),
			zap.Error(err),
			zap.String("hint", validationHint(verr.Code)),
		)
	}

	if derr, ok := extract.AsDocumentError(err); ok {
		logger.Fatal("reading resume",
			zap.String("resume", derr.Name),
			zap.Error(err),
			zap.String("hint", "check that the file is a valid, unencrypted PDF"),
		)
	}

	logger.Fatal("ranking resumes", zap.Error(err))
}

func validationHint(code validation.Code) string {
	switch code {
	case validation.CodeEmptyJobDescription:
		return "pass --job-description or --job-description-file"
	case validation.CodeTooManyFiles:
		return "rank fewer resumes or raise limits.max-files"
	case validation.CodeFileTooLarge:
		return "shrink the file or raise limits.max-file-size"
	case validation.CodeUnsupportedFormat:
		return "only .pdf files are accepted"
	default:
		return ""
	}
}

func handleAction(action string, table *ranking.Table, output string, stdout io.Writer, logger *zap.Logger) error {
	switch action {
	case PromptPrint:
		return printTable(stdout, table)
	case PromptSave:
		return saveTable(table, output, stdout, logger)
	case PromptReport:
		pretty, _ := json.MarshalIndent(table.ReportByRank(), "", "  ")
		logger.Info(string(pretty), zap.Int("resumes count", table.Len()))
		return nil
	case PromptDump:
		filename, err := table.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func printTable(w io.Writer, table *ranking.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(ranking.CSVHeader, "\t"))
	for _, row := range table.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			row.Resume, ranking.FormatScore(row.Score), row.Rank, row.Email, row.Length)
	}
	return tw.Flush()
}

func saveTable(table *ranking.Table, output string, stdout io.Writer, logger *zap.Logger) error {
	if output == stdoutOutput {
		return table.WriteCSV(stdout)
	}

	if err := table.ToFile(output); err != nil {
		return fmt.Errorf("saving results: %w", err)
	}
	logger.Info("results saved", zap.String("filename", output))
	return nil
}
