package server

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/logger"
	"github.com/spigell/resume-ranker/internal/ranking"
	"github.com/spigell/resume-ranker/internal/scoring"
	"github.com/spigell/resume-ranker/internal/utils"
)

const (
	CSVFileName = "ranked_resumes.csv"

	formJobDescription = "job_description"
	formJobTitle       = "job_title"
	formResumes        = "resumes"
)

var scoreSchema = gojsonschema.NewStringLoader(`{
	"type": "object",
	"required": ["job_description", "resumes"],
	"properties": {
		"job_description": {"type": "string"},
		"resumes": {"type": "array", "items": {"type": "string"}}
	}
}`)

type rankResponse struct {
	RunID          string           `json:"run_id"`
	JobTitle       string           `json:"job_title,omitempty"`
	ElapsedSeconds float64          `json:"elapsed_seconds"`
	Results        []ranking.Result `json:"results"`
}

type scoreRequest struct {
	JobDescription string   `json:"job_description"`
	Resumes        []string `json:"resumes"`
}

type scoreResponse struct {
	Scores []float64 `json:"scores"`
}

func (s *Server) handleIndex(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": AppName,
		"endpoints": []string{
			"GET /api/v1/health",
			"POST /api/v1/rank",
			"POST /api/v1/score",
			"GET /metrics",
		},
	})
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now(),
	})
}

func (s *Server) handleRank(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "failed to parse multipart form")
	}

	jobDescription := formValue(form, formJobDescription)
	jobTitle := strings.TrimSpace(formValue(form, formJobTitle))

	docs, err := readDocuments(form.File[formResumes])
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	log := logger.WithRunFields(s.logger, runID, jobTitle)
	log.Info("ranking request received", zap.Int("resumes", len(docs)))
	log.Debug("job description", zap.String("preview", utils.TruncateForLog(jobDescription, utils.PreviewLimit)))

	start := time.Now()
	table, err := s.pipeline.WithLogger(log).Rank(jobDescription, docs)
	elapsed := time.Since(start)
	s.recorder.ObserveRun(elapsed, table.Scores(), err)
	if err != nil {
		return err
	}

	log.Info("ranking request completed", zap.Duration("elapsed", elapsed))

	if c.Query("format") == "json" {
		return c.JSON(rankResponse{
			RunID:          runID,
			JobTitle:       jobTitle,
			ElapsedSeconds: elapsed.Seconds(),
			Results:        table.Rows,
		})
	}

	body, err := table.CSV()
	if err != nil {
		return fmt.Errorf("rendering csv: %w", err)
	}

	c.Attachment(CSVFileName)
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.SendString(body)
}

func (s *Server) handleScore(c *fiber.Ctx) error {
	body := c.Body()

	result, err := gojsonschema.Validate(scoreSchema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("invalid JSON body: %v", err))
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("request validation failed: %s", strings.Join(errs, "; ")))
	}

	var req scoreRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("invalid JSON body: %v", err))
	}

	scores, err := scoring.Score(req.JobDescription, req.Resumes)
	if err != nil {
		return err
	}

	return c.JSON(scoreResponse{Scores: scores})
}

func formValue(form *multipart.Form, key string) string {
	if values := form.Value[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}

func readDocuments(headers []*multipart.FileHeader) ([]ranking.Document, error) {
	docs := make([]ranking.Document, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("opening upload %q: %w", header.Filename, err)
		}

		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("reading upload %q: %w", header.Filename, err)
		}

		docs = append(docs, ranking.Document{Name: header.Filename, Content: data})
	}
	return docs, nil
}
