package handler

import (
	"github.com/gofiber/fiber/v2"

	"blogrank-go/internal/service"
	"blogrank-go/pkg/logger"
)

// Controller exposes the analysis pipeline over HTTP. The HTTP layer
// is thin glue: request decoding, service calls, response encoding.
type Controller struct {
	analyzers   service.AnalyzerService
	results     service.ResultService
	recentCount int
	log         *logger.Logger
}

// NewController creates the HTTP controller. recentCount is the batch
// size used when an analyze/recent request omits count.
func NewController(analyzers service.AnalyzerService, results service.ResultService, recentCount int) *Controller {
	return &Controller{
		analyzers:   analyzers,
		results:     results,
		recentCount: recentCount,
		log:         logger.GetLogger().WithField("component", "http_controller"),
	}
}

// Register mounts all routes on the app.
func (ct *Controller) Register(app *fiber.App) {
	app.Get("/healthz", ct.Health)

	api := app.Group("/api/v1")
	api.Post("/analyze", ct.AnalyzePost)
	api.Post("/analyze/recent", ct.AnalyzeRecent)
	api.Get("/results", ct.ListResults)
	api.Delete("/results", ct.ClearResults)
}

func (ct *Controller) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

type analyzeRequest struct {
	URL string `json:"url"`
}

// AnalyzePost runs the pipeline for a single post URL.
func (ct *Controller) AnalyzePost(c *fiber.Ctx) error {
	var req analyzeRequest
	if err := c.BodyParser(&req); err != nil || req.URL == "" {
		return fiber.NewError(fiber.StatusBadRequest, "url is required")
	}

	result, err := ct.analyzers.AnalyzePost(c.UserContext(), req.URL)
	if err != nil {
		ct.log.WithError(err).WithField("url", req.URL).Error("Analysis failed")
		return fiber.NewError(fiber.StatusBadGateway, "analysis failed: "+err.Error())
	}
	return c.JSON(result)
}

type analyzeRecentRequest struct {
	BlogID string `json:"blog_id"`
	Count  int    `json:"count"`
}

// AnalyzeRecent analyzes a blog's recent posts sequentially. Posts
// are probed one at a time, so this is a long request.
func (ct *Controller) AnalyzeRecent(c *fiber.Ctx) error {
	var req analyzeRecentRequest
	if err := c.BodyParser(&req); err != nil || req.BlogID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "blog_id is required")
	}
	if req.Count <= 0 {
		req.Count = ct.recentCount
	}

	batch, err := ct.analyzers.AnalyzeRecent(c.UserContext(), req.BlogID, req.Count)
	if err != nil {
		ct.log.WithError(err).WithField("blog_id", req.BlogID).Error("Batch analysis failed")
		return fiber.NewError(fiber.StatusBadGateway, "batch analysis failed: "+err.Error())
	}
	return c.JSON(batch)
}

// ListResults returns stored records with derived dashboard counters.
func (ct *Controller) ListResults(c *fiber.Ctx) error {
	records, err := ct.results.List(c.UserContext())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load results")
	}
	summary, err := ct.results.Summary(c.UserContext())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to summarize results")
	}
	return c.JSON(fiber.Map{
		"summary": summary,
		"records": records,
	})
}

func (ct *Controller) ClearResults(c *fiber.Ctx) error {
	if err := ct.results.Clear(c.UserContext()); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to clear results")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
