package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/logistiga/bank-reconciliation/internal/api/dto"
	"github.com/logistiga/bank-reconciliation/internal/recon"
)

// health handles GET /health.
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// createBatch handles POST /api/batches: fetch candidates, run the
// matcher, register the batch for review.
func (s *Server) createBatch(c *gin.Context) {
	var req dto.CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	lines := make([]recon.StatementLine, 0, len(req.Lines))
	for _, lr := range req.Lines {
		line, err := lr.ToDomain()
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.BadRequestError(
				"line "+lr.ID+": "+err.Error()))
			return
		}
		if line.ID == "" {
			// keep every line addressable during review
			line.ID = newBatchID()
		}
		lines = append(lines, line)
	}

	from, to, err := req.Window()
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	candidates, err := s.repo.ListUnreconciled(c.Request.Context(), from, to)
	if err != nil {
		s.logger.Error("list candidates", "error", err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	results, err := recon.MatchContext(c.Request.Context(), lines, candidates)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	b := &batch{
		id:              newBatchID(),
		createdAt:       time.Now(),
		reconciliations: results,
	}

	s.mu.Lock()
	s.batches[b.id] = b
	s.mu.Unlock()

	s.logger.Info("batch created",
		"batch", b.id, "lines", len(lines), "candidates", len(candidates))

	c.JSON(http.StatusCreated, dto.FromBatch(b.id, b.createdAt, b.reconciliations))
}

// getBatch handles GET /api/batches/:id with optional ?status= and ?q=
// review filters.
func (s *Server) getBatch(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.batches[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, dto.NotFoundError("batch"))
		return
	}

	status := c.DefaultQuery("status", recon.StatusAll)
	search := c.Query("q")

	filtered := recon.Filter(b.reconciliations, status, search)
	c.JSON(http.StatusOK, dto.FromBatch(b.id, b.createdAt, filtered))
}

// getBatchStats handles GET /api/batches/:id/stats.
func (s *Server) getBatchStats(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.batches[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, dto.NotFoundError("batch"))
		return
	}

	c.JSON(http.StatusOK, dto.FromStats(recon.Summarize(b.reconciliations)))
}

// validateLine handles POST /api/batches/:id/lines/:lineID/validate.
func (s *Server) validateLine(c *gin.Context) {
	s.decide(c, recon.Validate)
}

// rejectLine handles POST /api/batches/:id/lines/:lineID/reject.
func (s *Server) rejectLine(c *gin.Context) {
	s.decide(c, recon.Reject)
}

// decide applies one reviewer transition to a single reconciliation.
func (s *Server) decide(c *gin.Context, transition func(*recon.Reconciliation) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.batches[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, dto.NotFoundError("batch"))
		return
	}

	rec := findByLineID(b.reconciliations, c.Param("lineID"))
	if rec == nil {
		c.JSON(http.StatusNotFound, dto.NotFoundError("statement line"))
		return
	}

	if err := transition(rec); err != nil {
		var transErr *recon.InvalidTransitionError
		if errors.As(err, &transErr) {
			c.JSON(http.StatusConflict, dto.InvalidTransitionError(transErr.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	c.JSON(http.StatusOK, dto.FromReconciliation(*rec))
}

// commitBatch handles POST /api/batches/:id/commit.
func (s *Server) commitBatch(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.batches[c.Param("id")]
	if !ok {
		c.JSON(http.StatusNotFound, dto.NotFoundError("batch"))
		return
	}

	count, err := recon.Commit(c.Request.Context(), s.repo, b.reconciliations)
	if err != nil {
		s.logger.Error("commit batch", "batch", b.id, "error", err)
		c.JSON(http.StatusInternalServerError, dto.InternalError())
		return
	}

	s.logger.Info("batch committed", "batch", b.id, "committed", count)
	c.JSON(http.StatusOK, dto.CommitResponse{CommittedCount: count})
}

func findByLineID(batch []recon.Reconciliation, lineID string) *recon.Reconciliation {
	for i := range batch {
		if batch[i].Line.ID == lineID {
			return &batch[i]
		}
	}
	return nil
}
