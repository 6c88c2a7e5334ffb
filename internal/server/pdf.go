package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/teamops/dashboard/concurrency/worker"
	"github.com/teamops/dashboard/logging/observes"
	"github.com/teamops/dashboard/net/resp"
	"github.com/teamops/dashboard/pdf"
	"go.opentelemetry.io/otel/attribute"
)

const msgTemplateAndData = "Template and data are required"

type generateRequest struct {
	Template string         `json:"template"`
	Data     map[string]any `json:"data"`
	Options  *pdf.Options   `json:"options"`
}

func (s *Server) handleGenerate(c *gin.Context) {
	ctx := c.Request.Context()
	if s.config.PDF != nil && s.config.PDF.MaxBody > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.config.PDF.MaxBody)
	}

	var req generateRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			resp.Fail(c.Writer, resp.BadRequest(fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)))
			return
		}
		s.logger.Error(ctx, "PDF generation error", "error", err)
		resp.Fail(c.Writer, resp.InternalServer(fmt.Sprintf("invalid request body: %v", err)))
		return
	}
	if req.Template == "" || req.Data == nil {
		resp.Fail(c.Writer, resp.BadRequest(msgTemplateAndData))
		return
	}

	if !s.registry.Has(req.Template) {
		nf := &pdf.TemplateNotFoundError{Name: req.Template, Names: s.registry.Names()}
		resp.Fail(c.Writer, resp.NotFound(nf.Error()).With("availableTemplates", nf.Names))
		return
	}

	var opts pdf.Options
	if req.Options != nil {
		opts = *req.Options
	}

	out, err := s.render(ctx, req.Template, req.Data, opts)
	if err != nil {
		var nf *pdf.TemplateNotFoundError
		switch {
		case errors.As(err, &nf):
			resp.Fail(c.Writer, resp.NotFound(nf.Error()).With("availableTemplates", nf.Names))
		case errors.Is(err, worker.ErrQueueFull), errors.Is(err, worker.ErrPoolStopped):
			s.logger.Warn(ctx, "PDF render rejected", "template", req.Template, "error", err)
			resp.Fail(c.Writer, resp.ServiceUnavailable(err.Error()))
		default:
			s.logger.Error(ctx, "PDF generation error", "template", req.Template, "error", err)
			observes.CaptureError(ctx, err, map[string]string{"template": req.Template})
			resp.Fail(c.Writer, resp.InternalServer(err.Error()))
		}
		return
	}

	filename := opts.Filename
	if filename == "" {
		filename = fmt.Sprintf("%s-%d.pdf", req.Template, time.Now().UnixMilli())
	}
	if err := resp.Attachment(c.Writer, "application/pdf", filename, out); err != nil {
		s.logger.Warn(ctx, "Failed to write PDF", "template", req.Template, "error", err)
	}
}

// render runs the template on the worker pool.
func (s *Server) render(ctx context.Context, name string, data map[string]any, opts pdf.Options) (out []byte, err error) {
	ctx, span := observes.StartSpan(ctx, "pdf.generate", attribute.String("pdf.template", name))
	defer func() { observes.EndSpan(span, err) }()

	var result []byte
	err = s.pool.Do(ctx, func(ctx context.Context) error {
		b, err := s.registry.Generate(ctx, name, data, opts)
		if err != nil {
			return err
		}
		result = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Server) handleTemplates(c *gin.Context) {
	names := s.registry.Names()
	resp.Success(c.Writer, map[string]any{
		"templates": names,
		"count":     len(names),
	})
}
