package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/BlueprintStudio/internal/domain/blueprint"
	"github.com/GriffinCanCode/BlueprintStudio/internal/domain/editor"
	"github.com/GriffinCanCode/BlueprintStudio/internal/domain/workspace"
	"github.com/GriffinCanCode/BlueprintStudio/internal/infrastructure/monitoring"
)

// Version is reported by the health endpoints
const Version = "1.0.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	ws      *workspace.Workspace
	metrics *monitoring.Metrics
	logger  *zap.Logger
}

// NewHandlers creates a new handler set. metrics may be nil.
func NewHandlers(ws *workspace.Workspace, metrics *monitoring.Metrics, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{ws: ws, metrics: metrics, logger: logger}
}

// DecodeRequest is the body of POST /api/decode
type DecodeRequest struct {
	Blueprint string `json:"blueprint"`
}

// EncodeRequest is the body of POST /api/encode
type EncodeRequest struct {
	JSON *string `json:"json"`
}

// TextRequest carries editor or input text
type TextRequest struct {
	Text string `json:"text"`
}

// SearchRequest is the body of POST /api/search
type SearchRequest struct {
	Query string `json:"query"`
}

// ReplaceRequest is the body of POST /api/replace
type ReplaceRequest struct {
	Pattern     string `json:"pattern"`
	Replacement string `json:"replacement"`
}

// SearchResponse reports a search step
type SearchResponse struct {
	Match *editor.Match `json:"match"`
	State string        `json:"state"`
}

// Page renders the studio page
func (h *Handlers) Page(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"View":    h.ws.View(),
		"Version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	body := gin.H{
		"status":  "healthy",
		"service": "blueprint-studio",
		"version": Version,
		"history": len(h.ws.History()),
	}
	if h.metrics != nil {
		body["metrics"] = h.metrics.Snapshot()
	}
	c.JSON(http.StatusOK, body)
}

// State returns the full workspace view
func (h *Handlers) State(c *gin.Context) {
	c.JSON(http.StatusOK, h.ws.View())
}

// Decode decodes a blueprint string into the editor
func (h *Handlers) Decode(c *gin.Context) {
	var req DecodeRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	view, err := h.ws.Decode(c.Request.Context(), req.Blueprint)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Encode encodes the editor (optionally replaced by the request text) into the preview
func (h *Handlers) Encode(c *gin.Context) {
	var req EncodeRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	encode := h.ws.EncodeEditor
	if req.JSON != nil {
		text := *req.JSON
		encode = func() (workspace.View, error) { return h.ws.EncodeText(text) }
	}

	view, err := encode()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SetInput stores the blueprint input field
func (h *Handlers) SetInput(c *gin.Context) {
	var req TextRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.ws.SetInput(req.Text))
}

// ClearInput empties the blueprint input field
func (h *Handlers) ClearInput(c *gin.Context) {
	c.JSON(http.StatusOK, h.ws.ClearInput())
}

// GetEditor returns the editor text
func (h *Handlers) GetEditor(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"text": h.ws.EditorText()})
}

// PutEditor replaces the editor text
func (h *Handlers) PutEditor(c *gin.Context) {
	var req TextRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.ws.SetEditorText(req.Text))
}

// Search starts a search; an empty query cancels it
func (h *Handlers) Search(c *gin.Context) {
	var req SearchRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	match, err := h.ws.Search(req.Query)
	h.searchResponse(c, match, err)
}

// FindNext moves to the next hit
func (h *Handlers) FindNext(c *gin.Context) {
	match, err := h.ws.FindNext()
	h.searchResponse(c, match, err)
}

// FindPrev moves to the previous hit
func (h *Handlers) FindPrev(c *gin.Context) {
	match, err := h.ws.FindPrev()
	h.searchResponse(c, match, err)
}

func (h *Handlers) searchResponse(c *gin.Context, match *editor.Match, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, SearchResponse{
		Match: match,
		State: h.ws.View().Search.State,
	})
}

// Replace runs a regular expression replacement over the editor
func (h *Handlers) Replace(c *gin.Context) {
	var req ReplaceRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	n, view, err := h.ws.ReplaceAll(req.Pattern, req.Replacement)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n, "view": view})
}

// History lists the history entries
func (h *Handlers) History(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"entries": h.ws.History()})
}

// ClearHistory empties the history
func (h *Handlers) ClearHistory(c *gin.Context) {
	h.ws.ClearHistory(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// RestoreHistory decodes the history entry at :index
func (h *Handlers) RestoreHistory(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		h.fail(c, fmt.Errorf("%w: index must be a number", errBadRequest))
		return
	}

	view, err := h.ws.RestoreFromHistory(c.Request.Context(), index)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Export downloads the editor document in ?format=json|jsonc|yaml|toml
func (h *Handlers) Export(c *gin.Context) {
	format, err := blueprint.ParseFormat(c.Query("format"))
	if err != nil {
		h.fail(c, err)
		return
	}

	out, err := h.ws.Export(format)
	if err != nil {
		status := StatusFor(err)
		if status == http.StatusInternalServerError {
			// conversion limits such as nulls in TOML
			status = http.StatusUnprocessableEntity
		}
		c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="blueprint.%s"`, format))
	c.Data(http.StatusOK, contentType(format), out)
}

func contentType(format blueprint.Format) string {
	switch format {
	case blueprint.FormatYAML:
		return "application/yaml; charset=utf-8"
	case blueprint.FormatTOML:
		return "application/toml; charset=utf-8"
	default:
		return "application/json; charset=utf-8"
	}
}
