package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	stderrors "errors"

	"github.com/jaathavan18/jot/internal/diff"
	"github.com/jaathavan18/jot/internal/errors"
	"github.com/jaathavan18/jot/internal/limits"
	"github.com/jaathavan18/jot/internal/merge"
	"github.com/jaathavan18/jot/internal/models"
	"github.com/jaathavan18/jot/internal/parser"
	"github.com/jaathavan18/jot/internal/pathexpr"
	"github.com/jaathavan18/jot/internal/schema"

	formatpkg "github.com/jaathavan18/jot/internal/format"
)

// bindJSON reads the request body (bounded by the document size limit),
// decodes JSON into dst, and enforces strict decoding: unknown fields cause
// an error, and the body must hold exactly one JSON value.
func bindJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxInputSize)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		if stderrors.Is(err, io.EOF) {
			return fmt.Errorf("request body must not be empty")
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("request body must contain only a single JSON object")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": errors.UserFriendlyError(err)})
}

// parseDocument runs a raw embedded document through the guarded parser.
func parseDocument(raw json.RawMessage, name string) (models.Value, error) {
	if len(raw) == 0 {
		return nil, errors.NewInputError(fmt.Sprintf("%s is required", name), errors.ErrNoInput)
	}
	return parser.ParseBytes(raw)
}

type getRequest struct {
	Data       json.RawMessage `json:"data"`
	Expression string          `json:"expression"`
}

type getResponse struct {
	Success    bool         `json:"success"`
	Expression string       `json:"expression"`
	Result     models.Value `json:"result"`
	ResultType string       `json:"result_type"`
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	var req getRequest
	if err := bindJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	doc, err := parseDocument(req.Data, "data")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	result, err := pathexpr.Resolve(doc, req.Expression)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, getResponse{
		Success:    true,
		Expression: req.Expression,
		Result:     result,
		ResultType: result.Kind().String(),
	})
}

type mergeRequest struct {
	Base     json.RawMessage `json:"base"`
	Override json.RawMessage `json:"override"`
}

type mergeResponse struct {
	Success bool         `json:"success"`
	Result  models.Value `json:"result"`
}

func (s *Server) handleMerge(w http.ResponseWriter, r *http.Request) {
	var req mergeRequest
	if err := bindJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	base, err := parseDocument(req.Base, "base")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	override, err := parseDocument(req.Override, "override")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, mergeResponse{Success: true, Result: merge.Merge(base, override)})
}

type diffRequest struct {
	First  json.RawMessage `json:"first"`
	Second json.RawMessage `json:"second"`
}

type diffResponse struct {
	Equal           bool          `json:"equal"`
	Differences     []diff.Change `json:"differences"`
	DifferenceCount int           `json:"difference_count"`
}

func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	var req diffRequest
	if err := bindJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	first, err := parseDocument(req.First, "first")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	second, err := parseDocument(req.Second, "second")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	changes := diff.Diff(first, second)
	if changes == nil {
		changes = []diff.Change{}
	}
	writeJSON(w, http.StatusOK, diffResponse{
		Equal:           len(changes) == 0,
		Differences:     changes,
		DifferenceCount: len(changes),
	})
}

type formatRequest struct {
	Data     json.RawMessage `json:"data"`
	Indent   *int            `json:"indent"`
	SortKeys bool            `json:"sort_keys"`
}

type formatResponse struct {
	Success  bool   `json:"success"`
	Result   string `json:"result"`
	Minified bool   `json:"minified"`
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if err := bindJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	doc, err := parseDocument(req.Data, "data")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	indent := s.cfg.Format.Indent
	if req.Indent != nil {
		indent = *req.Indent
	}
	if indent < 0 || indent > 8 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("indent must be 0-8"))
		return
	}
	text := formatpkg.Render(doc, formatpkg.Options{Indent: indent, SortKeys: req.SortKeys})
	writeJSON(w, http.StatusOK, formatResponse{Success: true, Result: text, Minified: indent == 0})
}

type validateRequest struct {
	Data   json.RawMessage `json:"data"`
	Schema json.RawMessage `json:"schema"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := bindJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	doc, err := parseDocument(req.Data, "data")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	sch, err := parseDocument(req.Schema, "schema")
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	result, err := schema.Validate(doc, sch)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
