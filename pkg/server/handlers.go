package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vango-dev/tagkit/internal/errors"
	"github.com/vango-dev/tagkit/pkg/capture"
	"github.com/vango-dev/tagkit/pkg/middleware"
	"github.com/vango-dev/tagkit/pkg/tags"
)

const (
	// MaxBodyBytes limits request bodies.
	MaxBodyBytes = 1 << 20

	// MaxDepth limits the nesting of POST /render trees.
	MaxDepth = 32

	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json"
)

var tagNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]*$`)

// Node is one tag of a POST /render tree.
type Node struct {
	Name     string         `json:"name"`
	Content  any            `json:"content,omitempty"`
	Attrs    map[string]any `json:"attrs,omitempty"`
	Children []Node         `json:"children,omitempty"`
}

func (n Node) depth() int {
	d := 0
	for _, c := range n.Children {
		if cd := c.depth(); cd > d {
			d = cd
		}
	}
	return d + 1
}

// ClassesRequest is the body of POST /classes.
type ClassesRequest struct {
	Current any   `json:"current"`
	Add     []any `json:"add"`
}

// ClassesResponse is the reply of POST /classes.
type ClassesResponse struct {
	Class string `json:"class"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

// handleTag builds one tag from the path and query parameters.
func (s *Server) handleTag(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !tagNamePattern.MatchString(name) {
		s.writeError(w, http.StatusBadRequest, errors.New("E142").WithDetailf("%q is not a valid tag name", name))
		return
	}

	v := s.viewFor(r)
	attrs := queryAttrs(r, v.Renderer().Tables())
	args := []any{attrs}
	if r.URL.Query().Has("content") {
		args = append(args, r.URL.Query().Get("content"))
	}

	html, err := v.Tag(name, args...)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, errors.FromError(err, "E141"))
		return
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	_, _ = io.WriteString(w, html)
}

// queryAttrs converts query parameters to attributes. Repeated class
// parameters are merged.
func queryAttrs(r *http.Request, tables *tags.Tables) tags.Attrs {
	attrs := tags.Attrs{}
	var data map[string]any
	for key, values := range r.URL.Query() {
		if key == "content" || len(values) == 0 {
			continue
		}
		value := values[len(values)-1]
		switch {
		case key == tags.ClassKey:
			attrs[key] = tags.MergeClasses(toAny(values)...)
		case strings.HasPrefix(key, tags.DataKey+"."):
			if data == nil {
				data = map[string]any{}
			}
			data[strings.TrimPrefix(key, tags.DataKey+".")] = value
		case key == tags.NewlineKey || tables.IsBooleanAttr(key):
			if b, err := strconv.ParseBool(value); err == nil {
				attrs[key] = b
			} else {
				attrs[key] = value
			}
		default:
			attrs[key] = value
		}
	}
	if data != nil {
		attrs[tags.DataKey] = data
	}
	return attrs
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// handleRender builds a nested tree of tags. Children are rendered inside a
// template block and streamed through the request buffer.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var node Node
	if err := decodeJSON(r, &node); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if d := node.depth(); d > MaxDepth {
		s.writeError(w, http.StatusBadRequest,
			errors.New("E140").WithDetailf("tree is %d levels deep, the limit is %d", d, MaxDepth))
		return
	}

	v := s.viewFor(r)
	html, err := renderNode(v, node, "root")
	if err != nil {
		s.logger.Debug("render failed", "error", err)
		s.writeError(w, http.StatusUnprocessableEntity, errors.FromError(err, "E141"))
		return
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	if html != "" {
		_, _ = io.WriteString(w, html)
	}
}

// renderNode builds n. Tags with children stream their markup into the
// view's buffer and return "".
func renderNode(v *tags.View, n Node, path string) (string, error) {
	if !tagNamePattern.MatchString(n.Name) {
		return "", errors.New("E141").WithDetailf("node %s has invalid name %q", path, n.Name)
	}
	if _, ok := n.Content.(map[string]any); ok {
		return "", errors.New("E141").WithDetailf("node %s content must not be an object", path)
	}
	attrs := tags.Attrs(n.Attrs)
	if len(n.Children) == 0 {
		return v.Tag(n.Name, attrs, n.Content)
	}
	return v.Tag(n.Name, attrs, capture.TemplateBlock(func() (string, error) {
		for i, child := range n.Children {
			html, err := renderNode(v, child, fmt.Sprintf("%s.%d", path, i))
			if err != nil {
				return "", err
			}
			v.Concat(html)
		}
		return "", nil
	}))
}

func (s *Server) handleClasses(w http.ResponseWriter, r *http.Request) {
	var req ClassesRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ClassesResponse{
		Class: tags.MergeClasses(append([]any{req.Current}, req.Add...)...),
	})
}

func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.viewFor(r).Renderer().Tables().Spec())
}

// viewFor returns the request view installed by middleware.Views, or a
// fresh one over the current renderer.
func (s *Server) viewFor(r *http.Request) *tags.View {
	if v, ok := middleware.ViewFromContext(r.Context()); ok {
		return v
	}
	return s.Renderer().View(capture.NoEngine{})
}

func decodeJSON(r *http.Request, dst any) *errors.TagkitError {
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return errors.New("E140").WithDetail(err.Error()).Wrap(err)
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err *errors.TagkitError) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_, _ = io.WriteString(w, err.FormatJSON()+"\n")
}
