// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/pdiddy/kinematics-engine/internal/batch"
	"github.com/pdiddy/kinematics-engine/internal/export"
	"github.com/pdiddy/kinematics-engine/internal/logging"
	"github.com/pdiddy/kinematics-engine/internal/movinggroup"
	"github.com/pdiddy/kinematics-engine/internal/observability"
	"github.com/pdiddy/kinematics-engine/internal/resolve"
	"github.com/pdiddy/kinematics-engine/internal/session"
	"github.com/pdiddy/kinematics-engine/internal/transform"
	"github.com/pdiddy/kinematics-engine/pkg/types"
)

const maxOutlinePoints = 3600

// queryResponse is the body of GET /query.
type queryResponse struct {
	Star      string               `json:"star,omitempty"`
	Values    map[string]string    `json:"values"`
	Sweeps    []transform.RawSweep `json:"sweeps,omitempty"`
	HasResult bool                 `json:"has_result"`
}

// session returns the caller's session, creating one and setting the
// cookie when needed.
func (s *Server) session(w http.ResponseWriter, r *http.Request) session.Session {
	id := ""
	if c, err := r.Cookie(session.CookieName); err == nil {
		id = c.Value
	}
	sess, created := s.sessions.Ensure(id)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     session.CookieName,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		s.metrics.SetSessions(s.sessions.Len())
	}
	return sess
}

// update applies fn to the caller's session, recreating it if it expired
// between lookup and update.
func (s *Server) update(sess session.Session, fn func(*session.Session)) {
	if err := s.sessions.Update(sess.ID, fn); err != nil {
		s.logger.Debug("session vanished before update", slog.String("id", sess.ID))
	}
}

func (s *Server) homeHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/query", http.StatusFound)
}

func (s *Server) queryHandler(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	s.writeJSON(w, http.StatusOK, queryResponse{
		Star:      sess.Star,
		Values:    sess.Values,
		Sweeps:    sess.Sweeps,
		HasResult: sess.Result != nil,
	})
}

func (s *Server) calculateHandler(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	format, err := responseFormat(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	raw, err := readRawRequest(r, s.cfg.MaxUploadBytes)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	// An empty submission recomputes the session's current values.
	if len(raw.Fields) == 0 && len(raw.Sweeps) == 0 {
		raw = sess.RawRequest()
	}

	// Values are kept even when they fail to parse, so the form can show
	// what was submitted.
	s.update(sess, func(x *session.Session) {
		x.Values = raw.Fields
		x.Sweeps = raw.Sweeps
		x.Result = nil
	})

	req, err := transform.ParseRequest(raw)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.engine.Compute(req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.update(sess, func(x *session.Session) { x.Result = &res })
	s.writeResult(w, r, res, format, false)
}

func (s *Server) batchHandler(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	format, err := responseFormat(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	delim, err := batch.ParseDelimiter(r.URL.Query().Get("delimiter"))
	if err != nil {
		s.writeError(w, r, errBadRequest(err.Error()))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	body, err := uploadBody(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer body.Close()

	rows, err := batch.Load(body, delim)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.engine.Compute(transform.Request{Mode: types.ModeBatch, Rows: rows})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.update(sess, func(x *session.Session) { x.Result = &res })
	s.writeResult(w, r, res, format, false)
}

func (s *Server) clearHandler(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if err := s.sessions.Clear(sess.ID); err != nil {
		s.writeError(w, r, err)
		return
	}
	http.Redirect(w, r, "/query", http.StatusFound)
}

func (s *Server) exportHandler(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess.Result == nil {
		s.writeError(w, r, errNotFound("nothing to export; run a calculation first"))
		return
	}
	format, err := responseFormat(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeResult(w, r, *sess.Result, format, true)
}

// groupOutline is one projected group with its outline points.
type groupOutline struct {
	movinggroup.Ellipse
	Points [][2]float64 `json:"points,omitempty"`
}

func (s *Server) groupsHandler(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	groups := movinggroup.All()
	if name := params.Get("name"); name != "" {
		g, ok := movinggroup.Lookup(name)
		if !ok {
			s.writeError(w, r, errNotFound(fmt.Sprintf("no moving group named %q", name)))
			return
		}
		groups = []types.MovingGroup{g}
	}

	planeParam := params.Get("plane")
	if planeParam == "" {
		s.writeJSON(w, http.StatusOK, groups)
		return
	}
	plane, err := movinggroup.ParsePlane(planeParam)
	if err != nil {
		s.writeError(w, r, errBadRequest(err.Error()))
		return
	}

	points := 0
	if v := params.Get("outline"); v != "" {
		points, err = strconv.Atoi(v)
		if err != nil || points < 0 || points > maxOutlinePoints {
			s.writeError(w, r, errBadRequest(fmt.Sprintf("outline must be between 0 and %d", maxOutlinePoints)))
			return
		}
	}

	out := make([]groupOutline, len(groups))
	for i, g := range groups {
		e := movinggroup.Project(g, plane)
		out[i] = groupOutline{Ellipse: e, Points: e.Outline(points)}
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) resolveHandler(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	name := httprouter.ParamsFromContext(r.Context()).ByName("name")

	if s.resolver == nil {
		s.writeError(w, r, &requestError{status: http.StatusServiceUnavailable, kind: "unavailable", msg: "name resolution is not configured"})
		return
	}

	star, err := s.resolver.Resolve(r.Context(), name)
	if err != nil {
		var nf *resolve.LookupNotFoundError
		if errors.As(err, &nf) {
			s.metrics.ObserveLookup(observability.LookupNotFound)
		} else {
			s.metrics.ObserveLookup(observability.LookupError)
		}
		s.writeError(w, r, err)
		return
	}
	s.metrics.ObserveLookup(observability.LookupFound)

	// Quantities the catalog lacks are blanked, never kept from before.
	values := session.BlankValues()
	for k, v := range star.RawValues() {
		values[k] = v
	}
	s.update(sess, func(x *session.Session) {
		x.Star = star.Name
		x.Values = values
		x.Sweeps = nil
		x.Result = nil
	})
	logging.FromContext(r.Context()).Info("resolved star",
		slog.String("query", name), slog.String("name", star.Name), slog.String("source", star.Source))
	s.writeJSON(w, http.StatusOK, star)
}

// writeResult encodes res in format. Attachments get a
// Content-Disposition header.
func (s *Server) writeResult(w http.ResponseWriter, r *http.Request, res types.CartesianResult, format export.Format, attachment bool) {
	var buf strings.Builder
	if err := export.Write(&buf, res, format); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	if attachment {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.Filename()))
	}
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, buf.String())
}

func responseFormat(r *http.Request) (export.Format, error) {
	name := r.URL.Query().Get("format")
	if name == "" {
		return export.FormatJSON, nil
	}
	f, err := export.ParseFormat(name)
	if err != nil {
		return "", errBadRequest(err.Error())
	}
	return f, nil
}

// readRawRequest accepts a JSON RawRequest or form fields. In a form, a
// sweep is given as <kind>_initial, <kind>_final and <kind>_step.
func readRawRequest(r *http.Request, limit int64) (transform.RawRequest, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var raw transform.RawRequest
		dec := json.NewDecoder(io.LimitReader(r.Body, limit))
		if err := dec.Decode(&raw); err != nil {
			return transform.RawRequest{}, errBadRequest(fmt.Sprintf("decoding request: %v", err))
		}
		if raw.Fields == nil {
			raw.Fields = map[string]string{}
		}
		return raw, nil
	}

	if err := r.ParseForm(); err != nil {
		return transform.RawRequest{}, errBadRequest(fmt.Sprintf("parsing form: %v", err))
	}
	raw := transform.RawRequest{Fields: map[string]string{}}
	for key, vals := range r.PostForm {
		if len(vals) > 0 && !isSweepKey(key) && key != "format" {
			raw.Fields[key] = vals[0]
		}
	}
	for _, kind := range []types.Field{types.FieldRV, types.FieldDist} {
		sw := transform.RawSweep{
			Kind:    string(kind),
			Initial: r.PostForm.Get(string(kind) + "_initial"),
			Final:   r.PostForm.Get(string(kind) + "_final"),
			Step:    r.PostForm.Get(string(kind) + "_step"),
		}
		if sw.Initial != "" || sw.Final != "" || sw.Step != "" {
			raw.Sweeps = append(raw.Sweeps, sw)
		}
	}
	return raw, nil
}

func isSweepKey(key string) bool {
	for _, suffix := range []string{"_initial", "_final", "_step"} {
		if strings.HasSuffix(key, suffix) {
			return true
		}
	}
	return false
}

// uploadBody returns the multipart "file" part when present, else the raw
// request body.
func uploadBody(r *http.Request) (io.ReadCloser, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return r.Body, nil
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, errBadRequest(fmt.Sprintf("reading upload: %v", err))
	}
	return file, nil
}
