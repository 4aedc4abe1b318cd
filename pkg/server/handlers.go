// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"slices"
	"strconv"

	"github.com/nikstur/uapi-version/pkg/defaults"
	apperrors "github.com/nikstur/uapi-version/pkg/errors"
	"github.com/nikstur/uapi-version/pkg/serializer"
	"github.com/nikstur/uapi-version/pkg/version"
)

// CompareResponse is returned by GET /v1/compare.
type CompareResponse struct {
	A        version.Version `json:"a" yaml:"a"`
	B        version.Version `json:"b" yaml:"b"`
	Result   string          `json:"result" yaml:"result"`
	Ordering int             `json:"ordering" yaml:"ordering"`
}

// VersionsRequest is the body of POST /v1/sort and POST /v1/latest.
// A text/plain body is a bare list of versions, one per line, and the
// options are then taken from the query string only.
type VersionsRequest struct {
	Versions []version.Version `json:"versions" yaml:"versions"`
	Reverse  bool              `json:"reverse,omitempty" yaml:"reverse,omitempty"`
	Unique   bool              `json:"unique,omitempty" yaml:"unique,omitempty"`
	Oldest   bool              `json:"oldest,omitempty" yaml:"oldest,omitempty"`
}

// SortResponse is returned by POST /v1/sort.
type SortResponse struct {
	Versions []version.Version `json:"versions" yaml:"versions"`
	Count    int               `json:"count" yaml:"count"`
}

// LatestResponse is returned by POST /v1/latest.
type LatestResponse struct {
	Version version.Version `json:"version" yaml:"version"`
	Count   int             `json:"count" yaml:"count"`
}

// handleCompare handles GET /v1/compare?a=...&b=...
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r, http.MethodGet)
		return
	}

	q := r.URL.Query()
	if !q.Has("a") || !q.Has("b") {
		WriteErrorFromErr(w, r, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"query parameters a and b are required", map[string]any{"query": r.URL.RawQuery}))
		return
	}

	a, b := version.New(q.Get("a")), version.New(q.Get("b"))
	o := version.Compare(a, b)
	versionsProcessed.WithLabelValues("compare").Observe(2)

	serializer.RespondJSON(w, http.StatusOK, CompareResponse{
		A:        a,
		B:        b,
		Result:   o.String(),
		Ordering: int(o),
	})
}

// handleSort handles POST /v1/sort
func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, r, http.MethodPost)
		return
	}

	req, err := s.parseVersionsRequest(w, r)
	if err != nil {
		WriteErrorFromErr(w, r, err)
		return
	}
	versionsProcessed.WithLabelValues("sort").Observe(float64(len(req.Versions)))

	vs := req.Versions
	version.Sort(vs)
	if req.Unique {
		vs = version.Compact(vs)
	}
	if req.Reverse {
		slices.Reverse(vs)
	}
	if vs == nil {
		vs = []version.Version{}
	}

	serializer.RespondJSON(w, http.StatusOK, SortResponse{Versions: vs, Count: len(vs)})
}

// handleLatest handles POST /v1/latest
func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, r, http.MethodPost)
		return
	}

	req, err := s.parseVersionsRequest(w, r)
	if err != nil {
		WriteErrorFromErr(w, r, err)
		return
	}
	versionsProcessed.WithLabelValues("latest").Observe(float64(len(req.Versions)))

	pick := version.Max
	if req.Oldest {
		pick = version.Min
	}

	v, ok := pick(req.Versions)
	if !ok {
		WriteErrorFromErr(w, r, apperrors.New(apperrors.ErrCodeNotFound, "no versions in request"))
		return
	}

	serializer.RespondJSON(w, http.StatusOK, LatestResponse{Version: v, Count: len(req.Versions)})
}

// parseVersionsRequest decodes the request body according to its Content-Type
// and applies query string options on top.
func (s *Server) parseVersionsRequest(w http.ResponseWriter, r *http.Request) (*VersionsRequest, error) {
	format, err := bodyFormat(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	body := http.MaxBytesReader(w, r.Body, defaults.MaxInputBytes)
	reader, err := serializer.NewReader(format, body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to create body reader", err)
	}
	defer func() { _ = reader.Close() }()

	req := &VersionsRequest{}
	var target any = req
	if format == serializer.FormatText {
		target = &req.Versions
	}
	if err := reader.Deserialize(target); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
				"request body too large", map[string]any{"limit": tooLarge.Limit})
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid request body", err)
	}

	if len(req.Versions) > s.config.MaxVersions {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"too many versions in request", map[string]any{
				"count": len(req.Versions),
				"limit": s.config.MaxVersions,
			})
	}

	q := r.URL.Query()
	for name, dst := range map[string]*bool{
		"reverse": &req.Reverse,
		"unique":  &req.Unique,
		"oldest":  &req.Oldest,
	} {
		if !q.Has(name) {
			continue
		}
		b, err := strconv.ParseBool(q.Get(name))
		if err != nil {
			return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
				fmt.Sprintf("invalid value for %s", name), map[string]any{name: q.Get(name)})
		}
		*dst = b
	}

	return req, nil
}

// bodyFormat maps a Content-Type to a serializer format. An empty
// Content-Type is treated as JSON.
func bodyFormat(contentType string) (serializer.Format, error) {
	if contentType == "" {
		return serializer.FormatJSON, nil
	}

	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid Content-Type", err)
	}

	switch mt {
	case "application/json":
		return serializer.FormatJSON, nil
	case "application/yaml", "application/x-yaml", "text/yaml":
		return serializer.FormatYAML, nil
	case "text/plain":
		return serializer.FormatText, nil
	default:
		return "", apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"unsupported Content-Type", map[string]any{"contentType": mt})
	}
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed string) {
	w.Header().Set("Allow", allowed)
	WriteError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed,
		"Method not allowed", false, map[string]any{"method": r.Method})
}
