// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"encoding/xml"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/kinematics-engine/internal/httputil"
	"github.com/pdiddy/kinematics-engine/pkg/types"
)

// DefaultSesameURL is the CDS Sesame CGI endpoint.
const DefaultSesameURL = "https://cds.unistra.fr/cgi-bin/nph-sesame"

// Sesame queries the CDS Sesame name resolver, which consults Simbad, NED
// and VizieR in turn and returns positions and kinematics as XML.
type Sesame struct {
	Client     *http.Client
	BaseURL    string
	UserAgent  string
	MaxRetries int
	now        func() time.Time
}

// NewSesame returns a Sesame backend configured by cfg.
func NewSesame(client *http.Client, cfg types.ResolverConfig) *Sesame {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultSesameURL
	}
	return &Sesame{
		Client:     client,
		BaseURL:    strings.TrimRight(base, "/"),
		UserAgent:  cfg.UserAgent,
		MaxRetries: cfg.MaxRetries,
		now:        time.Now,
	}
}

// Name returns the backend identifier.
func (s *Sesame) Name() string { return "sesame" }

// Resolve looks up name. The first resolver in the answer that gives a
// position is used.
func (s *Sesame) Resolve(ctx context.Context, name string) (types.ResolvedStar, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return types.ResolvedStar{}, &LookupNotFoundError{Name: name}
	}

	// -oxp: XML output; SNV: Simbad, then NED, then VizieR.
	u := fmt.Sprintf("%s/-oxp/SNV?%s", s.BaseURL, url.QueryEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return types.ResolvedStar{}, fmt.Errorf("creating request: %w", err)
	}
	if s.UserAgent != "" {
		req.Header.Set("User-Agent", s.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, s.Client, req, s.MaxRetries)
	if err != nil {
		return types.ResolvedStar{}, &UpstreamError{Service: "sesame", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.ResolvedStar{}, &UpstreamError{Service: "sesame", Status: resp.StatusCode}
	}

	var doc sesameDoc
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return types.ResolvedStar{}, &UpstreamError{Service: "sesame", Err: fmt.Errorf("parsing response: %w", err)}
	}

	for _, target := range doc.Targets {
		for _, r := range target.Resolvers {
			star, ok := r.star()
			if !ok {
				continue
			}
			star.Query = name
			star.Fetched = s.now().UTC()
			return star, nil
		}
	}
	return types.ResolvedStar{}, &LookupNotFoundError{Name: name}
}

// Sesame XML structures.
type sesameDoc struct {
	Targets []sesameTarget `xml:"Target"`
}

type sesameTarget struct {
	Name      string           `xml:"name"`
	Resolvers []sesameResolver `xml:"Resolver"`
}

type sesameResolver struct {
	Name   string       `xml:"name,attr"`
	OName  string       `xml:"oname"`
	RADeg  string       `xml:"jradeg"`
	DecDeg string       `xml:"jdedeg"`
	PM     *sesamePM    `xml:"pm"`
	Vel    *sesameValue `xml:"Vel"`
	Plx    *sesameValue `xml:"plx"`
}

type sesamePM struct {
	PMRA string `xml:"pmRA"`
	PMDE string `xml:"pmDE"`
}

type sesameValue struct {
	V string `xml:"v"`
}

func (r sesameResolver) star() (types.ResolvedStar, bool) {
	ra, dec := parseValue(r.RADeg), parseValue(r.DecDeg)
	if ra == nil || dec == nil {
		return types.ResolvedStar{}, false
	}

	star := types.ResolvedStar{
		Name:   strings.TrimSpace(r.OName),
		RA:     *ra,
		Dec:    *dec,
		Source: "sesame:" + resolverLabel(r.Name),
	}
	if r.PM != nil {
		star.PMRA = parseValue(r.PM.PMRA)
		star.PMDec = parseValue(r.PM.PMDE)
	}
	if r.Vel != nil {
		star.RV = parseValue(r.Vel.V)
	}
	if r.Plx != nil {
		star.Parallax = parseValue(r.Plx.V)
		if star.Parallax != nil && *star.Parallax > 0 {
			d := 1000 / *star.Parallax
			star.Dist = &d
		}
	}
	return star, true
}

// parseValue returns nil for blank or unparsable text.
func parseValue(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// resolverLabel extracts "Simbad" from a resolver name such as
// "S=Simbad (via url):    1".
func resolverLabel(attr string) string {
	if i := strings.IndexByte(attr, '='); i >= 0 {
		attr = attr[i+1:]
	}
	if i := strings.IndexAny(attr, " (:"); i >= 0 {
		attr = attr[:i]
	}
	if attr == "" {
		return "unknown"
	}
	return attr
}
