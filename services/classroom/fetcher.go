package classroomsvc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/sendgrid/rest"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"github.com/semillerodigital/educompass/core"
)

// Scopes is the read-only Classroom access the dashboard needs.
var Scopes = []string{
	"https://www.googleapis.com/auth/classroom.courses.readonly",
	"https://www.googleapis.com/auth/classroom.rosters.readonly",
	"https://www.googleapis.com/auth/classroom.coursework.students.readonly",
	"https://www.googleapis.com/auth/classroom.profile.emails",
}

// Fetcher performs an authenticated GET against the upstream API and decodes the JSON body into out.
type Fetcher interface {
	Fetch(ctx context.Context, path string, query url.Values, out interface{}) error
}

type restFetcher struct {
	baseURL string
	client  *rest.Client
}

// TokenSource builds the upstream token source from the config:
// a refresh-token flow when client credentials are present, otherwise a static access token.
func TokenSource(ctx context.Context, conf core.ClassroomConfig) (oauth2.TokenSource, error) {
	if conf.RefreshToken != "" && conf.ClientID != "" {
		oconf := &oauth2.Config{
			ClientID:     conf.ClientID,
			ClientSecret: conf.ClientSecret,
			Endpoint:     endpoints.Google,
			Scopes:       Scopes,
		}
		tok := &oauth2.Token{AccessToken: conf.AccessToken, RefreshToken: conf.RefreshToken}
		return oconf.TokenSource(ctx, tok), nil
	}
	if conf.AccessToken != "" {
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: conf.AccessToken, TokenType: "Bearer"}), nil
	}
	return nil, core.ErrNoCredentials
}

// NewFetcher returns a Fetcher authenticated with the configured credentials.
func NewFetcher(ctx context.Context, conf core.ClassroomConfig) (Fetcher, error) {
	ts, err := TokenSource(ctx, conf)
	if err != nil {
		return nil, err
	}
	return NewFetcherWithClient(conf.BaseURL, oauth2.NewClient(ctx, ts)), nil
}

// NewFetcherWithClient returns a Fetcher sending requests through httpClient, which is expected to authenticate them.
func NewFetcherWithClient(baseURL string, httpClient *http.Client) Fetcher {
	return &restFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &rest.Client{HTTPClient: httpClient},
	}
}

func (f *restFetcher) Fetch(ctx context.Context, path string, query url.Values, out interface{}) error {
	req := rest.Request{
		Method:      rest.Get,
		BaseURL:     f.baseURL + path,
		Headers:     map[string]string{"Accept": "application/json"},
		QueryParams: make(map[string]string, len(query)),
	}
	for k := range query {
		req.QueryParams[k] = query.Get(k)
	}

	httpReq, err := rest.BuildRequestObject(req)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	res, err := f.client.MakeRequest(httpReq.WithContext(ctx))
	if err != nil {
		return f.transportError(ctx, path, err)
	}
	resp, err := rest.BuildResponse(res)
	if err != nil {
		return f.transportError(ctx, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return core.NewUpstreamError(resp.StatusCode, path, errors.New(upstreamMessage(resp.Body)))
	}
	if out == nil || resp.Body == "" {
		return nil
	}
	if err = json.Unmarshal([]byte(resp.Body), out); err != nil {
		return core.NewUpstreamError(resp.StatusCode, path, errors.Wrap(err, "decoding response"))
	}
	return nil
}

// transportError maps failures that produced no upstream response.
func (f *restFetcher) transportError(ctx context.Context, path string, err error) error {
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		return core.NewUpstreamError(http.StatusUnauthorized, path, rerr)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return core.NewUpstreamError(0, path, err)
}

// upstreamMessage extracts the message of a Google API error body, falling back to the raw body.
func upstreamMessage(body string) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err == nil && payload.Error.Message != "" {
		return payload.Error.Message
	}
	if len(body) > 200 {
		body = body[:200]
	}
	return strings.TrimSpace(body)
}
