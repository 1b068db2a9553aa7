// Package openai implements foundry.Connector on top of the official OpenAI Go
// SDK. A Foundry project exposes an OpenAI-compatible surface under
// {endpoint}/openai; requests are authorized with an Azure Entra ID bearer
// token obtained from an azcore.TokenCredential (DefaultAzureCredential unless
// one is supplied).
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/hupe1980/foundryrelay/foundry"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	// DefaultAPIVersion is the api-version sent with every project request.
	DefaultAPIVersion = "2025-11-15-preview"
	// DefaultScope is the Entra ID scope for Foundry project data-plane calls.
	DefaultScope = "https://ai.azure.com/.default"
)

// Options configure the connector and the project clients it creates.
type Options struct {
	APIVersion string
	Scopes     []string
	// Credential authorizes requests. Nil means DefaultAzureCredential is
	// created on Connect.
	Credential azcore.TokenCredential
	HTTPClient *http.Client
	// MaxRetries is passed to the SDK. The default of 0 disables SDK retries.
	MaxRetries int
	// RequestOptions are appended after the options derived from the fields above.
	RequestOptions []option.RequestOption
}

func defaultOptions() Options {
	return Options{
		APIVersion: DefaultAPIVersion,
		Scopes:     []string{DefaultScope},
	}
}

// Connector creates ProjectClients and implements foundry.Connector.
type Connector struct {
	opts          Options
	newCredential func() (azcore.TokenCredential, error)
}

var _ foundry.Connector = (*Connector)(nil)

// NewConnector creates a Connector with optional overrides.
func NewConnector(optFns ...func(o *Options)) *Connector {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Connector{
		opts: opts,
		newCredential: func() (azcore.TokenCredential, error) {
			cred, err := azidentity.NewDefaultAzureCredential(nil)
			if err != nil {
				return nil, err
			}
			return cred, nil
		},
	}
}

// Connect builds a project client for endpoint and returns its conversation
// client. No request is sent until the first conversation call.
func (c *Connector) Connect(_ context.Context, endpoint string) (foundry.Conversations, error) {
	cred := c.opts.Credential
	if cred == nil {
		var err error
		if cred, err = c.newCredential(); err != nil {
			return nil, fmt.Errorf("create azure credential: %w", err)
		}
	}
	project, err := NewProjectClient(endpoint, cred, func(o *Options) { *o = c.opts })
	if err != nil {
		return nil, err
	}
	return project.OpenAIClient(), nil
}

// ProjectClient addresses a single Foundry project.
type ProjectClient struct {
	endpoint   string
	credential azcore.TokenCredential
	opts       Options
}

// NewProjectClient validates endpoint and returns a client for it.
func NewProjectClient(endpoint string, cred azcore.TokenCredential, optFns ...func(o *Options)) (*ProjectClient, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid project endpoint %q: %w", endpoint, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid project endpoint %q: scheme and host required", endpoint)
	}
	if cred == nil {
		return nil, errors.New("project client requires a credential")
	}
	return &ProjectClient{endpoint: endpoint, credential: cred, opts: opts}, nil
}

// Endpoint returns the normalized project endpoint.
func (p *ProjectClient) Endpoint() string { return p.endpoint }

// OpenAIClient returns a Client bound to the project's OpenAI-compatible surface.
func (p *ProjectClient) OpenAIClient() *Client {
	reqOpts := []option.RequestOption{
		option.WithBaseURL(p.endpoint + "/openai/"),
		option.WithMaxRetries(p.opts.MaxRetries),
		option.WithMiddleware(bearerToken(p.credential, p.opts.Scopes)),
	}
	if p.opts.APIVersion != "" {
		reqOpts = append(reqOpts, option.WithQuery("api-version", p.opts.APIVersion))
	}
	if p.opts.HTTPClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(p.opts.HTTPClient))
	}
	reqOpts = append(reqOpts, p.opts.RequestOptions...)

	client := openai.NewClient(reqOpts...)
	return NewClient(&client)
}

// bearerToken authorizes each request with a fresh token from cred. Token
// caching is left to the credential.
func bearerToken(cred azcore.TokenCredential, scopes []string) option.Middleware {
	return func(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
		tok, err := cred.GetToken(req.Context(), policy.TokenRequestOptions{Scopes: scopes})
		if err != nil {
			return nil, fmt.Errorf("acquire token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+tok.Token)
		return next(req)
	}
}
