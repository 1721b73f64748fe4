package mcp

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"mediagent/config"
	"mediagent/internal/catalog"
)

// Registry maps the closed set of platform identifiers to running
// collaborator clients. Built once at startup; unknown platforms are
// rejected here instead of surfacing mid-pipeline.
type Registry struct {
	clients map[string]Client
	timeout map[string]time.Duration
	logger  *log.Logger
}

const defaultCallTimeout = 60 * time.Second

// NewRegistry spawns one collaborator per configured platform. Every
// configured platform must exist in the tool catalog.
func NewRegistry(ctx context.Context, cat *catalog.Catalog, platforms map[string]config.PlatformConfig) (*Registry, error) {
	names := make([]string, 0, len(platforms))
	for p := range platforms {
		names = append(names, p)
	}
	if err := cat.Validate(names); err != nil {
		return nil, err
	}
	sort.Strings(names)

	r := &Registry{
		clients: make(map[string]Client, len(platforms)),
		timeout: make(map[string]time.Duration, len(platforms)),
		logger:  log.New(log.Writer(), "[MCP] ", log.LstdFlags),
	}
	for _, p := range names {
		pc := platforms[p]
		client, err := Start(ctx, pc.Command, pc.Args...)
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("start collaborator %s: %w", p, err)
		}
		r.clients[strings.ToLower(p)] = client
		t := pc.Timeout
		if t <= 0 {
			t = defaultCallTimeout
		}
		r.timeout[strings.ToLower(p)] = t
		r.logger.Printf("collaborator %s started (%s)", p, pc.Command)
	}
	return r, nil
}

// NewRegistryFromClients wires pre-built clients, mainly for tests.
func NewRegistryFromClients(clients map[string]Client) *Registry {
	r := &Registry{
		clients: make(map[string]Client, len(clients)),
		timeout: make(map[string]time.Duration, len(clients)),
		logger:  log.New(log.Writer(), "[MCP] ", log.LstdFlags),
	}
	for p, c := range clients {
		r.clients[strings.ToLower(p)] = c
		r.timeout[strings.ToLower(p)] = defaultCallTimeout
	}
	return r
}

// Platforms returns the registered platform identifiers, sorted.
func (r *Registry) Platforms() []string {
	out := make([]string, 0, len(r.clients))
	for p := range r.clients {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Has reports whether a collaborator is running for the platform.
func (r *Registry) Has(platform string) bool {
	_, ok := r.clients[strings.ToLower(platform)]
	return ok
}

// Invoke dispatches one tool call to its platform collaborator and
// normalizes the response shape.
func (r *Registry) Invoke(ctx context.Context, platform, tool string, params map[string]interface{}) (interface{}, error) {
	client, ok := r.clients[strings.ToLower(platform)]
	if !ok {
		return nil, fmt.Errorf("no collaborator configured for platform %q", platform)
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout[strings.ToLower(platform)])
	defer cancel()

	r.logger.Printf("call platform=%s tool=%s", platform, tool)
	res, err := client.CallTool(ctx, tool, params)
	if err != nil {
		return nil, err
	}
	return Normalize(res), nil
}

// Normalize unwraps the common collaborator response envelope: a top-level
// "content" wrapper holding either a structured value or MCP text blocks.
func Normalize(res map[string]interface{}) interface{} {
	if res == nil {
		return nil
	}
	if c, ok := res["content"]; ok {
		return c
	}
	return res
}

// Close shuts down every collaborator process.
func (r *Registry) Close() {
	for p, c := range r.clients {
		if err := c.Close(); err != nil {
			r.logger.Printf("close collaborator %s: %v", p, err)
		}
	}
}
