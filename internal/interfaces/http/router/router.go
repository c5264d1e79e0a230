// Package router mounts the REST API on a gin engine.
package router

import (
	"net/http"

	"github.com/erp/erpcore/internal/domain/identity"
	"github.com/erp/erpcore/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Router mounts domain groups under /api/<version>
type Router struct {
	engine      *gin.Engine
	apiVersion  string
	authChain   []gin.HandlerFunc
	permissions middleware.PermissionConfig
	groups      []*DomainGroup
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		if version != "" {
			r.apiVersion = version
		}
	}
}

// WithAuthentication sets the middleware chain run before every protected route
func WithAuthentication(chain ...gin.HandlerFunc) RouterOption {
	return func(r *Router) {
		r.authChain = chain
	}
}

// WithPermissionLogger logs capability denials
func WithPermissionLogger(log *zap.Logger) RouterOption {
	return func(r *Router) {
		r.permissions.Logger = log
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds domain groups to be mounted by Setup
func (r *Router) Register(groups ...*DomainGroup) *Router {
	r.groups = append(r.groups, groups...)
	return r
}

// Setup mounts every registered group
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, g := range r.groups {
		g.mount(api, r.authChain, r.permissions)
	}
}

// Routes lists every route of the registered groups with the capability it needs
func (r *Router) Routes() []RouteInfo {
	var routes []RouteInfo
	base := "/api/" + r.apiVersion
	for _, g := range r.groups {
		for _, rt := range g.routes {
			routes = append(routes, RouteInfo{
				Method:       rt.method,
				Path:         base + g.prefix + rt.path,
				Public:       g.public,
				Capabilities: rt.capabilities,
			})
		}
	}
	return routes
}

// RouteInfo describes one mounted route
type RouteInfo struct {
	Method       string
	Path         string
	Public       bool
	Capabilities []identity.Capability
}

// DomainGroup is a set of routes sharing a prefix. Routes of a protected
// group run behind the authentication chain; a route listing capabilities
// also needs one of them.
type DomainGroup struct {
	name   string
	prefix string
	public bool
	routes []routeDefinition
}

type routeDefinition struct {
	method       string
	path         string
	handler      gin.HandlerFunc
	capabilities []identity.Capability
}

// NewDomainGroup creates a protected route group
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

// NewPublicGroup creates a group whose routes need no token
func NewPublicGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix, public: true}
}

func (dg *DomainGroup) handle(method, path string, handler gin.HandlerFunc, caps []identity.Capability) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{
		method:       method,
		path:         path,
		handler:      handler,
		capabilities: caps,
	})
	return dg
}

// GET registers a GET route
func (dg *DomainGroup) GET(path string, handler gin.HandlerFunc, caps ...identity.Capability) *DomainGroup {
	return dg.handle(http.MethodGet, path, handler, caps)
}

// POST registers a POST route
func (dg *DomainGroup) POST(path string, handler gin.HandlerFunc, caps ...identity.Capability) *DomainGroup {
	return dg.handle(http.MethodPost, path, handler, caps)
}

// PUT registers a PUT route
func (dg *DomainGroup) PUT(path string, handler gin.HandlerFunc, caps ...identity.Capability) *DomainGroup {
	return dg.handle(http.MethodPut, path, handler, caps)
}

// PATCH registers a PATCH route
func (dg *DomainGroup) PATCH(path string, handler gin.HandlerFunc, caps ...identity.Capability) *DomainGroup {
	return dg.handle(http.MethodPatch, path, handler, caps)
}

// DELETE registers a DELETE route
func (dg *DomainGroup) DELETE(path string, handler gin.HandlerFunc, caps ...identity.Capability) *DomainGroup {
	return dg.handle(http.MethodDelete, path, handler, caps)
}

func (dg *DomainGroup) mount(api *gin.RouterGroup, authChain []gin.HandlerFunc, permissions middleware.PermissionConfig) {
	group := api.Group(dg.prefix)
	if !dg.public && len(authChain) > 0 {
		group.Use(authChain...)
	}

	for _, rt := range dg.routes {
		handlers := make([]gin.HandlerFunc, 0, 2)
		if !dg.public && len(rt.capabilities) > 0 {
			handlers = append(handlers, middleware.RequireAnyCapabilityWithConfig(permissions, rt.capabilities...))
		}
		handlers = append(handlers, rt.handler)
		group.Handle(rt.method, rt.path, handlers...)
	}
}

// Name returns the group name
func (dg *DomainGroup) Name() string {
	return dg.name
}

// Prefix returns the group prefix
func (dg *DomainGroup) Prefix() string {
	return dg.prefix
}
