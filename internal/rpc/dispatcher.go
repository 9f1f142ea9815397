package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/prompts"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/registry"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/safety"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/secretmask"
)

// ServerInfo is echoed back on mcp.initialize.
type ServerInfo struct {
	Name    string
	Version string
}

// Dispatcher routes JSON-RPC 2.0 requests to the tool registry, safety gate,
// and prompt catalog, and normalizes every response (spec §4.6). One
// Dispatcher is shared by every transport and every session.
type Dispatcher struct {
	info     ServerInfo
	registry *registry.Registry
	policy   *safety.Policy
	prompts  *prompts.Catalog
	log      logr.Logger
}

// New creates a Dispatcher.
func New(info ServerInfo, reg *registry.Registry, policy *safety.Policy, catalog *prompts.Catalog, log logr.Logger) *Dispatcher {
	return &Dispatcher{info: info, registry: reg, policy: policy, prompts: catalog, log: log}
}

// Handle processes one already-decoded Request against sess, returning the
// Response to send (or nil for a notification, per spec §3 JsonRpcMessage).
// Handle never panics: any unexpected condition is converted to a -32603
// internal error response, per spec §7 propagation policy.
func (d *Dispatcher) Handle(ctx context.Context, sess *Session, req *Request) (resp *Response) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error(fmt.Errorf("panic: %v", r), "recovered from handler panic", "method", req.Method)
			if !req.IsNotification() {
				resp = NewError(req.ID, CodeInternalError, "internal error", nil)
			} else {
				resp = nil
			}
		}
	}()

	if req.JSONRPC != Version {
		return errOrNil(req, CodeInvalidRequest, fmt.Sprintf("invalid jsonrpc version %q", req.JSONRPC))
	}

	switch req.Method {
	case MethodInitialize:
		return d.handleInitialize(req, sess)
	case MethodToolDiscovery, MethodToolsList:
		return d.guardInitialized(req, sess, d.handleToolDiscovery)
	case MethodToolCall:
		return d.guardInitialized(req, sess, func(req *Request) *Response { return d.handleToolCall(ctx, req) })
	case MethodPromptsList:
		return d.guardInitialized(req, sess, d.handlePromptsList)
	case MethodPromptsGet:
		return d.guardInitialized(req, sess, d.handlePromptsGet)
	case MethodShutdown:
		return d.guardInitialized(req, sess, func(req *Request) *Response { return d.handleShutdown(req, sess) })
	default:
		return errOrNil(req, CodeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method))
	}
}

// errOrNil builds an error response unless req is a notification, in which
// case no response is emitted (spec §3 JsonRpcMessage).
func errOrNil(req *Request, code int, msg string) *Response {
	if req.IsNotification() {
		return nil
	}
	return NewError(req.ID, code, msg, nil)
}

// guardInitialized rejects a call with -32002 unless the session is
// initialized. Every method except initialize goes through it, shutdown
// included.
func (d *Dispatcher) guardInitialized(req *Request, sess *Session, fn func(*Request) *Response) *Response {
	if !sess.RequireInitialized() {
		return errOrNil(req, CodeServerNotInitialized, "Server not initialized")
	}
	return fn(req)
}

func (d *Dispatcher) handleInitialize(req *Request, sess *Session) *Response {
	var params InitializeParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return errOrNil(req, CodeInvalidParams, "invalid initialize params: "+err.Error())
		}
	}

	if !sess.Initialize(params.ClientInfo) {
		return errOrNil(req, CodeInvalidRequest, "session already initialized")
	}

	result := map[string]interface{}{
		"name":    d.info.Name,
		"version": d.info.Version,
		"capabilities": map[string]interface{}{
			"tools":   map[string]interface{}{"supported": true},
			"prompts": map[string]interface{}{"supported": true},
		},
		"server_info": map[string]interface{}{
			"name":    d.info.Name,
			"version": d.info.Version,
		},
	}
	if req.IsNotification() {
		return nil
	}
	return NewResult(req.ID, result)
}

func (d *Dispatcher) handleToolDiscovery(req *Request) *Response {
	if req.IsNotification() {
		return nil
	}
	list := d.registry.List()
	tools := make([]map[string]interface{}, 0, len(list))
	for _, desc := range list {
		tools = append(tools, map[string]interface{}{
			"name":        desc.Name,
			"description": desc.Description,
			"category":    string(desc.Category),
			"input_schema": schemaFor(desc.Params),
			"annotations": map[string]interface{}{
				"read_only":   desc.Annotations.ReadOnly,
				"destructive": desc.Annotations.Destructive,
				"title":       desc.Annotations.Title,
			},
		})
	}
	return NewResult(req.ID, map[string]interface{}{"tools": tools})
}

func schemaFor(params []registry.Param) map[string]interface{} {
	out := make(map[string]interface{}, len(params))
	for _, p := range params {
		out[p.Name] = map[string]interface{}{
			"type":        string(p.Type),
			"required":    p.Required,
			"default":     p.Default,
			"description": p.Description,
		}
	}
	return out
}

func (d *Dispatcher) handleToolCall(ctx context.Context, req *Request) *Response {
	var params ToolCallParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return errOrNil(req, CodeInvalidParams, "invalid tool.call params: "+err.Error())
		}
	}

	desc, ok := d.registry.Lookup(params.Name)
	if !ok {
		return errOrNil(req, CodeMethodNotFound, fmt.Sprintf("Tool not found: %s", params.Name))
	}

	// Safety gate: consulted before binding/handler invocation, never touches
	// the cluster for a blocked call (spec §4.6 step 2).
	if d.policy.IsBlocked(params.Name) {
		result := &registry.Result{
			Success:   false,
			Error:     d.policy.BlockReason(params.Name),
			ErrorKind: registry.ErrorKindPolicy,
		}
		return finishToolResult(req, result)
	}

	bound, err := bindInput(desc.Params, params.Input)
	if err != nil {
		return errOrNil(req, CodeInvalidParams, "Invalid params: "+err.Error())
	}

	result, err := invokeHandler(ctx, desc, bound)
	if err != nil {
		d.log.Error(err, "tool handler returned an error", "tool", params.Name)
		result = &registry.Result{Success: false, Error: err.Error(), ErrorKind: registry.ErrorKindInternal}
	}

	return finishToolResult(req, result)
}

// invokeHandler calls desc.Handler, converting a nil result (a handler
// contract violation) into an internal-error Result rather than letting a
// nil propagate to the client (spec §4.8 "Errors": handlers never raise out
// of the dispatcher boundary).
func invokeHandler(ctx context.Context, desc registry.Descriptor, in registry.Input) (res *registry.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("panic in handler %q: %v", desc.Name, r)
		}
	}()
	res, err = desc.Handler(ctx, in)
	if err == nil && res == nil {
		res = &registry.Result{Success: false, Error: "handler returned no result", ErrorKind: registry.ErrorKindInternal}
	}
	return res, err
}

// finishToolResult applies the secret masker (spec §4.2, §4.6 step 5) and
// wraps the ToolResult in a JSON-RPC result envelope.
func finishToolResult(req *Request, result *registry.Result) *Response {
	if result.Result != nil {
		result.Result = secretmask.MaskAny(result.Result)
	}
	if result.Error != "" {
		result.Error = secretmask.Mask(result.Error)
	}
	if req.IsNotification() {
		return nil
	}
	return NewResult(req.ID, result)
}

func (d *Dispatcher) handlePromptsList(req *Request) *Response {
	if req.IsNotification() {
		return nil
	}
	templates := d.prompts.List()
	out := make([]map[string]interface{}, 0, len(templates))
	for _, t := range templates {
		params := make([]map[string]interface{}, 0, len(t.Params))
		for _, p := range t.Params {
			params = append(params, map[string]interface{}{
				"name":        p.Name,
				"required":    p.Required,
				"default":     p.Default,
				"description": p.Description,
			})
		}
		out = append(out, map[string]interface{}{
			"name":        t.Name,
			"description": t.Description,
			"parameters":  params,
		})
	}
	return NewResult(req.ID, map[string]interface{}{"prompts": out})
}

func (d *Dispatcher) handlePromptsGet(req *Request) *Response {
	var params PromptsGetParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return errOrNil(req, CodeInvalidParams, "invalid prompts.get params: "+err.Error())
		}
	}

	rendered, err := d.prompts.Render(params.Name, params.Parameters)
	if err != nil {
		return errOrNil(req, CodeInvalidParams, err.Error())
	}
	if req.IsNotification() {
		return nil
	}
	return NewResult(req.ID, map[string]interface{}{"markdown": rendered})
}

func (d *Dispatcher) handleShutdown(req *Request, sess *Session) *Response {
	if !sess.Shutdown() {
		return errOrNil(req, CodeInvalidRequest, "shutdown from invalid state")
	}
	if req.IsNotification() {
		return nil
	}
	return NewResult(req.ID, map[string]interface{}{})
}
