package operations

import (
	"fmt"
	"strings"

	"context"

	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/registry"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/safety"
	"github.com/rohitg00/kubectl-mcp-server-sub000/internal/tools/common"
)

type handlers struct {
	deps     common.Deps
	registry *registry.Registry
	policy   *safety.Policy
}

func (h *handlers) applyManifest(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"apply", "-f", "-"}
	args = common.WithNamespaceArgs(args, in.String("namespace", ""))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectlWithStdin(ctx, args, mutatingTimeout, in.String("manifest", "")), nil
}

func (h *handlers) createFromYAML(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"create", "-f", "-"}
	args = common.WithNamespaceArgs(args, in.String("namespace", ""))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectlWithStdin(ctx, args, mutatingTimeout, in.String("manifest", "")), nil
}

func (h *handlers) describeResource(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"describe", in.String("kind", ""), in.String("name", "")}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, readTimeout, false), nil
}

func (h *handlers) patchResource(ctx context.Context, in registry.Input) (*registry.Result, error) {
	patchType := in.String("patchType", "strategic")
	args := []string{"patch", in.String("kind", ""), in.String("name", ""), "--type", patchType, "-p", in.String("patch", "")}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, mutatingTimeout, false), nil
}

func (h *handlers) rolloutStatus(ctx context.Context, in registry.Input) (*registry.Result, error) {
	kind := in.String("kind", "deployment")
	args := []string{"rollout", "status", fmt.Sprintf("%s/%s", kind, in.String("name", ""))}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, readTimeout, false), nil
}

func (h *handlers) deleteResource(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"delete", in.String("kind", ""), in.String("name", "")}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, mutatingTimeout, false), nil
}

func (h *handlers) kubectlCp(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"cp", in.String("source", ""), in.String("destination", "")}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, mutatingTimeout, false), nil
}

func (h *handlers) backupResource(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"get", in.String("kind", ""), in.String("name", ""), "-o", "yaml"}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, readTimeout, false), nil
}

func (h *handlers) labelResource(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"label", in.String("kind", ""), in.String("name", "")}
	args = append(args, keyValueArgs(in["labels"])...)
	args = append(args, "--overwrite")
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, mutatingTimeout, false), nil
}

func (h *handlers) annotateResource(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"annotate", in.String("kind", ""), in.String("name", "")}
	args = append(args, keyValueArgs(in["annotations"])...)
	args = append(args, "--overwrite")
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, mutatingTimeout, false), nil
}

func keyValueArgs(v interface{}) []string {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil
	}
	var out []string
	for k, val := range m {
		out = append(out, fmt.Sprintf("%s=%v", k, val))
	}
	return out
}

func (h *handlers) taintNode(ctx context.Context, in registry.Input) (*registry.Result, error) {
	node := in.String("node", "")
	key := in.String("key", "")
	value := in.String("value", "")
	effect := in.String("effect", "")
	spec := key
	if value != "" {
		spec = fmt.Sprintf("%s=%s", key, value)
	}
	spec = fmt.Sprintf("%s:%s", spec, effect)

	args := []string{"taint", "nodes", node, spec, "--overwrite"}
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, mutatingTimeout, false), nil
}

func (h *handlers) waitForResource(ctx context.Context, in registry.Input) (*registry.Result, error) {
	condition := in.String("condition", "Ready")
	forExpr := condition
	if !strings.Contains(condition, "=") && !strings.HasPrefix(condition, "delete") {
		forExpr = "condition=" + condition
	}
	args := []string{
		"wait", fmt.Sprintf("%s/%s", in.String("kind", ""), in.String("name", "")),
		"--for", forExpr,
		"--timeout", fmt.Sprintf("%ds", in.Int("timeoutSeconds", 60)),
	}
	args = common.WithNamespaceArgs(args, h.deps.Namespace(in))
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, mutatingTimeout, false), nil
}

func (h *handlers) cordonNode(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"cordon", in.String("node", "")}
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, mutatingTimeout, false), nil
}

func (h *handlers) drainNode(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"drain", in.String("node", "")}
	if in.Bool("ignoreDaemonSets", true) {
		args = append(args, "--ignore-daemonsets")
	}
	if in.Bool("deleteEmptyDirData", false) {
		args = append(args, "--delete-emptydir-data")
	}
	args = append(args, "--force")
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, mutatingTimeout, false), nil
}

func (h *handlers) kubectlPassthrough(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := in.StringSlice("args")
	if len(args) == 0 {
		return registry.Fail(registry.ErrorKindInvalid, "args must be a non-empty array"), nil
	}
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, mutatingTimeout, true), nil
}

func (h *handlers) explainResource(ctx context.Context, in registry.Input) (*registry.Result, error) {
	args := []string{"explain", in.String("field", "")}
	args = common.WithContextArgs(args, h.deps.KubeContext(in))
	return h.deps.RunKubectl(ctx, args, readTimeout, false), nil
}

// naturalLanguageQuery resolves free text to a registered tool by keyword
// matching against each descriptor's name, description, and category, then
// re-invokes it through the same safety gate every tool.call goes through —
// grounded on original_source/kubectl_mcp_tool/natural_language.py's
// process_natural_language, which does the same keyword-to-tool resolution.
func (h *handlers) naturalLanguageQuery(ctx context.Context, in registry.Input) (*registry.Result, error) {
	query := strings.ToLower(in.String("query", ""))
	if query == "" {
		return registry.Fail(registry.ErrorKindInvalid, "query must not be empty"), nil
	}

	desc, ok := h.resolve(query)
	if !ok {
		return registry.Fail(registry.ErrorKindInvalid, "could not resolve query %q to a known tool", query), nil
	}

	if h.policy.IsBlocked(desc.Name) {
		return &registry.Result{Success: false, Error: h.policy.BlockReason(desc.Name), ErrorKind: registry.ErrorKindPolicy}, nil
	}

	resolved := registry.Input{}
	if ns := h.deps.Namespace(in); ns != "" {
		resolved["namespace"] = ns
	}
	if kc := h.deps.KubeContext(in); kc != "" {
		resolved["kubeContext"] = kc
	}

	result, err := desc.Handler(ctx, resolved)
	if err != nil {
		return &registry.Result{Success: false, Error: err.Error(), ErrorKind: registry.ErrorKindInternal}, nil
	}
	return result, nil
}

// resolve scores every registered descriptor against query by keyword
// overlap with its name, description, and category, returning the
// highest-scoring match.
func (h *handlers) resolve(query string) (registry.Descriptor, bool) {
	words := strings.Fields(query)
	var best registry.Descriptor
	bestScore := 0
	for _, desc := range h.registry.List() {
		if desc.Name == "natural_language_query" {
			continue
		}
		haystack := strings.ToLower(strings.ReplaceAll(desc.Name, "_", " ") + " " + desc.Description + " " + string(desc.Category))
		score := 0
		for _, w := range words {
			if len(w) < 3 {
				continue
			}
			if strings.Contains(haystack, w) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = desc
		}
	}
	return best, bestScore > 0
}
