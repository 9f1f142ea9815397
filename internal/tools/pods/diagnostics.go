package pods

import "fmt"

// summarizePodHealth reduces a `kubectl get pods -o json` payload into a
// readiness/restart summary, the kind of rollup spec §4.8's health_check_pods
// promises instead of the raw pod list.
func summarizePodHealth(result interface{}) map[string]interface{} {
	items := listItems(result)
	total := len(items)
	ready, notReady := 0, 0
	var unhealthy []map[string]interface{}
	var totalRestarts int64

	for _, item := range items {
		pod, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		name, _ := nested(pod, "metadata", "name").(string)
		phase, _ := nested(pod, "status", "phase").(string)

		allReady := true
		var restarts int64
		statuses, _ := nested(pod, "status", "containerStatuses").([]interface{})
		for _, cs := range statuses {
			m, ok := cs.(map[string]interface{})
			if !ok {
				continue
			}
			if r, ok := m["ready"].(bool); !ok || !r {
				allReady = false
			}
			if c, ok := m["restartCount"].(float64); ok {
				restarts += int64(c)
			}
		}
		totalRestarts += restarts

		if allReady && phase == "Running" {
			ready++
		} else {
			notReady++
			unhealthy = append(unhealthy, map[string]interface{}{
				"name":     name,
				"phase":    phase,
				"restarts": restarts,
			})
		}
	}

	return map[string]interface{}{
		"totalPods":     total,
		"readyPods":     ready,
		"unhealthyPods": notReady,
		"totalRestarts": totalRestarts,
		"unhealthy":     unhealthy,
	}
}

// diagnoseCrash correlates a pod's last termination state with its recent
// events to produce a human-readable crash explanation.
func diagnoseCrash(pod interface{}, events interface{}) map[string]interface{} {
	podMap, _ := pod.(map[string]interface{})
	name, _ := nested(podMap, "metadata", "name").(string)

	var reasons []string
	var exitCode float64
	var lastState string

	statuses, _ := nested(podMap, "status", "containerStatuses").([]interface{})
	for _, cs := range statuses {
		m, ok := cs.(map[string]interface{})
		if !ok {
			continue
		}
		if terminated, ok := nested(m, "lastState", "terminated").(map[string]interface{}); ok {
			lastState = "terminated"
			if code, ok := terminated["exitCode"].(float64); ok {
				exitCode = code
			}
			if reason, ok := terminated["reason"].(string); ok {
				reasons = append(reasons, reason)
			}
		}
		if waiting, ok := nested(m, "state", "waiting").(map[string]interface{}); ok {
			if reason, ok := waiting["reason"].(string); ok {
				reasons = append(reasons, reason)
			}
		}
	}

	var recentEvents []string
	for _, item := range listItems(events) {
		e, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		message, _ := e["message"].(string)
		reason, _ := e["reason"].(string)
		if message != "" {
			recentEvents = append(recentEvents, fmt.Sprintf("%s: %s", reason, message))
		}
	}

	return map[string]interface{}{
		"pod":           name,
		"lastState":     lastState,
		"exitCode":      exitCode,
		"reasons":       reasons,
		"recentEvents":  recentEvents,
		"likelyFixable": len(reasons) > 0,
	}
}

// diagnosePending explains why pods are stuck Pending based on their
// scheduling conditions.
func diagnosePending(result interface{}) []map[string]interface{} {
	var out []map[string]interface{}
	for _, item := range listItems(result) {
		pod, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		name, _ := nested(pod, "metadata", "name").(string)

		var reason string
		conditions, _ := nested(pod, "status", "conditions").([]interface{})
		for _, c := range conditions {
			cm, ok := c.(map[string]interface{})
			if !ok {
				continue
			}
			if t, _ := cm["type"].(string); t == "PodScheduled" {
				if status, _ := cm["status"].(string); status != "True" {
					reason, _ = cm["message"].(string)
				}
			}
		}
		if reason == "" {
			reason = "pod is pending; no scheduling condition message available"
		}

		out = append(out, map[string]interface{}{
			"name":   name,
			"reason": reason,
		})
	}
	return out
}

// filterEvicted narrows a Failed-phase pod list to those actually evicted
// (kubectl surfaces eviction as status.reason == "Evicted").
func filterEvicted(result interface{}) []map[string]interface{} {
	var out []map[string]interface{}
	for _, item := range listItems(result) {
		pod, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		reason, _ := nested(pod, "status", "reason").(string)
		if reason != "Evicted" {
			continue
		}
		name, _ := nested(pod, "metadata", "name").(string)
		message, _ := nested(pod, "status", "message").(string)
		out = append(out, map[string]interface{}{
			"name":    name,
			"reason":  reason,
			"message": message,
		})
	}
	return out
}

func listItems(result interface{}) []interface{} {
	m, ok := result.(map[string]interface{})
	if !ok {
		return nil
	}
	items, _ := m["items"].([]interface{})
	return items
}

func nested(m map[string]interface{}, keys ...string) interface{} {
	var cur interface{} = m
	for _, k := range keys {
		cm, ok := cur.(map[string]interface{})
		if !ok {
			return nil
		}
		cur = cm[k]
	}
	return cur
}
