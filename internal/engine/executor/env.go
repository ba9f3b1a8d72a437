package executor

import "sort"

// MergeEnvironment layers environment maps with the defined precedence (low
// to high): explicit base, rule-level overrides, target-level overrides. The
// result is a sorted "KEY=VALUE" slice ready for process execution. Nothing
// is read from ambient process state, so batches stay hermetic under test.
func MergeEnvironment(base, ruleEnv, targetEnv map[string]string) []string {
	merged := make(map[string]string, len(base)+len(ruleEnv)+len(targetEnv))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range ruleEnv {
		merged[k] = v
	}
	for k, v := range targetEnv {
		merged[k] = v
	}

	result := make([]string, 0, len(merged))
	for k, v := range merged {
		result = append(result, k+"="+v)
	}
	sort.Strings(result)
	return result
}
