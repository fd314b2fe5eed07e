package memory

import "strings"

const (
	maxFindings        = 10
	maxRecommendations = 5
)

// patternFamily declares one keyword family. Families are evaluated
// independently: a text can trigger any subset of them. The optional
// qualifier emits a second, stronger key but is only checked once the
// family itself fires.
type patternFamily struct {
	key       string
	triggers  []string
	qualifier *patternQualifier
}

type patternQualifier struct {
	key      string
	triggers []string
}

var patternFamilies = []patternFamily{
	{
		key:      "has_correlations",
		triggers: []string{"correlação", "correlation"},
		qualifier: &patternQualifier{
			key:      "strong_correlations",
			triggers: []string{"forte", "strong"},
		},
	},
	{
		key:      "has_outliers",
		triggers: []string{"outlier", "atípico"},
		qualifier: &patternQualifier{
			key:      "many_outliers",
			triggers: []string{"alta porcentagem", "high percentage", "muitos outliers"},
		},
	},
	{
		key:      "asymmetric_distributions",
		triggers: []string{"assimétrica", "asymmetric", "skew"},
	},
	{
		key:      "has_clusters",
		triggers: []string{"cluster", "agrupamento"},
	},
	{
		key:      "has_temporal_patterns",
		triggers: []string{"tendência", "trend", "padrão temporal"},
	},
}

// discoveryKeywords mark a line as a finding even without a bullet marker.
var discoveryKeywords = []string{"encontrado", "identificado", "detectado", "observado"}

// ExtractPatterns scans free-form analysis text for keyword signals and
// returns the triggered pattern flags. Keys absent from the result mean the
// pattern was not detected; no explicit false values are emitted.
func ExtractPatterns(text string) map[string]any {
	patterns := map[string]any{}
	if text == "" {
		return patterns
	}
	lower := strings.ToLower(text)

	for _, family := range patternFamilies {
		if !containsAny(lower, family.triggers) {
			continue
		}
		patterns[family.key] = true
		if family.qualifier != nil && containsAny(lower, family.qualifier.triggers) {
			patterns[family.qualifier.key] = true
		}
	}
	return patterns
}

// ExtractFindings collects salient lines from analysis text: bullet lines
// and lines carrying a discovery keyword, in original order, capped at 10.
func ExtractFindings(text string) []string {
	var findings []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "•") {
			findings = append(findings, trimmed)
		} else if containsAny(strings.ToLower(line), discoveryKeywords) {
			findings = append(findings, trimmed)
		}
		if len(findings) == maxFindings {
			break
		}
	}
	return findings
}

// ExtractRecommendations looks for a recommendation section and collects its
// hyphen-prefixed lines, capped at 5. When the section heading cannot be
// located the remaining text is scanned whole rather than failing; absent
// any recommendation marker the result is empty.
func ExtractRecommendations(text string) []string {
	lower := strings.ToLower(text)
	if !strings.Contains(lower, "recomenda") && !strings.Contains(lower, "consider") {
		return nil
	}

	section := text
	if idx := strings.Index(text, "Recomendações"); idx >= 0 {
		section = text[idx+len("Recomendações"):]
	} else if idx := strings.Index(text, "ecomenda"); idx >= 0 {
		section = text[idx+len("ecomenda"):]
	}

	var recs []string
	for _, line := range strings.Split(section, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "-") {
			continue
		}
		recs = append(recs, trimmed)
		if len(recs) == maxRecommendations {
			break
		}
	}
	return recs
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
