// Package classify maps diagnostic message text to a warning type and
// severity via a bank of pre-compiled patterns. Classification is purely
// lexical: no semantic understanding of the diagnosed source is attempted.
package classify

import (
	"regexp"
	"strings"

	"github.com/swiftconcur/parser/pkg/warning"
)

// The pattern bank is process-wide, read-only, compiled once at init.
var (
	// Actor isolation violations in their various phrasings.
	actorIsolation = regexp.MustCompile(
		`(?i)(actor-isolated\s+(property|method|function|instance|var|let|subscript).*?(can\s*not|cannot)\s+be\s+(referenced|accessed|called|mutated))|(\w+.*is\s+actor-isolated)`)

	// Sendable conformance issues.
	sendableConformance = regexp.MustCompile(
		`(?i)(type\s+'[^']+'\s+does\s+not\s+conform\s+to.*sendable)|(capture.*requires.*sendable)|(.*non-sendable.*)`)

	// Data races and concurrent mutation.
	dataRace = regexp.MustCompile(
		`(?i)(data\s+race|race\s+condition|concurrent\s+access|mutation\s+of\s+captured\s+var)`)

	// Concurrency overhead and deadlock risk.
	performance = regexp.MustCompile(
		`(?i)(performance.*concurrency|async.*overhead|potential\s+deadlock|excessive\s+await)`)

	// Task lifecycle problems.
	taskLifecycle = regexp.MustCompile(
		`(?i)(task.*cancelled|task.*leaked|detached\s+task)`)

	// Main-actor specific wording.
	mainActor = regexp.MustCompile(
		`(?i)(main\s+actor.*isolation|call\s+to\s+main\s+actor|main\s+actor.*unsafe)`)
)

// Categorize classifies a diagnostic message. First match wins; the order
// encodes severity precedence, so a message matching both data-race and
// actor-isolation vocabulary is always the more critical DataRace.
func Categorize(message string) (warning.Type, warning.Severity) {
	if dataRace.MatchString(message) {
		return warning.TypeDataRace, warning.SeverityCritical
	}
	if actorIsolation.MatchString(message) || mainActor.MatchString(message) {
		return warning.TypeActorIsolation, warning.SeverityHigh
	}
	if sendableConformance.MatchString(message) {
		return warning.TypeSendableConformance, warning.SeverityHigh
	}
	if taskLifecycle.MatchString(message) {
		return warning.TypeActorIsolation, warning.SeverityMedium
	}
	if performance.MatchString(message) {
		return warning.TypePerformanceRegression, warning.SeverityMedium
	}
	return warning.TypeUnknown, warning.SeverityLow
}

// SuggestFix returns a remediation hint for a classified warning, derived by
// static rule from the type and message wording. Empty for TypeUnknown.
func SuggestFix(t warning.Type, message string) string {
	switch t {
	case warning.TypeActorIsolation:
		switch {
		case strings.Contains(message, "can not be mutated") || strings.Contains(message, "cannot be mutated"):
			return "Consider using 'await' or @MainActor to safely mutate the actor-isolated property."
		case strings.Contains(message, "can not be referenced") || strings.Contains(message, "cannot be referenced"):
			return "Use 'await' to access the actor-isolated member, or move this code into an actor context."
		case strings.Contains(message, "Main actor"):
			return "Use '@MainActor' annotation or dispatch to the main queue with 'await MainActor.run'."
		default:
			return "Ensure proper actor isolation by using 'await' or moving code to appropriate actor context."
		}
	case warning.TypeSendableConformance:
		switch {
		case strings.Contains(message, "does not conform"):
			return "Add 'Sendable' conformance to the type or use '@unchecked Sendable' if thread-safe."
		case strings.Contains(message, "capture"):
			return "Ensure captured values conform to 'Sendable' or restructure to avoid capture."
		default:
			return "Review Sendable conformance requirements for concurrent contexts."
		}
	case warning.TypeDataRace:
		return "Protect shared mutable state with proper synchronization (actors, locks, or atomic operations)."
	case warning.TypePerformanceRegression:
		return "Review async/await usage patterns and consider optimizing concurrency structure."
	default:
		return ""
	}
}
