package agent

import (
	"github.com/cortexai/cortexai/provider"
)

// NewResearchAgent returns an autonomous agent specialized for information
// gathering and synthesis.
func NewResearchAgent(name string, p provider.Provider, optFns ...func(o *AutonomousOptions)) *Autonomous {
	return newSpecialized(name, p, "research and information gathering",
		[]string{"web search", "content analysis", "fact verification", "summarization"},
		optFns)
}

// NewCodingAgent returns an autonomous agent specialized for writing and
// reviewing code.
func NewCodingAgent(name string, p provider.Provider, optFns ...func(o *AutonomousOptions)) *Autonomous {
	return newSpecialized(name, p, "software development",
		[]string{"code generation", "debugging", "code review", "refactoring"},
		optFns)
}

// NewWritingAgent returns an autonomous agent specialized for producing
// written content.
func NewWritingAgent(name string, p provider.Provider, optFns ...func(o *AutonomousOptions)) *Autonomous {
	return newSpecialized(name, p, "content creation and editing",
		[]string{"drafting", "editing", "proofreading", "tone adjustment"},
		optFns)
}

func newSpecialized(name string, p provider.Provider, domain string, capabilities []string, optFns []func(o *AutonomousOptions)) *Autonomous {
	policy := SpecializedPromptPolicy(domain, capabilities...)
	all := append([]func(o *AutonomousOptions){func(o *AutonomousOptions) {
		o.Policy = policy
	}}, optFns...)
	return NewAutonomous(name, p, all...)
}
