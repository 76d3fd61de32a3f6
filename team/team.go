package team

import (
	"github.com/cortexai/cortexai/agent"
	"github.com/cortexai/cortexai/provider"
)

// NewResearchTeam assembles a system with researcher, analyst and writer
// members around the provider.
func NewResearchTeam(p provider.Provider, optFns ...func(o *SystemOptions)) *System {
	pool := newPresetPool(
		specializedMember("Researcher", p, "research and information gathering", "web search", "source evaluation"),
		specializedMember("Analyst", p, "data analysis", "pattern recognition", "synthesis"),
		specializedMember("Writer", p, "technical writing", "summarization", "report structuring"),
	)
	return NewSystem(p, pool, optFns...)
}

// NewSoftwareTeam assembles a system with architect, developer and reviewer
// members around the provider.
func NewSoftwareTeam(p provider.Provider, optFns ...func(o *SystemOptions)) *System {
	pool := newPresetPool(
		specializedMember("Architect", p, "software architecture", "system design", "trade-off analysis"),
		specializedMember("Developer", p, "software development", "code generation", "debugging"),
		specializedMember("Reviewer", p, "code review", "testing", "quality assurance"),
	)
	return NewSystem(p, pool, optFns...)
}

// NewContentTeam assembles a system with strategist, writer and editor
// members around the provider.
func NewContentTeam(p provider.Provider, optFns ...func(o *SystemOptions)) *System {
	pool := newPresetPool(
		specializedMember("Strategist", p, "content strategy", "audience analysis", "topic planning"),
		specializedMember("Writer", p, "content creation", "drafting", "storytelling"),
		specializedMember("Editor", p, "editing", "proofreading", "tone adjustment"),
	)
	return NewSystem(p, pool, optFns...)
}

// newPresetPool builds a pool from members whose names are fixed and
// unique, so registration cannot fail.
func newPresetPool(members ...Member) *Pool {
	pool := NewPool()
	for _, m := range members {
		_ = pool.Register(m)
	}
	return pool
}

func specializedMember(name string, p provider.Provider, domain string, capabilities ...string) Member {
	return agent.New(name, p, func(o *agent.Options) {
		o.Policy = agent.SpecializedPromptPolicy(domain, capabilities...)
	})
}
