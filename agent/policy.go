package agent

import (
	"strings"

	"github.com/cortexai/cortexai/prompt"
)

// toolInstruction is the fixed system instruction teaching the model the
// textual tool-call protocol.
const toolInstruction = "If a tool is needed, respond with [UseTool:ToolName arg=...]. " +
	"Otherwise, provide a direct answer."

// PromptPolicy is the value object that shapes an agent's system prompt:
// a template with {name}, {domain} and {capabilities} placeholders, plus the
// domain and capability list substituted into it. Specialization is achieved
// by injecting a policy at construction instead of subclassing the agent.
type PromptPolicy struct {
	SystemTemplate string
	Domain         string
	Capabilities   []string
}

// DefaultPromptPolicy is the general-purpose policy used when none is supplied.
func DefaultPromptPolicy() PromptPolicy {
	return PromptPolicy{
		SystemTemplate: "You are {name}. Use ReAct reasoning.",
		Domain:         "general",
	}
}

// SpecializedPromptPolicy returns a domain-scoped policy in the shape the
// specialized presets use.
func SpecializedPromptPolicy(domain string, capabilities ...string) PromptPolicy {
	return PromptPolicy{
		SystemTemplate: "You are {name}, a specialized AI assistant focused on the {domain} domain. " +
			"You have expertise in this area and will approach tasks with domain-specific " +
			"knowledge and methodologies. Use the available tools when needed to accomplish " +
			"your tasks effectively.",
		Domain:       domain,
		Capabilities: capabilities,
	}
}

// SystemPrompt renders the policy template for the given agent name.
func (p PromptPolicy) SystemPrompt(name string) string {
	template := p.SystemTemplate
	if template == "" {
		template = DefaultPromptPolicy().SystemTemplate
	}
	return prompt.NewTemplate(template).Format(map[string]string{
		"name":         name,
		"domain":       p.Domain,
		"capabilities": strings.Join(p.Capabilities, ", "),
	})
}

// buildThinkPrompt assembles the role-tagged prompt for one think phase:
// policy system prompt, memory context, the tool protocol instruction, and
// the step description as the user message.
func buildThinkPrompt(policy PromptPolicy, name, memoryContext, stepDescription string) *prompt.Prompt {
	pr := prompt.New()
	pr.AddSystem(policy.SystemPrompt(name))
	if memoryContext != "" {
		pr.AddSystem("Context:\n" + memoryContext)
	}
	pr.AddSystem(toolInstruction)
	pr.AddUser(stepDescription)
	return pr
}
