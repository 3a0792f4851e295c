package llm

import (
	"encoding/json"

	"github.com/shibotong/OllamaKit/pkg/jsonvalue"
)

// Role identifies who authored a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleAssistant Role = "assistant"
	RoleUser      Role = "user"
	RoleTool      Role = "tool"
)

// Valid reports whether r is one of the four known role tags.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleAssistant, RoleUser, RoleTool:
		return true
	}
	return false
}

// UnmarshalJSON decodes a role string, rejecting unknown tags instead of
// defaulting silently.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	role := Role(s)
	if !role.Valid() {
		return &UnknownRoleError{Role: s}
	}
	*r = role
	return nil
}

// Message represents a single message in a conversation. Role and Content
// are always encoded; the remaining fields are omitted when empty.
//
// Which optional fields make sense for which role (thinking on assistant
// turns, tool_name on tool turns) is an API contract between the caller and
// Ollama, not something this type enforces.
type Message struct {
	Role     Role   `json:"role"`
	Content  string `json:"content"`
	Thinking string `json:"thinking,omitempty"` // Model-internal reasoning text (thinking models)

	// Images are base64-encoded (for multimodal models)
	Images []string `json:"images,omitempty"`

	// ToolCalls are tool invocations emitted by the model
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`

	// ToolName is the name of the tool a tool-role message responds to
	ToolName string `json:"tool_name,omitempty"`
}

// SystemMessage builds a system message.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// UserMessage builds a user message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage builds an assistant message.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// ToolMessage builds a tool result message for the named tool.
func ToolMessage(toolName, content string) Message {
	return Message{Role: RoleTool, Content: content, ToolName: toolName}
}

// ToolCall is a model-emitted invocation of an external function.
// Each ToolCall exclusively owns its Function.
type ToolCall struct {
	Function *Function `json:"function,omitempty"`
}

// Function names the function being called and carries its arguments. The
// argument shape is defined by the tool's schema, so it is an arbitrary
// JSON value.
type Function struct {
	Name      string           `json:"name"`
	Arguments *jsonvalue.Value `json:"arguments,omitempty"`
}
