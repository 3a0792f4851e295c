package llm

// ConversationTurn represents a complete request-response pair, the unit a
// history store records.
type ConversationTurn struct {
	Request  *ChatRequest  `json:"request"`
	Response *ChatResponse `json:"response"`
}
