package models

import "time"

// ChatRole - автор сообщения в чате
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage - одно сообщение в переписке с ассистентом.
// Последовательность сообщений упорядочена и неизменяема (append-only).
// Synthetic помечает ответы, сгенерированные локально в degraded-режиме,
// чтобы UI мог отличить их от настоящих ответов ассистента.
type ChatMessage struct {
	Role      ChatRole  `json:"role"`
	Text      string    `json:"text"`
	Synthetic bool      `json:"synthetic,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// AssistantReply - структурированный ответ удаленного ассистента
type AssistantReply struct {
	Reply                string   `json:"reply"`
	Confidence           float64  `json:"confidence,omitempty"`
	SafetyPriority       string   `json:"safety_priority,omitempty"`
	Actions              []string `json:"actions,omitempty"`
	ProactiveSuggestions []string `json:"proactive_suggestions,omitempty"`
}
