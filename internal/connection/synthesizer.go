package connection

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// Synthesizer формирует локальные ответы ассистента для degraded-режима.
// Набор ответов фиксированный; выбор детерминирован по тексту запроса,
// чтобы повторная отправка того же сообщения давала тот же ответ.
type Synthesizer struct {
	responses   []string
	suggestions []string
}

// NewSynthesizer создает синтезатор с базовым набором ответов по безопасности
func NewSynthesizer() *Synthesizer {
	return &Synthesizer{
		responses: []string{
			"I'm currently offline, but your safety monitoring is still active. %s",
			"I can't reach the assistant service right now. Your journey is still being monitored. %s",
			"Connection to the assistant is unavailable, running in local mode. %s",
		},
		suggestions: []string{
			"Share your current location for better assistance.",
			"Check that your emergency contacts are up to date.",
			"Consider your planned route for any safety concerns.",
			"If you feel unsafe, use the emergency trigger at any time.",
		},
	}
}

// Reply возвращает ответ для заданного пользовательского сообщения
func (s *Synthesizer) Reply(userText string) string {
	trimmed := strings.TrimSpace(userText)

	// Сообщения с признаками срочности получают явную подсказку про эскалацию
	lower := strings.ToLower(trimmed)
	for _, kw := range []string{"help", "emergency", "danger", "urgent"} {
		if strings.Contains(lower, kw) {
			return "I'm offline right now, but if you are in danger use the emergency trigger immediately. Your trusted contacts will be notified."
		}
	}

	h := fnv.New32a()
	h.Write([]byte(lower))
	sum := h.Sum32()
	base := s.responses[int(sum)%len(s.responses)]
	hint := s.suggestions[int(sum/7)%len(s.suggestions)]
	return fmt.Sprintf(base, hint)
}
