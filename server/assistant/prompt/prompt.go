// Package prompt assembles completion-service requests for the two
// model-backed modes: general consultation and payment-order generation.
package prompt

import (
	"github.com/glavbukh/glavbukh-bot/plugin/ai"
	"github.com/glavbukh/glavbukh-bot/server/assistant/session"
)

const consultationSystemPrompt = `Ты — виртуальный главный бухгалтер и финансовый директор.
Твоя задача — помогать Николаю как опытный главбух:
- объяснять налоги, проводки, УСН/ОСНО, НДС, страховые взносы;
- предлагать, как безопасно и законно оформить операции;
- отвечать коротко, структурно, по делу, без воды;
- писать по-русски, понятным деловым языком;
- если данных мало — задавать уточняющие вопросы.

Всегда исходи из российского законодательства (НК РФ, ТК РФ и т.п.).`

const paymentSystemPrompt = `Ты — виртуальный главный бухгалтер.
Твоя задача: по текстовому описанию сформировать платежное поручение.

Формат ответа:
1) Кратко, 2–4 строки, поясни суть платежа человеческим языком.
2) Затем на новой строке напиши: JSON:
3) Далее выведи ТОЛЬКО один объект JSON без пояснений, строго по шаблону:

{
 "type": "payment",
 "payer_name": "...",
 "payer_inn": "...",
 "payer_kpp": "...",
 "payer_account": "...",
 "receiver_name": "...",
 "receiver_inn": "...",
 "receiver_kpp": "...",
 "receiver_account": "...",
 "bank_bik": "...",
 "amount_rub": 0,
 "amount_kop": 0,
 "is_budget": false,
 "kbk": null,
 "oktmo": null,
 "uin": null,
 "tax_period": null,
 "purpose": "...",
 "need_clarification": []
}

Правила:
- amount_rub и amount_kop — целые числа.
- is_budget = true, если это платеж в бюджет (налоги, взносы, штрафы и т.п.).
- Если это бюджетный платеж и не хватает данных (КБК, ОКТМО, УИН, период) — ставь null и добавляй вопросы в массив need_clarification.
- Если это обычный хозяйственный платеж (поставщик, аренда и т.п.) — is_budget = false, kbk/oktmo/uin/tax_period = null.
- В need_clarification пиши короткие вопросы по-русски.
- Если всё понятно и реквизиты полные — массив need_clarification оставь пустым.

Отвечай всегда на русском языке.`

// Consultation builds the consultation-mode request: the persona prompt,
// optionally extended with the rendered facts block, the dialogue window
// in chronological order, and the new user turn.
func Consultation(factsBlock string, history []session.Turn, userText string) []ai.Message {
	systemPrompt := consultationSystemPrompt
	if factsBlock != "" {
		systemPrompt = systemPrompt + "\n\n" + factsBlock
	}

	messages := make([]ai.Message, 0, len(history)+2)
	messages = append(messages, ai.SystemPrompt(systemPrompt))
	for _, turn := range history {
		messages = append(messages, ai.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, ai.UserMessage(userText))
	return messages
}

// Payment builds the payment-mode request: the two-part output contract
// with the fixed payment-order schema, plus the raw user text as the sole
// context turn. No dialogue history is involved; every payment request is
// stateless with respect to prior conversation.
func Payment(userText string) []ai.Message {
	return []ai.Message{
		ai.SystemPrompt(paymentSystemPrompt),
		ai.UserMessage(userText),
	}
}
