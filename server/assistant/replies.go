package assistant

// Fixed user-facing reply texts. The bot speaks Russian.

const replyNonText = "Пока понимаю только текстовые сообщения 🙂"

const replyStart = "Привет, я виртуальный Главбух 🤖\n\n" +
	"Могу:\n" +
	"• отвечать на вопросы по учёту и налогам;\n" +
	"• помогать с проводками и договорами;\n" +
	"• по фразам типа «Сделай платёжку КВАД → Квартал 200000 без НДС» " +
	"формировать JSON платежного поручения.\n\n" +
	"Дополнительно:\n" +
	"• «запомни: ...» — я запоминаю факт про твой бизнес;\n" +
	"• «задача: ...» — создаю задачу и добавляю в список;\n" +
	"• /tasks — показать все задачи;\n" +
	"• /done 3 — пометить задачу #3 как выполненную;\n" +
	"• /reset — очистить контекст диалога.\n"

const replyHelp = "Как со мной работать:\n\n" +
	"💬 Обычные вопросы:\n" +
	"  «Как провести аренду спецтехники в 1С?»\n" +
	"  «Когда выгоднее УСН 6%, а когда 15%?»\n\n" +
	"💸 Платёжка:\n" +
	"  «Сделай платежку КВАД → Квартал 200000 без НДС по договору 5 от 20.10.2025»\n\n" +
	"🧠 Память:\n" +
	"  «запомни: ООО \"КВАД\" — наш подрядчик по самосвалам, без НДС»\n\n" +
	"📋 Задачи:\n" +
	"  «задача: проверить ЕНС по КВАД за октябрь»\n" +
	"  /tasks — список задач\n" +
	"  /done 1 — завершить задачу #1\n"

const replyReset = "Контекст диалога очищен. Начинаем с чистого листа 🙂"

const replyDoneUsage = "Напиши так: /done 3 — чтобы закрыть задачу #3."

const replyFactSaved = "Окей, запомнил 👍"

const replyTaskEmpty = "Не смог создать задачу, текст пустой."

// Diagnostic replies for completion-service faults. Every fault class
// resolves to one of these; faults never escape to the transport layer.

const replyModelNetwork = "Не удалось обратиться к модели (ошибка сети). Попробуй ещё раз позже."

const replyModelBadPayload = "Не удалось разобрать ответ от модели OpenAI."

const replyModelBadFormat = "Модель ответила в неожиданном формате. Смотри логи сервера для деталей."
