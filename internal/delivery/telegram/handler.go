package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/eccues/eccues-bot/internal/usecase"
	"github.com/eccues/eccues-bot/pkg/logger"
)

// BotHandler Telegram bot handler
type BotHandler struct {
	bot         *tgbotapi.BotAPI
	chatUseCase usecase.ChatUseCase
	catalogUC   usecase.CatalogUseCase
	webhookURL  string
	port        int
	updates     chan tgbotapi.Update
}

// NewBotHandler yangi bot handler yaratish
func NewBotHandler(
	token string,
	webhookURL string,
	port int,
	chatUseCase usecase.ChatUseCase,
	catalogUC usecase.CatalogUseCase,
) (*BotHandler, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &BotHandler{
		bot:         bot,
		chatUseCase: chatUseCase,
		catalogUC:   catalogUC,
		webhookURL:  webhookURL,
		port:        port,
		updates:     make(chan tgbotapi.Update, 100),
	}, nil
}

// Start botni ishga tushirish. WEBHOOK_URL berilgan bo'lsa webhook
// rejimi, aks holda long polling. HTTP server har ikkala rejimda ham
// ishlaydi (health check uchun).
func (h *BotHandler) Start(ctx context.Context) error {
	logger.InfoLogger.Printf("🤖 Bot @%s ishga tushdi!", h.bot.Self.UserName)

	if err := h.setCommands(); err != nil {
		logger.ErrorLogger.Printf("❌ Komandalarni o'rnatishda xato: %v", err)
	}

	var updates tgbotapi.UpdatesChannel
	if h.webhookURL != "" {
		if err := h.registerWebhook(); err != nil {
			return fmt.Errorf("failed to register webhook: %w", err)
		}
		updates = h.updates
	} else {
		u := tgbotapi.NewUpdate(0)
		u.Timeout = 60
		updates = h.bot.GetUpdatesChan(u)
		logger.InfoLogger.Println("📡 Long polling rejimi")
	}

	server := h.startHTTPServer(ctx)
	defer h.shutdownHTTPServer(server)

	for {
		select {
		case <-ctx.Done():
			logger.InfoLogger.Println("⏳ Bot to'xtatilmoqda...")
			return ctx.Err()
		case update := <-updates:
			if update.CallbackQuery != nil {
				go h.handleCallback(ctx, update.CallbackQuery)
				continue
			}

			if update.Message == nil {
				continue
			}

			go h.handleMessage(ctx, update.Message)
		}
	}
}

// setCommands bot komandalar menyusini o'rnatish
func (h *BotHandler) setCommands() error {
	cmds := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Bắt đầu"},
		tgbotapi.BotCommand{Command: "catalog", Description: "Danh sách sản phẩm"},
		tgbotapi.BotCommand{Command: "warranty", Description: "Chế độ bảo hành"},
		tgbotapi.BotCommand{Command: "leadtime", Description: "Thời gian sản xuất"},
		tgbotapi.BotCommand{Command: "contact", Description: "Liên hệ"},
	)
	_, err := h.bot.Request(cmds)
	return err
}

// handleMessage xabarni qayta ishlash
func (h *BotHandler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	username := message.From.UserName
	if username == "" {
		username = message.From.FirstName
	}

	if message.IsCommand() {
		h.handleCommand(ctx, message)
		return
	}

	if message.Text == "" {
		return
	}

	reply, err := h.chatUseCase.ProcessMessage(ctx, userID, username, message.Text)
	if err != nil {
		logger.ErrorLogger.Printf("❌ Xabarni qayta ishlashda xato (user %d): %v", userID, err)
		reply = usecase.FallbackText
	}

	h.sendMessageMarkdown(message.Chat.ID, reply)
}

// handleCommand komandalarni qayta ishlash
func (h *BotHandler) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		reply, err := h.chatUseCase.Greet(ctx, message.From.ID)
		if err != nil {
			logger.ErrorLogger.Printf("❌ Greet xatosi (user %d): %v", message.From.ID, err)
			reply = usecase.WelcomeText
		}
		msg := tgbotapi.NewMessage(message.Chat.ID, reply)
		msg.ReplyMarkup = mainKeyboard()
		if _, err := h.bot.Send(msg); err != nil {
			logger.ErrorLogger.Printf("❌ Xabar yuborishda xato: %v", err)
		}
	case "catalog":
		h.sendCatalogPage(ctx, message.Chat.ID, 1)
	case "warranty":
		h.sendMessageMarkdown(message.Chat.ID, usecase.WarrantyText)
	case "leadtime":
		h.sendMessageMarkdown(message.Chat.ID, usecase.LeadtimeText)
	case "contact":
		h.sendMessageMarkdown(message.Chat.ID, usecase.ContactText)
	default:
		h.sendMessage(message.Chat.ID, usecase.FallbackText)
	}
}

// handleCallback inline tugma bosilishini qayta ishlash
func (h *BotHandler) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	// Telegram "loading" belgisini olib tashlash uchun javob shart
	if _, err := h.bot.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		logger.ErrorLogger.Printf("❌ Callback javobida xato: %v", err)
	}

	page, ok := parseCatalogPage(callback.Data)
	if !ok {
		return
	}

	text, actualPage, hasPrev, hasNext, err := h.catalogUC.GetPage(ctx, page)
	if err != nil {
		logger.ErrorLogger.Printf("❌ Katalog sahifasida xato: %v", err)
		return
	}

	edit := tgbotapi.NewEditMessageText(callback.Message.Chat.ID, callback.Message.MessageID, text)
	if markup := catalogPageKeyboard(actualPage, hasPrev, hasNext); markup != nil {
		edit.ReplyMarkup = markup
	}
	if _, err := h.bot.Send(edit); err != nil {
		logger.ErrorLogger.Printf("❌ Sahifani yangilashda xato: %v", err)
	}
}

// sendCatalogPage katalog sahifasini yuborish
func (h *BotHandler) sendCatalogPage(ctx context.Context, chatID int64, page int) {
	text, actualPage, hasPrev, hasNext, err := h.catalogUC.GetPage(ctx, page)
	if err != nil {
		logger.ErrorLogger.Printf("❌ Katalog sahifasida xato: %v", err)
		h.sendMessage(chatID, usecase.NoDataText)
		return
	}

	msg := tgbotapi.NewMessage(chatID, text)
	if markup := catalogPageKeyboard(actualPage, hasPrev, hasNext); markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := h.bot.Send(msg); err != nil {
		logger.ErrorLogger.Printf("❌ Xabar yuborishda xato: %v", err)
	}
}

// mainKeyboard asosiy reply keyboard
func mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(usecase.MenuCatalogLabel)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(usecase.MenuWarrantyLabel)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(usecase.MenuLeadtimeLabel)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(usecase.MenuContactLabel)),
	)
	kb.ResizeKeyboard = true
	return kb
}

// catalogPageKeyboard sahifalash tugmalari. Bitta sahifa bo'lsa nil.
func catalogPageKeyboard(page int, hasPrev, hasNext bool) *tgbotapi.InlineKeyboardMarkup {
	var buttons []tgbotapi.InlineKeyboardButton
	if hasPrev {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData("⬅️", fmt.Sprintf("catalog:%d", page-1)))
	}
	if hasNext {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData("➡️", fmt.Sprintf("catalog:%d", page+1)))
	}
	if len(buttons) == 0 {
		return nil
	}

	markup := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(buttons...))
	return &markup
}

// parseCatalogPage "catalog:N" callback datadan sahifa raqamini olish
func parseCatalogPage(data string) (int, bool) {
	rest, ok := strings.CutPrefix(data, "catalog:")
	if !ok {
		return 0, false
	}
	page, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return page, true
}

// sendMessageMarkdown Markdown formatda yuborish. Format xatosida
// oddiy text bilan qayta urinish.
func (h *BotHandler) sendMessageMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := h.bot.Send(msg); err != nil {
		logger.ErrorLogger.Printf("❌ Markdown xabarda xato, oddiy text bilan urinish: %v", err)
		h.sendMessage(chatID, text)
	}
}

func (h *BotHandler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		logger.ErrorLogger.Printf("❌ Xabar yuborishda xato: %v", err)
	}
}
