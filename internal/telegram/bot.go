// Package telegram exposes the planner's read-side over a Telegram
// webhook bot.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"meal-planner/internal/config"
	"meal-planner/internal/meal"
	"meal-planner/internal/planner"
	"meal-planner/internal/shopping"
)

// Bot wraps the Telegram API and the planner service.
type Bot struct {
	api     *tgbotapi.BotAPI
	service *planner.Service
	cfg     *config.Config
	logger  *zap.Logger
}

// NewBot initializes the Telegram Bot and sets the webhook.
func NewBot(cfg *config.Config, service *planner.Service, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	logger.Info("authorized on telegram", zap.String("account", api.Self.UserName))

	wh, err := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("failed to build webhook config: %w", err)
	}
	if _, err := api.Request(wh); err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}

	return &Bot{api: api, service: service, cfg: cfg, logger: logger}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		b.logger.Error("failed to parse update", zap.Error(err))
		return
	}
	if update.Message == nil {
		return
	}

	if b.cfg.TelegramAllowUserID != 0 && update.Message.From.ID != b.cfg.TelegramAllowUserID {
		b.logger.Warn("unauthorized access attempt",
			zap.Int64("user_id", update.Message.From.ID),
			zap.String("user_name", update.Message.From.UserName))
		return
	}

	b.processMessage(r.Context(), update.Message)
}

func (b *Bot) processMessage(ctx context.Context, msg *tgbotapi.Message) {
	fields := strings.Fields(msg.Text)
	if len(fields) == 0 {
		return
	}

	var reply string
	var err error
	switch fields[0] {
	case "/menu":
		reply, err = b.menuReply(ctx, fields[1:])
	case "/plan":
		reply, err = b.planReply(ctx)
	case "/shopping":
		reply, err = b.shoppingReply(ctx)
	default:
		reply = "Commands: /menu <category>, /plan, /shopping"
	}
	if err != nil {
		b.logger.Error("command failed", zap.String("command", fields[0]), zap.Error(err))
		reply = "Something went wrong, try again later."
	}

	if _, err := b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, reply)); err != nil {
		b.logger.Error("failed to send reply", zap.Error(err))
	}
}

func (b *Bot) menuReply(ctx context.Context, args []string) (string, error) {
	if len(args) != 1 {
		return "Usage: /menu <breakfast|lunch|dinner>", nil
	}
	category, err := meal.ParseCategory(args[0])
	if err != nil {
		return "Usage: /menu <breakfast|lunch|dinner>", nil
	}

	details, err := b.service.MealsWithIngredients(ctx, category)
	if err != nil {
		return "", err
	}
	return formatMenu(category, details), nil
}

func (b *Bot) planReply(ctx context.Context) (string, error) {
	entries, err := b.service.PlanEntries(ctx)
	if err != nil {
		return "", err
	}
	return formatWeek(entries), nil
}

func (b *Bot) shoppingReply(ctx context.Context) (string, error) {
	list, err := b.service.ShoppingList(ctx)
	if errors.Is(err, planner.ErrEmptyPlan) {
		return "Nothing planned yet. Plan your meals first.", nil
	}
	if err != nil {
		return "", err
	}
	return formatShoppingList(list.Items), nil
}

func formatMenu(category meal.Category, details []planner.MealDetail) string {
	if len(details) == 0 {
		return fmt.Sprintf("No %s meals yet.", category)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🍽 %s\n", category)
	for _, detail := range details {
		fmt.Fprintf(&sb, "\n%s\n", detail.Name)
		for _, ingredient := range detail.Ingredients {
			fmt.Fprintf(&sb, "• %s\n", ingredient)
		}
	}
	return sb.String()
}

func formatWeek(entries []planner.Entry) string {
	if len(entries) == 0 {
		return "Nothing planned yet. Plan your meals first."
	}

	var sb strings.Builder
	sb.WriteString("📅 Weekly Meal Plan\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "\n%s\nBreakfast: %s\nLunch: %s\nDinner: %s\n",
			e.Day, e.Breakfast, e.Lunch, e.Dinner)
	}
	return sb.String()
}

func formatShoppingList(items []shopping.Item) string {
	var sb strings.Builder
	sb.WriteString("🛒 Shopping List\n")
	for _, item := range items {
		if item.Quantity == 1 {
			fmt.Fprintf(&sb, "• %s\n", item.Name)
		} else {
			fmt.Fprintf(&sb, "• %s x%d\n", item.Name, item.Quantity)
		}
	}
	return sb.String()
}
