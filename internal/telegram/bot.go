package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"nutriplan/internal/api"
	"nutriplan/internal/catalog"
	"nutriplan/internal/config"
	"nutriplan/internal/meal"
	"nutriplan/internal/metrics"
	"nutriplan/internal/planner"
	"nutriplan/internal/shopping"
)

// Service is what the bot needs from the application.
type Service interface {
	GeneratePlan(ctx context.Context, req meal.PlanRequest) meal.Plan
	SavePlan(ctx context.Context, userID int64, name string, req meal.PlanRequest, plan meal.Plan) (*planner.SavedPlan, error)
	ImportMeal(ctx context.Context, url string, slot meal.Slot, bucket catalog.Bucket, cost float64) (*catalog.ImportedMeal, error)
	Usage(ctx context.Context, days int) ([]metrics.DailyUsage, error)
	Health() metrics.SysHealth
}

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot wraps the Telegram API and the meal planning service.
type Bot struct {
	api    sender
	svc    Service
	cfg    *config.Config
	logger *zap.Logger
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, svc Service, logger *zap.Logger) (*Bot, error) {
	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	b := newBot(botAPI, cfg, svc, logger)
	b.logger.Info("authorized on telegram", zap.String("account", botAPI.Self.UserName))

	wh, err := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook url %s: %w", cfg.TelegramWebhookURL, err)
	}
	resp, err := botAPI.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	b.logger.Info("webhook set", zap.String("description", resp.Description))

	return b, nil
}

func newBot(s sender, cfg *config.Config, svc Service, logger *zap.Logger) *Bot {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bot{api: s, svc: svc, cfg: cfg, logger: logger}
}

// RegisterHandlers registers the webhook handler on mux.
func (b *Bot) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("POST /webhook", b.handleWebhook)
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		b.logger.Warn("error parsing update", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)

	msg := update.Message
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return
	}

	if !b.cfg.IsTelegramUserAllowed(msg.From.ID) {
		b.logger.Warn("unauthorized access attempt",
			zap.Int64("user_id", msg.From.ID),
			zap.String("username", msg.From.UserName))
		return
	}

	go b.processMessage(msg)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	fields := strings.Fields(msg.Text)
	if len(fields) == 0 {
		return
	}
	command, _, _ := strings.Cut(fields[0], "@")

	switch command {
	case "/start", "/help":
		b.reply(msg.Chat.ID, helpText)
	case "/plan":
		b.handlePlanRequest(ctx, msg, fields[1:])
	case "/metrics":
		if !b.isAdmin(msg) {
			b.reply(msg.Chat.ID, "⛔ *Access Denied*: Admin only.")
			return
		}
		b.handleMetricsCommand(ctx, msg.Chat.ID)
	case "/import":
		if !b.isAdmin(msg) {
			b.reply(msg.Chat.ID, "⛔ *Access Denied*: Admin only.")
			return
		}
		b.handleImportCommand(ctx, msg.Chat.ID, fields[1:])
	default:
		b.reply(msg.Chat.ID, "🤔 Unknown command. Send /help for usage.")
	}
}

const helpText = "🥗 *Meal Planner*\n\n" +
	"`/plan` builds a one-day plan. Optional settings:\n" +
	"`cuisine=italian diet=vegan goal=weight-loss calories=1800 budget=25 priority=strict dislike=mushrooms,olives`\n\n" +
	"`/import <url> <slot> [bucket] [cost]` adds a recipe to the catalog (admin).\n" +
	"`/metrics` shows usage and health (admin)."

func (b *Bot) isAdmin(msg *tgbotapi.Message) bool {
	return b.cfg.AdminTelegramID != 0 && msg.From.ID == b.cfg.AdminTelegramID
}

func (b *Bot) reply(chatID int64, text string) {
	out := tgbotapi.NewMessage(chatID, text)
	out.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(out); err != nil {
		b.logger.Warn("failed to send telegram message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// ParsePlanArgs builds a plan request from key=value arguments. Unset keys
// keep their defaults.
func ParsePlanArgs(args []string) (meal.PlanRequest, error) {
	req := meal.PlanRequest{
		Preferences: meal.MealPreferences{CuisineType: meal.CuisineAny, DietaryRestrictions: meal.DietNone},
		Goals:       meal.HealthGoals{PrimaryGoal: meal.GoalMaintenance},
		Budget:      meal.BudgetConstraints{DailyBudget: 25, BudgetPriority: meal.PriorityBalanced},
	}

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || value == "" {
			return req, fmt.Errorf("expected key=value, got %q", arg)
		}
		switch strings.ToLower(key) {
		case "cuisine":
			req.Preferences.CuisineType = meal.Cuisine(strings.ToLower(value))
		case "diet":
			req.Preferences.DietaryRestrictions = meal.DietaryRestriction(strings.ToLower(value))
		case "dislike":
			req.Preferences.DislikedIngredients = value
		case "goal":
			req.Goals.PrimaryGoal = meal.Goal(strings.ToLower(value))
		case "condition":
			req.Goals.HealthConditions = meal.HealthCondition(strings.ToLower(value))
		case "calories":
			n, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return req, fmt.Errorf("calories must be a number, got %q", value)
			}
			req.Goals.CalorieTarget = &n
		case "budget":
			n, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return req, fmt.Errorf("budget must be a number, got %q", value)
			}
			req.Budget.DailyBudget = n
		case "priority":
			req.Budget.BudgetPriority = meal.BudgetPriority(strings.ToLower(value))
		default:
			return req, fmt.Errorf("unknown setting %q", key)
		}
	}

	if err := api.ValidateRequest(req); err != nil {
		return req, err
	}
	return req, nil
}

func (b *Bot) handlePlanRequest(ctx context.Context, msg *tgbotapi.Message, args []string) {
	req, err := ParsePlanArgs(args)
	if err != nil {
		b.reply(msg.Chat.ID, fmt.Sprintf("❌ *Invalid request:*\n```\n%s\n```", strings.ReplaceAll(err.Error(), "`", "'")))
		return
	}

	b.logger.Info("generating plan", zap.Int64("user_id", msg.From.ID), zap.Strings("args", args))
	plan := b.svc.GeneratePlan(ctx, req)

	if _, err := b.svc.SavePlan(ctx, msg.From.ID, "", req, plan); err != nil {
		b.logger.Warn("failed to save meal plan", zap.Int64("user_id", msg.From.ID), zap.Error(err))
	}

	planText, shoppingText := formatPlanMarkdownParts(plan)
	b.reply(msg.Chat.ID, planText)
	b.reply(msg.Chat.ID, shoppingText)
}

var titleCaser = cases.Title(language.English)

func formatPlanMarkdownParts(plan meal.Plan) (string, string) {
	var pb strings.Builder
	pb.WriteString("📅 *Daily Meal Plan*\n\n")

	for _, m := range plan.Meals() {
		fmt.Fprintf(&pb, "*%s*: %s ($%.2f)\n", titleCaser.String(string(m.Type)), m.Name, m.Cost)
		fmt.Fprintf(&pb, "_%.0f kcal · P %.0fg · C %.0fg · F %.0fg_\n\n",
			m.Nutrition.Calories, m.Nutrition.Protein, m.Nutrition.Carbs, m.Nutrition.Fat)
	}

	t := plan.TotalNutrition
	fmt.Fprintf(&pb, "🔥 *Total:* %.0f kcal (P %.0fg · C %.0fg · F %.0fg)\n", t.Calories, t.Protein, t.Carbs, t.Fat)
	fmt.Fprintf(&pb, "💰 *Cost:* $%.2f", plan.TotalCost)

	var sb strings.Builder
	sb.WriteString("🛒 *Shopping List*\n\n")
	for _, item := range shopping.BuildList(plan) {
		fmt.Fprintf(&sb, "• %s\n", item)
	}

	return pb.String(), sb.String()
}

func (b *Bot) handleImportCommand(ctx context.Context, chatID int64, args []string) {
	if len(args) < 2 {
		b.reply(chatID, "Usage: `/import <url> <slot> [bucket] [cost]`")
		return
	}

	slot := meal.Slot(strings.ToLower(args[1]))
	bucket := catalog.BucketOmnivore
	if len(args) > 2 {
		bucket = catalog.Bucket(strings.ToLower(args[2]))
	}
	cost := 5.0
	if len(args) > 3 {
		n, err := strconv.ParseFloat(args[3], 64)
		if err != nil {
			b.reply(chatID, fmt.Sprintf("❌ cost must be a number, got %q", args[3]))
			return
		}
		cost = n
	}

	imported, err := b.svc.ImportMeal(ctx, args[0], slot, bucket, cost)
	if err != nil {
		b.logger.Warn("error importing recipe", zap.String("url", args[0]), zap.Error(err))
		b.reply(chatID, fmt.Sprintf("❌ *Error importing recipe:*\n```\n%s\n```", strings.ReplaceAll(err.Error(), "`", "'")))
		return
	}
	b.reply(chatID, fmt.Sprintf("✅ *Recipe Saved!*\n\n*Title:* %s\n*Slot:* %s (%s)",
		imported.Candidate.Name, titleCaser.String(string(imported.Slot)), imported.Bucket))
}

func (b *Bot) handleMetricsCommand(ctx context.Context, chatID int64) {
	usage, err := b.svc.Usage(ctx, 7)
	if err != nil {
		b.logger.Warn("error fetching metrics", zap.Error(err))
		b.reply(chatID, "❌ Error fetching metrics.")
		return
	}
	b.reply(chatID, formatMetricsReport(usage, b.svc.Health()))
}

func formatMetricsReport(usage []metrics.DailyUsage, health metrics.SysHealth) string {
	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Recent Selections*\n")
	if len(usage) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range usage {
		fmt.Fprintf(&sb, "• *%s*: %d picks (%d random, %d best, %d fallback), %d lookups, %.1fms avg\n",
			d.Date, d.TotalSelection, d.Random, d.BestMatch, d.Fallback, d.LookupHits, d.AvgLatencyMS)
	}

	sb.WriteString("\n🧠 *System Health*\n")
	fmt.Fprintf(&sb, "• Uptime: %s\n", health.Uptime)
	fmt.Fprintf(&sb, "• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB)
	fmt.Fprintf(&sb, "• Goroutines: %d\n", health.Goroutines)
	fmt.Fprintf(&sb, "• Disk Data: %s\n", health.DataDiskSize)
	return sb.String()
}
