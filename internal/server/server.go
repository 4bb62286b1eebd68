package server

import (
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/vipowerus/timetable/internal/navigation"
	"github.com/vipowerus/timetable/internal/schedule"
	"github.com/vipowerus/timetable/internal/session"
)

// Config ...
type Config struct {
	LogLevel        string `toml:"log_level"`
	BotToken        string `toml:"bot_token"`
	SessionTTLHours int    `toml:"session_ttl_hours"`
	Data            *schedule.Config
}

// NewConfig ...
func NewConfig() *Config {
	return &Config{
		LogLevel:        "debug",
		SessionTTLHours: 24 * 30,
		Data:            schedule.NewConfig(),
	}
}

// Server wires the schedule store and the navigation engine to the
// Telegram transport.
type Server struct {
	config      *Config
	logger      *logrus.Logger
	store       *schedule.Store
	engine      *navigation.Engine
	bot         *tgbotapi.BotAPI
	updatesConf tgbotapi.UpdateConfig
}

// New ...
func New(config *Config) *Server {
	return &Server{
		config: config,
		logger: logrus.New(),
	}
}

// Start ...
func (s *Server) Start() error {
	if err := s.configureLogger(); err != nil {
		return err
	}

	s.configureStore()

	if err := s.configureBot(); err != nil {
		return err
	}

	s.configureBotUpdates()
	s.logger.Info("Telegram bot started!")

	s.handleBotUpdates()

	return nil
}

func (s *Server) configureLogger() error {
	level, err := logrus.ParseLevel(s.config.LogLevel)
	if err != nil {
		return err
	}
	s.logger.SetLevel(level)
	return nil
}

func (s *Server) configureStore() {
	store := schedule.New(s.config.Data, s.logger)
	store.Load()
	s.store = store

	resolver := schedule.NewResolver(store.Dataset(), s.logger)
	sessions := session.NewStore(time.Duration(s.config.SessionTTLHours) * time.Hour)
	s.engine = navigation.New(store, resolver, sessions, s.logger)
}

func (s *Server) configureBot() error {
	bot, err := tgbotapi.NewBotAPI(s.config.BotToken)
	if err != nil {
		return err
	}
	s.bot = bot
	log.Printf("Authorized on account %s", bot.Self.UserName)
	return nil
}

func (s *Server) configureBotUpdates() {
	s.updatesConf = tgbotapi.NewUpdate(0)
	s.updatesConf.Timeout = 60
}

// handleBotUpdates processes updates one at a time: each action is
// handled to completion before the next one is read.
func (s *Server) handleBotUpdates() {
	updates := s.bot.GetUpdatesChan(s.updatesConf)
	for update := range updates {
		if update.CallbackQuery != nil {
			s.handleCallback(update.CallbackQuery)
			continue
		}
		if update.Message == nil {
			continue
		}

		s.logger.Info("Incoming message: " + update.Message.Text)
		if update.Message.Command() == "start" {
			s.handleStartCommand(update)
			continue
		}
		s.handleTextMessage(update)
	}
}

func (s *Server) handleStartCommand(update tgbotapi.Update) {
	screen := s.engine.Start(update.Message.From.ID)
	s.sendScreen(update.Message.Chat.ID, screen)
}

func (s *Server) handleTextMessage(update tgbotapi.Update) {
	screen := s.engine.HandleText(update.Message.From.ID, update.Message.Text)
	s.sendScreen(update.Message.Chat.ID, screen)
}

// handleCallback routes the callback through the engine and replaces
// the originating message with the resulting screen.
func (s *Server) handleCallback(callback *tgbotapi.CallbackQuery) {
	screen := s.engine.HandleAction(callback.From.ID, callback.Data)

	if _, err := s.bot.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		s.logger.Error(err)
	}

	chatID := callback.Message.Chat.ID
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, callback.Message.MessageID, screen.Text, buildKeyboard(screen))
	edit.ParseMode = tgbotapi.ModeMarkdown
	if _, err := s.bot.Request(edit); err != nil {
		s.logger.Error(err)
	}

	s.sendContinuations(chatID, screen)
}

func (s *Server) sendScreen(chatID int64, screen navigation.Screen) {
	msg := tgbotapi.NewMessage(chatID, screen.Text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if len(screen.Keyboard) > 0 {
		msg.ReplyMarkup = buildKeyboard(screen)
	}
	if _, err := s.bot.Send(msg); err != nil {
		s.logger.Error(err)
	}

	s.sendContinuations(chatID, screen)
}

// sendContinuations delivers chunks past the first as plain messages;
// only the first chunk carries the keyboard.
func (s *Server) sendContinuations(chatID int64, screen navigation.Screen) {
	for _, part := range screen.More {
		msg := tgbotapi.NewMessage(chatID, part)
		msg.ParseMode = tgbotapi.ModeMarkdown
		if _, err := s.bot.Send(msg); err != nil {
			s.logger.Error(err)
		}
	}
}

func buildKeyboard(screen navigation.Screen) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, options := range screen.Keyboard {
		var buttons []tgbotapi.InlineKeyboardButton
		for _, option := range options {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(option.Label, option.Action))
		}
		rows = append(rows, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
