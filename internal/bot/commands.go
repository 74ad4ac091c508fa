package bot

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"

	"filmapp/internal/films"
	"filmapp/internal/models"
	"filmapp/internal/store"

	"github.com/sirupsen/logrus"
)

const helpMessage = `Welcome to Film App!

/films - show all films
/favourites - show your favourite films
/like id - add a film to your favourites
/unlike id - remove a film from your favourites
/reset - forget your saved films and favourites`

type BotCommand struct {
	Command string
	Args    []string
	UserID  string
	ChatID  string
}

type Handler struct {
	store  store.SnapshotStore
	sender Sender
	logger *logrus.Logger
	locks  *chatLocks
}

func NewHandler(snapshots store.SnapshotStore, sender Sender, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		store:  snapshots,
		sender: sender,
		logger: logger,
		locks:  newChatLocks(),
	}
}

// ProcessMessage handles one update as a complete session: restore the
// chat's snapshots, apply the command through the gateway, save the
// snapshots back and reply.
func (h *Handler) ProcessMessage(ctx context.Context, update *models.Update) {
	if update.Message.Text == "" {
		return
	}

	userID := strconv.Itoa(update.Message.From.Id)
	chatID := strconv.Itoa(update.Message.Chat.Id)
	text := strings.TrimSpace(update.Message.Text)

	command := h.parseCommand(text, userID, chatID)
	h.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"chat_id": chatID,
		"command": command.Command,
		"args":    command.Args,
	}).Info("Processing command")

	unlock := h.locks.lock(chatID)
	defer unlock()

	if command.Command == "/reset" {
		h.handleReset(ctx, command)
		return
	}

	session := h.restore(ctx, chatID)
	reply := h.dispatch(session, command)

	if err := h.persist(ctx, chatID, session); err != nil {
		h.logger.WithError(err).WithField("chat_id", chatID).Error("Failed to save session")
		reply += "\n\n⚠️ Your changes may not be saved."
	}

	h.sendMessage(ctx, chatID, reply)
}

func (h *Handler) parseCommand(text, userID, chatID string) BotCommand {
	parts := strings.Fields(text)
	if len(parts) == 0 {
		return BotCommand{UserID: userID, ChatID: chatID}
	}

	// "/like@FilmAppBot 1" in group chats
	command, _, _ := strings.Cut(parts[0], "@")

	return BotCommand{
		Command: strings.ToLower(command),
		Args:    parts[1:],
		UserID:  userID,
		ChatID:  chatID,
	}
}

func (h *Handler) dispatch(g films.Gateway, cmd BotCommand) string {
	switch cmd.Command {
	case "/start", "/help":
		return helpMessage
	case "/films":
		return formatFilms(g)
	case "/favourites", "/favorites":
		return formatFavourites(g)
	case "/like":
		return h.handleLike(g, cmd)
	case "/unlike":
		return h.handleUnlike(g, cmd)
	default:
		return "Unknown command. Use /help to see available commands"
	}
}

func (h *Handler) handleLike(g films.Gateway, cmd BotCommand) string {
	id, errMsg := parseFilmID(cmd, "/like")
	if errMsg != "" {
		return errMsg
	}

	film, ok := films.FindFilm(g.Films(), id)
	if !ok {
		return fmt.Sprintf("No film with id %d. Use /films to see the list.", id)
	}
	if g.CheckIfInFavourites(film) {
		return fmt.Sprintf("<b>%s</b> is already in your favourites.", html.EscapeString(film.Title))
	}

	g.AddToFavourites(film)
	return fmt.Sprintf("⭐ Added <b>%s</b> to your favourites.", html.EscapeString(film.Title))
}

func (h *Handler) handleUnlike(g films.Gateway, cmd BotCommand) string {
	id, errMsg := parseFilmID(cmd, "/unlike")
	if errMsg != "" {
		return errMsg
	}

	// favourites are copies, so look there first; the catalog may no longer
	// hold the film
	film, ok := films.FindFilm(g.Favourites(), id)
	if !ok {
		return fmt.Sprintf("Film %d is not in your favourites.", id)
	}

	g.RemoveFromFavourites(film)
	return fmt.Sprintf("🗑 Removed <b>%s</b> from your favourites.", html.EscapeString(film.Title))
}

func (h *Handler) handleReset(ctx context.Context, cmd BotCommand) {
	if err := h.store.Delete(ctx, cmd.ChatID); err != nil {
		h.logger.WithError(err).WithField("chat_id", cmd.ChatID).Error("Failed to reset session")
		h.sendMessage(ctx, cmd.ChatID, "Error occurred while resetting. Please try again later.")
		return
	}
	h.sendMessage(ctx, cmd.ChatID, "🔄 Your films and favourites were reset.")
}

// restore loads both snapshots for chatID. A store error is treated like a
// missing snapshot so the user always gets a working session.
func (h *Handler) restore(ctx context.Context, chatID string) *films.Session {
	catalog, err := h.store.Load(ctx, chatID, store.KindCatalog)
	if err != nil {
		h.logger.WithError(err).WithField("chat_id", chatID).Warn("Failed to load catalog snapshot")
		catalog = nil
	}

	favourites, err := h.store.Load(ctx, chatID, store.KindFavourites)
	if err != nil {
		h.logger.WithError(err).WithField("chat_id", chatID).Warn("Failed to load favourites snapshot")
		favourites = nil
	}

	return films.Start(catalog, favourites, h.logger)
}

func (h *Handler) persist(ctx context.Context, chatID string, session *films.Session) error {
	catalog, favourites, err := session.Teardown()
	if err != nil {
		return err
	}

	if err := h.store.Save(ctx, chatID, store.KindCatalog, catalog); err != nil {
		return err
	}
	return h.store.Save(ctx, chatID, store.KindFavourites, favourites)
}

func (h *Handler) sendMessage(ctx context.Context, chatID, text string) {
	chatIDInt, err := strconv.Atoi(chatID)
	if err != nil {
		h.logger.WithError(err).Error("Invalid chat ID")
		return
	}

	if err := h.sender.SendMessage(ctx, chatIDInt, text); err != nil {
		h.logger.WithError(err).Error("Failed to send message")
	}
}

func parseFilmID(cmd BotCommand, name string) (int, string) {
	if len(cmd.Args) == 0 {
		return 0, fmt.Sprintf("Please provide a film id. Example: %s 1", name)
	}
	id, err := strconv.Atoi(cmd.Args[0])
	if err != nil {
		return 0, fmt.Sprintf("Film id must be a number. Example: %s 1", name)
	}
	return id, ""
}

func formatFilms(g films.Gateway) string {
	list := g.Films()
	if len(list) == 0 {
		return "No films available."
	}

	var message strings.Builder
	message.WriteString("<b>Films:</b>\n\n")
	for _, film := range list {
		mark := ""
		if g.CheckIfInFavourites(film) {
			mark = " ⭐"
		}
		message.WriteString(fmt.Sprintf("<b>%d. %s</b>%s\n", film.ID, html.EscapeString(film.Title), mark))
		if film.Description != "" {
			message.WriteString(html.EscapeString(film.Description) + "\n")
		}
		message.WriteString("\n")
	}
	return strings.TrimRight(message.String(), "\n")
}

func formatFavourites(g films.Gateway) string {
	list := g.Favourites()
	if len(list) == 0 {
		return "You have no favourite films yet. Use /like id to add one."
	}

	var message strings.Builder
	message.WriteString("<b>Your favourites:</b>\n\n")
	for _, film := range list {
		message.WriteString(fmt.Sprintf("%d. %s\n", film.ID, html.EscapeString(film.Title)))
	}
	return strings.TrimRight(message.String(), "\n")
}
