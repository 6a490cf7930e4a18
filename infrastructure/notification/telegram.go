package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"sweetshop-backend/application/ports"
	apperrors "sweetshop-backend/pkg/errors"
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramNotifier implements ports.Notifier by posting messages to a
// fixed chat through the Telegram Bot API.
type TelegramNotifier struct {
	botToken string
	chatID   string
	client   *http.Client
	logger   *zap.Logger
}

// NewTelegramNotifier creates a notifier for the given bot and chat.
func NewTelegramNotifier(botToken, chatID string, logger *zap.Logger) ports.Notifier {
	return &TelegramNotifier{
		botToken: botToken,
		chatID:   chatID,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
	}
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Notify sends one text message to the configured chat.
func (n *TelegramNotifier) Notify(ctx context.Context, message string) error {
	if n.botToken == "" || n.chatID == "" {
		return apperrors.NewExternalError("telegram", fmt.Errorf("bot token or chat id not configured"))
	}

	payload, err := json.Marshal(sendMessageRequest{ChatID: n.chatID, Text: message})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", telegramAPIBase, n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return apperrors.NewExternalError("telegram", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var result sendMessageResponse
	if err := json.Unmarshal(body, &result); err != nil || !result.OK {
		n.logger.Warn("telegram send failed",
			zap.Int("status", resp.StatusCode),
			zap.String("description", result.Description),
		)
		return apperrors.NewExternalError("telegram",
			fmt.Errorf("sendMessage failed: status=%d description=%s", resp.StatusCode, result.Description))
	}

	n.logger.Debug("telegram message sent")
	return nil
}
