package chat

import (
	"context"
	"log/slog"

	twitch "github.com/gempir/go-twitch-irc/v4"

	"github.com/onnwee/evespai/command"
	"github.com/onnwee/evespai/config"
	"github.com/onnwee/evespai/telemetry"
)

// StartBot connects the IRC client and answers lookup commands until ctx is
// cancelled. It blocks for the lifetime of the connection.
func StartBot(ctx context.Context, cfg *config.Config, router *command.Router) {
	if err := cfg.ValidateChatReady(); err != nil {
		slog.Info("irc creds not set; bot disabled", slog.Any("err", err))
		return
	}
	client := twitch.NewClient(cfg.IRCBotUsername, cfg.IRCOAuthToken)

	client.OnConnect(func() {
		telemetry.SetIRCConnected(true)
		slog.Info("irc connected", slog.String("channel", cfg.IRCChannel))
	})
	client.OnPrivateMessage(func(msg twitch.PrivateMessage) {
		lines, ok := router.Dispatch(ctx, msg.Message)
		if !ok {
			return
		}
		for _, line := range lines {
			client.Say(msg.Channel, line)
		}
	})

	// Handle context cancellation by closing the client
	done := make(chan struct{})
	go func() {
		<-ctx.Done()
		if err := client.Disconnect(); err != nil {
			slog.Debug("irc disconnect", slog.Any("err", err))
		}
		close(done)
	}()

	client.Join(cfg.IRCChannel)
	if err := client.Connect(); err != nil {
		slog.Error("irc connect error", slog.Any("err", err))
	}
	telemetry.SetIRCConnected(false)
	<-done
}
