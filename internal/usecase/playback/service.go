package playback

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"twitchCli/internal/domain"
)

// ChannelResolver is the part of the catalog playback needs.
type ChannelResolver interface {
	ResolveChannelID(ctx context.Context, session domain.Session, login string) (string, error)
}

type Service struct {
	resolver ChannelResolver
	player   domain.Player
	logger   *zap.Logger
}

func NewService(resolver ChannelResolver, player domain.Player, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		resolver: resolver,
		player:   player,
		logger:   logger,
	}
}

// PlayChannel checks that channel exists before handing it to the player.
func (s *Service) PlayChannel(ctx context.Context, session domain.Session, channel, quality string) error {
	channel = strings.TrimSpace(channel)

	id, err := s.resolver.ResolveChannelID(ctx, session, channel)
	if err != nil {
		return err
	}

	s.logger.Debug("playing channel", zap.String("channel", channel), zap.String("id", id))
	return s.PlayURL(ctx, domain.ChannelURL(channel), quality)
}

func (s *Service) PlayURL(ctx context.Context, target, quality string) error {
	if strings.TrimSpace(target) == "" {
		return fmt.Errorf("playback: empty target")
	}
	return s.player.Play(ctx, target, quality)
}
