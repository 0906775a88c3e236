// Package social implements the relationship lifecycle engine: users,
// friendships, friend requests, messages, and the read-side graph
// analytics over them.
package social

import (
	"go.uber.org/zap"
	"socialnet/auth"
	"socialnet/event"
	"socialnet/graph"
	"socialnet/repository"
)

// Service orchestrates every mutation of the social graph. Each successful
// mutation publishes exactly one domain event on the bus before the call
// returns.
type Service struct {
	users    repository.UserRepository
	friends  repository.FriendshipRepository
	requests repository.FriendRequestRepository
	messages repository.MessageRepository
	hasher   auth.Hasher
	bus      *event.Bus
	logger   *zap.Logger
	graphOpt graph.Options
}

// Config carries the collaborators of a Service.
type Config struct {
	Users    repository.UserRepository
	Friends  repository.FriendshipRepository
	Requests repository.FriendRequestRepository
	Messages repository.MessageRepository
	Hasher   auth.Hasher
	Bus      *event.Bus
	Logger   *zap.Logger
	Graph    graph.Options
}

// NewService creates a Service. A nil bus gets a private one; a nil logger
// is replaced with a no-op logger.
func NewService(cfg Config) *Service {
	bus := cfg.Bus
	if bus == nil {
		bus = event.NewBus()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		users:    cfg.Users,
		friends:  cfg.Friends,
		requests: cfg.Requests,
		messages: cfg.Messages,
		hasher:   cfg.Hasher,
		bus:      bus,
		logger:   logger,
		graphOpt: cfg.Graph,
	}
}

// Bus exposes the notification bus so observers can register.
func (s *Service) Bus() *event.Bus { return s.bus }
