package handler

import (
	"investimon-go/internal/config"
	challengedomain "investimon-go/internal/domain/challenge"
	characterdomain "investimon-go/internal/domain/character"
	classroomdomain "investimon-go/internal/domain/classroom"
	linkingdomain "investimon-go/internal/domain/linking"
	newsdomain "investimon-go/internal/domain/news"
	userdomain "investimon-go/internal/domain/user"
	"investimon-go/pkg/logger"
)

type Handlers struct {
	Users      *userdomain.Service
	Linking    *linkingdomain.Service
	Classrooms *classroomdomain.Service
	Challenges *challengedomain.Service
	Characters *characterdomain.Service
	News       *newsdomain.Service

	authCfg config.AuthConfig
	log     logger.Logger
}

func New(
	authCfg config.AuthConfig,
	users *userdomain.Service,
	linking *linkingdomain.Service,
	classrooms *classroomdomain.Service,
	challenges *challengedomain.Service,
	characters *characterdomain.Service,
	news *newsdomain.Service,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		Users:      users,
		Linking:    linking,
		Classrooms: classrooms,
		Challenges: challenges,
		Characters: characters,
		News:       news,
		authCfg:    authCfg,
		log:        log,
	}
}
