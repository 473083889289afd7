package handler

import (
	"wsrelay/internal/app/relay"
	"wsrelay/internal/configs"
)

// AppDeps bundles the dependencies shared by all HTTP handlers.
type AppDeps struct {
	Manager *relay.Manager
	Config  *configs.AppConfig
}
