//go:build wireinject
// +build wireinject

package app

import (
	"crdfix/internal/adapters/cluster"
	"crdfix/internal/adapters/command_runner"
	"crdfix/internal/adapters/filesystem"
	"crdfix/internal/core"
	"crdfix/internal/core/handler"
	"crdfix/internal/ports"

	"github.com/google/wire"
)

var Adapter = wire.NewSet(
	command_runner.ProvideOsCommandRunner,
	wire.Bind(new(ports.CommandRunner), new(*command_runner.OsCommandRunner)),
	filesystem.ProvideOsFileSystem,
	wire.Bind(new(ports.FileSystem), new(*filesystem.OsFileSystem)),
)

// CoreSet provides domain/core dependencies
var CoreSet = wire.NewSet(
	core.ProvideFileSystemCrdPatcher,
	wire.Bind(new(core.CrdPatcher), new(*core.FileSystemCrdPatcher)),
)

// CommandHandlerSet combines all sets needed for command handlers
var CommandHandlerSet = wire.NewSet(
	Adapter,
	CoreSet,
)

func InjectFixCommandHandler() (handler.FixCommandHandler, error) {
	wire.Build(
		CommandHandlerSet,
		handler.ProvideFixCommandHandler,
	)
	return handler.FixCommandHandler{}, nil
}

func InjectGenerateCommandHandler() (handler.GenerateCommandHandler, error) {
	wire.Build(
		CommandHandlerSet,
		handler.ProvideGenerateCommandHandler,
	)
	return handler.GenerateCommandHandler{}, nil
}

func InjectStatusCommandHandler() (handler.StatusCommandHandler, error) {
	wire.Build(
		cluster.ProvideKubernetes,
		wire.Bind(new(ports.ClusterInspector), new(*cluster.Kubernetes)),
		handler.ProvideStatusCommandHandler,
	)
	return handler.StatusCommandHandler{}, nil
}
