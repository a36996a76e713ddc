// Package autoload initializes the global logger from the environment when
// blank-imported, so main needs no explicit logging setup.
package autoload

import (
	configx "github.com/worldwise-ai/worldwise/pkg/config"
	logx "github.com/worldwise-ai/worldwise/pkg/logger"
)

func init() {
	conf := configx.MustNew[logx.Config]("LOG")
	logx.Init(*conf)
}
