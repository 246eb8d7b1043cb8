package modkit

import (
	"deyimci/internal/modkit/repokit"
	"deyimci/internal/platform/config"
	"deyimci/internal/platform/logger"
	"deyimci/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}
