// Package modkit assembles service modules from shared deps and options
package modkit

import (
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/modkit/repokit"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/config"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/logger"
	"github.com/Tian-Jacobs/Community-Services-Dashboard/internal/platform/store"
)

// Deps is the bundle every module constructor receives
// plain fields, no lookups
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}

// ZeroOK reports that a zero Deps is usable, as tests rely on
// optional stores still need their nil checks
func (d Deps) ZeroOK() bool { return true }
