package model

import (
	"github.com/thep200/github-event-tracker/cfg"
	"github.com/thep200/github-event-tracker/pkg/db"
	"github.com/thep200/github-event-tracker/pkg/log"
)

type Model struct {
	Config *cfg.Config `gorm:"-" json:"-"`
	Logger log.Logger  `gorm:"-" json:"-"`
	Mysql  *db.Mysql   `gorm:"-" json:"-"`
}
