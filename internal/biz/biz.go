package biz

import (
	"github.com/gadobot/gadobot/internal/biz/repo"
	"github.com/gadobot/gadobot/internal/biz/usecase"
)

// Usecases contains all usecases
type Usecases struct {
	Rules      *usecase.RulesUsecase
	Matcher    *usecase.MatcherUsecase
	Moderation *usecase.ModerationUsecase
	Backup     *usecase.BackupUsecase
	Responder  *usecase.ResponderUsecase
}

// NewUsecases wires the usecase layer over the repositories.
func NewUsecases(rules repo.RuleRepo, mod repo.ModerationRepo, transport repo.Transport) *Usecases {
	return &Usecases{
		Rules:      usecase.NewRulesUsecase(rules),
		Matcher:    usecase.NewMatcherUsecase(rules),
		Moderation: usecase.NewModerationUsecase(mod, transport),
		Backup:     usecase.NewBackupUsecase(rules),
		Responder:  usecase.NewResponderUsecase(transport),
	}
}
