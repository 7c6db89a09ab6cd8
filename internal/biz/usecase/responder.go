package usecase

import (
	"context"
	"time"

	"github.com/gadobot/gadobot/internal/biz/domain"
	"github.com/gadobot/gadobot/internal/biz/repo"
)

// ResponderUsecase turns a matched rule into an outbound action.
type ResponderUsecase struct {
	transport repo.Transport
}

// NewResponderUsecase creates a new responder usecase.
func NewResponderUsecase(transport repo.Transport) *ResponderUsecase {
	return &ResponderUsecase{transport: transport}
}

// Respond executes the matched rule against the triggering message.
// Media rules reply with the stored media, captioned unless the response
// is the pure-media placeholder. A plain-text response of the form
// b::<N><unit> bans the message sender for the given duration instead of
// being sent; a directive with a bad duration does nothing. Everything
// else is sent as a text reply.
func (uc *ResponderUsecase) Respond(ctx context.Context, chatID int64, messageID int, senderID int64, rule *domain.Rule) error {
	if rule.File != nil {
		caption := ""
		if rule.HasCaption() {
			caption = rule.Response
		}
		return uc.transport.ReplyMedia(ctx, chatID, messageID, *rule.File, caption)
	}

	if d, directive, ok := domain.BanDirective(rule.Response); directive {
		if !ok {
			return nil
		}
		return uc.transport.BanMember(ctx, chatID, senderID, time.Now().Add(d))
	}

	return uc.transport.ReplyText(ctx, chatID, messageID, rule.Response)
}
