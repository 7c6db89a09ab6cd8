package domain

import (
	"strconv"
	"strings"
	"time"
)

// CommandArgs are the parsed arguments of a moderation command:
// an optional target (numeric id or @mention), free-form reason words
// and an optional duration.
type CommandArgs struct {
	UserID      int64
	HasUserID   bool
	Mention     string // set when only an @mention was given
	Reason      string
	Duration    time.Duration
	HasDuration bool
}

// HasTarget reports whether any target (id or mention) was found.
func (a *CommandArgs) HasTarget() bool {
	return a.HasUserID || a.Mention != ""
}

// ParseCommandArgs parses the text of a moderation command. An explicit
// reply target always overrides any id or mention parsed from the text.
func ParseCommandArgs(text string, replyFrom int64, hasReply bool) CommandArgs {
	var out CommandArgs

	args := strings.Fields(text)
	if len(args) > 0 {
		args = args[1:] // drop the command itself
	}

	for _, arg := range args {
		switch {
		case strings.HasPrefix(arg, "@"):
			if !out.HasUserID && out.Mention == "" {
				out.Mention = arg
			}
		case isDigits(arg):
			if !out.HasUserID {
				id, err := strconv.ParseInt(arg, 10, 64)
				if err == nil {
					out.UserID = id
					out.HasUserID = true
					out.Mention = ""
				}
			}
		default:
			if d, ok := ParseDurationArg(arg); ok {
				out.Duration = d
				out.HasDuration = true
				continue
			}
			if out.Reason == "" {
				out.Reason = arg
			} else {
				out.Reason += " " + arg
			}
		}
	}

	if hasReply {
		out.UserID = replyFrom
		out.HasUserID = true
		out.Mention = ""
	}

	return out
}
