package assistant

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"docassist/models"
	"docassist/utils"

	"go.uber.org/zap"
)

const transcriptLimit = 20

// intent is the JSON shape the model is instructed to answer with.
type intent struct {
	Tool  string            `json:"tool"`
	Args  map[string]string `json:"args"`
	Reply string            `json:"reply"`
}

// HandleMessage resolves the message to an intent and dispatches it. Model
// failures degrade to an apology rather than an error so the chat surface
// never 500s on a flaky upstream.
func (s *DefaultAssistantService) HandleMessage(ctx context.Context, auth *AuthContext, message string) (string, error) {
	logger := utils.GetLogger()

	chatCtx := s.loadContext(ctx, auth)
	prompt := buildPrompt(chatCtx, auth, message, time.Now())

	raw, err := s.Resolver.GenerateContent(ctx, prompt)
	if err != nil {
		logger.Error("assistant model call failed", zap.Error(err))
		return models.MessageOf(false, "Sorry, I could not process that right now. Please try again.").String(), nil
	}

	in, ok := parseIntent(raw)
	if !ok {
		logger.Warn("assistant model returned unparseable intent", zap.String("raw", raw))
		return models.MessageOf(false, "Sorry, I didn't catch that. Could you rephrase?").String(), nil
	}

	var env models.Envelope
	switch {
	case in.Tool == "":
		reply := in.Reply
		if reply == "" {
			reply = "I'm not sure how to help with that. You can ask me to show doctors, book an appointment, or open your dashboard."
		}
		env = models.MessageOf(true, reply)
	default:
		env = s.dispatch(ctx, auth, in, chatCtx)
	}

	s.saveContext(ctx, auth, chatCtx, message, env.Message)
	return env.String(), nil
}

// dispatch gates the tool on the caller's identity, then runs it. Auth is
// checked here, once, for every tool uniformly; individual tools assume a
// caller that already passed their gate.
func (s *DefaultAssistantService) dispatch(ctx context.Context, auth *AuthContext, in intent, chatCtx *models.ChatContext) models.Envelope {
	spec, ok := toolTable[in.Tool]
	if !ok {
		return models.MessageOf(false, "I don't know how to do that yet.")
	}
	if spec.requiresAuth && auth == nil {
		return models.MessageOf(false, "Please log in to do that.")
	}
	if spec.requiresAdmin && !auth.IsAdmin() {
		return models.MessageOf(false, "You need admin access for that.")
	}

	args := in.Args
	if args == nil {
		args = map[string]string{}
	}
	return spec.run(s, ctx, auth, args, chatCtx)
}

func (s *DefaultAssistantService) loadContext(ctx context.Context, auth *AuthContext) *models.ChatContext {
	if auth == nil {
		return &models.ChatContext{}
	}
	chatCtx, err := s.CtxStore.Get(ctx, auth.UserID)
	if err != nil {
		utils.GetLogger().Warn("assistant context load failed", zap.Error(err))
		return &models.ChatContext{}
	}
	return chatCtx
}

// saveContext appends the exchange to the transcript and refreshes the TTL.
// Anonymous conversations are not persisted.
func (s *DefaultAssistantService) saveContext(ctx context.Context, auth *AuthContext, chatCtx *models.ChatContext, userMsg, reply string) {
	if auth == nil {
		return
	}
	chatCtx.Transcript = append(chatCtx.Transcript, "User: "+userMsg, "Assistant: "+reply)
	if len(chatCtx.Transcript) > transcriptLimit {
		chatCtx.Transcript = chatCtx.Transcript[len(chatCtx.Transcript)-transcriptLimit:]
	}
	if err := s.CtxStore.Set(ctx, auth.UserID, chatCtx); err != nil {
		utils.GetLogger().Warn("assistant context save failed", zap.Error(err))
	}
}

// parseIntent tolerates markdown fences and prose around the JSON object.
func parseIntent(raw string) (intent, bool) {
	text := strings.TrimSpace(raw)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return intent{}, false
	}
	var in intent
	if err := json.Unmarshal([]byte(text[start:end+1]), &in); err != nil {
		return intent{}, false
	}
	return in, true
}
