package dialogue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/RudrakshSJoshi/graph-diagnosis/internal/domain"
	"github.com/RudrakshSJoshi/graph-diagnosis/internal/engine"
	"github.com/RudrakshSJoshi/graph-diagnosis/internal/matcher"
)

// MaxPunishFactor is the escalation ceiling: at 3 the narrowing protocol
// forces a final diagnosis instead of allowing another clarifying question.
const MaxPunishFactor = 3

// Controller drives the conversational turns for both dialogue protocols.
// It serializes turns per session so concurrent calls cannot interleave the
// read-modify-write of a session's candidate list.
type Controller struct {
	engine    *engine.Engine
	generator domain.Generator
	store     domain.SessionStore
	topK      int
	threshold float64

	mu       sync.Mutex
	sessions map[string]*sync.Mutex
}

// Option customizes a Controller.
type Option func(*Controller)

// WithTopK overrides how many diseases the v1 retrieval reports.
func WithTopK(topK int) Option {
	return func(c *Controller) { c.topK = topK }
}

// WithThreshold overrides the similarity threshold for symptom matching.
func WithThreshold(threshold float64) Option {
	return func(c *Controller) { c.threshold = threshold }
}

func New(eng *engine.Engine, generator domain.Generator, store domain.SessionStore, opts ...Option) *Controller {
	c := &Controller{
		engine:    eng,
		generator: generator,
		store:     store,
		topK:      engine.DefaultTopK,
		threshold: matcher.DefaultThreshold,
		sessions:  make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// supervisorReply is the structured contract the v1 flow imposes on the
// generation provider.
type supervisorReply struct {
	ResponseText   string `json:"response_text"`
	ShouldContinue bool   `json:"should_continue"`
}

// ExamineQuery runs one v1 ("examine -> evaluate") turn: retrieval, then a
// supervisor call that turns the retrieval output into a reply and a
// continue/stop decision. Provider and parsing failures degrade to a
// fallback reply; only session-store errors are returned. Every turn runs the
// same pipeline, so firstQuery only keeps the call shape symmetric with
// NarrowQuery.
func (c *Controller) ExamineQuery(ctx context.Context, sessionID, query string, firstQuery bool) (string, bool, error) {
	lock := c.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	if err := c.store.AppendChat(ctx, sessionID, query); err != nil {
		return "", false, err
	}

	result, err := c.engine.Diagnose(ctx, query, c.topK, c.threshold)
	if err != nil {
		// Retrieval failure is not fatal: the supervisor still answers,
		// it just sees an error status instead of matches.
		result = domain.DiagnosisResult{Status: domain.StatusError, Message: err.Error()}
	}

	ragContext, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		ragContext = []byte(`{"status": "error", "message": "diagnosis result unavailable"}`)
	}
	userPrompt := fmt.Sprintf("USER QUERY: %s\n\nRAG SYSTEM OUTPUT:\n%s", query, ragContext)

	reply, continueFlag := c.superviseTurn(ctx, userPrompt)

	if err := c.store.AppendChat(ctx, sessionID, reply); err != nil {
		return "", false, err
	}
	return reply, continueFlag, nil
}

func (c *Controller) superviseTurn(ctx context.Context, userPrompt string) (string, bool) {
	raw, err := c.generator.GenerateJSON(ctx, supervisorPrompt, userPrompt)
	if err != nil {
		log.Printf("dialogue: supervisor call failed: %v", err)
		return fallbackReply, false
	}
	var reply supervisorReply
	if err := json.Unmarshal([]byte(raw), &reply); err != nil || reply.ResponseText == "" {
		log.Printf("dialogue: unparseable supervisor reply: %v", err)
		return fallbackReply, false
	}
	return reply.ResponseText, reply.ShouldContinue
}

// NarrowQuery runs one v2 ("narrowing diagnosis") turn. The model output must
// follow the tagged-section protocol; a missing section surfaces as a
// *ProtocolParseError. At punishFactor 3 a subsequent turn always ends the
// session with one extra forced final-diagnosis call.
func (c *Controller) NarrowQuery(ctx context.Context, sessionID, query string, firstQuery bool, punishFactor int) (string, bool, error) {
	lock := c.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	systemPrompt := narrowingPrompt(punishFactor)

	if firstQuery {
		raw, err := c.generator.Generate(ctx, systemPrompt, query)
		if err != nil {
			return "", false, err
		}
		turn, err := ParseTurn(raw)
		if err != nil {
			return "", false, err
		}
		if err := c.recordTurn(ctx, sessionID, query, turn); err != nil {
			return "", false, err
		}
		return turn.Response, turn.ContinueFlag(), nil
	}

	candidates, err := c.store.Candidates(ctx, sessionID)
	if err != nil {
		return "", false, err
	}
	pastConvo, err := c.store.ChatLog(ctx, sessionID)
	if err != nil {
		return "", false, err
	}
	userPrompt := fmt.Sprintf("Current possible diagnoses: %s\n\nPast conversation:\n%s\n\nUser follow-up: %s",
		strings.Join(candidates, ", "), strings.Join(pastConvo, "\n"), query)

	raw, err := c.generator.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", false, err
	}
	turn, err := ParseTurn(raw)
	if err != nil {
		return "", false, err
	}
	if err := c.recordTurn(ctx, sessionID, query, turn); err != nil {
		return "", false, err
	}

	if punishFactor == MaxPunishFactor {
		final, err := c.forceFinalDiagnosis(ctx, sessionID, turn.DiseaseList())
		if err != nil {
			return "", false, err
		}
		return final, false, nil
	}
	if turn.ContinueFlag() && punishFactor < MaxPunishFactor {
		return turn.Response, true, nil
	}
	return turn.Response, false, nil
}

// recordTurn replaces the candidate list wholesale and appends the exchange
// to the chat log, identically for first and subsequent turns.
func (c *Controller) recordTurn(ctx context.Context, sessionID, query string, turn *TurnSections) error {
	if err := c.store.SetCandidates(ctx, sessionID, turn.DiseaseList()); err != nil {
		return err
	}
	return c.store.AppendChat(ctx, sessionID, "User: "+query, "Bot: "+turn.Response)
}

// forceFinalDiagnosis issues the punish-exhausted call over the entire chat
// history plus the just-updated candidate list. The raw completion is the
// final answer; the tagged protocol does not apply here.
func (c *Controller) forceFinalDiagnosis(ctx context.Context, sessionID string, candidates []string) (string, error) {
	totalChat, err := c.store.ChatLog(ctx, sessionID)
	if err != nil {
		return "", err
	}
	userPrompt := finalDiagnosisPreamble +
		strings.Join(totalChat, "\n") +
		"\n\nPossible diagnoses: " + strings.Join(candidates, ", ")
	return c.generator.Generate(ctx, finalDiagnosisPrompt, userPrompt)
}

func (c *Controller) sessionLock(sessionID string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	lock, ok := c.sessions[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		c.sessions[sessionID] = lock
	}
	return lock
}
