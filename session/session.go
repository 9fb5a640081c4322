// Package session tracks choice prompts waiting for their owner's click.
//
// A session starts Pending and ends exactly once, either Resolved by the
// owner's click or Expired by its timer. Both ends are absorbing.
package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"

	"github.com/leeineian/snailbot/catalog"
	"github.com/leeineian/snailbot/reply"
	"github.com/leeineian/snailbot/sys"
)

// DefaultTimeout is how long a prompt waits for its owner.
const DefaultTimeout = 30 * time.Second

// finalizeTimeout bounds the REST calls made once a session ends.
const finalizeTimeout = 10 * time.Second

// bindWait bounds how long a click waits for its prompt's session to open.
// Component interactions must be answered within three seconds.
const bindWait = 2 * time.Second

var ErrDuplicatePrompt = errors.New("session already open for this prompt")

type Status int32

const (
	Pending Status = iota
	Resolved
	Expired
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Resolved:
		return "resolved"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// Prompt is the posted choice prompt as seen by the session.
type Prompt interface {
	Edit(ctx context.Context, update discord.MessageUpdate) error
	Delete(ctx context.Context) error
	FollowUp(ctx context.Context, payload reply.Payload) error
}

// Click is one component interaction on a prompt message.
type Click struct {
	UserID    snowflake.ID
	MessageID snowflake.ID
	CustomID  string
	Button    bool
	Respond   func(payload reply.Payload) error
}

type Session struct {
	OwnerID   snowflake.ID
	PromptID  snowflake.ID
	Options   []catalog.OptionEntry
	CreatedAt time.Time

	status atomic.Int32
	prompt Prompt
	timer  *time.Timer
}

func (s *Session) Status() Status {
	return Status(s.status.Load())
}

// finish moves the session out of Pending. Only one caller ever wins.
func (s *Session) finish(to Status) bool {
	return s.status.CompareAndSwap(int32(Pending), int32(to))
}

// Registry holds the pending sessions keyed by prompt message ID.
type Registry struct {
	ctx      context.Context
	timeout  time.Duration
	bindWait time.Duration

	mu       sync.Mutex
	sessions map[snowflake.ID]*Session
	posting  map[snowflake.ID]int // owners with a prompt on its way
	changed  chan struct{}        // closed and replaced whenever sessions or posting change
}

// NewRegistry returns an empty registry. Expiry work runs under ctx.
func NewRegistry(ctx context.Context, timeout time.Duration) *Registry {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Registry{
		ctx:      ctx,
		timeout:  timeout,
		bindWait: bindWait,
		sessions: make(map[snowflake.ID]*Session),
		posting:  make(map[snowflake.ID]int),
		changed:  make(chan struct{}),
	}
}

// Expect records that a prompt for owner is being posted. Until release
// runs, the owner's clicks on prompts without a session wait for Open
// instead of being dropped. Call release once Open returned or the prompt
// was abandoned. Calling it more than once is harmless.
func (r *Registry) Expect(owner snowflake.ID) (release func()) {
	r.mu.Lock()
	r.posting[owner]++
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			if r.posting[owner]--; r.posting[owner] <= 0 {
				delete(r.posting, owner)
			}
			r.notify()
		})
	}
}

// notify wakes clicks waiting in await. r.mu must be held.
func (r *Registry) notify() {
	close(r.changed)
	r.changed = make(chan struct{})
}

// Open starts waiting for owner to pick one of options on the prompt message promptID.
func (r *Registry) Open(owner, promptID snowflake.ID, options []catalog.OptionEntry, prompt Prompt) (*Session, error) {
	s := &Session{
		OwnerID:   owner,
		PromptID:  promptID,
		Options:   options,
		CreatedAt: time.Now(),
		prompt:    prompt,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[promptID]; ok {
		return nil, ErrDuplicatePrompt
	}
	r.sessions[promptID] = s
	s.timer = time.AfterFunc(r.timeout, func() { r.expire(s) })
	r.notify()

	sys.LogSession(MsgSessionOpened, promptID, owner, len(options))
	return s, nil
}

// Get returns the pending session for a prompt message.
func (r *Registry) Get(promptID snowflake.ID) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[promptID]
	return s, ok
}

// Len reports how many sessions are still pending.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Click resolves the session behind c.MessageID when the owner picked a
// valid option. It reports whether this click ended the session. Clicks
// from anyone else, on unknown prompts, or after the session ended are
// ignored without a reply.
func (r *Registry) Click(ctx context.Context, c Click) (bool, error) {
	if !c.Button {
		return false, nil
	}
	s, ok := r.await(ctx, c)
	if !ok || c.UserID != s.OwnerID {
		return false, nil
	}

	idx, ok := reply.ParseOptionIndex(c.CustomID)
	if !ok || idx >= len(s.Options) {
		sys.LogSessionWarn(MsgSessionBadOption, c.CustomID, s.PromptID)
		return false, nil
	}

	if !s.finish(Resolved) {
		return false, nil
	}
	s.timer.Stop()
	r.remove(s)

	option := s.Options[idx]
	sys.LogSession(MsgSessionResolved, s.PromptID, option.Name)

	var respondErr error
	if err := c.Respond(reply.NewSelectionAnswer(option)); err != nil {
		respondErr = err
	}

	r.finalize(ctx, s, reply.ResolvedPrompt(len(s.Options)))
	return true, respondErr
}

// Close stops every pending timer. Prompts are left as they are.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		s.timer.Stop()
		delete(r.sessions, id)
	}
}

// await looks up the session for c.MessageID. While the clicking user has
// a prompt on its way it keeps looking until that prompt is opened or
// abandoned, bounded by bindWait.
func (r *Registry) await(ctx context.Context, c Click) (*Session, bool) {
	var deadline <-chan time.Time
	for {
		r.mu.Lock()
		s, ok := r.sessions[c.MessageID]
		posting := r.posting[c.UserID] > 0
		changed := r.changed
		r.mu.Unlock()

		if ok || !posting {
			return s, ok
		}
		if deadline == nil {
			t := time.NewTimer(r.bindWait)
			defer t.Stop()
			deadline = t.C
			sys.LogSession(MsgSessionClickEarly, c.MessageID, c.UserID)
		}

		select {
		case <-changed:
		case <-deadline:
			return nil, false
		case <-ctx.Done():
			return nil, false
		}
	}
}

func (r *Registry) expire(s *Session) {
	if !s.finish(Expired) {
		return
	}
	r.remove(s)
	sys.LogSession(MsgSessionExpired, s.PromptID, s.OwnerID)

	ctx, cancel := context.WithTimeout(r.ctx, finalizeTimeout)
	defer cancel()

	if err := s.prompt.FollowUp(ctx, reply.TimeoutNotice{Owner: s.OwnerID}); err != nil {
		sys.LogSessionWarn(MsgSessionFollowUpFail, s.PromptID, err)
	}
	r.finalize(ctx, s, reply.ExpiredPrompt(len(s.Options)))
}

// finalize disables the prompt's buttons and then removes the prompt.
func (r *Registry) finalize(ctx context.Context, s *Session, disabled reply.DisabledPrompt) {
	if err := s.prompt.Edit(ctx, disabled.MessageUpdate()); err != nil {
		sys.LogSessionWarn(MsgSessionEditFail, s.PromptID, err)
	}
	if err := s.prompt.Delete(ctx); err != nil {
		sys.LogSessionWarn(MsgSessionDeleteFail, s.PromptID, err)
	}
}

func (r *Registry) remove(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.sessions[s.PromptID]; ok && cur == s {
		delete(r.sessions, s.PromptID)
	}
}

const (
	MsgSessionOpened       = "Prompt %s opened for %s with %d options"
	MsgSessionResolved     = "Prompt %s resolved: %s"
	MsgSessionExpired      = "Prompt %s expired waiting for %s"
	MsgSessionBadOption    = "Ignoring click %q on prompt %s"
	MsgSessionClickEarly   = "Click on prompt %s by %s arrived before its session, waiting"
	MsgSessionFollowUpFail = "Timeout notice for prompt %s failed: %v"
	MsgSessionEditFail     = "Disabling prompt %s failed: %v"
	MsgSessionDeleteFail   = "Deleting prompt %s failed: %v"
)
