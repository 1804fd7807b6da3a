// Package voice runs the assistant conversation loop: record, transcribe,
// chat, speak.
package voice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"remont/internal/api"
	"remont/internal/logging"
	"remont/internal/models"
)

// State of a voice session
type State int

const (
	StateIdle State = iota
	StateRecording
	StateProcessing
	StateSpeaking
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateProcessing:
		return "processing"
	case StateSpeaking:
		return "speaking"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	// ErrBusy is returned when recording is requested while a reply is being
	// fetched or spoken
	ErrBusy = errors.New("assistant is busy")

	// ErrAlreadyRecording is returned by Start during a recording
	ErrAlreadyRecording = errors.New("already recording")

	// ErrNotRecording is returned by Stop outside a recording
	ErrNotRecording = errors.New("not recording")

	// ErrNoSpeech is returned when transcription yields no text
	ErrNoSpeech = errors.New("no speech recognized")
)

// Recorder acquires the audio input
type Recorder interface {
	Start(ctx context.Context) (Capture, error)
}

// Capture is an active recording. Stop releases the input and returns the audio.
type Capture interface {
	Stop() ([]byte, error)
}

// Assistant is the remote side of a conversation
type Assistant interface {
	Transcribe(ctx context.Context, audio []byte) (string, error)
	Chat(ctx context.Context, req api.ChatRequest) (string, error)
}

// Speaker plays a reply and returns when playback has finished
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// Turn is one completed exchange
type Turn struct {
	User      models.ChatMessage
	Assistant models.ChatMessage
}

// Session is a conversation with the assistant. Only one recording or
// request is in flight at a time.
type Session struct {
	ID   string
	Role models.UserRole

	recorder  Recorder
	assistant Assistant
	speaker   Speaker
	logger    *slog.Logger
	onChange  func(State)
	timeout   time.Duration

	mu      sync.Mutex
	state   State
	capture Capture
	history []models.ChatMessage
}

// SessionOption customizes a Session
type SessionOption func(*Session)

// WithSpeaker plays replies through s. Without one replies are not spoken.
func WithSpeaker(s Speaker) SessionOption {
	return func(sess *Session) { sess.speaker = s }
}

// WithLogger sets the session logger
func WithLogger(l *slog.Logger) SessionOption {
	return func(sess *Session) { sess.logger = l }
}

// WithTimeout bounds the remote requests of each turn
func WithTimeout(d time.Duration) SessionOption {
	return func(sess *Session) { sess.timeout = d }
}

// OnStateChange registers a callback invoked after every transition.
// It runs on the goroutine that caused the transition.
func OnStateChange(fn func(State)) SessionOption {
	return func(sess *Session) { sess.onChange = fn }
}

// NewSession creates an idle session with a fresh conversation id
func NewSession(role models.UserRole, recorder Recorder, assistant Assistant, opts ...SessionOption) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		Role:      role,
		recorder:  recorder,
		assistant: assistant,
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// History returns a copy of the conversation so far
func (s *Session) History() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ChatMessage(nil), s.history...)
}

func (s *Session) setStateLocked(state State) {
	s.state = state
}

func (s *Session) transition(state State) {
	s.mu.Lock()
	s.setStateLocked(state)
	s.mu.Unlock()
	s.notify(state)
}

func (s *Session) notify(state State) {
	s.logger.Debug("voice session state", "conversation_id", s.ID, "state", state.String())
	if s.onChange != nil {
		s.onChange(state)
	}
}

// Start begins recording. It fails with ErrBusy while a reply is processed
// or spoken; a failure to acquire the input leaves the session idle.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	switch s.state {
	case StateRecording:
		s.mu.Unlock()
		return ErrAlreadyRecording
	case StateProcessing, StateSpeaking:
		s.mu.Unlock()
		return ErrBusy
	}

	capture, err := s.recorder.Start(ctx)
	if err != nil {
		s.mu.Unlock()
		s.logger.Warn("failed to start recording", "error", err)
		return fmt.Errorf("error starting recording: %w", err)
	}
	s.capture = capture
	s.setStateLocked(StateRecording)
	s.mu.Unlock()

	s.notify(StateRecording)
	return nil
}

// Stop ends the recording and submits it: the audio is transcribed, the text
// is sent to the assistant with the prior history, and the reply is spoken.
// The steps run strictly in that order. Any failure returns the session to
// idle without an assistant message.
func (s *Session) Stop(ctx context.Context) (*Turn, error) {
	s.mu.Lock()
	if s.state != StateRecording {
		s.mu.Unlock()
		return nil, ErrNotRecording
	}
	capture := s.capture
	s.capture = nil
	s.setStateLocked(StateProcessing)
	s.mu.Unlock()
	s.notify(StateProcessing)

	turn, err := s.process(ctx, capture)
	if err != nil {
		s.logger.Warn("voice turn failed", "conversation_id", s.ID, "error", err)
		s.transition(StateIdle)
		return nil, err
	}

	s.speak(ctx, turn)
	return turn, nil
}

// speak plays the reply when a speaker is set and returns to idle
func (s *Session) speak(ctx context.Context, turn *Turn) {
	if s.speaker != nil {
		s.transition(StateSpeaking)
		if err := s.speaker.Speak(ctx, turn.Assistant.Content); err != nil {
			s.logger.Warn("speech playback failed", "error", err)
		}
	}
	s.transition(StateIdle)
}

func (s *Session) process(ctx context.Context, capture Capture) (*Turn, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	audio, err := capture.Stop()
	if err != nil {
		return nil, fmt.Errorf("error finishing recording: %w", err)
	}

	text, err := s.assistant.Transcribe(ctx, audio)
	if err != nil {
		return nil, fmt.Errorf("error transcribing audio: %w", err)
	}
	if text == "" {
		return nil, ErrNoSpeech
	}
	return s.exchange(ctx, text)
}

func (s *Session) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// exchange appends the user message and asks the assistant for a reply
func (s *Session) exchange(ctx context.Context, text string) (*Turn, error) {
	user := models.ChatMessage{Role: models.ChatRoleUser, Content: text}

	s.mu.Lock()
	prior := append([]models.ChatMessage(nil), s.history...)
	s.history = append(s.history, user)
	s.mu.Unlock()

	reply, err := s.assistant.Chat(ctx, api.ChatRequest{Message: text, History: prior, Role: s.Role})
	if err != nil {
		return nil, fmt.Errorf("error getting reply: %w", err)
	}

	assistant := models.ChatMessage{Role: models.ChatRoleAssistant, Content: reply}
	s.mu.Lock()
	s.history = append(s.history, assistant)
	s.mu.Unlock()

	return &Turn{User: user, Assistant: assistant}, nil
}

// Ask sends a typed message, skipping capture and transcription. It follows
// the same state rules as a spoken turn.
func (s *Session) Ask(ctx context.Context, text string) (*Turn, error) {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.setStateLocked(StateProcessing)
	s.mu.Unlock()
	s.notify(StateProcessing)

	reqCtx, cancel := s.withTimeout(ctx)
	turn, err := s.exchange(reqCtx, text)
	cancel()
	if err != nil {
		s.transition(StateIdle)
		return nil, err
	}
	s.speak(ctx, turn)
	return turn, nil
}

// Clear drops the conversation history. It is refused while recording or
// processing.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateRecording || s.state == StateProcessing {
		return ErrBusy
	}
	s.history = nil
	return nil
}
