package voice

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remont/internal/api"
	"remont/internal/models"
)

type fakeCapture struct {
	audio    []byte
	err      error
	released bool
}

func (c *fakeCapture) Stop() ([]byte, error) {
	c.released = true
	return c.audio, c.err
}

type fakeRecorder struct {
	err      error
	started  int
	captures []*fakeCapture
}

func (r *fakeRecorder) Start(ctx context.Context) (Capture, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.started++
	c := &fakeCapture{audio: []byte("audio")}
	r.captures = append(r.captures, c)
	return c, nil
}

type fakeAssistant struct {
	mu            sync.Mutex
	calls         []string
	transcribeErr error
	chatErr       error
	text          string
	reply         string
	histories     [][]models.ChatMessage

	// when set, Transcribe blocks until the channel is closed
	hold    chan struct{}
	entered chan struct{}
}

func (a *fakeAssistant) Transcribe(ctx context.Context, audio []byte) (string, error) {
	a.record("transcribe")
	if a.hold != nil {
		close(a.entered)
		<-a.hold
	}
	return a.text, a.transcribeErr
}

func (a *fakeAssistant) Chat(ctx context.Context, req api.ChatRequest) (string, error) {
	a.record("chat")
	a.mu.Lock()
	a.histories = append(a.histories, req.History)
	a.mu.Unlock()
	return a.reply, a.chatErr
}

func (a *fakeAssistant) record(call string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, call)
}

type fakeSpeaker struct {
	spoken []string
	states []State
	sess   **Session
}

func (s *fakeSpeaker) Speak(ctx context.Context, text string) error {
	s.spoken = append(s.spoken, text)
	if s.sess != nil {
		s.states = append(s.states, (*s.sess).State())
	}
	return nil
}

func TestSessionFullTurn(t *testing.T) {
	recorder := &fakeRecorder{}
	assistant := &fakeAssistant{text: "Сколько стоит покраска?", reply: "400 ₽ за м²."}
	var sess *Session
	speaker := &fakeSpeaker{sess: &sess}
	var states []State
	sess = NewSession(models.RoleCustomer, recorder, assistant,
		WithSpeaker(speaker),
		OnStateChange(func(s State) { states = append(states, s) }),
	)

	assert.NotEmpty(t, sess.ID)
	require.NoError(t, sess.Start(context.Background()))
	assert.Equal(t, StateRecording, sess.State())

	turn, err := sess.Stop(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Сколько стоит покраска?", turn.User.Content)
	assert.Equal(t, "400 ₽ за м².", turn.Assistant.Content)

	assert.True(t, recorder.captures[0].released)
	assert.Equal(t, []string{"transcribe", "chat"}, assistant.calls)
	assert.Equal(t, []string{"400 ₽ за м²."}, speaker.spoken)
	assert.Equal(t, []State{StateSpeaking}, speaker.states)
	assert.Equal(t, []State{StateRecording, StateProcessing, StateSpeaking, StateIdle}, states)
	assert.Equal(t, StateIdle, sess.State())

	history := sess.History()
	require.Len(t, history, 2)
	assert.Equal(t, models.ChatRoleUser, history[0].Role)
	assert.Equal(t, models.ChatRoleAssistant, history[1].Role)
}

func TestSessionSendsPriorHistoryOnly(t *testing.T) {
	assistant := &fakeAssistant{text: "вопрос", reply: "ответ"}
	sess := NewSession(models.RoleContractor, &fakeRecorder{}, assistant)

	for i := 0; i < 2; i++ {
		require.NoError(t, sess.Start(context.Background()))
		_, err := sess.Stop(context.Background())
		require.NoError(t, err)
	}

	require.Len(t, assistant.histories, 2)
	assert.Empty(t, assistant.histories[0])
	assert.Len(t, assistant.histories[1], 2)
	assert.Len(t, sess.History(), 4)
}

func TestStartRejectedWhileProcessing(t *testing.T) {
	recorder := &fakeRecorder{}
	assistant := &fakeAssistant{
		text: "текст", reply: "ответ",
		hold: make(chan struct{}), entered: make(chan struct{}),
	}
	sess := NewSession(models.RoleCustomer, recorder, assistant)

	require.NoError(t, sess.Start(context.Background()))

	done := make(chan error, 1)
	go func() {
		_, err := sess.Stop(context.Background())
		done <- err
	}()

	<-assistant.entered
	assert.Equal(t, StateProcessing, sess.State())
	assert.ErrorIs(t, sess.Start(context.Background()), ErrBusy)
	assert.ErrorIs(t, sess.Clear(), ErrBusy)
	_, err := sess.Ask(context.Background(), "ещё вопрос")
	assert.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, 1, recorder.started)

	close(assistant.hold)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("turn did not finish")
	}
	assert.Equal(t, StateIdle, sess.State())
}

// blockingSpeaker holds playback until released
type blockingSpeaker struct {
	entered chan struct{}
	release chan struct{}
}

func (s *blockingSpeaker) Speak(ctx context.Context, text string) error {
	close(s.entered)
	<-s.release
	return nil
}

func TestStartRejectedWhileSpeaking(t *testing.T) {
	recorder := &fakeRecorder{}
	assistant := &fakeAssistant{text: "текст", reply: "ответ"}
	speaker := &blockingSpeaker{entered: make(chan struct{}), release: make(chan struct{})}
	sess := NewSession(models.RoleCustomer, recorder, assistant, WithSpeaker(speaker))

	require.NoError(t, sess.Start(context.Background()))

	done := make(chan error, 1)
	go func() {
		_, err := sess.Stop(context.Background())
		done <- err
	}()

	<-speaker.entered
	assert.Equal(t, StateSpeaking, sess.State())
	assert.ErrorIs(t, sess.Start(context.Background()), ErrBusy)
	assert.Equal(t, 1, recorder.started)
	assert.Equal(t, StateSpeaking, sess.State())

	close(speaker.release)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("turn did not finish")
	}
	assert.Equal(t, StateIdle, sess.State())

	require.NoError(t, sess.Start(context.Background()))
	assert.Equal(t, 2, recorder.started)
}

func TestFailedTranscriptionReturnsToIdle(t *testing.T) {
	assistant := &fakeAssistant{transcribeErr: errors.New("whisper unavailable")}
	speaker := &fakeSpeaker{}
	sess := NewSession(models.RoleCustomer, &fakeRecorder{}, assistant, WithSpeaker(speaker))

	require.NoError(t, sess.Start(context.Background()))
	turn, err := sess.Stop(context.Background())
	assert.Error(t, err)
	assert.Nil(t, turn)

	assert.Equal(t, StateIdle, sess.State())
	assert.Empty(t, sess.History())
	assert.Empty(t, speaker.spoken)
	assert.Equal(t, []string{"transcribe"}, assistant.calls)
}

func TestFailedChatKeepsUserMessageOnly(t *testing.T) {
	assistant := &fakeAssistant{text: "вопрос", chatErr: errors.New("model overloaded")}
	sess := NewSession(models.RoleCustomer, &fakeRecorder{}, assistant)

	require.NoError(t, sess.Start(context.Background()))
	_, err := sess.Stop(context.Background())
	assert.Error(t, err)

	history := sess.History()
	require.Len(t, history, 1)
	assert.Equal(t, models.ChatRoleUser, history[0].Role)
	assert.Equal(t, StateIdle, sess.State())
}

func TestEmptyTranscriptionIsNoSpeech(t *testing.T) {
	assistant := &fakeAssistant{text: ""}
	sess := NewSession(models.RoleCustomer, &fakeRecorder{}, assistant)

	require.NoError(t, sess.Start(context.Background()))
	_, err := sess.Stop(context.Background())
	assert.ErrorIs(t, err, ErrNoSpeech)
	assert.Equal(t, []string{"transcribe"}, assistant.calls)
}

func TestRecorderFailureLeavesIdle(t *testing.T) {
	sess := NewSession(models.RoleCustomer, &fakeRecorder{err: errors.New("permission denied")}, &fakeAssistant{})

	assert.Error(t, sess.Start(context.Background()))
	assert.Equal(t, StateIdle, sess.State())

	_, err := sess.Stop(context.Background())
	assert.ErrorIs(t, err, ErrNotRecording)
}

func TestStartTwice(t *testing.T) {
	sess := NewSession(models.RoleCustomer, &fakeRecorder{}, &fakeAssistant{})
	require.NoError(t, sess.Start(context.Background()))
	assert.ErrorIs(t, sess.Start(context.Background()), ErrAlreadyRecording)
	assert.ErrorIs(t, sess.Clear(), ErrBusy)
}

func TestAskAndClear(t *testing.T) {
	assistant := &fakeAssistant{reply: "Здравствуйте!"}
	sess := NewSession(models.RoleCustomer, &fakeRecorder{}, assistant)

	turn, err := sess.Ask(context.Background(), "Привет")
	require.NoError(t, err)
	assert.Equal(t, "Здравствуйте!", turn.Assistant.Content)
	assert.Equal(t, []string{"chat"}, assistant.calls)
	assert.Len(t, sess.History(), 2)

	require.NoError(t, sess.Clear())
	assert.Empty(t, sess.History())
}

func TestCommandSpeakerArgs(t *testing.T) {
	s, err := NewCommandSpeaker("espeak-ng -v ru -s {wpm}", 0.95)
	require.NoError(t, err)
	assert.Equal(t, []string{"espeak-ng", "-v", "ru", "-s", "166", "Готово"}, s.args("Готово"))

	_, err = NewCommandSpeaker("  ", 1)
	assert.Error(t, err)
	_, err = NewCommandRecorder("")
	assert.Error(t, err)
}

type deadlineAssistant struct {
	fakeAssistant
	deadline bool
}

func (a *deadlineAssistant) Chat(ctx context.Context, req api.ChatRequest) (string, error) {
	_, a.deadline = ctx.Deadline()
	return "ok", nil
}

func TestTurnCarriesDeadline(t *testing.T) {
	assistant := &deadlineAssistant{}
	sess := NewSession(models.RoleCustomer, &fakeRecorder{}, assistant, WithTimeout(time.Minute))

	_, err := sess.Ask(context.Background(), "привет")
	require.NoError(t, err)
	assert.True(t, assistant.deadline)
}
